package classify

import "fmt"

// ConfusionMatrix tallies predictions of t against the label column of set.
// Rows are actual classes, columns predicted, both in t.Classes() order.
// Rows whose label lies outside the trained domain are counted in Unknown.
type ConfusionMatrix struct {
	Classes []int
	Counts  [][]int
	Unknown int
}

// Evaluate classifies every usable row of set with t.
func Evaluate(t *Trained, set *SampleSet) (*ConfusionMatrix, error) {
	X, y, err := set.design(t.features, t.label)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	cm := &ConfusionMatrix{Classes: t.Classes(), Counts: make([][]int, len(t.classes))}
	pos := make(map[int]int, len(t.classes))
	for k, c := range t.classes {
		pos[c] = k
		cm.Counts[k] = make([]int, len(t.classes))
	}
	for i, x := range X {
		actual, ok := pos[y[i]]
		if !ok {
			cm.Unknown++
			continue
		}
		cm.Counts[actual][pos[t.model.Predict(x)]]++
	}

	return cm, nil
}

// Accuracy returns the share of known rows on the diagonal (0 for none).
func (cm *ConfusionMatrix) Accuracy() float64 {
	var hit, total int
	for i, row := range cm.Counts {
		for j, c := range row {
			total += c
			if i == j {
				hit += c
			}
		}
	}
	if total == 0 {
		return 0
	}

	return float64(hit) / float64(total)
}
