package classify

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/lvraster/raster"
)

// CART grows a binary classification tree with gini impurity and numeric
// thresholds (x <= threshold goes left). Training is deterministic: among
// equal gains the lowest feature index and threshold win.
type CART struct {
	MaxDepth            int     // 0 => unlimited
	MinSamplesSplit     int     // nodes smaller than this become leaves
	MinSamplesLeaf      int     // minimum rows on each side of a split
	MinImpurityDecrease float64 // splits must improve gini by more than this
}

// CARTOption configures a CART.
type CARTOption func(*CART)

func WithMaxDepth(d int) CARTOption        { return func(c *CART) { c.MaxDepth = d } }
func WithMinSamplesSplit(n int) CARTOption { return func(c *CART) { c.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) CARTOption  { return func(c *CART) { c.MinSamplesLeaf = n } }
func WithMinImpurityDecrease(v float64) CARTOption {
	return func(c *CART) { c.MinImpurityDecrease = v }
}

// NewCART returns a tree learner with defaults MinSamplesSplit=2,
// MinSamplesLeaf=1, unlimited depth.
func NewCART(opts ...CARTOption) *CART {
	c := &CART{MinSamplesSplit: 2, MinSamplesLeaf: 1}
	for _, o := range opts {
		o(c)
	}

	return c
}

func (c *CART) Name() string { return "cart" }

type cartNode struct {
	leaf        bool
	class       int
	feature     int
	threshold   float64
	left, right *cartNode
}

type cartTree struct{ root *cartNode }

func (t *cartTree) Predict(x []float64) int {
	n := t.root
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}

	return n.class
}

// Fit implements Algorithm.
func (c *CART) Fit(X [][]float64, y []int) (Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("cart: %d rows, %d labels: %w", len(X), len(y), raster.ErrInvalidArgument)
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return nil, fmt.Errorf("cart: row %d has %d features, want %d: %w", i, len(X[i]), p, raster.ErrShapeMismatch)
		}
	}
	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	yi := make([]int, len(y))
	for i, v := range y {
		yi[i], _ = slices.BinarySearch(classes, v)
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	b := &cartBuilder{cfg: c, X: X, y: yi, classes: classes, p: p}

	return &cartTree{root: b.build(idx, 0)}, nil
}

type cartBuilder struct {
	cfg     *CART
	X       [][]float64
	y       []int
	classes []int
	p       int
}

func (b *cartBuilder) counts(idx []int) []int {
	c := make([]int, len(b.classes))
	for _, i := range idx {
		c[b.y[i]]++
	}

	return c
}

func (b *cartBuilder) leaf(counts []int) *cartNode {
	best := 0
	for k := 1; k < len(counts); k++ {
		if counts[k] > counts[best] {
			best = k
		}
	}

	return &cartNode{leaf: true, class: b.classes[best]}
}

func (b *cartBuilder) build(idx []int, depth int) *cartNode {
	counts := b.counts(idx)
	if pure(counts) || len(idx) < b.cfg.MinSamplesSplit || (b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth) {
		return b.leaf(counts)
	}

	parent := gini(counts, len(idx))
	bestGain := b.cfg.MinImpurityDecrease
	bestFeature, bestAt := -1, 0
	var bestThr float64
	var bestOrder []int

	order := make([]int, len(idx))
	left := make([]int, len(b.classes))
	minLeaf := max(1, b.cfg.MinSamplesLeaf)
	n := len(idx)
	for f := 0; f < b.p; f++ {
		copy(order, idx)
		sort.SliceStable(order, func(i, j int) bool { return b.X[order[i]][f] < b.X[order[j]][f] })
		clear(left)
		for s := 1; s < n; s++ {
			left[b.y[order[s-1]]]++
			lo, hi := b.X[order[s-1]][f], b.X[order[s]][f]
			if lo == hi || s < minLeaf || n-s < minLeaf {
				continue
			}
			right := make([]int, len(counts))
			for k := range counts {
				right[k] = counts[k] - left[k]
			}
			w := float64(s)/float64(n)*gini(left, s) + float64(n-s)/float64(n)*gini(right, n-s)
			if gain := parent - w; gain > bestGain {
				bestGain, bestFeature, bestAt = gain, f, s
				bestThr = (lo + hi) / 2
				bestOrder = slices.Clone(order)
			}
		}
	}
	if bestFeature < 0 {
		return b.leaf(counts)
	}

	return &cartNode{
		feature:   bestFeature,
		threshold: bestThr,
		left:      b.build(bestOrder[:bestAt], depth+1),
		right:     b.build(bestOrder[bestAt:], depth+1),
	}
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		q := float64(c) / float64(n)
		g -= q * q
	}

	return g
}

func pure(counts []int) bool {
	seen := 0
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}

	return seen <= 1
}
