package expr

import "fmt"

// Visitation states of the plan traversal.
const (
	white = iota // not visited
	gray         // on the current path
	black        // fully explored
)

// Plan returns every node reachable from root in dependency order: each node
// after all of its operands. Nodes sharing a structural key are listed once,
// at the first position any of them reaches.
//
// Complexity: O(V + E) over distinct keys.
func Plan(root *Node) ([]*Node, error) {
	if root == nil {
		return nil, ErrNilOperand
	}
	p := &planner{state: make(map[string]int)}
	if err := p.visit(root); err != nil {
		return nil, err
	}

	return p.order, nil
}

type planner struct {
	state map[string]int
	order []*Node
}

// visit appends n in post-order after its operands.
func (p *planner) visit(n *Node) error {
	switch p.state[n.key] {
	case gray:
		return fmt.Errorf("%s: %w", n, ErrCycle)
	case black:
		return nil
	}
	p.state[n.key] = gray
	for _, a := range n.args {
		if a == nil {
			continue
		}
		if err := p.visit(a); err != nil {
			return err
		}
	}
	p.state[n.key] = black
	p.order = append(p.order, n)

	return nil
}
