package expr

import "errors"

var (
	// ErrNilOperand indicates a builder called with a nil node.
	ErrNilOperand = errors.New("expr: nil operand")
	// ErrCycle indicates a graph that is not acyclic. Builders cannot create
	// one; it guards hand-assembled graphs.
	ErrCycle = errors.New("expr: cycle detected")
	// ErrSyntax indicates an expression that could not be parsed.
	ErrSyntax = errors.New("expr: syntax error")
	// ErrUnknownName indicates an expression identifier with no binding.
	ErrUnknownName = errors.New("expr: unknown name")
)
