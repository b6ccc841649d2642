package engine

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvraster/expr"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("engine: invalid config")

// EvalError reports the node whose evaluation failed.
type EvalError struct {
	Op  expr.Op
	Key string // short structural key
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("engine: %s#%s: %v", e.Op, e.Key, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalError(n *expr.Node, err error) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}

	return &EvalError{Op: n.Op(), Key: n.ShortKey(), Err: err}
}
