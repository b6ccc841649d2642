package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/lvraster/expr"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Evaluator resolves expression graphs. It is safe for concurrent use.
type Evaluator struct {
	settings

	mu    sync.RWMutex
	cache map[string]raster.Value
	group singleflight.Group
}

// New returns an Evaluator configured by opts.
func New(opts ...Option) *Evaluator {
	return &Evaluator{
		settings: newSettings(opts...),
		cache:    make(map[string]raster.Value),
	}
}

// Resolve evaluates n and everything it depends on. The first failing node
// aborts the walk; its error is returned as *EvalError and no partial value
// is produced.
func (e *Evaluator) Resolve(n *expr.Node) (raster.Value, error) {
	if n == nil {
		return nil, &EvalError{Op: expr.OpInvalid, Err: expr.ErrNilOperand}
	}
	start := time.Now()
	plan, err := expr.Plan(n)
	if err != nil {
		return nil, evalError(n, err)
	}
	done := make(map[string]raster.Value, len(plan))
	for _, node := range plan {
		v, err := e.resolveNode(node, done)
		if err != nil {
			return nil, err
		}
		done[node.Key()] = v
	}
	e.log.WithFields(logrus.Fields{
		"root":    n.String(),
		"nodes":   len(plan),
		"elapsed": time.Since(start),
	}).Info("resolved")

	return done[n.Key()], nil
}

// ResolveRaster resolves n and requires a raster.
func (e *Evaluator) ResolveRaster(n *expr.Node) (*raster.Raster, error) {
	v, err := e.Resolve(n)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*raster.Raster)
	if !ok {
		return nil, kindError(n, raster.KindRaster, v)
	}

	return r, nil
}

// ResolveArray resolves n and requires a global array.
func (e *Evaluator) ResolveArray(n *expr.Node) (*raster.Array, error) {
	v, err := e.Resolve(n)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*raster.Array)
	if !ok {
		return nil, kindError(n, raster.KindArray, v)
	}

	return a, nil
}

// ResolveScalar resolves n and requires a scalar.
func (e *Evaluator) ResolveScalar(n *expr.Node) (float64, error) {
	v, err := e.Resolve(n)
	if err != nil {
		return 0, err
	}
	s, ok := v.(raster.Scalar)
	if !ok {
		return 0, kindError(n, raster.KindScalar, v)
	}

	return float64(s), nil
}

func kindError(n *expr.Node, want raster.Kind, got raster.Value) error {
	return &EvalError{
		Op:  n.Op(),
		Key: n.ShortKey(),
		Err: fmt.Errorf("want %s, got %s: %w", want, got.Kind(), raster.ErrShapeMismatch),
	}
}

// resolveNode computes one planned node whose operands are already in done.
func (e *Evaluator) resolveNode(n *expr.Node, done map[string]raster.Value) (raster.Value, error) {
	if err := n.Err(); err != nil {
		e.log.WithFields(e.fields(n)).WithError(err).Debug("invalid node")
		return nil, evalError(n, err)
	}
	if !e.memoize {
		return e.compute(n, done)
	}

	key := n.Key()
	if v, ok := e.lookup(key); ok {
		e.log.WithFields(e.fields(n)).WithField("cached", true).Debug("node")
		return v, nil
	}
	v, err, _ := e.group.Do(key, func() (any, error) {
		if v, ok := e.lookup(key); ok {
			return v, nil
		}
		v, err := e.compute(n, done)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.cache[key] = v
		e.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(raster.Value), nil
}

func (e *Evaluator) lookup(key string) (raster.Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.cache[key]

	return v, ok
}

func (e *Evaluator) compute(n *expr.Node, done map[string]raster.Value) (raster.Value, error) {
	operands := n.Args()
	args := make([]raster.Value, len(operands))
	for i, a := range operands {
		args[i] = done[a.Key()]
	}

	start := time.Now()
	v, err := e.eval(n, args)
	log := e.log.WithFields(e.fields(n)).WithField("elapsed", time.Since(start))
	if err != nil {
		log.WithError(err).Debug("node failed")
		return nil, evalError(n, err)
	}
	log.Debug("node")

	return v, nil
}

func (e *Evaluator) fields(n *expr.Node) logrus.Fields {
	return logrus.Fields{"op": n.Op(), "key": n.ShortKey()}
}
