// Package engine resolves expression graphs into values.
//
// An Evaluator walks the plan of a node bottom-up and dispatches each node to
// the eager kernels of algebra, reduce, classify, gridgraph and terrain.
// Results are memoized by structural key: concurrent Resolve calls on graphs
// sharing a subgraph compute it at most once.
//
//	ev := engine.New(engine.WithLogger(log))
//	v, err := ev.Resolve(node)
//
// Errors come back as *EvalError naming the failing operation; errors.Is
// reaches the underlying sentinel (raster.ErrShapeMismatch, ...).
package engine
