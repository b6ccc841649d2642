// Package expr builds deferred raster computations as immutable DAGs.
//
// A *Node records an operation, its parameters and its operand nodes. Nothing
// is evaluated at construction: builder methods never fail, and malformed
// input (a nil operand, an unparsable expression) is carried by the node and
// reported when an evaluator resolves it.
//
// Every node has a structural key derived from its operation, parameters and
// operand keys. Two nodes with equal keys describe the same value, so an
// evaluator may compute them once.
//
//	img := expr.Source(src)
//	nd := img.NormalizedDifference("B5", "B4")
//	zones := expr.Expression("b('nd') > 0.4 ? 2 : b('nd') > 0.2 ? 1 : 0", nd, nil)
//
// Plan lists a graph's nodes in dependency order, shared subgraphs once.
package expr
