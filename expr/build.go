package expr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/katalvlaran/lvraster/classify"
	"github.com/katalvlaran/lvraster/gridgraph"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/katalvlaran/lvraster/reduce"
	"github.com/paulmach/orb"
)

// Source is a leaf reading a raster from src.
func Source(src raster.Source) *Node {
	if src == nil {
		return invalid(fmt.Errorf("source: %w", ErrNilOperand))
	}

	return newNode(OpSource, Params{Source: src})
}

// Image wraps an in-memory raster as a Source leaf.
func Image(r *raster.Raster) *Node {
	if r == nil {
		return invalid(fmt.Errorf("image: %w", ErrNilOperand))
	}

	return Source(raster.NewInMemory(r))
}

// Constant is a leaf holding a Scalar or a global Array. Rasters go through
// Image so that they are keyed by source identity.
func Constant(v raster.Value) *Node {
	switch c := v.(type) {
	case raster.Scalar:
		return newNode(OpConstant, Params{Value: c})
	case *raster.Array:
		if c == nil {
			break
		}
		a, err := raster.NewArray(c.Shape, c.Data, c.Labels)
		if err != nil {
			return invalid(fmt.Errorf("constant: %w", err))
		}
		return newNode(OpConstant, Params{Value: a})
	case *raster.Raster:
		return Image(c)
	}

	return invalid(fmt.Errorf("constant %T: %w", v, raster.ErrUnsupported))
}

// Scalar is Constant(raster.Scalar(x)).
func Scalar(x float64) *Node { return Constant(raster.Scalar(x)) }

// Matrix is a constant GlobalMatrix from literal rows.
func Matrix(rows [][]float64) *Node {
	a, err := raster.FromRows(rows)
	if err != nil {
		return invalid(fmt.Errorf("matrix: %w", err))
	}

	return Constant(a)
}

// Identity is the n×n identity matrix.
func Identity(n int) *Node { return newNode(OpIdentity, Params{Ints: []int{n}}) }

// Binary applies an element-wise binary operation.
func (n *Node) Binary(op algebra.BinaryOp, other *Node) *Node {
	return newNode(OpBinary, Params{Binary: op}, n, other)
}

// Unary applies an element-wise unary operation.
func (n *Node) Unary(op algebra.UnaryOp) *Node {
	return newNode(OpUnary, Params{Unary: op}, n)
}

func (n *Node) Add(o *Node) *Node      { return n.Binary(algebra.OpAdd, o) }
func (n *Node) Subtract(o *Node) *Node { return n.Binary(algebra.OpSubtract, o) }
func (n *Node) Multiply(o *Node) *Node { return n.Binary(algebra.OpMultiply, o) }
func (n *Node) Divide(o *Node) *Node   { return n.Binary(algebra.OpDivide, o) }
func (n *Node) Pow(o *Node) *Node      { return n.Binary(algebra.OpPow, o) }
func (n *Node) Mod(o *Node) *Node      { return n.Binary(algebra.OpMod, o) }
func (n *Node) Min(o *Node) *Node      { return n.Binary(algebra.OpMin, o) }
func (n *Node) Max(o *Node) *Node      { return n.Binary(algebra.OpMax, o) }
func (n *Node) And(o *Node) *Node      { return n.Binary(algebra.OpAnd, o) }
func (n *Node) Or(o *Node) *Node       { return n.Binary(algebra.OpOr, o) }
func (n *Node) Eq(o *Node) *Node       { return n.Binary(algebra.OpEq, o) }
func (n *Node) Neq(o *Node) *Node      { return n.Binary(algebra.OpNeq, o) }
func (n *Node) Gt(o *Node) *Node       { return n.Binary(algebra.OpGt, o) }
func (n *Node) Gte(o *Node) *Node      { return n.Binary(algebra.OpGte, o) }
func (n *Node) Lt(o *Node) *Node       { return n.Binary(algebra.OpLt, o) }
func (n *Node) Lte(o *Node) *Node      { return n.Binary(algebra.OpLte, o) }

func (n *Node) Abs() *Node     { return n.Unary(algebra.OpAbs) }
func (n *Node) Negate() *Node  { return n.Unary(algebra.OpNegate) }
func (n *Node) Sqrt() *Node    { return n.Unary(algebra.OpSqrt) }
func (n *Node) Exp() *Node     { return n.Unary(algebra.OpExp) }
func (n *Node) Log() *Node     { return n.Unary(algebra.OpLog) }
func (n *Node) Sin() *Node     { return n.Unary(algebra.OpSin) }
func (n *Node) Cos() *Node     { return n.Unary(algebra.OpCos) }
func (n *Node) Tan() *Node     { return n.Unary(algebra.OpTan) }
func (n *Node) Not() *Node     { return n.Unary(algebra.OpNot) }
func (n *Node) ToFloat() *Node { return n.Unary(algebra.OpToFloat) }
func (n *Node) ToInt() *Node   { return n.Unary(algebra.OpToInt) }
func (n *Node) ToByte() *Node  { return n.Unary(algebra.OpToByte) }

// Where picks then where cond is non-zero and els elsewhere, per pixel.
func Where(cond, then, els *Node) *Node { return newNode(OpWhere, Params{}, cond, then, els) }

// Select keeps the named bands in order.
func (n *Node) Select(names ...string) *Node {
	return newNode(OpSelect, Params{Names: append([]string(nil), names...)}, n)
}

// SelectIndex keeps the bands at the given positions in order.
func (n *Node) SelectIndex(index ...int) *Node {
	return newNode(OpSelect, Params{Ints: append([]int(nil), index...)}, n)
}

// Rename renames all bands positionally.
func (n *Node) Rename(names ...string) *Node {
	return newNode(OpRename, Params{Names: append([]string(nil), names...)}, n)
}

// AddBands concatenates the bands of n and others.
func (n *Node) AddBands(others ...*Node) *Node { return Cat(append([]*Node{n}, others...)...) }

// Cat concatenates the bands of all nodes; names must stay unique.
func Cat(nodes ...*Node) *Node { return newNode(OpCat, Params{}, nodes...) }

// UpdateMask undefines pixels where mask is zero or undefined.
func (n *Node) UpdateMask(mask *Node) *Node { return newNode(OpUpdateMask, Params{}, n, mask) }

// Unmask fills undefined pixels with fill.
func (n *Node) Unmask(fill float64) *Node {
	return newNode(OpUnmask, Params{Floats: []float64{fill}}, n)
}

// NormalizedDifference computes (a−b)/(a+b) into band "nd".
func (n *Node) NormalizedDifference(a, b string) *Node {
	return newNode(OpNormalizedDifference, Params{Names: []string{a, b}}, n)
}

// ToArray stacks the bands into one array band along axis.
func (n *Node) ToArray(axis int) *Node {
	return newNode(OpToArray, Params{Ints: []int{axis}}, n)
}

func (n *Node) ArrayRepeat(axis, copies int) *Node {
	return newNode(OpArrayRepeat, Params{Ints: []int{axis, copies}}, n)
}

func (n *Node) ArrayTranspose(axis1, axis2 int) *Node {
	return newNode(OpArrayTranspose, Params{Ints: []int{axis1, axis2}}, n)
}

// ArrayProject keeps the listed axes, dropping the others (length 1 each).
func (n *Node) ArrayProject(axes ...int) *Node {
	return newNode(OpArrayProject, Params{Ints: append([]int(nil), axes...)}, n)
}

// ArraySlice keeps start, start+step, ... before end along axis.
func (n *Node) ArraySlice(axis, start, end, step int) *Node {
	return newNode(OpArraySlice, Params{Ints: []int{axis, start, end, step}}, n)
}

// ArrayGet extracts one element.
func (n *Node) ArrayGet(index ...int) *Node {
	return newNode(OpArrayGet, Params{Ints: append([]int(nil), index...)}, n)
}

// ArrayFlatten turns the array band into named scalar bands, one label list
// per axis joined with "_".
func (n *Node) ArrayFlatten(labels ...[]string) *Node {
	ls := make([][]string, len(labels))
	for i, l := range labels {
		ls[i] = append([]string(nil), l...)
	}

	return newNode(OpArrayFlatten, Params{Labels: ls, Names: []string{"_"}}, n)
}

func (n *Node) MatrixMultiply(o *Node) *Node { return newNode(OpMatrixMultiply, Params{}, n, o) }
func (n *Node) MatrixTranspose() *Node       { return newNode(OpMatrixTranspose, Params{}, n) }
func (n *Node) MatrixInverse() *Node         { return newNode(OpMatrixInverse, Params{}, n) }
func (n *Node) MatrixToDiag() *Node          { return newNode(OpMatrixToDiag, Params{}, n) }

// MatrixPseudoInverse uses the evaluator's tolerance.
func (n *Node) MatrixPseudoInverse() *Node { return n.MatrixPseudoInverseTol(0) }

// MatrixPseudoInverseTol overrides the relative singular-value cutoff.
func (n *Node) MatrixPseudoInverseTol(tol float64) *Node {
	return newNode(OpMatrixPseudoInverse, Params{Floats: []float64{tol}}, n)
}

// Eigen decomposes a symmetric matrix into the N×(N+1) layout [λ | V].
func (n *Node) Eigen() *Node { return newNode(OpEigen, Params{}, n) }

// EigenValues is column 0 of Eigen: an N×1 matrix, largest first.
func (n *Node) EigenValues() *Node { return n.Eigen().ArraySlice(1, 0, 1, 1) }

// EigenVectors is columns 1..N of Eigen: eigenvector j in column j.
func (n *Node) EigenVectors() *Node { return n.Eigen().ArraySlice(1, 1, math.MaxInt32, 1) }

// FocalMedian smooths every scalar band with a square window.
func (n *Node) FocalMedian(radius int) *Node {
	return newNode(OpFocalMedian, Params{Ints: []int{radius}}, n)
}

// ReduceRegion folds the pixels inside footprint (nil for the whole grid)
// sampled at scale. scale <= 0 defers to the evaluator default.
func (n *Node) ReduceRegion(r reduce.Reducer, footprint orb.Geometry, scale float64) *Node {
	return newNode(OpReduceRegion, Params{Reducer: r, Geom: footprint, Floats: []float64{scale}}, n)
}

// Composite reduces rasters pixel by pixel into "<band>_<reducer>" bands.
func Composite(r reduce.Reducer, rasters ...*Node) *Node {
	return newNode(OpComposite, Params{Reducer: r}, rasters...)
}

// Classify applies a trained classifier per pixel.
func (n *Node) Classify(t *classify.Trained) *Node {
	if t == nil {
		return invalid(fmt.Errorf("classify: %w", ErrNilOperand))
	}

	return newNode(OpClassify, Params{Trained: t}, n)
}

// ConnectedPixelCount maps pixels to the capped size of their region.
func (n *Node) ConnectedPixelCount(maxSize int, eightConnected bool) *Node {
	conn := gridgraph.Conn4
	if eightConnected {
		conn = gridgraph.Conn8
	}

	return newNode(OpConnectedPixelCount, Params{Ints: []int{maxSize}, Conn: conn}, n)
}

// Terrain adds elevation, slope and aspect computed from band ("" for the
// only band).
func (n *Node) Terrain(band string) *Node {
	return newNode(OpTerrain, Params{Names: []string{band}}, n)
}

// Hillshade illuminates band from the sun at azimuth and zenith (degrees).
func (n *Node) Hillshade(band string, azimuth, zenith float64) *Node {
	return newNode(OpHillshade, Params{Names: []string{band}, Floats: []float64{azimuth, zenith}}, n)
}

// HillshadeFrom composes the hillshade of slope and aspect nodes (degrees)
// out of element-wise trigonometry:
//
//	cos(az − aspect)·sin(slope)·sin(ze) + cos(ze)·cos(slope)
func HillshadeFrom(slope, aspect *Node, azimuth, zenith float64) *Node {
	az, ze := Scalar(azimuth).Unary(algebra.OpRadians), Scalar(zenith).Unary(algebra.OpRadians)
	s, a := slope.Unary(algebra.OpRadians), aspect.Unary(algebra.OpRadians)

	return az.Subtract(a).Cos().
		Multiply(s.Sin()).
		Multiply(ze.Sin()).
		Add(ze.Cos().Multiply(s.Cos()))
}
