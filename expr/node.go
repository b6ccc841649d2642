package expr

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/katalvlaran/lvraster/classify"
	"github.com/katalvlaran/lvraster/gridgraph"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/katalvlaran/lvraster/reduce"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// Op names a node's operation.
type Op string

const (
	OpInvalid              Op = "invalid"
	OpSource               Op = "source"
	OpConstant             Op = "constant"
	OpBinary               Op = "binary"
	OpUnary                Op = "unary"
	OpWhere                Op = "where"
	OpSelect               Op = "select"
	OpRename               Op = "rename"
	OpCat                  Op = "cat"
	OpUpdateMask           Op = "updateMask"
	OpUnmask               Op = "unmask"
	OpNormalizedDifference Op = "normalizedDifference"
	OpToArray              Op = "toArray"
	OpArrayRepeat          Op = "arrayRepeat"
	OpArrayTranspose       Op = "arrayTranspose"
	OpArrayProject         Op = "arrayProject"
	OpArraySlice           Op = "arraySlice"
	OpArrayGet             Op = "arrayGet"
	OpArrayFlatten         Op = "arrayFlatten"
	OpMatrixMultiply       Op = "matrixMultiply"
	OpMatrixTranspose      Op = "matrixTranspose"
	OpMatrixInverse        Op = "matrixInverse"
	OpMatrixPseudoInverse  Op = "matrixPseudoInverse"
	OpEigen                Op = "eigen"
	OpMatrixToDiag         Op = "matrixToDiag"
	OpIdentity             Op = "identity"
	OpFocalMedian          Op = "focalMedian"
	OpReduceRegion         Op = "reduceRegion"
	OpComposite            Op = "composite"
	OpClassify             Op = "classify"
	OpConnectedPixelCount  Op = "connectedPixelCount"
	OpTerrain              Op = "terrain"
	OpHillshade            Op = "hillshade"
)

// Params holds the non-node arguments of an operation. Only the fields an
// operation uses are set.
type Params struct {
	Names   []string
	Ints    []int
	Floats  []float64
	Labels  [][]string
	Binary  algebra.BinaryOp
	Unary   algebra.UnaryOp
	Value   raster.Value
	Source  raster.Source
	Reducer reduce.Reducer
	Geom    orb.Geometry
	Trained *classify.Trained
	Conn    gridgraph.Connectivity
}

// Node is one immutable vertex of an expression graph.
type Node struct {
	op     Op
	args   []*Node
	params Params
	err    error
	key    string
}

func newNode(op Op, p Params, args ...*Node) *Node {
	n := &Node{op: op, params: p, args: args}
	for i, a := range args {
		if a == nil {
			n.err = fmt.Errorf("%s operand %d: %w", op, i, ErrNilOperand)
			break
		}
	}
	n.key = n.computeKey()

	return n
}

// invalid returns a node that fails with err when evaluated.
func invalid(err error) *Node {
	return newNode(OpInvalid, Params{Names: []string{err.Error()}}).withErr(err)
}

func (n *Node) withErr(err error) *Node {
	n.err = err
	return n
}

// Op returns the operation.
func (n *Node) Op() Op { return n.op }

// Args returns the operand nodes.
func (n *Node) Args() []*Node { return append([]*Node(nil), n.args...) }

// Params returns the operation parameters.
func (n *Node) Params() Params { return n.params }

// Err reports an error recorded at construction, surfaced on evaluation.
func (n *Node) Err() error { return n.err }

// Key returns the structural key: equal keys denote interchangeable nodes.
func (n *Node) Key() string { return n.key }

// ShortKey returns the first 8 characters of Key, for logs.
func (n *Node) ShortKey() string { return n.key[:8] }

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s#%s", n.op, n.ShortKey())
}

func (n *Node) computeKey() string {
	var sb strings.Builder
	sb.WriteString(string(n.op))
	sb.WriteByte('(')
	p := n.params
	for _, s := range p.Names {
		sb.WriteString(strconv.Quote(s))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, i := range p.Ints {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	writeFloats(&sb, p.Floats)
	sb.WriteByte('|')
	for _, ls := range p.Labels {
		sb.WriteString(strconv.Quote(strings.Join(ls, "\x00")))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	sb.WriteString(string(p.Binary))
	sb.WriteString(string(p.Unary))
	sb.WriteByte('|')
	switch v := p.Value.(type) {
	case raster.Scalar:
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	case *raster.Array:
		sb.WriteString(v.Shape.String())
		writeFloats(&sb, v.Data)
		sb.WriteString(strings.Join(v.Labels, "\x00"))
	}
	sb.WriteByte('|')
	if p.Source != nil {
		sb.WriteString(strconv.Quote(p.Source.ID()))
	}
	sb.WriteByte('|')
	if n.op == OpReduceRegion || n.op == OpComposite {
		sb.WriteString(p.Reducer.Name())
	}
	sb.WriteByte('|')
	if p.Geom != nil {
		sb.WriteString(wkt.MarshalString(p.Geom))
	}
	sb.WriteByte('|')
	if p.Trained != nil {
		fmt.Fprintf(&sb, "%p", p.Trained)
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(p.Conn)))
	sb.WriteString(")[")
	for _, a := range n.args {
		if a == nil {
			sb.WriteString("nil")
		} else {
			sb.WriteString(a.key)
		}
		sb.WriteByte(',')
	}
	sb.WriteByte(']')

	sum := sha256.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:16])
}

func writeFloats(sb *strings.Builder, xs []float64) {
	for _, f := range xs {
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		sb.WriteByte(',')
	}
}
