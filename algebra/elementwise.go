package algebra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/raster"
)

// BinaryOp names an element-wise operation of two operands.
type BinaryOp string

// Element-wise binary operations. Comparisons and logic yield 1 or 0.
const (
	OpAdd      BinaryOp = "add"
	OpSubtract BinaryOp = "subtract"
	OpMultiply BinaryOp = "multiply"
	OpDivide   BinaryOp = "divide"
	OpPow      BinaryOp = "pow"
	OpMod      BinaryOp = "mod"
	OpMin      BinaryOp = "min"
	OpMax      BinaryOp = "max"
	OpAtan2    BinaryOp = "atan2"
	OpAnd      BinaryOp = "and"
	OpOr       BinaryOp = "or"
	OpEq       BinaryOp = "eq"
	OpNeq      BinaryOp = "neq"
	OpGt       BinaryOp = "gt"
	OpGte      BinaryOp = "gte"
	OpLt       BinaryOp = "lt"
	OpLte      BinaryOp = "lte"
)

func truth(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// Division and mod by zero yield 0.
var binaryFuncs = map[BinaryOp]func(a, b float64) float64{
	OpAdd:      func(a, b float64) float64 { return a + b },
	OpSubtract: func(a, b float64) float64 { return a - b },
	OpMultiply: func(a, b float64) float64 { return a * b },
	OpDivide: func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	},
	OpPow: math.Pow,
	OpMod: func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return math.Mod(a, b)
	},
	OpMin:   math.Min,
	OpMax:   math.Max,
	OpAtan2: math.Atan2,
	OpAnd:   func(a, b float64) float64 { return truth(a != 0 && b != 0) },
	OpOr:    func(a, b float64) float64 { return truth(a != 0 || b != 0) },
	OpEq:    func(a, b float64) float64 { return truth(a == b) },
	OpNeq:   func(a, b float64) float64 { return truth(a != b) },
	OpGt:    func(a, b float64) float64 { return truth(a > b) },
	OpGte:   func(a, b float64) float64 { return truth(a >= b) },
	OpLt:    func(a, b float64) float64 { return truth(a < b) },
	OpLte:   func(a, b float64) float64 { return truth(a <= b) },
}

// Valid reports whether op is a known binary operation.
func (op BinaryOp) Valid() bool {
	_, ok := binaryFuncs[op]

	return ok
}

// UnaryOp names an element-wise operation of one operand.
type UnaryOp string

// Element-wise unary operations, including the numeric casts.
const (
	OpAbs     UnaryOp = "abs"
	OpNegate  UnaryOp = "negate"
	OpSqrt    UnaryOp = "sqrt"
	OpExp     UnaryOp = "exp"
	OpLog     UnaryOp = "log"
	OpLog10   UnaryOp = "log10"
	OpSin     UnaryOp = "sin"
	OpCos     UnaryOp = "cos"
	OpTan     UnaryOp = "tan"
	OpAsin    UnaryOp = "asin"
	OpAcos    UnaryOp = "acos"
	OpAtan    UnaryOp = "atan"
	OpFloor   UnaryOp = "floor"
	OpCeil    UnaryOp = "ceil"
	OpRound   UnaryOp = "round"
	OpNot     UnaryOp = "not"
	OpRadians UnaryOp = "radians"
	OpDegrees UnaryOp = "degrees"
	OpToFloat UnaryOp = "toFloat"
	OpToInt   UnaryOp = "toInt"
	OpToByte  UnaryOp = "toByte"
)

var unaryFuncs = map[UnaryOp]func(float64) float64{
	OpAbs:     math.Abs,
	OpNegate:  func(x float64) float64 { return -x },
	OpSqrt:    math.Sqrt,
	OpExp:     math.Exp,
	OpLog:     math.Log,
	OpLog10:   math.Log10,
	OpSin:     math.Sin,
	OpCos:     math.Cos,
	OpTan:     math.Tan,
	OpAsin:    math.Asin,
	OpAcos:    math.Acos,
	OpAtan:    math.Atan,
	OpFloor:   math.Floor,
	OpCeil:    math.Ceil,
	OpRound:   math.Round,
	OpNot:     func(x float64) float64 { return truth(x == 0) },
	OpRadians: func(x float64) float64 { return x * math.Pi / 180 },
	OpDegrees: func(x float64) float64 { return x * 180 / math.Pi },
	OpToFloat: func(x float64) float64 { return x },
	OpToInt:   toInt,
	OpToByte:  ToByte,
}

// Valid reports whether op is a known unary operation.
func (op UnaryOp) Valid() bool {
	_, ok := unaryFuncs[op]

	return ok
}

// ToByte clamps x to [0,255] and truncates toward zero. NaN maps to 0.
func ToByte(x float64) float64 {
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return math.Trunc(x)
	}
}

func toInt(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}

	return math.Trunc(x)
}

// Binary applies op element-wise to a and b. A NaN element, which marks an
// undefined array element, yields NaN.
func Binary(op BinaryOp, a, b raster.Value) (raster.Value, error) {
	fn, ok := binaryFuncs[op]
	if !ok {
		return nil, algebraErrorf(string(op), fmt.Errorf("unknown binary op: %w", raster.ErrUnsupported))
	}
	k := func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		out, err := broadcastShape(shapes)
		if err != nil {
			return nil, nil, err
		}
		return out, func(in [][]float64, dst []float64) error {
			x, y := in[0], in[1]
			var a, b float64
			for i := range dst {
				a, b = elem(x, i), elem(y, i)
				if math.IsNaN(a) || math.IsNaN(b) {
					dst[i] = math.NaN()
					continue
				}
				dst[i] = fn(a, b)
			}
			return nil
		}, nil
	}

	return apply(string(op), k, a, b)
}

// Unary applies op element-wise to v. NaN elements stay NaN.
func Unary(op UnaryOp, v raster.Value) (raster.Value, error) {
	fn, ok := unaryFuncs[op]
	if !ok {
		return nil, algebraErrorf(string(op), fmt.Errorf("unknown unary op: %w", raster.ErrUnsupported))
	}
	k := func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		return shapes[0].Clone(), func(in [][]float64, dst []float64) error {
			for i, x := range in[0] {
				if math.IsNaN(x) {
					dst[i] = x
					continue
				}
				dst[i] = fn(x)
			}
			return nil
		}, nil
	}

	return apply(string(op), k, v)
}

// Where selects, per pixel and element, then where cond is non-zero and
// otherwise els. Both branches are already-evaluated values, so choosing
// one has no effect on the other.
func Where(cond, then, els raster.Value) (raster.Value, error) {
	k := func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		out, err := broadcastShape(shapes)
		if err != nil {
			return nil, nil, err
		}
		return out, func(in [][]float64, dst []float64) error {
			t, e, c := in[0], in[1], in[2]
			var ci float64
			for i := range dst {
				ci = elem(c, i)
				switch {
				case math.IsNaN(ci):
					dst[i] = ci
				case ci != 0:
					dst[i] = elem(t, i)
				default:
					dst[i] = elem(e, i)
				}
			}
			return nil
		}, nil
	}

	return apply("where", k, then, els, cond)
}
