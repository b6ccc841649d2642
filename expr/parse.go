package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/lvraster/algebra"
)

// Expression parses arithmetic text into nodes over image and vars.
//
//	b('name')  band of image          b(0)  band of image by position
//	name       vars[name]             pi, e constants
//	c ? x : y  per-pixel choice       || && ! == != < <= > >=  (1/0 results)
//	+ - * / % **                      abs(x) sqrt(x) ... min(x,y) max(x,y)
//
// Parse errors do not panic or return: the result is a node that fails with
// ErrSyntax or ErrUnknownName when evaluated.
func Expression(text string, image *Node, vars map[string]*Node) *Node {
	p := &parser{src: text, image: image, vars: vars}
	n, err := p.parse()
	if err != nil {
		return invalid(fmt.Errorf("expression %q: %w", text, err))
	}

	return n
}

var unaryFuncs = map[string]algebra.UnaryOp{
	"abs": algebra.OpAbs, "sqrt": algebra.OpSqrt, "exp": algebra.OpExp,
	"log": algebra.OpLog, "log10": algebra.OpLog10,
	"sin": algebra.OpSin, "cos": algebra.OpCos, "tan": algebra.OpTan,
	"asin": algebra.OpAsin, "acos": algebra.OpAcos, "atan": algebra.OpAtan,
	"floor": algebra.OpFloor, "ceil": algebra.OpCeil, "round": algebra.OpRound,
	"float": algebra.OpToFloat, "int": algebra.OpToInt, "byte": algebra.OpToByte,
	"radians": algebra.OpRadians, "degrees": algebra.OpDegrees,
}

var binaryFuncs = map[string]algebra.BinaryOp{
	"min": algebra.OpMin, "max": algebra.OpMax, "atan2": algebra.OpAtan2, "pow": algebra.OpPow,
}

var compareOps = map[string]algebra.BinaryOp{
	"==": algebra.OpEq, "!=": algebra.OpNeq,
	"<": algebra.OpLt, "<=": algebra.OpLte, ">": algebra.OpGt, ">=": algebra.OpGte,
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokIdent
	tokStr
	tokOp
)

type token struct {
	kind tokKind
	text string
	num  float64
	pos  int
}

type parser struct {
	src   string
	image *Node
	vars  map[string]*Node
	toks  []token
	at    int
}

func (p *parser) parse() (*Node, error) {
	if err := p.lex(); err != nil {
		return nil, err
	}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}

	return n, nil
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return fmt.Errorf("at %d: %s: %w", t.pos, fmt.Sprintf(format, args...), ErrSyntax)
}

var operators = []string{"**", "==", "!=", "<=", ">=", "&&", "||", "+", "-", "*", "/", "%", "<", ">", "!", "?", ":", "(", ")", ","}

func (p *parser) lex() error {
	s := p.src
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || (c == '.' && i+1 < len(s) && unicode.IsDigit(rune(s[i+1]))):
			j := i
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.') {
				j++
			}
			if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
				k := j + 1
				if k < len(s) && (s[k] == '+' || s[k] == '-') {
					k++
				}
				if k < len(s) && unicode.IsDigit(rune(s[k])) {
					for j = k; j < len(s) && unicode.IsDigit(rune(s[j])); j++ {
					}
				}
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return fmt.Errorf("at %d: number %q: %w", i, s[i:j], ErrSyntax)
			}
			p.toks = append(p.toks, token{kind: tokNum, text: s[i:j], num: v, pos: i})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			p.toks = append(p.toks, token{kind: tokIdent, text: s[i:j], pos: i})
			i = j
		case c == '\'' || c == '"':
			j := strings.IndexByte(s[i+1:], byte(c))
			if j < 0 {
				return fmt.Errorf("at %d: unterminated string: %w", i, ErrSyntax)
			}
			p.toks = append(p.toks, token{kind: tokStr, text: s[i+1 : i+1+j], pos: i})
			i += j + 2
		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(s[i:], op) {
					p.toks = append(p.toks, token{kind: tokOp, text: op, pos: i})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				return fmt.Errorf("at %d: unexpected %q: %w", i, c, ErrSyntax)
			}
		}
	}
	p.toks = append(p.toks, token{kind: tokEOF, pos: len(s)})

	return nil
}

func (p *parser) peek() token { return p.toks[p.at] }

func (p *parser) next() token {
	t := p.toks[p.at]
	if t.kind != tokEOF {
		p.at++
	}
	return t
}

// accept consumes the operator op if it is next.
func (p *parser) accept(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.at++
		return true
	}
	return false
}

func (p *parser) expect(op string) error {
	if !p.accept(op) {
		t := p.peek()
		return p.errorf(t, "want %q, got %q", op, t.text)
	}
	return nil
}

func (p *parser) ternary() (*Node, error) {
	cond, err := p.or()
	if err != nil || !p.accept("?") {
		return cond, err
	}
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err = p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}

	return Where(cond, then, els), nil
}

// binaryLevel parses operand (op operand)* left-associatively.
func (p *parser) binaryLevel(operand func() (*Node, error), ops map[string]algebra.BinaryOp) (*Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, ok := ops[t.text]
		if t.kind != tokOp || !ok {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = left.Binary(op, right)
	}
}

func (p *parser) or() (*Node, error) {
	return p.binaryLevel(p.and, map[string]algebra.BinaryOp{"||": algebra.OpOr})
}

func (p *parser) and() (*Node, error) {
	return p.binaryLevel(p.compare, map[string]algebra.BinaryOp{"&&": algebra.OpAnd})
}

func (p *parser) compare() (*Node, error) { return p.binaryLevel(p.additive, compareOps) }

func (p *parser) additive() (*Node, error) {
	return p.binaryLevel(p.multiplicative, map[string]algebra.BinaryOp{"+": algebra.OpAdd, "-": algebra.OpSubtract})
}

func (p *parser) multiplicative() (*Node, error) {
	return p.binaryLevel(p.unary, map[string]algebra.BinaryOp{"*": algebra.OpMultiply, "/": algebra.OpDivide, "%": algebra.OpMod})
}

func (p *parser) unary() (*Node, error) {
	switch {
	case p.accept("-"):
		n, err := p.unary()
		if err != nil {
			return nil, err
		}
		return n.Negate(), nil
	case p.accept("!"):
		n, err := p.unary()
		if err != nil {
			return nil, err
		}
		return n.Not(), nil
	}

	return p.power()
}

func (p *parser) power() (*Node, error) {
	base, err := p.primary()
	if err != nil || !p.accept("**") {
		return base, err
	}
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}

	return base.Pow(exp), nil
}

func (p *parser) primary() (*Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return Scalar(t.num), nil
	case tokOp:
		if t.text == "(" {
			n, err := p.ternary()
			if err != nil {
				return nil, err
			}
			return n, p.expect(")")
		}
	case tokIdent:
		if p.accept("(") {
			return p.call(t)
		}
		if v, ok := p.vars[t.text]; ok {
			return v, nil
		}
		switch t.text {
		case "pi", "PI":
			return Scalar(math.Pi), nil
		case "e", "E":
			return Scalar(math.E), nil
		}
		return nil, fmt.Errorf("at %d: %q: %w", t.pos, t.text, ErrUnknownName)
	}

	return nil, p.errorf(t, "unexpected %q", t.text)
}

// call parses the arguments of name( ... ) after the opening parenthesis.
func (p *parser) call(name token) (*Node, error) {
	if name.text == "b" {
		return p.band(name)
	}
	var args []*Node
	if !p.accept(")") {
		for {
			a, err := p.ternary()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.accept(")") {
				break
			}
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if op, ok := unaryFuncs[name.text]; ok && len(args) == 1 {
		return args[0].Unary(op), nil
	}
	if op, ok := binaryFuncs[name.text]; ok && len(args) == 2 {
		return args[0].Binary(op, args[1]), nil
	}
	_, isUnary := unaryFuncs[name.text]
	_, isBinary := binaryFuncs[name.text]
	if isUnary || isBinary {
		return nil, p.errorf(name, "%s with %d arguments", name.text, len(args))
	}

	return nil, fmt.Errorf("at %d: function %q: %w", name.pos, name.text, ErrUnknownName)
}

// band parses b('name') or b(index).
func (p *parser) band(name token) (*Node, error) {
	if p.image == nil {
		return nil, fmt.Errorf("at %d: b() without an image: %w", name.pos, ErrNilOperand)
	}
	t := p.next()
	var n *Node
	switch {
	case t.kind == tokStr:
		n = p.image.Select(t.text)
	case t.kind == tokNum && t.num == math.Trunc(t.num) && t.num >= 0:
		n = p.image.SelectIndex(int(t.num))
	default:
		return nil, p.errorf(t, "band reference %q", t.text)
	}

	return n, p.expect(")")
}
