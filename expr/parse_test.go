package expr_test

import (
	"testing"

	"github.com/katalvlaran/lvraster/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpression_BuildsEquivalentGraph(t *testing.T) {
	t.Parallel()

	img := image(t, "scene")
	cases := []struct {
		name string
		text string
		want *expr.Node
	}{
		{"band by name", "b('B4')", img.Select("B4")},
		{"band by index", "b(1)", img.SelectIndex(1)},
		{"precedence", "b('B4') + 2 * 3", img.Select("B4").Add(expr.Scalar(2).Multiply(expr.Scalar(3)))},
		{"left assoc", "8 - 2 - 1", expr.Scalar(8).Subtract(expr.Scalar(2)).Subtract(expr.Scalar(1))},
		{"power right assoc", "2 ** 3 ** 2", expr.Scalar(2).Pow(expr.Scalar(3).Pow(expr.Scalar(2)))},
		{"unary minus", "-b('B4')", img.Select("B4").Negate()},
		{"parentheses", "(1 + 2) * 3", expr.Scalar(1).Add(expr.Scalar(2)).Multiply(expr.Scalar(3))},
		{"function", "sqrt(abs(b('B5')))", img.Select("B5").Abs().Sqrt()},
		{"binary function", "max(b('B4'), 0.5)", img.Select("B4").Max(expr.Scalar(0.5))},
		{"logic", "b('B4') > 1 && !(b('B5') == 3)", img.Select("B4").Gt(expr.Scalar(1)).And(img.Select("B5").Eq(expr.Scalar(3)).Not())},
		{
			"nested ternary",
			"b('B4') > 1 ? 2 : b('B4') > 0 ? 1 : 0",
			expr.Where(img.Select("B4").Gt(expr.Scalar(1)), expr.Scalar(2),
				expr.Where(img.Select("B4").Gt(expr.Scalar(0)), expr.Scalar(1), expr.Scalar(0))),
		},
		{"exponent literal", "1.5e2", expr.Scalar(150)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := expr.Expression(tc.text, img, nil)
			require.NoError(t, got.Err())
			assert.Equal(t, tc.want.Key(), got.Key())
		})
	}
}

func TestExpression_Variables(t *testing.T) {
	t.Parallel()

	img := image(t, "scene")
	nir, red := img.Select("B5"), img.Select("B4")
	got := expr.Expression("(nir - red) / (nir + red)", nil, map[string]*expr.Node{"nir": nir, "red": red})
	require.NoError(t, got.Err())
	assert.Equal(t, nir.Subtract(red).Divide(nir.Add(red)).Key(), got.Key())
}

func TestExpression_Errors(t *testing.T) {
	t.Parallel()

	img := image(t, "scene")
	cases := []struct {
		text string
		want error
	}{
		{"1 +", expr.ErrSyntax},
		{"(1 + 2", expr.ErrSyntax},
		{"1 ? 2", expr.ErrSyntax},
		{"b('B4'", expr.ErrSyntax},
		{"b('B4) + 1", expr.ErrSyntax},
		{"1 $ 2", expr.ErrSyntax},
		{"1 2", expr.ErrSyntax},
		{"sqrt(1, 2)", expr.ErrSyntax},
		{"b(-1)", expr.ErrSyntax},
		{"ndvi * 2", expr.ErrUnknownName},
		{"frobnicate(1)", expr.ErrUnknownName},
	}
	for _, tc := range cases {
		got := expr.Expression(tc.text, img, nil)
		require.NotNil(t, got, tc.text)
		assert.ErrorIs(t, got.Err(), tc.want, tc.text)
	}

	noImage := expr.Expression("b('B4')", nil, nil)
	assert.ErrorIs(t, noImage.Err(), expr.ErrNilOperand)
}
