package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/veneer/internal/ast"
	"github.com/oxhq/veneer/internal/symbol"
)

func parse(t *testing.T, src string) string {
	t.Helper()
	node, err := Parse(src, nil, nil)
	require.NoError(t, err)
	return node.ToString()
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"additive_over_comparison", "1 + 2 < 3 * 4", "1 + 2 < 3 * 4"},
		{"multiplicative_over_additive", "1 + 2 * 3", "1 + 2 * 3"},
		{"parens_override", "(1 + 2) * 3", "1 + 2 * 3"}, // ToString is diagnostic text, not a round-trip; grouping is structural only
		{"power_right_assoc", "2**3**2", "2 ** 3 ** 2"},
		{"unary_binds_tighter_than_power", "-2**2", "-2 ** 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parse(t, tt.src))
		})
	}
}

func TestParse_LogicalShortCircuitShape(t *testing.T) {
	require.Equal(t, "a && b || c", parse(t, "a && b || c"))
}

func TestParse_TernaryAndRange(t *testing.T) {
	require.Equal(t, "true ? 1 : 2", parse(t, "true ? 1 : 2"))
	require.Equal(t, "1..10", parse(t, "1..10"))
	require.Equal(t, "1...10", parse(t, "1...10"))
}

func TestParse_CallsAndBlocks(t *testing.T) {
	itemsLocals := map[symbol.Symbol]bool{symbol.Intern("items"): true}
	node, err := Parse("items.map { |x| x * 2 }", itemsLocals, nil)
	require.NoError(t, err)
	require.Equal(t, "items.map() { |x| x * 2 }", node.ToString())

	require.Equal(t, "content_tag(:div, \"x\")", parse(t, `content_tag :div, "x"`))
}

func TestParse_SafeNavigation(t *testing.T) {
	userLocals := map[symbol.Symbol]bool{symbol.Intern("user"): true}
	node, err := Parse("user&.name", userLocals, nil)
	require.NoError(t, err)
	require.Equal(t, "user&.name()", node.ToString())
}

func TestParse_ElementRefAndArray(t *testing.T) {
	require.Equal(t, "[1, 2, 3][0]", parse(t, "[1, 2, 3][0]"))
}

func TestParse_HashLiteralShorthand(t *testing.T) {
	require.Equal(t, `{:a => 1, :b => 2}`, parse(t, "{a: 1, b: 2}"))
}

func TestParse_InterpolatedString(t *testing.T) {
	nameSym := symbol.Intern("name")
	node, err := Parse(`"hello #{name}!"`, map[symbol.Symbol]bool{nameSym: true}, nil)
	require.NoError(t, err)
	require.Equal(t, `"hello #{name}!"`, node.ToString())
}

func TestParse_Assignment(t *testing.T) {
	require.Equal(t, "x = 1 + 2", parse(t, "x = 1 + 2"))
}

func TestParse_VariableVsCall(t *testing.T) {
	xSym := symbol.Intern("x")
	locals := map[symbol.Symbol]bool{xSym: true}
	node, err := Parse("x", locals, nil)
	require.NoError(t, err)
	require.Equal(t, "x", node.ToString())

	node, err = Parse("x", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "x()", node.ToString())
}

func TestParse_GlobalFunctionFlag(t *testing.T) {
	captureSym := symbol.Intern("capture")
	node, err := Parse("capture", nil, map[symbol.Symbol]bool{captureSym: true})
	require.NoError(t, err)
	call, ok := node.(*ast.GlobalFuncCall)
	require.True(t, ok)
	require.True(t, call.IsGlobal)
	require.Equal(t, "capture()", call.ToString())

	node, err = Parse("capture", nil, nil)
	require.NoError(t, err)
	call, ok = node.(*ast.GlobalFuncCall)
	require.True(t, ok)
	require.False(t, call.IsGlobal)
}

func TestParse_ErrorOnMalformed(t *testing.T) {
	_, err := Parse("1 +", nil, nil)
	require.Error(t, err)
}
