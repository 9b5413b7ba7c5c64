package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

func build(t *testing.T, src string) *symbols.Table {
	t.Helper()

	statements, diags := syntax.Parse(syntax.Lex(src))
	require.Empty(t, diags)
	return symbols.Build(statements)
}

func keys(syms []*symbols.Symbol) []string {
	out := make([]string, 0, len(syms))
	for _, sym := range syms {
		out = append(out, sym.Key)
	}
	return out
}

func integers(t *testing.T, value syntax.Value) []uint64 {
	t.Helper()

	tuple, ok := value.(*syntax.Tuple)
	require.True(t, ok, "expected tuple, got %T", value)

	out := make([]uint64, 0, len(tuple.Values))
	for _, item := range tuple.Values {
		integer, ok := item.(*syntax.Integer)
		require.True(t, ok)
		out = append(out, integer.Value)
	}
	return out
}

func styleValue(t *testing.T, sym *symbols.Symbol, key string) syntax.Value {
	t.Helper()

	kind, ok := sym.Kind.(symbols.StyleKind)
	require.True(t, ok, "expected style symbol, got %s", symbols.KindName(sym.Kind))
	value, ok := kind.Properties.Get(key)
	require.True(t, ok)
	return value
}

const importSource = `setup {
    style x { gap: 2px }
    style y { gap: 3px }
}
view {
    use setup
    style x { gap: 1px }
}
`

func TestBuildKeys(t *testing.T) {
	t.Parallel()

	table := build(t, "view {}\nview {}\nsetup {}\n: hi\nuse setup\nstyle card { gap: 1px }\n")

	children := table.Children(symbols.RootID)
	assert.Equal(t, []string{
		"0", "1", "setup", "2", "3", "card",
		symbols.FuncRGB, symbols.FuncRGBA, symbols.FuncRect, symbols.FuncRectXY, symbols.FuncRectAll,
	}, keys(children))

	assert.Equal(t, "view", children[0].Name)
	assert.IsType(t, symbols.TextKind{}, children[3].Kind)
	assert.IsType(t, symbols.UseKind{}, children[4].Kind)
	for _, child := range children {
		assert.Equal(t, symbols.RootID, child.Parent)
	}
}

func TestBuildNestedParents(t *testing.T) {
	t.Parallel()

	table := build(t, "view {\n  view {\n    \"hi\"\n  }\n}\n")

	text, ok := table.ResolveIndices([]int{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, symbols.TextKind{Value: "hi"}, text.Kind)
	assert.Equal(t, []string{"0", "0", "0"}, table.Path(text.ID))

	parent, ok := table.Parent(text)
	require.True(t, ok)
	assert.Equal(t, "view", parent.Name)
}

func TestBuildStyleProperties(t *testing.T) {
	t.Parallel()

	table := build(t, "style card {\n  gap: 1px\n  padding: rect_all(2px)\n  gap: 5px\n  inner { gap: 9px }\n  { radius: rect_all(3px) }\n}\n")

	card, ok := table.ResolveChain([]string{"card"})
	require.True(t, ok)

	kind := card.Kind.(symbols.StyleKind)
	assert.Equal(t, 3, kind.Properties.Len(), "duplicate keys overwrite, anonymous blocks flatten")

	gap, ok := styleValue(t, card, "gap").(*syntax.Integer)
	require.True(t, ok)
	assert.Equal(t, uint64(5), gap.Value)

	inner, ok := table.ResolveChain([]string{"card", "inner"})
	require.True(t, ok)
	innerGap := styleValue(t, inner, "gap").(*syntax.Integer)
	assert.Equal(t, uint64(9), innerGap.Value)
}

func TestBuildMergesAnonymousStyleBlocks(t *testing.T) {
	t.Parallel()

	table := build(t, "style {\n  a { gap: 1px }\n}\nstyle {\n  b { gap: 2px }\n}\n")

	block, ok := table.Child(symbols.RootID, symbols.KeyStyle)
	require.True(t, ok)
	assert.True(t, block.IsAnonymousStyle())
	assert.Equal(t, []string{"a", "b"}, keys(table.Children(block.ID)))

	sym, ok := table.Resolve(symbols.RootID, "b")
	require.True(t, ok)
	assert.Equal(t, "b", sym.Key)
}

func TestResolveScopePrecedence(t *testing.T) {
	t.Parallel()

	table := build(t, importSource)

	view, ok := table.ResolveIndices([]int{1})
	require.True(t, ok)

	x, ok := table.Resolve(view.ID, "x")
	require.True(t, ok)
	assert.Equal(t, view.ID, x.Parent, "local declaration wins over import")
	assert.Equal(t, uint64(1), styleValue(t, x, "gap").(*syntax.Integer).Value)
}

func TestResolveImportFallback(t *testing.T) {
	t.Parallel()

	table := build(t, importSource)

	view, ok := table.ResolveIndices([]int{1})
	require.True(t, ok)
	setup, ok := table.ResolveChain([]string{"setup"})
	require.True(t, ok)

	y, ok := table.Resolve(view.ID, "y")
	require.True(t, ok)
	assert.Equal(t, setup.ID, y.Parent)
	assert.Equal(t, uint64(3), styleValue(t, y, "gap").(*syntax.Integer).Value)

	target, ok := table.Resolve(view.ID, "setup")
	require.True(t, ok)
	assert.Equal(t, setup.ID, target.ID)
}

func TestResolveWalksAncestors(t *testing.T) {
	t.Parallel()

	table := build(t, "style card { gap: 1px }\nview {\n  view {\n    \"hi\"\n  }\n}\n")

	text, ok := table.ResolveIndices([]int{1, 0, 0})
	require.True(t, ok)

	card, ok := table.Resolve(text.ID, "card")
	require.True(t, ok)
	assert.Equal(t, symbols.RootID, card.Parent)

	_, ok = table.Resolve(text.ID, "missing")
	assert.False(t, ok)
}

func TestResolveImportCycleTerminates(t *testing.T) {
	t.Parallel()

	table := build(t, "setup {\n  use setup\n}\n")

	setup, ok := table.ResolveChain([]string{"setup"})
	require.True(t, ok)

	_, ok = table.Resolve(setup.ID, "nothing")
	assert.False(t, ok)
}

func TestResolveChainMisses(t *testing.T) {
	t.Parallel()

	table := build(t, importSource)

	_, ok := table.ResolveChain([]string{"setup", "missing"})
	assert.False(t, ok)
	_, ok = table.ResolveIndices([]int{9})
	assert.False(t, ok)
}

func TestVisible(t *testing.T) {
	t.Parallel()

	table := build(t, importSource)
	view, ok := table.ResolveIndices([]int{1})
	require.True(t, ok)

	visible := keys(table.Visible(view.ID))
	assert.Equal(t, "x", visible[0])
	assert.Contains(t, visible, "setup")
	assert.Contains(t, visible, "y")
	assert.Contains(t, visible, symbols.FuncRectAll)
	assert.NotContains(t, visible, "0")

	count := 0
	for _, key := range visible {
		if key == "x" {
			count++
		}
	}
	assert.Equal(t, 1, count, "shadowed names are listed once")
}

func TestCallBuiltins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		call     string
		expected []uint64
	}{
		{name: "rect_all", call: "rect_all(4)", expected: []uint64{4, 4, 4, 4}},
		{name: "rect_xy", call: "rect_xy(2, 3)", expected: []uint64{2, 3, 2, 3}},
		{name: "rect", call: "rect(1, 2, 3, 4)", expected: []uint64{1, 2, 3, 4}},
		{name: "rgb", call: "rgb(10, 20, 30)", expected: []uint64{10, 20, 30}},
		{name: "rgba clamps", call: "rgba(300, 0, 256, 255)", expected: []uint64{255, 0, 255, 255}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			table := build(t, "view(v: "+testCase.call+") {}")
			view, ok := table.ResolveIndices([]int{0})
			require.True(t, ok)

			arg, ok := view.Kind.(symbols.NodeKind).Args.Lookup("v")
			require.True(t, ok)
			fn := arg.(*syntax.Function)

			value, err := table.Call(view.ID, fn)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, integers(t, value))
		})
	}
}

func TestCallPreservesUnits(t *testing.T) {
	t.Parallel()

	table := build(t, "view(v: rect_xy(2px, 3px)) {}")
	view, _ := table.ResolveIndices([]int{0})
	arg, _ := view.Kind.(symbols.NodeKind).Args.Lookup("v")

	value, err := table.Call(view.ID, arg.(*syntax.Function))
	require.NoError(t, err)

	for _, item := range value.(*syntax.Tuple).Values {
		assert.Equal(t, syntax.UnitPixel, item.(*syntax.Integer).Unit)
	}
}

func TestCallErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call string
		err  error
	}{
		{name: "unknown", call: "nope(1)", err: symbols.ErrUnknownFunction},
		{name: "arity", call: "rect_all(1, 2)", err: symbols.ErrArity},
		{name: "type", call: "rect_all(wide)", err: symbols.ErrArgumentType},
		{name: "not a function", call: "setup(1)", err: symbols.ErrNotFunction},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			table := build(t, "setup {}\nview(v: "+testCase.call+") {}")
			view, ok := table.ResolveIndices([]int{1})
			require.True(t, ok)
			arg, _ := view.Kind.(symbols.NodeKind).Args.Lookup("v")

			_, err := table.Call(view.ID, arg.(*syntax.Function))
			require.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestSignature(t *testing.T) {
	t.Parallel()

	table := symbols.Build(nil)
	sym, ok := table.Child(symbols.RootID, symbols.FuncRectXY)
	require.True(t, ok)

	assert.Equal(t, "rect_xy(int, int) -> tuple4", symbols.Signature(sym.Key, sym.Kind.(symbols.FunctionKind)))
}

func TestBuiltinsReplaceRootSymbolOfSameName(t *testing.T) {
	t.Parallel()

	table := build(t, "style rect { gap: 3px }\nstyle card { gap: 2px }\n")

	sym, ok := table.Child(symbols.RootID, symbols.FuncRect)
	require.True(t, ok)
	assert.IsType(t, symbols.FunctionKind{}, sym.Kind, "builtins are inserted after the walk")

	card, ok := table.Child(symbols.RootID, "card")
	require.True(t, ok)
	assert.IsType(t, symbols.StyleKind{}, card.Kind)
}

func TestLookupsAreCaseSensitive(t *testing.T) {
	t.Parallel()

	table := build(t, "style card { gap: 2px }\nview {}\n")
	view, ok := table.ResolveIndices([]int{1})
	require.True(t, ok)

	_, ok = table.Resolve(view.ID, "card")
	assert.True(t, ok)
	_, ok = table.Resolve(view.ID, "Card")
	assert.False(t, ok)
	_, ok = table.Child(symbols.RootID, "CARD")
	assert.False(t, ok)
}
