package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/syntax"
)

func parse(src string) ([]syntax.Statement, []syntax.Diagnostic) {
	return syntax.Parse(syntax.Lex(src))
}

func depth(statements []syntax.Statement) int {
	deepest := 0
	for _, stmt := range statements {
		el, ok := stmt.(*syntax.Element)
		if !ok {
			continue
		}
		if d := 1 + depth(el.Body); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func kinds(diags []syntax.Diagnostic) []syntax.DiagnosticKind {
	out := make([]syntax.DiagnosticKind, 0, len(diags))
	for _, diag := range diags {
		out = append(out, diag.Kind)
	}
	return out
}

func TestParseBalancedBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		depth int
	}{
		{name: "single", src: "view {}", depth: 1},
		{name: "inline nesting", src: "view { view { view {} } }", depth: 3},
		{name: "multiline nesting", src: "a {\n  b {\n    c {\n    }\n  }\n}\n", depth: 3},
		{name: "siblings", src: "a {\n  b {}\n  c { d {} }\n}\n", depth: 3},
		{name: "brace on next line", src: "view\n{\n}\n", depth: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			statements, diags := parse(testCase.src)
			if testCase.depth == 0 {
				assert.NotEmpty(t, diags)
				return
			}
			assert.Empty(t, diags)
			assert.Equal(t, testCase.depth, depth(statements))
		})
	}
}

func TestParseElementArgs(t *testing.T) {
	t.Parallel()

	statements, diags := parse("view(class: card, direction: horizontal) {\n  \"hi\"\n}")
	require.Empty(t, diags)
	require.Len(t, statements, 1)

	el, ok := statements[0].(*syntax.Element)
	require.True(t, ok)
	assert.Equal(t, "view", el.Name())
	require.NotNil(t, el.Args)
	assert.True(t, el.Args.Closed)
	require.Len(t, el.Args.Items, 2)

	class, ok := el.Args.Lookup("class")
	require.True(t, ok)
	ident, ok := class.(*syntax.Ident)
	require.True(t, ok)
	assert.Equal(t, "card", ident.Name())

	require.Len(t, el.Body, 1)
	text, ok := el.Body[0].(*syntax.Text)
	require.True(t, ok)
	assert.Equal(t, "hi", text.Value())
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	statements, diags := parse("view(a: 8px, b: 1.5, c: [x, y], d: rgb(1, 2, 3), e: name) {}")
	require.Empty(t, diags)

	el := statements[0].(*syntax.Element)
	values := el.Args.Values()
	require.Len(t, values, 5)

	integer, ok := values[0].(*syntax.Integer)
	require.True(t, ok)
	assert.Equal(t, uint64(8), integer.Value)
	assert.Equal(t, syntax.UnitPixel, integer.Unit)

	float, ok := values[1].(*syntax.Float)
	require.True(t, ok)
	assert.InDelta(t, 1.5, float.Value, 1e-9)
	assert.Equal(t, syntax.UnitNone, float.Unit)

	array, ok := values[2].(*syntax.Array)
	require.True(t, ok)
	assert.Len(t, array.Values, 2)

	fn, ok := values[3].(*syntax.Function)
	require.True(t, ok)
	assert.Equal(t, "rgb", fn.Name())
	assert.Len(t, fn.Args.Values(), 3)

	_, ok = values[4].(*syntax.Ident)
	assert.True(t, ok)
}

func TestParseDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want syntax.DiagnosticKind
	}{
		{name: "missing close paren", src: "view(class: card {\n}", want: syntax.DiagInvalidArguments},
		{name: "missing comma", src: "view(a: 1 b: 2) {}", want: syntax.DiagMissingComma},
		{name: "trailing comma", src: "view(a: 1,) {}", want: syntax.DiagMissingComma},
		{name: "missing close brace", src: "view {", want: syntax.DiagMissingDelimiter},
		{name: "unmatched close brace", src: "}", want: syntax.DiagUnexpectedToken},
		{name: "missing body", src: "view\n", want: syntax.DiagMissingDelimiter},
		{name: "missing value", src: "view(a: ) {}", want: syntax.DiagInvalidValue},
		{name: "style missing colon", src: "style { padding rect_all(1px) }", want: syntax.DiagMissingDelimiter},
		{name: "unclosed array", src: "view(a: [x, y) {}", want: syntax.DiagMissingDelimiter},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, diags := parse(testCase.src)
			require.NotEmpty(t, diags)
			assert.Contains(t, kinds(diags), testCase.want)
			for _, diag := range diags {
				assert.NotEmpty(t, diag.Message)
			}
		})
	}
}

func TestParseKeepsPartialNodes(t *testing.T) {
	t.Parallel()

	statements, diags := parse("view(a: 1 b: 2) {\n  \"x\"\n}\n")
	require.Len(t, diags, 1)
	require.Len(t, statements, 1)

	el := statements[0].(*syntax.Element)
	assert.Len(t, el.Args.Items, 2)
	assert.Len(t, el.Body, 1)
}

func TestParseMissingParenKeepsBody(t *testing.T) {
	t.Parallel()

	statements, diags := parse("view(class: card {\n  \"hi\"\n}")
	require.Len(t, diags, 1)

	el := statements[0].(*syntax.Element)
	assert.False(t, el.Args.Closed)
	assert.True(t, el.HasBody)
	assert.Len(t, el.Body, 1)
}

func TestParseUse(t *testing.T) {
	t.Parallel()

	statements, diags := parse("use setup.theme\nview {}\n")
	require.Empty(t, diags)
	require.Len(t, statements, 2)

	use, ok := statements[0].(*syntax.Use)
	require.True(t, ok)
	assert.Equal(t, []string{"setup", "theme"}, use.PathNames())
}

func TestParseUseStopsAtLineBreak(t *testing.T) {
	t.Parallel()

	statements, diags := parse("use a.\nb {}\n")
	require.NotEmpty(t, diags)

	use, ok := statements[0].(*syntax.Use)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, use.PathNames())

	el, ok := statements[1].(*syntax.Element)
	require.True(t, ok)
	assert.Equal(t, "b", el.Name())
}

func TestParseNamedStyle(t *testing.T) {
	t.Parallel()

	statements, diags := parse("style card { padding: rect_all(8px) backgroundColor: rgb(10,20,30) }")
	require.Empty(t, diags)
	require.Len(t, statements, 1)

	st, ok := statements[0].(*syntax.Style)
	require.True(t, ok)
	assert.Equal(t, "card", st.Name())
	require.Len(t, st.Body, 2)

	padding, ok := st.Body[0].(*syntax.StyleElement)
	require.True(t, ok)
	assert.Equal(t, "padding", padding.KeyName())
	fn, ok := padding.Value.(*syntax.Function)
	require.True(t, ok)
	assert.Equal(t, "rect_all", fn.Name())

	background, ok := st.Body[1].(*syntax.StyleElement)
	require.True(t, ok)
	assert.Equal(t, "backgroundColor", background.KeyName())
}

func TestParseNestedStyleBlocks(t *testing.T) {
	t.Parallel()

	src := "style {\n  card {\n    foregroundColor: rgb(1, 2, 3)\n  }\n  style inner {\n    gap: 4px\n  }\n}\n"
	statements, diags := parse(src)
	require.Empty(t, diags)

	st := statements[0].(*syntax.Style)
	assert.Empty(t, st.Name())
	require.Len(t, st.Body, 2)

	card, ok := st.Body[0].(*syntax.StyleBlock)
	require.True(t, ok)
	assert.Equal(t, "card", card.Name())
	require.Len(t, card.Body, 1)

	inner, ok := st.Body[1].(*syntax.StyleBlock)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.Name())
}

func TestParseRanges(t *testing.T) {
	t.Parallel()

	src := "view {\n  \"hi\"\n}\n"
	statements, _ := parse(src)
	el := statements[0].(*syntax.Element)

	r := el.Range()
	assert.Equal(t, 0, r.Start.Line)
	assert.Equal(t, 2, r.End.Line)

	text := el.Body[0].(*syntax.Text)
	assert.True(t, r.Contains(text.Token.Span))
	assert.True(t, el.BodyRange.Contains(text.Token.Span))
}

func TestWalkVisitsNestedStatements(t *testing.T) {
	t.Parallel()

	statements, _ := parse("a { b { \"x\" } }\nuse a.b\n")

	var visited []string
	err := syntax.Walk(statements, func(stmt syntax.Statement) error {
		switch s := stmt.(type) {
		case *syntax.Element:
			visited = append(visited, s.Name())
		case *syntax.Text:
			visited = append(visited, s.Value())
		case *syntax.Use:
			visited = append(visited, "use")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "x", "use"}, visited)
}
