package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/style"
)

func build(t *testing.T, src string) *document.Document {
	t.Helper()

	module, diags := smf.Parse(src)
	require.Empty(t, diags)
	return document.Build(module, registry.New())
}

func child(t *testing.T, doc *document.Document, n *document.Node, idx int) *document.Node {
	t.Helper()

	children := doc.Children(n)
	require.Greater(t, len(children), idx)
	return children[idx]
}

func TestBuildNodeTypes(t *testing.T) {
	t.Parallel()

	doc := build(t, "setup {\n  use a\n  card {}\n}\nstyle {\n  card { gap: 1px }\n}\nstyle solo { gap: 2px }\nview {\n  \"hi\"\n}\n")

	root := doc.Root()
	assert.Equal(t, document.TypeRoot, root.Type)

	var types []document.NodeType
	for _, n := range doc.Children(root) {
		types = append(types, n.Type)
	}
	assert.Equal(t, []document.NodeType{
		document.TypeSetup, document.TypeStyleBlock, document.TypeStyle, document.TypeView,
	}, types, "builtins are not display nodes")

	setup := child(t, doc, root, 0)
	assert.Equal(t, document.TypeUse, child(t, doc, setup, 0).Type)
	assert.Equal(t, document.TypeSetup, child(t, doc, setup, 1).Type)
	assert.Equal(t, "card", doc.Name(child(t, doc, setup, 1)))

	block := child(t, doc, root, 1)
	assert.Equal(t, document.TypeStyle, child(t, doc, block, 0).Type)

	view := child(t, doc, root, 3)
	text := child(t, doc, view, 0)
	assert.Equal(t, document.TypeText, text.Type)
	assert.Equal(t, "hi", doc.Text(text))

	parent, ok := doc.Parent(text)
	require.True(t, ok)
	assert.Equal(t, view.ID, parent.ID)
	_, ok = doc.Parent(root)
	assert.False(t, ok)
}

func TestBuildReservesIDs(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	module, _ := smf.Parse("view {\n  view { \"a\" }\n  \"b\"\n}\n")
	doc := document.Build(module, reg)

	assert.Equal(t, len(doc.Nodes()), reg.Len())

	seen := make(map[registry.ID]bool)
	for _, n := range doc.Nodes() {
		assert.False(t, seen[n.Element.ID], "IDs are unique")
		seen[n.Element.ID] = true
		assert.Equal(t, registry.Layout{}, doc.Layout(n))
		assert.Equal(t, registry.Layout{}, doc.Layout(n))
	}
}

func TestBuildReportsMissingView(t *testing.T) {
	t.Parallel()

	doc := build(t, "setup {}\n")
	require.Len(t, doc.Errors(), 1)

	docErr := doc.Errors()[0]
	assert.Equal(t, document.ExpectedTag, docErr.Type)
	assert.Equal(t, document.SeverityWarning, docErr.Severity)
	assert.Equal(t, "warning: expected tag `view`", docErr.Error())

	assert.Empty(t, build(t, "view {}\n").Errors())
}

func TestStylesScenario(t *testing.T) {
	t.Parallel()

	doc := build(t, "view(class: card) { \"hi\" }\nstyle card { padding: rect_all(8px) backgroundColor: rgb(10,20,30) }\n")
	view := child(t, doc, doc.Root(), 0)

	assert.Equal(t, []string{"card"}, doc.Classes(view))
	assert.Equal(t, style.Padding{Rect: style.UniformRect(8)}, doc.Styles(view, style.KeyPadding))
	assert.Equal(t,
		style.BackgroundColor{Color: style.Color{R: 10, G: 20, B: 30, A: 255}},
		doc.Styles(view, style.KeyBackgroundColor))
	assert.Equal(t, style.Empty{}, doc.Styles(view, style.KeyGap))
}

func TestStylesInheritForegroundColor(t *testing.T) {
	t.Parallel()

	src := `style outer {
    foregroundColor: rgb(1, 2, 3)
    backgroundColor: rgb(4, 5, 6)
}
view(class: outer) {
    view {
        "deep"
    }
}
`
	doc := build(t, src)
	outer := child(t, doc, doc.Root(), 1)
	inner := child(t, doc, outer, 0)
	text := child(t, doc, inner, 0)

	expected := style.ForegroundColor{Color: style.Color{R: 1, G: 2, B: 3, A: 255}}
	assert.Equal(t, expected, doc.Styles(inner, style.KeyForegroundColor))
	assert.Equal(t, expected, doc.Styles(text, style.KeyForegroundColor))
	assert.Equal(t, style.Empty{}, doc.Styles(inner, style.KeyBackgroundColor), "background is not inherited")
}

func TestStylesClassArrayOrder(t *testing.T) {
	t.Parallel()

	src := `style a { gap: 1px }
style b { gap: 2px }
style plain { padding: rect_all(1px) }
view(class: [missing, b, a]) {}
view(class: [plain, a]) {}
`
	doc := build(t, src)
	first := child(t, doc, doc.Root(), 3)
	second := child(t, doc, doc.Root(), 4)

	assert.Equal(t, []string{"missing", "b", "a"}, doc.Classes(first))
	assert.Equal(t, style.Gap{Amount: style.Pixels(2)}, doc.Styles(first, style.KeyGap))
	assert.Equal(t, style.Gap{Amount: style.Pixels(1)}, doc.Styles(second, style.KeyGap), "classes without the key are skipped")
}

func TestStylesResolveFromParentScope(t *testing.T) {
	t.Parallel()

	src := `view {
    style local { gap: 3px }
    view(class: local) {}
}
`
	doc := build(t, src)
	outer := child(t, doc, doc.Root(), 0)

	var inner *document.Node
	for _, n := range doc.Children(outer) {
		if n.Type == document.TypeView {
			inner = n
		}
	}
	require.NotNil(t, inner)
	assert.Equal(t, style.Gap{Amount: style.Pixels(3)}, doc.Styles(inner, style.KeyGap))
}

func TestStylesThroughImport(t *testing.T) {
	t.Parallel()

	src := `setup {
    style theme { gap: 7px }
}
view {
    use setup
    view(class: theme) {}
}
`
	doc := build(t, src)
	outer := child(t, doc, doc.Root(), 1)
	inner := child(t, doc, outer, 1)

	assert.Equal(t, style.Gap{Amount: style.Pixels(7)}, doc.Styles(inner, style.KeyGap))
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	src := `setup {
    style theme { gap: 1px }
}
view {
    use setup
    view {}
}
`
	doc := build(t, src)
	root := doc.Root()

	theme, ok := doc.ResolvePath(root, []string{"setup", "theme"})
	require.True(t, ok)
	assert.Equal(t, document.TypeStyle, theme.Type)

	view, ok := doc.ResolvePath(root, []string{"view"})
	require.True(t, ok)

	imported, ok := doc.ResolvePath(view, []string{"theme"})
	require.True(t, ok)
	assert.Equal(t, theme.ID, imported.ID)

	_, ok = doc.ResolvePath(root, []string{"view", "missing"})
	assert.False(t, ok)
}

func TestResolvePathImportCycle(t *testing.T) {
	t.Parallel()

	doc := build(t, "setup {\n  use setup\n}\nuse nowhere\nview {}\n")

	_, ok := doc.ResolvePath(doc.Root(), []string{"nothing"})
	assert.False(t, ok)

	setup, ok := doc.ResolvePath(doc.Root(), []string{"setup"})
	require.True(t, ok)
	_, ok = doc.ResolvePath(setup, []string{"nothing"})
	assert.False(t, ok)
}
