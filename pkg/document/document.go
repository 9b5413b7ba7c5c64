package document

import (
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Document is the display tree of one module. Nodes live in an arena; the
// registry holds their layout records.
type Document struct {
	Module   *smf.Module
	Registry *registry.Registry

	nodes  []*Node
	errors []Error
}

// Build instantiates display nodes for the module's symbols. Every node
// reserves a registry ID when it is created, so layout lookups never fail.
func Build(module *smf.Module, reg *registry.Registry) *Document {
	if reg == nil {
		reg = registry.Default()
	}
	doc := &Document{Module: module, Registry: reg}

	root := doc.newNode(TypeRoot, NoNode, symbols.RootID)
	table := module.Symbols
	for _, sym := range table.Children(symbols.RootID) {
		doc.build(root.ID, sym)
	}

	if !doc.hasTopLevel(TypeView) {
		doc.errors = append(doc.errors, Error{Severity: SeverityWarning, Type: ExpectedTag, Tag: "view"})
	}
	return doc
}

func (d *Document) build(parent NodeID, sym *symbols.Symbol) {
	var typ NodeType
	switch sym.Kind.(type) {
	case symbols.NodeKind:
		typ = TypeSetup
		if sym.Name == "view" {
			typ = TypeView
		}
	case symbols.StyleKind:
		typ = TypeStyle
		if sym.IsAnonymousStyle() {
			typ = TypeStyleBlock
		}
	case symbols.UseKind:
		typ = TypeUse
	case symbols.TextKind:
		typ = TypeText
	default:
		return
	}

	node := d.newNode(typ, parent, sym.ID)
	if typ == TypeText || typ == TypeUse {
		return
	}
	for _, child := range d.Module.Symbols.Children(sym.ID) {
		d.build(node.ID, child)
	}
}

func (d *Document) newNode(typ NodeType, parent NodeID, sym symbols.ID) *Node {
	node := &Node{
		ID:      NodeID(len(d.nodes)),
		Type:    typ,
		Parent:  parent,
		Element: Element{ID: d.Registry.Reserve()},
		Symbol:  sym,
	}
	d.nodes = append(d.nodes, node)
	if owner := d.Node(parent); owner != nil {
		owner.Children = append(owner.Children, node.ID)
	}
	return node
}

func (d *Document) hasTopLevel(typ NodeType) bool {
	for _, child := range d.Children(d.Root()) {
		if child.Type == typ {
			return true
		}
	}
	return false
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.nodes[RootNode]
}

// Node returns the node with the given ID, or nil.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// Nodes returns every node in creation order (pre-order).
func (d *Document) Nodes() []*Node {
	return d.nodes
}

// Children returns the children of n in order.
func (d *Document) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		out = append(out, d.nodes[id])
	}
	return out
}

// Parent returns the parent of n; the root has none.
func (d *Document) Parent(n *Node) (*Node, bool) {
	if n.Parent == NoNode {
		return nil, false
	}
	return d.Node(n.Parent), true
}

// Errors returns structural errors found while building.
func (d *Document) Errors() []Error {
	return d.errors
}

// Symbol returns the symbol n was built from.
func (d *Document) Symbol(n *Node) *symbols.Symbol {
	return d.Module.Symbols.Get(n.Symbol)
}

// Layout returns the registry record of n.
func (d *Document) Layout(n *Node) registry.Layout {
	return d.Registry.Layout(n.Element.ID)
}

// Args returns the argument list of a view or setup node.
func (d *Document) Args(n *Node) *syntax.ElementArgs {
	if kind, ok := d.Symbol(n).Kind.(symbols.NodeKind); ok {
		return kind.Args
	}
	return nil
}

// Text returns the content of a text node.
func (d *Document) Text(n *Node) string {
	if kind, ok := d.Symbol(n).Kind.(symbols.TextKind); ok {
		return kind.Value
	}
	return ""
}

// Name returns the name used by path lookups: the style name for style
// nodes, the element name for setup nodes, otherwise the type name.
func (d *Document) Name(n *Node) string {
	switch n.Type {
	case TypeStyle:
		return d.Symbol(n).Key
	case TypeSetup:
		return d.Symbol(n).Name
	default:
		return n.Type.String()
	}
}

// ResolvePath walks display nodes from n by name. When no child matches,
// use nodes under n are followed from the root.
func (d *Document) ResolvePath(n *Node, path []string) (*Node, bool) {
	return d.resolvePath(n, path, make(map[NodeID]bool))
}

func (d *Document) resolvePath(n *Node, path []string, following map[NodeID]bool) (*Node, bool) {
	if n == nil || len(path) == 0 || !n.Type.IsScope() {
		return nil, false
	}

	next, rest := path[0], path[1:]
	for _, child := range d.Children(n) {
		if d.Name(child) != next {
			continue
		}
		if len(rest) == 0 {
			return child, true
		}
		if found, ok := d.resolvePath(child, rest, following); ok {
			return found, true
		}
	}

	for _, child := range d.Children(n) {
		if child.Type != TypeUse || following[child.ID] {
			continue
		}
		following[child.ID] = true
		found, ok := d.followUse(child, next, rest, following)
		delete(following, child.ID)
		if ok {
			return found, true
		}
	}
	return nil, false
}

// followUse resolves path through a use node. The caller marks the use node
// as being followed so cyclic imports terminate.
func (d *Document) followUse(use *Node, next string, rest []string, following map[NodeID]bool) (*Node, bool) {
	kind, ok := d.Symbol(use).Kind.(symbols.UseKind)
	if !ok {
		return nil, false
	}
	target, ok := d.resolvePath(d.Root(), kind.Path, following)
	if !ok {
		return nil, false
	}
	if d.Name(target) != next {
		return d.resolvePath(target, append([]string{next}, rest...), following)
	}
	if len(rest) == 0 {
		return target, true
	}
	return d.resolvePath(target, rest, following)
}
