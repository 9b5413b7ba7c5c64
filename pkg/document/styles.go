package document

import (
	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ClassArg is the view argument naming the styles applied to it.
const ClassArg = "class"

// Classes returns the class names of a view in order. The class argument is
// either a single identifier or an array of identifiers; other items are skipped.
func (d *Document) Classes(n *Node) []string {
	if n.Type != TypeView {
		return nil
	}
	value, ok := d.Args(n).Lookup(ClassArg)
	if !ok {
		return nil
	}

	switch val := value.(type) {
	case *syntax.Ident:
		return []string{val.Name()}
	case *syntax.Array:
		names := make([]string, 0, len(val.Values))
		for _, item := range val.Values {
			if ident, isIdent := item.(*syntax.Ident); isIdent {
				names = append(names, ident.Name())
			}
		}
		return names
	default:
		return nil
	}
}

// Styles resolves property key for n. Classes are looked up from the parent
// node's scope and tried in order; the first class yielding a value wins.
// Inherited keys fall back to the parent display node.
func (d *Document) Styles(n *Node, key string) style.Value {
	for cur := n; cur != nil; {
		if value := d.ownStyle(cur, key); !style.IsEmpty(value) {
			return value
		}
		if !style.IsInherited(key) {
			return style.Empty{}
		}
		parent, ok := d.Parent(cur)
		if !ok {
			break
		}
		cur = parent
	}
	return style.Empty{}
}

// ClassStyle returns the style symbol a class name resolves to from n.
func (d *Document) ClassStyle(n *Node, class string) (*symbols.Symbol, bool) {
	scope := n.Symbol
	if parent, ok := d.Parent(n); ok {
		scope = parent.Symbol
	}
	sym, ok := d.Module.Symbols.Resolve(scope, class)
	if !ok {
		return nil, false
	}
	if _, isStyle := sym.Kind.(symbols.StyleKind); !isStyle {
		return nil, false
	}
	return sym, true
}

func (d *Document) ownStyle(n *Node, key string) style.Value {
	for _, class := range d.Classes(n) {
		sym, ok := d.ClassStyle(n, class)
		if !ok {
			continue
		}
		if value := style.FromSymbol(d.Module.Symbols, sym, key); !style.IsEmpty(value) {
			return value
		}
	}
	return style.Empty{}
}
