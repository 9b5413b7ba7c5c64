// Package symbols builds the scope tree for a parsed module. Symbols live in
// an arena addressed by ID; parent and child links are IDs, and use edges are
// stored as paths that are re-walked on lookup.
package symbols

import (
	"strconv"

	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ID addresses a symbol in its table.
type ID int

// NoID is the parent of the root.
const NoID ID = -1

// RootID is the ID of the root symbol in every table.
const RootID ID = 0

// Kind is the payload of a symbol.
// Implementations: RootKind, NodeKind, StyleKind, TextKind, UseKind, FunctionKind.
type Kind interface {
	kindName() string
}

// RootKind marks the table root.
type RootKind struct{}

// NodeKind is an element such as view or setup.
type NodeKind struct {
	Args *syntax.ElementArgs
}

// StyleKind is a style block and its leaf properties.
type StyleKind struct {
	Properties *Properties
}

// TextKind is a text leaf.
type TextKind struct {
	Value string
}

// UseKind is an import of another scope by root-relative path.
type UseKind struct {
	Path []string
}

// FunctionKind is a builtin function.
type FunctionKind struct {
	ArgTypes   []ValueType
	ReturnType ValueType
	ReturnLen  int
	Impl       BuiltinFunc
}

func (RootKind) kindName() string { return "root" }
func (NodeKind) kindName() string { return "node" }
func (StyleKind) kindName() string { return "style" }
func (TextKind) kindName() string { return "text" }
func (UseKind) kindName() string { return "use" }
func (FunctionKind) kindName() string { return "function" }

// KindName returns a short lowercase name for k.
func KindName(k Kind) string {
	if k == nil {
		return "unknown"
	}
	return k.kindName()
}

// Symbol is a node of the scope tree.
type Symbol struct {
	ID ID

	// Key is the lookup key within the parent: the element name for setup and
	// style blocks, the style name for named styles, or a positional index.
	Key string

	// Name is the source name, such as "view" for positionally keyed views.
	Name string

	Kind   Kind
	Parent ID

	// Token is the naming token; nil for the root and builtins.
	Token *syntax.Token

	// Range covers the producing statement when HasRange is set.
	Range    syntax.Range
	HasRange bool

	children []ID
	index    map[string]int
}

// IsIndexed reports whether the symbol is keyed by position rather than name.
func (s *Symbol) IsIndexed() bool {
	_, err := strconv.Atoi(s.Key)
	return err == nil
}

// IsAnonymousStyle reports whether the symbol is an unnamed style block whose
// children are visible in the enclosing scope.
func (s *Symbol) IsAnonymousStyle() bool {
	_, ok := s.Kind.(StyleKind)
	return ok && s.Key == "style"
}

// Property is a single style property in declaration order.
type Property struct {
	Key     string
	Value   syntax.Value
	Element *syntax.StyleElement
}

// Properties is an insertion-ordered map of style properties. Setting an
// existing key replaces its value in place.
type Properties struct {
	items []Property
	index map[string]int
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{index: make(map[string]int)}
}

// Set adds or replaces a property.
func (p *Properties) Set(prop Property) {
	if idx, ok := p.index[prop.Key]; ok {
		p.items[idx] = prop
		return
	}
	p.index[prop.Key] = len(p.items)
	p.items = append(p.items, prop)
}

// Get returns the value for key.
func (p *Properties) Get(key string) (syntax.Value, bool) {
	if p == nil {
		return nil, false
	}
	idx, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.items[idx].Value, true
}

// All returns the properties in declaration order.
func (p *Properties) All() []Property {
	if p == nil {
		return nil
	}
	return p.items
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Table is the arena holding every symbol of one module.
// A table is read-only once Build returns.
type Table struct {
	symbols []*Symbol
}

// NewTable returns a table containing only the root symbol.
func NewTable() *Table {
	t := &Table{}
	t.symbols = append(t.symbols, &Symbol{
		ID:     RootID,
		Kind:   RootKind{},
		Parent: NoID,
		index:  make(map[string]int),
	})
	return t
}

// Root returns the root symbol.
func (t *Table) Root() *Symbol {
	return t.symbols[RootID]
}

// Len returns the number of symbols in the arena, including replaced ones.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Get returns the symbol with the given ID, or nil.
func (t *Table) Get(id ID) *Symbol {
	if id < 0 || int(id) >= len(t.symbols) {
		return nil
	}
	return t.symbols[id]
}

// Parent returns the parent of sym.
func (t *Table) Parent(sym *Symbol) (*Symbol, bool) {
	if sym == nil || sym.Parent == NoID {
		return nil, false
	}
	parent := t.Get(sym.Parent)
	return parent, parent != nil
}

// Children returns the children of id in insertion order.
func (t *Table) Children(id ID) []*Symbol {
	sym := t.Get(id)
	if sym == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(sym.children))
	for _, child := range sym.children {
		out = append(out, t.symbols[child])
	}
	return out
}

// Child returns the direct child of id with the given key.
func (t *Table) Child(id ID, key string) (*Symbol, bool) {
	sym := t.Get(id)
	if sym == nil {
		return nil, false
	}
	pos, ok := sym.index[key]
	if !ok {
		return nil, false
	}
	return t.symbols[sym.children[pos]], true
}

// ChildAt returns the child of id at the given position.
func (t *Table) ChildAt(id ID, position int) (*Symbol, bool) {
	sym := t.Get(id)
	if sym == nil || position < 0 || position >= len(sym.children) {
		return nil, false
	}
	return t.symbols[sym.children[position]], true
}

// Path returns the keys from the root to id.
func (t *Table) Path(id ID) []string {
	var path []string
	for sym := t.Get(id); sym != nil && sym.Parent != NoID; sym = t.Get(sym.Parent) {
		path = append([]string{sym.Key}, path...)
	}
	return path
}

// Insert adds a symbol under parent. When parent already has a child with
// the same key, the new symbol takes over that child's position.
func (t *Table) Insert(parent ID, sym Symbol) *Symbol {
	owner := t.Get(parent)
	if owner == nil {
		return nil
	}

	sym.ID = ID(len(t.symbols))
	sym.Parent = parent
	sym.children = nil
	sym.index = make(map[string]int)
	stored := &sym
	t.symbols = append(t.symbols, stored)

	if pos, ok := owner.index[sym.Key]; ok {
		owner.children[pos] = stored.ID
		return stored
	}
	owner.index[sym.Key] = len(owner.children)
	owner.children = append(owner.children, stored.ID)
	return stored
}

// NextIndexKey returns the smallest non-negative integer key unused among
// the children of parent.
func (t *Table) NextIndexKey(parent ID) string {
	owner := t.Get(parent)
	if owner == nil {
		return "0"
	}
	for i := 0; ; i++ {
		key := strconv.Itoa(i)
		if _, taken := owner.index[key]; !taken {
			return key
		}
	}
}
