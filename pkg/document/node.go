// Package document builds the display tree from a module's symbols and
// answers style queries against it.
package document

import (
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/symbols"
)

// NodeID addresses a node in its document.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// RootNode is the ID of the root node in every document.
const RootNode NodeID = 0

// NodeType is the closed set of display tree node kinds.
type NodeType uint8

// Node types. Only Root, View and Text take part in layout.
const (
	TypeRoot NodeType = iota
	TypeUse
	TypeStyleBlock
	TypeSetup
	TypeView
	TypeStyle
	TypeText
)

// String returns the element name of the type, used for path lookups.
func (t NodeType) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeUse:
		return "use"
	case TypeStyleBlock:
		return "style"
	case TypeSetup:
		return "setup"
	case TypeView:
		return "view"
	case TypeStyle:
		return "styleDef"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// IsDisplayed reports whether nodes of this type are laid out and drawn.
func (t NodeType) IsDisplayed() bool {
	return t == TypeRoot || t == TypeView || t == TypeText
}

// IsScope reports whether path lookups descend into nodes of this type.
func (t NodeType) IsScope() bool {
	return t == TypeRoot || t == TypeView || t == TypeSetup || t == TypeStyleBlock
}

// Element is the displayed part of a node.
type Element struct {
	ID registry.ID
}

// Node is a display tree node. Payloads (arguments, text, properties) are
// read from the symbol it was built from.
type Node struct {
	ID       NodeID
	Type     NodeType
	Parent   NodeID
	Children []NodeID
	Element  Element
	Symbol   symbols.ID
}
