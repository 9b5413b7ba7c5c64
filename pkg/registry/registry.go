// Package registry stores the rectangles computed for each display element,
// keyed by a process-unique ID. Every call takes the lock once and releases
// it before returning.
package registry

import (
	"sync"

	"github.com/yaklabco/gosmf/pkg/geom"
)

// ID identifies a display element. The zero ID is never issued.
type ID uint64

// Layout is the record kept per element: content ⊆ padding ⊆ border.
type Layout struct {
	Padding geom.Rect
	Content geom.Rect
	Border  geom.Rect
}

// Registry maps element IDs to layout records. It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	next    ID
	layouts map[ID]Layout
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{layouts: make(map[ID]Layout)}
}

//nolint:gochecknoglobals // Process-wide registry shared by documents.
var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// GenID mints a new ID without recording a layout.
func (r *Registry) GenID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	return r.next
}

// Reserve mints an ID and records a zero layout for it.
func (r *Registry) Reserve() ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.layouts[r.next] = Layout{}
	return r.next
}

// SetPaddingRect records the padding rect of id.
func (r *Registry) SetPaddingRect(id ID, rect geom.Rect) {
	r.update(id, func(l *Layout) { l.Padding = rect })
}

// SetContentRect records the content rect of id.
func (r *Registry) SetContentRect(id ID, rect geom.Rect) {
	r.update(id, func(l *Layout) { l.Content = rect })
}

// SetBorderRect records the border rect of id.
func (r *Registry) SetBorderRect(id ID, rect geom.Rect) {
	r.update(id, func(l *Layout) { l.Border = rect })
}

// Set records all three rects of id at once.
func (r *Registry) Set(id ID, layout Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.layouts[id] = layout
}

// Layout returns the record for id, or a zero layout when id is unknown.
func (r *Registry) Layout(id ID) Layout {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.layouts[id]
}

// Len returns the number of recorded IDs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.layouts)
}

func (r *Registry) update(id ID, apply func(*Layout)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	layout := r.layouts[id]
	apply(&layout)
	r.layouts[id] = layout
}
