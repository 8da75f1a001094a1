package dom

import (
	"strings"

	"github.com/go-html5-parser/html5parser/internal/arena"
	"github.com/go-html5-parser/html5parser/internal/tagtable"
)

// NodeAllocator provides arena-style allocation for DOM nodes. Every node it
// hands out is carved from a single arena.Arena, so a whole tree is released
// in one shot via Destroy instead of node-by-node garbage collection pressure.
type NodeAllocator struct {
	arena *arena.Arena
}

// NewNodeAllocator creates an allocator backed by a default arena.Arena.
func NewNodeAllocator() *NodeAllocator {
	return &NodeAllocator{arena: arena.New()}
}

// NewNodeAllocatorWithAllocator creates an allocator backed by an arena.Arena
// using alloc as its chunk source. A nil alloc falls back to the default.
func NewNodeAllocatorWithAllocator(alloc arena.Allocator) *NodeAllocator {
	return &NodeAllocator{arena: arena.NewWithAllocator(arena.DefaultChunkSize, alloc)}
}

// Arena returns the backing arena, so callers can check OutOfMemory or call
// Destroy once the tree is no longer needed.
func (a *NodeAllocator) Arena() *arena.Arena {
	return a.arena
}

// OutOfMemory reports whether the backing arena failed to satisfy an
// allocation. Nodes handed out after that point are ordinary heap
// allocations outside the arena, initialized as usual.
func (a *NodeAllocator) OutOfMemory() bool {
	return a.arena.OutOfMemory
}

// Destroy releases the backing arena. Idempotent.
func (a *NodeAllocator) Destroy() {
	a.arena.Destroy()
}

// NewDocument creates a new document node.
func (a *NodeAllocator) NewDocument() *Document {
	d := arena.Alloc[Document](a.arena)
	d.QuirksMode = NoQuirks
	d.init(d)
	return d
}

// NewDocumentFragment creates a new document fragment.
func (a *NodeAllocator) NewDocumentFragment() *DocumentFragment {
	df := arena.Alloc[DocumentFragment](a.arena)
	df.init(df)
	return df
}

// NewElement creates a new HTML element with lowercase tag name.
func (a *NodeAllocator) NewElement(tagName string) *Element {
	e := arena.Alloc[Element](a.arena)
	e.TagName = strings.ToLower(tagName)
	e.TagID, _ = tagtable.Lookup(e.TagName)
	e.Namespace = NamespaceHTML
	e.Attributes = a.newAttributes()
	e.init(e)
	return e
}

// NewElementNS creates a new element with the given namespace.
func (a *NodeAllocator) NewElementNS(tagName, namespace string) *Element {
	e := arena.Alloc[Element](a.arena)
	e.TagName = tagName
	e.TagID, _ = tagtable.Lookup(tagName)
	e.Namespace = namespace
	e.Attributes = a.newAttributes()
	e.init(e)
	return e
}

// NewText creates a new text node.
func (a *NodeAllocator) NewText(data string) *Text {
	t := arena.Alloc[Text](a.arena)
	t.Data = data
	return t
}

// NewComment creates a new comment node.
func (a *NodeAllocator) NewComment(data string) *Comment {
	c := arena.Alloc[Comment](a.arena)
	c.Data = data
	return c
}

// NewDocumentType creates a new DOCTYPE node.
func (a *NodeAllocator) NewDocumentType(name, publicID, systemID string) *DocumentType {
	dt := arena.Alloc[DocumentType](a.arena)
	dt.Name = name
	dt.PublicID = publicID
	dt.SystemID = systemID
	return dt
}

func (a *NodeAllocator) newAttributes() *Attributes {
	return arena.Alloc[Attributes](a.arena)
}
