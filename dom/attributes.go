package dom

import (
	"strings"

	"github.com/go-html5-parser/html5parser/internal/sourcepos"
)

// Attribute is a single namespace/name/value triple attached to an element.
// Namespace is empty for ordinary HTML attributes and only set for the
// handful of foreign-content attributes (xlink:href and friends) that carry
// one.
type Attribute struct {
	Namespace string
	Name      string
	Value     string

	// OriginalName and OriginalValue preserve the attribute's verbatim
	// source text (case and entity spelling included); NamePos and ValuePos
	// are where each started in the input.
	OriginalName  string
	OriginalValue string
	NamePos       sourcepos.Position
	ValuePos      sourcepos.Position
}

// attrKey identifies an attribute slot independent of name case, since HTML
// attribute names are matched case-insensitively.
type attrKey struct {
	namespace string
	name      string
}

func keyFor(namespace, name string) attrKey {
	return attrKey{namespace: namespace, name: strings.ToLower(name)}
}

// Attributes is an element's attribute collection: insertion-ordered for
// serialization, but indexed by attrKey so Get/Set/Has are O(1) rather than
// a linear scan, which matters for elements with many attributes.
type Attributes struct {
	items []Attribute
	index map[attrKey]int
}

// NewAttributes returns an empty attribute collection ready for use.
func NewAttributes() *Attributes {
	return &Attributes{index: make(map[attrKey]int)}
}

func (a *Attributes) ensureIndex() {
	if a.index == nil {
		a.index = make(map[attrKey]int, len(a.items))
		for i, attr := range a.items {
			a.index[keyFor(attr.Namespace, attr.Name)] = i
		}
	}
}

// Get returns the value of the unnamespaced attribute named name, matched
// case-insensitively as HTML attribute names are.
func (a *Attributes) Get(name string) (string, bool) {
	return a.GetNS("", name)
}

// GetNS returns the value of the attribute in namespace with the given name.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	a.ensureIndex()
	if i, ok := a.index[keyFor(namespace, name)]; ok {
		return a.items[i].Value, true
	}
	return "", false
}

// Set sets or updates an unnamespaced attribute. Callers should pass an
// already-lowercased name, as the tokenizer does.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", strings.ToLower(name), value)
}

// SetNS sets or updates a namespaced attribute, preserving the position of
// an existing slot or appending a new one at the end.
func (a *Attributes) SetNS(namespace, name, value string) {
	a.ensureIndex()
	key := keyFor(namespace, name)
	if i, ok := a.index[key]; ok {
		a.items[i].Value = value
		return
	}
	a.index[key] = len(a.items)
	a.items = append(a.items, Attribute{Namespace: namespace, Name: name, Value: value})
}

// Put sets or updates an attribute from a fully populated Attribute,
// carrying its source metadata along. An existing slot keeps its position.
func (a *Attributes) Put(attr Attribute) {
	a.ensureIndex()
	key := keyFor(attr.Namespace, attr.Name)
	if i, ok := a.index[key]; ok {
		a.items[i] = attr
		return
	}
	a.index[key] = len(a.items)
	a.items = append(a.items, attr)
}

// Has reports whether an unnamespaced attribute named name is present.
func (a *Attributes) Has(name string) bool {
	_, found := a.Get(name)
	return found
}

// HasNS reports whether a namespaced attribute is present.
func (a *Attributes) HasNS(namespace, name string) bool {
	_, found := a.GetNS(namespace, name)
	return found
}

// Remove removes an unnamespaced attribute by name, if present.
func (a *Attributes) Remove(name string) {
	a.RemoveNS("", name)
}

// RemoveNS removes a namespaced attribute, if present, and reindexes the
// slots after it.
func (a *Attributes) RemoveNS(namespace, name string) {
	a.ensureIndex()
	key := keyFor(namespace, name)
	i, ok := a.index[key]
	if !ok {
		return
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	delete(a.index, key)
	for k, idx := range a.index {
		if idx > i {
			a.index[k] = idx - 1
		}
	}
}

// All returns a copy of the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	result := make([]Attribute, len(a.items))
	copy(result, a.items)
	return result
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.items)
}

// Clone returns an independent copy of the attribute collection.
func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{items: make([]Attribute, len(a.items))}
	copy(clone.items, a.items)
	return clone
}
