package dom

import (
	"strings"

	"github.com/go-html5-parser/html5parser/internal/sourcepos"
	"github.com/go-html5-parser/html5parser/internal/tagtable"
)

// Namespace constants for HTML, SVG, and MathML.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// ParseFlags is a bitset recording how tree construction arrived at an
// element: whether the parser synthesized it, how its end tag came about,
// and whether reparenting moved it.
type ParseFlags uint32

const (
	// FlagInsertedByParser marks an element with no corresponding start tag
	// in the input (an implied <html>, <head>, <body>, <tbody>, ...).
	FlagInsertedByParser ParseFlags = 1 << iota

	// FlagImpliedEndTag marks an element closed without a matching end tag.
	FlagImpliedEndTag

	// FlagAdoptionReparented marks an element the adoption agency moved.
	FlagAdoptionReparented

	// FlagFosterParented marks an element redirected out of a table.
	FlagFosterParented
)

// Element represents an HTML, SVG, or MathML element.
type Element struct {
	baseNode

	// TagName is the element's tag name (lowercase for HTML elements).
	TagName string

	// TagID is the compact identifier TagName maps to, or tagtable.Unknown
	// for tags outside the built-in set (the name itself is still kept).
	TagID tagtable.ID

	// Pos and EndPos are the source positions of the start tag and of
	// whatever closed the element (the matching end tag, or the token that
	// forced an implied close).
	Pos    sourcepos.Position
	EndPos sourcepos.Position

	// OriginalTag and OriginalEndTag preserve the verbatim source text of
	// the start and end tags, when they exist in the input.
	OriginalTag    string
	OriginalEndTag string

	// ParseFlags records how tree construction produced this element.
	ParseFlags ParseFlags

	// Namespace is the element's namespace URI.
	// For HTML elements, this is NamespaceHTML.
	Namespace string

	// Attributes contains the element's attributes.
	Attributes *Attributes

	// TemplateContent holds the content of <template> elements.
	// This is nil for non-template elements.
	TemplateContent *DocumentFragment
}

// NewElement creates a new element with the given tag name.
func NewElement(tagName string) *Element {
	lower := strings.ToLower(tagName)
	id, _ := tagtable.Lookup(lower)
	e := &Element{
		TagName:    lower,
		TagID:      id,
		Namespace:  NamespaceHTML,
		Attributes: NewAttributes(),
	}
	e.baseNode.init(e)
	return e
}

// NewElementNS creates a new element with the given tag name and namespace.
func NewElementNS(tagName, namespace string) *Element {
	id, _ := tagtable.Lookup(tagName)
	e := &Element{
		TagName:    tagName, // Don't lowercase for foreign elements
		TagID:      id,
		Namespace:  namespace,
		Attributes: NewAttributes(),
	}
	e.baseNode.init(e)
	return e
}

// Type implements Node.
func (e *Element) Type() NodeType {
	return ElementNodeType
}

// Clone implements Node.
func (e *Element) Clone(deep bool) Node {
	clone := &Element{
		TagName:        e.TagName,
		TagID:          e.TagID,
		Namespace:      e.Namespace,
		Pos:            e.Pos,
		EndPos:         e.EndPos,
		OriginalTag:    e.OriginalTag,
		OriginalEndTag: e.OriginalEndTag,
		ParseFlags:     e.ParseFlags,
		Attributes:     e.Attributes.Clone(),
	}
	clone.baseNode.init(clone)

	if deep {
		for _, child := range e.children {
			clonedChild := child.Clone(true)
			clone.AppendChild(clonedChild)
		}
		if e.TemplateContent != nil {
			clone.TemplateContent = e.TemplateContent.Clone(true).(*DocumentFragment)
		}
	}

	return clone
}


// Query finds all descendant elements matching the CSS selector.
func (e *Element) Query(selector string) ([]*Element, error) {
	return selectorMatch(e, selector)
}

// QueryFirst finds the first descendant element matching the CSS selector.
func (e *Element) QueryFirst(selector string) (*Element, error) {
	return selectorMatchFirst(e, selector)
}

// Text returns the text content of this element and its descendants.
func (e *Element) Text() string {
	var sb strings.Builder
	e.collectText(&sb)
	return sb.String()
}

func (e *Element) collectText(sb *strings.Builder) {
	for _, child := range e.children {
		switch c := child.(type) {
		case *Text:
			sb.WriteString(c.Data)
		case *Element:
			c.collectText(sb)
		}
	}
}

// Attr returns the value of an attribute, or empty string if not present.
func (e *Element) Attr(name string) string {
	val, _ := e.Attributes.Get(name)
	return val
}

// HasAttr returns true if the element has the given attribute.
func (e *Element) HasAttr(name string) bool {
	return e.Attributes.Has(name)
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.Attributes.Set(name, value)
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	e.Attributes.Remove(name)
}

// ID returns the value of the id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Classes returns the list of CSS classes on this element.
func (e *Element) Classes() []string {
	class := e.Attr("class")
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}

// HasClass returns true if the element has the given CSS class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}
