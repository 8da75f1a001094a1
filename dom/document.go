package dom

// QuirksMode records how strictly a document's rendering quirks should be
// applied, set once during tree construction from the doctype token (or its
// absence).
type QuirksMode int

const (
	NoQuirks      QuirksMode = iota // standards mode
	Quirks                          // quirks mode
	LimitedQuirks                   // almost standards mode
)

// Document is the root of a parsed HTML tree.
type Document struct {
	baseNode

	Doctype    *DocumentType
	QuirksMode QuirksMode

	// Encoding is the name of the character encoding ParseBytes detected and
	// decoded the input from; empty when the document was parsed from a
	// string that was already text.
	Encoding string
}

// NewDocument returns an empty document with no doctype and no children.
func NewDocument() *Document {
	d := &Document{}
	d.baseNode.init(d)
	return d
}

func (d *Document) Type() NodeType { return DocumentNodeType }

// Clone returns an independent copy of d. The doctype is always cloned;
// when deep is true every descendant is cloned too.
func (d *Document) Clone(deep bool) Node {
	clone := &Document{QuirksMode: d.QuirksMode, Encoding: d.Encoding}
	clone.baseNode.init(clone)

	if d.Doctype != nil {
		clone.Doctype = d.Doctype.Clone(false).(*DocumentType)
	}
	if deep {
		for _, child := range d.children {
			clone.AppendChild(child.Clone(true))
		}
	}
	return clone
}

// DocumentElement returns the document's root <html> element, or nil if the
// tree has none.
func (d *Document) DocumentElement() *Element {
	return firstElementChild(d.children)
}

// Head returns the <head> element under the document element, or nil.
func (d *Document) Head() *Element {
	return elementWithTag(d.DocumentElement(), "head")
}

// Body returns the <body> element under the document element, or nil. A
// <frameset> is not returned in its place.
func (d *Document) Body() *Element {
	return elementWithTag(d.DocumentElement(), "body")
}

// Title returns the text content of the first <title> element under <head>,
// or the empty string if there is none.
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	if title := elementWithTag(head, "title"); title != nil {
		return title.Text()
	}
	return ""
}

// Query runs a CSS selector against the document and returns every matching
// element.
func (d *Document) Query(selector string) ([]*Element, error) {
	root := d.DocumentElement()
	if root == nil {
		return nil, nil
	}
	return root.Query(selector)
}

// QueryFirst runs a CSS selector against the document and returns the first
// matching element, or nil if none match.
func (d *Document) QueryFirst(selector string) (*Element, error) {
	root := d.DocumentElement()
	if root == nil {
		return nil, nil
	}
	return root.QueryFirst(selector)
}

func firstElementChild(nodes []Node) *Element {
	for _, n := range nodes {
		if elem, ok := n.(*Element); ok {
			return elem
		}
	}
	return nil
}

func elementWithTag(parent *Element, tag string) *Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.Children() {
		if elem, ok := child.(*Element); ok && elem.TagName == tag {
			return elem
		}
	}
	return nil
}

// DocumentType is a DOCTYPE declaration, the optional node that precedes a
// document's root element.
type DocumentType struct {
	leaf

	Name     string
	PublicID string
	SystemID string
}

// NewDocumentType returns a DOCTYPE node with the given name and identifiers.
func NewDocumentType(name, publicID, systemID string) *DocumentType {
	return &DocumentType{Name: name, PublicID: publicID, SystemID: systemID}
}

func (dt *DocumentType) Type() NodeType { return DoctypeNodeType }

// Clone returns an independent copy of dt. DOCTYPE nodes have no children,
// so deep has no effect.
func (dt *DocumentType) Clone(_ bool) Node {
	return &DocumentType{Name: dt.Name, PublicID: dt.PublicID, SystemID: dt.SystemID}
}

// DocumentFragment holds a subtree not attached to any document, used as
// the backing store for <template> content.
type DocumentFragment struct {
	baseNode
}

// NewDocumentFragment returns an empty document fragment.
func NewDocumentFragment() *DocumentFragment {
	df := &DocumentFragment{}
	df.baseNode.init(df)
	return df
}

func (df *DocumentFragment) Type() NodeType { return DocumentNodeType }

// Clone returns an independent copy of df. When deep is true every
// descendant is cloned too.
func (df *DocumentFragment) Clone(deep bool) Node {
	clone := &DocumentFragment{}
	clone.baseNode.init(clone)
	if deep {
		for _, child := range df.children {
			clone.AppendChild(child.Clone(true))
		}
	}
	return clone
}
