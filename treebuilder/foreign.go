package treebuilder

import (
	"strings"

	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/internal/constants"
	"github.com/go-html5-parser/html5parser/tokenizer"
)

// shouldUseForeignContent decides, for the current token, whether tree
// construction should dispatch through "parsing tokens in foreign content"
// (WHATWG §13.2.6.5) instead of the active insertion mode. It is false
// whenever the adjusted current node is in the HTML namespace, or the
// token is one of the documented exceptions an integration point makes.
func (tb *TreeBuilder) shouldUseForeignContent(tok tokenizer.Token) bool {
	current := tb.currentElement()
	if current == nil || current.Namespace == dom.NamespaceHTML || tok.Type == tokenizer.EOF {
		return false
	}

	if tb.isMathMLTextIntegrationPoint(current) && mathMLTextPointEscapes(tok) {
		return false
	}
	if isAnnotationXML(current) && tok.Type == tokenizer.StartTag && tok.Name == "svg" {
		return false
	}
	if tb.isHTMLIntegrationPoint(current) && (tok.Type == tokenizer.Character || tok.Type == tokenizer.StartTag) {
		return false
	}
	return true
}

// mathMLTextPointEscapes reports whether tok is one of the token kinds a
// MathML text integration point hands back to HTML parsing instead of
// treating as MathML content: any character token, or a start tag other
// than mglyph/malignmark.
func mathMLTextPointEscapes(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.Character {
		return true
	}
	return tok.Type == tokenizer.StartTag && tok.Name != "mglyph" && tok.Name != "malignmark"
}

func isAnnotationXML(node *dom.Element) bool {
	return node.Namespace == dom.NamespaceMathML && strings.EqualFold(node.TagName, "annotation-xml")
}

// processForeignContent implements "parsing tokens in foreign content"
// (WHATWG §13.2.6.5) for the current token. It returns true when the caller
// should reprocess the token in the (now HTML) insertion mode rather than
// having been fully handled here.
func (tb *TreeBuilder) processForeignContent(tok tokenizer.Token) bool {
	if tb.currentElement() == nil {
		return false
	}

	switch tok.Type {
	case tokenizer.Character:
		return tb.foreignCharacter(tok)
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		return tb.foreignStartTag(tok)
	case tokenizer.EndTag:
		return tb.foreignEndTag(tok)
	default:
		return false
	}
}

func (tb *TreeBuilder) foreignCharacter(tok tokenizer.Token) bool {
	if tok.Data == "" {
		return false
	}
	data := strings.ReplaceAll(tok.Data, "\x00", string('�'))
	if !isAllWhitespace(data) {
		tb.framesetOK = false
	}
	tb.insertText(data)
	return false
}

func (tb *TreeBuilder) foreignStartTag(tok tokenizer.Token) bool {
	if constants.ForeignBreakoutElements[tok.Name] || (tok.Name == "font" && foreignBreakoutFont(tok.Attrs)) {
		tb.breakOutOfForeignContent()
		return true
	}

	namespace := tb.currentElement().Namespace
	name := tok.Name
	if namespace == dom.NamespaceSVG {
		name = adjustSVGTagName(tok.Name)
	}
	tb.insertForeignElement(name, namespace, prepareForeignAttributes(namespace, tok.Attrs), tok.SelfClosing)
	return false
}

func (tb *TreeBuilder) foreignEndTag(tok tokenizer.Token) bool {
	if tok.Name == "br" || tok.Name == "p" {
		tb.breakOutOfForeignContent()
		return true
	}

	// Walk the stack back to front looking for a case-insensitive name
	// match (WHATWG §13.2.6.5's end tag clause).
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		if !strings.EqualFold(node.TagName, tok.Name) {
			if node.Namespace == dom.NamespaceHTML {
				tb.forceHTMLMode = true
				return true
			}
			continue
		}
		if tb.fragmentElement != nil && node == tb.fragmentElement {
			return false
		}
		if node.Namespace == dom.NamespaceHTML {
			// Matched element is HTML: reprocess so the active insertion
			// mode's own end tag handling runs.
			tb.forceHTMLMode = true
			return true
		}
		// Matched a foreign element: pop everything above and including it.
		tb.openElements = tb.openElements[:i]
		return false
	}
	return false
}

func (tb *TreeBuilder) breakOutOfForeignContent() {
	tb.popUntilHTMLOrIntegrationPoint()
	tb.resetInsertionModeAppropriately()
	tb.forceHTMLMode = true
}

func (tb *TreeBuilder) popUntilHTMLOrIntegrationPoint() {
	for {
		node := tb.currentElement()
		if node == nil || node.Namespace == dom.NamespaceHTML || tb.isHTMLIntegrationPoint(node) {
			return
		}
		tb.popCurrent()
	}
}

// isHTMLIntegrationPoint reports whether node is one of the fixed
// SVG/MathML elements that switch back to HTML parsing for their content.
// annotation-xml only qualifies for specific "encoding" attribute values.
func (tb *TreeBuilder) isHTMLIntegrationPoint(node *dom.Element) bool {
	if node == nil {
		return false
	}
	if node.Namespace == dom.NamespaceMathML && node.TagName == "annotation-xml" {
		enc, ok := node.Attributes.Get("encoding")
		if !ok {
			return false
		}
		switch strings.ToLower(enc) {
		case "text/html", "application/xhtml+xml":
			return true
		default:
			return false
		}
	}
	return constants.HTMLIntegrationPoints[constants.IntegrationPoint{Namespace: node.Namespace, LocalName: node.TagName}]
}

func (tb *TreeBuilder) isMathMLTextIntegrationPoint(node *dom.Element) bool {
	if node == nil {
		return false
	}
	return constants.MathMLTextIntegrationPoints[constants.IntegrationPoint{Namespace: node.Namespace, LocalName: node.TagName}]
}

func foreignBreakoutFont(attrs []tokenizer.Attr) bool {
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "color", "face", "size":
			return true
		}
	}
	return false
}

func adjustSVGTagName(name string) string {
	if adjusted, ok := constants.SVGTagNameAdjustments[strings.ToLower(name)]; ok {
		return adjusted
	}
	return name
}

// prepareForeignAttributes rewrites a start tag's attribute list into the
// namespace/local-name adjustments "adjust SVG/MathML/foreign attributes"
// applies for elements outside the HTML namespace.
func prepareForeignAttributes(namespace string, attrs []tokenizer.Attr) []dom.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		adjusted := adjustForeignAttribute(namespace, a.Name, a.Value)
		adjusted.OriginalName = a.OriginalName
		adjusted.OriginalValue = a.OriginalValue
		adjusted.NamePos = a.NamePos
		adjusted.ValuePos = a.ValuePos
		out = append(out, adjusted)
	}
	return out
}

func adjustForeignAttribute(namespace, name, value string) dom.Attribute {
	lower := strings.ToLower(name)
	adjustedName := name

	switch namespace {
	case dom.NamespaceMathML:
		if adj, ok := constants.MathMLAttributeAdjustments[lower]; ok {
			adjustedName, lower = adj, strings.ToLower(adj)
		}
	case dom.NamespaceSVG:
		if adj, ok := constants.SVGAttributeAdjustments[lower]; ok {
			adjustedName, lower = adj, strings.ToLower(adj)
		}
	}

	foreignAdj, ok := constants.ForeignAttributeAdjustments[lower]
	if !ok {
		return dom.Attribute{Name: adjustedName, Value: value}
	}
	if foreignAdj.Prefix != "" {
		adjustedName = foreignAdj.Prefix + ":" + foreignAdj.LocalName
	} else {
		adjustedName = foreignAdj.LocalName
	}
	return dom.Attribute{Namespace: foreignAdj.NamespaceURL, Name: adjustedName, Value: value}
}

func (tb *TreeBuilder) insertForeignElement(name, namespace string, attrs []dom.Attribute, selfClosing bool) *dom.Element {
	el := tb.nodeAlloc.NewElementNS(name, namespace)
	if tb.currentToken.Type == tokenizer.StartTag {
		el.Pos = tb.currentToken.Pos
		el.OriginalTag = tb.currentToken.OriginalText
	}
	for _, a := range attrs {
		el.Attributes.Put(a)
	}
	tb.currentNode().AppendChild(el)
	if !selfClosing {
		tb.openElements = append(tb.openElements, el)
	}
	return el
}
