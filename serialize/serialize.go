// Package serialize provides HTML serialization for DOM nodes.
package serialize

import (
	"strconv"
	"strings"

	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/internal/constants"
)

// Options configures serialization behavior.
type Options struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool

	// IndentSize is the number of spaces per indentation level.
	IndentSize int
}

// DefaultOptions returns the default serialization options.
func DefaultOptions() Options {
	return Options{Pretty: false, IndentSize: 2}
}

// ToHTML serializes a node to HTML.
func ToHTML(node dom.Node, opts Options) string {
	var sb strings.Builder
	serializeNode(&sb, node, opts, 0)
	return sb.String()
}

// ToMarkdown serializes a node to Markdown.
func ToMarkdown(node dom.Node) string {
	var sb strings.Builder
	serializeMarkdown(&sb, node, 0, false)
	return strings.TrimSpace(sb.String())
}

func serializeNode(sb *strings.Builder, node dom.Node, opts Options, depth int) {
	serializeNodeWithInline(sb, node, opts, depth, false)
}

func serializeNodeWithInline(sb *strings.Builder, node dom.Node, opts Options, depth int, inline bool) {
	switch n := node.(type) {
	case *dom.Document:
		serializeDocument(sb, n, opts, depth)
	case *dom.DocumentType:
		serializeDoctype(sb, n)
	case *dom.Element:
		serializeElement(sb, n, opts, depth, inline)
	case *dom.Text:
		serializeText(sb, n, opts, depth)
	case *dom.Comment:
		serializeComment(sb, n, opts, depth, inline)
	}
}

func serializeDocument(sb *strings.Builder, doc *dom.Document, opts Options, depth int) {
	if doc.Doctype != nil {
		serializeDoctype(sb, doc.Doctype)
		if opts.Pretty {
			sb.WriteByte('\n')
		}
	}
	for _, child := range doc.Children() {
		serializeNode(sb, child, opts, depth)
	}
}

func serializeDoctype(sb *strings.Builder, dt *dom.DocumentType) {
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(dt.Name)
	switch {
	case dt.PublicID != "":
		sb.WriteString(" PUBLIC \"")
		sb.WriteString(dt.PublicID)
		sb.WriteByte('"')
		if dt.SystemID != "" {
			sb.WriteString(" \"")
			sb.WriteString(dt.SystemID)
			sb.WriteByte('"')
		}
	case dt.SystemID != "":
		sb.WriteString(" SYSTEM \"")
		sb.WriteString(dt.SystemID)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
}

func writeIndent(sb *strings.Builder, opts Options, depth int) {
	if opts.Pretty && depth > 0 {
		sb.WriteString(strings.Repeat(" ", depth*opts.IndentSize))
	}
}

func serializeElement(sb *strings.Builder, elem *dom.Element, opts Options, depth int, inline bool) {
	if !inline {
		writeIndent(sb, opts, depth)
	}

	sb.WriteByte('<')
	sb.WriteString(elem.TagName)
	for _, attr := range elem.Attributes.All() {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString("=\"")
		sb.WriteString(escapeAttr(attr.Value))
		sb.WriteByte('"')
	}

	if isVoidElement(elem.TagName) {
		sb.WriteByte('>')
		return
	}
	sb.WriteByte('>')

	children := elem.Children()
	if opts.Pretty {
		serializeChildrenPretty(sb, children, opts, depth)
	} else {
		for _, child := range children {
			serializeNode(sb, child, opts, depth+1)
		}
	}

	sb.WriteString("</")
	sb.WriteString(elem.TagName)
	sb.WriteByte('>')
}

// serializeChildrenPretty filters out whitespace-only text nodes, then lays
// children out one per line (indented) if any of them is a block element,
// or inline on the current line otherwise.
func serializeChildrenPretty(sb *strings.Builder, children []dom.Node, opts Options, depth int) {
	significant := make([]dom.Node, 0, len(children))
	for _, child := range children {
		if text, ok := child.(*dom.Text); ok && isWhitespaceOnly(text.Data) {
			continue
		}
		significant = append(significant, child)
	}
	if len(significant) == 0 {
		return
	}

	hasBlock := false
	for _, child := range significant {
		if elem, ok := child.(*dom.Element); ok && isBlockElement(elem.TagName) {
			hasBlock = true
			break
		}
	}

	for _, child := range significant {
		if hasBlock {
			sb.WriteByte('\n')
			serializeNodeWithInline(sb, child, opts, depth+1, false)
		} else {
			serializeNodeWithInline(sb, child, opts, depth, true)
		}
	}

	if hasBlock {
		sb.WriteByte('\n')
		writeIndent(sb, opts, depth)
	}
}

// serializeText serializes a text node. In pretty mode, whitespace-only
// nodes are dropped (the block layout above already supplies formatting)
// and remaining runs of whitespace are collapsed to a single space while
// keeping a leading/trailing space for inline runs like "a <b>b</b> c".
func serializeText(sb *strings.Builder, text *dom.Text, opts Options, _ int) {
	data := text.Data
	if opts.Pretty {
		if isWhitespaceOnly(data) {
			return
		}
		data = collapseWhitespace(data)
	}
	sb.WriteString(escapeText(data))
}

func serializeComment(sb *strings.Builder, comment *dom.Comment, opts Options, depth int, inline bool) {
	if !inline {
		writeIndent(sb, opts, depth)
	}
	sb.WriteString("<!--")
	sb.WriteString(comment.Data)
	sb.WriteString("-->")
}

func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		if !isWhitespaceChar(r) {
			return false
		}
	}
	return true
}

// collapseWhitespace collapses interior whitespace runs to a single space
// while preserving whether the original string started/ended with whitespace.
func collapseWhitespace(s string) string {
	if len(s) == 0 {
		return s
	}
	hasLeading := isWhitespaceChar(rune(s[0]))
	hasTrailing := isWhitespaceChar(rune(s[len(s)-1]))

	result := strings.TrimSpace(collapseRuns(s))
	if hasLeading && result != "" {
		result = " " + result
	}
	if hasTrailing && result != "" {
		result += " "
	}
	return result
}

// collapseRuns reduces every run of whitespace in s to a single space,
// without trimming the ends — callers decide what to do with the edges.
func collapseRuns(s string) string {
	var sb strings.Builder
	inWhitespace := false
	for _, r := range s {
		if isWhitespaceChar(r) {
			if !inWhitespace {
				sb.WriteByte(' ')
				inWhitespace = true
			}
			continue
		}
		sb.WriteRune(r)
		inWhitespace = false
	}
	return sb.String()
}

func isWhitespaceChar(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

var textEscapes = map[rune]string{'&': "&amp;", '<': "&lt;", '>': "&gt;"}
var attrEscapes = map[rune]string{'&': "&amp;", '"': "&quot;"}

func escapeWith(s string, escapes map[rune]string) string {
	var sb strings.Builder
	for _, r := range s {
		if esc, ok := escapes[r]; ok {
			sb.WriteString(esc)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeText(s string) string { return escapeWith(s, textEscapes) }
func escapeAttr(s string) string { return escapeWith(s, attrEscapes) }

// blockElementNames are the tag names serializeChildrenPretty treats as
// needing their own line; it is serialize's own layout concern rather than
// the parser's, so it stays local instead of living in internal/constants.
var blockElementNames = []string{
	"address", "article", "aside", "blockquote", "body", "canvas", "dd", "div",
	"dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hr", "html", "li", "main",
	"nav", "noscript", "ol", "p", "pre", "section", "table", "tbody", "td", "tfoot",
	"th", "thead", "title", "tr", "ul", "video",
}

var blockElements = buildTagSet(blockElementNames)

func buildTagSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func isBlockElement(tag string) bool { return blockElements[tag] }

// isVoidElement reports whether tag is a void element (no closing tag, no
// children), delegating to the parser's own table so serialization and
// tree construction never disagree on the set.
func isVoidElement(tag string) bool { return constants.VoidElements[tag] }

// serializeMarkdown converts DOM nodes to Markdown format.
func serializeMarkdown(sb *strings.Builder, node dom.Node, listDepth int, inList bool) {
	switch n := node.(type) {
	case *dom.Document:
		for _, child := range n.Children() {
			serializeMarkdown(sb, child, listDepth, inList)
		}
	case *dom.Element:
		serializeElementMarkdown(sb, n, listDepth, inList)
	case *dom.Text:
		if text := strings.TrimSpace(collapseRuns(n.Data)); text != "" {
			sb.WriteString(text)
		}
	case *dom.Comment:
		// Comments are omitted in markdown.
	}
}

// headingMarkers gives the leading "# " .. "###### " marker for h1..h6.
var headingMarkers = map[string]string{
	"h1": "# ", "h2": "## ", "h3": "### ", "h4": "#### ", "h5": "##### ", "h6": "###### ",
}

// inlineMarkdownWrap brackets an element's rendered children with a prefix
// and suffix — covers strong/b, em/i, and code, which differ only in the
// markers used.
var inlineMarkdownWrap = map[string][2]string{
	"strong": {" **", "** "}, "b": {" **", "** "},
	"em": {" *", "* "}, "i": {" *", "* "},
	"code": {" `", "` "},
}

//nolint:funlen // Markdown serialization requires many element type cases
func serializeElementMarkdown(sb *strings.Builder, elem *dom.Element, listDepth int, inList bool) {
	if marker, ok := headingMarkers[elem.TagName]; ok {
		sb.WriteString(marker)
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString("\n\n")
		return
	}
	if wrap, ok := inlineMarkdownWrap[elem.TagName]; ok {
		sb.WriteString(wrap[0])
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString(wrap[1])
		return
	}

	switch elem.TagName {
	case "p":
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString("\n\n")
	case "br":
		sb.WriteString("  \n")
	case "hr":
		sb.WriteString("---\n\n")
	case "pre":
		sb.WriteString("```\n")
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString("\n```\n\n")
	case "a":
		href, _ := elem.Attributes.Get("href")
		sb.WriteString(" [")
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString("](")
		sb.WriteString(href)
		sb.WriteString(") ")
	case "img":
		alt, _ := elem.Attributes.Get("alt")
		src, _ := elem.Attributes.Get("src")
		sb.WriteString("![")
		sb.WriteString(alt)
		sb.WriteString("](")
		sb.WriteString(src)
		sb.WriteString(")")
	case "ul":
		for _, child := range elem.Children() {
			serializeMarkdown(sb, child, listDepth, true)
		}
		if listDepth == 0 {
			sb.WriteString("\n")
		}
	case "ol":
		index := 1
		for _, child := range elem.Children() {
			if li, ok := child.(*dom.Element); ok && li.TagName == "li" {
				sb.WriteString(strings.Repeat("  ", listDepth))
				sb.WriteString(strconv.Itoa(index))
				sb.WriteString(". ")
				serializeChildrenMarkdown(sb, li, listDepth+1, true)
				sb.WriteString("\n")
				index++
			}
		}
		if listDepth == 0 {
			sb.WriteString("\n")
		}
	case "li":
		sb.WriteString(strings.Repeat("  ", listDepth))
		sb.WriteString("- ")
		serializeChildrenMarkdown(sb, elem, listDepth+1, true)
		sb.WriteString("\n")
	case "blockquote":
		sb.WriteString("> ")
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		sb.WriteString("\n\n")
	case "table", "thead", "tbody", "tr", "th", "td":
		serializeChildrenMarkdown(sb, elem, listDepth, false)
		if elem.TagName == "tr" {
			sb.WriteString("\n")
		}
	case "head", "title", "meta", "link", "script", "style":
		return
	default:
		serializeChildrenMarkdown(sb, elem, listDepth, inList)
	}
}

func serializeChildrenMarkdown(sb *strings.Builder, elem *dom.Element, listDepth int, inList bool) {
	for _, child := range elem.Children() {
		serializeMarkdown(sb, child, listDepth, inList)
	}
}
