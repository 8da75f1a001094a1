// Package tagtable provides a case-insensitive tag-name to compact-enum
// lookup, and its inverse, for a fixed set of common HTML5 tags plus a few
// SVG/MathML tag names. Legacy HTML tags (such as applet, center, font,
// marquee, xmp) and most SVG names in the foreign-content adjustment tables
// (such as feBlend or desc) are not in the set and map to Unknown. The set is
// fixed at build time
// (new elements never appear mid-parse), so a sorted-slice binary search
// over the canonical lowercase spellings is used rather than a generated
// perfect hash — the distinction is a micro-optimization, not a
// correctness concern, for a table this size.
package tagtable

import "sort"

// ID is a compact identifier for a known tag name.
type ID int

// Unknown is the sentinel returned for any tag text not in the table. The
// element node created from it still retains its original source text; the
// sentinel only means "not eligible for enum-keyed fast paths".
const Unknown ID = 0

// Canonical HTML5 element tags, ordered alphabetically for readability (the
// lookup table itself is sorted independently, see init).
const (
	_ ID = iota
	A
	Abbr
	Address
	Area
	Article
	Aside
	Audio
	B
	Base
	Bdi
	Bdo
	Blockquote
	Body
	Br
	Button
	Canvas
	Caption
	Cite
	Code
	Col
	Colgroup
	Data
	Datalist
	Dd
	Del
	Details
	Dfn
	Dialog
	Div
	Dl
	Dt
	Em
	Embed
	Fieldset
	Figcaption
	Figure
	Footer
	Form
	Frame
	Frameset
	H1
	H2
	H3
	H4
	H5
	H6
	Head
	Header
	Hgroup
	Hr
	HTML
	I
	Iframe
	Img
	Input
	Ins
	Kbd
	Label
	Legend
	Li
	Link
	Main
	Map
	Mark
	Menu
	Meta
	Meter
	Nav
	Noembed
	Noframes
	Noscript
	Object
	Ol
	Optgroup
	Option
	Output
	P
	Param
	Picture
	Plaintext
	Pre
	Progress
	Q
	Rb
	Rp
	Rt
	Rtc
	Ruby
	S
	Samp
	Script
	Section
	Select
	Slot
	Small
	Source
	Span
	Strong
	Style
	Sub
	Summary
	Sup
	Table
	Tbody
	Td
	Template
	Textarea
	Tfoot
	Th
	Thead
	Time
	Title
	Tr
	Track
	U
	Ul
	Var
	Video
	Wbr

	// SVG tag names referenced by the foreign-content adjustment tables.
	SVG
	AltGlyph
	AnimateMotion
	AnimateTransform
	ClipPath
	FeGaussianBlur
	ForeignObject
	LinearGradient
	RadialGradient
	TextPath

	// MathML tag names referenced by the foreign-content / integration-point
	// tables.
	Math
	Mi
	Mo
	Mn
	Ms
	Mtext
	AnnotationXML

	numIDs
)

type entry struct {
	name string
	id   ID
}

var table []entry

func init() {
	names := map[ID]string{
		A: "a", Abbr: "abbr", Address: "address", Area: "area", Article: "article",
		Aside: "aside", Audio: "audio", B: "b", Base: "base", Bdi: "bdi", Bdo: "bdo",
		Blockquote: "blockquote", Body: "body", Br: "br", Button: "button",
		Canvas: "canvas", Caption: "caption", Cite: "cite", Code: "code", Col: "col",
		Colgroup: "colgroup", Data: "data", Datalist: "datalist", Dd: "dd", Del: "del",
		Details: "details", Dfn: "dfn", Dialog: "dialog", Div: "div", Dl: "dl", Dt: "dt",
		Em: "em", Embed: "embed", Fieldset: "fieldset", Figcaption: "figcaption",
		Figure: "figure", Footer: "footer", Form: "form", Frame: "frame",
		Frameset: "frameset", H1: "h1", H2: "h2", H3: "h3", H4: "h4", H5: "h5", H6: "h6",
		Head: "head", Header: "header", Hgroup: "hgroup", Hr: "hr", HTML: "html",
		I: "i", Iframe: "iframe", Img: "img", Input: "input", Ins: "ins", Kbd: "kbd",
		Label: "label", Legend: "legend", Li: "li", Link: "link", Main: "main",
		Map: "map", Mark: "mark", Menu: "menu", Meta: "meta", Meter: "meter", Nav: "nav",
		Noembed: "noembed", Noframes: "noframes", Noscript: "noscript", Object: "object",
		Ol: "ol", Optgroup: "optgroup", Option: "option", Output: "output", P: "p",
		Param: "param", Picture: "picture", Plaintext: "plaintext", Pre: "pre",
		Progress: "progress", Q: "q", Rb: "rb", Rp: "rp", Rt: "rt", Rtc: "rtc",
		Ruby: "ruby", S: "s", Samp: "samp", Script: "script", Section: "section",
		Select: "select", Slot: "slot", Small: "small", Source: "source", Span: "span",
		Strong: "strong", Style: "style", Sub: "sub", Summary: "summary", Sup: "sup",
		Table: "table", Tbody: "tbody", Td: "td", Template: "template",
		Textarea: "textarea", Tfoot: "tfoot", Th: "th", Thead: "thead", Time: "time",
		Title: "title", Tr: "tr", Track: "track", U: "u", Ul: "ul", Var: "var",
		Video: "video", Wbr: "wbr",

		SVG: "svg", AltGlyph: "altGlyph", AnimateMotion: "animateMotion",
		AnimateTransform: "animateTransform", ClipPath: "clipPath",
		FeGaussianBlur: "feGaussianBlur", ForeignObject: "foreignObject",
		LinearGradient: "linearGradient", RadialGradient: "radialGradient",
		TextPath: "textPath",

		Math: "math", Mi: "mi", Mo: "mo", Mn: "mn", Ms: "ms", Mtext: "mtext",
		AnnotationXML: "annotation-xml",
	}

	table = make([]entry, 0, len(names))
	for id, name := range names {
		table = append(table, entry{name: lowerASCII(name), id: id})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].name < table[j].name })
}

// Lookup returns the ID for tagName (matched case-insensitively against the
// canonical ASCII lowercase spelling) and whether it was found.
func Lookup(tagName string) (ID, bool) {
	key := lowerASCII(tagName)
	i := sort.Search(len(table), func(i int) bool { return table[i].name >= key })
	if i < len(table) && table[i].name == key {
		return table[i].id, true
	}
	return Unknown, false
}

// nameByID is built lazily from table for String's reverse lookup.
var nameByID map[ID]string

// String returns the canonical ASCII-lowercase spelling for id (SVG/MathML
// names included, e.g. "foreignobject"), or "" for Unknown / an id outside
// the known set.
func (id ID) String() string {
	if nameByID == nil {
		nameByID = make(map[ID]string, len(table))
		for _, e := range table {
			nameByID[e.id] = e.name
		}
	}
	return nameByID[id]
}

func lowerASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
