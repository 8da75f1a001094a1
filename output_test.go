package html5parser

import (
	"strings"
	"testing"

	"github.com/go-html5-parser/html5parser/dom"
	htmlerrors "github.com/go-html5-parser/html5parser/errors"
	"github.com/go-html5-parser/html5parser/internal/arena"
)

// firstElementChild returns the first element among node's children.
func firstElementChild(node dom.Node) *dom.Element {
	for _, child := range node.Children() {
		if el, ok := child.(*dom.Element); ok {
			return el
		}
	}
	return nil
}

func onlyText(t *testing.T, el *dom.Element) string {
	t.Helper()
	children := el.Children()
	if len(children) != 1 {
		t.Fatalf("<%s> has %d children, want exactly one text node", el.TagName, len(children))
	}
	text, ok := children[0].(*dom.Text)
	if !ok {
		t.Fatalf("<%s> child is %T, want *dom.Text", el.TagName, children[0])
	}
	return text.Data
}

func TestOutputWellFormedDocument(t *testing.T) {
	out := ParseToOutput("<!DOCTYPE html><html><body><p>Hello</p></body></html>")
	defer out.Destroy()

	if out.Document.Doctype == nil {
		t.Fatal("document has no doctype")
	}
	if got := out.Document.Doctype.Name; got != "html" {
		t.Errorf("doctype name = %q, want %q", got, "html")
	}
	if out.Document.QuirksMode != dom.NoQuirks {
		t.Errorf("quirks mode = %v, want NoQuirks", out.Document.QuirksMode)
	}
	if out.Root == nil || out.Root.TagName != "html" {
		t.Fatalf("root = %v, want <html>", out.Root)
	}
	body := out.Document.Body()
	if body == nil {
		t.Fatal("document has no body")
	}
	p := firstElementChild(body)
	if p == nil || p.TagName != "p" {
		t.Fatalf("body's first element = %v, want <p>", p)
	}
	if got := onlyText(t, p); got != "Hello" {
		t.Errorf("<p> text = %q, want %q", got, "Hello")
	}
	if len(out.Errors) != 0 {
		t.Errorf("errors = %v, want none", out.Errors)
	}
	if out.OutOfMemory {
		t.Error("OutOfMemory set on a successful parse")
	}
}

func TestOutputUnclosedParagraph(t *testing.T) {
	out := ParseToOutput("<p>unclosed")
	defer out.Destroy()

	body := out.Document.Body()
	if body == nil {
		t.Fatal("document has no body")
	}
	p := firstElementChild(body)
	if p == nil || p.TagName != "p" {
		t.Fatalf("body's first element = %v, want <p>", p)
	}
	if got := onlyText(t, p); got != "unclosed" {
		t.Errorf("<p> text = %q, want %q", got, "unclosed")
	}
	if p.ParseFlags&dom.FlagImpliedEndTag == 0 {
		t.Error("<p> closed at EOF should carry the implied-end-tag flag")
	}
	if len(out.Errors) != 0 {
		t.Errorf("errors = %v, want none (implicit close is not an error)", out.Errors)
	}
}

func TestOutputTableCellsImplied(t *testing.T) {
	out := ParseToOutput("<table><tr><td>a<td>b</tr></table>")
	defer out.Destroy()

	body := out.Document.Body()
	table := firstElementChild(body)
	if table == nil || table.TagName != "table" {
		t.Fatalf("body's first element = %v, want <table>", table)
	}
	tbody := firstElementChild(table)
	if tbody == nil || tbody.TagName != "tbody" {
		t.Fatalf("table's first element = %v, want <tbody>", tbody)
	}
	tr := firstElementChild(tbody)
	if tr == nil || tr.TagName != "tr" {
		t.Fatalf("tbody's first element = %v, want <tr>", tr)
	}
	var cells []*dom.Element
	for _, child := range tr.Children() {
		if el, ok := child.(*dom.Element); ok {
			cells = append(cells, el)
		}
	}
	if len(cells) != 2 || cells[0].TagName != "td" || cells[1].TagName != "td" {
		t.Fatalf("row cells = %v, want two <td>", cells)
	}
	if got := onlyText(t, cells[0]); got != "a" {
		t.Errorf("first cell text = %q, want %q", got, "a")
	}
	if got := onlyText(t, cells[1]); got != "b" {
		t.Errorf("second cell text = %q, want %q", got, "b")
	}
}

func TestOutputAdoptionAgency(t *testing.T) {
	out := ParseToOutput("<b>1<i>2</b>3</i>")
	defer out.Destroy()

	body := out.Document.Body()
	if body == nil {
		t.Fatal("document has no body")
	}

	var b, i2 *dom.Element
	for _, child := range body.Children() {
		el, ok := child.(*dom.Element)
		if !ok {
			continue
		}
		switch {
		case el.TagName == "b" && b == nil:
			b = el
		case el.TagName == "i":
			i2 = el
		}
	}
	if b == nil {
		t.Fatal("no <b> under body")
	}
	if i2 == nil {
		t.Fatal("no sibling <i> under body after adoption")
	}

	bChildren := b.Children()
	if len(bChildren) != 2 {
		t.Fatalf("<b> has %d children, want text + <i>", len(bChildren))
	}
	if text, ok := bChildren[0].(*dom.Text); !ok || text.Data != "1" {
		t.Errorf("<b> first child = %v, want text %q", bChildren[0], "1")
	}
	inner, ok := bChildren[1].(*dom.Element)
	if !ok || inner.TagName != "i" {
		t.Fatalf("<b> second child = %v, want <i>", bChildren[1])
	}
	if got := onlyText(t, inner); got != "2" {
		t.Errorf("inner <i> text = %q, want %q", got, "2")
	}
	if got := onlyText(t, i2); got != "3" {
		t.Errorf("sibling <i> text = %q, want %q", got, "3")
	}
}

func TestOutputCharacterReferences(t *testing.T) {
	input := "A&amp;B&#x41;C&notavalidentity;D"
	out := ParseToOutput(input)
	defer out.Destroy()

	body := out.Document.Body()
	if body == nil {
		t.Fatal("document has no body")
	}
	children := body.Children()
	if len(children) != 1 {
		t.Fatalf("body has %d children, want a single text node", len(children))
	}
	text, ok := children[0].(*dom.Text)
	if !ok {
		t.Fatalf("body child = %T, want *dom.Text", children[0])
	}
	if want := "A&BAC¬avalidentity;D"; text.Data != want {
		t.Errorf("text = %q, want %q", text.Data, want)
	}

	if len(out.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", out.Errors)
	}
	diag := out.Errors[0]
	if diag.Code != htmlerrors.MissingSemicolonAfterCharacterReference {
		t.Errorf("error code = %q, want %q", diag.Code, htmlerrors.MissingSemicolonAfterCharacterReference)
	}
	wantOffset := strings.Index(input, "&not")
	if diag.Offset != wantOffset {
		t.Errorf("error offset = %d, want %d", diag.Offset, wantOffset)
	}
	if diag.Line != 1 || diag.Column != wantOffset+1 {
		t.Errorf("error position = %d:%d, want 1:%d", diag.Line, diag.Column, wantOffset+1)
	}
	if diag.Text != "&not" {
		t.Errorf("error text = %q, want %q", diag.Text, "&not")
	}
}

func TestOutputLoneLessThan(t *testing.T) {
	out := ParseToOutput("<\n")
	defer out.Destroy()

	body := out.Document.Body()
	if body == nil {
		t.Fatal("document has no body")
	}
	children := body.Children()
	if len(children) != 1 {
		t.Fatalf("body has %d children, want a single text node", len(children))
	}
	text, ok := children[0].(*dom.Text)
	if !ok {
		t.Fatalf("body child = %T, want *dom.Text", children[0])
	}
	if text.Data != "<\n" {
		t.Errorf("text = %q, want %q", text.Data, "<\n")
	}
	if text.Pos.Line != 1 || text.Pos.Column != 1 || text.Pos.Offset != 0 {
		t.Errorf("text position = %d:%d offset %d, want 1:1 offset 0", text.Pos.Line, text.Pos.Column, text.Pos.Offset)
	}
}

func TestOutputDuplicateAttributePayload(t *testing.T) {
	out := ParseToOutput(`<!DOCTYPE html><p id="a" id="b">x</p>`)
	defer out.Destroy()

	if len(out.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", out.Errors)
	}
	diag := out.Errors[0]
	if diag.Code != htmlerrors.DuplicateAttribute {
		t.Fatalf("error code = %q, want duplicate-attribute", diag.Code)
	}
	dup := diag.DuplicateAttribute
	if dup == nil {
		t.Fatal("duplicate-attribute diagnostic has no payload")
	}
	if dup.Name != "id" {
		t.Errorf("payload name = %q, want %q", dup.Name, "id")
	}
	if dup.OriginalIndex != 0 || dup.NewIndex != 1 {
		t.Errorf("payload indices = (%d, %d), want (0, 1)", dup.OriginalIndex, dup.NewIndex)
	}
	if dup.FirstOffset >= diag.Offset {
		t.Errorf("first occurrence offset %d should precede duplicate offset %d", dup.FirstOffset, diag.Offset)
	}

	// The first occurrence wins.
	body := out.Document.Body()
	p := firstElementChild(body)
	if p == nil {
		t.Fatal("no <p> under body")
	}
	if got := p.Attr("id"); got != "a" {
		t.Errorf("id = %q, want first occurrence %q", got, "a")
	}
}

func TestOutputParserContextPayload(t *testing.T) {
	out := ParseToOutput("<!DOCTYPE html><form><form></form>x")
	defer out.Destroy()

	var ctxDiag *htmlerrors.Diagnostic
	for _, d := range out.Errors {
		if d.Context != nil {
			ctxDiag = d
			break
		}
	}
	if ctxDiag == nil {
		t.Fatalf("errors = %v, want one with a parser context", out.Errors)
	}
	if ctxDiag.Code != htmlerrors.UnexpectedStartTag {
		t.Errorf("code = %q, want %q", ctxDiag.Code, htmlerrors.UnexpectedStartTag)
	}
	if ctxDiag.Context.InsertionMode != "in body" {
		t.Errorf("insertion mode = %q, want %q", ctxDiag.Context.InsertionMode, "in body")
	}
	if ctxDiag.Context.TagName != "form" {
		t.Errorf("tag = %q, want %q", ctxDiag.Context.TagName, "form")
	}
	if len(ctxDiag.Context.OpenElements) == 0 {
		t.Error("open-element snapshot is empty")
	}
}

// checkIndexes walks the tree verifying the index-within-parent invariant:
// child.Parent().Children()[child.IndexWithinParent()] == child.
func checkIndexes(t *testing.T, node dom.Node) {
	t.Helper()
	for i, child := range node.Children() {
		if got := child.IndexWithinParent(); got != i {
			t.Errorf("child %d of %T reports index %d", i, node, got)
		}
		if child.Parent() != node {
			t.Errorf("child %d of %T has wrong parent", i, node)
		}
		checkIndexes(t, child)
	}
}

func TestOutputIndexWithinParentInvariant(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><html><body><p>Hello</p></body></html>",
		"<b>1<i>2</b>3</i>",
		"<table><tr><td>a<td>b</tr></table>",
		"<a><p>X<a>Y</a>Z</p></a>",
		"<table>x<td>y</table>",
	}
	for _, input := range inputs {
		out := ParseToOutput(input)
		checkIndexes(t, out.Document)
		out.Destroy()
	}
}

func TestOutputOriginalTextContainment(t *testing.T) {
	input := "<!DOCTYPE html><div class=\"x\">text<!-- c --></div>"
	out := ParseToOutput(input)
	defer out.Destroy()

	var walk func(node dom.Node)
	contains := func(s string) bool {
		return s == "" || strings.Contains(input, s)
	}
	walk = func(node dom.Node) {
		switch n := node.(type) {
		case *dom.Element:
			if !contains(n.OriginalTag) {
				t.Errorf("OriginalTag %q not a slice of the input", n.OriginalTag)
			}
			if !contains(n.OriginalEndTag) {
				t.Errorf("OriginalEndTag %q not a slice of the input", n.OriginalEndTag)
			}
			for _, a := range n.Attributes.All() {
				if !contains(a.OriginalName) || !contains(a.OriginalValue) {
					t.Errorf("attribute %q originals not slices of the input", a.Name)
				}
			}
		case *dom.Text:
			if !contains(n.OriginalText) {
				t.Errorf("text OriginalText %q not a slice of the input", n.OriginalText)
			}
		case *dom.Comment:
			if !contains(n.OriginalText) {
				t.Errorf("comment OriginalText %q not a slice of the input", n.OriginalText)
			}
		}
		for _, child := range node.Children() {
			walk(child)
		}
	}
	walk(out.Document)
}

func TestOutputErrorOffsetsMonotonic(t *testing.T) {
	out := ParseToOutput("<p id=\"a\" id=\"b\">&bogus;</p>\n<p id=\"c\" id=\"d\">&#xD801;</p>")
	defer out.Destroy()

	if len(out.Errors) < 2 {
		t.Fatalf("errors = %v, want at least two", out.Errors)
	}
	for i := 1; i < len(out.Errors); i++ {
		if out.Errors[i-1].Offset > out.Errors[i].Offset {
			t.Errorf("error %d offset %d precedes error %d offset %d", i, out.Errors[i].Offset, i-1, out.Errors[i-1].Offset)
		}
	}
}

type countingAllocator struct {
	allocs int
}

func (c *countingAllocator) Alloc(n int) ([]byte, bool) {
	c.allocs++
	return make([]byte, n), true
}

func TestOutputDestroyReleasesArena(t *testing.T) {
	counter := &countingAllocator{}
	out := ParseToOutput("<!DOCTYPE html><p>Hello</p>", WithAllocator(counter))

	if counter.allocs == 0 {
		t.Fatal("custom allocator was never used")
	}
	out.Destroy()
	out.Destroy() // idempotent
}

func TestOutputMaxErrorsCap(t *testing.T) {
	input := `<p a="1" a="2" b="3" b="4" c="5" c="6">x</p>`
	out := ParseToOutput(input, WithMaxErrors(2))
	defer out.Destroy()

	if len(out.Errors) != 2 {
		t.Errorf("errors = %d, want capped at 2", len(out.Errors))
	}

	full := ParseToOutput(input)
	defer full.Destroy()
	if len(full.Errors) != 3 {
		t.Errorf("uncapped errors = %d, want 3", len(full.Errors))
	}
}

func TestOutputXHTMLRulesRecordedOnly(t *testing.T) {
	out := ParseToOutput("<!DOCTYPE html><p>Hello</p>", WithXHTMLRules())
	defer out.Destroy()

	if !out.XHTMLRules {
		t.Error("XHTMLRules hint not recorded")
	}
	p := firstElementChild(out.Document.Body())
	if p == nil || onlyText(t, p) != "Hello" {
		t.Error("XHTML hint must not change tree construction")
	}
}

func TestOutputOutOfMemorySurfaced(t *testing.T) {
	out := ParseToOutput("<!DOCTYPE html><p>Hello</p>", WithAllocator(&failingAfter{allowed: 0}))

	if !out.OutOfMemory {
		t.Fatal("OutOfMemory not set when the allocator refuses every chunk")
	}
	if out.Document == nil {
		t.Fatal("partial document missing under OOM")
	}
	out.Destroy()
	out.Destroy()
}

type failingAfter struct {
	allowed int
}

func (f *failingAfter) Alloc(n int) ([]byte, bool) {
	if f.allowed <= 0 {
		return nil, false
	}
	f.allowed--
	return make([]byte, n), true
}

var _ arena.Allocator = (*countingAllocator)(nil)
var _ arena.Allocator = (*failingAfter)(nil)
