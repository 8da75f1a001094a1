package treebuilder

import (
	"sort"
	"strings"

	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/tokenizer"
)

// formattingEntry is one slot in the list of active formatting elements
// (WHATWG §13.2.4.3): either a real formatting element and the attributes
// it was opened with, or a scope marker left behind by <button>-like
// insertion points that bound reconstruction and the Noah's Ark check.
type formattingEntry struct {
	marker    bool
	name      string
	attrs     []tokenizer.Attr
	node      *dom.Element
	signature string // attrsSignature(attrs), cached so Noah's Ark doesn't resort on every push
}

func (e formattingEntry) matches(name, signature string) bool {
	return !e.marker && e.name == name && e.signature == signature
}

// pushFormattingMarker records a scope marker, used when entering
// insertion points (table cells, captions, object elements, ...) that the
// adoption agency algorithm must not reach past.
func (tb *TreeBuilder) pushFormattingMarker() {
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{marker: true})
}

// clearActiveFormattingUpToMarker pops entries off the active formatting
// list until (and including) the most recent marker, or until the list is
// empty if there is none.
func (tb *TreeBuilder) clearActiveFormattingUpToMarker() {
	for len(tb.activeFormatting) > 0 {
		n := len(tb.activeFormatting) - 1
		popped := tb.activeFormatting[n]
		tb.activeFormatting = tb.activeFormatting[:n]
		if popped.marker {
			return
		}
	}
}

// appendActiveFormattingEntry records a newly opened formatting element.
// Callers that must honor the Noah's Ark clause run
// findActiveFormattingDuplicate/removeFormattingEntry first; the "a" start
// tag handler intentionally does not, since it instead closes any earlier
// "a" via the adoption agency algorithm before reaching here.
func (tb *TreeBuilder) appendActiveFormattingEntry(name string, attrs []tokenizer.Attr, node *dom.Element) {
	entryAttrs := cloneTokenAttrs(attrs)
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{
		name:      name,
		attrs:     entryAttrs,
		node:      node,
		signature: attrsSignature(entryAttrs),
	})
}

// findActiveFormattingIndex returns the index of the most recent entry named
// name before the next marker (searching back to front), or ok=false if
// there isn't one.
func (tb *TreeBuilder) findActiveFormattingIndex(name string) (int, bool) {
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		entry := tb.activeFormatting[i]
		if entry.marker {
			return -1, false
		}
		if entry.name == name {
			return i, true
		}
	}
	return -1, false
}

// findActiveFormattingIndexByNode locates the entry wrapping node, ignoring
// markers, searching the whole list rather than stopping at the first one.
func (tb *TreeBuilder) findActiveFormattingIndexByNode(node *dom.Element) (int, bool) {
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		if entry := tb.activeFormatting[i]; !entry.marker && entry.node == node {
			return i, true
		}
	}
	return -1, false
}

// findActiveFormattingDuplicate implements the Noah's Ark clause's search:
// the earliest of three-or-more same-name-and-attributes entries found
// since the last marker, if that many exist.
func (tb *TreeBuilder) findActiveFormattingDuplicate(name string, attrs []tokenizer.Attr) (int, bool) {
	sig := attrsSignature(attrs)
	var matches []int
	for i, entry := range tb.activeFormatting {
		if entry.marker {
			matches = matches[:0]
			continue
		}
		if entry.matches(name, sig) {
			matches = append(matches, i)
		}
	}
	const noahsArkLimit = 3
	if len(matches) >= noahsArkLimit {
		return matches[0], true
	}
	return -1, false
}

func (tb *TreeBuilder) hasActiveFormattingEntry(name string) bool {
	_, ok := tb.findActiveFormattingIndex(name)
	return ok
}

func (tb *TreeBuilder) removeFormattingEntry(index int) {
	if index < 0 || index >= len(tb.activeFormatting) {
		return
	}
	tb.activeFormatting = append(tb.activeFormatting[:index], tb.activeFormatting[index+1:]...)
}

func (tb *TreeBuilder) removeLastActiveFormattingByName(name string) {
	if i, ok := tb.findActiveFormattingIndex(name); ok {
		tb.removeFormattingEntry(i)
	}
}

func (tb *TreeBuilder) removeLastOpenElementByName(name string) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == name {
			tb.openElements = append(tb.openElements[:i], tb.openElements[i+1:]...)
			return
		}
	}
}

// reconstructActiveFormattingElements implements WHATWG §13.2.4.3's
// "reconstruct the active formatting elements" step: walks back from the
// end of the list to find the first entry that is either a marker or
// already on the stack of open elements, then re-inserts every entry after
// that point as a fresh clone, relinking each entry to its new element.
func (tb *TreeBuilder) reconstructActiveFormattingElements() {
	if len(tb.activeFormatting) == 0 {
		return
	}
	if last := tb.activeFormatting[len(tb.activeFormatting)-1]; last.marker || tb.elementInOpenElements(last.node) {
		return
	}

	start := 0
	for i := len(tb.activeFormatting) - 2; i >= 0; i-- {
		entry := tb.activeFormatting[i]
		if entry.marker || tb.elementInOpenElements(entry.node) {
			start = i + 1
			break
		}
	}

	for i := start; i < len(tb.activeFormatting); i++ {
		entry := tb.activeFormatting[i]
		tb.activeFormatting[i].node = tb.insertElement(entry.name, cloneTokenAttrs(entry.attrs))
	}
}

func (tb *TreeBuilder) elementInOpenElements(node *dom.Element) bool {
	for _, el := range tb.openElements {
		if el == node {
			return true
		}
	}
	return false
}

func cloneTokenAttrs(attrs []tokenizer.Attr) []tokenizer.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]tokenizer.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// attrsSignature reduces an attribute list to an order-independent string
// so two elements can be compared for the Noah's Ark clause without a
// nested loop; namespaced attributes are excluded, matching the spec's
// "attributes are the same" test over an element's plain attribute list.
func attrsSignature(attrs []tokenizer.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	values := make(map[string]string, len(attrs))
	keys := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if a.Namespace != "" {
			continue
		}
		if _, seen := values[a.Name]; !seen {
			keys = append(keys, a.Name)
		}
		values[a.Name] = a.Value
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(values[k])
		sb.WriteByte(0)
	}
	return sb.String()
}
