package treebuilder

import (
	"strings"

	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/internal/constants"
	"github.com/go-html5-parser/html5parser/tokenizer"
)

// scopeWalk implements the shared shape of every "has an element in X
// scope" check (WHATWG §13.2.5.2.5): walk the stack of open elements from
// the top, returning true on hitting a tag want accepts, false on hitting
// a scope terminator (or, when checkIntegrationPoints is set, a foreign
// integration point) first.
func (tb *TreeBuilder) scopeWalk(want func(tag string) bool, terminators map[string]bool, checkIntegrationPoints bool) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		if node.Namespace == dom.NamespaceHTML {
			if want(node.TagName) {
				return true
			}
			if terminators[node.TagName] {
				return false
			}
			continue
		}
		if checkIntegrationPoints && (tb.isHTMLIntegrationPoint(node) || tb.isMathMLTextIntegrationPoint(node)) {
			return false
		}
	}
	return false
}

func (tb *TreeBuilder) hasElementInScope(tagName string, scope map[string]bool) bool {
	return tb.scopeWalk(func(tag string) bool { return tag == tagName }, scope, true)
}

func (tb *TreeBuilder) hasPElementInButtonScope() bool {
	return tb.hasElementInScope("p", constants.ButtonScope)
}

func (tb *TreeBuilder) hasElementInTableScope(tagName string) bool {
	return tb.scopeWalk(func(tag string) bool { return tag == tagName }, constants.TableScope, false)
}

func (tb *TreeBuilder) hasElementInListItemScope(tagName string) bool {
	return tb.hasElementInScope(tagName, constants.ListItemScope)
}

func (tb *TreeBuilder) hasElementInDefinitionScope(tagName string) bool {
	return tb.hasElementInScope(tagName, constants.DefinitionScope)
}

func (tb *TreeBuilder) hasAnyElementInScope(tagSet map[string]bool, scope map[string]bool) bool {
	return tb.scopeWalk(func(tag string) bool { return tagSet[tag] }, scope, true)
}

func (tb *TreeBuilder) hasForeignElementOnStack() bool {
	for _, node := range tb.openElements {
		if node.Namespace != dom.NamespaceHTML {
			return true
		}
	}
	return false
}

func isHeadingElement(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	default:
		return false
	}
}

// generateImpliedEndTags pops elements named in constants.ImpliedEndTagElements
// off the stack of open elements, stopping at except (if given) or the first
// element that is not one of them (WHATWG §13.2.5.3).
func (tb *TreeBuilder) generateImpliedEndTags(except string) {
	for {
		node := tb.currentElement()
		if node == nil || node.Namespace != dom.NamespaceHTML {
			return
		}
		if !constants.ImpliedEndTagElements[node.TagName] || node.TagName == except {
			return
		}
		tb.popCurrent()
	}
}

// clearStackUntil pops the stack of open elements until the current node is
// an HTML element named in tagNames, generalizing "clear the stack back to
// a table context" (WHATWG §13.2.6.4.9) to the other "clear to a ... context"
// variants.
func (tb *TreeBuilder) clearStackUntil(tagNames map[string]bool) {
	for {
		node := tb.currentElement()
		if node == nil || (node.Namespace == dom.NamespaceHTML && tagNames[node.TagName]) {
			return
		}
		tb.popCurrent()
	}
}

func (tb *TreeBuilder) closeCaptionElement() bool {
	if !tb.hasElementInTableScope("caption") {
		return false
	}
	tb.generateImpliedEndTags("")
	for {
		node := tb.popCurrent()
		if node == nil || node.TagName == "caption" {
			break
		}
	}
	tb.clearActiveFormattingUpToMarker()
	tb.mode = InTable
	return true
}

func (tb *TreeBuilder) closeTableCell() bool {
	if !tb.hasElementInTableScope("td") && !tb.hasElementInTableScope("th") {
		return false
	}
	tb.popUntilAnyCell()
	tb.clearActiveFormattingElements()
	tb.mode = InRow
	return true
}

// modeForOpenTag maps the lowercase tag name of an HTML-namespace element on
// the stack of open elements to the insertion mode resetInsertionModeAppropriately
// should select for it, matching WHATWG §13.2.5.2.4 entry by entry.
var modeForOpenTag = map[string]InsertionMode{
	"select":   InSelect,
	"td":       InCell,
	"th":       InCell,
	"tr":       InRow,
	"tbody":    InTableBody,
	"tfoot":    InTableBody,
	"thead":    InTableBody,
	"caption":  InCaption,
	"colgroup": InColumnGroup,
	"table":    InTable,
	"head":     InHead,
	"body":     InBody,
	"html":     InBody,
}

func (tb *TreeBuilder) resetInsertionModeAppropriately() {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		// Only HTML namespace elements participate in insertion-mode
		// selection; a foreign <tr>/<th> must not switch us into table modes.
		if node.Namespace != dom.NamespaceHTML {
			continue
		}
		tag := strings.ToLower(node.TagName)
		if tag == "template" {
			tb.mode = InTemplate
			if len(tb.templateModes) > 0 {
				tb.mode = tb.templateModes[len(tb.templateModes)-1]
			}
			return
		}
		if mode, ok := modeForOpenTag[tag]; ok {
			tb.mode = mode
			return
		}
	}
	tb.mode = InBody
}

func (tb *TreeBuilder) clearActiveFormattingElements() {
	tb.clearActiveFormattingUpToMarker()
}

func (tb *TreeBuilder) pushActiveFormattingMarker() {
	tb.pushFormattingMarker()
}

func (tb *TreeBuilder) setQuirksModeFromDoctype(name string, publicID, systemID *string, forceQuirks bool) bool {
	nonConforming, mode := doctypeErrorAndQuirks(name, publicID, systemID, forceQuirks, tb.iframeSrcdoc)
	tb.document.QuirksMode = mode
	return nonConforming
}

// anyOtherEndTag implements the in-body "any other end tag" clause
// (WHATWG §13.2.6.4.7): find the matching open element from the top down,
// generate implied end tags around it, then pop the stack through it;
// stop without effect if a special element is found first.
func (tb *TreeBuilder) anyOtherEndTag(name string) {
	target := strings.ToLower(name)
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		if strings.ToLower(node.TagName) == target {
			tb.generateImpliedEndTags(name)
			for j := len(tb.openElements) - 1; j >= i && j >= 0; j-- {
				tb.stampClose(tb.openElements[j])
			}
			if i < len(tb.openElements) {
				tb.openElements = tb.openElements[:i]
			}
			return
		}
		if isSpecialElement(node) {
			return
		}
	}
}

func (tb *TreeBuilder) removeFromOpenElements(target *dom.Element) bool {
	for i, el := range tb.openElements {
		if el == target {
			tb.openElements = append(tb.openElements[:i], tb.openElements[i+1:]...)
			return true
		}
	}
	return false
}

func filterWhitespace(data string) string {
	var sb strings.Builder
	for _, r := range data {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// legacyDoctype is one row of the fixed set of exact (name, public id,
// system id) triples WHATWG §13.2.4.12 recognizes as raising no parse
// error on their own.
type legacyDoctype struct {
	name, public, system string
}

var acceptableDoctypes = map[legacyDoctype]bool{
	{"html", "", ""}:                         true,
	{"html", "", "about:legacy-compat"}:      true,
	{"html", "-//W3C//DTD HTML 4.0//EN", ""}: true,
	{"html", "-//W3C//DTD HTML 4.0//EN", "http://www.w3.org/TR/REC-html40/strict.dtd"}:                true,
	{"html", "-//W3C//DTD HTML 4.01//EN", ""}:                                                         true,
	{"html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd"}:                    true,
	{"html", "-//W3C//DTD XHTML 1.0 Strict//EN", "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"}: true,
	{"html", "-//W3C//DTD XHTML 1.1//EN", "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd"}:             true,
}

// doctypeErrorAndQuirks reports whether a DOCTYPE token is a parse error and
// which quirks mode it selects, per the "initial" insertion mode's DOCTYPE
// handling (WHATWG §13.2.6.4.1).
func doctypeErrorAndQuirks(name string, publicID, systemID *string, forceQuirks, iframeSrcdoc bool) (bool, dom.QuirksMode) {
	nameLower := strings.ToLower(name)
	public := ptrToString(publicID)
	system := ptrToString(systemID)
	parseError := !acceptableDoctypes[legacyDoctype{nameLower, public, system}]

	publicLower := strings.ToLower(public)
	systemLower := strings.ToLower(system)

	switch {
	case forceQuirks:
		return parseError, dom.Quirks
	case iframeSrcdoc:
		return parseError, dom.NoQuirks
	case nameLower != "html":
		return parseError, dom.Quirks
	case constants.QuirkyPublicMatches[publicLower]:
		return parseError, dom.Quirks
	case constants.QuirkySystemMatches[systemLower]:
		return parseError, dom.Quirks
	case publicLower != "" && hasAnyPrefix(publicLower, constants.QuirkyPublicPrefixes):
		return parseError, dom.Quirks
	case publicLower != "" && hasAnyPrefix(publicLower, constants.LimitedQuirkyPublicPrefixes):
		return parseError, dom.LimitedQuirks
	case publicLower != "" && hasAnyPrefix(publicLower, constants.HTML4PublicPrefixes):
		if systemID == nil {
			return parseError, dom.Quirks
		}
		return parseError, dom.LimitedQuirks
	default:
		return parseError, dom.NoQuirks
	}
}

func hasAnyPrefix(needle string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(needle, prefix) {
			return true
		}
	}
	return false
}

func isHiddenInput(attrs []tokenizer.Attr) bool {
	for _, attr := range attrs {
		if attr.Namespace == "" && strings.EqualFold(attr.Name, "type") && strings.EqualFold(attr.Value, "hidden") {
			return true
		}
	}
	return false
}
