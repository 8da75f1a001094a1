package selector

import (
	"strconv"
	"strings"

	"github.com/go-html5-parser/html5parser/dom"
)

// matchAST checks if an element matches a parsed selector AST.
func matchAST(elem *dom.Element, sel selectorAST) bool {
	switch s := sel.(type) {
	case ComplexSelector:
		return matchComplex(elem, s)
	case SelectorList:
		return matchSelectorList(elem, s)
	default:
		return false
	}
}

// matchSelectorList checks if an element matches any selector in the list.
func matchSelectorList(elem *dom.Element, list SelectorList) bool {
	for _, sel := range list.Selectors {
		if matchComplex(elem, sel) {
			return true
		}
	}
	return false
}

// matchComplex checks if an element matches a complex selector, working
// right-to-left from the rightmost compound so a mismatch on the subject
// itself never has to walk the selector's ancestor/sibling combinators.
func matchComplex(elem *dom.Element, sel ComplexSelector) bool {
	if len(sel.Parts) == 0 {
		return false
	}

	lastIdx := len(sel.Parts) - 1
	if !matchCompound(elem, sel.Parts[lastIdx].Compound) {
		return false
	}

	current := elem
	for i := lastIdx - 1; i >= 0; i-- {
		combinator := sel.Parts[i+1].Combinator
		compound := sel.Parts[i].Compound

		next, ok := stepCombinator(current, combinator, compound)
		if !ok {
			return false
		}
		current = next
	}

	return true
}

// stepCombinator finds the element combinator relates current to that also
// matches compound, returning it so matchComplex can continue walking left.
func stepCombinator(current *dom.Element, combinator Combinator, compound CompoundSelector) (*dom.Element, bool) {
	switch combinator {
	case CombinatorChild:
		parent := getParentElement(current)
		if parent == nil || !matchCompound(parent, compound) {
			return nil, false
		}
		return parent, true

	case CombinatorDescendant:
		for ancestor := getParentElement(current); ancestor != nil; ancestor = getParentElement(ancestor) {
			if matchCompound(ancestor, compound) {
				return ancestor, true
			}
		}
		return nil, false

	case CombinatorAdjacent:
		prev := getPreviousElementSibling(current)
		if prev == nil || !matchCompound(prev, compound) {
			return nil, false
		}
		return prev, true

	case CombinatorGeneral:
		for sib := getPreviousElementSibling(current); sib != nil; sib = getPreviousElementSibling(sib) {
			if matchCompound(sib, compound) {
				return sib, true
			}
		}
		return nil, false

	default:
		// CombinatorNone should not appear in valid selector parts after the first.
		return nil, false
	}
}

// matchCompound checks if an element matches all simple selectors in a compound.
func matchCompound(elem *dom.Element, compound CompoundSelector) bool {
	for _, sel := range compound.Selectors {
		if !matchSimple(elem, sel) {
			return false
		}
	}
	return true
}

// matchSimple checks if an element matches a single simple selector.
func matchSimple(elem *dom.Element, sel SimpleSelector) bool {
	switch sel.Kind {
	case KindTag:
		if elem.Namespace == dom.NamespaceHTML {
			return strings.EqualFold(elem.TagName, sel.Name)
		}
		return elem.TagName == sel.Name
	case KindUniversal:
		return true
	case KindID:
		return elem.ID() == sel.Name
	case KindClass:
		return elem.HasClass(sel.Name)
	case KindAttr:
		return matchAttribute(elem, sel)
	case KindPseudo:
		return matchPseudo(elem, sel)
	default:
		return false
	}
}

// attrMatchers implements every non-existence attribute operator in terms
// of the already-fetched value; AttrExists is special-cased by the caller
// since it alone doesn't require the attribute's value.
var attrMatchers = map[AttrOperator]func(val, want string) bool{
	AttrEquals: func(val, want string) bool { return val == want },
	AttrIncludes: func(val, want string) bool {
		for _, w := range strings.Fields(val) {
			if w == want {
				return true
			}
		}
		return false
	},
	AttrDashPrefix: func(val, want string) bool {
		return val == want || strings.HasPrefix(val, want+"-")
	},
	AttrPrefixMatch: func(val, want string) bool { return want != "" && strings.HasPrefix(val, want) },
	AttrSuffixMatch: func(val, want string) bool { return want != "" && strings.HasSuffix(val, want) },
	AttrSubstring:   func(val, want string) bool { return want != "" && strings.Contains(val, want) },
}

// matchAttribute checks if an element matches an attribute selector.
func matchAttribute(elem *dom.Element, sel SimpleSelector) bool {
	if sel.Operator == AttrExists {
		return elem.HasAttr(sel.Name)
	}
	if !elem.HasAttr(sel.Name) {
		return false
	}
	matches, ok := attrMatchers[sel.Operator]
	if !ok {
		return false
	}
	return matches(elem.Attr(sel.Name), sel.Value)
}

// structuralPseudos are the pseudo-classes that take no argument.
var structuralPseudos = map[string]func(*dom.Element) bool{
	"first-child":   isFirstChild,
	"last-child":    isLastChild,
	"only-child":    isOnlyChild,
	"first-of-type": isFirstOfType,
	"last-of-type":  isLastOfType,
	"only-of-type":  isOnlyOfType,
	"empty":         isEmpty,
	"root":          isRoot,
}

// nthPseudos are the An+B pseudo-classes, each reduced to "which 1-based
// position to test" over its own notion of siblings.
var nthPseudos = map[string]func(*dom.Element, int, int) bool{
	"nth-child":         isNthChild,
	"nth-of-type":       isNthOfType,
	"nth-last-child":    isNthLastChild,
	"nth-last-of-type":  isNthLastOfType,
}

// matchPseudo checks if an element matches a pseudo-class selector.
func matchPseudo(elem *dom.Element, sel SimpleSelector) bool {
	if fn, ok := structuralPseudos[sel.Name]; ok {
		return fn(elem)
	}
	if fn, ok := nthPseudos[sel.Name]; ok {
		a, b, ok := parseNthExpression(sel.Value)
		if !ok {
			return false
		}
		return fn(elem, a, b)
	}
	if sel.Name == "not" {
		return matchNot(elem, sel.Value)
	}
	return false
}

// isNthChild checks if element matches :nth-child(An+B).
func isNthChild(elem *dom.Element, a, b int) bool {
	return matchesNthPosition(siblingPosition(elem, getElementSiblings), a, b)
}

// isNthLastChild checks if element matches :nth-last-child(An+B).
func isNthLastChild(elem *dom.Element, a, b int) bool {
	return matchesNthPosition(siblingPositionFromEnd(elem, getElementSiblings), a, b)
}

// isNthOfType checks if element matches :nth-of-type(An+B).
func isNthOfType(elem *dom.Element, a, b int) bool {
	return matchesNthPosition(siblingPosition(elem, getSiblingsOfSameType), a, b)
}

// isNthLastOfType checks if element matches :nth-last-of-type(An+B).
func isNthLastOfType(elem *dom.Element, a, b int) bool {
	return matchesNthPosition(siblingPositionFromEnd(elem, getSiblingsOfSameType), a, b)
}

func matchesNthPosition(index, a, b int) bool {
	return index != 0 && matchesNth(index, a, b)
}

// getParentElement returns the parent if it's an Element, nil otherwise.
func getParentElement(elem *dom.Element) *dom.Element {
	if e, ok := elem.Parent().(*dom.Element); ok {
		return e
	}
	return nil
}

// getElementSiblings returns all element siblings (including the element itself).
func getElementSiblings(elem *dom.Element) []*dom.Element {
	return filterElementChildren(elem, func(*dom.Element) bool { return true })
}

// getSiblingsOfSameType returns all element siblings with the same tag name.
func getSiblingsOfSameType(elem *dom.Element) []*dom.Element {
	return filterElementChildren(elem, func(e *dom.Element) bool { return strings.EqualFold(e.TagName, elem.TagName) })
}

// filterElementChildren lists elem's parent's element children (elem
// included) that satisfy keep, falling back to []{elem} when elem has no
// parent — matching the teacher's "an unparented node is its own sibling
// set of one" convention for root matching.
func filterElementChildren(elem *dom.Element, keep func(*dom.Element) bool) []*dom.Element {
	parent := elem.Parent()
	if parent == nil {
		return []*dom.Element{elem}
	}
	var out []*dom.Element
	for _, child := range parent.Children() {
		if e, ok := child.(*dom.Element); ok && keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// getElementIndex returns the 1-based index of elem among siblings, or 0 if absent.
func getElementIndex(elem *dom.Element, siblings []*dom.Element) int {
	for i, sib := range siblings {
		if sib == elem {
			return i + 1
		}
	}
	return 0
}

func siblingPosition(elem *dom.Element, siblingsOf func(*dom.Element) []*dom.Element) int {
	return getElementIndex(elem, siblingsOf(elem))
}

func siblingPositionFromEnd(elem *dom.Element, siblingsOf func(*dom.Element) []*dom.Element) int {
	siblings := siblingsOf(elem)
	index := getElementIndex(elem, siblings)
	if index == 0 {
		return 0
	}
	return len(siblings) - index + 1
}

// getPreviousElementSibling returns the previous element sibling or nil.
func getPreviousElementSibling(elem *dom.Element) *dom.Element {
	parent := elem.Parent()
	if parent == nil {
		return nil
	}
	var prev *dom.Element
	for _, child := range parent.Children() {
		if child == elem {
			return prev
		}
		if e, ok := child.(*dom.Element); ok {
			prev = e
		}
	}
	return nil
}

func isFirstChild(elem *dom.Element) bool {
	siblings := getElementSiblings(elem)
	return len(siblings) > 0 && siblings[0] == elem
}

func isLastChild(elem *dom.Element) bool {
	siblings := getElementSiblings(elem)
	return len(siblings) > 0 && siblings[len(siblings)-1] == elem
}

func isOnlyChild(elem *dom.Element) bool {
	siblings := getElementSiblings(elem)
	return len(siblings) == 1 && siblings[0] == elem
}

func isFirstOfType(elem *dom.Element) bool {
	siblings := getSiblingsOfSameType(elem)
	return len(siblings) > 0 && siblings[0] == elem
}

func isLastOfType(elem *dom.Element) bool {
	siblings := getSiblingsOfSameType(elem)
	return len(siblings) > 0 && siblings[len(siblings)-1] == elem
}

func isOnlyOfType(elem *dom.Element) bool {
	siblings := getSiblingsOfSameType(elem)
	return len(siblings) == 1 && siblings[0] == elem
}

// isEmpty checks if element has no element children and no non-whitespace text.
func isEmpty(elem *dom.Element) bool {
	for _, child := range elem.Children() {
		switch c := child.(type) {
		case *dom.Element:
			return false
		case *dom.Text:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return true
}

// isRoot checks if element is the root (parent is Document or DocumentFragment).
func isRoot(elem *dom.Element) bool {
	switch elem.Parent().(type) {
	case *dom.Document, *dom.DocumentFragment:
		return true
	default:
		return false
	}
}

// matchNot checks if element does NOT match the inner selector. A parse
// error on arg means :not() cannot be evaluated, which counts as not
// matching rather than propagating the error.
func matchNot(elem *dom.Element, arg string) bool {
	if arg == "" {
		return true
	}
	innerSel, err := Parse(arg)
	if err != nil {
		return false
	}
	return !innerSel.Match(elem)
}

// parseNthExpression parses an An+B expression, returning (a, b, ok) where
// a match at index holds when (index-b) is a same-signed, zero multiple of a.
func parseNthExpression(expr string) (int, int, bool) {
	expr = strings.TrimSpace(strings.ToLower(expr))

	switch expr {
	case "odd":
		return 2, 1, true
	case "even":
		return 2, 0, true
	}

	if n, err := strconv.Atoi(expr); err == nil {
		return 0, n, true
	}

	nIdx := strings.Index(expr, "n")
	if nIdx == -1 {
		return 0, 0, false
	}

	a, ok := parseNthCoefficient(expr[:nIdx])
	if !ok {
		return 0, 0, false
	}
	b, ok := parseNthConstant(expr[nIdx+1:])
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}

func parseNthCoefficient(s string) (int, bool) {
	switch s {
	case "", "+":
		return 1, true
	case "-":
		return -1, true
	default:
		n, err := strconv.Atoi(s)
		return n, err == nil
	}
}

func parseNthConstant(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	return n, err == nil
}

// matchesNth checks if index (1-based) matches the An+B formula.
func matchesNth(index, a, b int) bool {
	if a == 0 {
		return index == b
	}
	diff := index - b
	if a > 0 {
		return diff >= 0 && diff%a == 0
	}
	return diff <= 0 && diff%a == 0
}
