// Package selector implements CSS selector parsing and matching.
package selector

// SelectorKind distinguishes the shape of a single simple selector:
// a tag, a universal "*", an id, a class, an attribute test, or a
// pseudo-class.
type SelectorKind int

const (
	KindTag       SelectorKind = iota // div, span, etc.
	KindUniversal                     // *
	KindID                            // #foo
	KindClass                         // .bar
	KindAttr                          // [attr], [attr="val"]
	KindPseudo                        // :first-child, :nth-child()
)

var selectorKindNames = map[SelectorKind]string{
	KindTag:       "Tag",
	KindUniversal: "Universal",
	KindID:        "ID",
	KindClass:     "Class",
	KindAttr:      "Attr",
	KindPseudo:    "Pseudo",
}

// String implements fmt.Stringer for diagnostics and AST dumps.
func (k SelectorKind) String() string {
	if name, ok := selectorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// AttrOperator names how an attribute selector's value is compared against
// an element's actual attribute value.
type AttrOperator int

const (
	AttrExists      AttrOperator = iota // [attr]
	AttrEquals                          // [attr="val"]
	AttrIncludes                        // [attr~="val"] word match
	AttrDashPrefix                      // [attr|="val"] hyphen-separated prefix match
	AttrPrefixMatch                     // [attr^="val"] starts with
	AttrSuffixMatch                     // [attr$="val"] ends with
	AttrSubstring                       // [attr*="val"] contains
)

var attrOperatorSymbols = map[AttrOperator]string{
	AttrExists:      "",
	AttrEquals:      "=",
	AttrIncludes:    "~=",
	AttrDashPrefix:  "|=",
	AttrPrefixMatch: "^=",
	AttrSuffixMatch: "$=",
	AttrSubstring:   "*=",
}

// String renders the operator the way it appears in selector source, e.g.
// AttrSuffixMatch.String() == "$=".
func (op AttrOperator) String() string {
	if sym, ok := attrOperatorSymbols[op]; ok {
		return sym
	}
	return "?"
}

// Combinator names the relationship between two compound selectors in a
// chain: descendant, direct child, adjacent sibling, or general sibling.
type Combinator int

const (
	CombinatorNone       Combinator = iota // no combinator (first in chain)
	CombinatorDescendant                   // space
	CombinatorChild                        // >
	CombinatorAdjacent                     // +
	CombinatorGeneral                       // ~
)

var combinatorSymbols = map[Combinator]string{
	CombinatorNone:       "",
	CombinatorDescendant: " ",
	CombinatorChild:      ">",
	CombinatorAdjacent:   "+",
	CombinatorGeneral:    "~",
}

// String renders the combinator the way it appears in selector source.
func (c Combinator) String() string {
	if sym, ok := combinatorSymbols[c]; ok {
		return sym
	}
	return "?"
}

// SimpleSelector is a single atomic test: a tag name, an id, a class, an
// attribute comparison, or a pseudo-class with its argument.
type SimpleSelector struct {
	Kind     SelectorKind
	Name     string
	Operator AttrOperator
	Value    string
}

// CompoundSelector is a run of simple selectors with no combinator between
// them (e.g. "div.foo#bar"); an element matches only if every member does.
type CompoundSelector struct {
	Selectors []SimpleSelector
}

// ComplexPart is one link in a ComplexSelector's chain: the combinator that
// joins it to the previous compound, and the compound selector itself.
type ComplexPart struct {
	Combinator Combinator
	Compound   CompoundSelector
}

// ComplexSelector chains compound selectors with combinators. The first
// part's Combinator is always CombinatorNone.
type ComplexSelector struct {
	Parts []ComplexPart
}

// SelectorList is a comma-separated group of selectors; an element matches
// the list if it matches any member.
type SelectorList struct {
	Selectors []ComplexSelector
}

// selectorAST is implemented by every parsed selector AST type, giving the
// parser a single return type for "something I finished parsing" without
// resorting to interface{}.
type selectorAST interface {
	isSelectorAST()
}

var (
	_ selectorAST = ComplexSelector{}
	_ selectorAST = SelectorList{}
)

func (ComplexSelector) isSelectorAST() {}
func (SelectorList) isSelectorAST()    {}
