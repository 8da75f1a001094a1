package tokenizer

// State names the tokenizer's current position in the WHATWG state machine.
// Every transition between states is driven by the next input character; see
// stateHandlers in tokenizer.go for the table that dispatches on it.
type State int

// InvalidState is a sentinel for a state name that maps to no State; the
// tokenizer never enters it.
const InvalidState State = -1

// stateInfo is one row of stateTable, which backs String(). Its rows are
// listed in the same order as the State constants below.
type stateInfo struct {
	name string
}

var stateTable = []stateInfo{
	{"Data"},
	{"RCDATA"},
	{"RAWTEXT"},
	{"ScriptData"},
	{"PLAINTEXT"},
	{"TagOpen"},
	{"EndTagOpen"},
	{"TagName"},
	{"RCDATALessThanSign"},
	{"RCDATAEndTagOpen"},
	{"RCDATAEndTagName"},
	{"RAWTEXTLessThanSign"},
	{"RAWTEXTEndTagOpen"},
	{"RAWTEXTEndTagName"},
	{"ScriptDataLessThanSign"},
	{"ScriptDataEndTagOpen"},
	{"ScriptDataEndTagName"},
	{"ScriptDataEscapeStart"},
	{"ScriptDataEscapeStartDash"},
	{"ScriptDataEscaped"},
	{"ScriptDataEscapedDash"},
	{"ScriptDataEscapedDashDash"},
	{"ScriptDataEscapedLessThanSign"},
	{"ScriptDataEscapedEndTagOpen"},
	{"ScriptDataEscapedEndTagName"},
	{"ScriptDataDoubleEscapeStart"},
	{"ScriptDataDoubleEscaped"},
	{"ScriptDataDoubleEscapedDash"},
	{"ScriptDataDoubleEscapedDashDash"},
	{"ScriptDataDoubleEscapedLessThanSign"},
	{"ScriptDataDoubleEscapeEnd"},
	{"BeforeAttributeName"},
	{"AttributeName"},
	{"AfterAttributeName"},
	{"BeforeAttributeValue"},
	{"AttributeValueDoubleQuoted"},
	{"AttributeValueSingleQuoted"},
	{"AttributeValueUnquoted"},
	{"AfterAttributeValueQuoted"},
	{"SelfClosingStartTag"},
	{"BogusComment"},
	{"MarkupDeclarationOpen"},
	{"CommentStart"},
	{"CommentStartDash"},
	{"Comment"},
	{"CommentLessThanSign"},
	{"CommentLessThanSignBang"},
	{"CommentLessThanSignBangDash"},
	{"CommentLessThanSignBangDashDash"},
	{"CommentEndDash"},
	{"CommentEnd"},
	{"CommentEndBang"},
	{"DOCTYPE"},
	{"BeforeDOCTYPEName"},
	{"DOCTYPEName"},
	{"AfterDOCTYPEName"},
	{"AfterDOCTYPEPublicKeyword"},
	{"BeforeDOCTYPEPublicIdentifier"},
	{"DOCTYPEPublicIdentifierDoubleQuoted"},
	{"DOCTYPEPublicIdentifierSingleQuoted"},
	{"AfterDOCTYPEPublicIdentifier"},
	{"BetweenDOCTYPEPublicAndSystemIdentifiers"},
	{"AfterDOCTYPESystemKeyword"},
	{"BeforeDOCTYPESystemIdentifier"},
	{"DOCTYPESystemIdentifierDoubleQuoted"},
	{"DOCTYPESystemIdentifierSingleQuoted"},
	{"AfterDOCTYPESystemIdentifier"},
	{"BogusDOCTYPE"},
	{"CDATASection"},
	{"CDATASectionBracket"},
	{"CDATASectionEnd"},
	{"CharacterReference"},
	{"NamedCharacterReference"},
	{"AmbiguousAmpersand"},
	{"NumericCharacterReference"},
	{"HexadecimalCharacterReferenceStart"},
	{"DecimalCharacterReferenceStart"},
	{"HexadecimalCharacterReference"},
	{"DecimalCharacterReference"},
	{"NumericCharacterReferenceEnd"},
}

// The State constants enumerate the tokenizer states in the same order as
// stateTable, so State(i) always indexes its own descriptor.
const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PLAINTEXTState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDATALessThanSignState
	RCDATAEndTagOpenState
	RCDATAEndTagNameState
	RAWTEXTLessThanSignState
	RAWTEXTEndTagOpenState
	RAWTEXTEndTagNameState
	ScriptDataLessThanSignState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	ScriptDataEscapeStartState
	ScriptDataEscapeStartDashState
	ScriptDataEscapedState
	ScriptDataEscapedDashState
	ScriptDataEscapedDashDashState
	ScriptDataEscapedLessThanSignState
	ScriptDataEscapedEndTagOpenState
	ScriptDataEscapedEndTagNameState
	ScriptDataDoubleEscapeStartState
	ScriptDataDoubleEscapedState
	ScriptDataDoubleEscapedDashState
	ScriptDataDoubleEscapedDashDashState
	ScriptDataDoubleEscapedLessThanSignState
	ScriptDataDoubleEscapeEndState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanSignState
	CommentLessThanSignBangState
	CommentLessThanSignBangDashState
	CommentLessThanSignBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	DOCTYPEState
	BeforeDOCTYPENameState
	DOCTYPENameState
	AfterDOCTYPENameState
	AfterDOCTYPEPublicKeywordState
	BeforeDOCTYPEPublicIdentifierState
	DOCTYPEPublicIdentifierDoubleQuotedState
	DOCTYPEPublicIdentifierSingleQuotedState
	AfterDOCTYPEPublicIdentifierState
	BetweenDOCTYPEPublicAndSystemIdentifiersState
	AfterDOCTYPESystemKeywordState
	BeforeDOCTYPESystemIdentifierState
	DOCTYPESystemIdentifierDoubleQuotedState
	DOCTYPESystemIdentifierSingleQuotedState
	AfterDOCTYPESystemIdentifierState
	BogusDOCTYPEState
	CDATASectionState
	CDATASectionBracketState
	CDATASectionEndState
	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

// PlaintextState and RawtextState are lowercase-friendly aliases kept for
// callers porting fixtures written against other html5lib-derived test
// suites, which spell these two states differently.
const (
	PlaintextState = PLAINTEXTState
	RawtextState   = RAWTEXTState
)

// String renders s using the name WHATWG assigns the state in the tokenizer
// appendix, e.g. State(0).String() == "Data".
func (s State) String() string {
	if i := int(s); i >= 0 && i < len(stateTable) {
		return stateTable[i].name
	}
	return "Unknown"
}

// inScriptDataEscape reports whether s belongs to one of the script-data
// escaped family of states, where "<script>" comment-like nesting rules
// apply instead of the plain script-data rules.
func (s State) inScriptDataEscape() bool {
	switch s {
	case ScriptDataEscapedState, ScriptDataEscapedDashState, ScriptDataEscapedDashDashState,
		ScriptDataDoubleEscapedState, ScriptDataDoubleEscapedDashState, ScriptDataDoubleEscapedDashDashState:
		return true
	default:
		return false
	}
}
