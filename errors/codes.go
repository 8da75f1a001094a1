package errors

// Code identifies a single kind of WHATWG HTML5 parse error.
//
// See https://html.spec.whatwg.org/multipage/parsing.html#parse-errors for
// the upstream taxonomy this list is drawn from.
type Code = string

// Parse error codes, grouped the way the spec's own parsing appendix groups
// them: tokenizer-stage errors first, then the handful tree construction
// raises on its own.
const (
	AbruptClosingOfEmptyComment                               Code = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier                             Code = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                              Code = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharReference                      Code = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent                                         Code = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange                      Code = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream                              Code = "control-character-in-input-stream"
	ControlCharacterReference                                  Code = "control-character-reference"
	DuplicateAttribute                                         Code = "duplicate-attribute"
	EndTagWithAttributes                                       Code = "end-tag-with-attributes"
	EndTagWithTrailingSolidus                                  Code = "end-tag-with-trailing-solidus"
	EOFBeforeTagName                                           Code = "eof-before-tag-name"
	EOFInCDATA                                                 Code = "eof-in-cdata"
	EOFInComment                                               Code = "eof-in-comment"
	EOFInDoctype                                               Code = "eof-in-doctype"
	EOFInScriptHTMLCommentLikeText                             Code = "eof-in-script-html-comment-like-text"
	EOFInTag                                                   Code = "eof-in-tag"
	IncorrectlyClosedComment                                   Code = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                                   Code = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName                   Code = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                             Code = "invalid-first-character-of-tag-name"
	MissingAttributeValue                                      Code = "missing-attribute-value"
	MissingDoctypeName                                         Code = "missing-doctype-name"
	MissingDoctypePublicIdentifier                             Code = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                             Code = "missing-doctype-system-identifier"
	MissingEndTagName                                          Code = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier                  Code = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier                  Code = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference                    Code = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword                 Code = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword                 Code = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                         Code = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                         Code = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers  Code = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment                                              Code = "nested-comment"
	NoncharacterCharacterReference                             Code = "noncharacter-character-reference"
	NoncharacterInInputStream                                  Code = "noncharacter-in-input-stream"
	NonVoidHTMLElementStartTagWithTrailingSolidus              Code = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference                                     Code = "null-character-reference"
	SurrogateCharacterReference                                Code = "surrogate-character-reference"
	SurrogateInInputStream                                     Code = "surrogate-in-input-stream"
	UnexpectedCharacterAfterDoctypeSystemIdentifier            Code = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName                         Code = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue                Code = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName                    Code = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter                                    Code = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName                     Code = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                                     Code = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference                              Code = "unknown-named-character-reference"

	// NonSpaceCharacterInTableText and FosterParentedCharacter are raised by
	// tree construction rather than tokenization.
	NonSpaceCharacterInTableText Code = "non-space-character-in-table-text"
	FosterParentedCharacter      Code = "foster-parented-character"

	// The remaining codes are the tree constructor's own diagnostics:
	// tokens a given insertion mode has no conforming rule for. The WHATWG
	// appendix leaves these unnamed, so the names here follow the shape of
	// the tokenizer-stage codes above.
	MissingDoctype        Code = "missing-doctype"
	NonConformingDoctype  Code = "non-conforming-doctype"
	UnexpectedDoctype     Code = "unexpected-doctype"
	UnexpectedStartTag    Code = "unexpected-start-tag"
	UnexpectedEndTag      Code = "unexpected-end-tag"
)

// codeDescription is one row of the code -> message table below. Using a
// slice of rows instead of a bare map keeps the table declaration in one
// place and lets catalogCodes derive both the map and (if ever needed) an
// ordered listing from it.
type codeDescription struct {
	code    Code
	message string
}

var catalog = buildCatalog([]codeDescription{
	{AbruptClosingOfEmptyComment, "an empty comment was closed abruptly with '>'"},
	{AbruptDoctypePublicIdentifier, "a '>' appeared inside a DOCTYPE public identifier"},
	{AbruptDoctypeSystemIdentifier, "a '>' appeared inside a DOCTYPE system identifier"},
	{AbsenceOfDigitsInNumericCharReference, "a numeric character reference had no digits after '#'"},
	{CDATAInHTMLContent, "a CDATA section appeared outside foreign (SVG/MathML) content"},
	{CharacterReferenceOutsideUnicodeRange, "a numeric character reference exceeded U+10FFFF"},
	{ControlCharacterInInputStream, "the input stream contained a disallowed control character"},
	{ControlCharacterReference, "a numeric character reference resolved to a control character"},
	{DuplicateAttribute, "an attribute repeated a name already seen on this tag"},
	{EndTagWithAttributes, "an end tag carried attributes, which are ignored on end tags"},
	{EndTagWithTrailingSolidus, "an end tag had a trailing '/' before its closing '>'"},
	{EOFBeforeTagName, "the input ended where a tag name was expected"},
	{EOFInCDATA, "the input ended inside a CDATA section"},
	{EOFInComment, "the input ended inside a comment"},
	{EOFInDoctype, "the input ended inside a DOCTYPE"},
	{EOFInScriptHTMLCommentLikeText, "the input ended inside a script element's comment-like text"},
	{EOFInTag, "the input ended inside a tag"},
	{IncorrectlyClosedComment, "a comment was closed with something other than '-->'"},
	{IncorrectlyOpenedComment, "a comment did not open with '<!--'"},
	{InvalidCharacterSequenceAfterDoctypeName, "an unexpected sequence followed a DOCTYPE name"},
	{InvalidFirstCharacterOfTagName, "a tag name started with a character that cannot begin one"},
	{MissingAttributeValue, "an attribute name was not followed by a value"},
	{MissingDoctypeName, "a DOCTYPE declaration had no name"},
	{MissingDoctypePublicIdentifier, "a DOCTYPE declaration was missing its public identifier"},
	{MissingDoctypeSystemIdentifier, "a DOCTYPE declaration was missing its system identifier"},
	{MissingEndTagName, "an end tag had no name between '</' and '>'"},
	{MissingQuoteBeforeDoctypePublicIdentifier, "a DOCTYPE public identifier lacked its opening quote"},
	{MissingQuoteBeforeDoctypeSystemIdentifier, "a DOCTYPE system identifier lacked its opening quote"},
	{MissingSemicolonAfterCharacterReference, "a character reference was not terminated with ';'"},
	{MissingWhitespaceAfterDoctypePublicKeyword, "no whitespace followed the DOCTYPE PUBLIC keyword"},
	{MissingWhitespaceAfterDoctypeSystemKeyword, "no whitespace followed the DOCTYPE SYSTEM keyword"},
	{MissingWhitespaceBeforeDoctypeName, "no whitespace preceded the DOCTYPE name"},
	{MissingWhitespaceBetweenAttributes, "two attributes ran together without separating whitespace"},
	{MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers, "no whitespace separated the DOCTYPE public and system identifiers"},
	{NestedComment, "a comment contained another '<!--' before it was closed"},
	{NoncharacterCharacterReference, "a numeric character reference resolved to a noncharacter"},
	{NoncharacterInInputStream, "the input stream contained a noncharacter code point"},
	{NonVoidHTMLElementStartTagWithTrailingSolidus, "a non-void element's start tag had a stray trailing '/'"},
	{NullCharacterReference, "a numeric character reference resolved to U+0000"},
	{SurrogateCharacterReference, "a numeric character reference resolved to a surrogate"},
	{SurrogateInInputStream, "the input stream contained a surrogate code point"},
	{UnexpectedCharacterAfterDoctypeSystemIdentifier, "extra characters followed the DOCTYPE system identifier"},
	{UnexpectedCharacterInAttributeName, "a quote or other disallowed character appeared in an attribute name"},
	{UnexpectedCharacterInUnquotedAttributeValue, "a disallowed character appeared in an unquoted attribute value"},
	{UnexpectedEqualsSignBeforeAttributeName, "an attribute name started with '='"},
	{UnexpectedNullCharacter, "a U+0000 NULL code point appeared where text or a tag was expected"},
	{UnexpectedQuestionMarkInsteadOfTagName, "a tag opened with '<?' instead of a valid tag name"},
	{UnexpectedSolidusInTag, "a stray '/' appeared inside a tag, not immediately before '>'"},
	{UnknownNamedCharacterReference, "a named character reference did not match any known entity name"},
	{NonSpaceCharacterInTableText, "non-whitespace text appeared directly inside a table, triggering foster parenting"},
	{FosterParentedCharacter, "a character was foster-parented out of a table into its parent"},
	{MissingDoctype, "content started before any DOCTYPE declaration, forcing quirks mode"},
	{NonConformingDoctype, "the DOCTYPE declaration does not match any conforming form"},
	{UnexpectedDoctype, "a DOCTYPE declaration appeared after the document already started"},
	{UnexpectedStartTag, "a start tag appeared where the current insertion mode does not allow it"},
	{UnexpectedEndTag, "an end tag appeared with no matching open element it may close"},
})

func buildCatalog(rows []codeDescription) map[Code]string {
	m := make(map[Code]string, len(rows))
	for _, row := range rows {
		m[row.code] = row.message
	}
	return m
}

// Message returns the human-readable description registered for code, or a
// generic fallback for codes outside the known catalog.
func Message(code Code) string {
	if msg, ok := catalog[code]; ok {
		return msg
	}
	return "Unknown error"
}
