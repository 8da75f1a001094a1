// Package serialize provides HTML serialization for DOM nodes and token streams.
package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for token serialization.
var (
	ErrUnknownTokenType      = errors.New("unknown token type")
	ErrInvalidTokenFormat    = errors.New("invalid token format")
	ErrStartTagMissingFields = errors.New("startTag needs at least 3 elements")
	ErrEndTagMissingFields   = errors.New("endTag needs at least 3 elements")
	ErrEmptyTagMissingFields = errors.New("emptyTag needs at least 2 elements")
	ErrCharactersMissing     = errors.New("characters token needs at least 2 elements")
	ErrCommentMissing        = errors.New("comment token needs at least 2 elements")
	ErrDoctypeMissing        = errors.New("doctype token needs at least 2 elements")
)

// SerializeTokenOptions controls token serialization behavior.
type SerializeTokenOptions struct {
	// QuoteChar sets the preferred quote character for attributes (' or ")
	QuoteChar rune
	// UseTrailingSolidus adds trailing slash to void elements (e.g., <img />)
	UseTrailingSolidus bool
	// MinimizeBooleanAttributes omits value for boolean attributes (default true)
	MinimizeBooleanAttributes bool
	// EscapeLtInAttrs escapes < in attribute values
	EscapeLtInAttrs bool
	// EscapeRcdata escapes content in rcdata elements (script, style)
	EscapeRcdata bool
	// StripWhitespace collapses whitespace in text nodes
	StripWhitespace bool
	// OmitOptionalTags omits optional start/end tags per HTML5 spec
	OmitOptionalTags bool
	// InjectMetaCharset injects charset meta tag
	InjectMetaCharset bool
	// Encoding specifies the encoding for inject_meta_charset
	Encoding string
}

// DefaultSerializeTokenOptions returns default serialization options.
func DefaultSerializeTokenOptions() SerializeTokenOptions {
	return SerializeTokenOptions{
		QuoteChar:                 '"',
		MinimizeBooleanAttributes: true,
		OmitOptionalTags:          true,
	}
}

// tokenStreamState tracks the running context SerializeTokensWithOptions
// needs while folding a flat token list into text: how deep inside raw-text
// or preformatted content the cursor is, and whether a charset meta still
// needs injecting into the current <head>.
type tokenStreamState struct {
	rawTextDepth       int
	preformattedDepth  int
	inHead             bool
	headHasCharsetMeta bool
	injectedMeta       bool
}

func (s *tokenStreamState) maybeInjectBeforeHeadEnd(sb *strings.Builder, opts SerializeTokenOptions, typ, tag string) {
	if !s.inHead || !opts.InjectMetaCharset || opts.Encoding == "" || s.headHasCharsetMeta || s.injectedMeta {
		return
	}
	if typ == "EndTag" && tag == "head" {
		serializeInjectedMeta(sb, opts)
		s.injectedMeta = true
	}
}

func (s *tokenStreamState) enterTag(tagName string) {
	if tagName == "pre" || tagName == "textarea" {
		s.preformattedDepth++
	}
	if isRawTextElement(tagName) {
		s.rawTextDepth++
	}
}

func (s *tokenStreamState) exitTag(tagName string) {
	if (tagName == "pre" || tagName == "textarea") && s.preformattedDepth > 0 {
		s.preformattedDepth--
	}
	if isRawTextElement(tagName) && s.rawTextDepth > 0 {
		s.rawTextDepth--
	}
}

// SerializeTokens serializes a stream of html5lib test tokens to HTML.
// Each token is a json.RawMessage array in the html5lib format.
func SerializeTokens(tokens []json.RawMessage) (string, error) {
	return SerializeTokensWithOptions(tokens, DefaultSerializeTokenOptions())
}

// SerializeTokensWithOptions serializes tokens with custom options.
func SerializeTokensWithOptions(tokens []json.RawMessage, opts SerializeTokenOptions) (string, error) {
	var sb strings.Builder
	var state tokenStreamState

	for i, raw := range tokens {
		typ, tag := getTokenInfo(raw)
		state.maybeInjectBeforeHeadEnd(&sb, opts, typ, tag)

		arr, tokenType, err := decodeTokenArray(raw)
		if err != nil {
			return "", err
		}
		if arr == nil {
			continue
		}

		switch tokenType {
		case "StartTag":
			err = serializeStartTagToken(&sb, arr, opts, tokens, i)
			if err == nil {
				tagName := tokenTagName(tokenType, arr)
				if tagName == "head" {
					state.inHead = true
					state.injectedMeta = false
					if opts.InjectMetaCharset && opts.Encoding != "" {
						state.headHasCharsetMeta = hasCharsetMetaAhead(tokens, i)
						if !state.headHasCharsetMeta {
							serializeInjectedMeta(&sb, opts)
							state.injectedMeta = true
						}
					}
				}
				state.enterTag(tagName)
			}
		case "EndTag":
			err = serializeEndTagToken(&sb, arr, opts, tokens, i)
			if err == nil {
				tagName := tokenTagName(tokenType, arr)
				if tagName == "head" {
					state.inHead = false
					state.headHasCharsetMeta = false
					state.injectedMeta = false
				}
				state.exitTag(tagName)
			}
		case "EmptyTag":
			err = serializeEmptyTagToken(&sb, arr, opts)
		case "Characters":
			err = serializeCharactersToken(&sb, arr, state.rawTextDepth > 0, state.preformattedDepth > 0, opts)
		case "Comment":
			err = serializeCommentToken(&sb, arr)
		case "Doctype":
			err = serializeDoctypeToken(&sb, arr)
		default:
			return "", fmt.Errorf("%w: %s", ErrUnknownTokenType, tokenType)
		}
		if err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// decodeTokenArray unwraps one html5lib token ([]json.RawMessage with the
// type tag in position 0). A zero-length array is reported as arr == nil,
// not an error: callers skip it.
func decodeTokenArray(raw json.RawMessage) (arr []json.RawMessage, tokenType string, err error) {
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidTokenFormat, err)
	}
	if len(arr) == 0 {
		return nil, "", nil
	}
	if err := json.Unmarshal(arr[0], &tokenType); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidTokenFormat, err)
	}
	return arr, tokenType, nil
}

// serializeStartTagToken handles ["StartTag", namespace, tagName, attrs]
func serializeStartTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions, tokens []json.RawMessage, idx int) error {
	if len(arr) < 3 {
		return ErrStartTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[2], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	if opts.OmitOptionalTags && shouldOmitStartTag(tagName, arr, tokens, idx) {
		return nil
	}

	sb.WriteByte('<')
	sb.WriteString(tagName)

	if len(arr) > 3 {
		if err := serializeTokenAttrs(sb, arr[3], opts, tagName); err != nil {
			return err
		}
	}

	if opts.UseTrailingSolidus && isVoidElement(tagName) {
		sb.WriteString(" /")
	}

	sb.WriteByte('>')
	return nil
}

// serializeEndTagToken handles ["EndTag", namespace, tagName]
func serializeEndTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions, tokens []json.RawMessage, idx int) error {
	if len(arr) < 3 {
		return ErrEndTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[2], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	if opts.OmitOptionalTags && shouldOmitEndTag(tagName, tokens, idx) {
		return nil
	}

	sb.WriteString("</")
	sb.WriteString(tagName)
	sb.WriteByte('>')
	return nil
}

// serializeEmptyTagToken handles ["EmptyTag", tagName, attrs]
func serializeEmptyTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions) error {
	if len(arr) < 2 {
		return ErrEmptyTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[1], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	sb.WriteByte('<')
	sb.WriteString(tagName)

	if len(arr) > 2 {
		if err := serializeTokenAttrs(sb, arr[2], opts, tagName); err != nil {
			return err
		}
	}

	if opts.UseTrailingSolidus {
		sb.WriteString(" /")
	}

	sb.WriteByte('>')
	return nil
}

// serializeTokenAttrs serializes attributes from either array or object format.
func serializeTokenAttrs(sb *strings.Builder, raw json.RawMessage, opts SerializeTokenOptions, tagName string) error {
	attrs := parseTokenAttrs(raw)

	if opts.InjectMetaCharset && opts.Encoding != "" && tagName == "meta" {
		attrs = normalizeMetaCharsetAttrs(attrs, opts.Encoding)
	}
	if len(attrs) == 0 {
		return nil
	}

	sortTokenAttrs(attrs)
	for _, attr := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		serializeTokenAttrValue(sb, attr.Name, attr.Value, opts)
	}
	return nil
}

// serializeTokenAttrValue serializes an attribute value with proper quoting.
// Per html5lib serialization rules: unquoted when the value has no special
// characters, single-quoted when it contains a " but no ', double-quoted
// (escaping ") otherwise.
func serializeTokenAttrValue(sb *strings.Builder, name, value string, opts SerializeTokenOptions) {
	if opts.MinimizeBooleanAttributes && (value == "" || value == name) {
		return
	}
	if value == "" {
		sb.WriteString("=\"\"")
		return
	}

	quoteChar := opts.QuoteChar
	if quoteChar == 0 {
		quoteChar = '"'
	}
	if quoteChar == '\'' {
		writeQuotedAttrValue(sb, '\'', value, singleQuoteEscapes, opts)
		return
	}

	switch hasDouble, hasSingle := strings.ContainsRune(value, '"'), strings.ContainsRune(value, '\''); {
	case !needsTokenAttrQuoting(value):
		sb.WriteByte('=')
		sb.WriteString(value)
	case hasDouble && !hasSingle:
		writeQuotedAttrValue(sb, '\'', value, ampOnlyEscapes, opts)
	default:
		writeQuotedAttrValue(sb, '"', value, doubleQuoteEscapes, opts)
	}
}

// attrValueEscape maps a rune needing escape to its entity, with ltEscaped
// applied only when the caller's options ask for it (the '<' case is
// conditional on EscapeLtInAttrs, unlike the other entries).
type attrValueEscape struct {
	entity    string
	ltEscaped bool
}

var (
	singleQuoteEscapes = map[rune]attrValueEscape{'\'': {"&#39;", false}, '&': {"&amp;", false}}
	ampOnlyEscapes     = map[rune]attrValueEscape{'&': {"&amp;", false}}
	doubleQuoteEscapes = map[rune]attrValueEscape{
		'"': {"&quot;", false},
		'&': {"&amp;", false},
		'<': {"&lt;", true},
	}
)

func writeQuotedAttrValue(sb *strings.Builder, quote rune, value string, escapes map[rune]attrValueEscape, opts SerializeTokenOptions) {
	sb.WriteByte('=')
	sb.WriteRune(quote)
	for _, r := range value {
		esc, ok := escapes[r]
		if ok && (!esc.ltEscaped || opts.EscapeLtInAttrs) {
			sb.WriteString(esc.entity)
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(quote)
}

// needsTokenAttrQuoting returns true if the attribute value needs quoting.
func needsTokenAttrQuoting(value string) bool {
	return strings.ContainsAny(value, " \t\n\f\r\"'=>`")
}

// serializeCharactersToken handles ["Characters", data]
func serializeCharactersToken(sb *strings.Builder, arr []json.RawMessage, inRawText, inPreformatted bool, opts SerializeTokenOptions) error {
	if len(arr) < 2 {
		return ErrCharactersMissing
	}

	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil {
		return fmt.Errorf("invalid character data: %w", err)
	}

	if opts.StripWhitespace && !inRawText && !inPreformatted {
		data = collapseTokenWhitespace(data)
	}

	if inRawText && !opts.EscapeRcdata {
		sb.WriteString(data)
		return nil
	}
	for _, r := range data {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return nil
}

// serializeCommentToken handles ["Comment", data]
func serializeCommentToken(sb *strings.Builder, arr []json.RawMessage) error {
	if len(arr) < 2 {
		return ErrCommentMissing
	}
	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil {
		return fmt.Errorf("invalid comment data: %w", err)
	}
	sb.WriteString("<!--")
	sb.WriteString(data)
	sb.WriteString("-->")
	return nil
}

// serializeDoctypeToken handles ["Doctype", name, publicId?, systemId?]
func serializeDoctypeToken(sb *strings.Builder, arr []json.RawMessage) error {
	if len(arr) < 2 {
		return ErrDoctypeMissing
	}

	var name string
	if err := json.Unmarshal(arr[1], &name); err != nil {
		return fmt.Errorf("invalid doctype name: %w", err)
	}

	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(name)

	publicID := optionalDoctypeField(arr, 2)
	systemID := optionalDoctypeField(arr, 3)

	switch {
	case publicID != "":
		sb.WriteString(" PUBLIC \"")
		sb.WriteString(publicID)
		sb.WriteByte('"')
		if systemID != "" {
			sb.WriteString(" \"")
			sb.WriteString(systemID)
			sb.WriteByte('"')
		}
	case systemID != "":
		sb.WriteString(" SYSTEM \"")
		sb.WriteString(systemID)
		sb.WriteByte('"')
	}

	sb.WriteByte('>')
	return nil
}

// optionalDoctypeField reads arr[i] as a string, treating a missing index
// or a JSON null as "".
func optionalDoctypeField(arr []json.RawMessage, i int) string {
	if len(arr) <= i {
		return ""
	}
	var value string
	_ = json.Unmarshal(arr[i], &value)
	return value
}

var rawTextTags = map[string]bool{
	"script": true, "style": true, "xmp": true,
	"iframe": true, "noembed": true, "noframes": true, "plaintext": true,
}

// isRawTextElement returns true for elements whose content is not escaped.
func isRawTextElement(tag string) bool { return rawTextTags[tag] }

// omissionRule decides, given the token immediately following a start or
// end tag, whether that tag can be dropped per
// https://html.spec.whatwg.org/multipage/syntax.html#optional-tags. tokens
// and idx let the handful of rules that also care what preceded the tag
// (tbody after a table start, for instance) look back.
type omissionRule func(tokens []json.RawMessage, idx int, nextType, nextTag string) bool

func notFollowedBySpaceOrComment(tokens []json.RawMessage, idx int, nextType, _ string) bool {
	return !(nextType == "Comment" || (nextType == "Characters" && startsWithSpace(tokens, idx)))
}

func atEndOrFollowedBy(nextType string, tags ...string) omissionRule {
	return func(_ []json.RawMessage, _ int, actualType, actualTag string) bool {
		if actualType == "" || actualType == "EndTag" {
			return true
		}
		if actualType != nextType {
			return false
		}
		for _, t := range tags {
			if actualTag == t {
				return true
			}
		}
		return false
	}
}

var pBreakers = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "details": true,
	"dialog": true, "dir": true, "div": true, "dl": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hgroup": true, "hr": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "pre": true, "search": true, "section": true,
	"table": true, "ul": true, "datagrid": true,
}

// startTagOmissionRules covers elements whose *start* tag can be omitted.
var startTagOmissionRules = map[string]omissionRule{
	"html": func(tokens []json.RawMessage, idx int, nextType, _ string) bool {
		if nextType == "Comment" {
			return false
		}
		return !(nextType == "Characters" && startsWithSpace(tokens, idx))
	},
	"head": func(_ []json.RawMessage, _ int, nextType, _ string) bool {
		return nextType == "StartTag" || nextType == "EmptyTag" || nextType == "EndTag"
	},
	"body": func(tokens []json.RawMessage, idx int, nextType, _ string) bool {
		if nextType == "Comment" {
			return false
		}
		return !(nextType == "Characters" && startsWithSpace(tokens, idx))
	},
	"colgroup": func(_ []json.RawMessage, _ int, nextType, nextTag string) bool {
		return (nextType == "StartTag" || nextType == "EmptyTag") && nextTag == "col"
	},
	"tbody": func(tokens []json.RawMessage, idx int, nextType, nextTag string) bool {
		if nextType != "StartTag" || nextTag != "tr" {
			return false
		}
		prevType, prevTag := getPrevTokenInfo(tokens, idx)
		return prevType == "StartTag" && prevTag == "table"
	},
}

// endTagOmissionRules covers elements whose *end* tag can be omitted.
var endTagOmissionRules = map[string]omissionRule{
	"html":     notFollowedBySpaceOrComment,
	"head":     notFollowedBySpaceOrComment,
	"body":     notFollowedBySpaceOrComment,
	"li":       func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "li")(tokens, idx, t, tag) },
	"dt":       func(_ []json.RawMessage, _ int, t, tag string) bool { return t == "StartTag" && (tag == "dt" || tag == "dd") },
	"dd":       func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "dd", "dt")(tokens, idx, t, tag) },
	"optgroup": func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "optgroup")(tokens, idx, t, tag) },
	"option":   func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "option", "optgroup")(tokens, idx, t, tag) },
	"thead":    func(_ []json.RawMessage, _ int, t, tag string) bool { return t == "StartTag" && (tag == "tbody" || tag == "tfoot") },
	"tbody":    func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "tbody", "tfoot")(tokens, idx, t, tag) },
	"tfoot":    func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "tbody")(tokens, idx, t, tag) },
	"tr":       func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "tr")(tokens, idx, t, tag) },
	"td":       func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "td", "th")(tokens, idx, t, tag) },
	"th":       func(tokens []json.RawMessage, idx int, t, tag string) bool { return atEndOrFollowedBy("StartTag", "td", "th")(tokens, idx, t, tag) },
	"colgroup": func(tokens []json.RawMessage, idx int, t, tag string) bool {
		if t == "Comment" || (t == "Characters" && startsWithSpace(tokens, idx)) {
			return false
		}
		return !(t == "StartTag" && tag == "colgroup")
	},
	"p": func(_ []json.RawMessage, _ int, t, tag string) bool {
		if t == "" || t == "EndTag" {
			return true
		}
		return (t == "StartTag" || t == "EmptyTag") && pBreakers[tag]
	},
}

// shouldOmitStartTag checks if a start tag can be omitted per HTML5 spec.
func shouldOmitStartTag(tagName string, arr []json.RawMessage, tokens []json.RawMessage, idx int) bool {
	if hasAttributes(arr) {
		return false
	}
	rule, ok := startTagOmissionRules[tagName]
	if !ok {
		return false
	}
	nextType, nextTag := getNextTokenInfo(tokens, idx)
	return rule(tokens, idx, nextType, nextTag)
}

// shouldOmitEndTag checks if an end tag can be omitted per HTML5 spec.
func shouldOmitEndTag(tagName string, tokens []json.RawMessage, idx int) bool {
	rule, ok := endTagOmissionRules[tagName]
	if !ok {
		return false
	}
	nextType, nextTag := getNextTokenInfo(tokens, idx)
	return rule(tokens, idx, nextType, nextTag)
}

// startsWithSpace checks if the next Characters token starts with whitespace.
func startsWithSpace(tokens []json.RawMessage, idx int) bool {
	if idx+1 >= len(tokens) {
		return false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(tokens[idx+1], &arr); err != nil || len(arr) < 2 {
		return false
	}
	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil || len(data) == 0 {
		return false
	}
	return isWhitespaceRune(rune(data[0]))
}

// hasAttributes returns true if the token has any attributes.
func hasAttributes(arr []json.RawMessage) bool {
	if len(arr) <= 3 {
		return false
	}
	var attrArray []interface{}
	if err := json.Unmarshal(arr[3], &attrArray); err == nil && len(attrArray) > 0 {
		return true
	}
	var attrObj map[string]interface{}
	if err := json.Unmarshal(arr[3], &attrObj); err == nil && len(attrObj) > 0 {
		return true
	}
	return false
}

type tokenAttr struct {
	Name  string
	Value string
}

// parseTokenAttrs reads a token's attribute payload in either the array
// form ([{namespace, name, value}, ...]) or the object form
// ({name: value, ...}) html5lib test data uses interchangeably, returning
// nil (never an error) when raw is empty or neither shape matches.
func parseTokenAttrs(raw json.RawMessage) []tokenAttr {
	var attrArray []struct {
		Namespace *string `json:"namespace"`
		Name      string  `json:"name"`
		Value     string  `json:"value"`
	}
	if err := json.Unmarshal(raw, &attrArray); err == nil {
		if len(attrArray) == 0 {
			return nil
		}
		attrs := make([]tokenAttr, 0, len(attrArray))
		for _, attr := range attrArray {
			attrs = append(attrs, tokenAttr{Name: attr.Name, Value: attr.Value})
		}
		return attrs
	}

	var attrObj map[string]string
	if err := json.Unmarshal(raw, &attrObj); err == nil {
		if len(attrObj) == 0 {
			return nil
		}
		attrs := make([]tokenAttr, 0, len(attrObj))
		for name, value := range attrObj {
			attrs = append(attrs, tokenAttr{Name: name, Value: value})
		}
		return attrs
	}

	return nil
}

func sortTokenAttrs(attrs []tokenAttr) {
	if len(attrs) < 2 {
		return
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
}

func normalizeMetaCharsetAttrs(attrs []tokenAttr, encoding string) []tokenAttr {
	if len(attrs) == 0 {
		return attrs
	}

	httpIdx, hasHTTP := -1, false
	contentIdx, hasContent := -1, false
	for i, attr := range attrs {
		if strings.EqualFold(attr.Name, "charset") {
			attrs[i].Value = encoding
			return attrs
		}
		if strings.EqualFold(attr.Name, "http-equiv") {
			hasHTTP, httpIdx = true, i
		}
		if strings.EqualFold(attr.Name, "content") {
			hasContent, contentIdx = true, i
		}
	}

	if hasHTTP && strings.EqualFold(attrs[httpIdx].Value, "content-type") {
		content := "text/html; charset=" + encoding
		if hasContent {
			attrs[contentIdx].Value = content
		} else {
			attrs = append(attrs, tokenAttr{Name: "content", Value: content})
		}
	}
	return attrs
}

// hasCharsetMetaAhead scans the remainder of the current <head> for a meta
// tag that already declares the document's charset, either via a charset
// attribute or an http-equiv="Content-Type" pair.
func hasCharsetMetaAhead(tokens []json.RawMessage, idx int) bool {
	for i := idx + 1; i < len(tokens); i++ {
		typ, tag := getTokenInfo(tokens[i])
		if typ == "" {
			return false
		}
		if typ == "EndTag" && tag == "head" {
			return false
		}
		if typ != "StartTag" && typ != "EmptyTag" {
			continue
		}
		if tag != "meta" {
			continue
		}
		if metaDeclaresCharset(tokens[i], typ) {
			return true
		}
	}
	return false
}

func metaDeclaresCharset(raw json.RawMessage, typ string) bool {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return false
	}

	var rawAttrs json.RawMessage
	switch typ {
	case "StartTag":
		if len(arr) > 3 {
			rawAttrs = arr[3]
		}
	case "EmptyTag":
		if len(arr) > 2 {
			rawAttrs = arr[2]
		}
	}
	if len(rawAttrs) == 0 {
		return false
	}

	attrs := parseTokenAttrs(rawAttrs)
	for _, attr := range attrs {
		if strings.EqualFold(attr.Name, "charset") {
			return true
		}
	}
	for _, attr := range attrs {
		if strings.EqualFold(attr.Name, "http-equiv") && strings.EqualFold(attr.Value, "content-type") {
			return true
		}
	}
	return false
}

// getTokenInfo returns the token type and (for tag tokens) the tag name.
func getTokenInfo(raw json.RawMessage) (string, string) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
		return "", ""
	}
	var tokenType string
	if err := json.Unmarshal(arr[0], &tokenType); err != nil {
		return "", ""
	}
	return tokenType, tokenTagName(tokenType, arr)
}

func tokenTagName(tokenType string, arr []json.RawMessage) string {
	var tagName string
	switch tokenType {
	case "StartTag", "EndTag":
		if len(arr) >= 3 {
			_ = json.Unmarshal(arr[2], &tagName)
		}
	case "EmptyTag":
		if len(arr) >= 2 {
			_ = json.Unmarshal(arr[1], &tagName)
		}
	}
	return tagName
}

func serializeInjectedMeta(sb *strings.Builder, opts SerializeTokenOptions) {
	if opts.Encoding == "" {
		return
	}
	sb.WriteString("<meta charset")
	serializeTokenAttrValue(sb, "charset", opts.Encoding, opts)
	sb.WriteByte('>')
}

func collapseTokenWhitespace(s string) string {
	var sb strings.Builder
	inWhitespace := false
	for _, r := range s {
		if isWhitespaceRune(r) {
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

func isWhitespaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

// getNextTokenInfo returns the type and tag name of the token at idx+1.
func getNextTokenInfo(tokens []json.RawMessage, idx int) (string, string) {
	return neighborTokenInfo(tokens, idx+1)
}

// getPrevTokenInfo returns the type and tag name of the token at idx-1.
func getPrevTokenInfo(tokens []json.RawMessage, idx int) (string, string) {
	return neighborTokenInfo(tokens, idx-1)
}

func neighborTokenInfo(tokens []json.RawMessage, at int) (string, string) {
	if at < 0 || at >= len(tokens) {
		return "", ""
	}
	return getTokenInfo(tokens[at])
}
