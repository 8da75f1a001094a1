package tokenizer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-html5-parser/html5parser/internal/constants"
	"github.com/go-html5-parser/html5parser/internal/cursor"
	"github.com/go-html5-parser/html5parser/internal/sourcepos"
)

// attrMapPool pools attribute index maps to reduce allocations.
var attrMapPool = sync.Pool{
	New: func() interface{} {
		return make(map[string]int, 8) // Pre-allocate for typical attribute count
	},
}

// getAttrMap retrieves a map from the pool and clears it.
func getAttrMap() map[string]int {
	m := attrMapPool.Get().(map[string]int)
	// Clear the map
	for k := range m {
		delete(m, k)
	}
	return m
}

// putAttrMap returns a map to the pool.
func putAttrMap(m map[string]int) {
	if m != nil {
		attrMapPool.Put(m)
	}
}

// Tokenizer implements the HTML5 tokenization algorithm (port of the Python reference).
//
// It produces a stream of tokens and collects parse errors.
type Tokenizer struct {
	opts Options

	origInput string

	buf     []rune
	offsets []int
	pos     int

	state    State
	textMode State

	reconsume bool
	ignoreLF  bool

	line   int
	column int

	// lastCharPos is the position of the most recently consumed rune, used
	// to stamp token/attribute start positions without re-deriving offsets
	// across every state handler.
	lastCharPos sourcepos.Position

	// tagStart is the position of the '<' that opened the tag/comment/
	// doctype token currently being built.
	tagStart sourcepos.Position

	// tokenStart is the position of the first rune of the text run
	// currently accumulating in textBuffer.
	tokenStart sourcepos.Position

	// attrNameStart/attrValueStart are the positions of the current
	// attribute's name and value, stamped onto the emitted Attr.
	attrNameStart  sourcepos.Position
	attrValueStart sourcepos.Position

	errorCount int

	// Current tag token being built.
	currentTagKind        TokenKind
	currentTagName        []rune
	currentTagAttrs       []Attr
	currentTagAttrIndex   map[string]int
	currentTagSelfClosing bool

	currentAttrName           []rune
	currentAttrValue          []rune
	currentAttrValueHasAmp    bool
	currentComment            []rune
	commentEOF                bool
	currentDoctypeName        []rune
	currentDoctypePublic      *[]rune // nil = not set, empty slice = empty string
	currentDoctypeSystem      *[]rune
	currentDoctypeForceQuirks bool

	// For rawtext/rcdata/script end-tag matching.
	rawtextTagName  string
	originalTagName []rune
	tempBuffer      []rune

	lastStartTagName string

	textBuffer strings.Builder
	textHasAmp bool

	pendingTokens []Token
	errors        []ParseError

	allowCDATA bool
}

// ParseError represents a tokenizer parse error.
//
// Beyond the code and position, a ParseError may carry a type-tagged
// payload: the offending codepoint (decode-stage errors), the offending
// source text (character-reference errors), or the duplicate-attribute
// details. At most one payload field is set, chosen by Code.
type ParseError struct {
	Code    string
	Message string
	Line    int
	Column  int
	Offset  int

	// OriginalText is the verbatim source text the error was raised on,
	// when a meaningful slice exists (the rejected bytes' hex for UTF-8
	// errors, the reference text for character-reference errors).
	OriginalText string

	// Codepoint is the offending rune for decode-stage errors.
	Codepoint rune

	// Text is the offending reference text for character-reference errors.
	Text string

	// Duplicate carries the extra context of a duplicate-attribute error.
	Duplicate *DuplicateAttribute
}

// DuplicateAttribute records both occurrences of a repeated attribute name
// on one tag: where the kept first occurrence sits in the attribute
// sequence and where the dropped repeat was found.
type DuplicateAttribute struct {
	Name          string
	FirstPos      sourcepos.Position
	OriginalIndex int
	NewIndex      int
}

// New creates a new tokenizer for the given input.
func New(input string) *Tokenizer {
	return NewWithOptions(input, defaultOptions())
}

// NewWithOptions creates a new tokenizer for the given input and options.
func NewWithOptions(input string, opts Options) *Tokenizer {
	t := &Tokenizer{
		opts:     opts,
		state:    DataState,
		textMode: DataState,
		line:     1,
		column:   0,
	}
	t.origInput = input
	t.reset(input)
	return t
}

func (t *Tokenizer) reset(input string) {
	runes, offsets, diags := cursor.Decode(input)
	if len(runes) > 0 && t.opts.DiscardBOM && runes[0] == 0xFEFF {
		runes = runes[1:]
		offsets = offsets[1:]
	}
	t.buf = runes
	t.offsets = offsets

	t.pos = 0
	t.reconsume = false
	t.ignoreLF = false
	t.line = 1
	t.column = 0
	t.textMode = t.state

	t.errors = nil
	t.errorCount = 0
	for _, d := range diags {
		if t.opts.MaxErrors > 0 && t.errorCount >= t.opts.MaxErrors {
			break
		}
		t.errorCount++
		pos := cursor.PositionAt(input, d.Pos.Offset, t.opts.TabStop)
		t.errors = append(t.errors, ParseError{
			Code:         d.Code,
			Line:         pos.Line,
			Column:       pos.Column,
			Offset:       d.Pos.Offset,
			OriginalText: d.OriginalText,
			Codepoint:    d.Codepoint,
		})
	}

	t.currentTagKind = StartTag
	t.currentTagName = t.currentTagName[:0]
	t.currentTagAttrs = t.currentTagAttrs[:0]
	// Return old map to pool and get a fresh one
	putAttrMap(t.currentTagAttrIndex)
	t.currentTagAttrIndex = getAttrMap()
	t.currentTagSelfClosing = false
	t.currentAttrName = t.currentAttrName[:0]
	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrValueHasAmp = false
	t.currentComment = t.currentComment[:0]
	t.currentDoctypeName = t.currentDoctypeName[:0]
	t.currentDoctypePublic = nil
	t.currentDoctypeSystem = nil
	t.currentDoctypeForceQuirks = false

	t.rawtextTagName = ""
	t.originalTagName = t.originalTagName[:0]
	t.tempBuffer = t.tempBuffer[:0]

	t.textBuffer.Reset()
	t.textHasAmp = false

	t.pendingTokens = nil
}

// SetDiscardBOM controls whether the leading U+FEFF BOM is discarded.
// For correctness, this should be called before consuming tokens.
func (t *Tokenizer) SetDiscardBOM(discard bool) {
	if t.opts.DiscardBOM == discard {
		return
	}
	t.opts.DiscardBOM = discard
	// Re-initialize the input buffer since BOM handling affects the rune stream.
	t.reset(t.origInput)
}

// SetXMLCoercion enables/disables XML coercion for text/comment output.
func (t *Tokenizer) SetXMLCoercion(enabled bool) {
	t.opts.XMLCoercion = enabled
}

// SetAllowCDATA toggles CDATA section parsing for foreign content.
func (t *Tokenizer) SetAllowCDATA(enabled bool) {
	t.allowCDATA = enabled
}

// SetState sets the tokenizer state.
// This is used by the tree builder to switch to RCDATA, RAWTEXT, etc.
func (t *Tokenizer) SetState(state State) {
	t.state = state
	//nolint:exhaustive // Only specific states affect textMode; others use default behavior
	switch state {
	case DataState, RCDATAState, RAWTEXTState, ScriptDataState, PLAINTEXTState, CDATASectionState:
		t.textMode = state
	default:
		// Other states do not change textMode
	}
	// Ensure rawtext end-tag matching has a tag name.
	if (state == RCDATAState || state == RAWTEXTState || state == ScriptDataState) && t.rawtextTagName == "" && t.lastStartTagName != "" {
		t.rawtextTagName = t.lastStartTagName
	}
}

// SetLastStartTag sets the last start tag name.
// This is used for appropriate end tag matching in RCDATA/RAWTEXT/script states.
func (t *Tokenizer) SetLastStartTag(name string) {
	t.lastStartTagName = name
	// For tokenizer tests, we use this as the current rawtext tag name as well.
	t.rawtextTagName = name
}

// Errors returns the parse errors encountered during tokenization.
func (t *Tokenizer) Errors() []ParseError {
	return t.errors
}

// Next returns the next token.
// Returns a token with Type == EOF when input is exhausted.
func (t *Tokenizer) Next() Token {
	if len(t.pendingTokens) > 0 {
		token := t.pendingTokens[0]
		t.pendingTokens = t.pendingTokens[1:]
		return token
	}

	for len(t.pendingTokens) == 0 {
		t.step()
	}
	token := t.pendingTokens[0]
	t.pendingTokens = t.pendingTokens[1:]
	return token
}

// stateHandlers dispatches each reachable State to its step function. A
// state defined in states.go but absent here (the standalone
// character-reference states, which this tokenizer resolves inline via
// decodeEntities instead of walking a dedicated state chain) falls
// through to Data, matching the pre-table switch's default case.
var stateHandlers = map[State]func(*Tokenizer){
	DataState:                        (*Tokenizer).stateData,
	TagOpenState:                      (*Tokenizer).stateTagOpen,
	EndTagOpenState:                   (*Tokenizer).stateEndTagOpen,
	TagNameState:                      (*Tokenizer).stateTagName,
	BeforeAttributeNameState:          (*Tokenizer).stateBeforeAttributeName,
	AttributeNameState:                (*Tokenizer).stateAttributeName,
	AfterAttributeNameState:           (*Tokenizer).stateAfterAttributeName,
	BeforeAttributeValueState:         (*Tokenizer).stateBeforeAttributeValue,
	AttributeValueDoubleQuotedState:   (*Tokenizer).stateAttributeValueDoubleQuoted,
	AttributeValueSingleQuotedState:   (*Tokenizer).stateAttributeValueSingleQuoted,
	AttributeValueUnquotedState:       (*Tokenizer).stateAttributeValueUnquoted,
	AfterAttributeValueQuotedState:    (*Tokenizer).stateAfterAttributeValueQuoted,
	SelfClosingStartTagState:          (*Tokenizer).stateSelfClosingStartTag,
	MarkupDeclarationOpenState:        (*Tokenizer).stateMarkupDeclarationOpen,
	CommentStartState:                 (*Tokenizer).stateCommentStart,
	CommentStartDashState:             (*Tokenizer).stateCommentStartDash,
	CommentState:                      (*Tokenizer).stateComment,
	CommentEndDashState:               (*Tokenizer).stateCommentEndDash,
	CommentEndState:                   (*Tokenizer).stateCommentEnd,
	CommentEndBangState:               (*Tokenizer).stateCommentEndBang,
	BogusCommentState:                 (*Tokenizer).stateBogusComment,
	DOCTYPEState:                      (*Tokenizer).stateDoctype,
	BeforeDOCTYPENameState:            (*Tokenizer).stateBeforeDoctypeName,
	DOCTYPENameState:                  (*Tokenizer).stateDoctypeName,
	AfterDOCTYPENameState:             (*Tokenizer).stateAfterDoctypeName,
	BogusDOCTYPEState:                 (*Tokenizer).stateBogusDoctype,
	AfterDOCTYPEPublicKeywordState:    (*Tokenizer).stateAfterDoctypePublicKeyword,
	AfterDOCTYPESystemKeywordState:    (*Tokenizer).stateAfterDoctypeSystemKeyword,
	BeforeDOCTYPEPublicIdentifierState: (*Tokenizer).stateBeforeDoctypePublicIdentifier,
	DOCTYPEPublicIdentifierDoubleQuotedState:       (*Tokenizer).stateDoctypePublicIdentifierDoubleQuoted,
	DOCTYPEPublicIdentifierSingleQuotedState:       (*Tokenizer).stateDoctypePublicIdentifierSingleQuoted,
	AfterDOCTYPEPublicIdentifierState:              (*Tokenizer).stateAfterDoctypePublicIdentifier,
	BetweenDOCTYPEPublicAndSystemIdentifiersState:  (*Tokenizer).stateBetweenDoctypePublicAndSystemIdentifiers,
	BeforeDOCTYPESystemIdentifierState:             (*Tokenizer).stateBeforeDoctypeSystemIdentifier,
	DOCTYPESystemIdentifierDoubleQuotedState:       (*Tokenizer).stateDoctypeSystemIdentifierDoubleQuoted,
	DOCTYPESystemIdentifierSingleQuotedState:       (*Tokenizer).stateDoctypeSystemIdentifierSingleQuoted,
	AfterDOCTYPESystemIdentifierState:              (*Tokenizer).stateAfterDoctypeSystemIdentifier,
	CDATASectionState:                 (*Tokenizer).stateCDATASection,
	CDATASectionBracketState:          (*Tokenizer).stateCDATASectionBracket,
	CDATASectionEndState:              (*Tokenizer).stateCDATASectionEnd,
	RCDATAState:                       (*Tokenizer).stateRCDATA,
	RCDATALessThanSignState:           (*Tokenizer).stateRCDATALessThanSign,
	RCDATAEndTagOpenState:             (*Tokenizer).stateRCDATAEndTagOpen,
	RCDATAEndTagNameState:             (*Tokenizer).stateRCDATAEndTagName,
	RAWTEXTState:                      (*Tokenizer).stateRAWTEXT,
	ScriptDataState:                   (*Tokenizer).stateRAWTEXT, // script data behaves like rawtext with extra handling.
	RAWTEXTLessThanSignState:          (*Tokenizer).stateRAWTEXTLessThanSign,
	RAWTEXTEndTagOpenState:            (*Tokenizer).stateRAWTEXTEndTagOpen,
	RAWTEXTEndTagNameState:            (*Tokenizer).stateRAWTEXTEndTagName,
	PLAINTEXTState:                    (*Tokenizer).statePLAINTEXT,
	ScriptDataEscapedState:            (*Tokenizer).stateScriptDataEscaped,
	ScriptDataEscapedDashState:        (*Tokenizer).stateScriptDataEscapedDash,
	ScriptDataEscapedDashDashState:    (*Tokenizer).stateScriptDataEscapedDashDash,
	ScriptDataEscapedLessThanSignState: (*Tokenizer).stateScriptDataEscapedLessThanSign,
	ScriptDataEscapedEndTagOpenState:  (*Tokenizer).stateScriptDataEscapedEndTagOpen,
	ScriptDataEscapedEndTagNameState:  (*Tokenizer).stateScriptDataEscapedEndTagName,
	ScriptDataDoubleEscapeStartState:  (*Tokenizer).stateScriptDataDoubleEscapeStart,
	ScriptDataDoubleEscapedState:      (*Tokenizer).stateScriptDataDoubleEscaped,
	ScriptDataDoubleEscapedDashState:  (*Tokenizer).stateScriptDataDoubleEscapedDash,
	ScriptDataDoubleEscapedDashDashState: (*Tokenizer).stateScriptDataDoubleEscapedDashDash,
	ScriptDataDoubleEscapedLessThanSignState: (*Tokenizer).stateScriptDataDoubleEscapedLessThanSign,
	ScriptDataDoubleEscapeEndState:    (*Tokenizer).stateScriptDataDoubleEscapeEnd,
}

func (t *Tokenizer) step() {
	if handler, ok := stateHandlers[t.state]; ok {
		handler(t)
		return
	}
	// Unimplemented states behave like Data for now.
	t.state = DataState
}

func (t *Tokenizer) getChar() (rune, bool) {
	if t.reconsume {
		t.reconsume = false
		if t.pos == 0 {
			return 0, false
		}
		t.pos--
	}

	for {
		if t.pos >= len(t.buf) {
			return 0, false
		}

		idx := t.pos
		c := t.buf[t.pos]
		t.pos++

		if c == '\r' {
			t.ignoreLF = true
			t.advance('\n')
			t.lastCharPos = t.offsetPosition(idx)
			return '\n', true
		}
		if c == '\n' {
			if t.ignoreLF {
				t.ignoreLF = false
				continue
			}
			t.advance('\n')
			t.lastCharPos = t.offsetPosition(idx)
			return '\n', true
		}

		t.ignoreLF = false
		t.advance(c)
		t.lastCharPos = t.offsetPosition(idx)
		return c, true
	}
}

// offsetPosition returns the position of the rune at buf index idx, using
// the tokenizer's current line/column (the convention already used for
// error positions: the position after consuming the rune, clamped to
// column 1).
func (t *Tokenizer) offsetPosition(idx int) sourcepos.Position {
	offset := len(t.origInput)
	if idx < len(t.offsets) {
		offset = t.offsets[idx]
	}
	return sourcepos.Position{Line: t.line, Column: max(1, t.column), Offset: offset}
}

// currentPosition returns the position the cursor is about to read from
// (one past the last consumed rune), used to stamp EOF-adjacent tokens.
func (t *Tokenizer) currentPosition() sourcepos.Position {
	return t.offsetPosition(t.pos)
}

func (t *Tokenizer) peek(offset int) (rune, bool) {
	i := t.pos + offset
	if t.reconsume {
		i--
	}
	if i < 0 || i >= len(t.buf) {
		return 0, false
	}
	return t.buf[i], true
}

func (t *Tokenizer) advance(c rune) {
	if c == '\n' {
		t.line++
		t.column = 0
		return
	}
	if c == '\t' {
		stop := t.opts.TabStop
		if stop <= 0 {
			stop = cursor.DefaultTabStop
		}
		t.column += stop - (t.column % stop)
		return
	}
	t.column++
}

func (t *Tokenizer) emit(tok Token) {
	t.pendingTokens = append(t.pendingTokens, tok)
}

func (t *Tokenizer) emitEOF() {
	t.flushText()
	t.emit(Token{Type: EOF, Pos: t.currentPosition()})
}

func (t *Tokenizer) emitError(code string) {
	if t.opts.MaxErrors > 0 && t.errorCount >= t.opts.MaxErrors {
		return
	}
	t.errorCount++
	offset := t.lastCharPos.Offset
	if t.lastCharPos.Line != t.line {
		// lastCharPos is stale (error raised before any rune was consumed
		// in this run); fall back to the upcoming rune's offset.
		offset = t.currentPosition().Offset
	}
	t.errors = append(t.errors, ParseError{
		Code:   code,
		Line:   t.line,
		Column: max(1, t.column),
		Offset: offset,
	})
	if t.opts.StopOnFirstError {
		t.state = DataState
		t.pos = len(t.buf)
	}
}

// recordError appends a fully formed ParseError, honoring the MaxErrors cap
// and StopOnFirstError the same way emitError does. Use it when the error
// position or payload is computed by the caller rather than taken from the
// cursor's last consumed rune.
func (t *Tokenizer) recordError(e ParseError) {
	if t.opts.MaxErrors > 0 && t.errorCount >= t.opts.MaxErrors {
		return
	}
	t.errorCount++
	t.errors = append(t.errors, e)
	if t.opts.StopOnFirstError {
		t.state = DataState
		t.pos = len(t.buf)
	}
}

// emitEntityErrors reports the character-reference errors decodeEntities
// found, locating each reference's literal text inside original (the
// verbatim source slice the decoded text came from) so the diagnostic
// carries an exact byte offset. base is original's offset into the input.
func (t *Tokenizer) emitEntityErrors(diags []entityDiag, original string, base int) {
	search := 0
	for _, d := range diags {
		offset := base
		text := d.Literal
		if idx := strings.Index(original[search:], d.Literal); idx >= 0 {
			offset = base + search + idx
			search += idx + len(d.Literal)
		}
		pos := cursor.PositionAt(t.origInput, offset, t.opts.TabStop)
		t.recordError(ParseError{
			Code:         d.Code,
			Line:         pos.Line,
			Column:       pos.Column,
			Offset:       pos.Offset,
			OriginalText: text,
			Text:         text,
		})
	}
}

func (t *Tokenizer) reconsumeCurrent() {
	t.reconsume = true
}

func (t *Tokenizer) appendTextRune(r rune) {
	if t.textBuffer.Len() == 0 {
		t.tokenStart = t.lastCharPos
	}
	if r == '&' {
		t.textHasAmp = true
	}
	t.textBuffer.WriteRune(r)
}

// appendTextRuneAt appends r to the pending text run, stamping pos as the
// run's start when r opens it. Used when r is re-emitted after the cursor
// already moved past it (a "<" that turned out not to open a tag), so the
// run's position points at r itself rather than the rune that followed.
func (t *Tokenizer) appendTextRuneAt(r rune, pos sourcepos.Position) {
	if t.textBuffer.Len() == 0 {
		t.tokenStart = pos
	}
	if r == '&' {
		t.textHasAmp = true
	}
	t.textBuffer.WriteRune(r)
}

func (t *Tokenizer) flushText() {
	if t.textBuffer.Len() == 0 {
		return
	}
	data := t.textBuffer.String()
	t.textBuffer.Reset()

	end := len(t.origInput)
	if t.pos < len(t.buf) {
		end = t.lastCharPos.Offset
	}
	var original string
	if t.tokenStart.Offset >= 0 && t.tokenStart.Offset <= end && end <= len(t.origInput) {
		original = t.origInput[t.tokenStart.Offset:end]
	}

	// Decode character references in Data/RCDATA modes (including their helper states).
	if (t.textMode == DataState || t.textMode == RCDATAState) && t.textHasAmp {
		var entityDiags []entityDiag
		data, entityDiags = decodeEntities(data, false)
		t.emitEntityErrors(entityDiags, original, t.tokenStart.Offset)
	}
	t.textHasAmp = false

	if t.opts.XMLCoercion {
		data = coerceTextForXML(data)
	}

	t.emit(Token{Type: Character, Data: data, Pos: t.tokenStart, OriginalText: original})
}

// tagEndOffset returns the byte offset just past the most recently
// consumed rune (which closes the tag/comment/doctype token being
// emitted), clamped to the input length.
func (t *Tokenizer) tagEndOffset() int {
	end := t.lastCharPos.Offset + 1
	if end > len(t.origInput) {
		end = len(t.origInput)
	}
	return end
}

// tagOriginalText returns the verbatim source text from tagStart to the
// most recently consumed rune, or "" if the bounds are inconsistent.
func (t *Tokenizer) tagOriginalText() string {
	end := t.tagEndOffset()
	start := t.tagStart.Offset
	if start < 0 || start > end || end > len(t.origInput) {
		return ""
	}
	return t.origInput[start:end]
}

// sliceOriginal returns input[start:end] if the bounds are sane, else "".
func sliceOriginal(input string, start, end int) string {
	if start < 0 || end < start || end > len(input) {
		return ""
	}
	return input[start:end]
}

func (t *Tokenizer) finishAttribute() {
	if len(t.currentAttrName) == 0 {
		return
	}
	name := constants.InternAttributeName(string(t.currentAttrName))
	t.currentAttrName = t.currentAttrName[:0]

	nameEnd := t.lastCharPos.Offset
	if t.attrValueStart.Offset > t.attrNameStart.Offset {
		nameEnd = t.attrValueStart.Offset
	}
	originalName := sliceOriginal(t.origInput, t.attrNameStart.Offset, nameEnd)
	namePos := t.attrNameStart

	if first, exists := t.currentTagAttrIndex[name]; exists {
		dup := &DuplicateAttribute{
			Name:          name,
			OriginalIndex: first,
			NewIndex:      len(t.currentTagAttrs),
		}
		if first >= 0 && first < len(t.currentTagAttrs) {
			dup.FirstPos = t.currentTagAttrs[first].NamePos
		}
		t.recordError(ParseError{
			Code:         "duplicate-attribute",
			Line:         namePos.Line,
			Column:       namePos.Column,
			Offset:       namePos.Offset,
			OriginalText: originalName,
			Duplicate:    dup,
		})
		t.currentAttrValue = t.currentAttrValue[:0]
		t.currentAttrValueHasAmp = false
		return
	}

	value := ""
	originalValue := ""
	if len(t.currentAttrValue) > 0 {
		value = string(t.currentAttrValue)
		originalValue = sliceOriginal(t.origInput, t.attrValueStart.Offset, t.lastCharPos.Offset)
	}
	if t.currentAttrValueHasAmp {
		var entityDiags []entityDiag
		value, entityDiags = decodeEntities(value, true)
		t.emitEntityErrors(entityDiags, originalValue, t.attrValueStart.Offset)
	}
	t.currentTagAttrs = append(t.currentTagAttrs, Attr{
		Name:          name,
		Value:         value,
		OriginalName:  originalName,
		OriginalValue: originalValue,
		NamePos:       namePos,
		ValuePos:      t.attrValueStart,
	})
	t.currentTagAttrIndex[name] = len(t.currentTagAttrs) - 1

	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrValueHasAmp = false
}

func (t *Tokenizer) emitCurrentTag() bool {
	var switchedTextMode bool
	name := constants.InternTagName(string(t.currentTagName))
	attrs := append([]Attr(nil), t.currentTagAttrs...)
	tok := Token{
		Type:         t.currentTagKind,
		Name:         name,
		Attrs:        attrs,
		SelfClosing:  t.currentTagSelfClosing,
		Pos:          t.tagStart,
		OriginalText: t.tagOriginalText(),
	}

	// Tokenizer-side state switching for rawtext/rcdata elements. In the
	// full HTML parsing pipeline the tree builder controls these switches;
	// this tokenizer applies them directly so it can be driven standalone.
	if tok.Type == StartTag {
		t.lastStartTagName = name
		switch name {
		case "title", "textarea":
			t.state = RCDATAState
			t.textMode = RCDATAState
			t.rawtextTagName = name
			switchedTextMode = true
		case "script":
			t.state = ScriptDataState
			t.textMode = RAWTEXTState
			t.rawtextTagName = name
			switchedTextMode = true
		case "style", "xmp", "iframe", "noembed", "noframes":
			t.state = RAWTEXTState
			t.textMode = RAWTEXTState
			t.rawtextTagName = name
			switchedTextMode = true
		case "plaintext":
			t.state = PLAINTEXTState
			t.textMode = PLAINTEXTState
			t.rawtextTagName = name
			switchedTextMode = true
		}
	}

	t.currentTagName = t.currentTagName[:0]
	t.currentTagAttrs = t.currentTagAttrs[:0]
	// Return old map to pool and get a fresh one
	putAttrMap(t.currentTagAttrIndex)
	t.currentTagAttrIndex = getAttrMap()
	t.currentAttrName = t.currentAttrName[:0]
	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrValueHasAmp = false
	t.currentTagSelfClosing = false
	t.currentTagKind = StartTag

	t.emit(tok)
	return switchedTextMode
}

func (t *Tokenizer) emitComment() {
	data := string(t.currentComment)
	t.currentComment = t.currentComment[:0]
	if t.opts.XMLCoercion {
		data = coerceCommentForXML(data)
	}
	t.emit(Token{
		Type:         Comment,
		Data:         data,
		CommentEOF:   t.commentEOF,
		Pos:          t.tagStart,
		OriginalText: t.tagOriginalText(),
	})
	t.commentEOF = false
}

func (t *Tokenizer) emitDoctype() {
	name := string(t.currentDoctypeName)
	var publicID *string
	var systemID *string
	if t.currentDoctypePublic != nil {
		s := string(*t.currentDoctypePublic)
		publicID = &s
	}
	if t.currentDoctypeSystem != nil {
		s := string(*t.currentDoctypeSystem)
		systemID = &s
	}

	t.emit(Token{
		Type:         DOCTYPE,
		Name:         name,
		PublicID:     publicID,
		SystemID:     systemID,
		ForceQuirks:  t.currentDoctypeForceQuirks,
		Pos:          t.tagStart,
		OriginalText: t.tagOriginalText(),
	})
}

func (t *Tokenizer) consumeIf(lit string) bool {
	r := []rune(lit)
	if t.pos+len(r) > len(t.buf) {
		return false
	}
	for i := range r {
		if t.buf[t.pos+i] != r[i] {
			return false
		}
	}
	t.pos += len(r)
	// Update column as if consumed (best-effort; these literals are ASCII).
	t.column += len(r)
	t.lastCharPos = t.offsetPosition(t.pos - 1)
	return true
}

// eofInDoctype runs the recovery shared by every DOCTYPE sub-state on end
// of input: optionally raise code, optionally force quirks mode, then emit
// whatever DOCTYPE has been assembled so far followed by EOF.
func (t *Tokenizer) eofInDoctype(code string, forceQuirks bool) {
	if code != "" {
		t.emitError(code)
	}
	if forceQuirks {
		t.currentDoctypeForceQuirks = true
	}
	t.emitDoctype()
	t.emit(Token{Type: EOF})
}

// eofInComment runs the recovery shared by every comment sub-state on end
// of input: raise eof-in-comment, emit whatever has been assembled, then EOF.
func (t *Tokenizer) eofInComment() {
	t.emitError("eof-in-comment")
	t.emitComment()
	t.emit(Token{Type: EOF})
}

// doctypeIdentifierQuoted implements the four DOCTYPEPublic/SystemIdentifier
// {Double,Single}Quoted states, which differ only in the quote rune, which
// doctype field they accumulate into, the state to resume in once the quote
// closes, and the parse-error code for an abrupt '>'.
func (t *Tokenizer) doctypeIdentifierQuoted(quote rune, target **[]rune, afterState State, abruptCode string) {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		if c == quote {
			t.state = afterState
			return
		}
		if c == '>' {
			t.emitError(abruptCode)
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		}
		if c == 0 {
			t.emitError("unexpected-null-character")
			c = unicode.ReplacementChar
		}
		**target = append(**target, c)
	}
}

func (t *Tokenizer) consumeCaseInsensitive(lit string) bool {
	r := []rune(lit)
	if t.pos+len(r) > len(t.buf) {
		return false
	}
	for i := range r {
		a := t.buf[t.pos+i]
		b := r[i]
		if unicode.ToLower(a) != unicode.ToLower(b) {
			return false
		}
	}
	t.pos += len(r)
	t.column += len(r)
	t.lastCharPos = t.offsetPosition(t.pos - 1)
	return true
}

func (t *Tokenizer) stateData() {
	t.textMode = DataState
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitEOF()
			return
		}
		switch c {
		case '<':
			t.flushText()
			t.tagStart = t.lastCharPos
			t.state = TagOpenState
			return
		case 0:
			t.emitError("unexpected-null-character")
			// The Python reference emits the error but keeps U+0000 in the output.
			t.appendTextRune(0)
		default:
			t.appendTextRune(c)
		}
	}
}

func (t *Tokenizer) startTag(kind TokenKind, first rune) {
	t.currentTagKind = kind
	t.currentTagName = t.currentTagName[:0]
	t.currentTagAttrs = t.currentTagAttrs[:0]
	// Return old map to pool and get a fresh one
	putAttrMap(t.currentTagAttrIndex)
	t.currentTagAttrIndex = getAttrMap()
	t.currentAttrName = t.currentAttrName[:0]
	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrValueHasAmp = false
	t.currentTagSelfClosing = false

	if first >= 'A' && first <= 'Z' {
		first += 32
	}
	t.currentTagName = append(t.currentTagName, first)
}

func (t *Tokenizer) stateTagOpen() {
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-before-tag-name")
		t.appendTextRuneAt('<', t.tagStart)
		t.emitEOF()
		return
	}
	switch c {
	case '!':
		t.state = MarkupDeclarationOpenState
	case '/':
		t.state = EndTagOpenState
	case '?':
		t.emitError("unexpected-question-mark-instead-of-tag-name")
		t.currentComment = t.currentComment[:0]
		t.reconsumeCurrent()
		t.state = BogusCommentState
	default:
		if constants.IsASCIIAlpha(c) {
			t.startTag(StartTag, c)
			t.state = TagNameState
			return
		}
		t.emitError("invalid-first-character-of-tag-name")
		t.appendTextRuneAt('<', t.tagStart)
		t.reconsumeCurrent()
		t.state = DataState
	}
}

func (t *Tokenizer) stateEndTagOpen() {
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-before-tag-name")
		t.appendTextRuneAt('<', t.tagStart)
		t.appendTextRune('/')
		t.emitEOF()
		return
	}
	if c == '>' {
		t.emitError("empty-end-tag")
		t.state = DataState
		return
	}
	if constants.IsASCIIAlpha(c) {
		t.startTag(EndTag, c)
		t.state = TagNameState
		return
	}
	t.emitError("invalid-first-character-of-tag-name")
	t.currentComment = t.currentComment[:0]
	t.reconsumeCurrent()
	t.state = BogusCommentState
}

func (t *Tokenizer) stateTagName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}

		switch c {
		case '\t', '\n', '\f', ' ':
			t.state = BeforeAttributeNameState
			return
		case '/':
			t.state = SelfClosingStartTagState
			return
		case '>':
			t.finishAttribute()
			if !t.emitCurrentTag() {
				t.state = DataState
			}
			return
		case 0:
			t.emitError("unexpected-null-character")
			t.currentTagName = append(t.currentTagName, unicode.ReplacementChar)
		default:
			if c >= 'A' && c <= 'Z' {
				c += 32
			}
			t.currentTagName = append(t.currentTagName, c)
		}
	}
}

func (t *Tokenizer) stateBeforeAttributeName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '/':
			t.finishAttribute()
			t.state = SelfClosingStartTagState
			return
		case '>':
			t.finishAttribute()
			if !t.emitCurrentTag() {
				t.state = DataState
			}
			return
		default:
			t.finishAttribute()
			t.currentAttrName = t.currentAttrName[:0]
			t.currentAttrValue = t.currentAttrValue[:0]
			t.currentAttrValueHasAmp = false
			t.attrNameStart = t.lastCharPos
			switch {
			case c == 0:
				t.emitError("unexpected-null-character")
				c = unicode.ReplacementChar
			case c >= 'A' && c <= 'Z':
				c += 32
			case c == '=':
				t.emitError("unexpected-equals-sign-before-attribute-name")
			}
			t.currentAttrName = append(t.currentAttrName, c)
			t.state = AttributeNameState
			return
		}
	}
}

func (t *Tokenizer) stateAttributeName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.finishAttribute()
			t.state = AfterAttributeNameState
			return
		case '/':
			t.finishAttribute()
			t.state = SelfClosingStartTagState
			return
		case '=':
			t.state = BeforeAttributeValueState
			return
		case '>':
			t.finishAttribute()
			if !t.emitCurrentTag() {
				t.state = DataState
			}
			return
		case 0:
			t.emitError("unexpected-null-character")
			t.currentAttrName = append(t.currentAttrName, unicode.ReplacementChar)
		default:
			if c == '"' || c == '\'' || c == '<' {
				t.emitError("unexpected-character-in-attribute-name")
			}
			if c >= 'A' && c <= 'Z' {
				c += 32
			}
			t.currentAttrName = append(t.currentAttrName, c)
		}
	}
}

func (t *Tokenizer) stateAfterAttributeName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '/':
			t.finishAttribute()
			t.state = SelfClosingStartTagState
			return
		case '=':
			t.state = BeforeAttributeValueState
			return
		case '>':
			t.finishAttribute()
			if !t.emitCurrentTag() {
				t.state = DataState
			}
			return
		default:
			t.finishAttribute()
			t.currentAttrName = t.currentAttrName[:0]
			t.currentAttrValue = t.currentAttrValue[:0]
			t.currentAttrValueHasAmp = false
			if c == 0 {
				t.emitError("unexpected-null-character")
				c = unicode.ReplacementChar
			} else if c >= 'A' && c <= 'Z' {
				c += 32
			}
			t.currentAttrName = append(t.currentAttrName, c)
			t.state = AttributeNameState
			return
		}
	}
}

func (t *Tokenizer) stateBeforeAttributeValue() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '"':
			t.attrValueStart = t.currentPosition()
			t.state = AttributeValueDoubleQuotedState
			return
		case '\'':
			t.attrValueStart = t.currentPosition()
			t.state = AttributeValueSingleQuotedState
			return
		case '>':
			t.emitError("missing-attribute-value")
			t.finishAttribute()
			if !t.emitCurrentTag() {
				t.state = DataState
			}
			return
		default:
			t.attrValueStart = t.lastCharPos
			t.reconsumeCurrent()
			t.state = AttributeValueUnquotedState
			return
		}
	}
}

func (t *Tokenizer) stateAttributeValueDoubleQuoted() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '"':
			t.state = AfterAttributeValueQuotedState
			return
		case '&':
			t.currentAttrValueHasAmp = true
			t.currentAttrValue = append(t.currentAttrValue, '&')
		case 0:
			t.emitError("unexpected-null-character")
			t.currentAttrValue = append(t.currentAttrValue, unicode.ReplacementChar)
		default:
			t.currentAttrValue = append(t.currentAttrValue, c)
		}
	}
}

func (t *Tokenizer) stateAttributeValueSingleQuoted() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emitEOF()
			return
		}
		switch c {
		case '\'':
			t.state = AfterAttributeValueQuotedState
			return
		case '&':
			t.currentAttrValueHasAmp = true
			t.currentAttrValue = append(t.currentAttrValue, '&')
		case 0:
			t.emitError("unexpected-null-character")
			t.currentAttrValue = append(t.currentAttrValue, unicode.ReplacementChar)
		default:
			t.currentAttrValue = append(t.currentAttrValue, c)
		}
	}
}

func (t *Tokenizer) stateAttributeValueUnquoted() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitError("eof-in-tag")
			t.emit(Token{Type: EOF})
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.finishAttribute()
			t.state = BeforeAttributeNameState
			return
		case '>':
			t.finishAttribute()
			t.emitCurrentTag()
			t.state = DataState
			return
		case '&':
			t.currentAttrValueHasAmp = true
			t.currentAttrValue = append(t.currentAttrValue, '&')
		case 0:
			t.emitError("unexpected-null-character")
			t.currentAttrValue = append(t.currentAttrValue, unicode.ReplacementChar)
		default:
			if c == '"' || c == '\'' || c == '<' || c == '=' || c == '`' {
				t.emitError("unexpected-character-in-unquoted-attribute-value")
			}
			t.currentAttrValue = append(t.currentAttrValue, c)
		}
	}
}

func (t *Tokenizer) stateAfterAttributeValueQuoted() {
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-in-tag")
		t.emitEOF()
		return
	}
	switch c {
	case '\t', '\n', '\f', ' ':
		t.finishAttribute()
		t.state = BeforeAttributeNameState
	case '/':
		t.finishAttribute()
		t.state = SelfClosingStartTagState
	case '>':
		t.finishAttribute()
		if !t.emitCurrentTag() {
			t.state = DataState
		}
	default:
		t.emitError("missing-whitespace-between-attributes")
		t.finishAttribute()
		t.reconsumeCurrent()
		t.state = BeforeAttributeNameState
	}
}

func (t *Tokenizer) stateSelfClosingStartTag() {
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-in-tag")
		t.emitEOF()
		return
	}
	if c == '>' {
		t.currentTagSelfClosing = true
		if !t.emitCurrentTag() {
			t.state = DataState
		}
		return
	}
	t.emitError("unexpected-character-after-solidus-in-tag")
	t.reconsumeCurrent()
	t.state = BeforeAttributeNameState
}

func (t *Tokenizer) stateMarkupDeclarationOpen() {
	if t.consumeIf("--") {
		t.currentComment = t.currentComment[:0]
		t.state = CommentStartState
		return
	}
	if t.consumeCaseInsensitive("DOCTYPE") {
		t.currentDoctypeName = t.currentDoctypeName[:0]
		t.currentDoctypePublic = nil
		t.currentDoctypeSystem = nil
		t.currentDoctypeForceQuirks = false
		t.state = DOCTYPEState
		return
	}
	if t.consumeIf("[CDATA[") {
		if t.allowCDATA {
			t.state = CDATASectionState
		} else {
			t.emitError("cdata-in-html-content")
			t.currentComment = t.currentComment[:0]
			t.currentComment = append(t.currentComment, []rune("[CDATA[")...)
			t.state = BogusCommentState
		}
		return
	}

	t.emitError("incorrectly-opened-comment")
	t.currentComment = t.currentComment[:0]
	t.state = BogusCommentState
}

func (t *Tokenizer) stateCommentStart() {
	c, ok := t.getChar()
	if !ok {
		t.eofInComment()
		return
	}
	switch c {
	case '-':
		t.state = CommentStartDashState
	case '>':
		t.emitError("abrupt-closing-of-empty-comment")
		t.emitComment()
		t.state = DataState
	case 0:
		t.emitError("unexpected-null-character")
		t.currentComment = append(t.currentComment, unicode.ReplacementChar)
		t.state = CommentState
	default:
		t.currentComment = append(t.currentComment, c)
		t.state = CommentState
	}
}

func (t *Tokenizer) stateCommentStartDash() {
	c, ok := t.getChar()
	if !ok {
		t.eofInComment()
		return
	}
	switch c {
	case '-':
		t.state = CommentEndState
	case '>':
		t.emitError("abrupt-closing-of-empty-comment")
		t.emitComment()
		t.state = DataState
	case 0:
		t.emitError("unexpected-null-character")
		t.currentComment = append(t.currentComment, '-', unicode.ReplacementChar)
		t.state = CommentState
	default:
		t.currentComment = append(t.currentComment, '-', c)
		t.state = CommentState
	}
}

func (t *Tokenizer) stateComment() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInComment()
			return
		}
		if c == '-' {
			t.state = CommentEndDashState
			return
		}
		if c == 0 {
			t.emitError("unexpected-null-character")
			t.currentComment = append(t.currentComment, unicode.ReplacementChar)
			continue
		}
		t.currentComment = append(t.currentComment, c)
	}
}

func (t *Tokenizer) stateCommentEndDash() {
	c, ok := t.getChar()
	if !ok {
		t.eofInComment()
		return
	}
	switch c {
	case '-':
		t.state = CommentEndState
	case 0:
		t.emitError("unexpected-null-character")
		t.currentComment = append(t.currentComment, '-', unicode.ReplacementChar)
		t.state = CommentState
	default:
		t.currentComment = append(t.currentComment, '-', c)
		t.state = CommentState
	}
}

func (t *Tokenizer) stateCommentEnd() {
	c, ok := t.getChar()
	if !ok {
		t.eofInComment()
		return
	}
	switch c {
	case '>':
		t.emitComment()
		t.state = DataState
	case '!':
		t.state = CommentEndBangState
	case '-':
		t.currentComment = append(t.currentComment, '-')
	default:
		if c == 0 {
			t.emitError("unexpected-null-character")
			t.currentComment = append(t.currentComment, '-', '-', unicode.ReplacementChar)
		} else {
			t.emitError("incorrectly-closed-comment")
			t.currentComment = append(t.currentComment, '-', '-', c)
		}
		t.state = CommentState
	}
}

func (t *Tokenizer) stateCommentEndBang() {
	c, ok := t.getChar()
	if !ok {
		t.eofInComment()
		return
	}
	switch c {
	case '-':
		t.currentComment = append(t.currentComment, '-', '-', '!')
		t.state = CommentEndDashState
	case '>':
		t.emitError("incorrectly-closed-comment")
		t.emitComment()
		t.state = DataState
	case 0:
		t.emitError("unexpected-null-character")
		t.currentComment = append(t.currentComment, '-', '-', '!', unicode.ReplacementChar)
		t.state = CommentState
	default:
		t.currentComment = append(t.currentComment, '-', '-', '!', c)
		t.state = CommentState
	}
}

func (t *Tokenizer) stateBogusComment() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.commentEOF = true
			t.emitComment()
			t.emit(Token{Type: EOF})
			return
		}
		if c == '>' {
			t.commentEOF = false
			t.emitComment()
			t.state = DataState
			return
		}
		if c == 0 {
			t.currentComment = append(t.currentComment, unicode.ReplacementChar)
			continue
		}
		t.currentComment = append(t.currentComment, c)
	}
}

func (t *Tokenizer) stateDoctype() {
	c, ok := t.getChar()
	if !ok {
		t.eofInDoctype("eof-in-doctype", true)
		return
	}
	switch c {
	case '\t', '\n', '\f', ' ':
		t.state = BeforeDOCTYPENameState
	case '>':
		t.emitError("expected-doctype-name-but-got-right-bracket")
		t.currentDoctypeForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.emitError("missing-whitespace-before-doctype-name")
		t.reconsumeCurrent()
		t.state = BeforeDOCTYPENameState
	}
}

func (t *Tokenizer) stateBeforeDoctypeName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype-name", true)
			return
		}
		if c == '\t' || c == '\n' || c == '\f' || c == ' ' {
			continue
		}
		if c == '>' {
			t.emitError("expected-doctype-name-but-got-right-bracket")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		}
		if c >= 'A' && c <= 'Z' {
			c += 32
		} else if c == 0 {
			t.emitError("unexpected-null-character")
			c = unicode.ReplacementChar
		}
		t.currentDoctypeName = append(t.currentDoctypeName, c)
		t.state = DOCTYPENameState
		return
	}
}

func (t *Tokenizer) stateDoctypeName() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype-name", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.state = AfterDOCTYPENameState
			return
		case '>':
			t.emitDoctype()
			t.state = DataState
			return
		default:
			if c >= 'A' && c <= 'Z' {
				c += 32
			} else if c == 0 {
				t.emitError("unexpected-null-character")
				c = unicode.ReplacementChar
			}
			t.currentDoctypeName = append(t.currentDoctypeName, c)
		}
	}
}

func (t *Tokenizer) stateAfterDoctypeName() {
	if t.consumeCaseInsensitive("PUBLIC") {
		t.state = AfterDOCTYPEPublicKeywordState
		return
	}
	if t.consumeCaseInsensitive("SYSTEM") {
		t.state = AfterDOCTYPESystemKeywordState
		return
	}

	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		if c == '\t' || c == '\n' || c == '\f' || c == ' ' {
			continue
		}
		if c == '>' {
			t.emitDoctype()
			t.state = DataState
			return
		}
		t.emitError("missing-whitespace-after-doctype-name")
		t.currentDoctypeForceQuirks = true
		t.reconsumeCurrent()
		t.state = BogusDOCTYPEState
		return
	}
}

//nolint:dupl // stateAfterDoctypePublicKeyword and stateAfterDoctypeSystemKeyword follow same HTML5 spec pattern
func (t *Tokenizer) stateAfterDoctypePublicKeyword() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("missing-quote-before-doctype-public-identifier", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.state = BeforeDOCTYPEPublicIdentifierState
			return
		case '"':
			t.emitError("missing-whitespace-before-doctype-public-identifier")
			empty := []rune{}
			t.currentDoctypePublic = &empty
			t.state = DOCTYPEPublicIdentifierDoubleQuotedState
			return
		case '\'':
			t.emitError("missing-whitespace-before-doctype-public-identifier")
			empty := []rune{}
			t.currentDoctypePublic = &empty
			t.state = DOCTYPEPublicIdentifierSingleQuotedState
			return
		case '>':
			t.emitError("missing-doctype-public-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		default:
			t.emitError("unexpected-character-after-doctype-public-keyword")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

//nolint:dupl // stateAfterDoctypePublicKeyword and stateAfterDoctypeSystemKeyword follow same HTML5 spec pattern
func (t *Tokenizer) stateAfterDoctypeSystemKeyword() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("missing-quote-before-doctype-system-identifier", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.state = BeforeDOCTYPESystemIdentifierState
			return
		case '"':
			t.emitError("missing-whitespace-after-doctype-public-identifier")
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierDoubleQuotedState
			return
		case '\'':
			t.emitError("missing-whitespace-after-doctype-public-identifier")
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierSingleQuotedState
			return
		case '>':
			t.emitError("missing-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		default:
			t.emitError("unexpected-character-after-doctype-system-keyword")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateBeforeDoctypePublicIdentifier() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '"':
			empty := []rune{}
			t.currentDoctypePublic = &empty
			t.state = DOCTYPEPublicIdentifierDoubleQuotedState
			return
		case '\'':
			empty := []rune{}
			t.currentDoctypePublic = &empty
			t.state = DOCTYPEPublicIdentifierSingleQuotedState
			return
		case '>':
			t.emitError("missing-doctype-public-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		default:
			t.emitError("missing-quote-before-doctype-public-identifier")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateDoctypePublicIdentifierDoubleQuoted() {
	t.doctypeIdentifierQuoted('"', &t.currentDoctypePublic, AfterDOCTYPEPublicIdentifierState, "abrupt-doctype-public-identifier")
}

func (t *Tokenizer) stateDoctypePublicIdentifierSingleQuoted() {
	t.doctypeIdentifierQuoted('\'', &t.currentDoctypePublic, AfterDOCTYPEPublicIdentifierState, "abrupt-doctype-public-identifier")
}

func (t *Tokenizer) stateAfterDoctypePublicIdentifier() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			t.state = BetweenDOCTYPEPublicAndSystemIdentifiersState
			return
		case '>':
			t.emitDoctype()
			t.state = DataState
			return
		case '"':
			t.emitError("missing-whitespace-between-doctype-public-and-system-identifiers")
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierDoubleQuotedState
			return
		case '\'':
			t.emitError("missing-whitespace-between-doctype-public-and-system-identifiers")
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierSingleQuotedState
			return
		default:
			t.emitError("missing-quote-before-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateBetweenDoctypePublicAndSystemIdentifiers() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '>':
			t.emitDoctype()
			t.state = DataState
			return
		case '"':
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierDoubleQuotedState
			return
		case '\'':
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierSingleQuotedState
			return
		default:
			t.emitError("missing-quote-before-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateBeforeDoctypeSystemIdentifier() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '"':
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierDoubleQuotedState
			return
		case '\'':
			empty := []rune{}
			t.currentDoctypeSystem = &empty
			t.state = DOCTYPESystemIdentifierSingleQuotedState
			return
		case '>':
			t.emitError("missing-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
			t.state = DataState
			return
		default:
			t.emitError("missing-quote-before-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateDoctypeSystemIdentifierDoubleQuoted() {
	t.doctypeIdentifierQuoted('"', &t.currentDoctypeSystem, AfterDOCTYPESystemIdentifierState, "abrupt-doctype-system-identifier")
}

func (t *Tokenizer) stateDoctypeSystemIdentifierSingleQuoted() {
	t.doctypeIdentifierQuoted('\'', &t.currentDoctypeSystem, AfterDOCTYPESystemIdentifierState, "abrupt-doctype-system-identifier")
}

func (t *Tokenizer) stateAfterDoctypeSystemIdentifier() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("eof-in-doctype", true)
			return
		}
		switch c {
		case '\t', '\n', '\f', ' ':
			continue
		case '>':
			t.emitDoctype()
			t.state = DataState
			return
		default:
			t.emitError("unexpected-character-after-doctype-system-identifier")
			t.reconsumeCurrent()
			t.state = BogusDOCTYPEState
			return
		}
	}
}

func (t *Tokenizer) stateBogusDoctype() {
	for {
		c, ok := t.getChar()
		if !ok {
			t.eofInDoctype("", false)
			return
		}
		if c == '>' {
			t.emitDoctype()
			t.state = DataState
			return
		}
	}
}

func (t *Tokenizer) stateCDATASection() {
	t.textMode = CDATASectionState
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-in-cdata")
		t.emitEOF()
		return
	}
	if c == ']' {
		t.state = CDATASectionBracketState
		return
	}
	t.appendTextRune(c)
}

func (t *Tokenizer) stateCDATASectionBracket() {
	c, ok := t.getChar()
	if !ok {
		t.emitError("eof-in-cdata")
		t.appendTextRune(']')
		t.emitEOF()
		return
	}
	if c == ']' {
		t.state = CDATASectionEndState
		return
	}
	t.appendTextRune(']')
	t.reconsumeCurrent()
	t.state = CDATASectionState
}

func (t *Tokenizer) stateCDATASectionEnd() {
	c, ok := t.getChar()
	if ok && c == '>' {
		t.flushText()
		t.state = DataState
		return
	}
	t.appendTextRune(']')
	if !ok {
		t.appendTextRune(']')
		t.emitError("eof-in-cdata")
		t.emitEOF()
		return
	}
	if c == ']' {
		return
	}
	t.appendTextRune(']')
	t.reconsumeCurrent()
	t.state = CDATASectionState
}

// rawtextFallbackState returns the state RAWTEXT's "<" handling family
// resumes in when a candidate end tag doesn't pan out: script-data if the
// element that opened this run was <script>, plain RAWTEXT otherwise.
func (t *Tokenizer) rawtextFallbackState() State {
	if t.rawtextTagName == "script" {
		return ScriptDataState
	}
	return RAWTEXTState
}

// appendUnmatchedEndTag writes "</" followed by the original-cased
// candidate tag name back into the text buffer, used whenever an
// RCDATA/RAWTEXT/script-data end-tag-name state's accumulated name turns
// out not to match the element that opened the current run.
func (t *Tokenizer) appendUnmatchedEndTag() {
	t.appendTextRuneAt('<', t.tagStart)
	t.appendTextRune('/')
	for _, r := range t.originalTagName {
		t.appendTextRune(r)
	}
	t.currentTagName = t.currentTagName[:0]
	t.originalTagName = t.originalTagName[:0]
}

// matchRawtextEndTag is the shared body of the RCDATA/RAWTEXT/script-data
// end-tag-name states once the candidate name is fully accumulated: it
// confirms the name matches the element that opened the current text run
// and, if so, dispatches on the following character (">", whitespace, "/")
// to the matching end-tag continuation. Returns false if the name doesn't
// match or c isn't one of those three, leaving the caller to fall back to
// treating the candidate as ordinary text.
//
// resetRawtextTagName controls whether a ">" match clears rawtextTagName:
// the plain RCDATA/RAWTEXT close path does, since it's the only way out of
// that run; the script-data-escaped close path leaves it alone, since a
// "</script>" reachable from the escaped sub-states can only occur with
// rawtextTagName already "script" and no further state depends on clearing it.
func (t *Tokenizer) matchRawtextEndTag(c rune, ok bool, tagName string, resetRawtextTagName bool) bool {
	if tagName != t.rawtextTagName || !ok {
		return false
	}
	switch c {
	case '>':
		t.flushText()
		t.emit(Token{Type: EndTag, Name: tagName})
		t.state = DataState
		if resetRawtextTagName {
			t.rawtextTagName = ""
		}
		t.currentTagName = t.currentTagName[:0]
		t.originalTagName = t.originalTagName[:0]
		return true
	case ' ', '\t', '\n', '\r', '\f':
		t.flushText()
		t.currentTagKind = EndTag
		t.currentTagName = []rune(tagName)
		t.currentTagAttrs = t.currentTagAttrs[:0]
		putAttrMap(t.currentTagAttrIndex)
		t.currentTagAttrIndex = getAttrMap()
		t.state = BeforeAttributeNameState
		return true
	case '/':
		t.flushText()
		t.currentTagKind = EndTag
		t.currentTagName = []rune(tagName)
		t.currentTagAttrs = t.currentTagAttrs[:0]
		putAttrMap(t.currentTagAttrIndex)
		t.currentTagAttrIndex = getAttrMap()
		t.state = SelfClosingStartTagState
		return true
	default:
		return false
	}
}

func (t *Tokenizer) stateRCDATA() {
	t.textMode = RCDATAState
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitEOF()
			return
		}
		switch c {
		case '<':
			t.tagStart = t.lastCharPos
			t.state = RCDATALessThanSignState
			return
		case 0:
			t.emitError("unexpected-null-character")
			t.appendTextRune(unicode.ReplacementChar)
		default:
			t.appendTextRune(c)
		}
	}
}

func (t *Tokenizer) stateRCDATALessThanSign() {
	c, ok := t.getChar()
	if ok && c == '/' {
		t.currentTagName = t.currentTagName[:0]
		t.originalTagName = t.originalTagName[:0]
		t.state = RCDATAEndTagOpenState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	if ok {
		t.reconsumeCurrent()
	}
	t.state = RCDATAState
}

func (t *Tokenizer) stateRCDATAEndTagOpen() {
	c, ok := t.getChar()
	if ok && (constants.IsASCIIAlpha(c)) {
		t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
		t.originalTagName = append(t.originalTagName, c)
		t.state = RCDATAEndTagNameState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	t.appendTextRune('/')
	if ok {
		t.reconsumeCurrent()
	}
	t.state = RCDATAState
}

func (t *Tokenizer) stateRCDATAEndTagName() {
	for {
		c, ok := t.getChar()
		if ok && (constants.IsASCIIAlpha(c)) {
			t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
			t.originalTagName = append(t.originalTagName, c)
			continue
		}
		if t.matchRawtextEndTag(c, ok, string(t.currentTagName), true) {
			return
		}
		t.appendUnmatchedEndTag()
		if ok {
			t.reconsumeCurrent()
		}
		t.state = RCDATAState
		return
	}
}

func (t *Tokenizer) stateRAWTEXT() {
	t.textMode = RAWTEXTState
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitEOF()
			return
		}
		if c == '<' {
			// Script special-cases for "<!--" starting escape.
			if t.rawtextTagName == "script" {
				n1, ok1 := t.peek(0)
				n2, ok2 := t.peek(1)
				n3, ok3 := t.peek(2)
				if ok1 && ok2 && ok3 && n1 == '!' && n2 == '-' && n3 == '-' {
					t.appendTextRune('<')
					t.appendTextRune('!')
					t.appendTextRune('-')
					t.appendTextRune('-')
					_, _ = t.getChar()
					_, _ = t.getChar()
					_, _ = t.getChar()
					t.state = ScriptDataEscapedState
					return
				}
			}
			t.tagStart = t.lastCharPos
			t.state = RAWTEXTLessThanSignState
			return
		}
		if c == 0 {
			t.emitError("unexpected-null-character")
			t.appendTextRune(unicode.ReplacementChar)
			continue
		}
		t.appendTextRune(c)
	}
}

func (t *Tokenizer) stateRAWTEXTLessThanSign() {
	c, ok := t.getChar()
	if ok && c == '/' {
		t.currentTagName = t.currentTagName[:0]
		t.originalTagName = t.originalTagName[:0]
		t.state = RAWTEXTEndTagOpenState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	if ok {
		t.reconsumeCurrent()
	}
	t.state = t.rawtextFallbackState()
}

func (t *Tokenizer) stateRAWTEXTEndTagOpen() {
	c, ok := t.getChar()
	if ok && (constants.IsASCIIAlpha(c)) {
		t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
		t.originalTagName = append(t.originalTagName, c)
		t.state = RAWTEXTEndTagNameState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	t.appendTextRune('/')
	if ok {
		t.reconsumeCurrent()
	}
	t.state = t.rawtextFallbackState()
}

func (t *Tokenizer) stateRAWTEXTEndTagName() {
	for {
		c, ok := t.getChar()
		if ok && (constants.IsASCIIAlpha(c)) {
			t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
			t.originalTagName = append(t.originalTagName, c)
			continue
		}
		if t.matchRawtextEndTag(c, ok, string(t.currentTagName), true) {
			return
		}
		t.appendUnmatchedEndTag()
		if !ok {
			t.emitEOF()
			return
		}
		t.reconsumeCurrent()
		t.state = t.rawtextFallbackState()
		return
	}
}

func (t *Tokenizer) statePLAINTEXT() {
	t.textMode = PLAINTEXTState
	for {
		c, ok := t.getChar()
		if !ok {
			t.emitEOF()
			return
		}
		if c == 0 {
			t.emitError("unexpected-null-character")
			t.appendTextRune(unicode.ReplacementChar)
			continue
		}
		t.appendTextRune(c)
	}
}

func (t *Tokenizer) stateScriptDataEscaped() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
		t.state = ScriptDataEscapedDashState
	case '<':
		t.tagStart = t.lastCharPos
		t.state = ScriptDataEscapedLessThanSignState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
	default:
		t.appendTextRune(c)
	}
}

func (t *Tokenizer) stateScriptDataEscapedDash() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
		t.state = ScriptDataEscapedDashDashState
	case '<':
		t.tagStart = t.lastCharPos
		t.state = ScriptDataEscapedLessThanSignState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
		t.state = ScriptDataEscapedState
	default:
		t.appendTextRune(c)
		t.state = ScriptDataEscapedState
	}
}

func (t *Tokenizer) stateScriptDataEscapedDashDash() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
	case '<':
		t.tagStart = t.lastCharPos
		t.appendTextRune('<')
		t.state = ScriptDataEscapedLessThanSignState
	case '>':
		t.appendTextRune('>')
		t.state = ScriptDataState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
		t.state = ScriptDataEscapedState
	default:
		t.appendTextRune(c)
		t.state = ScriptDataEscapedState
	}
}

func (t *Tokenizer) stateScriptDataEscapedLessThanSign() {
	c, ok := t.getChar()
	if ok && c == '/' {
		t.tempBuffer = t.tempBuffer[:0]
		t.state = ScriptDataEscapedEndTagOpenState
		return
	}
	if ok && unicode.IsLetter(c) {
		t.tempBuffer = t.tempBuffer[:0]
		t.appendTextRuneAt('<', t.tagStart)
		t.appendTextRune(c)
		t.tempBuffer = append(t.tempBuffer, unicode.ToLower(c))
		t.state = ScriptDataDoubleEscapeStartState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	if ok {
		t.reconsumeCurrent()
	}
	t.state = ScriptDataEscapedState
}

func (t *Tokenizer) stateScriptDataEscapedEndTagOpen() {
	c, ok := t.getChar()
	if ok && unicode.IsLetter(c) {
		t.currentTagName = t.currentTagName[:0]
		t.originalTagName = t.originalTagName[:0]
		t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
		t.originalTagName = append(t.originalTagName, c)
		t.state = ScriptDataEscapedEndTagNameState
		return
	}
	t.appendTextRuneAt('<', t.tagStart)
	t.appendTextRune('/')
	if ok {
		t.reconsumeCurrent()
	}
	t.state = ScriptDataEscapedState
}

func (t *Tokenizer) stateScriptDataEscapedEndTagName() {
	for {
		c, ok := t.getChar()
		if ok && unicode.IsLetter(c) {
			t.currentTagName = append(t.currentTagName, unicode.ToLower(c))
			t.originalTagName = append(t.originalTagName, c)
			continue
		}
		if t.matchRawtextEndTag(c, ok, string(t.currentTagName), false) {
			return
		}
		t.appendUnmatchedEndTag()
		if ok {
			t.reconsumeCurrent()
		}
		t.state = ScriptDataEscapedState
		return
	}
}

func (t *Tokenizer) stateScriptDataDoubleEscapeStart() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	if unicode.IsLetter(c) {
		t.tempBuffer = append(t.tempBuffer, unicode.ToLower(c))
		t.appendTextRune(c)
		return
	}

	temp := strings.ToLower(string(t.tempBuffer))
	if temp == "script" {
		if ok && (c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '/' || c == '>') {
			t.state = ScriptDataDoubleEscapedState
		} else {
			t.state = ScriptDataEscapedState
		}
	} else {
		t.state = ScriptDataEscapedState
	}
	if ok {
		t.reconsumeCurrent()
	}
}

func (t *Tokenizer) stateScriptDataDoubleEscaped() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
		t.state = ScriptDataDoubleEscapedDashState
	case '<':
		t.appendTextRune('<')
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
	default:
		t.appendTextRune(c)
	}
}

func (t *Tokenizer) stateScriptDataDoubleEscapedDash() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
		t.state = ScriptDataDoubleEscapedDashDashState
	case '<':
		t.appendTextRune('<')
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
		t.state = ScriptDataDoubleEscapedState
	default:
		t.appendTextRune(c)
		t.state = ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stateScriptDataDoubleEscapedDashDash() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	switch c {
	case '-':
		t.appendTextRune('-')
	case '<':
		t.appendTextRune('<')
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case '>':
		t.appendTextRune('>')
		t.state = ScriptDataState
	case 0:
		t.emitError("unexpected-null-character")
		t.appendTextRune(unicode.ReplacementChar)
		t.state = ScriptDataDoubleEscapedState
	default:
		t.appendTextRune(c)
		t.state = ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stateScriptDataDoubleEscapedLessThanSign() {
	c, ok := t.getChar()
	if ok && c == '/' {
		t.tempBuffer = t.tempBuffer[:0]
		t.appendTextRune('/')
		t.state = ScriptDataDoubleEscapeEndState
		return
	}
	if ok {
		t.reconsumeCurrent()
	}
	t.state = ScriptDataDoubleEscapedState
}

func (t *Tokenizer) stateScriptDataDoubleEscapeEnd() {
	c, ok := t.getChar()
	if !ok {
		t.emitEOF()
		return
	}
	if unicode.IsLetter(c) {
		t.tempBuffer = append(t.tempBuffer, unicode.ToLower(c))
		t.appendTextRune(c)
		return
	}
	temp := strings.ToLower(string(t.tempBuffer))
	if temp == "script" {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '/' || c == '>' {
			t.state = ScriptDataEscapedState
		} else {
			t.state = ScriptDataDoubleEscapedState
		}
	} else {
		t.state = ScriptDataDoubleEscapedState
	}
	t.reconsumeCurrent()
}

func coerceTextForXML(text string) string {
	// Fast path for ASCII.
	isASCII := true
	for _, r := range text {
		if r > 0x7f {
			isASCII = false
			break
		}
	}
	if isASCII {
		return strings.ReplaceAll(text, "\f", " ")
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\f' {
			b.WriteRune(' ')
			continue
		}
		// U+FDD0..U+FDEF
		if r >= 0xFDD0 && r <= 0xFDEF {
			b.WriteRune(unicode.ReplacementChar)
			continue
		}
		// U+FFFE/U+FFFF in any plane.
		if r&0xFFFF == 0xFFFE || r&0xFFFF == 0xFFFF {
			b.WriteRune(unicode.ReplacementChar)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func coerceCommentForXML(text string) string {
	return strings.ReplaceAll(text, "--", "- -")
}
