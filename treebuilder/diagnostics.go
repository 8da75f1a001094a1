package treebuilder

import (
	"github.com/go-html5-parser/html5parser/internal/sourcepos"
	"github.com/go-html5-parser/html5parser/tokenizer"
)

// ParseError is a tree-construction diagnostic: a token arrived that the
// current insertion mode has no conforming rule for. The tree builder
// recovers per the construction algorithm (ignore, fall back, or reparent)
// and records what it saw so callers can report it.
type ParseError struct {
	Code string

	// InsertionMode is the spec label of the mode the token was processed
	// in, e.g. "in body".
	InsertionMode string

	// TokenKind names the offending token's kind ("StartTag", "DOCTYPE", ...).
	TokenKind string

	// TagName is the token's tag or doctype name, when it has one.
	TagName string

	Pos sourcepos.Position

	// OpenElements is a top-of-stack-last snapshot of the open element tag
	// names at the time of the error.
	OpenElements []string
}

// Errors returns the tree-construction diagnostics recorded so far, in the
// order they were raised.
func (tb *TreeBuilder) Errors() []ParseError {
	return tb.errors
}

func (tb *TreeBuilder) parseError(code string, tok tokenizer.Token) {
	snapshot := make([]string, len(tb.openElements))
	for i, el := range tb.openElements {
		snapshot[i] = el.TagName
	}
	tb.errors = append(tb.errors, ParseError{
		Code:          code,
		InsertionMode: tb.mode.String(),
		TokenKind:     tok.Type.String(),
		TagName:       tok.Name,
		Pos:           tok.Pos,
		OpenElements:  snapshot,
	})
}
