// Package errors defines parse errors for the HTML5 parser.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned when a feature is not yet implemented.
var ErrNotImplemented = errors.New("not implemented")

// ParseError represents a single parse error with location information.
type ParseError struct {
	// Code is the error code (e.g., "unexpected-null-character").
	// These codes follow the WHATWG HTML5 specification.
	Code string

	// Message is a human-readable error message.
	Message string

	// Line is the 1-based line number where the error occurred.
	Line int

	// Column is the 1-based column number where the error occurred.
	Column int

	// Offset is the 0-based byte offset where the error occurred.
	Offset int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors is a collection of parse errors.
// It implements the error interface so it can be returned from Parse.
type ParseErrors []*ParseError

// Error implements the error interface.
func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d parse errors:\n", len(e)))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying errors for errors.Is/As support.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// DuplicateAttributeInfo carries the extra context a duplicate-attribute
// diagnostic needs: which attribute, and where the first occurrence was.
type DuplicateAttributeInfo struct {
	Name        string
	FirstLine   int
	FirstColumn int
	FirstOffset int

	// OriginalIndex is the kept first occurrence's position in the tag's
	// attribute sequence; NewIndex is where the dropped repeat would have
	// landed.
	OriginalIndex int
	NewIndex      int
}

// ParserContext identifies the insertion mode, offending token, and
// open-element context a tree-construction diagnostic was raised in.
type ParserContext struct {
	InsertionMode string

	// TokenKind names the offending token's kind ("StartTag", "DOCTYPE", ...),
	// and TagName its tag or doctype name when it has one.
	TokenKind string
	TagName   string

	// OpenElements is a bottom-up snapshot of the open element tag names at
	// the time of the error (the current node last).
	OpenElements []string
}

// Diagnostic generalizes ParseError with a type-tagged payload: at most
// one of Codepoint, Text, DuplicateAttribute, or Context is set, chosen by
// Code.
type Diagnostic struct {
	ParseError

	// OriginalText is the verbatim input text the diagnostic points at,
	// when a meaningful slice exists (the rejected bytes' hex for UTF-8
	// errors, the reference text for character-reference errors).
	OriginalText string

	// Codepoint is set for diagnostics about a single offending rune (e.g.
	// an invalid-codepoint or unexpected-null-character report).
	Codepoint rune

	// Text is set for diagnostics that quote a run of offending source
	// text (e.g. an invalid or truncated UTF-8 sequence).
	Text string

	// DuplicateAttribute is set for "duplicate-attribute" diagnostics.
	DuplicateAttribute *DuplicateAttributeInfo

	// Context is set for tree-construction diagnostics raised while
	// processing a token against a specific insertion mode.
	Context *ParserContext
}

// SelectorError represents an error in CSS selector parsing.
type SelectorError struct {
	// Selector is the original selector string.
	Selector string

	// Position is the character position where the error occurred.
	Position int

	// Message describes the error.
	Message string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at position %d: %s", e.Selector, e.Position, e.Message)
}
