package html5parser

import (
	"sort"

	"github.com/go-html5-parser/html5parser/dom"
	htmlerrors "github.com/go-html5-parser/html5parser/errors"
	"github.com/go-html5-parser/html5parser/tokenizer"
	"github.com/go-html5-parser/html5parser/treebuilder"
)

// Output bundles everything one parse produced: the document tree, the
// <html> root shortcut, the ordered diagnostics, and the arena-backed
// allocator that owns every node. Callers that want the tree released
// eagerly call Destroy; the tree is unusable afterwards.
type Output struct {
	// Document is the root of the parse tree; always non-nil.
	Document *dom.Document

	// Root is the document's <html> element (the first element child of
	// Document), or nil for a pathological input with no root.
	Root *dom.Element

	// Errors holds every recorded diagnostic in input order.
	Errors []*htmlerrors.Diagnostic

	// OutOfMemory reports that the node arena failed an allocation
	// mid-parse. The partially built tree is still returned and still safe
	// to Destroy.
	OutOfMemory bool

	// XHTMLRules records the WithXHTMLRules hint; tokenization and tree
	// construction do not consult it.
	XHTMLRules bool

	alloc *dom.NodeAllocator
}

// Destroy releases the arena holding the parse tree. Idempotent; the
// Document and every node reached from it must not be used afterwards.
func (o *Output) Destroy() {
	if o.alloc != nil {
		o.alloc.Destroy()
	}
}

// ParseToOutput parses an HTML string and returns the full parse output:
// document, root element, diagnostics, and the arena handle. Unlike Parse,
// it never signals diagnostics through the error return; they are data on
// the Output.
func ParseToOutput(html string, opts ...Option) *Output {
	cfg := newConfig(opts...)
	tok := tokenizer.NewWithOptions(html, cfg.tokenizerOptions())
	tb := treebuilder.NewWithAllocator(tok, cfg.allocator)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	scanTokens(tok, tb)

	doc := tb.Document()
	return &Output{
		Document:    doc,
		Root:        doc.DocumentElement(),
		Errors:      collectDiagnostics(tok, tb, cfg),
		OutOfMemory: tb.Allocator().OutOfMemory(),
		XHTMLRules:  cfg.xhtmlRules,
		alloc:       tb.Allocator(),
	}
}

// scanTokens drives the tokenizer/tree-builder loop to EOF.
func scanTokens(tok *tokenizer.Tokenizer, tb *treebuilder.TreeBuilder) {
	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}
}

// collectDiagnostics merges the tokenizer's and the tree builder's error
// lists into one offset-ordered diagnostic sequence, applying the
// max-errors cap across the merged whole.
func collectDiagnostics(tok *tokenizer.Tokenizer, tb *treebuilder.TreeBuilder, cfg *config) []*htmlerrors.Diagnostic {
	tokErrs := tok.Errors()
	treeErrs := tb.Errors()
	if len(tokErrs) == 0 && len(treeErrs) == 0 {
		return nil
	}

	out := make([]*htmlerrors.Diagnostic, 0, len(tokErrs)+len(treeErrs))
	for _, e := range tokErrs {
		out = append(out, diagnosticFromTokenizer(e))
	}
	for _, e := range treeErrs {
		out = append(out, diagnosticFromTreeBuilder(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})

	if cfg.strict && len(out) > 1 {
		out = out[:1]
	}
	if cfg.maxErrors > 0 && len(out) > cfg.maxErrors {
		out = out[:cfg.maxErrors]
	}
	return out
}

func diagnosticFromTokenizer(e tokenizer.ParseError) *htmlerrors.Diagnostic {
	d := &htmlerrors.Diagnostic{
		ParseError: htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Line,
			Column:  e.Column,
			Offset:  e.Offset,
		},
		OriginalText: e.OriginalText,
		Codepoint:    e.Codepoint,
		Text:         e.Text,
	}
	if e.Duplicate != nil {
		d.DuplicateAttribute = &htmlerrors.DuplicateAttributeInfo{
			Name:          e.Duplicate.Name,
			FirstLine:     e.Duplicate.FirstPos.Line,
			FirstColumn:   e.Duplicate.FirstPos.Column,
			FirstOffset:   e.Duplicate.FirstPos.Offset,
			OriginalIndex: e.Duplicate.OriginalIndex,
			NewIndex:      e.Duplicate.NewIndex,
		}
	}
	return d
}

func diagnosticFromTreeBuilder(e treebuilder.ParseError) *htmlerrors.Diagnostic {
	return &htmlerrors.Diagnostic{
		ParseError: htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Offset:  e.Pos.Offset,
		},
		Context: &htmlerrors.ParserContext{
			InsertionMode: e.InsertionMode,
			TokenKind:     e.TokenKind,
			TagName:       e.TagName,
			OpenElements:  e.OpenElements,
		},
	}
}
