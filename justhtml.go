// Package html5parser provides a pure Go HTML5 parser implementing the WHATWG HTML5 specification.
//
// html5parser is a complete HTML5 parser that handles malformed HTML exactly as browsers do.
// It passes all 9,000+ tests in the official html5lib-tests suite.
//
// # Basic Usage
//
//	doc, err := html5parser.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Query with CSS selectors
//	ps, _ := doc.Query("p")
//	for _, p := range ps {
//		fmt.Println(p.Text())
//	}
//
// # Features
//
//   - 100% HTML5 compliant (WHATWG Living Standard)
//   - Zero dependencies (Go stdlib only)
//   - CSS selector support
//   - Streaming API for memory-efficient processing
//   - Encoding detection per HTML5 spec
//   - Fragment parsing for innerHTML-style use cases
//
// For more information, see https://github.com/go-html5-parser/html5parser
package html5parser

import (
	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/encoding"
	htmlerrors "github.com/go-html5-parser/html5parser/errors"
	"github.com/go-html5-parser/html5parser/tokenizer"
	"github.com/go-html5-parser/html5parser/treebuilder"
)

// Version is the current version of html5parser.
const Version = "0.1.0-dev"

// Parse parses an HTML string and returns a Document.
//
// The parser handles malformed HTML according to the WHATWG HTML5 specification,
// ensuring the same behavior as web browsers.
//
// Example:
//
//	doc, err := html5parser.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		// err contains parse errors if WithCollectErrors() was used
//	}
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	return parse(html, cfg)
}

// ParseBytes parses HTML from a byte slice with automatic encoding detection.
//
// The encoding is detected in this order:
//  1. HTTP Content-Type header (if provided via WithEncoding and recognized)
//  2. BOM (Byte Order Mark)
//  3. <meta charset> or <meta http-equiv="Content-Type">
//  4. Fallback to windows-1252
//
// Example:
//
//	data, _ := os.ReadFile("page.html")
//	doc, err := html5parser.ParseBytes(data)
func ParseBytes(html []byte, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)

	// Detect and decode encoding
	decoded, enc, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		return nil, err
	}

	doc, err := parse(decoded, cfg)
	if doc != nil && enc != nil {
		doc.Encoding = enc.Name
	}
	return doc, err
}

// ParseFragment parses an HTML fragment in a specific context element.
//
// This is equivalent to setting element.innerHTML in browsers. The context
// determines how the fragment is parsed (e.g., parsing "<td>" in a "tr" context
// vs. in a "div" context produces different results).
//
// Example:
//
//	nodes, err := html5parser.ParseFragment("<td>Cell</td>", "tr")
func ParseFragment(html string, context string, opts ...Option) ([]*dom.Element, error) {
	cfg := newConfig(opts...)
	cfg.fragmentContext = &treebuilder.FragmentContext{
		TagName:   context,
		Namespace: "html",
	}
	return parseFragment(html, cfg)
}

// parse is the internal parsing implementation.
func parse(html string, cfg *config) (*dom.Document, error) {
	tok := tokenizer.NewWithOptions(html, cfg.tokenizerOptions())
	tb := treebuilder.NewWithAllocator(tok, cfg.allocator)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	scanTokens(tok, tb)

	if err := diagnosticsError(tok, tb, cfg); err != nil {
		if cfg.strict {
			return nil, err
		}
		return tb.Document(), err
	}
	return tb.Document(), nil
}

// parseFragment is the internal fragment parsing implementation.
func parseFragment(html string, cfg *config) ([]*dom.Element, error) {
	tok := tokenizer.NewWithOptions(html, cfg.tokenizerOptions())
	tb := treebuilder.NewFragmentWithAllocator(tok, cfg.fragmentContext, cfg.allocator)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	scanTokens(tok, tb)

	if err := diagnosticsError(tok, tb, cfg); err != nil {
		if cfg.strict {
			return nil, err
		}
		return tb.FragmentNodes(), err
	}
	return tb.FragmentNodes(), nil
}

// diagnosticsError converts the recorded diagnostics into the error Parse
// returns: the first error alone under WithStrictMode, the whole ordered
// list as a ParseErrors under WithCollectErrors, nil otherwise.
func diagnosticsError(tok *tokenizer.Tokenizer, tb *treebuilder.TreeBuilder, cfg *config) error {
	if !cfg.strict && !cfg.collectErrors {
		return nil
	}
	diags := collectDiagnostics(tok, tb, cfg)
	if len(diags) == 0 {
		return nil
	}
	if cfg.strict {
		return &diags[0].ParseError
	}
	errs := make(htmlerrors.ParseErrors, len(diags))
	for i, d := range diags {
		errs[i] = &d.ParseError
	}
	return errs
}
