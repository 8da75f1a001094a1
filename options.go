package html5parser

import (
	"github.com/go-html5-parser/html5parser/internal/arena"
	"github.com/go-html5-parser/html5parser/tokenizer"
	"github.com/go-html5-parser/html5parser/treebuilder"
)

// config holds parser configuration.
type config struct {
	encoding        string
	fragmentContext *treebuilder.FragmentContext
	iframeSrcdoc    bool
	strict          bool
	collectErrors   bool
	xmlCoercion     bool
	tabStop         int
	maxErrors       int
	xhtmlRules      bool
	allocator       arena.Allocator
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// tokenizerOptions translates the public config into the tokenizer's own
// Options, which WithTabStop/WithMaxErrors/WithXMLCoercion/WithStrictMode
// ultimately drive.
func (c *config) tokenizerOptions() tokenizer.Options {
	return tokenizer.Options{
		DiscardBOM:       true,
		XMLCoercion:      c.xmlCoercion,
		TabStop:          c.tabStop,
		StopOnFirstError: c.strict,
		MaxErrors:        c.maxErrors,
	}
}

// Option configures the parser behavior.
type Option func(*config)

// WithEncoding sets the character encoding to use for parsing.
// This overrides automatic encoding detection.
//
// Common values: "utf-8", "windows-1252", "iso-8859-1"
func WithEncoding(enc string) Option {
	return func(c *config) {
		c.encoding = enc
	}
}

// WithFragment sets the parsing context for fragment parsing.
// This is typically used internally by ParseFragment.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: "html",
		}
	}
}

// WithFragmentNS sets the parsing context with a specific namespace.
// Use this for parsing SVG or MathML fragments.
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: namespace,
		}
	}
}

// WithIframeSrcdoc enables iframe srcdoc parsing mode.
// In this mode, the parser treats the input as the srcdoc attribute value.
func WithIframeSrcdoc() Option {
	return func(c *config) {
		c.iframeSrcdoc = true
	}
}

// WithStrictMode enables strict parsing mode.
// In this mode, the first parse error causes Parse to return an error.
// By default, parse errors are handled according to the HTML5 spec
// and parsing continues.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors enables error collection mode.
// Parse errors are collected and returned as a ParseErrors error
// (which can be unwrapped to get individual errors).
// Without this option, parse errors are silently recovered from.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}

// WithXMLCoercion enables the XML output coercions the tokenizer supports:
// form feed becomes a space in text, non-XML characters become U+FFFD, and
// "--" inside comments is split to "- -".
func WithXMLCoercion() Option {
	return func(c *config) {
		c.xmlCoercion = true
	}
}

// WithTabStop sets the column width a TAB advances to when computing
// diagnostic positions. The default matches cursor.DefaultTabStop (8).
func WithTabStop(n int) Option {
	return func(c *config) {
		c.tabStop = n
	}
}

// WithMaxErrors caps the number of parse errors recorded before further
// errors are silently dropped. The default is unlimited.
func WithMaxErrors(n int) Option {
	return func(c *config) {
		c.maxErrors = n
	}
}

// WithXHTMLRules records an XHTML serialization hint on Output.XHTMLRules.
// Tokenization and tree construction do not act on it; use WithXMLCoercion
// for the tokenizer's XML coercions.
func WithXHTMLRules() Option {
	return func(c *config) {
		c.xhtmlRules = true
	}
}

// WithAllocator supplies the arena.Allocator backing the output tree's node
// allocator. The default is a plain heap allocator; pass a custom one to
// plug in a pooled or size-bounded backing store.
func WithAllocator(alloc arena.Allocator) Option {
	return func(c *config) {
		c.allocator = alloc
	}
}
