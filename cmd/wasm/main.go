//go:build js && wasm

// Package main exposes html5parser to JavaScript hosts through a global
// html5parser object bound via syscall/js.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/go-html5-parser/html5parser"
	"github.com/go-html5-parser/html5parser/dom"
	_ "github.com/go-html5-parser/html5parser/selector" // registers CSS selector support on dom.Element
	"github.com/go-html5-parser/html5parser/serialize"
	"github.com/go-html5-parser/html5parser/tokenizer"
)

// bindings lists every function exported on the JS-side html5parser object.
// Declaring them as a table rather than a string of js.Global().Set calls
// keeps main's job down to "wire the table up".
var bindings = map[string]func(js.Value, []js.Value) any{
	"parse":         parse,
	"parseFragment": parseFragment,
	"tokenize":      tokenize,
	"query":         query,
}

func main() {
	exports := map[string]any{"version": js.ValueOf(html5parser.Version)}
	for name, fn := range bindings {
		exports[name] = js.FuncOf(fn)
	}
	js.Global().Set("html5parser", js.ValueOf(exports))

	select {} // keep the wasm instance alive for callbacks
}

// renderOptions controls how a parsed tree is turned into a JS value.
type renderOptions struct {
	Format string // "html" | "text" | "tree"
	Pretty bool
}

func defaultRenderOptions() renderOptions {
	return renderOptions{Format: "html"}
}

func renderOptionsFrom(v js.Value) renderOptions {
	opts := defaultRenderOptions()
	if v.IsUndefined() || v.IsNull() {
		return opts
	}
	if format := v.Get("format"); !format.IsUndefined() {
		opts.Format = format.String()
	}
	if pretty := v.Get("pretty"); !pretty.IsUndefined() {
		opts.Pretty = pretty.Bool()
	}
	return opts
}

// parse parses an HTML document and returns it in the requested format.
// Arguments: html (string), options ({format, pretty}).
func parse(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("parse requires an HTML string argument")
	}
	opts := defaultRenderOptions()
	if len(args) > 1 {
		opts = renderOptionsFrom(args[1])
	}

	doc, err := html5parser.Parse(args[0].String())
	if err != nil {
		return errorResult("parse error: " + err.Error())
	}
	return renderDocument(doc, opts)
}

// parseFragment parses an HTML fragment under a given context element name.
// Arguments: html (string), context (string), options ({format, pretty}).
func parseFragment(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorResult("parseFragment requires html and context arguments")
	}
	opts := defaultRenderOptions()
	if len(args) > 2 {
		opts = renderOptionsFrom(args[2])
	}

	nodes, err := html5parser.ParseFragment(args[0].String(), args[1].String())
	if err != nil {
		return errorResult("parse error: " + err.Error())
	}
	return renderFragment(nodes, opts)
}

// tokenize runs only the tokenizer and returns its token stream.
// Arguments: html (string).
func tokenize(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("tokenize requires an HTML string argument")
	}

	tok := tokenizer.New(args[0].String())
	var tokens []map[string]any
	for {
		tt := tok.Next()
		tokens = append(tokens, renderToken(&tt))
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	return toJSON(map[string]any{
		"success": true,
		"tokens":  tokens,
		"errors":  renderParseErrors(tok.Errors()),
	})
}

// query parses HTML and runs a CSS selector against the resulting tree.
// Arguments: html (string), selector (string), options ({format, pretty}).
func query(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorResult("query requires html and selector arguments")
	}
	selectorStr := args[1].String()
	if selectorStr == "" {
		return errorResult("selector cannot be empty")
	}
	opts := renderOptions{Format: "html", Pretty: true}
	if len(args) > 2 {
		opts = renderOptionsFrom(args[2])
	}

	doc, err := html5parser.Parse(args[0].String())
	if err != nil {
		return errorResult("parse error: " + err.Error())
	}
	matches, err := doc.Query(selectorStr)
	if err != nil {
		return errorResult("selector error: " + err.Error())
	}

	results := make([]map[string]any, 0, len(matches))
	for i, elem := range matches {
		results = append(results, map[string]any{
			"index":   i,
			"tagName": elem.TagName,
			"html":    renderElementString(elem, opts),
			"tree":    nodeToTree(elem),
		})
	}
	return toJSON(map[string]any{
		"success": true,
		"count":   len(matches),
		"matches": results,
	})
}

func renderElementString(elem *dom.Element, opts renderOptions) string {
	if opts.Format == "text" {
		return collectText(elem.Children())
	}
	return serialize.ToHTML(elem, serialize.Options{Pretty: opts.Pretty, IndentSize: 2})
}

func renderDocument(doc *dom.Document, opts renderOptions) any {
	switch opts.Format {
	case "tree":
		return toJSON(map[string]any{"success": true, "tree": nodeToTree(doc)})
	case "text":
		return toJSON(map[string]any{"success": true, "result": collectText(doc.Children())})
	default:
		return toJSON(map[string]any{
			"success": true,
			"result":  serialize.ToHTML(doc, serialize.Options{Pretty: opts.Pretty, IndentSize: 2}),
		})
	}
}

func renderFragment(nodes []*dom.Element, opts renderOptions) any {
	results := make([]string, 0, len(nodes))
	for _, node := range nodes {
		results = append(results, renderElementString(node, opts))
	}
	return toJSON(map[string]any{"success": true, "results": results})
}

func errorResult(msg string) any {
	return toJSON(map[string]any{"success": false, "error": msg})
}

func toJSON(v map[string]any) any {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]any{"success": false, "error": "JSON encoding error: " + err.Error()})
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

func renderToken(t *tokenizer.Token) map[string]any {
	result := map[string]any{"type": t.Type.String()}

	switch t.Type {
	case tokenizer.DOCTYPE:
		result["name"] = t.Name
		if t.PublicID != nil {
			result["publicId"] = *t.PublicID
		}
		if t.SystemID != nil {
			result["systemId"] = *t.SystemID
		}
		result["forceQuirks"] = t.ForceQuirks
	case tokenizer.StartTag, tokenizer.EndTag:
		result["name"] = t.Name
		result["selfClosing"] = t.SelfClosing
		if len(t.Attrs) > 0 {
			result["attributes"] = tokenizer.AttrsToMap(t.Attrs)
		}
	case tokenizer.Comment, tokenizer.Character:
		result["data"] = t.Data
	}
	return result
}

func renderParseErrors(errs []tokenizer.ParseError) []map[string]any {
	if len(errs) == 0 {
		return nil
	}
	result := make([]map[string]any, len(errs))
	for i, e := range errs {
		result[i] = map[string]any{"code": e.Code, "line": e.Line, "column": e.Column}
	}
	return result
}

func collectText(nodes []dom.Node) string {
	var buf []byte
	for _, n := range nodes {
		appendText(&buf, n)
	}
	return string(buf)
}

func appendText(buf *[]byte, node dom.Node) {
	switch n := node.(type) {
	case *dom.Text:
		*buf = append(*buf, n.Data...)
	case *dom.Element:
		for _, child := range n.Children() {
			appendText(buf, child)
		}
	case *dom.Document:
		for _, child := range n.Children() {
			appendText(buf, child)
		}
	}
}

func nodeToTree(node dom.Node) map[string]any {
	switch n := node.(type) {
	case *dom.Document:
		return map[string]any{"type": "document", "children": childTrees(n.Children())}
	case *dom.DocumentType:
		return map[string]any{"type": "doctype", "name": n.Name, "publicId": n.PublicID, "systemId": n.SystemID}
	case *dom.Element:
		attrs := make(map[string]string)
		for _, attr := range n.Attributes.All() {
			attrs[attr.Name] = attr.Value
		}
		return map[string]any{
			"type":       "element",
			"tagName":    n.TagName,
			"namespace":  n.Namespace,
			"attributes": attrs,
			"children":   childTrees(n.Children()),
		}
	case *dom.Text:
		return map[string]any{"type": "text", "data": n.Data}
	case *dom.Comment:
		return map[string]any{"type": "comment", "data": n.Data}
	default:
		return map[string]any{"type": "unknown"}
	}
}

func childTrees(nodes []dom.Node) []map[string]any {
	trees := make([]map[string]any, 0, len(nodes))
	for _, child := range nodes {
		trees = append(trees, nodeToTree(child))
	}
	return trees
}
