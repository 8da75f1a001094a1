// Command justhtml is a CLI tool for parsing and querying HTML documents.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-html5-parser/html5parser"
	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/serialize"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define flags
	selector := flag.String("selector", "", "CSS selector to filter output")
	selectorShort := flag.String("s", "", "CSS selector to filter output (shorthand)")
	format := flag.String("format", "html", "Output format: html, text, markdown")
	formatShort := flag.String("f", "", "Output format (shorthand)")
	first := flag.Bool("first", false, "Output only first match")
	separator := flag.String("separator", " ", "Separator for text output")
	strip := flag.Bool("strip", true, "Strip whitespace from text")
	pretty := flag.Bool("pretty", true, "Pretty-print HTML output")
	indent := flag.Int("indent", 2, "Indentation size for pretty-print")
	showVersion := flag.Bool("version", false, "Show version")
	versionShort := flag.Bool("v", false, "Show version (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse and query HTML documents.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file    HTML file path or '-' for stdin\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Handle shorthand flags
	if *selectorShort != "" && *selector == "" {
		*selector = *selectorShort
	}
	if *formatShort != "" && *format == "html" {
		*format = *formatShort
	}

	// Show version
	if *showVersion || *versionShort {
		fmt.Printf("justhtml version %s\n", version)
		return nil
	}

	// Get input file
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing input file")
	}

	inputPath := args[0]

	// Read input
	var input []byte
	var err error

	if inputPath == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	// Parse HTML
	doc, err := html5parser.ParseBytes(input)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	var nodes []dom.Node
	if *selector != "" {
		if *first {
			match, err := doc.QueryFirst(*selector)
			if err != nil {
				return fmt.Errorf("selector %q: %w", *selector, err)
			}
			if match != nil {
				nodes = append(nodes, match)
			}
		} else {
			matches, err := doc.Query(*selector)
			if err != nil {
				return fmt.Errorf("selector %q: %w", *selector, err)
			}
			for _, m := range matches {
				nodes = append(nodes, m)
			}
		}
	} else {
		nodes = []dom.Node{doc}
	}

	out := os.Stdout
	for _, node := range nodes {
		switch *format {
		case "markdown", "md":
			fmt.Fprintln(out, serialize.ToMarkdown(node))
		case "text":
			text := nodeText(node)
			if *strip {
				text = strings.TrimSpace(text)
			}
			fmt.Fprint(out, text, *separator)
		default:
			opts := serialize.DefaultOptions()
			opts.Pretty = *pretty
			opts.IndentSize = *indent
			fmt.Fprintln(out, serialize.ToHTML(node, opts))
		}
	}
	if *format == "text" {
		fmt.Fprintln(out)
	}
	return nil
}

func nodeText(node dom.Node) string {
	switch n := node.(type) {
	case *dom.Document:
		root := n.DocumentElement()
		if root == nil {
			return ""
		}
		return root.Text()
	case *dom.Element:
		return n.Text()
	default:
		return ""
	}
}
