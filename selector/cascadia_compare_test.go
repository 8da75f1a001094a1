package selector_test

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/go-html5-parser/html5parser"
	"github.com/go-html5-parser/html5parser/selector"
)

const compareDoc = `<!DOCTYPE html>
<html>
<head><title>Compare</title></head>
<body>
<div id="main" class="container">
	<p class="intro">First</p>
	<p>Second</p>
	<ul>
		<li class="item">One</li>
		<li class="item active">Two</li>
		<li>Three</li>
	</ul>
	<a href="/home">Home</a>
	<a href="/about" rel="external">About</a>
</div>
<footer><p class="intro fine">Fin</p></footer>
</body>
</html>`

// countCascadia selects against a golang.org/x/net/html parse using
// cascadia, the reference CSS selector implementation.
func countCascadia(t *testing.T, sel string) int {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(compareDoc))
	if err != nil {
		t.Fatalf("net/html parse: %v", err)
	}
	matcher, err := cascadia.Parse(sel)
	if err != nil {
		t.Fatalf("cascadia.Parse(%q): %v", sel, err)
	}
	return len(cascadia.QueryAll(doc, matcher))
}

// TestMatchAgreesWithCascadia runs the same selectors through this
// package's matcher and through cascadia over equivalent parses, and
// requires identical match counts.
func TestMatchAgreesWithCascadia(t *testing.T) {
	selectors := []string{
		"p",
		"div p",
		"#main",
		".intro",
		".item.active",
		"ul > li",
		"p.intro",
		"a[rel]",
		"a[href='/home']",
		"li:first-child",
		"div, footer",
	}

	doc, err := html5parser.Parse(compareDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.DocumentElement()
	if root == nil {
		t.Fatal("no root element")
	}

	for _, sel := range selectors {
		t.Run(sel, func(t *testing.T) {
			ours, err := selector.Match(root, sel)
			if err != nil {
				t.Fatalf("Match(%q): %v", sel, err)
			}
			want := countCascadia(t, sel)
			if len(ours) != want {
				t.Errorf("Match(%q) found %d elements, cascadia found %d", sel, len(ours), want)
			}
		})
	}
}
