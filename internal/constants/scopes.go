package constants

// The "has an element in scope" family of checks (WHATWG §13.2.4.2) all walk
// the same stack of open elements but stop at different terminator sets.
// commonScopeTerminators is the boundary shared by the default, list item
// and button variants; each adds its own extra stoppers on top.

var foreignScopeTerminators = []string{
	// MathML text integration points
	"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
	// SVG HTML integration points
	"foreignObject", "desc", "title",
}

var commonScopeTerminators = append([]string{
	"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template",
}, foreignScopeTerminators...)

func scopeSet(extra ...string) map[string]bool {
	set := make(map[string]bool, len(commonScopeTerminators)+len(extra))
	for _, tag := range commonScopeTerminators {
		set[tag] = true
	}
	for _, tag := range extra {
		set[tag] = true
	}
	return set
}

func tableFamilyScope(extra ...string) map[string]bool {
	set := map[string]bool{"html": true, "table": true, "template": true}
	for _, tag := range extra {
		set[tag] = true
	}
	return set
}

// DefaultScope is the terminator set for the plain "has an element in
// scope" algorithm used by most end-tag handling.
var DefaultScope = scopeSet()

// ListItemScope additionally stops at ol/ul, for "in list item scope".
var ListItemScope = scopeSet("ol", "ul")

// ButtonScope additionally stops at button, for "in button scope".
var ButtonScope = scopeSet("button")

// DefinitionScope is the terminator set used when closing an open dd/dt
// before a new one opens; it matches the default set (the dd/dt walk's
// "special element" stops are handled by the caller).
var DefinitionScope = scopeSet()

// TableScope is the terminator set for "in table scope".
var TableScope = tableFamilyScope()

// TableBodyScope is the terminator set for "in table body scope".
var TableBodyScope = tableFamilyScope("tbody", "tfoot", "thead")

// TableRowScope is the terminator set for "in table row scope".
var TableRowScope = tableFamilyScope("tbody", "tfoot", "thead", "tr")

// SelectScope lists the only two tags the "in select scope" walk does not
// stop at (it stops at everything else).
var SelectScope = map[string]bool{
	"optgroup": true,
	"option":   true,
}
