package constants

// Interning common tag and attribute names avoids allocating a fresh string
// for every occurrence of "div" or "class" across a large document; the
// tokenizer looks each name up here before falling back to the string it
// already has.

var commonTagList = []string{
	// Document structure
	"html", "head", "body", "title", "meta", "link", "style",
	// Sectioning
	"header", "footer", "nav", "section", "article", "aside", "main",
	// Text content
	"div", "p", "span", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "code",
	// Lists
	"ul", "ol", "li", "dl", "dt", "dd",
	// Tables
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption", "colgroup", "col",
	// Forms
	"form", "input", "button", "select", "option", "textarea", "label", "fieldset", "legend",
	// Media
	"img", "video", "audio", "source", "track", "canvas", "svg",
	// Interactive
	"a", "script", "noscript", "iframe",
	// Text formatting
	"b", "i", "u", "s", "em", "strong", "small", "mark", "del", "ins", "sub", "sup",
	// Other common elements
	"br", "hr", "template", "slot", "base",
}

var commonAttributeList = []string{
	// Global attributes
	"id", "class", "style", "title", "lang", "dir",
	// Data attributes
	"data-id", "data-name", "data-value",
	// Link attributes
	"href", "rel", "target", "type",
	// Media attributes
	"src", "alt", "width", "height",
	// Form attributes
	"name", "value", "placeholder", "disabled", "readonly", "required",
	"checked", "selected", "action", "method", "for",
	// Interactive attributes
	"onclick", "onchange", "onsubmit", "onload", "tabindex", "aria-label", "role",
	// Meta attributes
	"content", "charset", "property",
	// Other common attributes
	"hidden", "data", "download", "enctype", "accept", "autocomplete", "autofocus",
	"maxlength", "minlength", "pattern", "multiple", "size", "min", "max", "step",
	"colspan", "rowspan", "scope", "headers",
}

func internTable(names []string) map[string]string {
	table := make(map[string]string, len(names))
	for _, name := range names {
		table[name] = name
	}
	return table
}

// CommonTagNames maps each frequently used HTML tag name to itself, giving
// InternTagName a canonical string to hand back instead of allocating one.
var CommonTagNames = internTable(commonTagList)

// CommonAttributeNames maps each frequently used HTML attribute name to
// itself, giving InternAttributeName a canonical string to hand back
// instead of allocating one.
var CommonAttributeNames = internTable(commonAttributeList)

// InternTagName returns the canonical string for name if it names a common
// tag, or name unchanged otherwise.
func InternTagName(name string) string {
	if interned, ok := CommonTagNames[name]; ok {
		return interned
	}
	return name
}

// InternAttributeName returns the canonical string for name if it names a
// common attribute, or name unchanged otherwise.
func InternAttributeName(name string) string {
	if interned, ok := CommonAttributeNames[name]; ok {
		return interned
	}
	return name
}
