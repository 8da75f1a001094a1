// Package constants defines HTML5 specification constants.
package constants

// ForeignAttribute is the namespace/local-name/URL triple an attribute name
// is rewritten into when found on a foreign (SVG/MathML) element.
type ForeignAttribute struct {
	Prefix       string
	LocalName    string
	NamespaceURL string
}

func tagSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}

// VoidElements never take a closing tag.
var VoidElements = tagSet(
	"area", "base", "br", "col", "embed", "hr", "img",
	"input", "keygen", "link", "meta", "param", "source", "track", "wbr",
)

// RawTextElements parse their content as raw text, with no markup or
// character reference recognition.
var RawTextElements = tagSet("script", "style")

// EscapableRawTextElements parse their content as raw text but still
// recognize character references.
var EscapableRawTextElements = tagSet("textarea", "title")

// SpecialElements affect the stack of open elements during tree
// construction, per the tree construction algorithm's definition of
// "special".
var SpecialElements = tagSet(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "body", "br", "button", "caption", "center",
	"col", "colgroup", "dd", "details", "dialog", "dir", "div", "dl", "dt",
	"embed", "fieldset", "figcaption", "figure", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
	"link", "listing", "main", "marquee", "menu", "menuitem", "meta",
	"nav", "noembed", "noframes", "noscript", "object", "ol", "p", "param",
	"plaintext", "pre", "script", "search", "section", "select", "source",
	"style", "summary", "table", "tbody", "td", "template", "textarea",
	"tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr",
)

// FormattingElements are subject to the active formatting elements list and
// the adoption agency algorithm.
var FormattingElements = tagSet(
	"a", "b", "big", "code", "em", "font", "i", "nobr",
	"s", "small", "strike", "strong", "tt", "u",
)

// TableFosterTargets are the table-structure elements whose presence on the
// stack of open elements triggers foster parenting of misplaced content.
var TableFosterTargets = tagSet("table", "tbody", "tfoot", "thead", "tr")

// TableAllowedChildren may appear as a direct child of a table element
// without being foster-parented out of it.
var TableAllowedChildren = tagSet(
	"caption", "colgroup", "tbody", "tfoot", "thead",
	"tr", "td", "th", "script", "template", "style",
)

// ImpliedEndTagElements are popped automatically by "generate implied end
// tags" when another element needs to be inserted in their place.
var ImpliedEndTagElements = tagSet(
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
)

// ThoroughlyImpliedEndTagElements extends ImpliedEndTagElements with the
// table-section elements popped by "generate implied end tags, thoroughly".
var ThoroughlyImpliedEndTagElements = tagSet(
	"caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
	"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
)

// caseAdjustment is one row of an html-lowercase -> spec-case rewrite table.
type caseAdjustment struct {
	lower   string
	correct string
}

func caseAdjustmentTable(rows []caseAdjustment) map[string]string {
	table := make(map[string]string, len(rows))
	for _, row := range rows {
		table[row.lower] = row.correct
	}
	return table
}

// SVGTagNameAdjustments maps the all-lowercase spelling a tokenizer
// produces for an SVG tag name back to its mixed-case spec spelling
// (WHATWG §13.2.6.5).
var SVGTagNameAdjustments = caseAdjustmentTable([]caseAdjustment{
	{"altglyph", "altGlyph"},
	{"altglyphdef", "altGlyphDef"},
	{"altglyphitem", "altGlyphItem"},
	{"animatecolor", "animateColor"},
	{"animatemotion", "animateMotion"},
	{"animatetransform", "animateTransform"},
	{"clippath", "clipPath"},
	{"feblend", "feBlend"},
	{"fecolormatrix", "feColorMatrix"},
	{"fecomponenttransfer", "feComponentTransfer"},
	{"fecomposite", "feComposite"},
	{"feconvolvematrix", "feConvolveMatrix"},
	{"fediffuselighting", "feDiffuseLighting"},
	{"fedisplacementmap", "feDisplacementMap"},
	{"fedistantlight", "feDistantLight"},
	{"feflood", "feFlood"},
	{"fefunca", "feFuncA"},
	{"fefuncb", "feFuncB"},
	{"fefuncg", "feFuncG"},
	{"fefuncr", "feFuncR"},
	{"fegaussianblur", "feGaussianBlur"},
	{"feimage", "feImage"},
	{"femerge", "feMerge"},
	{"femergenode", "feMergeNode"},
	{"femorphology", "feMorphology"},
	{"feoffset", "feOffset"},
	{"fepointlight", "fePointLight"},
	{"fespecularlighting", "feSpecularLighting"},
	{"fespotlight", "feSpotLight"},
	{"fetile", "feTile"},
	{"feturbulence", "feTurbulence"},
	{"foreignobject", "foreignObject"},
	{"glyphref", "glyphRef"},
	{"lineargradient", "linearGradient"},
	{"radialgradient", "radialGradient"},
	{"textpath", "textPath"},
})

// SVGAttributeAdjustments maps an all-lowercase SVG attribute name to its
// mixed-case spec spelling (WHATWG §13.2.6.5).
var SVGAttributeAdjustments = caseAdjustmentTable([]caseAdjustment{
	{"attributename", "attributeName"},
	{"attributetype", "attributeType"},
	{"basefrequency", "baseFrequency"},
	{"baseprofile", "baseProfile"},
	{"calcmode", "calcMode"},
	{"clippathunits", "clipPathUnits"},
	{"diffuseconstant", "diffuseConstant"},
	{"edgemode", "edgeMode"},
	{"filterunits", "filterUnits"},
	{"glyphref", "glyphRef"},
	{"gradienttransform", "gradientTransform"},
	{"gradientunits", "gradientUnits"},
	{"kernelmatrix", "kernelMatrix"},
	{"kernelunitlength", "kernelUnitLength"},
	{"keypoints", "keyPoints"},
	{"keysplines", "keySplines"},
	{"keytimes", "keyTimes"},
	{"lengthadjust", "lengthAdjust"},
	{"limitingconeangle", "limitingConeAngle"},
	{"markerheight", "markerHeight"},
	{"markerunits", "markerUnits"},
	{"markerwidth", "markerWidth"},
	{"maskcontentunits", "maskContentUnits"},
	{"maskunits", "maskUnits"},
	{"numoctaves", "numOctaves"},
	{"pathlength", "pathLength"},
	{"patterncontentunits", "patternContentUnits"},
	{"patterntransform", "patternTransform"},
	{"patternunits", "patternUnits"},
	{"pointsatx", "pointsAtX"},
	{"pointsaty", "pointsAtY"},
	{"pointsatz", "pointsAtZ"},
	{"preservealpha", "preserveAlpha"},
	{"preserveaspectratio", "preserveAspectRatio"},
	{"primitiveunits", "primitiveUnits"},
	{"refx", "refX"},
	{"refy", "refY"},
	{"repeatcount", "repeatCount"},
	{"repeatdur", "repeatDur"},
	{"requiredextensions", "requiredExtensions"},
	{"requiredfeatures", "requiredFeatures"},
	{"specularconstant", "specularConstant"},
	{"specularexponent", "specularExponent"},
	{"spreadmethod", "spreadMethod"},
	{"startoffset", "startOffset"},
	{"stddeviation", "stdDeviation"},
	{"stitchtiles", "stitchTiles"},
	{"surfacescale", "surfaceScale"},
	{"systemlanguage", "systemLanguage"},
	{"tablevalues", "tableValues"},
	{"targetx", "targetX"},
	{"targety", "targetY"},
	{"textlength", "textLength"},
	{"viewbox", "viewBox"},
	{"viewtarget", "viewTarget"},
	{"xchannelselector", "xChannelSelector"},
	{"ychannelselector", "yChannelSelector"},
	{"zoomandpan", "zoomAndPan"},
})

// MathMLAttributeAdjustments maps an all-lowercase MathML attribute name to
// its mixed-case spec spelling (WHATWG §13.2.6.5).
var MathMLAttributeAdjustments = caseAdjustmentTable([]caseAdjustment{
	{"definitionurl", "definitionURL"},
})

// Namespace URLs used throughout HTML5 parsing.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

func xlinkAttr(local string) ForeignAttribute {
	return ForeignAttribute{Prefix: "xlink", LocalName: local, NamespaceURL: NamespaceXLink}
}

// ForeignAttributeAdjustments maps an attribute name found on a foreign
// element to the prefix/local-name/namespace triple it must be rewritten
// to, per WHATWG §13.2.6.5.
var ForeignAttributeAdjustments = map[string]ForeignAttribute{
	"xlink:actuate": xlinkAttr("actuate"),
	"xlink:arcrole": xlinkAttr("arcrole"),
	"xlink:href":    xlinkAttr("href"),
	"xlink:role":    xlinkAttr("role"),
	"xlink:show":    xlinkAttr("show"),
	"xlink:title":   xlinkAttr("title"),
	"xlink:type":    xlinkAttr("type"),
	"xml:lang":      {Prefix: "xml", LocalName: "lang", NamespaceURL: NamespaceXML},
	"xml:space":     {Prefix: "xml", LocalName: "space", NamespaceURL: NamespaceXML},
	"xmlns":         {Prefix: "", LocalName: "xmlns", NamespaceURL: NamespaceXMLNS},
	"xmlns:xlink":   {Prefix: "xmlns", LocalName: "xlink", NamespaceURL: NamespaceXMLNS},
}

// IntegrationPoint names a foreign element by namespace and local name, used
// as a map key to test whether a given element is one of the fixed set of
// HTML/MathML-text integration points.
type IntegrationPoint struct {
	Namespace string
	LocalName string
}

func integrationSet(points ...IntegrationPoint) map[IntegrationPoint]bool {
	set := make(map[IntegrationPoint]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}

// HTMLIntegrationPoints are SVG/MathML elements that switch parsing back to
// the HTML insertion modes for their content (WHATWG §13.2.6.5).
var HTMLIntegrationPoints = integrationSet(
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "annotation-xml"},
	IntegrationPoint{Namespace: NamespaceSVG, LocalName: "foreignObject"},
	IntegrationPoint{Namespace: NamespaceSVG, LocalName: "desc"},
	IntegrationPoint{Namespace: NamespaceSVG, LocalName: "title"},
)

// MathMLTextIntegrationPoints are MathML elements whose content is parsed
// as HTML text rather than further MathML (WHATWG §13.2.6.5).
var MathMLTextIntegrationPoints = integrationSet(
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "mi"},
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "mo"},
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "mn"},
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "ms"},
	IntegrationPoint{Namespace: NamespaceMathML, LocalName: "mtext"},
)

// ForeignBreakoutElements are HTML start tags that, per WHATWG §13.2.6.5,
// pop out of foreign content and resume HTML parsing even while a
// non-integration-point foreign element is open.
var ForeignBreakoutElements = tagSet(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)
