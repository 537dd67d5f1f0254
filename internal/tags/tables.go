package tags

import (
	"strings"

	"golang.org/x/net/html/atom"
)

var voidTags = map[atom.Atom]struct{}{
	atom.Area:   {},
	atom.Base:   {},
	atom.Br:     {},
	atom.Col:    {},
	atom.Embed:  {},
	atom.Hr:     {},
	atom.Img:    {},
	atom.Input:  {},
	atom.Keygen: {},
	atom.Link:   {},
	atom.Meta:   {},
	atom.Param:  {},
	atom.Source: {},
	atom.Track:  {},
	atom.Wbr:    {},
}

var whitespaceInsignificantTags = map[atom.Atom]struct{}{
	atom.Table:    {},
	atom.Thead:    {},
	atom.Tbody:    {},
	atom.Tfoot:    {},
	atom.Tr:       {},
	atom.Colgroup: {},
}

var structuralWrapperTags = map[atom.Atom]struct{}{
	atom.Html: {},
	atom.Head: {},
	atom.Body: {},
}

// HTML element names. These match case-insensitively.
var htmlTagNames = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins",
	"kbd", "keygen",
	"label", "legend", "li", "link",
	"main", "map", "mark", "menu", "meta", "meter",
	"nav", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "param", "picture", "pre", "progress",
	"q",
	"rp", "rt", "ruby",
	"s", "samp", "script", "search", "section", "select", "slot", "small", "source", "span",
	"strong", "style", "sub", "summary", "sup",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "time", "title",
	"tr", "track",
	"u", "ul",
	"var", "video",
	"wbr",
}

// SVG and MathML element names in their canonical spelling. These match
// exactly or in all-lowercase form, the way the HTML tokenizer reports them,
// so <Text> or <Filter> is not mistaken for the SVG element.
var foreignTagNames = []string{
	// svg
	"svg", "animate", "animateMotion", "animateTransform", "circle", "clipPath", "defs", "desc",
	"ellipse", "feBlend", "feColorMatrix", "feComposite", "feFlood", "feGaussianBlur",
	"feOffset", "filter", "foreignObject", "g", "image", "line", "linearGradient", "marker",
	"mask", "path", "pattern", "polygon", "polyline", "radialGradient", "rect", "stop",
	"symbol", "text", "textPath", "tspan", "use", "view",
	// mathml
	"math", "mi", "mn", "mo", "ms", "mtext", "mrow", "msup", "msub", "mfrac", "msqrt",
	"mroot", "mtable", "mtr", "mtd", "semantics", "annotation",
}

var (
	htmlAtoms   = map[atom.Atom]struct{}{}
	htmlOther   = map[string]struct{}{}
	foreignTags = map[string]struct{}{}
	// lowercased foreign names
	foreignLower = map[string]struct{}{}
)

func init() {
	for _, name := range htmlTagNames {
		if a := atom.Lookup([]byte(name)); a != 0 {
			htmlAtoms[a] = struct{}{}
			continue
		}
		htmlOther[name] = struct{}{}
	}
	for _, name := range foreignTagNames {
		foreignTags[name] = struct{}{}
		foreignLower[strings.ToLower(name)] = struct{}{}
	}
}

func lookupAtom(name string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(name)))
}

func inTable(table map[atom.Atom]struct{}, name string) bool {
	a := lookupAtom(name)
	if a == 0 {
		return false
	}
	_, ok := table[a]
	return ok
}

// IsVoid reports whether name is a void element, case-insensitively.
func IsVoid(name string) bool {
	return inTable(voidTags, name)
}

// IsWhitespaceInsignificant reports whether name is an element whose
// pure-whitespace text children are insignificant, case-insensitively.
func IsWhitespaceInsignificant(name string) bool {
	return inTable(whitespaceInsignificantTags, name)
}

// IsStructuralWrapper reports whether name is document framing (html, head, body).
func IsStructuralWrapper(name string) bool {
	return inTable(structuralWrapperTags, name)
}

// IsNative reports whether name is a known HTML element, case-insensitively,
// or an SVG or MathML element in its canonical or all-lowercase spelling.
func IsNative(name string) bool {
	if _, ok := foreignTags[name]; ok {
		return true
	}
	lower := strings.ToLower(name)
	if lower == name {
		if _, ok := foreignLower[lower]; ok {
			return true
		}
	}
	if a := atom.Lookup([]byte(lower)); a != 0 {
		if _, ok := htmlAtoms[a]; ok {
			return true
		}
	}
	_, ok := htmlOther[lower]
	return ok
}

// IsCustomElementName reports whether name is a valid autonomous custom
// element name: lowercase, starting with a letter, containing a hyphen.
func IsCustomElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") {
		return false
	}
	return name == strings.ToLower(name)
}
