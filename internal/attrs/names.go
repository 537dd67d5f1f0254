package attrs

import "strings"

// domPropertyNames maps lowercase HTML and SVG attribute names to their DOM
// property names.
var domPropertyNames = map[string]string{
	"class":               "className",
	"for":                 "htmlFor",
	"accept-charset":      "acceptCharset",
	"accesskey":           "accessKey",
	"allowfullscreen":     "allowFullScreen",
	"autocapitalize":      "autoCapitalize",
	"autocomplete":        "autoComplete",
	"autofocus":           "autoFocus",
	"autoplay":            "autoPlay",
	"cellpadding":         "cellPadding",
	"cellspacing":         "cellSpacing",
	"charset":             "charSet",
	"classname":           "className",
	"colspan":             "colSpan",
	"contenteditable":     "contentEditable",
	"contextmenu":         "contextMenu",
	"crossorigin":         "crossOrigin",
	"datetime":            "dateTime",
	"enctype":             "encType",
	"enterkeyhint":        "enterKeyHint",
	"formaction":          "formAction",
	"formenctype":         "formEncType",
	"formmethod":          "formMethod",
	"formnovalidate":      "formNoValidate",
	"formtarget":          "formTarget",
	"frameborder":         "frameBorder",
	"hreflang":            "hrefLang",
	"htmlfor":             "htmlFor",
	"http-equiv":          "httpEquiv",
	"inputmode":           "inputMode",
	"itemid":              "itemID",
	"itemprop":            "itemProp",
	"itemref":             "itemRef",
	"itemscope":           "itemScope",
	"itemtype":            "itemType",
	"marginheight":        "marginHeight",
	"marginwidth":         "marginWidth",
	"maxlength":           "maxLength",
	"mediagroup":          "mediaGroup",
	"minlength":           "minLength",
	"nomodule":            "noModule",
	"novalidate":          "noValidate",
	"playsinline":         "playsInline",
	"readonly":            "readOnly",
	"referrerpolicy":      "referrerPolicy",
	"rowspan":             "rowSpan",
	"spellcheck":          "spellCheck",
	"srcdoc":              "srcDoc",
	"srclang":             "srcLang",
	"srcset":              "srcSet",
	"tabindex":            "tabIndex",
	"usemap":              "useMap",
	"clip-path":           "clipPath",
	"clip-rule":           "clipRule",
	"fill-opacity":        "fillOpacity",
	"fill-rule":           "fillRule",
	"font-family":         "fontFamily",
	"font-size":           "fontSize",
	"font-weight":         "fontWeight",
	"stop-color":          "stopColor",
	"stop-opacity":        "stopOpacity",
	"stroke-dasharray":    "strokeDasharray",
	"stroke-dashoffset":   "strokeDashoffset",
	"stroke-linecap":      "strokeLinecap",
	"stroke-linejoin":     "strokeLinejoin",
	"stroke-opacity":      "strokeOpacity",
	"stroke-width":        "strokeWidth",
	"text-anchor":         "textAnchor",
	"viewbox":             "viewBox",
	"preserveaspectratio": "preserveAspectRatio",
	"xlink:href":          "xlinkHref",
	"xml:lang":            "xmlLang",
	"xml:space":           "xmlSpace",
}

// componentPropertyNames applies to registered components, which otherwise
// receive attribute names exactly as written.
var componentPropertyNames = map[string]string{
	"class": "className",
	"for":   "htmlFor",
}

// NormalizeName returns the property name for an attribute written as name.
func NormalizeName(name string, native bool) string {
	if !native {
		if mapped, ok := componentPropertyNames[name]; ok {
			return mapped
		}
		return name
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "data-") || strings.HasPrefix(lower, "aria-") {
		return lower
	}
	if mapped, ok := domPropertyNames[lower]; ok {
		return mapped
	}
	return name
}

// HTMLName is the inverse of NormalizeName for native elements: it returns
// the HTML attribute name for a DOM property name.
func HTMLName(property string) string {
	if html, ok := htmlAttributeNames[property]; ok {
		return html
	}
	return property
}

var htmlAttributeNames = func() map[string]string {
	out := make(map[string]string, len(domPropertyNames))
	for html, dom := range domPropertyNames {
		if html == "classname" || html == "htmlfor" {
			continue
		}
		out[dom] = html
	}
	return out
}()
