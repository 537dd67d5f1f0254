package attrs

import "strings"

// ParseStyle parses an inline CSS declaration list into an ordered Style.
// Declarations split on ';' and then on the first ':'. Declarations with an
// empty property or value are skipped. A repeated property keeps its first
// position and takes the last value.
func ParseStyle(css string) Style {
	var style Style
	for _, decl := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		prop = CamelCaseProperty(prop)

		replaced := false
		for i := range style {
			if style[i].Property == prop {
				style[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			style = append(style, StyleDecl{Property: prop, Value: value})
		}
	}
	return style
}

// CamelCaseProperty converts a hyphenated CSS property name to its DOM form:
// background-color -> backgroundColor, -webkit-transition -> WebkitTransition,
// -ms-transition -> msTransition. Custom properties (--x) are kept verbatim.
func CamelCaseProperty(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	vendor := false
	lower := strings.ToLower(prop)
	switch {
	case strings.HasPrefix(lower, "-ms-"):
		prop = prop[1:]
	case strings.HasPrefix(prop, "-"):
		prop = prop[1:]
		vendor = true
	}

	parts := strings.Split(prop, "-")
	var b strings.Builder
	b.Grow(len(prop))
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !vendor {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// KebabCaseProperty is the inverse of CamelCaseProperty.
func KebabCaseProperty(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	var b strings.Builder
	b.Grow(len(prop) + 4)
	if strings.HasPrefix(prop, "ms") && len(prop) > 2 && prop[2] >= 'A' && prop[2] <= 'Z' {
		b.WriteString("-")
	}
	for i := 0; i < len(prop); i++ {
		c := prop[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
