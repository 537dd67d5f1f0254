/*
Responsibilities
- Decode named and numeric character references in raw text
- Keep U+0020, U+00A0 and U+202F distinct after decoding

Decoding happens before any whitespace-policy decision, so the builder
never mistakes a non-breaking space for insignificant whitespace.
*/
package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	NoBreakSpace       = '\u00a0'
	NarrowNoBreakSpace = '\u202f'
)

// Only terminated references are candidates. Legacy forms without the
// semicolon, which HTML5 still decodes, stay literal text here.
var referencePattern = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

// Normalize decodes character references in raw. It never fails:
// references that do not resolve are kept literally.
func Normalize(raw string) string {
	if !strings.ContainsRune(raw, '&') {
		return raw
	}
	return referencePattern.ReplaceAllStringFunc(raw, decodeReference)
}

func decodeReference(ref string) string {
	decoded := html.UnescapeString(ref)
	if ref[1] == '#' {
		return decoded
	}
	// A named reference resolves to one or two code points. Anything longer
	// means only a legacy prefix matched, as in &notanentity; -> ¬anentity;
	if decoded == ref || utf8.RuneCountInString(decoded) > 2 {
		return ref
	}
	return decoded
}

// IsBlank reports whether s consists only of ASCII whitespace.
// U+00A0 and U+202F are content, not whitespace.
func IsBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}
