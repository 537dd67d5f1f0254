package sanitizer

import (
	"regexp"
)

type PatternKind int

const (
	PatternExact PatternKind = iota
	PatternRegexp
)

// Pattern is one blacklist entry: an exact name or a regular expression.
// The zero value matches nothing.
type Pattern struct {
	source string
	kind   PatternKind
	re     *regexp.Regexp
}

func (p Pattern) Source() string {
	return p.source
}

func (p Pattern) Kind() PatternKind {
	return p.kind
}

// Match reports whether name matches the pattern. Exact patterns compare
// case-sensitively over the full name; regular expressions are unanchored
// unless the pattern supplies anchors.
func (p Pattern) Match(name string) bool {
	switch p.kind {
	case PatternExact:
		return p.source != "" && p.source == name
	case PatternRegexp:
		return p.re != nil && p.re.MatchString(name)
	default:
		return false
	}
}

func (p Pattern) String() string {
	if p.kind == PatternRegexp {
		return "/" + p.re.String() + "/"
	}
	return p.source
}

/*
Blacklist is the compiled union of caller patterns and the fixed policy.

  - the script tag is always blacklisted (case-insensitive)
  - attribute names matching case-insensitive "on" + identifier are always blacklisted

The zero value carries only the fixed policy. A Blacklist is immutable once
compiled and may be shared between concurrent compiles.
*/
type Blacklist struct {
	tags  []Pattern
	attrs []Pattern
}

func (b Blacklist) TagPatterns() []Pattern {
	out := make([]Pattern, len(b.tags))
	copy(out, b.tags)
	return out
}

func (b Blacklist) AttrPatterns() []Pattern {
	out := make([]Pattern, len(b.attrs))
	copy(out, b.attrs)
	return out
}
