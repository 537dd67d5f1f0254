/*
Responsibilities
- Compile caller tag and attribute patterns once per invocation
- Union caller patterns with the fixed, always-on policy
- Answer name membership for the tag resolver and the attribute processor

Pattern syntax
- "/expr/" or "/expr/i" is always a regular expression
- a plain name (letters, digits, '_', ':', '.', '-') is an exact, case-sensitive name
- anything else is compiled as a regular expression

The sanitizer never rewrites markup. It only decides what is omitted.
*/
package sanitizer

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

var (
	plainName        = regexp.MustCompile(`^[A-Za-z_][\w:.-]*$`)
	eventHandlerAttr = regexp.MustCompile(`(?i)^on[a-z]`)
)

const scriptTag = "script"

// ParsePattern compiles a single blacklist entry.
func ParsePattern(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, &SanitizationError{
			Message:   "pattern is empty",
			Retryable: false,
			Cause:     ErrCauseInvalidPattern,
		}
	}

	if expr, flags, ok := splitDelimited(raw); ok {
		if expr == "" {
			return Pattern{}, &SanitizationError{
				Message:   "regular expression is empty",
				Retryable: false,
				Cause:     ErrCauseInvalidPattern,
				Pattern:   raw,
			}
		}
		if strings.Contains(flags, "i") {
			expr = "(?i)" + expr
		}
		return compileRegexp(raw, expr)
	}

	if plainName.MatchString(raw) {
		return Pattern{source: raw, kind: PatternExact}, nil
	}

	return compileRegexp(raw, raw)
}

// splitDelimited recognizes "/expr/" with an optional trailing "i" flag.
func splitDelimited(raw string) (string, string, bool) {
	if len(raw) < 2 || raw[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(raw, '/')
	if end <= 0 {
		return "", "", false
	}
	flags := raw[end+1:]
	if flags != "" && flags != "i" {
		return "", "", false
	}
	return raw[1:end], flags, true
}

func compileRegexp(raw, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, &SanitizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidPattern,
			Pattern:   raw,
		}
	}
	return Pattern{source: raw, kind: PatternRegexp, re: re}, nil
}

// Compile builds a Blacklist from caller tag and attribute patterns.
// The first invalid pattern aborts compilation.
func Compile(tags []string, attrs []string) (Blacklist, error) {
	tagPatterns, err := parseAll(tags)
	if err != nil {
		return Blacklist{}, err
	}
	attrPatterns, err := parseAll(attrs)
	if err != nil {
		return Blacklist{}, err
	}
	return Blacklist{tags: tagPatterns, attrs: attrPatterns}, nil
}

func parseAll(raws []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(raws))
	for _, raw := range raws {
		p, err := ParsePattern(raw)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func (b Blacklist) IsTagBlacklisted(name string) bool {
	if strings.EqualFold(name, scriptTag) {
		return true
	}
	return matchAny(b.tags, name)
}

func (b Blacklist) IsAttrBlacklisted(name string) bool {
	if eventHandlerAttr.MatchString(name) {
		return true
	}
	return matchAny(b.attrs, name)
}

func matchAny(patterns []Pattern, name string) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// PolicyCompiler compiles blacklists for a host that records failures.
type PolicyCompiler struct {
	metadataSink metadata.MetadataSink
}

func NewPolicyCompiler(metadataSink metadata.MetadataSink) PolicyCompiler {
	return PolicyCompiler{
		metadataSink: metadataSink,
	}
}

func (c *PolicyCompiler) Compile(
	tags []string,
	attrs []string,
) (Blacklist, failure.ClassifiedError) {
	blacklist, err := Compile(tags, attrs)
	if err != nil {
		var sanitizationError *SanitizationError
		errors.As(err, &sanitizationError)
		c.metadataSink.RecordError(
			time.Now(),
			"sanitizer",
			"PolicyCompiler.Compile",
			mapSanitizationErrorToMetadataCause(*sanitizationError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrField, sanitizationError.Pattern),
			},
		)
		return Blacklist{}, sanitizationError
	}
	return blacklist, nil
}
