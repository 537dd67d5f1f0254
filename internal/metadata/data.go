package metadata

import (
	"time"
)

/*
compileStats
  - Represents a terminal, derived summary of a completed compile run
  - Contains only aggregate counts and durations
  - Is computed by the pipeline after every input has been processed
  - Is recorded exactly once
  - Must not influence compilation or output
*/
type compileStats struct {
	totalFiles     int
	totalErrors    int
	totalArtifacts int
	durationMs     int64
}

type ArtifactKind string

const (
	ArtifactJSON     ArtifactKind = "json"
	ArtifactHTML     ArtifactKind = "html"
	ArtifactMarkdown ArtifactKind = "markdown"
)

// OmissionKind names what a blacklist rule removed from the output tree.
type OmissionKind string

const (
	OmittedTag       OmissionKind = "tag"
	OmittedAttribute OmissionKind = "attribute"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply that the output tree is incomplete.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseMalformedMarkup

Meaning:
  - The grammar parser could not produce a raw tree.

Examples:
  - Unterminated tag, quote, comment or expression
  - Closing tag without a matching open element

# CausePolicyDisallow

Meaning:
  - A configured or fixed sanitization rule rejected the input.

Examples:
  - Invalid blacklist pattern

# CauseEvaluationFailure

Meaning:
  - A bound attribute or child expression could not be evaluated.

Examples:
  - Syntax error in `{...}`
  - Reference to an unknown name inside the sandbox

# CauseContentInvalid

Meaning:
  - Content was compiled but could not be rendered or converted.

Examples:
  - Unsupported component definition
  - HTML to Markdown conversion failure

# CauseStorageFailure

Meaning:
  - Failure while persisting compiled artifacts.

# CauseInvariantViolation

Meaning:
  - A structural limit of the compiler was exceeded.

Examples:
  - Markup nesting deeper than the configured maximum depth
*/
const (
	CauseUnknown ErrorCause = iota
	CauseMalformedMarkup
	CausePolicyDisallow
	CauseEvaluationFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseMalformedMarkup:
		return "malformed_markup"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseEvaluationFailure:
		return "evaluation_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrTime        AttributeKey = "time"
	AttrSource      AttributeKey = "source"
	AttrTag         AttributeKey = "tag"
	AttrAttribute   AttributeKey = "attribute"
	AttrExpression  AttributeKey = "expression"
	AttrDepth       AttributeKey = "depth"
	AttrOffset      AttributeKey = "offset"
	AttrField       AttributeKey = "field"
	AttrWritePath   AttributeKey = "write_path"
	AttrSourceHash  AttributeKey = "source_hash"
	AttrContentHash AttributeKey = "content_hash"
)
