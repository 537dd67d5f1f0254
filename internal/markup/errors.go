package markup

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

// ErrMalformedMarkup matches every *ParseError via errors.Is.
var ErrMalformedMarkup = errors.New("malformed markup")

type ParseErrorCause string

const (
	ErrCauseUnterminated       ParseErrorCause = "unterminated construct"
	ErrCauseInvalidName        ParseErrorCause = "invalid name"
	ErrCauseUnexpectedCloseTag ParseErrorCause = "unexpected close tag"
	ErrCauseUnexpectedChar     ParseErrorCause = "unexpected character"
)

type ParseError struct {
	Message   string
	Retryable bool
	Cause     ParseErrorCause
	Offset    int
	Line      int
	Column    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed markup at %d:%d: %s: %s", e.Line, e.Column, e.Cause, e.Message)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedMarkup
}

func (e *ParseError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapToMetadataCause maps parser-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MapToMetadataCause(err *ParseError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnterminated, ErrCauseInvalidName, ErrCauseUnexpectedCloseTag, ErrCauseUnexpectedChar:
		return metadata.CauseMalformedMarkup
	default:
		return metadata.CauseUnknown
	}
}
