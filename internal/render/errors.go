package render

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

// ErrNotSingleChild is returned by OnlyChild.
var ErrNotSingleChild = errors.New("component expects exactly one child")

type RenderErrorCause string

const (
	ErrCauseUnsupportedDefinition RenderErrorCause = "unsupported component definition"
	ErrCauseWriteFailure          RenderErrorCause = "write failure"
)

type RenderError struct {
	Message   string
	Retryable bool
	Cause     RenderErrorCause
	Tag       string
}

func (e *RenderError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("render error: %s <%s>: %s", e.Cause, e.Tag, e.Message)
	}
	return fmt.Sprintf("render error: %s: %s", e.Cause, e.Message)
}

func (e *RenderError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapToMetadataCause maps renderer-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MapToMetadataCause(err *RenderError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnsupportedDefinition:
		return metadata.CauseContentInvalid
	case ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
