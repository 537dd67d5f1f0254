package source

import (
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type SourceErrorCause string

const (
	ErrCauseNotFound    SourceErrorCause = "source not found"
	ErrCauseReadFailure SourceErrorCause = "read failed"
	ErrCauseNotText     SourceErrorCause = "source is not valid UTF-8 text"
)

type SourceError struct {
	Message   string
	Retryable bool
	Cause     SourceErrorCause
	Path      string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: %s: %s", e.Cause, e.Message)
}

func (e *SourceError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSourceErrorToMetadataCause maps source-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSourceErrorToMetadataCause(err *SourceError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotFound, ErrCauseReadFailure:
		return metadata.CauseStorageFailure
	case ErrCauseNotText:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
