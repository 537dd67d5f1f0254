package tree

import (
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type BuildErrorCause string

const (
	ErrCauseDepthExceeded BuildErrorCause = "maximum nesting depth exceeded"
)

type BuildError struct {
	Message   string
	Retryable bool
	Cause     BuildErrorCause
	Depth     int
	Offset    int
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error: %s: %s", e.Cause, e.Message)
}

func (e *BuildError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapBuildErrorToMetadataCause maps builder-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapBuildErrorToMetadataCause(err *BuildError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDepthExceeded:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
