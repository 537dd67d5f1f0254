package pipeline

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

// ErrFilesFailed is returned by Execute when at least one input failed.
var ErrFilesFailed = errors.New("one or more inputs failed")

type PipelineErrorCause string

const (
	// ErrCauseComponentFailure indicates that a host component returned an error while rendering.
	ErrCauseComponentFailure PipelineErrorCause = "component failure"
	// ErrCauseEncodeFailure indicates that the tree could not be encoded as JSON.
	ErrCauseEncodeFailure PipelineErrorCause = "encode failure"
	// ErrCauseStageFailure indicates an unclassified failure of a stage.
	ErrCauseStageFailure PipelineErrorCause = "stage failure"
)

type PipelineError struct {
	Message   string
	Retryable bool
	Cause     PipelineErrorCause
	Err       error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error: %s: %s", e.Cause, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func (e *PipelineError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapPipelineErrorToMetadataCause maps pipeline-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapPipelineErrorToMetadataCause(err *PipelineError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseComponentFailure:
		return metadata.CauseContentInvalid
	case ErrCauseEncodeFailure:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
