package evaluate

import (
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type EvaluationErrorCause string

const (
	ErrCauseSourceTooLong  EvaluationErrorCause = "expression source too long"
	ErrCauseCompileFailure EvaluationErrorCause = "expression compile failure"
	ErrCauseRuntimeFailure EvaluationErrorCause = "expression runtime failure"
)

type EvaluationError struct {
	Message   string
	Retryable bool
	Cause     EvaluationErrorCause
	Source    string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error: %s: %s", e.Cause, e.Message)
}

// Evaluation is never retried; every failure only drops the value it would have produced.
func (e *EvaluationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapToMetadataCause maps evaluator-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MapToMetadataCause(err *EvaluationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseSourceTooLong, ErrCauseCompileFailure, ErrCauseRuntimeFailure:
		return metadata.CauseEvaluationFailure
	default:
		return metadata.CauseUnknown
	}
}
