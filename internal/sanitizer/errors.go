package sanitizer

import (
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type SanitizationErrorCause string

const (
	ErrCauseInvalidPattern SanitizationErrorCause = "invalid blacklist pattern"
)

type SanitizationError struct {
	Message   string
	Retryable bool
	Cause     SanitizationErrorCause
	Pattern   string
}

func (e *SanitizationError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("sanitization error: %s %q: %s", e.Cause, e.Pattern, e.Message)
	}
	return fmt.Sprintf("sanitization error: %s: %s", e.Cause, e.Message)
}

func (e *SanitizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSanitizationErrorToMetadataCause maps sanitizer-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSanitizationErrorToMetadataCause(err SanitizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidPattern:
		return metadata.CausePolicyDisallow
	default:
		return metadata.CauseUnknown
	}
}
