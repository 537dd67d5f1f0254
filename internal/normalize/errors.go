package normalize

import (
	"fmt"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type NormalizationErrorCause string

const (
	// ErrCauseUnknownFormat indicates an output format the normalizer cannot frame.
	ErrCauseUnknownFormat NormalizationErrorCause = "unknown output format"

	// ErrCauseHashComputationFailed indicates that the tree fingerprint or the
	// content hash could not be computed, usually an unsupported hash algorithm.
	ErrCauseHashComputationFailed NormalizationErrorCause = "hash computation failed"

	// ErrCauseFrontmatterMarshalFailed indicates that YAML frontmatter serialization failed.
	ErrCauseFrontmatterMarshalFailed NormalizationErrorCause = "frontmatter marshal failed"
)

type NormalizationError struct {
	Message   string
	Retryable bool
	Cause     NormalizationErrorCause
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %s: %s", e.Cause, e.Message)
}

func (e *NormalizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapNormalizationErrorToMetadataCause maps normalize-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapNormalizationErrorToMetadataCause(err NormalizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseHashComputationFailed, ErrCauseFrontmatterMarshalFailed:
		return metadata.CauseInvariantViolation
	case ErrCauseUnknownFormat:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
