package metadata

import (
	"log/slog"
	"sync"
	"time"
)

/*
Metadata Collected
- Compile errors per stage
- Unrecognized tag occurrences
- Blacklist omissions
- Written artifacts

Logging Goals
- Debuggable compile behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Determinism guarantees:
 - Metadata does not affect control flow
 - Output is stable given identical inputs

Metadata is write-only.
No component may read metadata to influence the output tree.
*/

/*
Recorder is the host-side sink: it owns the wording of every diagnostic and
emits it through slog. The compiler core only reports occurrences.
It must not:
- affect control flow
- alter the output tree
Ordering guarantees:
- Events are logged synchronously in the order they are received.
*/
type Recorder struct {
	logger *slog.Logger

	mu     sync.Mutex
	errors []ErrorRecord
}

// NewRecorder returns a Recorder writing to logger. A nil logger selects slog.Default().
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	r.mu.Lock()
	r.errors = append(r.errors, ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	})
	r.mu.Unlock()

	args := []any{
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String("cause", cause.String()),
		slog.Time(string(AttrTime), observedAt),
	}
	r.logger.Warn(errorString, append(args, toLogArgs(attrs)...)...)
}

func (r *Recorder) RecordUnrecognizedTag(tagName string, attrs []Attribute) {
	args := []any{slog.String(string(AttrTag), tagName)}
	r.logger.Warn(
		"the tag is unrecognized as a native element and no component is registered under this name",
		append(args, toLogArgs(attrs)...)...,
	)
}

func (r *Recorder) RecordOmission(kind OmissionKind, name string, attrs []Attribute) {
	args := []any{
		slog.String("kind", string(kind)),
		slog.String("name", name),
	}
	r.logger.Debug("blacklisted content omitted", append(args, toLogArgs(attrs)...)...)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	args := []any{
		slog.String("kind", string(kind)),
		slog.String(string(AttrWritePath), path),
	}
	r.logger.Info("artifact written", append(args, toLogArgs(attrs)...)...)
}

/*
RecordFinalStats records a terminal, derived summary of a compile run.

Contract:
  - MUST be called exactly once per run, after every input was processed.
  - The provided counts MUST be derived from pipeline results,
    not accumulated incrementally via the recorder.
*/
func (r *Recorder) RecordFinalStats(
	totalFiles int,
	totalErrors int,
	totalArtifacts int,
	duration time.Duration,
) {
	stats := compileStats{
		totalFiles:     totalFiles,
		totalErrors:    totalErrors,
		totalArtifacts: totalArtifacts,
		durationMs:     duration.Milliseconds(),
	}
	r.logger.Info("compile finished",
		slog.Int("files", stats.totalFiles),
		slog.Int("errors", stats.totalErrors),
		slog.Int("artifacts", stats.totalArtifacts),
		slog.Int64("duration_ms", stats.durationMs),
	)
}

// ErrorCount returns how many errors were recorded so far.
func (r *Recorder) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func toLogArgs(attrs []Attribute) []any {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, slog.String(string(a.Key), a.Value))
	}
	return args
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordUnrecognizedTag(tagName string, attrs []Attribute)
	RecordOmission(kind OmissionKind, name string, attrs []Attribute)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type CompileFinalizer interface {
	RecordFinalStats(
		totalFiles int,
		totalErrors int,
		totalArtifacts int,
		duration time.Duration,
	)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Pipeline (or Test) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordUnrecognizedTag(tagName string, attrs []Attribute) {}

func (n *NoopSink) RecordOmission(kind OmissionKind, name string, attrs []Attribute) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordFinalStats(totalFiles int, totalErrors int, totalArtifacts int, duration time.Duration) {
}
