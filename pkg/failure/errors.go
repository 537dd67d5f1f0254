package failure

type Severity int

// pipeline control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is returned by every pipeline stage.
// Fatal errors abort the current input; recoverable ones are recorded and skipped.
type ClassifiedError interface {
	error
	Severity() Severity
}
