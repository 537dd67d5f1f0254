/*
Responsibilities
- Evaluate the source of a bracketed attribute value or child expression
- Allow literal, object, array and arithmetic expressions only

Sandbox
- The environment is empty
- Every builtin function is disabled
- Expressions cannot perform I/O or mutate anything outside themselves
- Source length is bounded

An Evaluator owns a virtual machine and is not safe for concurrent use.
Create one per compile invocation.
*/
package evaluate

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const DefaultMaxSourceLength = 4096

type Evaluator struct {
	maxSourceLength int
	env             map[string]any
	vm              vm.VM
}

// NewEvaluator returns an Evaluator. maxSourceLength <= 0 selects DefaultMaxSourceLength.
func NewEvaluator(maxSourceLength int) *Evaluator {
	if maxSourceLength <= 0 {
		maxSourceLength = DefaultMaxSourceLength
	}
	return &Evaluator{
		maxSourceLength: maxSourceLength,
		env:             map[string]any{},
	}
}

// Evaluate compiles and runs source. Integer literals yield int, decimals
// float64, object literals map[string]any and array literals []any.
func (e *Evaluator) Evaluate(source string) (any, error) {
	trimmed := strings.TrimSpace(source)
	if len(trimmed) > e.maxSourceLength {
		return nil, &EvaluationError{
			Message:   "source exceeds the maximum expression length",
			Retryable: false,
			Cause:     ErrCauseSourceTooLong,
			Source:    trimmed,
		}
	}
	if trimmed == "" {
		return nil, &EvaluationError{
			Message:   "expression is empty",
			Retryable: false,
			Cause:     ErrCauseCompileFailure,
			Source:    trimmed,
		}
	}

	program, err := expr.Compile(
		trimmed,
		expr.Env(e.env),
		expr.DisableAllBuiltins(),
	)
	if err != nil {
		return nil, &EvaluationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCompileFailure,
			Source:    trimmed,
		}
	}

	result, err := e.vm.Run(program, e.env)
	if err != nil {
		return nil, &EvaluationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRuntimeFailure,
			Source:    trimmed,
		}
	}
	return result, nil
}
