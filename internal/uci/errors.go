package uci

import "fmt"

// ErrorKind classifies a failed line of protocol input.
type ErrorKind int

const (
	// GrammarError is malformed command structure: unknown command,
	// unexpected token, missing or empty required sub-field.
	GrammarError ErrorKind = iota
	// SemanticError is structurally valid but contradictory input,
	// e.g. both fen and startpos, or a value attached to a boolean flag.
	SemanticError
	// NumericError is a missing, non-numeric or out-of-range integer
	// value for a numeric keyword.
	NumericError
	// DelegatedError is a failure surfaced by the option store or the
	// engine controller, propagated unchanged.
	DelegatedError
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarError:
		return "grammar"
	case SemanticError:
		return "semantic"
	case NumericError:
		return "numeric"
	case DelegatedError:
		return "delegated"
	}
	return "unknown"
}

// Error is the failure value for a single protocol line. It aborts
// processing of that line only; the caller decides whether to keep
// reading.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func grammarf(format string, args ...any) *Error {
	return &Error{Kind: GrammarError, Message: fmt.Sprintf(format, args...)}
}

func semanticf(format string, args ...any) *Error {
	return &Error{Kind: SemanticError, Message: fmt.Sprintf(format, args...)}
}

func numericf(format string, args ...any) *Error {
	return &Error{Kind: NumericError, Message: fmt.Sprintf(format, args...)}
}

// delegated wraps an option-store or controller failure without
// reinterpreting it.
func delegated(err error) *Error {
	return &Error{Kind: DelegatedError, Message: err.Error(), Cause: err}
}
