package chipy

import "fmt"

// ErrorKind classifies why evaluation failed. The set is closed and mirrors
// the failure modes an embedding host needs to distinguish.
type ErrorKind int

const (
	ParseError ErrorKind = iota
	NameNotFound
	TypeError
	IndexOutOfRange
	ShapeError
	UnimplementedOp
	LoopControlOutsideLoop
	ResultTypeError
	EncodingError
	OutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse-error"
	case NameNotFound:
		return "name-not-found"
	case TypeError:
		return "type-error"
	case IndexOutOfRange:
		return "index-out-of-range"
	case ShapeError:
		return "shape-error"
	case UnimplementedOp:
		return "unimplemented-op"
	case LoopControlOutsideLoop:
		return "loop-control-outside-loop"
	case ResultTypeError:
		return "result-type-error"
	case EncodingError:
		return "encoding-error"
	case OutOfMemory:
		return "out-of-memory"
	default:
		return "unknown-error"
	}
}

// Error is the kind+message pair every evaluation failure carries.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// CallFrame is one entry of an EvalError's backtrace. The interpreter
// records a single frame per error, with Pos set to the program's filename
// and Desc "top-level"; no per-statement or loop frames are recorded.
type CallFrame struct {
	Pos  string
	Desc string
}

// EvalError is the single failure signal execute returns. It wraps the
// underlying *Error (kind + message) with a backtrace (see CallFrame); no
// source line or column is recorded. This mirrors the teacher's own
// Thread/EvalError split between a raw cause and a reported error.
type EvalError struct {
	Msg       string
	Backtrace []CallFrame
	cause     error
}

func (e *EvalError) Error() string { return e.Msg }

// Unwrap exposes the underlying *Error so callers can use errors.As to
// recover the ErrorKind.
func (e *EvalError) Unwrap() error { return e.cause }

func evalError(cause error, frames []CallFrame) *EvalError {
	return &EvalError{Msg: cause.Error(), Backtrace: frames, cause: cause}
}
