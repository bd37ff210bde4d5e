package lightning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a non-positive qubit count or a statevector of the wrong length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedSize is returned when the qubit count exceeds MaxQubits.
	ErrUnsupportedSize = errors.New("unsupported number of qubits")

	// ErrUnknownOperation is returned when an operation name is not in the gate library.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrArityMismatch is returned when an operation has the wrong number of wires or parameters.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrInvalidWire is returned for an out of range or repeated wire index.
	ErrInvalidWire = errors.New("invalid wire")

	// ErrLengthMismatch is returned when ops, wires and params disagree in length.
	ErrLengthMismatch = errors.New("length mismatch")
)

/*
OperationError ties a validation failure to the operation that caused it.
Index is the position of the operation in the sequence handed to Apply, so a
caller can report exactly which gate was rejected. The wrapped error is always
one of the package sentinels and can be matched with errors.Is.
*/
type OperationError struct {
	Index int
	Name  string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// errorKind maps an error onto the sentinel it wraps, for metrics labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrUnsupportedSize):
		return "unsupported_size"
	case errors.Is(err, ErrUnknownOperation):
		return "unknown_operation"
	case errors.Is(err, ErrArityMismatch):
		return "arity_mismatch"
	case errors.Is(err, ErrInvalidWire):
		return "invalid_wire"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "other"
	}
}
