package symbolic

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNilKernels is returned by New when no kernel provider is supplied.
	ErrNilKernels = errors.New("kernel provider is nil")

	// ErrUnsupportedOperation is returned when an operation has no derivative
	// (floor) or no real-valued form (acosh, asinh, atanh).
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// OperationError reports an unsupported request on a specific operation.
type OperationError struct {
	Op     string // operation token, e.g. "floor"
	Path   string // "diff" or "real"
	Reason string
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Op, e.Reason)
}

// Unwrap returns ErrUnsupportedOperation.
func (e *OperationError) Unwrap() error {
	return ErrUnsupportedOperation
}

func errNoDerivative(op Op) error {
	return &OperationError{Op: op.Token(), Path: "diff", Reason: "not differentiable"}
}

func errNoReal(op Op) error {
	return &OperationError{Op: op.Token(), Path: "real", Reason: "no real-valued form"}
}
