package core

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	ErrDuplicateParameter = errors.New("duplicate parameter name")
	ErrInvalidArgument    = errors.New("invalid extra argument")
	ErrInvalidDefault     = errors.New("invalid default value")
	ErrTooManyArguments   = errors.New("too many extra arguments")
	ErrUnsupportedType    = errors.New("unsupported parameter type")
)

// TargetKindError reports a target that is neither a usable function nor a usable struct type.
type TargetKindError struct {
	Type   string
	Reason string
}

func (e *TargetKindError) Error() string {
	return fmt.Sprintf("cannot derive a command line from %s: %s", e.Type, e.Reason)
}

// unexported variables.
var (
	errUnrecognizedArguments = errors.New("unrecognized arguments")
	errVersionShown          = errors.New("version shown")
)

func targetKindError(target any, format string, args ...any) *TargetKindError {
	return &TargetKindError{Type: fmt.Sprintf("%T", target), Reason: fmt.Sprintf(format, args...)}
}
