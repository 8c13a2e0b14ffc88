package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in *EngineError) by Compute.
var (
	ErrUndefinedAdjustment = errors.New("no remaining days to adjust over")
	ErrCalendarFault       = errors.New("calendar returned a non-positive day count")
	ErrNonFinite           = errors.New("input is not a finite number")
)

// ErrorKind labels an engine failure for front ends and API payloads.
type ErrorKind string

const (
	KindUndefinedAdjustment ErrorKind = "undefined_adjustment"
	KindCalendarFault       ErrorKind = "calendar_fault"
	KindNonFinite           ErrorKind = "non_finite"
)

// EngineError is the error type returned by Compute.
type EngineError struct {
	Kind   ErrorKind
	Detail string
	err    error
}

func (e *EngineError) Error() string {
	if e.Detail == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.Detail)
}

// Unwrap lets errors.Is match the sentinel.
func (e *EngineError) Unwrap() error {
	return e.err
}

func newEngineError(kind ErrorKind, err error, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Detail: fmt.Sprintf(format, args...), err: err}
}

// KindOf returns the engine error kind of err, or "" if err is not from Compute.
func KindOf(err error) ErrorKind {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}
