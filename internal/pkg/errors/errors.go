package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is a generic sentinel for missing resources and empty results.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is a generic sentinel for writes rejected by current state.
	ErrConflict = errors.New("conflict")
)

// Code classifies an error for callers that translate it (the HTTP layer).
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeValidation Code = "validation"
	CodeConflict   Code = "conflict"
	CodeInternal   Code = "internal"
)

// Error is the coded error returned by services and reports.
type Error struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match the package sentinels by code.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrNotFound:
		return e.Code == CodeNotFound
	case ErrInvalidArgument:
		return e.Code == CodeValidation
	case ErrConflict:
		return e.Code == CodeConflict
	}
	return false
}

func New(code Code, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NotFound reports an empty or absent result; the message is meant for end users.
func NotFound(op, format string, args ...any) error {
	return New(CodeNotFound, op, fmt.Sprintf(format, args...), nil)
}

func Invalid(op, format string, args ...any) error {
	return New(CodeValidation, op, fmt.Sprintf(format, args...), nil)
}

func Conflict(op, format string, args ...any) error {
	return New(CodeConflict, op, fmt.Sprintf(format, args...), nil)
}

func IsCode(err error, code Code) bool {
	var coded *Error
	if !errors.As(err, &coded) {
		return false
	}
	return coded.Code == code
}

// CodeOf returns the code of the outermost coded error, or CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if !errors.As(err, &coded) {
		return CodeInternal
	}
	return coded.Code
}

// MessageOf returns the user-facing message of a coded error.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) && strings.TrimSpace(coded.Message) != "" {
		return coded.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
