// Package errors provides coded errors for squaremap's input boundaries.
//
// The layout engine itself never fails; everything that can be rejected is
// rejected before it reaches the engine, by dataset validation, file import,
// option validation or the HTTP API. Those layers return an [*Error] so that
// the CLI and the API report the same failure the same way: the CLI prints
// [UserMessage], the API maps the [Code] to a status and returns
// {"code", "message", "item"}.
//
// # Codes
//
// Validation codes describe bad input ([IsValidation] reports them).
// FILE_NOT_FOUND, PAYLOAD_TOO_LARGE, UNSUPPORTED and INTERNAL_ERROR describe
// everything else.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNegativeHeat, "heat %g is negative", heat).WithItem(id)
//	if errors.Is(err, errors.ErrCodeNegativeHeat) {
//	    fmt.Println("bad item:", errors.ItemOf(err))
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, cause, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Validation codes.
const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeEmptyInput       Code = "EMPTY_INPUT"
	ErrCodeNegativeHeat     Code = "NEGATIVE_HEAT"
	ErrCodeNonFiniteHeat    Code = "NON_FINITE_HEAT"
	ErrCodeZeroTotal        Code = "ZERO_TOTAL"
	ErrCodeDuplicateID      Code = "DUPLICATE_ID"
	ErrCodeInvalidID        Code = "INVALID_ID"
	ErrCodeInvalidContainer Code = "INVALID_CONTAINER"
	ErrCodeInvalidAlignment Code = "INVALID_ALIGNMENT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidPalette   Code = "INVALID_PALETTE"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
)

// Other codes.
const (
	ErrCodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeUnsupported     Code = "UNSUPPORTED"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
)

var validationCodes = map[Code]bool{
	ErrCodeInvalidInput:     true,
	ErrCodeEmptyInput:       true,
	ErrCodeNegativeHeat:     true,
	ErrCodeNonFiniteHeat:    true,
	ErrCodeZeroTotal:        true,
	ErrCodeDuplicateID:      true,
	ErrCodeInvalidID:        true,
	ErrCodeInvalidContainer: true,
	ErrCodeInvalidAlignment: true,
	ErrCodeInvalidFormat:    true,
	ErrCodeInvalidStyle:     true,
	ErrCodeInvalidPalette:   true,
	ErrCodeInvalidColor:     true,
}

// Error is a coded error, optionally tied to one input item.
type Error struct {
	Code    Code
	Message string
	Item    string // ID of the offending item, if any
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Item != "" {
		msg += fmt.Sprintf(" (item %q)", e.Item)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithItem returns a copy of e attributed to the item with the given ID.
func (e *Error) WithItem(id string) *Error {
	c := *e
	c.Item = id
	return &c
}

// Attribute ties err to the item with the given ID. Coded errors keep their
// code; other errors become INVALID_INPUT.
func Attribute(err error, id string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.WithItem(id)
	}
	return Wrap(ErrCodeInvalidInput, err, "invalid item").WithItem(id)
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause. An item attribution on a coded cause
// carries over.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Item:    ItemOf(cause),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ItemOf returns the item ID attached to err, or "".
func ItemOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Item
	}
	return ""
}

// UserMessage returns the message without the code prefix. Plain errors are
// returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Item != "" {
		return fmt.Sprintf("item %q: %s", e.Item, e.Message)
	}
	return e.Message
}

// IsValidation reports whether err carries a validation code, i.e. the
// caller sent bad input rather than squaremap failing.
func IsValidation(err error) bool {
	return validationCodes[GetCode(err)]
}
