package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups error codes by the layer that raises them.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryRender   Category = "render"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryExport   Category = "export"
	CategoryCLI      Category = "cli"
)

// Error is a coded error with an optional hint and wrapped cause.
type Error struct {
	// Code is the registry key, for example "E010".
	Code string

	Category Category

	// Message is a one-line summary.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Suggestion tells the operator what to do about it.
	Suggestion string

	// Fields are extra key/value pairs shown by Format.
	Fields map[string]string

	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// Wrap sets the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// With attaches a key/value pair.
func (e *Error) With(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = fmt.Sprint(value)
	return e
}

// New creates an Error from a registered code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as an *Error, wrapping it under code when it is not
// one already.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &Error{Code: code})
}
