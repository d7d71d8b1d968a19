package errors

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/boolexpr/pkg/sexp"
)

// ErrorType categorizes the type of error encountered while reading,
// translating or reducing an expression.
type ErrorType string

const (
	ErrorTypeSyntax      ErrorType = "syntax"      // Tree does not match the grammar
	ErrorTypeUnreducible ErrorType = "unreducible" // AST outside the six variants
	ErrorTypeRead        ErrorType = "read"        // Malformed text or YAML input
	ErrorTypeIO          ErrorType = "io"          // File I/O error
)

// Sentinel errors for errors.Is. An *Error matches the sentinel of its type.
var (
	// ErrInvalidSyntax matches every translator error.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrUnreducible matches every reducer error.
	ErrUnreducible = errors.New("unreducible expression")

	// ErrRead matches every input decoding error.
	ErrRead = errors.New("malformed input")
)

// Error represents a rich error with the offending form, its position in the
// tree and an optional suggestion.
type Error struct {
	Type       ErrorType     // Category of error
	Message    string        // Error message
	Form       string        // Rendering of the offending tree or node
	Path       string        // Operand path from the root, e.g. "AND[2] > NOT[1]"
	Position   sexp.Position // Source position, when known
	Suggestion string        // Suggested fix (optional)
	Cause      error         // Underlying error (optional)
}

// Error implements the error interface.
// It returns a formatted error message with form, path and suggestion.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Position.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Position))
	}
	if e.Form != "" {
		sb.WriteString(fmt.Sprintf("\n  form: %s", e.Form))
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("\n  at: %s", e.Path))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's type.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidSyntax:
		return e.Type == ErrorTypeSyntax
	case ErrUnreducible:
		return e.Type == ErrorTypeUnreducible
	case ErrRead:
		return e.Type == ErrorTypeRead
	default:
		return false
	}
}

// NewSyntaxError creates an invalid-syntax error for the given tree.
func NewSyntaxError(message string, form sexp.Value, path string) *Error {
	err := &Error{
		Type:    ErrorTypeSyntax,
		Message: message,
		Path:    path,
	}
	if form != nil {
		err.Form = form.String()
	}
	return err
}

// NewUnreducibleError creates an unreducible-expression error.
func NewUnreducibleError(message string, form fmt.Stringer) *Error {
	err := &Error{
		Type:    ErrorTypeUnreducible,
		Message: message,
	}
	if form != nil {
		err.Form = form.String()
	}
	return err
}

// FromReadError converts a reader error into a rich error.
// Other errors are wrapped with ErrorTypeRead and no position.
func FromReadError(err error) *Error {
	var readErr *sexp.ReadError
	if errors.As(err, &readErr) {
		return &Error{
			Type:     ErrorTypeRead,
			Message:  readErr.Message,
			Position: readErr.Position,
			Cause:    err,
		}
	}
	return &Error{
		Type:    ErrorTypeRead,
		Message: err.Error(),
		Cause:   err,
	}
}

// TypeOf returns the ErrorType of err, or "" if err is not an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// ErrorList represents a collection of errors encountered while loading
// several expressions. It allows accumulating errors instead of failing on
// the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, position sexp.Position) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Position: position,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}
