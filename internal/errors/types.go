package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeAcquisition ErrorType = "acquisition"
	ErrorTypeCollection  ErrorType = "collection"
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeInternal    ErrorType = "internal"
)

// Error codes used across the resolution engine. Every fatal condition the
// collector can hit maps to exactly one of these.
const (
	CodeAcquisitionNoRequester = "acquisition_no_requester"
	CodeAcquisitionEval        = "acquisition_eval"
	CodeDuplicateKey           = "duplicate_key"
	CodeDuplicateName          = "duplicate_name"
	CodeUnknownComponentType   = "unknown_component_type"
	CodeMaxDepthExceeded       = "max_depth_exceeded"
)

// ForgeError is a structured error type with context.
type ForgeError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Recoverable bool
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ForgeError) Is(target error) bool {
	var t *ForgeError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ForgeError) WithContext(key string, value interface{}) *ForgeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *ForgeError) WithComponent(component string) *ForgeError {
	e.Component = component

	return e
}

// Error creation functions

// NewAcquisitionError creates an acquisition error. Acquisition errors abort
// the whole resolution run; callers never retry them.
func NewAcquisitionError(code, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeAcquisition,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewDuplicateKeyError creates a collection error for a generator-required
// subcomponent whose key collides with a data-driven child name.
func NewDuplicateKeyError(key string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeCollection,
		Code:        CodeDuplicateKey,
		Message:     fmt.Sprintf("required subcomponent key %q collides with a data-defined child request", key),
		Recoverable: false,
	}
}

// NewDuplicateNameError creates a collection error for two canonical
// components registered under the same name and requester.
func NewDuplicateNameError(name string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeCollection,
		Code:        CodeDuplicateName,
		Message:     fmt.Sprintf("component name %q already registered for this requester", name),
		Recoverable: false,
	}
}

// NewUnknownComponentTypeError creates a collection error for a request whose
// component type has no registered generator.
func NewUnknownComponentTypeError(componentType string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeCollection,
		Code:        CodeUnknownComponentType,
		Message:     fmt.Sprintf("no generator registered for component type %q", componentType),
		Recoverable: false,
	}
}

// NewMaxDepthError creates a collection error for a request tree that exceeds
// the configured recursion depth.
func NewMaxDepthError(limit int) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeCollection,
		Code:        CodeMaxDepthExceeded,
		Message:     fmt.Sprintf("component request tree exceeds maximum depth %d", limit),
		Recoverable: false,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// Error inspection utilities

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe.Recoverable
	}

	return false
}

// IsAcquisitionError checks if an error came from acquisition resolution.
func IsAcquisitionError(err error) bool {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe.Type == ErrorTypeAcquisition
	}

	return false
}

// HasCode checks whether err carries the given error code.
func HasCode(err error, code string) bool {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe.Code == code
	}

	return false
}
