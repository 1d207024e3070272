package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ForgeError if the
// input is not already one.
func Wrap(err error, errType ErrorType, code, message string) *ForgeError {
	if err == nil {
		return nil
	}

	// If it's already a ForgeError, preserve its properties but update the message
	var fe *ForgeError
	if errors.As(err, &fe) {
		return &ForgeError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       fe,
			Context:     fe.Context,
			Component:   fe.Component,
			Recoverable: fe.Recoverable,
		}
	}

	return &ForgeError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapWithContext wraps an error with context information.
func WrapWithContext(err error, errType ErrorType, code, message string, context map[string]interface{}) *ForgeError {
	forgeErr := Wrap(err, errType, code, message)
	if forgeErr != nil {
		forgeErr.Context = context
	}
	return forgeErr
}
