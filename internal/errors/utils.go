package errors

import (
	"errors"
	"os"
)

// Wrap wraps an error with additional context, creating an MCSError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *MCSError {
	if err == nil {
		return nil
	}

	// Keep the file location of an existing MCSError
	var me *MCSError
	if errors.As(err, &me) {
		return &MCSError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       me,
			Context:     me.Context,
			FilePath:    me.FilePath,
			Recoverable: me.Recoverable,
		}
	}

	return &MCSError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeIO,
	}
}

// WrapIO wraps an error as a per-file I/O error. Missing files are
// reported with ErrCodeFileNotFound regardless of the requested code.
func WrapIO(err error, code, message, path string) *MCSError {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		code = ErrCodeFileNotFound
	}

	wrapped := Wrap(err, ErrorTypeIO, code, message)
	wrapped.FilePath = path
	return wrapped
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, message string) *MCSError {
	wrapped := Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
	if wrapped != nil {
		wrapped.Recoverable = false
	}
	return wrapped
}

// GetErrorType returns the error type if it's an MCSError, otherwise returns ErrorTypeInternal
func GetErrorType(err error) ErrorType {
	var me *MCSError
	if errors.As(err, &me) {
		return me.Type
	}
	return ErrorTypeInternal
}

// GetErrorCode returns the error code if it's an MCSError, otherwise returns empty string
func GetErrorCode(err error) string {
	var me *MCSError
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}
