// Package errors provides the error taxonomy used by mcsfix.
//
// Per-file failures (missing files, read and write errors) are recoverable
// at the run level: they are reported and the run moves on to the next file.
// Configuration and root discovery failures abort the run.
package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeFileNotFound   = "ERR_FILE_NOT_FOUND"
	ErrCodeReadFailed     = "ERR_READ_FAILED"
	ErrCodeWriteFailed    = "ERR_WRITE_FAILED"
	ErrCodeRootUnreadable = "ERR_ROOT_UNREADABLE"
	ErrCodeConfigInvalid  = "ERR_CONFIG_INVALID"
	ErrCodeInvalidPath    = "ERR_INVALID_PATH"
	ErrCodeInternalError  = "ERR_INTERNAL"
	ErrCodeValidation     = "ERR_VALIDATION_FAILED"
)

// MCSError is a structured error type with context.
type MCSError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *MCSError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *MCSError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *MCSError) Is(target error) bool {
	var t *MCSError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *MCSError) WithContext(key string, value interface{}) *MCSError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile attaches the file the error relates to.
func (e *MCSError) WithFile(path string) *MCSError {
	e.FilePath = path

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *MCSError {
	return &MCSError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error. I/O errors are scoped to a single file,
// so the run can continue past them.
func NewIOError(code, message string, cause error) *MCSError {
	return &MCSError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *MCSError {
	return &MCSError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *MCSError {
	return &MCSError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// ErrFileNotFound creates the error reported for a referenced path that does not exist.
func ErrFileNotFound(path string) *MCSError {
	return NewIOError(ErrCodeFileNotFound, "file not found", os.ErrNotExist).WithFile(path)
}

// ErrRootUnreadable creates the run-level error for a corpus root that cannot be walked.
func ErrRootUnreadable(root string, cause error) *MCSError {
	err := NewIOError(ErrCodeRootUnreadable, "cannot read project root", cause).WithFile(root)
	err.Recoverable = false
	return err
}

// ErrInvalidPath creates the run-level error for a path that exists but
// cannot serve its role, such as a root that is a regular file.
func ErrInvalidPath(path, message string) *MCSError {
	return NewConfigError(ErrCodeInvalidPath, message).WithFile(path)
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var me *MCSError
	if errors.As(err, &me) {
		return me.Recoverable
	}

	return false
}

// IsFileNotFound checks if an error reports a missing file.
func IsFileNotFound(err error) bool {
	var me *MCSError
	if errors.As(err, &me) && me.Code == ErrCodeFileNotFound {
		return true
	}

	return errors.Is(err, os.ErrNotExist)
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level that matches its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var me *MCSError
	if !errors.As(err, &me) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch {
	case me.Type == ErrorTypeIO && me.Recoverable:
		h.logger.Warn(ctx, err, "File skipped",
			"type", me.Type,
			"code", me.Code,
			"file", me.FilePath)
	case me.Type == ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Validation error occurred",
			"type", me.Type,
			"code", me.Code)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", me.Type,
			"code", me.Code,
			"file", me.FilePath)
	}
}

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) {
	vec.Errors = append(vec.Errors, NewFieldValidationError(field, value, message, suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToMCSError converts the validation collection to a config error.
func (vec *ValidationErrorCollection) ToMCSError() *MCSError {
	if !vec.HasErrors() {
		return nil
	}

	messages := make([]string, 0, len(vec.Errors))
	context := make(map[string]interface{})

	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	err := NewConfigError(ErrCodeConfigInvalid, strings.Join(messages, "; "))
	err.Context = context
	return err
}
