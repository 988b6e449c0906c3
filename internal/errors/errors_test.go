package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCSErrorError(t *testing.T) {
	err := NewIOError(ErrCodeReadFailed, "read failed", fmt.Errorf("disk gone")).
		WithFile("lib/a.zig")

	assert.Equal(t, "[ERR_READ_FAILED] lib/a.zig read failed: disk gone", err.Error())
	assert.True(t, err.Recoverable)
}

func TestMCSErrorIs(t *testing.T) {
	a := NewIOError(ErrCodeWriteFailed, "one", nil)
	b := NewIOError(ErrCodeWriteFailed, "two", nil)
	c := NewIOError(ErrCodeReadFailed, "three", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestErrFileNotFound(t *testing.T) {
	err := ErrFileNotFound("missing.zig")

	assert.True(t, IsFileNotFound(err))
	assert.True(t, IsRecoverable(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "missing.zig", err.FilePath)
}

func TestErrRootUnreadable(t *testing.T) {
	err := ErrRootUnreadable("/nope", os.ErrPermission)

	assert.False(t, IsRecoverable(err))
	assert.Equal(t, ErrorTypeIO, GetErrorType(err))
	assert.Equal(t, ErrCodeRootUnreadable, GetErrorCode(err))
}

func TestErrInvalidPath(t *testing.T) {
	err := ErrInvalidPath("main.zig", "project root is not a directory")

	assert.False(t, IsRecoverable(err))
	assert.Equal(t, ErrorTypeConfig, GetErrorType(err))
	assert.Equal(t, ErrCodeInvalidPath, GetErrorCode(err))
	assert.Equal(t, "[ERR_INVALID_PATH] main.zig project root is not a directory", err.Error())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(ErrCodeValidation, "bad flag")

	assert.True(t, IsRecoverable(err))
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.Equal(t, "[ERR_VALIDATION_FAILED] bad flag", err.Error())
}

func TestWrapIO(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, statErr := os.Stat("definitely/not/here.zig")
		err := WrapIO(statErr, ErrCodeReadFailed, "cannot read file", "definitely/not/here.zig")

		require.NotNil(t, err)
		assert.Equal(t, ErrCodeFileNotFound, err.Code)
		assert.True(t, IsFileNotFound(err))
	})

	t.Run("other failure", func(t *testing.T) {
		err := WrapIO(os.ErrPermission, ErrCodeWriteFailed, "cannot write file", "a.zig")

		assert.Equal(t, ErrCodeWriteFailed, err.Code)
		assert.False(t, IsFileNotFound(err))
		assert.True(t, errors.Is(err, os.ErrPermission))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, WrapIO(nil, ErrCodeWriteFailed, "x", "a.zig"))
	})
}

func TestWrapPreservesFile(t *testing.T) {
	inner := NewIOError(ErrCodeReadFailed, "read", nil).WithFile("a.zig")
	outer := Wrap(inner, ErrorTypeInternal, ErrCodeInternalError, "pass failed")

	assert.Equal(t, "a.zig", outer.FilePath)
	assert.True(t, outer.Recoverable)
	assert.Equal(t, ErrorTypeInternal, GetErrorType(outer))
	assert.Equal(t, "", GetErrorCode(fmt.Errorf("plain")))
}

func TestValidationErrorCollection(t *testing.T) {
	var vec ValidationErrorCollection
	assert.Nil(t, vec.ToMCSError())
	assert.Equal(t, "no validation errors", vec.Error())

	vec.AddField("border.width", 3, "too small", "use 88")
	assert.Equal(t, "validation error in field 'border.width': too small", vec.Error())

	vec.AddField("project.extension", "", "must not be empty")
	assert.Equal(t, "validation failed with 2 errors", vec.Error())

	me := vec.ToMCSError()
	require.NotNil(t, me)
	assert.Equal(t, ErrorTypeConfig, me.Type)
	assert.Equal(t, ErrCodeConfigInvalid, me.Code)
	assert.Contains(t, me.Context, "border.width")
}

type recordingLogger struct {
	errors []string
	warns  []string
}

func (r *recordingLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	r.errors = append(r.errors, msg)
}

func (r *recordingLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	r.warns = append(r.warns, msg)
}

func TestErrorHandler(t *testing.T) {
	logger := &recordingLogger{}
	handler := NewErrorHandler(logger)
	ctx := context.Background()

	handler.Handle(ctx, nil)
	handler.Handle(ctx, ErrFileNotFound("a.zig"))
	handler.Handle(ctx, NewConfigError(ErrCodeConfigInvalid, "bad"))
	handler.Handle(ctx, fmt.Errorf("plain"))

	assert.Equal(t, []string{"File skipped"}, logger.warns)
	assert.Equal(t, []string{"Error occurred", "Unhandled error occurred"}, logger.errors)
}
