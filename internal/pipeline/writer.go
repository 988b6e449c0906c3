package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/fisty/mcsfix/internal/types"
)

// Writer persists a changed file.
type Writer interface {
	Write(ctx context.Context, file *types.SourceFile) error
}

// FileWriter replaces files atomically: content goes to a temporary file in
// the same directory which is then renamed over the original. Transient
// failures are retried.
type FileWriter struct {
	attempts uint
	delay    time.Duration
}

// NewFileWriter creates a writer that tries each write up to attempts times.
func NewFileWriter(attempts uint, delay time.Duration) *FileWriter {
	if attempts < 1 {
		attempts = 1
	}
	return &FileWriter{attempts: attempts, delay: delay}
}

// Write implements Writer.
func (w *FileWriter) Write(ctx context.Context, file *types.SourceFile) error {
	data := []byte(file.Content())
	mode := file.Mode
	if mode == 0 {
		mode = 0o644
	}

	return retry.Do(
		func() error {
			return writeAtomic(file.Path, data, mode)
		},
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
	)
}

// retryable reports whether a failed write may succeed on a later attempt.
func retryable(err error) bool {
	for _, permanent := range []error{os.ErrNotExist, os.ErrPermission, syscall.EROFS, syscall.ENOSPC} {
		if errors.Is(err, permanent) {
			return false
		}
	}
	return true
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".mcsfix-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
