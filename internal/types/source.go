// Package types provides common type definitions used throughout mcsfix.
// This package contains shared types to avoid circular dependencies between packages.
package types

import (
	"os"
	"strings"
)

// SourceFile is the working copy of one file in the corpus. Passes mutate
// Lines in place; the original content is kept for change detection.
type SourceFile struct {
	// Path is the location the file was read from and will be written back to
	Path string
	// Lines holds the content split on "\n". A trailing newline shows up as
	// a final empty element.
	Lines []string
	// Mode is the permission set of the file on disk
	Mode os.FileMode

	original string
}

// NewSourceFile builds a SourceFile from in-memory content.
func NewSourceFile(path, content string) *SourceFile {
	return &SourceFile{
		Path:     path,
		Lines:    strings.Split(content, "\n"),
		Mode:     0o644,
		original: content,
	}
}

// LoadSourceFile reads a file from disk.
func LoadSourceFile(path string) (*SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file := NewSourceFile(path, string(data))
	file.Mode = info.Mode().Perm()
	return file, nil
}

// Content joins the working lines back into file content.
func (f *SourceFile) Content() string {
	return strings.Join(f.Lines, "\n")
}

// Original returns the content as it was when the file was loaded.
func (f *SourceFile) Original() string {
	return f.original
}

// Changed reports whether the working copy differs from the original.
func (f *SourceFile) Changed() bool {
	return f.Content() != f.original
}
