// Package testutils holds fixtures shared by the mcsfix package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CreateTempProject creates a temporary Zig project layout for testing
func CreateTempProject(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	dirs := []string{
		"lib",
		"lib/game_clock",
		".zig-cache/o",
		"zig-out/bin",
	}

	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		require.NoError(t, err)
	}

	return tempDir
}

// WriteZigFile writes content to rel under dir, creating parents as needed
func WriteZigFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content of path as a string
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// CreateTestCorpus writes every StandardZigContent fixture under lib/ of a
// fresh project and returns the project root with the written paths.
func CreateTestCorpus(t *testing.T) (string, map[string]string) {
	t.Helper()
	root := CreateTempProject(t)
	paths := make(map[string]string, len(StandardZigContent))
	for name, content := range StandardZigContent {
		paths[name] = WriteZigFile(t, root, filepath.Join("lib", name+".zig"), content)
	}
	return root, paths
}

// StandardZigContent provides Zig sources that violate the MCS conventions
// in typical ways.
var StandardZigContent = map[string]string{
	"legacy": `// legacy.zig — old header
// Some notes.

const std = @import("std");

// ============================================
//  INIT
// ============================================

pub fn init() void {
return;
}
`,
	"rules_engine_test": `// rules_engine_test.zig
const std = @import("std");

test "unit: rules_engine: stops clock on incomplete pass"
    try std.testing.expect(true);
}

test "integration: play_handler: handles kickoff" {
    try std.testing.expect(true);
}
`,
	"urls": `// urls.zig — Implementation file
//
// repo   : https://github.com/someone/old-repo
// docs   : https://old.example.io/zig-nfl-clock/docs/lib/urls
// author : https://github.com/scoomboot
//
// Vibe coded by Scoom.

const x = 1;
`,
	"clean": `const std = @import("std");
`,
}

// AssertFilePermissions checks the permission bits of path
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode()
	require.Equal(t, expectedMode, actualMode&os.FileMode(0777),
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode&os.FileMode(0777), expectedMode)
}

// WaitForFileChange waits for a file to be modified (useful for testing file watchers)
func WaitForFileChange(
	t *testing.T,
	filePath string,
	originalModTime time.Time,
	timeout time.Duration,
) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}

// WaitForContent polls path until its content satisfies cond or timeout
// elapses.
func WaitForContent(t *testing.T, path string, timeout time.Duration, cond func(string) bool) string {
	t.Helper()
	deadline := time.Now().Add(timeout)

	var last string
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil {
			last = string(data)
			if cond(last) {
				return last
			}
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s did not reach the expected content within %v; last content:\n%s", path, timeout, last)
	return last
}
