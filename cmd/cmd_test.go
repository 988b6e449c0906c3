package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fisty/mcsfix/internal/border"
	"github.com/fisty/mcsfix/internal/errors"
	"github.com/fisty/mcsfix/internal/testutils"
	"github.com/fisty/mcsfix/internal/version"
)

// syncBuffer is a bytes.Buffer safe for the watcher's goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func quietOptions(root string) runOptions {
	return runOptions{Root: root, LogLevel: "error"}
}

func TestRootCommandRegistersCommands(t *testing.T) {
	want := []string{"all", "borders", "braces", "header", "names", "urls", "version", "watch"}

	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"config", "root", "log-level", "dry-run", "diff"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "r", flags.Lookup("root").Shorthand)
}

func TestLogLevelValidation(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)

	err := flag.Value.Set("loud")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetErrorCode(err))
	require.NoError(t, flag.Value.Set("debug"))
	assert.Equal(t, "debug", logLevel)
	require.NoError(t, flag.Value.Set("warn"))
}

func TestValidateChoice(t *testing.T) {
	validate := ValidateChoice("text", "json")

	assert.NoError(t, validate("json"))
	err := validate("xml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetErrorType(err))
	assert.Contains(t, err.Error(), "text, json")
}

func TestRunFamiliesBorders(t *testing.T) {
	resetViper(t)
	root := testutils.CreateTempProject(t)
	path := testutils.WriteZigFile(t, root, "lib/clock.zig", testutils.StandardZigContent["legacy"])

	var out bytes.Buffer
	report, err := runFamilies(context.Background(), &out, quietOptions(root), nil, []string{familyBorders})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, report.Fixed)
	engine := border.NewEngine(border.DefaultConfig())
	content := testutils.ReadFile(t, path)
	assert.Contains(t, content, engine.Opener("INIT", border.StyleHeavy))
	assert.Contains(t, content, engine.Closer(border.StyleHeavy))
	assert.Contains(t, content, "\n    return;\n")
	assert.Contains(t, out.String(), "Found 1 .zig files to process")
	assert.Contains(t, out.String(), "Fixed 1/1 files")
}

func TestRunFamiliesAllIsIdempotent(t *testing.T) {
	resetViper(t)
	root, paths := testutils.CreateTestCorpus(t)

	var first bytes.Buffer
	report, err := runFamilies(context.Background(), &first, quietOptions(root), nil, combinedOrder)
	require.NoError(t, err)
	assert.Len(t, report.Fixed, len(paths))
	assert.Empty(t, report.Failed)

	snapshot := make(map[string]string, len(paths))
	for _, p := range paths {
		snapshot[p] = testutils.ReadFile(t, p)
	}

	var second bytes.Buffer
	report, err = runFamilies(context.Background(), &second, quietOptions(root), nil, combinedOrder)
	require.NoError(t, err)
	assert.Empty(t, report.Fixed)
	assert.Contains(t, second.String(), "Fixed 0/4 files")

	for p, content := range snapshot {
		assert.Equal(t, content, testutils.ReadFile(t, p))
	}
}

func TestRunFamiliesAllProducesHeaders(t *testing.T) {
	resetViper(t)
	root, paths := testutils.CreateTestCorpus(t)

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, quietOptions(root), nil, combinedOrder)
	require.NoError(t, err)

	content := testutils.ReadFile(t, paths["rules_engine_test"])
	lines := strings.Split(content, "\n")
	require.Greater(t, len(lines), 7)
	assert.Equal(t, "// rules_engine_test.zig — Tests for NFL game clock rules engine", lines[0])
	assert.Equal(t, "// docs   : https://fisty.github.io/zig-nfl-clock/docs/lib/rules_engine_test.zig", lines[3])
	assert.Contains(t, content, `test "unit: RulesEngine: stops clock on incomplete pass" {`)
	assert.Contains(t, content, `test "integration: PlayHandler: handles kickoff" {`)
}

func TestRunFamiliesExplicitFiles(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	present := testutils.WriteZigFile(t, dir, "a_test.zig", "test \"unit: game_clock: ticks\"\n")
	missing := filepath.Join(dir, "missing.zig")

	var out bytes.Buffer
	report, err := runFamilies(context.Background(), &out, quietOptions(""), []string{missing, present}, []string{familyBraces, familyNames})
	require.NoError(t, err)

	require.Len(t, report.Failed, 1)
	assert.True(t, errors.IsFileNotFound(report.Failed[0].Err))
	assert.Equal(t, "test \"unit: GameClock: ticks\" {\n", testutils.ReadFile(t, present))
	assert.NotContains(t, out.String(), "Found")
}

func TestRunFamiliesDryRun(t *testing.T) {
	resetViper(t)
	root := testutils.CreateTempProject(t)
	original := "test \"unit: clock: ticks\"\n"
	path := testutils.WriteZigFile(t, root, "lib/a.zig", original)

	opts := quietOptions(root)
	opts.DryRun = true
	opts.Diff = true
	opts.Label = "test braces"

	var out bytes.Buffer
	_, err := runFamilies(context.Background(), &out, opts, nil, []string{familyBraces})
	require.NoError(t, err)

	assert.Equal(t, original, testutils.ReadFile(t, path))
	assert.Contains(t, out.String(), "✓ Would fix test braces in: "+path)
	assert.Contains(t, out.String(), "+test \"unit: clock: ticks\" {")
	assert.Contains(t, out.String(), "(dry run)")
}

func TestRunFamiliesMissingRoot(t *testing.T) {
	resetViper(t)

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, quietOptions(filepath.Join(t.TempDir(), "nope")), nil, combinedOrder)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRootUnreadable, errors.GetErrorCode(err))
}

func TestRunFamiliesInvalidConfig(t *testing.T) {
	resetViper(t)
	viper.Set("border.width", 5)

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, quietOptions(t.TempDir()), nil, combinedOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "border.width")
}

func TestRunFamiliesUnknownFamily(t *testing.T) {
	resetViper(t)

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, quietOptions(t.TempDir()), nil, []string{"spelling"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetErrorType(err))
}

func TestRunFamiliesRootIsFile(t *testing.T) {
	resetViper(t)
	path := testutils.WriteZigFile(t, t.TempDir(), "main.zig", "const a = 1;\n")

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, quietOptions(path), nil, combinedOrder)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPath, errors.GetErrorCode(err))
}

func TestRunFamiliesInvalidLogLevel(t *testing.T) {
	resetViper(t)

	_, err := runFamilies(context.Background(), &bytes.Buffer{}, runOptions{Root: t.TempDir(), LogLevel: "loud"}, nil, combinedOrder)
	assert.Error(t, err)
}

func TestWriteVersion(t *testing.T) {
	info := &version.BuildInfo{Version: "v1.0.0", GitCommit: "abc", GoVersion: "go1.24.4", Platform: "linux/amd64"}

	var text bytes.Buffer
	require.NoError(t, writeVersion(&text, "text", info))
	assert.Equal(t, info.String()+"\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeVersion(&js, "json", info))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "v1.0.0", decoded["version"])

	var y bytes.Buffer
	require.NoError(t, writeVersion(&y, "yaml", info))
	decoded = nil
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &decoded))
	assert.Equal(t, "linux/amd64", decoded["platform"])

	assert.Error(t, writeVersion(&bytes.Buffer{}, "xml", info))
}

func TestWatchProject(t *testing.T) {
	resetViper(t)
	root := testutils.CreateTempProject(t)
	existing := testutils.WriteZigFile(t, root, "lib/a_test.zig", "test \"unit: clock: ticks\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchProject(ctx, out, quietOptions(root), 50*time.Millisecond, true)
	}()

	// The initial run fixes files already present
	testutils.WaitForContent(t, existing, 3*time.Second, func(s string) bool {
		return strings.Contains(s, `ticks" {`)
	})
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching ")
	}, 3*time.Second, 10*time.Millisecond)

	added := testutils.WriteZigFile(t, root, "lib/b_test.zig", "test \"unit: game_clock: stops\"\n")
	got := testutils.WaitForContent(t, added, 3*time.Second, func(s string) bool {
		return strings.Contains(s, `test "unit: GameClock: stops" {`)
	})
	assert.True(t, strings.HasPrefix(got, "// b_test.zig — Test file\n"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, out.String(), "Stopping file watcher...")
}
