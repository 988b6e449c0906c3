package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func zigFilter(path string) bool {
	return filepath.Ext(path) == ".zig"
}

func startWatcher(t *testing.T, root string, delay time.Duration) (*FileWatcher, chan []ChangeEvent) {
	t.Helper()
	fw, err := NewFileWatcher(delay, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fw.Stop() })

	batches := make(chan []ChangeEvent, 10)
	fw.AddFilter(zigFilter)
	fw.SkipDirs(func(name string) bool { return name == "zig-out" })
	fw.AddHandler(func(_ context.Context, events []ChangeEvent) error {
		batches <- events
		return nil
	})
	require.NoError(t, fw.AddRecursive(root))
	require.NoError(t, fw.Start(context.Background()))
	return fw, batches
}

func waitBatch(t *testing.T, batches chan []ChangeEvent) []ChangeEvent {
	t.Helper()
	select {
	case events := <-batches:
		return events
	case <-time.After(3 * time.Second):
		t.Fatal("no batch delivered")
		return nil
	}
}

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestNewFileWatcher(t *testing.T) {
	watcher, err := NewFileWatcher(0, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.NotNil(t, watcher.watcher)
	assert.Equal(t, DefaultDebounce, watcher.debouncer.delay)
	assert.Empty(t, watcher.filters)
	assert.Empty(t, watcher.handlers)
}

func TestFileWatcherAddPath(t *testing.T) {
	watcher, err := NewFileWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	dir := t.TempDir()
	assert.NoError(t, watcher.AddPath(dir))
	assert.Error(t, watcher.AddPath(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "a.zig")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, watcher.AddPath(file))
}

func TestFileWatcherDeliversFilteredBatch(t *testing.T) {
	root := t.TempDir()
	_, batches := startWatcher(t, root, 50*time.Millisecond)

	zig := filepath.Join(root, "clock.zig")
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(zig, []byte("const a = 1;\n"), 0o644))

	events := waitBatch(t, batches)
	require.Len(t, events, 1)
	assert.Equal(t, zig, events[0].Path)
	assert.Equal(t, []string{zig}, ExistingPaths(events))
}

func TestFileWatcherWatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	_, batches := startWatcher(t, root, 50*time.Millisecond)

	sub := filepath.Join(root, "lib")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watch loop a moment to register the new directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "timer.zig")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	events := waitBatch(t, batches)
	assert.Equal(t, []string{path}, ExistingPaths(events))
}

func TestFileWatcherSkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "zig-out")
	require.NoError(t, os.Mkdir(out, 0o755))
	_, batches := startWatcher(t, root, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(out, "gen.zig"), []byte("x"), 0o644))

	select {
	case events := <-batches:
		t.Fatalf("unexpected batch %v", events)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDebouncerGroupsAndDeduplicates(t *testing.T) {
	d := &Debouncer{
		delay:  20 * time.Millisecond,
		events: make(chan ChangeEvent, 10),
		output: make(chan []ChangeEvent, 10),
	}

	d.addEvent(ChangeEvent{Type: EventTypeCreated, Path: "b.zig"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "a.zig"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "b.zig"})

	select {
	case events := <-d.output:
		require.Len(t, events, 2)
		assert.Equal(t, "a.zig", events[0].Path)
		assert.Equal(t, "b.zig", events[1].Path)
		assert.Equal(t, EventTypeModified, events[1].Type)
	case <-time.After(time.Second):
		t.Fatal("debouncer did not flush")
	}
	d.stop()
}

func TestExistingPaths(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "a.zig")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	events := []ChangeEvent{
		{Type: EventTypeModified, Path: present},
		{Type: EventTypeCreated, Path: filepath.Join(dir, "vanished.zig")},
		{Type: EventTypeDeleted, Path: present},
		{Type: EventTypeModified, Path: dir},
	}

	assert.Equal(t, []string{present}, ExistingPaths(events))
}

func TestStopIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start(context.Background()))

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestStopsWhenContextCancelled(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fw.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		fw.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher goroutines did not exit")
	}
	require.NoError(t, fw.Stop())
}
