package version

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit, built string) {
	t.Helper()
	oldVersion, oldCommit, oldBuilt := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, built
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = oldVersion, oldCommit, oldBuilt
	})
}

func TestGetBuildInfoStamped(t *testing.T) {
	stamp(t, "v1.2.3", "0123456789abcdef", "2026-01-02T03:04:05Z")

	info := GetBuildInfo()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.True(t, info.IsRelease())
}

func TestGetBuildInfoDevCommit(t *testing.T) {
	stamp(t, "dev", "abcdef0123", "unknown")

	info := GetBuildInfo()
	assert.Equal(t, "dev-abcdef0", info.Version)
	assert.False(t, info.IsRelease())
}

func TestBuildInfoString(t *testing.T) {
	info := &BuildInfo{
		Version:   "v1.0.0",
		GitCommit: "abc",
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "Version:  v1.0.0\nCommit:   abc\nGo:       go1.24.4\nPlatform: linux/amd64", info.String())

	info.BuildTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info.Modified = true
	assert.Contains(t, info.String(), "Built:    2026-01-02T03:04:05Z")
	assert.Contains(t, info.String(), "Modified: true")
}
