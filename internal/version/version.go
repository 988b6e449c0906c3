// Package version reports the build identity of the mcsfix binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit" yaml:"git_commit"`
	BuildTime time.Time `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	Platform  string    `json:"platform" yaml:"platform"`
	Modified  bool      `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// These variables are set at build time using -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339
	BuildTime = "unknown"
)

// GetBuildInfo returns the build information of the running binary.
func GetBuildInfo() *BuildInfo {
	settings := vcsSettings()

	info := &BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Modified:  settings["vcs.modified"] == "true",
	}

	if info.GitCommit == "" || info.GitCommit == "unknown" {
		if rev, ok := settings["vcs.revision"]; ok {
			info.GitCommit = rev
		}
	}
	if info.Version == "" || info.Version == "dev" {
		info.Version = "dev"
		if len(info.GitCommit) >= 7 && info.GitCommit != "unknown" {
			info.Version = "dev-" + info.GitCommit[:7]
		}
	}

	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildTime = t
	} else if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		info.BuildTime = t
	}

	return info
}

// IsRelease reports whether the binary was stamped with a release version.
func (b *BuildInfo) IsRelease() bool {
	return b.Version != "dev" && !strings.HasPrefix(b.Version, "dev-")
}

// String renders the info as aligned text lines.
func (b *BuildInfo) String() string {
	lines := []string{
		fmt.Sprintf("Version:  %s", b.Version),
		fmt.Sprintf("Commit:   %s", b.GitCommit),
	}
	if !b.BuildTime.IsZero() {
		lines = append(lines, fmt.Sprintf("Built:    %s", b.BuildTime.Format(time.RFC3339)))
	}
	lines = append(lines,
		fmt.Sprintf("Go:       %s", b.GoVersion),
		fmt.Sprintf("Platform: %s", b.Platform),
	)
	if b.Modified {
		lines = append(lines, "Modified: true")
	}
	return strings.Join(lines, "\n")
}

func vcsSettings() map[string]string {
	settings := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range info.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			settings[s.Key] = s.Value
		}
	}
	return settings
}
