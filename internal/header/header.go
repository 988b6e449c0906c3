// Package header rewrites the leading comment block of a file into the
// canonical MCS metadata header.
package header

import (
	"path/filepath"
	"strings"

	"github.com/fisty/mcsfix/internal/border"
	"github.com/fisty/mcsfix/internal/types"
)

// Rule maps filenames to a description. A rule matches when every entry
// of Contains is a substring of the file's base name.
type Rule struct {
	Contains    []string `mapstructure:"contains" yaml:"contains"`
	Description string   `mapstructure:"description" yaml:"description"`
}

// Matches reports whether the rule applies to name.
func (r Rule) Matches(name string) bool {
	if len(r.Contains) == 0 {
		return false
	}
	for _, s := range r.Contains {
		if !strings.Contains(name, s) {
			return false
		}
	}
	return true
}

// DefaultRules is the ordered description table. Order matters: the test
// variants come before the plain subsystem rules.
func DefaultRules() []Rule {
	return []Rule{
		{Contains: []string{"test", "rules_engine"}, Description: "Tests for NFL game clock rules engine"},
		{Contains: []string{"test", "play_handler"}, Description: "Tests for play outcome processing"},
		{Contains: []string{"test"}, Description: "Test file"},
		{Contains: []string{"rules_engine"}, Description: "NFL game clock rules engine"},
		{Contains: []string{"play_handler"}, Description: "Play outcome processing for game clock"},
	}
}

// Config holds the values every generated header carries.
type Config struct {
	// ProjectRoot is the directory docs paths are made relative to
	ProjectRoot string
	RepoURL     string
	// DocsBase is prefixed to the relative path, including its trailing slash
	DocsBase    string
	AuthorURL   string
	Attribution string
	Rules       []Rule
	Fallback    string

	// KnownSections must match the border engine's list so both passes
	// agree on where the header ends
	KnownSections []string
}

// DefaultConfig returns the zig-nfl-clock header values.
func DefaultConfig() Config {
	return Config{
		ProjectRoot:   ".",
		RepoURL:       "https://github.com/fisty/zig-nfl-clock",
		DocsBase:      "https://fisty.github.io/zig-nfl-clock/docs/",
		AuthorURL:     "https://github.com/scoomboot",
		Attribution:   "Vibe coded by Scoom.",
		Rules:         DefaultRules(),
		Fallback:      "Implementation file",
		KnownSections: border.DefaultConfig().KnownSections,
	}
}

// Metadata is the derived content of one header.
type Metadata struct {
	Filename    string
	Description string
	RepoURL     string
	DocsURL     string
	AuthorURL   string
	Attribution string
}

// Lines renders the six header lines.
func (m Metadata) Lines() []string {
	return []string{
		"// " + m.Filename + " — " + m.Description,
		"//",
		"// repo   : " + m.RepoURL,
		"// docs   : " + m.DocsURL,
		"// author : " + m.AuthorURL,
		"// " + m.Attribution,
	}
}

// Rewriter replaces file headers.
type Rewriter struct {
	cfg Config
}

// NewRewriter creates a header rewriter.
func NewRewriter(cfg Config) *Rewriter {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultConfig().Fallback
	}
	if cfg.KnownSections == nil {
		cfg.KnownSections = border.DefaultConfig().KnownSections
	}
	return &Rewriter{cfg: cfg}
}

// Name implements pipeline.Pass.
func (r *Rewriter) Name() string {
	return "header"
}

// Describe returns the description of the first matching rule, or the fallback.
func (r *Rewriter) Describe(filename string) string {
	for _, rule := range r.cfg.Rules {
		if rule.Matches(filename) {
			return rule.Description
		}
	}
	return r.cfg.Fallback
}

// Metadata derives the header content for a file path.
func (r *Rewriter) Metadata(path string) Metadata {
	name := filepath.Base(path)
	return Metadata{
		Filename:    name,
		Description: r.Describe(name),
		RepoURL:     r.cfg.RepoURL,
		DocsURL:     r.cfg.DocsBase + r.relativePath(path),
		AuthorURL:   r.cfg.AuthorURL,
		Attribution: r.cfg.Attribution,
	}
}

// Apply implements pipeline.Pass.
func (r *Rewriter) Apply(file *types.SourceFile) {
	file.Lines = r.Rewrite(file.Path, file.Lines)
}

// Rewrite replaces the leading comment block of lines with the header for
// path, followed by one blank line and the rest of the file.
func (r *Rewriter) Rewrite(path string, lines []string) []string {
	body := lines[HeaderEnd(lines, r.cfg.KnownSections):]

	out := make([]string, 0, len(body)+7)
	out = append(out, r.Metadata(path).Lines()...)
	out = append(out, "")
	return append(out, body...)
}

// HeaderEnd returns the index of the first line after the leading run of
// comment and blank lines. A line the border engine would turn into a
// section opener ends the run, so legacy banners that are not sections
// stay part of the header and get replaced.
func HeaderEnd(lines []string, knownSections []string) int {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") || border.OpensSection(lines, i, knownSections) {
			return i
		}
	}
	return len(lines)
}

func (r *Rewriter) relativePath(path string) string {
	root := r.cfg.ProjectRoot
	if root == "" {
		return filepath.ToSlash(path)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
