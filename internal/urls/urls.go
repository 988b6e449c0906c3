// Package urls rewrites the URL fields of existing MCS headers.
package urls

import (
	"regexp"
	"strings"

	"github.com/fisty/mcsfix/internal/types"
)

// Field labels as they appear in a header, padded to align the colons.
const (
	RepoLabel   = "// repo   : "
	DocsLabel   = "// docs   : "
	AuthorLabel = "// author : "
)

var docsPathRe = regexp.MustCompile(`^// docs   : https?://[^/]+/(.*)$`)

// Config holds the canonical URL values.
type Config struct {
	RepoURL string
	// DocsBase is the canonical docs location without a trailing slash
	DocsBase string
}

// DefaultConfig returns the canonical zig-nfl-clock URLs.
func DefaultConfig() Config {
	return Config{
		RepoURL:  "https://github.com/fisty/zig-nfl-clock",
		DocsBase: "https://fisty.github.io/zig-nfl-clock",
	}
}

// Rewriter fixes repo and docs lines.
type Rewriter struct {
	repoLine string
	docsBase string
}

// NewRewriter creates a URL field rewriter.
func NewRewriter(cfg Config) *Rewriter {
	return &Rewriter{
		repoLine: RepoLabel + cfg.RepoURL,
		docsBase: strings.TrimSuffix(cfg.DocsBase, "/") + "/",
	}
}

// Name implements pipeline.Pass.
func (r *Rewriter) Name() string {
	return "URLs"
}

// Apply implements pipeline.Pass.
func (r *Rewriter) Apply(file *types.SourceFile) {
	for i, line := range file.Lines {
		file.Lines[i] = r.RewriteLine(line)
	}
}

// RewriteLine returns line with its URL field fixed. Lines that are not
// repo or docs fields are returned unchanged; author fields are kept as is.
func (r *Rewriter) RewriteLine(line string) string {
	switch {
	case strings.HasPrefix(line, RepoLabel):
		return r.repoLine
	case strings.HasPrefix(line, DocsLabel):
		return r.rewriteDocs(line)
	default:
		return line
	}
}

func (r *Rewriter) rewriteDocs(line string) string {
	if strings.HasPrefix(line, DocsLabel+r.docsBase) {
		return line
	}
	m := docsPathRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return DocsLabel + r.docsBase + m[1]
}
