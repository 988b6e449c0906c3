// Package braces repairs test declarations that lost their opening brace.
package braces

import (
	"regexp"
	"strings"

	"github.com/fisty/mcsfix/internal/types"
)

// Repairer appends " {" to lines of the form `<keyword> "title"`.
type Repairer struct {
	re *regexp.Regexp
}

// NewRepairer creates a repairer for declarations introduced by keyword.
func NewRepairer(keyword string) *Repairer {
	if keyword == "" {
		keyword = "test"
	}
	return &Repairer{
		re: regexp.MustCompile(`^\s*` + regexp.QuoteMeta(keyword) + `\s+"[^"]+"\s*$`),
	}
}

// Name implements pipeline.Pass.
func (r *Repairer) Name() string {
	return "test braces"
}

// Apply implements pipeline.Pass.
func (r *Repairer) Apply(file *types.SourceFile) {
	for i, line := range file.Lines {
		file.Lines[i] = r.RepairLine(line)
	}
}

// RepairLine returns line with the block-opening brace appended when it is missing.
func (r *Repairer) RepairLine(line string) string {
	if !r.re.MatchString(line) {
		return line
	}
	return strings.TrimRight(line, " \t") + " {"
}
