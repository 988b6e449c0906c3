// Package names converts the component segment of test titles from
// snake_case to PascalCase:
//
//	test "category: play_handler: returns correct penalty" {
//	test "category: PlayHandler: returns correct penalty" {
package names

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fisty/mcsfix/internal/types"
)

// DefaultCompounds maps components whose PascalCase form is fixed.
func DefaultCompounds() map[string]string {
	return map[string]string{
		"game_clock":     "GameClock",
		"time_formatter": "TimeFormatter",
		"rules_engine":   "RulesEngine",
		"play_handler":   "PlayHandler",
		"config":         "Config",
	}
}

// Title is a parsed test declaration title.
type Title struct {
	Indent      string
	Category    string
	Component   string
	Description string
	// Rest is whatever follows the closing quote, usually " {"
	Rest string
}

// Normalizer rewrites test titles.
type Normalizer struct {
	keyword   string
	re        *regexp.Regexp
	compounds map[string]string
	caser     cases.Caser
}

// NewNormalizer creates a normalizer. compounds extends DefaultCompounds.
func NewNormalizer(keyword string, compounds map[string]string) *Normalizer {
	if keyword == "" {
		keyword = "test"
	}
	table := DefaultCompounds()
	for k, v := range compounds {
		table[k] = v
	}
	return &Normalizer{
		keyword:   keyword,
		re:        regexp.MustCompile(`^(\s*)` + regexp.QuoteMeta(keyword) + `\s+"([^:"]+):\s+([a-z_]+):\s+([^"]+)"(.*)$`),
		compounds: table,
		caser:     cases.Title(language.Und),
	}
}

// Name implements pipeline.Pass.
func (n *Normalizer) Name() string {
	return "test names"
}

// Apply implements pipeline.Pass.
func (n *Normalizer) Apply(file *types.SourceFile) {
	for i, line := range file.Lines {
		file.Lines[i] = n.NormalizeLine(line)
	}
}

// Parse splits a test declaration line. It only matches titles whose
// component is still lowercase snake_case.
func (n *Normalizer) Parse(line string) (Title, bool) {
	m := n.re.FindStringSubmatch(line)
	if m == nil {
		return Title{}, false
	}
	return Title{Indent: m[1], Category: m[2], Component: m[3], Description: m[4], Rest: m[5]}, true
}

// NormalizeLine returns line with its component segment in PascalCase.
func (n *Normalizer) NormalizeLine(line string) string {
	title, ok := n.Parse(line)
	if !ok {
		return line
	}
	component := n.Pascalize(title.Component)
	if component == title.Component {
		return line
	}
	return title.Indent + n.keyword + ` "` + title.Category + ": " + component + ": " + title.Description + `"` + title.Rest
}

// Pascalize converts a snake_case token. Known compounds come from the
// lookup table; anything else is split on "_" and each piece title-cased.
func (n *Normalizer) Pascalize(token string) string {
	if v, ok := n.compounds[token]; ok {
		return v
	}

	var b strings.Builder
	for _, part := range strings.Split(token, "_") {
		if part == "" {
			continue
		}
		b.WriteString(n.caser.String(part))
	}
	if b.Len() == 0 {
		return token
	}
	return b.String()
}
