// Package border normalizes MCS section markers.
//
// A section is a run of lines between a decorative opener and closer comment:
//
//	// ╔═══════════════════════════════════════ CORE ══════════════════════════════════════╗
//	    pub fn run() void {}
//	// ╚═══════════════════════════════════════════════════════════════════════════════════╝
//
// Heavy markers (╔ ╗ ╚ ╝ ═) delimit top-level sections, light markers
// (┌ ┐ └ ┘ ─) delimit nested subsections. The engine rebuilds every
// recognized marker at a fixed width, converts legacy "// ====" blocks into
// heavy openers, closes sections that were left open and indents section
// bodies. Lines that match no marker shape pass through untouched.
package border

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fisty/mcsfix/internal/types"
)

// Style is the glyph set of a marker.
type Style int

const (
	StyleHeavy Style = iota
	StyleLight
)

// String returns the string representation of the Style
func (s Style) String() string {
	if s == StyleLight {
		return "light"
	}
	return "heavy"
}

type glyphSet struct {
	openLeft   string
	openRight  string
	closeLeft  string
	closeRight string
	fill       string
}

var glyphs = map[Style]glyphSet{
	StyleHeavy: {openLeft: "╔", openRight: "╗", closeLeft: "╚", closeRight: "╝", fill: "═"},
	StyleLight: {openLeft: "┌", openRight: "┐", closeLeft: "└", closeRight: "┘", fill: "─"},
}

const (
	markerPrefix = "// "
	// prefix, both corners and the two spaces around the name
	openerDecoration = 3 + 1 + 1 + 2
	closerDecoration = 3 + 1 + 1
)

var (
	heavyOpenerRe = regexp.MustCompile(`^// ╔═+\s+(\w+)\s+═+╗\s*$`)
	heavyCloserRe = regexp.MustCompile(`^// ╚═+╝\s*$`)
	lightOpenerRe = regexp.MustCompile(`^// ┌─+\s+(\w+)\s+─+┐\s*$`)
	lightCloserRe = regexp.MustCompile(`^// └─+┘\s*$`)
	legacyRulerRe = regexp.MustCompile(`^//\s*=+\s*$`)
	legacyNameRe  = regexp.MustCompile(`^//\s+(\w+)(.*)$`)
)

// Config holds the engine geometry.
type Config struct {
	// Width is the total column count of every marker line
	Width int
	// Indent is prepended to body lines inside a section
	Indent string
	// KnownSections are names a legacy block may carry with trailing
	// words, e.g. "//  TEST SUITE" becomes TEST
	KnownSections []string
	// FlushKeywords mark body lines that are never re-indented
	FlushKeywords []string
}

// DefaultConfig returns the MCS geometry.
func DefaultConfig() Config {
	return Config{
		Width:         88,
		Indent:        "    ",
		KnownSections: []string{"PACK", "INIT", "CORE", "TEST", "TYPES"},
	}
}

// Section is a tracked region found by Sections.
type Section struct {
	Name  string
	Start int
	// End is the index of the closer line, or -1 when the section was never closed
	End   int
	Style Style
}

// Engine rewrites section markers and section bodies.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine. Zero fields fall back to DefaultConfig.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Indent == "" {
		cfg.Indent = def.Indent
	}
	if cfg.KnownSections == nil {
		cfg.KnownSections = def.KnownSections
	}
	return &Engine{cfg: cfg}
}

// Name implements pipeline.Pass.
func (e *Engine) Name() string {
	return "borders"
}

// Apply implements pipeline.Pass.
func (e *Engine) Apply(file *types.SourceFile) {
	file.Lines = e.Normalize(file.Lines)
}

// Opener renders an opener for name. The fill is split evenly around the
// name; an odd leftover column goes to the left run.
func (e *Engine) Opener(name string, style Style) string {
	g := glyphs[style]
	budget := e.cfg.Width - openerDecoration - utf8.RuneCountInString(name)
	if budget < 2 {
		budget = 2
	}
	right := budget / 2
	left := budget - right

	var b strings.Builder
	b.WriteString(markerPrefix)
	b.WriteString(g.openLeft)
	b.WriteString(strings.Repeat(g.fill, left))
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(strings.Repeat(g.fill, right))
	b.WriteString(g.openRight)
	return b.String()
}

// Closer renders a closer.
func (e *Engine) Closer(style Style) string {
	g := glyphs[style]
	fill := e.cfg.Width - closerDecoration
	if fill < 1 {
		fill = 1
	}
	return markerPrefix + g.closeLeft + strings.Repeat(g.fill, fill) + g.closeRight
}

// Normalize returns the rewritten line sequence.
func (e *Engine) Normalize(lines []string) []string {
	out := make([]string, 0, len(lines)+4)
	machine := NewMachine()

	for i := 0; i < len(lines); {
		mk := e.classify(lines, i)

		switch mk.kind {
		case markerOpener:
			act := machine.Step(Event{Kind: OpenerMatched, Name: mk.name, Style: mk.style})
			if act.Close || act.CloseNested {
				out = e.closeSections(out, act)
				out = append(out, "")
			}
			out = append(out, e.Opener(mk.name, act.Emit))
		case markerCloser:
			act := machine.Step(Event{Kind: CloserMatched, Style: mk.style})
			if act.CloseNested {
				out = e.appendCloser(out, StyleLight)
			}
			out = append(out, e.Closer(act.Emit))
		default:
			line := lines[i]
			if machine.State().Kind == OpenSection {
				line = e.indentLine(line)
			}
			out = append(out, line)
		}

		i += mk.span
	}

	if act := machine.Finish(); act.Close {
		trailingNewline := len(out) > 1 && out[len(out)-1] == ""
		if trailingNewline {
			out = out[:len(out)-1]
		}
		out = e.closeSections(out, act)
		if trailingNewline {
			out = append(out, "")
		}
	}

	return out
}

// Sections reports the tracked sections of lines as they are, without
// rewriting anything. Auto-closed sections report End as -1.
func (e *Engine) Sections(lines []string) []Section {
	var sections []Section
	machine := NewMachine()

	for i := 0; i < len(lines); {
		mk := e.classify(lines, i)

		switch mk.kind {
		case markerOpener:
			if act := machine.Step(Event{Kind: OpenerMatched, Name: mk.name, Style: mk.style}); !act.Nested {
				sections = append(sections, Section{Name: mk.name, Start: i, End: -1, Style: mk.style})
			}
		case markerCloser:
			wasOpen := machine.State().Kind == OpenSection
			act := machine.Step(Event{Kind: CloserMatched, Style: mk.style})
			if wasOpen && !act.Nested {
				sections[len(sections)-1].End = i
			}
		}

		i += mk.span
	}

	return sections
}

// closeSections writes the closers an action asks for. A pending nested
// subsection is closed directly above its parent's closer.
func (e *Engine) closeSections(out []string, act Action) []string {
	if act.CloseNested {
		out = e.appendCloser(out, StyleLight)
	}
	if !act.Close {
		return out
	}
	if act.CloseNested {
		return append(out, e.Closer(act.CloseStyle))
	}
	return e.appendCloser(out, act.CloseStyle)
}

func (e *Engine) appendCloser(out []string, style Style) []string {
	if len(out) > 0 && out[len(out)-1] != "" {
		out = append(out, "")
	}
	return append(out, e.Closer(style))
}

func (e *Engine) indentLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(line, e.cfg.Indent) {
		return line
	}
	for _, kw := range e.cfg.FlushKeywords {
		if kw != "" && strings.HasPrefix(trimmed, kw) {
			return line
		}
	}
	return e.cfg.Indent + strings.TrimLeft(line, " \t")
}

type markerKind int

const (
	markerNone markerKind = iota
	markerOpener
	markerCloser
)

type marker struct {
	kind  markerKind
	style Style
	name  string
	// span is the number of input lines the marker occupies
	span int
}

func (e *Engine) classify(lines []string, i int) marker {
	line := lines[i]

	if m := heavyOpenerRe.FindStringSubmatch(line); m != nil {
		return marker{kind: markerOpener, style: StyleHeavy, name: m[1], span: 1}
	}
	if m := lightOpenerRe.FindStringSubmatch(line); m != nil {
		return marker{kind: markerOpener, style: StyleLight, name: m[1], span: 1}
	}
	if heavyCloserRe.MatchString(line) {
		return marker{kind: markerCloser, style: StyleHeavy, span: 1}
	}
	if lightCloserRe.MatchString(line) {
		return marker{kind: markerCloser, style: StyleLight, span: 1}
	}
	if name, ok := e.legacyBlock(lines, i); ok {
		return marker{kind: markerOpener, style: StyleHeavy, name: name, span: 3}
	}

	return marker{kind: markerNone, span: 1}
}

// legacyBlock recognizes "// ====" / "//  NAME" / "// ====".
func (e *Engine) legacyBlock(lines []string, i int) (string, bool) {
	return legacySectionName(lines, i, e.cfg.KnownSections)
}

// OpensSection reports whether lines[i] starts a marker the engine turns
// into a section opener: a single-word box opener or a legacy block whose
// name is one word or begins with one of known.
func OpensSection(lines []string, i int, known []string) bool {
	if heavyOpenerRe.MatchString(lines[i]) || lightOpenerRe.MatchString(lines[i]) {
		return true
	}
	_, ok := legacySectionName(lines, i, known)
	return ok
}

func legacySectionName(lines []string, i int, known []string) (string, bool) {
	if i+2 >= len(lines) || !legacyRulerRe.MatchString(lines[i]) || !legacyRulerRe.MatchString(lines[i+2]) {
		return "", false
	}

	m := legacyNameRe.FindStringSubmatch(lines[i+1])
	if m == nil {
		return "", false
	}
	name, rest := m[1], strings.TrimSpace(m[2])
	if rest == "" {
		return name, true
	}
	for _, k := range known {
		if strings.HasPrefix(name, k) {
			return k, true
		}
	}
	return "", false
}
