package cmd

import (
	"github.com/spf13/cobra"
)

var headerCmd = &cobra.Command{
	Use:   "header [files...]",
	Short: "Rewrite file headers into the MCS metadata block",
	Long: `Replace the leading comment block of every file with the canonical MCS
header: the file name with a description, followed by the repo, docs and
author lines and the attribution.

The description is chosen by the first header rule whose substrings all
occur in the file name.

Examples:
  mcsfix header                   # All files under the project root
  mcsfix header lib/clock.zig     # A single file`,
	RunE: passCommand("headers", familyHeader),
}

var bordersCmd = &cobra.Command{
	Use:   "borders [files...]",
	Short: "Normalize section borders and body indentation",
	Long: `Rewrite every section opener and closer to the exact MCS width, convert
legacy "// ====" blocks into heavy openers, close sections left open, and
indent section bodies by one unit.

Examples:
  mcsfix borders
  mcsfix borders --dry-run --diff lib/game_clock/game_clock.zig`,
	RunE: passCommand("borders", familyBorders),
}

var urlsCmd = &cobra.Command{
	Use:   "urls [files...]",
	Short: "Point repo and docs header lines at the canonical locations",
	RunE:  passCommand("URLs", familyURLs),
}

var bracesCmd = &cobra.Command{
	Use:   "braces [files...]",
	Short: "Append the missing opening brace to test declarations",
	RunE:  passCommand("test braces", familyBraces),
}

var namesCmd = &cobra.Command{
	Use:   "names [files...]",
	Short: "PascalCase the component segment of test titles",
	Long: `Rewrite test titles of the form "category: component_name: description"
so that the component segment is PascalCase, e.g. "unit: GameClock: ticks".`,
	RunE: passCommand("test names", familyNames),
}

var allCmd = &cobra.Command{
	Use:   "all [files...]",
	Short: "Run every fixer in order",
	Long: `Run the header, borders, urls, braces and names fixers over each file in
that order, writing each file at most once.`,
	Aliases: []string{"fix"},
	RunE:    passCommand("MCS issues", combinedOrder...),
}

func init() {
	rootCmd.AddCommand(headerCmd, bordersCmd, urlsCmd, bracesCmd, namesCmd, allCmd)
}
