// Package cmd implements the mcsfix command-line interface.
//
// # Available Commands
//
//   - all: Run every fixer in the fixed order (header, borders, urls, braces, names)
//   - header: Rewrite leading comment blocks into the MCS metadata header
//   - borders: Normalize section openers, closers and body indentation
//   - urls: Point repo and docs header lines at the canonical locations
//   - braces: Repair test declarations missing their opening brace
//   - names: PascalCase the component segment of test titles
//   - watch: Re-run every fixer on files as they change
//   - version: Print build information
//
// # Command Examples
//
//	// Fix the whole project
//	mcsfix all
//
//	// Preview border changes for one file
//	mcsfix borders --dry-run --diff lib/game_clock/game_clock.zig
//
//	// Use another project root and more logging
//	mcsfix all --root ../zig-nfl-clock --log-level debug
//
// Exit status is zero whether or not files changed; it is non-zero only when
// the run itself fails, e.g. an unreadable root or an invalid configuration.
package cmd
