package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fisty/mcsfix/internal/border"
	"github.com/fisty/mcsfix/internal/braces"
	"github.com/fisty/mcsfix/internal/config"
	"github.com/fisty/mcsfix/internal/errors"
	"github.com/fisty/mcsfix/internal/header"
	"github.com/fisty/mcsfix/internal/logging"
	"github.com/fisty/mcsfix/internal/names"
	"github.com/fisty/mcsfix/internal/pipeline"
	"github.com/fisty/mcsfix/internal/scanner"
	"github.com/fisty/mcsfix/internal/urls"
)

// Pass families in the order the combined run applies them.
const (
	familyHeader  = "header"
	familyBorders = "borders"
	familyURLs    = "urls"
	familyBraces  = "braces"
	familyNames   = "names"
)

var combinedOrder = []string{familyHeader, familyBorders, familyURLs, familyBraces, familyNames}

// runOptions are the persistent flag values a run depends on.
type runOptions struct {
	// Root overrides project.root when non-empty
	Root     string
	LogLevel string
	DryRun   bool
	Diff     bool
	Label    string
}

func optionsFromFlags(cmd *cobra.Command) runOptions {
	opts := runOptions{LogLevel: logLevel, DryRun: dryRun, Diff: showDiff}
	if f := cmd.Flags().Lookup("root"); f != nil && f.Changed {
		opts.Root = rootDir
	}
	return opts
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLogger(level string, out io.Writer) (logging.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = lvl
	cfg.Output = out
	cfg.Component = "mcsfix"
	return logging.NewLogger(cfg), nil
}

// newPass builds one pass family from the configuration.
func newPass(cfg *config.Config, family string) (pipeline.Pass, error) {
	switch family {
	case familyHeader:
		return header.NewRewriter(cfg.HeaderOptions()), nil
	case familyBorders:
		return border.NewEngine(cfg.BorderOptions()), nil
	case familyURLs:
		return urls.NewRewriter(cfg.URLOptions()), nil
	case familyBraces:
		return braces.NewRepairer(cfg.Braces.Keyword), nil
	case familyNames:
		return names.NewNormalizer(cfg.Names.Keyword, cfg.Names.Compounds), nil
	default:
		return nil, errors.NewInternalError(errors.ErrCodeInternalError,
			fmt.Sprintf("unknown pass family %q", family), nil)
	}
}

// buildRunner loads the configuration and wires a runner for families.
func buildRunner(out, logOut io.Writer, opts runOptions, families []string) (*pipeline.Runner, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.Root != "" {
		cfg.Project.Root = opts.Root
	}

	logger, err := newLogger(opts.LogLevel, logOut)
	if err != nil {
		return nil, nil, err
	}

	passes := make([]pipeline.Pass, 0, len(families))
	for _, family := range families {
		pass, err := newPass(cfg, family)
		if err != nil {
			return nil, nil, err
		}
		passes = append(passes, pass)
	}

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Passes: passes,
		Walker: scanner.NewWalker(cfg.Project.Extension, cfg.Project.ExcludeDirs, logger),
		Writer: pipeline.NewFileWriter(cfg.Write.Retries, cfg.Write.RetryDelay),
		Output: out,
		Logger: logger,
		Options: pipeline.Options{
			Label:  opts.Label,
			DryRun: opts.DryRun,
			Diff:   opts.Diff,
		},
	})
	return runner, cfg, nil
}

// runFamilies runs families over the explicit paths, or over the project
// root when there are none. Per-file failures are reported, not returned.
func runFamilies(ctx context.Context, out io.Writer, opts runOptions, paths []string, families []string) (*pipeline.Report, error) {
	runner, cfg, err := buildRunner(out, os.Stderr, opts, families)
	if err != nil {
		return nil, err
	}

	if len(paths) > 0 {
		return runner.RunFiles(ctx, paths)
	}
	return runner.Run(ctx, cfg.Project.Root)
}

// passCommand builds the RunE of a fixer command.
func passCommand(label string, families ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd)
		opts.Label = label
		_, err := runFamilies(commandContext(cmd), cmd.OutOrStdout(), opts, args, families)
		return err
	}
}
