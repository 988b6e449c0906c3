// Package pipeline runs MCS passes over a corpus of files.
//
// Each file is loaded once, threaded through the configured passes in
// order, and written back only when its content changed. Failures are
// isolated per file: the run reports them and continues. Progress and the
// final summary go to the runner's output writer; diagnostics go to the
// structured logger.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/fisty/mcsfix/internal/errors"
	"github.com/fisty/mcsfix/internal/logging"
	"github.com/fisty/mcsfix/internal/scanner"
	"github.com/fisty/mcsfix/internal/types"
)

// Pass is one transformation of a file's line buffer.
type Pass interface {
	Name() string
	Apply(file *types.SourceFile)
}

// Options control how results are applied and reported.
type Options struct {
	// Label names the pass family in progress lines, e.g. "borders"
	Label string
	// DryRun reports changes without writing them
	DryRun bool
	// Diff prints a unified diff for every changed file
	Diff bool
}

// RunnerConfig wires a Runner.
type RunnerConfig struct {
	Passes  []Pass
	Walker  *scanner.Walker
	Writer  Writer
	Output  io.Writer
	Logger  logging.Logger
	Options Options
}

// FileFailure records a file that could not be processed.
type FileFailure struct {
	Path string
	Err  error
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Total     int
	Fixed     []string
	Unchanged []string
	Failed    []FileFailure
}

// Runner applies passes to files.
type Runner struct {
	passes  []Pass
	walker  *scanner.Walker
	writer  Writer
	out     io.Writer
	logger  logging.Logger
	handler *errors.ErrorHandler
	opts    Options
}

// NewRunner creates a runner. Missing writer, output and logger default to
// an atomic file writer, stdout and a discarding logger.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Writer == nil {
		cfg.Writer = NewFileWriter(1, 0)
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.Options.Label == "" {
		cfg.Options.Label = passLabel(cfg.Passes)
	}
	logger := cfg.Logger.WithComponent("pipeline")

	return &Runner{
		passes:  cfg.Passes,
		walker:  cfg.Walker,
		writer:  cfg.Writer,
		out:     cfg.Output,
		logger:  logger,
		handler: errors.NewErrorHandler(logger),
		opts:    cfg.Options,
	}
}

// Run discovers files under root and processes them.
func (r *Runner) Run(ctx context.Context, root string) (*Report, error) {
	if r.walker == nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "runner has no walker", nil)
	}

	files, err := r.walker.Walk(ctx, root)
	if err != nil {
		r.handler.Handle(ctx, err)
		return nil, err
	}

	fmt.Fprintf(r.out, "Found %d %s files to process\n\n", len(files), r.walker.Extension)
	return r.RunFiles(ctx, files)
}

// RunFiles processes an explicit list of paths in the given order.
// Only context cancellation makes it return an error; per-file failures
// are collected in the report.
func (r *Runner) RunFiles(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{RunID: uuid.New().String(), Total: len(paths)}
	logger := r.logger.With("run_id", report.RunID)
	op := logging.StartOperation(logger, "run")

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			op.EndWithError(ctx, err)
			return report, err
		}

		changed, err := r.processFile(ctx, logger, path)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, FileFailure{Path: path, Err: err})
			fmt.Fprintf(r.out, "✗ Error processing %s: %v\n", path, err)
			r.handler.Handle(ctx, err)
		case changed && r.opts.DryRun:
			report.Fixed = append(report.Fixed, path)
			fmt.Fprintf(r.out, "✓ Would fix %s in: %s\n", r.opts.Label, path)
		case changed:
			report.Fixed = append(report.Fixed, path)
			fmt.Fprintf(r.out, "✓ Fixed %s in: %s\n", r.opts.Label, path)
		default:
			report.Unchanged = append(report.Unchanged, path)
			fmt.Fprintf(r.out, "  No changes needed: %s\n", path)
		}
	}

	r.printSummary(report)
	op.End(ctx, "files", report.Total, "fixed", len(report.Fixed), "failed", len(report.Failed))
	return report, nil
}

func (r *Runner) processFile(ctx context.Context, logger logging.Logger, path string) (bool, error) {
	file, err := types.LoadSourceFile(path)
	if os.IsNotExist(err) {
		return false, errors.ErrFileNotFound(path)
	}
	if err != nil {
		return false, errors.WrapIO(err, errors.ErrCodeReadFailed, "cannot read file", path)
	}

	for _, pass := range r.passes {
		pass.Apply(file)
	}

	changed := file.Changed()
	logger.Debug(ctx, "Processed file", "file", path, "changed", changed)
	if !changed {
		return false, nil
	}

	if r.opts.Diff {
		r.printDiff(file)
	}
	if r.opts.DryRun {
		return true, nil
	}

	if err := r.writer.Write(ctx, file); err != nil {
		return false, errors.WrapIO(err, errors.ErrCodeWriteFailed, "cannot write file", path)
	}
	return true, nil
}

func (r *Runner) printDiff(file *types.SourceFile) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(file.Original()),
		B:        difflib.SplitLines(file.Content()),
		FromFile: file.Path,
		ToFile:   file.Path,
		Context:  3,
	})
	if err != nil {
		r.logger.Warn(context.Background(), err, "Cannot render diff", "file", file.Path)
		return
	}
	fmt.Fprint(r.out, diff)
}

func (r *Runner) printSummary(report *Report) {
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("=", 50))
	suffix := ""
	if r.opts.DryRun {
		suffix = " (dry run)"
	}
	fmt.Fprintf(r.out, "Fixed %d/%d files%s\n", len(report.Fixed), report.Total, suffix)
}

func passLabel(passes []Pass) string {
	if len(passes) == 1 {
		return passes[0].Name()
	}
	return "MCS issues"
}
