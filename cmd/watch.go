package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fisty/mcsfix/internal/scanner"
	"github.com/fisty/mcsfix/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project and fix files as they change",
	Long: `Run every fixer over the project once, then watch it and re-run the
fixers on each changed file. Build and cache directories are ignored.

The fixers are idempotent, so the watcher's own writes settle after one
no-op run.

Examples:
  mcsfix watch                    # Watch the project root
  mcsfix watch --debounce 1s      # Wait longer before reacting`,
	RunE: runWatch,
}

var (
	watchDebounce  time.Duration
	watchSkipFirst bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Quiet period before changed files are processed")
	watchCmd.Flags().BoolVar(&watchSkipFirst, "skip-initial", false, "Do not run the fixers over the whole project on start")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchProject(ctx, cmd.OutOrStdout(), optionsFromFlags(cmd), watchDebounce, !watchSkipFirst)
}

// watchProject blocks until ctx is done.
func watchProject(ctx context.Context, out io.Writer, opts runOptions, debounce time.Duration, initial bool) error {
	opts.Label = "MCS issues"
	runner, cfg, err := buildRunner(out, os.Stderr, opts, combinedOrder)
	if err != nil {
		return err
	}
	logger, err := newLogger(opts.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	if initial {
		if _, err := runner.Run(ctx, cfg.Project.Root); err != nil {
			return err
		}
	}

	fileWatcher, err := watcher.NewFileWatcher(debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fileWatcher.Stop() }()

	walker := scanner.NewWalker(cfg.Project.Extension, cfg.Project.ExcludeDirs, logger)
	fileWatcher.AddFilter(walker.Matches)
	fileWatcher.SkipDirs(func(name string) bool {
		for _, ex := range cfg.Project.ExcludeDirs {
			if name == ex {
				return true
			}
		}
		return false
	})

	fileWatcher.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		paths := watcher.ExistingPaths(events)
		if len(paths) == 0 {
			return nil
		}
		fmt.Fprintf(out, "\n%d file(s) changed\n", len(paths))
		_, err := runner.RunFiles(ctx, paths)
		return err
	})

	if err := fileWatcher.AddRecursive(cfg.Project.Root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Project.Root, err)
	}
	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(out, "Watching %s for changes... (Press Ctrl+C to stop)\n", cfg.Project.Root)
	<-ctx.Done()
	if err := fileWatcher.Stop(); err != nil {
		logger.Warn(context.Background(), err, "Cannot close file watcher")
	}
	fmt.Fprintln(out, "Stopping file watcher...")

	return nil
}
