// Package cmd provides the command-line interface for mcsfix with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --root, etc.) - highest priority
//	2. MCSFIX_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (MCSFIX_BORDER_WIDTH, etc.)
//	4. Configuration files (.mcsfix.yml) - lowest priority
//
// Environment Variables:
//
//	MCSFIX_CONFIG_FILE: Path to custom configuration file
//	MCSFIX_PROJECT_ROOT: Override the project root
//	MCSFIX_BORDER_WIDTH: Override the marker width
//	And more following the MCSFIX_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	rootDir  string
	logLevel string
	dryRun   bool
	showDiff bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcsfix",
	Short: "Bring Zig sources in line with the Maysara Code Style",
	Long: `mcsfix rewrites the Zig files of a project so that they follow the
Maysara Code Style (MCS): canonical file headers, box-drawn section borders
with indented bodies, canonical repository URLs, and well-formed test
declarations.

Every fixer is idempotent: running it twice changes nothing the second time.

Quick Start:
  mcsfix all                      Run every fixer over the project
  mcsfix borders lib/clock.zig    Fix section borders in one file
  mcsfix all --dry-run --diff     Show what would change
  mcsfix watch                    Re-run the fixers whenever files change`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command. Cancelling ctx stops a run between
// files and ends watch mode.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .mcsfix.yml, can also use MCSFIX_CONFIG_FILE env var)")
	flags.StringVarP(&rootDir, "root", "r", ".", "project root to scan")
	flags.StringVarP(&logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	flags.BoolVar(&showDiff, "diff", false, "print a unified diff for every changed file")

	AddPersistentFlagValidation(rootCmd, "log-level", ValidateLogLevel)
	_ = viper.BindPFlag("project.root", flags.Lookup("root"))
}

// initConfig initializes the configuration system with support for multiple config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. MCSFIX_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .mcsfix.yml in current directory
//
// The function also enables automatic environment variable binding for all
// configuration values with the MCSFIX_ prefix (e.g., MCSFIX_BORDER_WIDTH=100).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("MCSFIX_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mcsfix")
	}

	viper.SetEnvPrefix("MCSFIX")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or unreadable config file leaves the defaults in place
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
