package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fisty/mcsfix/internal/version"
)

var versionFormat string

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for mcsfix including the version, git
commit, build time, Go version and target platform.

Examples:
  mcsfix version                 # Human readable
  mcsfix version --format json   # Output as JSON
  mcsfix version --format yaml   # Output as YAML`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json, yaml)")
	AddFlagValidation(versionCmd, "format", ValidateChoice("text", "json", "yaml"))
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	return writeVersion(cmd.OutOrStdout(), versionFormat, version.GetBuildInfo())
}

func writeVersion(out io.Writer, format string, info *version.BuildInfo) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(info); err != nil {
			return err
		}
		return encoder.Close()
	case "text", "":
		_, err := fmt.Fprintln(out, info.String())
		return err
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", format)
	}
}
