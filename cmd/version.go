package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsforge/cmsforge/internal/version"
)

var versionFormat = newEnumValue("text", "text", "json")

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for cmsforge.

Examples:
  cmsforge version               # Show version
  cmsforge version --format json # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().VarP(versionFormat, "format", "f", "Output format (text, json)")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionFormat.String() == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cmsforge %s (%s, %s)\n",
		version.Short(), info.GoVersion, info.Platform)
	return nil
}
