package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("stratuswire %s\n", versionInfo.Version)
	fmt.Printf("  commit: %s\n", versionInfo.Commit)
	fmt.Printf("  built:  %s\n", versionInfo.BuildDate)

	toolkit := crucible.GetVersion()
	if toolkit.Gofulmen != "" {
		fmt.Printf("  gofulmen: v%s\n", toolkit.Gofulmen)
	}
}
