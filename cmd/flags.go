package cmd

import (
	"fmt"
	"os"

	"github.com/beasleyjonm/ORION/pkg/orion"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf(
			"\nversion: %s\nbuild: %s\n\n",
			orion.Version, orion.Build,
		)
		os.Exit(0)
	}
}
