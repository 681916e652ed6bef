package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags; "dev" otherwise.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the swmmcore version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("swmmcore v%s\n", Version)
	},
}

func init() {
	Root.AddCommand(versionCmd)
}
