package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maseology/swmmcore/hotstart"
	"github.com/maseology/swmmcore/project"
)

// hotstartCmd groups hotstart file utilities.
var hotstartCmd = &cobra.Command{
	Use:   "hotstart",
	Short: "Inspect hotstart snapshot files",
}

var hotstartInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a hotstart file's version and catalog counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		h, code := hotstart.PeekHeader(f)
		if code != project.ErrNone {
			return fmt.Errorf("inspect: %s", code.Error())
		}

		fmt.Printf("version:        %d\n", h.Version)
		fmt.Printf("subcatchments:  %d\n", h.NSubcatch)
		fmt.Printf("land uses:      %d\n", h.NLandUses)
		fmt.Printf("nodes:          %d\n", h.NNodes)
		fmt.Printf("links:          %d\n", h.NLinks)
		fmt.Printf("pollutants:     %d\n", h.NPollutants)
		fmt.Printf("flow unit code: %d\n", h.FlowUnitCode)
		return nil
	},
}

func init() {
	hotstartCmd.AddCommand(hotstartInspectCmd)
	Root.AddCommand(hotstartCmd)
}
