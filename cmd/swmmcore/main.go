// Command swmmcore is a thin CLI shell around the simulation core: open a
// run, step it to completion, close it. Grounded on
// spatialmodel/inmap's cmd/inmap layout (a one-line main delegating to a
// cobra root command defined alongside it).
package main

import (
	"fmt"
	"os"

	"github.com/maseology/swmmcore/internal/cli"
)

func main() {
	if err := cli.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
