// Package cli holds the cobra command tree for the swmmcore binary,
// grounded on spatialmodel/inmap's inmaputil package (a RootCmd with
// PersistentFlags for shared config, plus subcommands registered in
// init()).
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

// Root is the swmmcore command tree's entry point.
var Root = &cobra.Command{
	Use:   "swmmcore",
	Short: "Runoff and flow-routing simulation core",
	Long: `swmmcore advances a stormwater runoff and drainage-network
simulation: subcatchment runoff, steady/kinematic flow routing, and
hotstart/results persistence.`,
}

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "", "TOML run configuration file")
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
