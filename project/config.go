package project

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Config is the run configuration the core itself owns (spec §9 design
// note: an explicit owned context, no hidden statics). Parsing the .inp
// project description that populates the catalogs is out of scope (§1);
// this only covers the knobs the simulation loop consults directly.
// Grounded on spatialmodel/inmap's toml.DecodeReader config-loading style.
type Config struct {
	RoutingModel string `toml:"routing_model"` // "steady", "kinematic", or "dynamic"

	ReportStepSeconds float64 `toml:"report_step_seconds"`
	WetStepSeconds    float64 `toml:"wet_step_seconds"`
	DryStepSeconds    float64 `toml:"dry_step_seconds"`
	RoutingStepSeconds float64 `toml:"routing_step_seconds"`

	FlowUnitCode int `toml:"flow_unit_code"`

	HotstartInFile  string `toml:"hotstart_in_file"`
	HotstartOutFile string `toml:"hotstart_out_file"`
	ResultsFile     string `toml:"results_file"`
	RunoffInterfaceFile  string `toml:"runoff_interface_file_in"`
	RunoffInterfaceOut   string `toml:"runoff_interface_file_out"`

	// PicardOmega/PicardMaxIter/PicardStopTol are decoded by ReadConfig and
	// set by DefaultConfig, but no code in this module reads them: the storage iteration always
	// uses the routing.PicardOmega/PicardMaxIter/PicardStopTol constants
	// (spec §4.6.1).
	PicardOmega   float64 `toml:"picard_omega"`
	PicardMaxIter int     `toml:"picard_max_iter"`
	PicardStopTol float64 `toml:"picard_stop_tol"`
}

// ReadConfig decodes a TOML configuration from r (spec §9 ambient config).
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	if _, err := toml.DecodeReader(r, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultConfig returns the package defaults. Its Picard values equal the
// routing package constants, and its wet, dry and report step lengths equal
// the fallbacks the CLI run command uses for a zero field.
func DefaultConfig() Config {
	return Config{
		RoutingModel:       "steady",
		ReportStepSeconds:  300,
		WetStepSeconds:     60,
		DryStepSeconds:     3600,
		RoutingStepSeconds: 30,
		FlowUnitCode:       0, // CFS
		PicardOmega:        0.55,
		PicardMaxIter:      10,
		PicardStopTol:      0.005,
	}
}
