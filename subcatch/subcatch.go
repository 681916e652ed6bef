// Package subcatch implements the per-subcatchment surface water balance
// (spec §4.3, §4.4): three sub-areas, inter-sub-area re-routing, and the
// ponded-depth ODE. Collaborator calls (infiltration, groundwater, snow,
// LID) are taken as interfaces from package collab so this package stays
// free of the project orchestration it is a leaf of.
package subcatch

import "github.com/maseology/swmmcore/collab"

// SubAreaKind indexes the three fixed sub-areas (spec §3).
type SubAreaKind int

const (
	Imperv0 SubAreaKind = iota // impervious, no depression storage
	Imperv1                    // impervious, with depression storage
	Perv                       // pervious
	numSubAreas
)

// RouteTo is a sub-area's runoff destination (spec §3).
type RouteTo int

const (
	ToOutlet RouteTo = iota
	ToPervious
	ToImpervious
)

// MinRunoff is the output-smoothing threshold (spec §4.3): runoff below
// MinRunoff*area is reported as zero but still routed.
const MinRunoff = 0.0000547 // ft/sec, ~= 2.36 in/hr

// ODETol is the adaptive-integrator tolerance (spec §4.4).
const ODETol = 1e-4

// SubArea is one of the three fixed surface partitions of a subcatchment.
type SubArea struct {
	N       float64 // Manning's roughness
	DStore  float64 // depression storage capacity, ft
	FArea   float64 // fraction of subcatchment area, sum over the three = 1.0
	Alpha   float64 // non-linear-reservoir coefficient
	Depth   float64 // ponded depth, ft
	Inflow  float64 // per-step inflow rate, ft/sec
	Runoff  float64 // ft/sec
	RouteTo RouteTo
	FOutlet float64 // fraction of cross-routed runoff that leaves vs. cascades
}

// Subcatchment is one land-surface unit (spec §3).
type Subcatchment struct {
	ID string

	// geometry
	Area       float64 // ft^2
	FracImperv float64 // clamped to [0,1]
	Width      float64
	Slope      float64
	CurbLength float64
	LIDArea    float64

	SubAreas [3]SubArea

	// runon routing targets (catalog indices, -1 if none)
	OutletSub  int // index of the subcatchment this one's outlet drains to, or -1
	OutletNode int // index of the conveyance node this one's outlet drains to, or -1
	GageIndex  int // index into the project's gage catalog, -1 if ungaged

	// dynamic
	OldRunoff, NewRunoff         float64
	OldSnowDepth, NewSnowDepth   float64
	Runon                        float64 // accumulated inflow rate, ft/sec over non-LID area
	EvapLoss, InfilLoss          float64

	OldQuality, NewQuality []float64
	PondedQuality          []float64
	Buildup                [][]float64 // [landuse][pollutant]
	LastSwept              []float64   // per land use

	// mass balance accumulators (ft^3), reset by caller at run scope as needed
	RainfallVolume, EvapVolume, InfilVolume, OutflowVolume float64

	Infil collab.Infiltration
	GW    collab.Groundwater
	Snow  collab.Snow
	LID   collab.LID

	// crossPerv/crossImp1 carry this step's sub-area cross-routed inflow
	// (ft/sec), computed by crossRoute and folded into netPrecipitation.
	crossPerv, crossImp1 float64
}

// SetOldState copies new into old at the top of a step (spec §3 Lifecycle).
func (s *Subcatchment) SetOldState() {
	s.OldRunoff = s.NewRunoff
	s.OldSnowDepth = s.NewSnowDepth
	s.Runon = 0
	s.EvapLoss = 0
	s.InfilLoss = 0
	if len(s.NewQuality) > 0 {
		copy(s.OldQuality, s.NewQuality)
	}
}

// FAreaSum returns the sum of sub-area fractions, which must equal 1.0
// within rounding (spec §8 invariant 1).
func (s *Subcatchment) FAreaSum() float64 {
	return s.SubAreas[Imperv0].FArea + s.SubAreas[Imperv1].FArea + s.SubAreas[Perv].FArea
}

// NonLIDArea is the subcatchment area not occupied by an LID unit; runon is
// normalized against this (spec §3, §4.3 step 1).
func (s *Subcatchment) NonLIDArea() float64 {
	a := s.Area - s.LIDArea
	if a <= 0 {
		return 0
	}
	return a
}
