// Package collab declares the external-collaborator contracts the core
// consumes (spec §6): infiltration, groundwater, snow, LID, and dynamic-wave
// routing. Each is a pluggable interface; this package also supplies a
// default Groundwater implementation adapted from the teacher's local
// linear/non-linear reservoir and TOPMODEL-style deficit bookkeeping.
package collab

// Infiltration computes the infiltration loss rate for a subcatchment's
// pervious sub-area and persists/restores its internal state vector for
// hotstart (spec §4.3 step 4, §4.1 payload, §6).
type Infiltration interface {
	GetInfil(dt, precip, inflow, depth float64) (rate float64)
	GetState() [6]float64
	SetState(v [6]float64)
}

// Groundwater couples pervious infiltration to a water-table reservoir and
// reports any unsaturated-zone void available to clamp infiltration (spec
// §4.3 step 6, §6).
type Groundwater interface {
	// Validate checks the attached parameterization is internally
	// consistent (e.g. non-negative storage coefficients).
	Validate() error
	// InitState sets the reservoir to its initial condition.
	InitState()
	// AvailableVoid returns the unsaturated-zone storage capacity still
	// available this step, used to clamp surface infiltration.
	AvailableVoid() float64
	// GetGroundwater advances the reservoir one step given net pervious
	// evaporation demand and total infiltration supply (surface + LID),
	// returning the groundwater flow leaving the reservoir (spec §6).
	GetGroundwater(pervEvap, totalInfil, dt float64) (gwFlow float64)
	GetState() [4]float64
	SetState(v [4]float64)
}

// Snow splits precipitation into per-sub-area melt+rain vectors, or reports
// none if the gage has no attached snowpack (spec §4.3 step 3, §6).
type Snow interface {
	// GetSnowMelt returns the net (melt+rain) water input to each of the
	// three sub-areas, and the new total snow depth.
	GetSnowMelt(dt, rain, snow float64, areaFrac [3]float64) (netPrecip [3]float64, newDepth float64)
	PlowSnow(dt float64)
	GetState(surface int) [5]float64
	SetState(surface int, v [5]float64)
}

// LID evaluates one or more low-impact-development units attached to a
// subcatchment, mutating the shared water-balance accumulators it is given
// (spec §4.3 step 5, §6).
type LID interface {
	GetRunoff(dt float64) (surfaceOut float64)
	GetDrainFlow(phase int) float64
	AddDrainRunon()
	GetFlowToPerv() float64
	GetPervArea() float64
	GetStoredVolume() float64
}

// DynamicWave is the pluggable Saint-Venant solver; the core only ever
// delegates to it (spec §4.6.3) and never inspects its internals.
type DynamicWave interface {
	Init() error
	Close()
	GetRoutingStep(fixedStep float64) float64
	Execute(dt float64) (stepCount int, err error)
}
