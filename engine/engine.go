// Package engine wires the leaf packages (subcatch, routing, hotstart,
// resultstore, runoffstep, climate, collab) into the run loop spec §2
// describes: the step controller picks a runoff step, the runoff engine
// advances every subcatchment, the routing engine advances the conveyance
// network in (generally smaller) sub-steps, and interpolated results land
// in the results store at each reporting period. It lives outside package
// project because routing/hotstart/resultstore all import project for
// project.ErrCode; project importing them back would cycle.
package engine

import (
	"io"
	"time"

	"github.com/maseology/mmio"

	"github.com/maseology/swmmcore/hotstart"
	"github.com/maseology/swmmcore/project"
	"github.com/maseology/swmmcore/resultstore"
	"github.com/maseology/swmmcore/routing"
	"github.com/maseology/swmmcore/runoffstep"
)

// Simulation is the open-run handle returned by Open; Step/Run advance it
// and Close tears it down (spec §9 "explicit owned context", §5 "shared
// resources... owned by the project and closed exactly once on teardown").
type Simulation struct {
	Ctx     *project.Context
	Routing *routing.Engine
	Ctl     runoffstep.Controller

	// EvapRate reports the current evaporation rate (ft/sec) for a point
	// in time; evaporation modeling is an external collaborator per spec
	// §1, so this is supplied by the caller rather than computed here.
	EvapRate func(t time.Time) float64

	// NextEvapChange reports when EvapRate will next change, bounding the
	// runoff step the same way a gage's next-rain date does (spec §4.5).
	NextEvapChange func(t time.Time) time.Time

	Results *resultstore.Writer

	hotstartOut   io.Writer
	endTime       time.Time
	prevRunoffSec float64
	reportStep    time.Duration
	sinceReport   time.Duration
}

// OpenConfig bundles everything Open needs beyond the already-populated
// project.Context: routing model, hotstart/results plumbing, and the
// report cadence.
type OpenConfig struct {
	Model          routing.Model
	HotstartIn     io.Reader // nil skips restore
	HotstartOut    io.Writer // nil skips the end-of-run snapshot
	Results        io.Writer // nil disables result recording
	ResultsProto   resultstore.Prologue
	ExpectedPeriods int
	MaxResultBytes int64
	ReportStep     time.Duration
	WetStep        time.Duration
	DryStep        time.Duration
	EvapRate       func(t time.Time) float64
	NextEvapChange func(t time.Time) time.Time
}

// Open validates and initializes the routing network, optionally restores
// hotstart state, and opens the results store (spec §4.6 "At open",
// §4.1 read mode). The returned Simulation is ready for Run/Step.
func Open(ctx *project.Context, cfg OpenConfig) (*Simulation, project.ErrCode) {
	tt := mmio.NewTimer()

	re, err := routing.Open(ctx.Nodes, ctx.Links, cfg.Model)
	if err != nil {
		ctx.SetError(errCodeOf(err), 0, "routing.Open")
		return nil, ctx.ErrCode()
	}
	re.Metrics = ctx.Metrics
	if ctx.Log != nil {
		tt.Lap("routing network validated and initialized")
	}

	if cfg.HotstartIn != nil {
		hc := hotstart.Catalog{Subcatchments: ctx.Subcatchments, Nodes: ctx.Nodes, Links: ctx.Links}
		if code := hotstart.Read(cfg.HotstartIn, hc, ctx.NPollutants, ctx.NLandUses, ctx.Config.FlowUnitCode); code != project.ErrNone {
			ctx.SetError(code, 0, "hotstart.Read")
			return nil, ctx.ErrCode()
		}
		if ctx.Log != nil {
			tt.Lap("hotstart state restored")
		}
	}

	s := &Simulation{
		Ctx:     ctx,
		Routing: re,
		Ctl: runoffstep.Controller{
			WetStep: cfg.WetStep,
			DryStep: cfg.DryStep,
		},
		EvapRate:       cfg.EvapRate,
		NextEvapChange: cfg.NextEvapChange,
		hotstartOut:    cfg.HotstartOut,
		endTime:        ctx.CurrentTime.Add(ctx.TotalDuration),
		reportStep:     cfg.ReportStep,
	}

	if cfg.Results != nil {
		w, code := resultstore.Create(cfg.Results, cfg.ResultsProto, cfg.ExpectedPeriods, cfg.MaxResultBytes)
		if code != project.ErrNone {
			ctx.SetError(code, 0, "resultstore.Create")
			return nil, ctx.ErrCode()
		}
		s.Results = w
	}
	return s, project.ErrNone
}

// Run advances the simulation to completion, step by step (spec §2
// "control flow per simulation step"), short-circuiting on the first
// sticky error (spec §5 "Cancellation").
func (s *Simulation) Run() project.ErrCode {
	for s.Ctx.CurrentTime.Before(s.endTime) {
		if s.Ctx.Failed() {
			break
		}
		if err := s.Step(); err != project.ErrNone {
			return err
		}
	}
	return s.Ctx.ErrCode()
}

// Step advances one runoff step and the routing network within it (spec
// §2). The runoff step is generally larger than the routing step; routing
// is advanced in RoutingStepSeconds increments until the runoff step's
// duration is consumed, matching §2's "routing engine advances the
// conveyance network by one routing step (generally smaller than the
// runoff step)".
func (s *Simulation) Step() project.ErrCode {
	ctx := s.Ctx
	t := ctx.CurrentTime

	var nextEvap time.Time
	if s.NextEvapChange != nil {
		nextEvap = s.NextEvapChange(t)
	} else {
		nextEvap = s.endTime
	}
	step := s.Ctl.Step(t, s.endTime, ctx.Gages, ctx.Subcatchments, nil, nextEvap)
	if step <= 0 {
		ctx.CurrentTime = s.endTime
		return ctx.ErrCode()
	}
	tStepSec := step.Seconds()

	evap := 0.0
	if s.EvapRate != nil {
		evap = s.EvapRate(t)
	}

	// Runon is gathered for every subcatchment before any of them runs, so
	// SetOldState (which zeroes Runon) never discards it.
	for _, sub := range ctx.Subcatchments {
		if sub.Area > 0 {
			sub.SetOldState()
		}
	}
	for i, sub := range ctx.Subcatchments {
		if sub.Area > 0 && sub.OutletSub >= 0 && sub.OutletSub < len(ctx.Subcatchments) {
			s.routeRunon(i, sub.OutletSub)
		}
	}
	runoffstep.RerouteOutfalls(ctx.Nodes, ctx.Subcatchments, s.prevRunoffSec)

	for _, sub := range ctx.Subcatchments {
		if ctx.Failed() {
			break
		}
		if sub.Area <= 0 {
			ctx.Metrics.IncSubcatchmentSkipped()
			continue
		}
		rain, snow := 0.0, 0.0
		if sub.GageIndex >= 0 && sub.GageIndex < len(ctx.Gages) {
			rain, snow = ctx.Gages[sub.GageIndex].GetPrecip(t)
		}
		sub.Step(tStepSec, evap, rain, snow)
		ctx.Metrics.IncStepsRun()
	}

	lat := make([]float64, len(ctx.Nodes))
	for _, sub := range ctx.Subcatchments {
		if sub.OutletNode >= 0 && sub.OutletNode < len(ctx.Nodes) {
			lat[sub.OutletNode] += sub.NewRunoff
		}
	}

	if err := s.advanceRouting(tStepSec, lat); err != project.ErrNone {
		return err
	}

	s.prevRunoffSec = tStepSec
	ctx.CurrentTime = t.Add(step)
	s.sinceReport += step
	if s.Results != nil && s.reportStep > 0 {
		for s.sinceReport >= s.reportStep {
			s.writePeriod()
			s.sinceReport -= s.reportStep
		}
	}
	return ctx.ErrCode()
}

// routeRunon feeds a subcatchment's previous-step runoff to its downstream
// neighbor's runon accumulator as a rate over the downstream non-LID area
// (spec §4.3 step 1, §8 boundary scenario 2). Lateral-inflow-style
// aggregation (upstream producer -> downstream consumer) happens here
// rather than inside subcatch.Step, which only consumes Runon.
func (s *Simulation) routeRunon(fromIdx, toIdx int) {
	from := s.Ctx.Subcatchments[fromIdx]
	to := s.Ctx.Subcatchments[toIdx]
	area := to.NonLIDArea()
	if area <= 0 {
		return
	}
	to.Runon += from.OldRunoff / area
}

// advanceRouting sub-steps the routing engine in RoutingStepSeconds
// increments across one runoff step (spec §2). lateralInflow holds this
// runoff step's per-node rate (cfs) contributed by draining subcatchments
// and is handed to every sub-step's Step call, which reapplies it right
// after its own SetOldState zeroes the prior step's accumulators.
func (s *Simulation) advanceRouting(runoffStepSec float64, lateralInflow []float64) project.ErrCode {
	dt := s.Ctx.Config.RoutingStepSeconds
	if dt <= 0 {
		dt = runoffStepSec
	}
	remaining := runoffStepSec
	for remaining > 1e-9 {
		if s.Ctx.Failed() {
			break
		}
		h := dt
		if h > remaining {
			h = remaining
		}
		if err := s.Routing.Step(h, lateralInflow); err != nil {
			s.Ctx.SetError(project.ErrTimestep, 0, "routing.Step")
			break
		}
		remaining -= h
	}
	return s.Ctx.ErrCode()
}

// Close writes the end-of-run hotstart snapshot (if configured) and closes
// the results store with the run's terminal error code (spec §7 "results
// epilogue is still written... carrying the error code").
func (s *Simulation) Close() project.ErrCode {
	terminal := s.Ctx.ErrCode()
	if s.hotstartOut != nil {
		hc := hotstart.Catalog{Subcatchments: s.Ctx.Subcatchments, Nodes: s.Ctx.Nodes, Links: s.Ctx.Links}
		if code := hotstart.Write(s.hotstartOut, hc, s.Ctx.NPollutants, s.Ctx.NLandUses, s.Ctx.Config.FlowUnitCode); code != project.ErrNone && terminal == project.ErrNone {
			terminal = code
		}
	}
	if s.Results != nil {
		if code := s.Results.Close(terminal); code != project.ErrNone && terminal == project.ErrNone {
			terminal = code
		}
	}
	return terminal
}

// ModelFromString maps a project.Config.RoutingModel string to a
// routing.Model, defaulting to Steady for an empty or unrecognized value.
func ModelFromString(s string) routing.Model {
	switch s {
	case "kinematic":
		return routing.Kinematic
	case "dynamic":
		return routing.Dynamic
	default:
		return routing.Steady
	}
}

func errCodeOf(err error) project.ErrCode {
	if err == nil {
		return project.ErrNone
	}
	return project.ErrTimestep
}
