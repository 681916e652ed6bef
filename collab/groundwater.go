package collab

import (
	"fmt"
	"math"
)

// LinearReservoir is a single-outlet, single-inlet store with a capacity,
// adapted from the teacher's local hru.res (non-linear reservoir bookkeeping
// generalized to a plain overflow/deficit accumulator).
type LinearReservoir struct {
	Storage float64
	Cap     float64
}

// Overflow adds p to storage and returns whatever could not be retained:
// positive when storage would exceed Cap, negative when storage would fall
// below zero (a withdrawal beyond what is stored).
func (r *LinearReservoir) Overflow(p float64) float64 {
	r.Storage += p
	switch {
	case r.Storage < 0:
		d := r.Storage
		r.Storage = 0
		return d
	case r.Storage > r.Cap:
		d := r.Storage - r.Cap
		r.Storage = r.Cap
		return d
	default:
		return 0
	}
}

// TopmodelGW is the default Groundwater collaborator, adapted from the
// teacher's gwru.TOPMODEL exponential-decay baseflow reservoir: a single
// scalar mean water-table deficit dm, baseflow qb = qo*exp(-dm/m), and a
// surface unsaturated-zone store (the teacher's retention reservoir) that
// bounds how much infiltration the surface can still accept this step.
type TopmodelGW struct {
	Qo, M, CellArea float64 // baseflow-at-saturation, decay scale, contributing area
	Dm              float64 // mean water-table deficit (ft)
	Sat             LinearReservoir
}

var _ Groundwater = (*TopmodelGW)(nil)

// Validate checks the parameterization is usable (spec §6 validate).
func (g *TopmodelGW) Validate() error {
	if g.M <= 0 {
		return fmt.Errorf("groundwater: decay scale m must be positive, got %f", g.M)
	}
	if g.Qo < 0 {
		return fmt.Errorf("groundwater: qo must be non-negative, got %f", g.Qo)
	}
	if g.Sat.Cap < 0 {
		return fmt.Errorf("groundwater: unsaturated-zone capacity must be non-negative, got %f", g.Sat.Cap)
	}
	return nil
}

// InitState resets the reservoir to empty/full recharge capacity.
func (g *TopmodelGW) InitState() {
	g.Sat.Storage = 0
}

// AvailableVoid reports the unsaturated-zone capacity still available this
// step, used to clamp surface infiltration (spec §4.3 step 4).
func (g *TopmodelGW) AvailableVoid() float64 {
	v := g.Sat.Cap - g.Sat.Storage
	if v < 0 {
		return 0
	}
	return v
}

// GetGroundwater advances the reservoir one step (spec §6). pervEvap draws
// down the unsaturated store first; totalInfil recharges it; any surplus
// recharges the deep deficit reservoir, whose exponential-decay outflow is
// returned as groundwater flow.
func (g *TopmodelGW) GetGroundwater(pervEvap, totalInfil, dt float64) float64 {
	g.Sat.Overflow(-pervEvap * dt)
	surplus := g.Sat.Overflow(totalInfil * dt)
	if surplus < 0 {
		surplus = 0
	}
	g.Dm -= surplus / g.CellArea
	qb := g.Qo * math.Exp(-g.Dm/g.M)
	g.Dm += qb * dt / g.CellArea
	return qb
}

// GetState/SetState persist the 4-float vector required by hotstart (spec
// §4.1): [dm, unsaturated-zone storage, unsaturated-zone capacity, qo].
func (g *TopmodelGW) GetState() [4]float64 {
	return [4]float64{g.Dm, g.Sat.Storage, g.Sat.Cap, g.Qo}
}

func (g *TopmodelGW) SetState(v [4]float64) {
	g.Dm, g.Sat.Storage, g.Sat.Cap, g.Qo = v[0], v[1], v[2], v[3]
}
