package subcatch

import "math"

// Step runs one subcatchment through the water balance of spec §4.3. The
// caller is responsible for populating Runon (runon acquisition, spec §4.3
// step 1, §4.7) before calling Step, and for adding any LID drain flow and
// outfall re-routing to Runon as well — those are catalog-wide concerns
// that belong to the orchestrating step controller, not this leaf package.
//
// tStep is the runoff time step (sec), evap the current evaporation rate
// (ft/sec), rain/snow the current gage readings (ft/sec).
func (s *Subcatchment) Step(tStep, evap, rain, snow float64) (runoffCFS float64) {
	if s.Area <= 0 {
		s.NewRunoff = 0
		return 0
	}

	prev := [3]float64{s.SubAreas[Imperv0].Runoff, s.SubAreas[Imperv1].Runoff, s.SubAreas[Perv].Runoff}
	s.crossRoute(prev)

	netPrecip := s.netPrecipitation(tStep, rain, snow)

	runonPerArea := s.Runon // ft/sec over non-LID area, spec §4.3 step1
	nonLID := s.NonLIDArea()

	var totalOutflow, totalEvap, totalInfil float64
	for i := range s.SubAreas {
		sa := &s.SubAreas[i]
		if sa.FArea <= 0 {
			sa.Runoff = 0
			continue
		}
		inflow := netPrecip[i]
		if nonLID > 0 {
			inflow += runonPerArea
		}

		surfMoisture := sa.Depth / tStep
		surfEvap := math.Min(surfMoisture, evap)

		var infil float64
		if SubAreaKind(i) == Perv && s.Infil != nil {
			infil = s.Infil.GetInfil(tStep, netPrecip[i], inflow, sa.Depth)
			if s.GW != nil {
				if v := s.GW.AvailableVoid(); v >= 0 {
					maxRate := v / tStep
					if infil > maxRate {
						infil = maxRate
					}
				}
			}
			if infil < 0 {
				infil = 0
			}
		}

		surfMoisture += inflow
		losses := surfEvap + infil
		if losses >= surfMoisture {
			sa.Depth = 0
			sa.Runoff = 0
			totalEvap += surfEvap * sa.FArea
			totalInfil += infil * sa.FArea
			continue
		}
		netInflow := inflow - losses

		if sa.N == 0 {
			// no routing: excess above dStore drains within one step.
			d := sa.Depth + netInflow*tStep
			if d > sa.DStore {
				sa.Runoff = (d - sa.DStore) / tStep
				sa.Depth = sa.DStore
			} else {
				if d < 0 {
					d = 0
				}
				sa.Depth = d
				sa.Runoff = 0
			}
		} else {
			newDepth, _ := integrateODE(sa.Depth, netInflow, sa.Alpha, sa.DStore, tStep)
			sa.Depth = newDepth
			if sa.Depth > sa.DStore {
				sa.Runoff = sa.Alpha * math.Pow(sa.Depth-sa.DStore, 5.0/3.0)
			} else {
				sa.Runoff = 0
			}
		}

		totalEvap += surfEvap * sa.FArea
		totalInfil += infil * sa.FArea
		totalOutflow += sa.Runoff * sa.FArea
	}

	var lidOut, flowToLID float64
	if s.LID != nil {
		lidOut = s.LID.GetRunoff(tStep)
		flowToLID = s.LID.GetFlowToPerv()
	}

	if s.GW != nil {
		// groundwater sees surface infiltration plus LID exfiltration to
		// native soil (spec §4.3 step 6); the LID contract only exposes
		// GetFlowToPerv for that exchange.
		totalInfilWithLID := totalInfil + flowToLID
		s.GW.GetGroundwater(totalEvap, totalInfilWithLID, tStep)
	}

	s.EvapLoss = totalEvap
	s.InfilLoss = totalInfil

	outflow := totalOutflow - flowToLID + lidOut
	if outflow < 0 {
		outflow = 0
	}
	s.NewRunoff = outflow * s.Area // ft/sec * ft^2 = ft^3/sec = cfs

	s.RainfallVolume += (rain + snow) * s.Area * tStep
	s.EvapVolume += totalEvap * s.Area * tStep
	s.InfilVolume += totalInfil * s.Area * tStep
	s.OutflowVolume += s.NewRunoff * tStep

	return s.NewRunoff
}

// ReportedRunoff applies the output-smoothing threshold (spec §4.3): runoff
// below MinRunoff*area reports as zero, but routing always uses NewRunoff
// directly.
func (s *Subcatchment) ReportedRunoff() float64 {
	if s.NewRunoff < MinRunoff*s.Area {
		return 0
	}
	return s.NewRunoff
}

// crossRoute redistributes the prior step's impervious/pervious outflows
// per spec §4.3 step 2, adapted from the teacher's Surface.Update cascade
// (Hru.Sdet.Sto += r*(1-Fcasc); r *= Fcasc).
func (s *Subcatchment) crossRoute(prev [3]float64) {
	perv := &s.SubAreas[Perv]
	var toPerv float64
	for _, k := range []SubAreaKind{Imperv0, Imperv1} {
		sa := &s.SubAreas[k]
		if sa.RouteTo == ToPervious && sa.FArea > 0 {
			toPerv += prev[k] * sa.FArea * (1 - sa.FOutlet)
		}
	}

	var toImp1 float64
	if perv.RouteTo == ToImpervious && perv.FArea > 0 {
		toImp1 = prev[Perv] * perv.FArea * (1 - perv.FOutlet)
	}

	// fold the cross-routed flow into this step's per-area inflow rate
	// (rather than directly into Depth), consumed by netPrecipitation.
	if toPerv > 0 && perv.FArea > 0 {
		s.crossPerv = toPerv / perv.FArea
	} else {
		s.crossPerv = 0
	}
	imp1 := &s.SubAreas[Imperv1]
	if toImp1 > 0 && imp1.FArea > 0 {
		s.crossImp1 = toImp1 / imp1.FArea
	} else {
		s.crossImp1 = 0
	}
}

// netPrecipitation implements spec §4.3 step 3.
func (s *Subcatchment) netPrecipitation(tStep, rain, snow float64) [3]float64 {
	var out [3]float64
	if s.Snow != nil {
		fractions := [3]float64{s.SubAreas[Imperv0].FArea, s.SubAreas[Imperv1].FArea, s.SubAreas[Perv].FArea}
		melt, newDepth := s.Snow.GetSnowMelt(tStep, rain, snow, fractions)
		out = melt
		s.NewSnowDepth = newDepth
	} else {
		total := rain + snow
		out = [3]float64{total, total, total}
	}
	out[Imperv1] += s.crossImp1
	out[Perv] += s.crossPerv
	return out
}
