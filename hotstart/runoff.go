package hotstart

// writeRunoffPayload and readRunoffPayload implement spec §4.1's runoff
// payload, written/read only for version >= V3, in subcatchment catalog
// order.
func writeRunoffPayload(wr *writer, c Catalog, nPoll int) {
	for i, s := range c.Subcatchments {
		wr.f64(s.SubAreas[0].Depth)
		wr.f64(s.SubAreas[1].Depth)
		wr.f64(s.SubAreas[2].Depth)
		wr.f64(s.NewRunoff)

		var infilState [6]float64
		if s.Infil != nil {
			infilState = s.Infil.GetState()
		}
		for _, v := range infilState {
			wr.f64(v)
		}

		if i < len(c.HasGW) && c.HasGW[i] && s.GW != nil {
			gw := s.GW.GetState()
			for _, v := range gw {
				wr.f64(v)
			}
		}
		if i < len(c.HasSnow) && c.HasSnow[i] && s.Snow != nil {
			for surf := 0; surf < 3; surf++ {
				v := s.Snow.GetState(surf)
				for _, f := range v {
					wr.f64(f)
				}
			}
		}

		if nPoll > 0 {
			for p := 0; p < nPoll; p++ {
				wr.f64(valueOrZero(s.NewQuality, p))
			}
			for p := 0; p < nPoll; p++ {
				wr.f64(valueOrZero(s.PondedQuality, p))
			}
			for lu := range s.Buildup {
				for p := 0; p < nPoll; p++ {
					wr.f64(valueOrZero(s.Buildup[lu], p))
				}
				wr.f64(valueOrZero(s.LastSwept, lu))
			}
		}
		if wr.err != 0 {
			return
		}
	}
}

func readRunoffPayload(rd *reader, c Catalog, nPoll, nLandUse int) {
	for i, s := range c.Subcatchments {
		s.SubAreas[0].Depth = rd.f64()
		s.SubAreas[1].Depth = rd.f64()
		s.SubAreas[2].Depth = rd.f64()
		s.NewRunoff = rd.f64()

		var infilState [6]float64
		for k := range infilState {
			infilState[k] = rd.f64()
		}
		if s.Infil != nil {
			s.Infil.SetState(infilState)
		}

		if i < len(c.HasGW) && c.HasGW[i] {
			var gw [4]float64
			for k := range gw {
				gw[k] = rd.f64()
			}
			if s.GW != nil {
				s.GW.SetState(gw)
			}
		}
		if i < len(c.HasSnow) && c.HasSnow[i] {
			for surf := 0; surf < 3; surf++ {
				var v [5]float64
				for k := range v {
					v[k] = rd.f64()
				}
				if s.Snow != nil {
					s.Snow.SetState(surf, v)
				}
			}
		}

		if nPoll > 0 {
			s.NewQuality = make([]float64, nPoll)
			s.PondedQuality = make([]float64, nPoll)
			for p := 0; p < nPoll; p++ {
				s.NewQuality[p] = rd.f64()
			}
			for p := 0; p < nPoll; p++ {
				s.PondedQuality[p] = rd.f64()
			}
			s.Buildup = make([][]float64, nLandUse)
			s.LastSwept = make([]float64, nLandUse)
			for lu := 0; lu < nLandUse; lu++ {
				s.Buildup[lu] = make([]float64, nPoll)
				for p := 0; p < nPoll; p++ {
					s.Buildup[lu][p] = rd.f64()
				}
				s.LastSwept[lu] = rd.f64()
			}
		}
		if rd.err != 0 {
			// spec §4.1 NaN policy: abort further reads, leaving already
			// loaded subcatchments (index < i) intact (best-effort, spec §7).
			return
		}
	}
}

func valueOrZero(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}
