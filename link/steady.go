package link

// SteadyFlow routes one link under the steady-flow model (spec §4.6.2):
// subtract per-step losses from the inflow, cap at QFull, and for conduits
// invert the cross-section rating q = beta*S(A) when below capacity.
// Non-conduit links pass qIn through unchanged.
func (l *Link) SteadyFlow(qIn, lossRate float64) (qOut float64) {
	if l.Type != Conduit {
		return qIn
	}
	q := qIn - lossRate
	if q < 0 {
		q = 0
	}
	if q >= l.QFull {
		l.NewDepth = l.XS.FullDepth
		return l.QFull
	}
	if l.XS.AreaOfFlow == nil || l.Roughness <= 0 || l.Slope <= 0 {
		return q
	}
	beta := 1.49 / l.Roughness // Manning's coefficient, US customary (ft^1/3/s)
	a := l.XS.AreaOfFlow(q, beta)
	if l.XS.DepthOfArea != nil {
		l.NewDepth = l.XS.DepthOfArea(a)
	}
	return q
}
