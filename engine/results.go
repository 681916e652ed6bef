package engine

import (
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/resultstore"
	"github.com/maseology/swmmcore/subcatch"
)

// writePeriod aggregates current state into one reporting period and
// appends it to the results store (spec §4.2 "per-period aggregation").
// Each object's row follows the order of its reported variable-code list
// in the prologue, not the fixed enum order, since a project may report
// any subset/ordering of the variable codes (spec §6).
func (s *Simulation) writePeriod() {
	ctx := s.Ctx
	p := s.Results.Prologue

	row := resultstore.PeriodResults{
		DateTime: float64(ctx.CurrentTime.Unix()) / 86400.0,
	}

	row.Subcatch = make([][]float64, len(p.ReportedSubcatch))
	for i, idx := range p.ReportedSubcatch {
		if int(idx) >= len(ctx.Subcatchments) {
			continue
		}
		sub := ctx.Subcatchments[idx]
		vals := make([]float64, len(p.SubcatchVars))
		for j, code := range p.SubcatchVars {
			vals[j] = subcatchVarValue(resultstore.SubcatchVar(code), sub)
		}
		row.Subcatch[i] = vals
	}

	row.Node = make([][]float64, len(p.ReportedNodes))
	for i, idx := range p.ReportedNodes {
		if int(idx) >= len(ctx.Nodes) {
			continue
		}
		n := ctx.Nodes[idx]
		vals := make([]float64, len(p.NodeVars))
		for j, code := range p.NodeVars {
			vals[j] = nodeVarValue(resultstore.NodeVar(code), n)
		}
		row.Node[i] = vals
	}

	row.Link = make([][]float64, len(p.ReportedLinks))
	for i, idx := range p.ReportedLinks {
		if int(idx) >= len(ctx.Links) {
			continue
		}
		l := ctx.Links[idx]
		vals := make([]float64, len(p.LinkVars))
		for j, code := range p.LinkVars {
			vals[j] = linkVarValue(resultstore.LinkVar(code), l)
		}
		row.Link[i] = vals
	}

	row.System[resultstore.SysInfil] = resultstore.AreaWeightedMean(ctx.Subcatchments, func(sub *subcatch.Subcatchment) float64 { return sub.InfilLoss })
	row.System[resultstore.SysEvap] = resultstore.AreaWeightedMean(ctx.Subcatchments, func(sub *subcatch.Subcatchment) float64 { return sub.EvapLoss })
	row.System[resultstore.SysSnowDepth] = resultstore.AreaWeightedMean(ctx.Subcatchments, func(sub *subcatch.Subcatchment) float64 { return sub.NewSnowDepth })
	row.System[resultstore.SysRunoff] = sumRunoff(ctx.Subcatchments)
	row.System[resultstore.SysStorage] = resultstore.SystemStorageVolume(ctx.Nodes, ctx.Links, 1.0)
	row.System[resultstore.SysFlooding] = sumOverflow(ctx.Nodes)
	row.System[resultstore.SysOutflow] = sumOutfallFlow(ctx.Nodes)

	if code := s.Results.WritePeriod(row); code != 0 {
		ctx.SetError(code, 0, "resultstore.WritePeriod")
	}
	ctx.Metrics.AddResultBytes(int(resultstore.BytesPerPeriod(p)))
}

func subcatchVarValue(code resultstore.SubcatchVar, sub *subcatch.Subcatchment) float64 {
	switch code {
	case resultstore.SubRainfall:
		return sub.RainfallVolume
	case resultstore.SubSnowDepth:
		return sub.NewSnowDepth
	case resultstore.SubEvap:
		return sub.EvapLoss
	case resultstore.SubInfil:
		return sub.InfilLoss
	case resultstore.SubRunoff:
		return sub.ReportedRunoff()
	default:
		return 0
	}
}

func nodeVarValue(code resultstore.NodeVar, n *node.Node) float64 {
	switch code {
	case resultstore.NodeDepth:
		return n.NewDepth
	case resultstore.NodeHead:
		return n.Invert + n.NewDepth
	case resultstore.NodeVolume:
		return n.NewVolume
	case resultstore.NodeLatFlow:
		return n.LateralInflow
	case resultstore.NodeInflow:
		return n.Inflow
	case resultstore.NodeOverflow:
		return n.Overflow
	default:
		return 0
	}
}

func linkVarValue(code resultstore.LinkVar, l *link.Link) float64 {
	switch code {
	case resultstore.LinkFlow:
		return l.NewFlow
	case resultstore.LinkDepth:
		return l.NewDepth
	case resultstore.LinkVolume:
		return l.NewVolume
	case resultstore.LinkCapacity:
		if l.XS.FullArea <= 0 {
			return 0
		}
		return l.XS.AreaOfDepth(l.NewDepth) / l.XS.FullArea
	default:
		return 0
	}
}

func sumRunoff(subs []*subcatch.Subcatchment) float64 {
	var total float64
	for _, s := range subs {
		total += s.NewRunoff
	}
	return total
}

func sumOverflow(nodes []*node.Node) float64 {
	var total float64
	for _, n := range nodes {
		total += n.Overflow
	}
	return total
}

func sumOutfallFlow(nodes []*node.Node) float64 {
	var total float64
	for _, n := range nodes {
		if n.Type == node.Outfall {
			total += n.Inflow
		}
	}
	return total
}
