package resultstore

import "github.com/maseology/swmmcore/project"

// PeriodResults holds one reporting period's worth of result rows, already
// aggregated (spec §4.2 "per-period aggregation"), ready to write. Rows are
// indexed in the same order as Prologue.ReportedSubcatch/Nodes/Links.
type PeriodResults struct {
	DateTime float64 // days since epoch, internal f64 precision (spec §4.2)

	Subcatch [][]float64 // [reportedIndex][subcatchVar]
	Node     [][]float64 // [reportedIndex][nodeVar]
	Link     [][]float64 // [reportedIndex][linkVar]
	System   [MaxSysResults]float64
}

// BytesPerPeriod computes the fixed per-period block width (spec §4.2),
// the quantity random-access readers use to seek without scanning.
func BytesPerPeriod(p Prologue) int64 {
	const f64sz, f32sz = 8, 4
	nSub := int64(len(p.ReportedSubcatch))
	nNod := int64(len(p.ReportedNodes))
	nLnk := int64(len(p.ReportedLinks))
	return f64sz +
		nSub*int64(p.NSubcatchResults())*f32sz +
		nNod*int64(p.NNodeResults())*f32sz +
		nLnk*int64(p.NLinkResults())*f32sz +
		int64(MaxSysResults)*f32sz
}

func writePeriod(wr *writer, r PeriodResults) {
	wr.f64(r.DateTime)
	for _, row := range r.Subcatch {
		for _, v := range row {
			wr.f32(v)
		}
	}
	for _, row := range r.Node {
		for _, v := range row {
			wr.f32(v)
		}
	}
	for _, row := range r.Link {
		for _, v := range row {
			wr.f32(v)
		}
	}
	for _, v := range r.System {
		wr.f32(v)
	}
}

func readPeriod(rd *reader, p Prologue) (PeriodResults, project.ErrCode) {
	var r PeriodResults
	r.DateTime = rd.f64()

	nSubV, nNodV, nLnkV := p.NSubcatchResults(), p.NNodeResults(), p.NLinkResults()
	r.Subcatch = make([][]float64, len(p.ReportedSubcatch))
	for i := range r.Subcatch {
		r.Subcatch[i] = make([]float64, nSubV)
		for v := range r.Subcatch[i] {
			r.Subcatch[i][v] = float64(rd.f32())
		}
	}
	r.Node = make([][]float64, len(p.ReportedNodes))
	for i := range r.Node {
		r.Node[i] = make([]float64, nNodV)
		for v := range r.Node[i] {
			r.Node[i][v] = float64(rd.f32())
		}
	}
	r.Link = make([][]float64, len(p.ReportedLinks))
	for i := range r.Link {
		r.Link[i] = make([]float64, nLnkV)
		for v := range r.Link[i] {
			r.Link[i][v] = float64(rd.f32())
		}
	}
	for i := range r.System {
		r.System[i] = float64(rd.f32())
	}
	return r, rd.err
}
