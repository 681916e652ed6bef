package resultstore

import "github.com/maseology/swmmcore/project"

// Prologue is the fixed-but-variable-length header region written once at
// the start of a results file (spec §4.2): catalog sizes, reported-object
// identity and static inputs, and the result-variable codes present in
// every period block. ReportedSubcatch/Node/Link hold indices into the
// full project catalog; only these appear in each period block, in this
// order.
type Prologue struct {
	Version      int32
	FlowUnitCode int32

	NSubcatch, NNodes, NLinks, NPollutants int32
	PollutantUnitCodes                     []int32

	ReportedSubcatch []int32
	ReportedNodes    []int32
	ReportedLinks    []int32

	SubcatchID []string
	NodeID     []string
	LinkID     []string

	// Static per-object inputs (spec §4.2 "per-object static inputs such as
	// area, invert, cross-section dimensions"), one entry per reported
	// object, f32 precision like every other stored result.
	SubcatchArea  []float32
	NodeInvert    []float32
	NodeFullDepth []float32
	LinkLength    []float32
	LinkFullDepth []float32

	SubcatchVars []int32
	NodeVars     []int32
	LinkVars     []int32
}

func writeIntSlice(wr *writer, v []int32) {
	wr.i32(int32(len(v)))
	for _, x := range v {
		wr.i32(x)
	}
}

func readIntSlice(rd *reader) []int32 {
	n := rd.i32()
	if rd.err != project.ErrNone || n < 0 {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = rd.i32()
	}
	return out
}

func writeF32Slice(wr *writer, v []float32) {
	wr.i32(int32(len(v)))
	for _, x := range v {
		wr.f32(float64(x))
	}
}

func readF32Slice(rd *reader) []float32 {
	n := rd.i32()
	if rd.err != project.ErrNone || n < 0 {
		return nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = rd.f32()
	}
	return out
}

func writeStrSlice(wr *writer, v []string) {
	wr.i32(int32(len(v)))
	for _, s := range v {
		wr.str(s)
	}
}

func readStrSlice(rd *reader) []string {
	n := rd.i32()
	if rd.err != project.ErrNone || n < 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = rd.str()
	}
	return out
}

func writePrologue(wr *writer, p Prologue) {
	wr.str(magic)
	wr.i32(StoreVersion)
	wr.i32(p.FlowUnitCode)
	wr.i32(p.NSubcatch)
	wr.i32(p.NNodes)
	wr.i32(p.NLinks)
	wr.i32(p.NPollutants)
	writeIntSlice(wr, p.PollutantUnitCodes)

	writeIntSlice(wr, p.ReportedSubcatch)
	writeIntSlice(wr, p.ReportedNodes)
	writeIntSlice(wr, p.ReportedLinks)

	writeStrSlice(wr, p.SubcatchID)
	writeStrSlice(wr, p.NodeID)
	writeStrSlice(wr, p.LinkID)

	writeF32Slice(wr, p.SubcatchArea)
	writeF32Slice(wr, p.NodeInvert)
	writeF32Slice(wr, p.NodeFullDepth)
	writeF32Slice(wr, p.LinkLength)
	writeF32Slice(wr, p.LinkFullDepth)

	writeIntSlice(wr, p.SubcatchVars)
	writeIntSlice(wr, p.NodeVars)
	writeIntSlice(wr, p.LinkVars)
}

func readPrologue(rd *reader) (Prologue, project.ErrCode) {
	var p Prologue
	got := rd.str()
	if got != magic {
		return p, project.ErrOutFile
	}
	p.Version = rd.i32()
	p.FlowUnitCode = rd.i32()
	p.NSubcatch = rd.i32()
	p.NNodes = rd.i32()
	p.NLinks = rd.i32()
	p.NPollutants = rd.i32()
	p.PollutantUnitCodes = readIntSlice(rd)

	p.ReportedSubcatch = readIntSlice(rd)
	p.ReportedNodes = readIntSlice(rd)
	p.ReportedLinks = readIntSlice(rd)

	p.SubcatchID = readStrSlice(rd)
	p.NodeID = readStrSlice(rd)
	p.LinkID = readStrSlice(rd)

	p.SubcatchArea = readF32Slice(rd)
	p.NodeInvert = readF32Slice(rd)
	p.NodeFullDepth = readF32Slice(rd)
	p.LinkLength = readF32Slice(rd)
	p.LinkFullDepth = readF32Slice(rd)

	p.SubcatchVars = readIntSlice(rd)
	p.NodeVars = readIntSlice(rd)
	p.LinkVars = readIntSlice(rd)

	if rd.err != project.ErrNone {
		return p, rd.err
	}
	return p, project.ErrNone
}

// NSubcatchResults/NNodeResults/NLinkResults are the per-object column
// counts implied by the variable code lists, used to compute BytesPerPeriod.
func (p Prologue) NSubcatchResults() int { return len(p.SubcatchVars) }
func (p Prologue) NNodeResults() int     { return len(p.NodeVars) }
func (p Prologue) NLinkResults() int     { return len(p.LinkVars) }
