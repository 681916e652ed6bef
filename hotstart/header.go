package hotstart

import (
	"bufio"
	"io"
	"strings"

	"github.com/maseology/swmmcore/project"
)

// detectVersion peeks at the stream (without consuming more than the
// matched magic) to identify which hotstart version wrote the file, then
// discards exactly that many bytes. Longest magics are tried first so the
// 15-byte "SWMM5-HOTSTART2" is never mistaken for a truncated match of the
// 14-byte v1 magic "SWMM5-HOTSTART".
func detectVersion(br *bufio.Reader) (Version, project.ErrCode) {
	order := []Version{V4, V3, V2, V1}
	longest := 0
	for _, v := range order {
		if len(magics[v]) > longest {
			longest = len(magics[v])
		}
	}
	peek, err := br.Peek(longest)
	if err != nil && len(peek) == 0 {
		return 0, project.ErrHotstartFileOpen
	}
	s := string(peek)
	for _, v := range order {
		m := magics[v]
		if strings.HasPrefix(s, m) {
			if _, err := br.Discard(len(m)); err != nil {
				return 0, project.ErrHotstartFileOpen
			}
			return v, project.ErrNone
		}
	}
	return 0, project.ErrHotstartFileFormat
}

func writeHeader(wr *writer, h Header) {
	m, ok := magics[h.Version]
	if !ok {
		wr.err = project.ErrHotstartFileFormat
		return
	}
	wr.str(m)
	wr.i32(int32(h.NSubcatch))
	wr.i32(int32(h.NLandUses))
	wr.i32(int32(h.NNodes))
	wr.i32(int32(h.NLinks))
	wr.i32(int32(h.NPollutants))
	wr.i32(int32(h.FlowUnitCode))
}

// readHeader parses the six int32 counts following the magic (already
// consumed by detectVersion), and validates the subcatchment, node and link
// counts and the flow unit against the current project (spec §4.1:
// disagreement is rejected as HOTSTART_FORMAT). Read checks the pollutant
// and land-use counts.
func readHeader(rd *reader, want Catalog, wantFlowUnit int) (Header, project.ErrCode) {
	h := Header{
		NSubcatch:    rd.int32AsInt(),
		NLandUses:    rd.int32AsInt(),
		NNodes:       rd.int32AsInt(),
		NLinks:       rd.int32AsInt(),
		NPollutants:  rd.int32AsInt(),
		FlowUnitCode: rd.int32AsInt(),
	}
	if rd.err != project.ErrNone {
		return h, rd.err
	}
	if h.NSubcatch != len(want.Subcatchments) ||
		h.NNodes != len(want.Nodes) ||
		h.NLinks != len(want.Links) ||
		h.FlowUnitCode != wantFlowUnit {
		return h, project.ErrHotstartFileFormat
	}
	return h, project.ErrNone
}

func (rd *reader) int32AsInt() int { return int(rd.i32()) }

// PeekHeader parses a hotstart file's version and header counts without
// validating them against a live project's catalogs — useful for
// operational tooling (e.g. a CLI "inspect" command) that wants to report
// on a hotstart file without first building the project it belongs to.
func PeekHeader(r io.Reader) (Header, project.ErrCode) {
	br := bufio.NewReader(r)
	v, code := detectVersion(br)
	if code != project.ErrNone {
		return Header{}, code
	}
	rd := &reader{r: br}
	h := Header{
		Version:      v,
		NSubcatch:    rd.int32AsInt(),
		NLandUses:    rd.int32AsInt(),
		NNodes:       rd.int32AsInt(),
		NLinks:       rd.int32AsInt(),
		NPollutants:  rd.int32AsInt(),
		FlowUnitCode: rd.int32AsInt(),
	}
	return h, rd.err
}
