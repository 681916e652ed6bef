package hotstart

import (
	"bufio"
	"io"

	"github.com/maseology/swmmcore/project"
)

// Write persists the full dynamic simulation state at CurrentVersion (spec
// §4.1), sufficient to resume a run without replaying history.
func Write(w io.Writer, c Catalog, nPoll, nLandUse, flowUnitCode int) project.ErrCode {
	wr := &writer{w: w}
	writeHeader(wr, Header{
		Version:      CurrentVersion,
		NSubcatch:    len(c.Subcatchments),
		NLandUses:    nLandUse,
		NNodes:       len(c.Nodes),
		NLinks:       len(c.Links),
		NPollutants:  nPoll,
		FlowUnitCode: flowUnitCode,
	})
	if wr.err != project.ErrNone {
		return wr.err
	}
	writeRunoffPayload(wr, c, nPoll)
	if wr.err != project.ErrNone {
		return wr.err
	}
	writeRoutingPayload(wr, c, CurrentVersion, nPoll)
	return wr.err
}

// Read restores state from a hotstart file before starting a run (spec
// §4.1). It accepts older magics and degrades the payload layout
// accordingly (see SPEC_FULL.md supplement 1). nPoll/nLandUse/flowUnitCode
// describe the CURRENT project, used to validate the file's header.
func Read(r io.Reader, c Catalog, nPoll, nLandUse, flowUnitCode int) project.ErrCode {
	br := bufio.NewReader(r)
	v, code := detectVersion(br)
	if code != project.ErrNone {
		return code
	}
	rd := &reader{r: br}
	h, code := readHeader(rd, c, flowUnitCode)
	if code != project.ErrNone {
		return code
	}
	if h.NPollutants != nPoll || h.NLandUses != nLandUse {
		return project.ErrHotstartFileFormat
	}

	if v >= V3 {
		readRunoffPayload(rd, c, nPoll, nLandUse)
		if rd.err != project.ErrNone {
			return rd.err
		}
	}
	readRoutingPayload(rd, c, v, nPoll)
	return rd.err
}
