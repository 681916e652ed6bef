package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/project"
	"github.com/maseology/swmmcore/resultstore"
	"github.com/maseology/swmmcore/routing"
)

func testPrologue(ctx *project.Context) resultstore.Prologue {
	p := resultstore.Prologue{FlowUnitCode: int32(ctx.Config.FlowUnitCode)}
	for i, s := range ctx.Subcatchments {
		p.ReportedSubcatch = append(p.ReportedSubcatch, int32(i))
		p.SubcatchID = append(p.SubcatchID, s.ID)
		p.SubcatchArea = append(p.SubcatchArea, float32(s.Area))
	}
	for i, n := range ctx.Nodes {
		p.ReportedNodes = append(p.ReportedNodes, int32(i))
		p.NodeID = append(p.NodeID, n.ID)
		p.NodeInvert = append(p.NodeInvert, float32(n.Invert))
		p.NodeFullDepth = append(p.NodeFullDepth, float32(n.FullDepth))
	}
	for i, l := range ctx.Links {
		p.ReportedLinks = append(p.ReportedLinks, int32(i))
		p.LinkID = append(p.LinkID, l.ID)
		p.LinkLength = append(p.LinkLength, float32(l.Length))
		p.LinkFullDepth = append(p.LinkFullDepth, float32(l.XS.FullDepth))
	}
	p.SubcatchVars = []int32{int32(resultstore.SubRainfall), int32(resultstore.SubRunoff)}
	p.NodeVars = []int32{int32(resultstore.NodeDepth), int32(resultstore.NodeInflow)}
	p.LinkVars = []int32{int32(resultstore.LinkFlow)}
	return p
}

func TestEngine_OpenStepClose_WritesResultsFile(t *testing.T) {
	ctx := SingleImperviousScenario()
	var resultsBuf bytes.Buffer
	sim, code := Open(ctx, OpenConfig{
		Model:           routing.Steady,
		ReportStep:      5 * time.Minute,
		WetStep:         time.Minute,
		DryStep:         time.Hour,
		Results:         &resultsBuf,
		ResultsProto:    testPrologue(ctx),
		ExpectedPeriods: 30,
		MaxResultBytes:  1 << 20,
		EvapRate:        func(time.Time) float64 { return 0 },
		NextEvapChange:  func(t time.Time) time.Time { return t.Add(time.Hour) },
	})
	require.Equal(t, project.ErrNone, code)
	require.NotNil(t, sim)

	require.Equal(t, project.ErrNone, sim.Step())
	assert.Equal(t, project.ErrNone, ctx.ErrCode())

	terminal := sim.Close()
	assert.Equal(t, project.ErrNone, terminal)
	assert.Greater(t, resultsBuf.Len(), 0)
}

func TestEngine_Run_AdvancesToEndOfSimulation(t *testing.T) {
	ctx := SingleImperviousScenario()
	start := ctx.CurrentTime
	sim, code := Open(ctx, OpenConfig{
		Model:          routing.Steady,
		WetStep:        time.Minute,
		DryStep:        time.Hour,
		EvapRate:       func(time.Time) float64 { return 0 },
		NextEvapChange: func(t time.Time) time.Time { return t.Add(time.Hour) },
	})
	require.Equal(t, project.ErrNone, code)

	code = sim.Run()
	assert.Equal(t, project.ErrNone, code)
	assert.False(t, ctx.CurrentTime.Before(start.Add(ctx.TotalDuration)))
}

func TestEngine_Open_RejectsInvalidNetwork(t *testing.T) {
	ctx := SingleImperviousScenario()
	ctx.Nodes[1].Type = node.Junction // removes the only outfall
	_, code := Open(ctx, OpenConfig{Model: routing.Steady})
	assert.NotEqual(t, project.ErrNone, code)
}
