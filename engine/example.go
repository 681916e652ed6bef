package engine

import (
	"math"
	"time"

	"github.com/maseology/swmmcore/climate"
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/metrics"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/project"
	"github.com/maseology/swmmcore/subcatch"
)

// SingleImperviousScenario builds the spec §8 end-to-end scenario 1: one
// fully impervious subcatchment, constant 0.5 in/hr rain for one hour, no
// losses, draining to a single outfall. It exists so the CLI's demo `run`
// command and this package's tests exercise the same grounded fixture
// rather than two divergent ad hoc setups.
func SingleImperviousScenario() *project.Context {
	const (
		ftPerAcre = 43560.0
		inPerHr   = 1.0 / 12.0 / 3600.0 // ft/sec per in/hr
	)

	sub := &subcatch.Subcatchment{
		ID:         "S1",
		Area:       1 * ftPerAcre,
		FracImperv: 1.0,
		Width:      100,
		Slope:      0.01,
		OutletSub:  -1,
		OutletNode: 0,
		GageIndex:  0,
	}
	sub.SubAreas[subcatch.Imperv0].FArea = 1
	sub.SubAreas[subcatch.Imperv0].N = 0.015
	sub.SubAreas[subcatch.Imperv0].DStore = 0.05 / 12.0 // 0.05 in -> ft
	sub.SubAreas[subcatch.Imperv0].Alpha = manningsAlpha(0.015, 0.01, sub.Area, 100)
	sub.SubAreas[subcatch.Imperv1].FArea = 0
	sub.SubAreas[subcatch.Perv].FArea = 0

	n1 := &node.Node{ID: "J1", Type: node.Junction, FullDepth: 10, FullVolume: 1000}
	n2 := &node.Node{ID: "OUT1", Type: node.Outfall, RouteToSub: -1}

	l1 := &link.Link{
		ID: "C1", Type: link.Conduit,
		Node1: 0, Node2: 1, Direction: 1,
		QFull: 1e9, Roughness: 0.015, Slope: 0.01, Length: 100,
		XS: link.XSect{FullDepth: 10, FullArea: 100},
	}

	gage := &climate.Series{
		Times: []time.Time{time.Unix(0, 0), time.Unix(0, 0).Add(time.Hour)},
		Rain:  []float64{0.5 * inPerHr, 0},
		Snow:  []float64{0, 0},
	}

	ctx := project.NewContext("single-impervious-demo")
	ctx.Subcatchments = []*subcatch.Subcatchment{sub}
	ctx.Nodes = []*node.Node{n1, n2}
	ctx.Links = []*link.Link{l1}
	ctx.Gages = []climate.Gage{gage}
	ctx.CurrentTime = time.Unix(0, 0)
	ctx.TotalDuration = time.Hour
	ctx.Config = project.DefaultConfig()
	ctx.Metrics = metrics.NewForTesting()
	return ctx
}

// manningsAlpha computes the sub-area non-linear-reservoir coefficient
// (spec §3 "non-linear-reservoir coefficient α") from Manning's n, slope,
// subcatchment area, and width: alpha = 1.49*sqrt(slope)*width/(n*area)
// (US customary units), the standard SWMM sub-area rating-curve
// coefficient, grounded against original_source/src/subcatch.c's
// getSubareaRunoff.
func manningsAlpha(n, slope, area, width float64) float64 {
	if n <= 0 || area <= 0 {
		return 0
	}
	return 1.49 * math.Sqrt(slope) * width / (n * area)
}
