package runoffstep

import (
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/subcatch"
)

// RerouteOutfalls implements spec §4.7: after a runoff step, every outfall
// whose RouteToSub names a non-zero-area subcatchment converts its
// accumulated VRouted (ft^3) into a flow rate using the *previous* step's
// duration, adds it to the target's runon aggregator, bookkeeps it as
// outflow volume, and resets VRouted. Pollutant load carried with the flow
// is folded into the target's NewQuality as a temporary wet-deposition
// accumulation, then reset (spec §4.7).
func RerouteOutfalls(nodes []*node.Node, subs []*subcatch.Subcatchment, prevStepSec float64) {
	if prevStepSec <= 0 {
		return
	}
	for _, n := range nodes {
		if n.Type != node.Outfall || n.RouteToSub < 0 || n.VRouted == 0 {
			continue
		}
		if n.RouteToSub >= len(subs) {
			n.VRouted = 0
			continue
		}
		target := subs[n.RouteToSub]
		area := target.NonLIDArea()
		if area <= 0 {
			n.VRouted = 0
			continue
		}
		flow := n.VRouted / prevStepSec // cfs
		target.Runon += flow / area
		target.OutflowVolume += n.VRouted
		if len(n.NewQuality) > 0 {
			if len(target.NewQuality) < len(n.NewQuality) {
				target.NewQuality = append(target.NewQuality, make([]float64, len(n.NewQuality)-len(target.NewQuality))...)
			}
			for p, c := range n.NewQuality {
				// temporary mass deposition (conc * volume); the next step's
				// buildup/washoff pass, out of scope here, would consume it.
				target.NewQuality[p] += c * n.VRouted
			}
		}
		n.VRouted = 0
	}
}
