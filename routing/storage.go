package routing

import (
	"math"

	"github.com/maseology/swmmcore/node"
)

// Picard under-relaxation and convergence constants (spec §4.6.1).
const (
	PicardOmega   = 0.55
	PicardMaxIter = 10
	PicardStopTol = 0.005 // ft
)

// StorageResult reports how the Picard iteration for one storage node
// resolved this step, for metrics/logging.
type StorageResult struct {
	Iterations int
	Converged  bool
}

// IterateStorage solves the trapezoidal flow balance for a storage node
// (spec §4.6.1):
//
//	V_new = V_old + 1/2*(oldNetInflow + (inflow-outflow-losses))*dt
//	        - 1/2*outflow_storage(V_new)*dt
//
// by Picard iteration with under-relaxation omega=0.55, at most
// PicardMaxIter passes, stopping when |d_new - d_prev| <= PicardStopTol.
// outflowAt(volume) is the node's own downstream demand as a function of
// trial volume (e.g. its regulator links' combined flow); it may return 0
// for a terminal storage node with no outgoing links, per spec §4.6.1.
func IterateStorage(n *node.Node, inflow, losses, dt float64, outflowAt func(volume float64) float64) StorageResult {
	if n.Updated {
		return StorageResult{Iterations: 0, Converged: true}
	}
	defer func() { n.Updated = true }()

	dPrev := n.OldDepth
	vNew := n.OldVolume
	var res StorageResult
	for it := 0; it < PicardMaxIter; it++ {
		res.Iterations = it + 1
		outflow := outflowAt(vNew)
		target := n.OldVolume + 0.5*(n.OldNetInflow+(inflow-outflow-losses))*dt - 0.5*outflow*dt
		vNew = n.OldVolume + PicardOmega*(target-n.OldVolume) + (1-PicardOmega)*(vNew-n.OldVolume)

		if vNew < 0 {
			vNew = 0
		}
		if vNew > n.FullVolume && n.FullVolume > 0 {
			overflow := (vNew - math.Max(n.OldVolume, n.FullVolume)) / dt
			if overflow < 1e-9 {
				overflow = 0
			}
			n.Overflow = overflow
			if !n.PondingOn || n.PondedArea <= 0 {
				vNew = n.FullVolume
			}
		}

		dNew := n.DepthFromVolume(vNew)
		if math.Abs(dNew-dPrev) <= PicardStopTol {
			dPrev = dNew
			res.Converged = true
			break
		}
		dPrev = dNew
	}

	n.NewVolume = vNew
	if n.NewVolume < 0 {
		n.NewVolume = 0
	}
	n.NewDepth = n.DepthFromVolume(n.NewVolume)
	if n.NewDepth < 0 {
		n.NewDepth = 0
	}
	if n.Overflow < 0 {
		n.Overflow = 0
	}
	return res
}
