package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maseology/swmmcore/node"
)

func linearStorageNode() *node.Node {
	return &node.Node{
		ID: "ST1", Type: node.Storage,
		FullDepth: 10, FullVolume: 1000,
		Curve: linearCurve{fullDepth: 10, fullVolume: 1000},
	}
}

// linearCurve is a trivial depth<->volume mapping for storage-node tests.
type linearCurve struct{ fullDepth, fullVolume float64 }

func (c linearCurve) VolumeAt(d float64) float64   { return d / c.fullDepth * c.fullVolume }
func (c linearCurve) DepthAt(v float64) float64    { return v / c.fullVolume * c.fullDepth }
func (c linearCurve) PondedArea(d float64) float64 { return 0 }

func TestIterateStorage_TerminalNodeHasNoOutflowDemand(t *testing.T) {
	n := linearStorageNode()
	n.OldVolume = 100
	n.OldDepth = n.DepthFromVolume(100)
	n.LateralInflow = 1.0

	res := IterateStorage(n, n.LateralInflow, 0, 60, func(float64) float64 { return 0 })
	assert.True(t, n.Updated)
	assert.Greater(t, n.NewVolume, n.OldVolume, "a terminal storage node with positive inflow and no outflow only accumulates")
	assert.GreaterOrEqual(t, res.Iterations, 1)
}

func TestIterateStorage_ConvergesWithinMaxIterations(t *testing.T) {
	n := linearStorageNode()
	n.OldVolume = 500
	n.OldDepth = n.DepthFromVolume(500)

	res := IterateStorage(n, 1.0, 0, 60, func(float64) float64 { return 1.0 })
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Iterations, PicardMaxIter)
	assert.GreaterOrEqual(t, n.NewVolume, 0.0)
	assert.LessOrEqual(t, n.NewVolume, n.FullVolume)
}

func TestIterateStorage_NetDrainageReducesVolume(t *testing.T) {
	n := linearStorageNode()
	n.OldVolume = 500
	n.OldDepth = n.DepthFromVolume(500)
	n.OldNetInflow = -1.0 // previous step was already draining

	res := IterateStorage(n, 0, 0, 60, func(float64) float64 { return 2.0 })
	assert.LessOrEqual(t, n.NewVolume, n.OldVolume)
	_ = res
}

func TestIterateStorage_OverflowAboveFullVolumeWithoutPonding(t *testing.T) {
	n := linearStorageNode()
	n.PondingOn = false
	n.OldVolume = 950
	n.OldDepth = n.DepthFromVolume(950)

	res := IterateStorage(n, 10, 0, 60, func(float64) float64 { return 0 })
	_ = res
	assert.LessOrEqual(t, n.NewVolume, n.FullVolume+1e-6)
}

func TestIterateStorage_AlreadyUpdatedIsANoop(t *testing.T) {
	n := linearStorageNode()
	n.Updated = true
	n.NewVolume = 42
	res := IterateStorage(n, 100, 0, 60, func(float64) float64 { return 0 })
	assert.Equal(t, 0, res.Iterations)
	assert.True(t, res.Converged)
	assert.Equal(t, 42.0, n.NewVolume)
}
