package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
)

func TestEngine_OpenAndStep_SingleConduitPassesInflowToOutfall(t *testing.T) {
	nodes := []*node.Node{
		{ID: "J1", Type: node.Junction, FullDepth: 5, FullVolume: 500},
		{ID: "OUT1", Type: node.Outfall},
	}
	links := []*link.Link{
		{
			// AreaOfFlow left nil: SteadyFlow falls back to passing qIn
			// through unchanged below QFull, which is all this test needs.
			ID: "C1", Type: link.Conduit, Node1: 0, Node2: 1,
			Slope: 0.01, Length: 200, Roughness: 0.015, QFull: 50,
			XS: link.XSect{FullDepth: 5, FullArea: 50},
		},
	}
	e, err := Open(nodes, links, Steady)
	require.NoError(t, err)

	// Step's own SetOldState zeroes node.LateralInflow before the link loop
	// runs, so the lateral inflow for this step is handed to Step itself
	// rather than set on the node beforehand.
	err = e.Step(60, []float64{5.0, 0})
	require.NoError(t, err)

	assert.Greater(t, links[0].NewFlow, 0.0)
	assert.InDelta(t, links[0].NewFlow, nodes[1].Inflow, 1e-6)
}

func TestEngine_Step_OverflowAboveFullVolumeOnNonStorageNode(t *testing.T) {
	nodes := []*node.Node{
		{ID: "J1", Type: node.Junction, FullDepth: 5, FullVolume: 100, InitDepth: 6,
			PondingOn: true, PondedArea: 10},
		{ID: "OUT1", Type: node.Outfall},
	}
	links := []*link.Link{
		{ID: "C1", Type: link.Conduit, Node1: 0, Node2: 1, Slope: 0.01, Length: 100,
			XS: link.XSect{FullDepth: 5, FullArea: 50}},
	}
	e, err := Open(nodes, links, Steady)
	require.NoError(t, err)
	require.Greater(t, nodes[0].OldVolume, nodes[0].FullVolume)

	err = e.Step(60, nil)
	require.NoError(t, err)
	assert.Greater(t, nodes[0].Overflow, 0.0)
}

func TestOpen_RejectsInvalidNetwork(t *testing.T) {
	nodes := []*node.Node{{ID: "J1", Type: node.Junction}}
	links := []*link.Link{}
	_, err := Open(nodes, links, Steady)
	assert.Error(t, err, "a network with no outfall must be rejected at Open")
}
