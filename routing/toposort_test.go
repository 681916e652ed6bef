package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
)

func TestTopoSort_ThreeLinkChainOrdersByLevel(t *testing.T) {
	nodes := []*node.Node{
		{ID: "J1", Type: node.Junction},
		{ID: "J2", Type: node.Junction},
		{ID: "J3", Type: node.Junction},
		{ID: "OUT1", Type: node.Outfall},
	}
	links := []*link.Link{
		{ID: "C1", Node1: 0, Node2: 1, Type: link.Conduit, Slope: 0.01},
		{ID: "C2", Node1: 1, Node2: 2, Type: link.Conduit, Slope: 0.01},
		{ID: "C3", Node1: 2, Node2: 3, Type: link.Conduit, Slope: 0.01},
	}
	order, err := TopoSort(nodes, links)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order.Flat)
	require.Len(t, order.Levels, 3)
	assert.Equal(t, []int{0}, order.Levels[0])
	assert.Equal(t, []int{1}, order.Levels[1])
	assert.Equal(t, []int{2}, order.Levels[2])
}

func TestTopoSort_ConvergingBranchesShareALevel(t *testing.T) {
	// two independent upstream links feeding a shared downstream node sit
	// in the same dependency level since neither depends on the other.
	nodes := []*node.Node{
		{ID: "J1", Type: node.Junction},
		{ID: "J2", Type: node.Junction},
		{ID: "J3", Type: node.Junction},
		{ID: "OUT1", Type: node.Outfall},
	}
	links := []*link.Link{
		{ID: "C1", Node1: 0, Node2: 2, Type: link.Conduit, Slope: 0.01},
		{ID: "C2", Node1: 1, Node2: 2, Type: link.Conduit, Slope: 0.01},
		{ID: "C3", Node1: 2, Node2: 3, Type: link.Conduit, Slope: 0.01},
	}
	order, err := TopoSort(nodes, links)
	require.NoError(t, err)
	require.Len(t, order.Levels, 2)
	assert.ElementsMatch(t, []int{0, 1}, order.Levels[0])
	assert.Equal(t, []int{2}, order.Levels[1])
}

func TestTopoSort_CycleIsRejected(t *testing.T) {
	nodes := []*node.Node{
		{ID: "J1", Type: node.Junction},
		{ID: "J2", Type: node.Junction},
	}
	links := []*link.Link{
		{ID: "C1", Node1: 0, Node2: 1, Type: link.Conduit, Slope: 0.01},
		{ID: "C2", Node1: 1, Node2: 0, Type: link.Conduit, Slope: 0.01},
	}
	_, err := TopoSort(nodes, links)
	assert.Error(t, err)
}
