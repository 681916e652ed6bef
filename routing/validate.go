package routing

import (
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/project"
)

// Validate checks the steady/kinematic network invariants of spec §3:
// the graph is a tree (each non-outfall non-storage node has at most one
// outgoing link; a divider has at most two; an outfall has none), regulator
// links (orifice/weir/outlet) originate only at storage nodes, non-dummy
// conduits have non-negative slope, and at least one outfall exists.
// It also sets Node.Degree as a side effect, per spec §3.
func Validate(nodes []*node.Node, links []*link.Link) project.ErrCode {
	outDegree := make([]int, len(nodes))
	for _, l := range links {
		if l.Node1 < 0 || l.Node1 >= len(nodes) || l.Node2 < 0 || l.Node2 >= len(nodes) {
			return project.ErrOutfall
		}
		outDegree[l.Node1]++
	}
	for i, n := range nodes {
		n.Degree = outDegree[i]
		switch n.Type {
		case node.Outfall:
			if outDegree[i] > 0 {
				return project.ErrOutfall
			}
		case node.Divider:
			if outDegree[i] > 2 {
				return project.ErrDivider
			}
		default:
			if outDegree[i] > 1 {
				return project.ErrMultiOutlet
			}
		}
	}

	nOutfalls := 0
	for _, n := range nodes {
		if n.Type == node.Outfall {
			nOutfalls++
		}
	}
	if nOutfalls == 0 {
		return project.ErrNoOutlets
	}

	for _, l := range links {
		if l.Type.IsRegulator() {
			if nodes[l.Node1].Type != node.Storage {
				return project.ErrRegulator
			}
		}
		if l.Type == link.Conduit {
			if l.IsDummy {
				if l.Slope != 0 {
					return project.ErrDummyLink
				}
			} else if l.Slope < 0 {
				return project.ErrSlope
			}
		}
	}
	return project.ErrNone
}
