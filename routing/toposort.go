package routing

import (
	"fmt"
	"sort"

	"github.com/maseology/mmaths/topology"
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
)

// Order is a topological ordering of link catalog indices, grouped into
// levels such that every link in level k depends only on links in levels
// < k. The grouping is what spec §5 calls out as the unit of an optional
// parallel dynamic-wave sub-step ("a thread pool over independent nodes")
// — no link in a level is upstream of another link in the same level, but
// two links of one level may discharge into the same node (converging
// branches); levels themselves must run in order.
type Order struct {
	Flat   []int   // all link indices, levels concatenated in order
	Levels [][]int // link indices grouped by dependency level
}

// TopoSort computes the topological link order for steady/kinematic
// routing (spec §4.6). Node ordering is delegated to topology.OrderFromToTree
// (package github.com/maseology/mmaths/topology; the same from-to tree walk the teacher's router.go uses to sequence
// subwatershed routing), fed a node-index -> primary-downstream-node-index
// map with -1 marking a terminal node (outfall, or a dead end). A divider's
// second outgoing link does not add its own tree edge, but since both of a
// divider's targets lie strictly downstream of it, omitting one never
// places a link ahead of its upstream node — it only under-constrains the
// relative order of sibling branches, which carries no dependency between
// them anyway. Validate must be called first to confirm the network is a
// tree (spec §3 invariant).
func TopoSort(nodes []*node.Node, links []*link.Link) (Order, error) {
	n := len(links)

	outFrom := make(map[int][]int, len(nodes)) // node index -> link indices originating there
	for j, l := range links {
		outFrom[l.Node1] = append(outFrom[l.Node1], j)
	}
	for _, ls := range outFrom {
		sort.Ints(ls)
	}

	downstream := make(map[int]int, len(nodes))
	for ni := range nodes {
		if ls, ok := outFrom[ni]; ok && len(ls) > 0 {
			downstream[ni] = links[ls[0]].Node2
		} else {
			downstream[ni] = -1
		}
	}
	nodeOrder := topology.OrderFromToTree(downstream, -1)
	if len(nodeOrder) != len(nodes) {
		return Order{}, fmt.Errorf("routing: link graph contains a cycle (%d of %d nodes ordered)", len(nodeOrder), len(nodes))
	}

	flat := make([]int, 0, n)
	level := make([]int, n)
	levelByNode := make([]int, len(nodes))
	for _, ni := range nodeOrder {
		for _, j := range outFrom[ni] {
			flat = append(flat, j)
			level[j] = levelByNode[ni]
			if lv := level[j] + 1; levelByNode[links[j].Node2] < lv {
				levelByNode[links[j].Node2] = lv
			}
		}
	}
	maxLevel := 0
	for _, lv := range level {
		if lv > maxLevel {
			maxLevel = lv
		}
	}
	levels := make([][]int, maxLevel+1)
	for _, j := range flat {
		levels[level[j]] = append(levels[level[j]], j)
	}
	return Order{Flat: flat, Levels: levels}, nil
}
