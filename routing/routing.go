// Package routing implements the steady/kinematic flow-routing engine
// (spec §4.6): topologically ordered link traversal, storage-node Picard
// iteration, and the steady-flow link solver. This package never calls the
// dynamic-wave collaborator (collab.DynamicWave), and Engine.Step routes
// every link with the steady-flow solver whatever Model is selected.
package routing

import (
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/metrics"
	"github.com/maseology/swmmcore/node"
)

// Model names the routing algorithm (spec §4.6, §4.6.3). Engine records it,
// but Step solves every link with the steady-flow solver for all three
// values; no kinematic-wave or dynamic-wave solver is called.
type Model int

const (
	Steady Model = iota
	Kinematic
	Dynamic
)

// Engine holds the open-time state for one routing run: the catalogs it was
// handed and the topological order computed from them.
type Engine struct {
	Nodes []*node.Node
	Links []*link.Link
	Order Order
	Model Model

	// LossRate, when set, returns a link's per-step evap+seepage loss rate
	// (spec §4.6.2); nil means no losses.
	LossRate func(l *link.Link, tStep float64) float64

	// Metrics is optional; a nil Metrics disables instrumentation.
	Metrics *metrics.Metrics
}

// Open validates the network, sets Node.Degree, computes the topological
// order, and initializes node volumes and link flows from initial depths
// (spec §4.6 "At open").
func Open(nodes []*node.Node, links []*link.Link, model Model) (*Engine, error) {
	if code := Validate(nodes, links); code != 0 {
		return nil, code
	}
	order, err := TopoSort(nodes, links)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		n.NewVolume = n.VolumeFromDepth(n.InitDepth)
		n.OldVolume = n.NewVolume
		n.NewDepth = n.InitDepth
		n.OldDepth = n.InitDepth
	}
	for _, l := range links {
		l.NewDepth = l.OldDepth
		if l.XS.AreaOfDepth != nil {
			l.NewVolume = l.XS.AreaOfDepth(l.OldDepth) * l.Length
			l.OldVolume = l.NewVolume
		}
	}
	e := &Engine{Nodes: nodes, Links: links, Order: order, Model: model}
	// seed node inflow/outflow accumulators from initial link flows
	for _, l := range links {
		nodes[l.Node1].Outflow += l.OldFlow
		nodes[l.Node2].Inflow += l.OldFlow
	}
	return e, nil
}

// Step advances the network one routing step (spec §4.6). lateralInflow is
// indexed parallel to Nodes and carries this step's external inflow rate
// (cfs) into each node - typically subcatchment runoff draining directly to
// a node, per spec §3 node state's "lateral inflow" field. It is applied
// right after SetOldState zeroes the old accumulators and before the link
// loop reads them, the same "seed then traverse" ordering Open uses to seed
// inflow/outflow from initial link flows. A nil slice leaves every node's
// lateral inflow at zero.
//
// Every link is solved with link.SteadyFlow whatever e.Model is: Kinematic
// and Dynamic use the same traversal and the same steady-flow solve, and no
// kinematic-wave or dynamic-wave link solver is called.
func (e *Engine) Step(tStep float64, lateralInflow []float64) error {
	e.Metrics.IncRoutingStepsRun()
	for _, n := range e.Nodes {
		n.SetOldState()
	}
	for _, l := range e.Links {
		l.SetOldState()
	}
	for i, q := range lateralInflow {
		e.Nodes[i].LateralInflow = q
	}

	// 1. drain any above-full non-storage node
	for _, n := range e.Nodes {
		if n.Type != node.Storage && n.OldVolume > n.FullVolume && n.FullVolume > 0 && tStep > 0 {
			n.Overflow = (n.OldVolume - n.FullVolume) / tStep
		}
	}

	for _, j := range e.Order.Flat {
		l := e.Links[j]
		n1 := e.Nodes[l.Node1]
		if n1.Type == node.Storage && !n1.Updated {
			e.iterateStorageNode(l.Node1, tStep)
		}

		qIn := e.linkInflow(l, tStep)
		loss := 0.0
		if e.LossRate != nil {
			loss = e.LossRate(l, tStep)
		}
		qOut := l.SteadyFlow(qIn, loss)
		l.NewFlow = qOut

		n1.Outflow += qIn
		e.Nodes[l.Node2].Inflow += qOut
	}

	for _, n := range e.Nodes {
		e.setNewNodeState(n, tStep)
	}
	for _, l := range e.Links {
		e.setNewLinkState(l)
	}
	return nil
}

// linkInflow is the getLinkInflow collaborator call of spec §6/§4.6: the
// upstream node's lateral inflow plus what has already accumulated from
// upstream links this step, capped by the node's MaxOutflow.
func (e *Engine) linkInflow(l *link.Link, tStep float64) float64 {
	n1 := e.Nodes[l.Node1]
	q := n1.LateralInflow + n1.Inflow - n1.Outflow
	if q < 0 {
		q = 0
	}
	if maxQ := n1.MaxOutflow(tStep); q > maxQ {
		q = maxQ
	}
	return q
}

func (e *Engine) iterateStorageNode(idx int, tStep float64) StorageResult {
	n := e.Nodes[idx]
	outflowAt := func(trialVolume float64) float64 {
		trialDepth := n.DepthFromVolume(trialVolume)
		total := 0.0
		for _, l := range e.Links {
			if l.Node1 == idx && l.Rating != nil {
				total += l.Rating(trialDepth)
			}
		}
		return total
	}
	losses := n.SeepLoss + n.EvapLoss
	result := IterateStorage(n, n.LateralInflow, losses, tStep, outflowAt)
	e.Metrics.ObserveStorageIteration(result.Iterations, result.Converged)
	return result
}

// setNewNodeState finalizes a node's state after all links are processed
// (spec §4.6 step 3). Storage nodes were already resolved by the Picard
// iteration above; terminal storage nodes (no outgoing links) are iterated
// here via the same path with an empty downstream-link set, matching spec
// §4.6.1's "terminal storage nodes... iterated with an empty downstream
// link list".
func (e *Engine) setNewNodeState(n *node.Node, tStep float64) {
	if n.Type == node.Storage && !n.Updated {
		idx := e.indexOf(n)
		if idx >= 0 {
			e.iterateStorageNode(idx, tStep)
		}
		return
	}
	if n.Type != node.Storage {
		vol := n.OldVolume + (n.Inflow+n.LateralInflow-n.Outflow-n.SeepLoss-n.EvapLoss)*tStep
		if vol < 0 {
			vol = 0
		}
		n.NewVolume = vol
		n.NewDepth = n.DepthFromVolume(vol)
		if n.NewDepth > n.FullDepth && n.FullDepth > 0 {
			if !n.PondingOn || n.PondedArea <= 0 {
				n.NewDepth = n.FullDepth
				n.NewVolume = n.FullVolume
			}
		}
		n.Updated = true
	}
}

func (e *Engine) indexOf(n *node.Node) int {
	for i, x := range e.Nodes {
		if x == n {
			return i
		}
	}
	return -1
}

// setNewLinkState finalizes a conduit's state after the link loop (spec
// §4.6 step 3). It does not write link.NewDepth, which SteadyFlow already
// set; it classifies the conduit's fullness from that depth and, when the
// conduit is full, raises the upstream node's depth to the conduit depth
// plus its upstream offset.
func (e *Engine) setNewLinkState(l *link.Link) {
	if l.Type != link.Conduit || l.XS.FullDepth <= 0 {
		return
	}
	switch {
	case l.NewDepth >= l.XS.FullDepth:
		l.Fullness = link.AllFull
		n1 := e.Nodes[l.Node1]
		if n1.NewDepth < l.NewDepth+l.Offset1 {
			n1.NewDepth = l.NewDepth + l.Offset1
		}
	case l.NewFlow > 0:
		l.Fullness = link.SomeBarrelsFull
	default:
		l.Fullness = link.NoneFull
	}
}
