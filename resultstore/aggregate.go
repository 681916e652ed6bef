package resultstore

import (
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/subcatch"
)

// AreaWeightedMean computes a system-wide mean of a per-subcatchment
// quantity weighted by subcatchment area (spec §4.2), guarded against
// zero total reported area so the result is 0, never NaN (spec §8
// boundary behavior "total reported area = 0").
func AreaWeightedMean(subs []*subcatch.Subcatchment, value func(*subcatch.Subcatchment) float64) float64 {
	var totalArea, weighted float64
	for _, s := range subs {
		totalArea += s.Area
		weighted += value(s) * s.Area
	}
	if totalArea <= 0 {
		return 0
	}
	return weighted / totalArea
}

// SystemStorageVolume sums node volumes plus the link-average volume
// (spec §4.2), where f is the fraction of the routing step already
// elapsed at the point of reporting (1.0 when reporting at step end).
func SystemStorageVolume(nodes []*node.Node, links []*link.Link, f float64) float64 {
	var total float64
	for _, n := range nodes {
		total += n.NewVolume
	}
	for _, l := range links {
		total += (1-f)*l.OldVolume + f*l.NewVolume
	}
	return total
}

// FlowUnitConverter converts an internal cfs accumulator to the reported
// flow unit (spec §4.2 "flow-unit-converted at write time"). cfPerUnit is
// the cfs-per-reported-unit factor (e.g. 1.0 for CFS, 35.3147 for CMS).
type FlowUnitConverter struct {
	CFPerUnit float64
}

func (c FlowUnitConverter) Convert(cfs float64) float64 {
	if c.CFPerUnit <= 0 {
		return cfs
	}
	return cfs / c.CFPerUnit
}
