package hotstart

import (
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
)

// writeRoutingPayload/readRoutingPayload implement spec §4.1's routing
// payload: per node, 2xf32 (newDepth, newLatFlow), a hydraulic-residence-
// time float for storage nodes when version >= V4, and a pollutant-quality
// block; per link, 3xf32 (newFlow, newDepth, setting) and a pollutant-
// quality block. Versions <= V2 have no per-node quality block at all, and
// instead carry a zero-padded legacy quality block on the LINK side — see
// SPEC_FULL.md supplement 1, resolved against original_source/src/hotstart.c.
func writeRoutingPayload(wr *writer, c Catalog, v Version, nPoll int) {
	for _, n := range c.Nodes {
		wr.f32(n.NewDepth)
		wr.f32(n.LateralInflow)
		if v >= V4 && n.Type == node.Storage {
			wr.f32(n.HRT)
		}
		if v >= V3 {
			for p := 0; p < nPoll; p++ {
				wr.f32(valueOrZero(n.NewQuality, p))
			}
		}
		if wr.err != 0 {
			return
		}
	}
	for _, l := range c.Links {
		wr.f32(l.NewFlow)
		wr.f32(l.NewDepth)
		wr.f32(l.Setting)
		if v >= V3 {
			for p := 0; p < nPoll; p++ {
				wr.f32(valueOrZero(l.NewQuality, p))
			}
		} else {
			for p := 0; p < nPoll; p++ {
				wr.f32(0) // legacy zero-padded quality, written for round-trip symmetry only
			}
		}
		if wr.err != 0 {
			return
		}
	}
}

func readRoutingPayload(rd *reader, c Catalog, v Version, nPoll int) {
	for _, n := range c.Nodes {
		n.NewDepth = float64(rd.f32())
		n.LateralInflow = float64(rd.f32())
		if v >= V4 && n.Type == node.Storage {
			n.HRT = float64(rd.f32())
		}
		if v >= V3 {
			n.NewQuality = make([]float64, nPoll)
			for p := 0; p < nPoll; p++ {
				n.NewQuality[p] = float64(rd.f32())
			}
		}
		if rd.err != 0 {
			return
		}
	}
	for _, l := range c.Links {
		l.NewFlow = float64(rd.f32())
		l.NewDepth = float64(rd.f32())
		savedSetting := float64(rd.f32())
		if v >= V3 {
			l.NewQuality = make([]float64, nPoll)
			for p := 0; p < nPoll; p++ {
				l.NewQuality[p] = float64(rd.f32())
			}
		} else {
			for p := 0; p < nPoll; p++ {
				rd.f32() // legacy zero-padded quality, read and discarded
			}
		}
		if rd.err != 0 {
			return
		}
		restoreSetting(l, savedSetting)
	}
}

// restoreSetting replays a link's saved control position through the same
// path that handles a live control action (spec §4.1 "Setting restore"):
// targetSetting <- setting, then SetTargetSetting then SetSetting(0.0), in
// that order, so a hotstart-restored setting is indistinguishable from one
// arrived at by the control system.
func restoreSetting(l *link.Link, setting float64) {
	l.TargetSetting = setting
	l.SetTargetSetting(setting)
	l.SetSetting(0.0)
}
