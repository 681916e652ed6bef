package project

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/maseology/swmmcore/climate"
	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/metrics"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/subcatch"
)

// Context is the process-wide object owning every catalog, the simulation
// clock, and the sticky error/warning sinks (spec §9 design note: "should
// become an explicit owned context passed by reference. No hidden
// statics."). Every engine in this module takes a *Context or the catalog
// slices it exposes; nothing here is read from a package-level variable.
type Context struct {
	Subcatchments []*subcatch.Subcatchment
	Nodes         []*node.Node
	Links         []*link.Link
	Gages         []climate.Gage

	NPollutants int
	NLandUses   int

	CurrentTime   time.Time
	TotalDuration time.Duration

	Config Config

	// Metrics is optional (nil disables instrumentation).
	Metrics *metrics.Metrics

	// WallClock is used only for run-duration logging (spec ambient stack
	// note); simulation time (CurrentTime) is a logical clock advanced by
	// the step controller, never by WallClock.
	WallClock clockwork.Clock

	Log *logrus.Entry

	err      ErrCode
	warnings int
}

// NewContext builds a Context with sane ambient defaults: the real wall
// clock, a standard logrus entry tagged with a run ID, and no metrics
// registry attached (callers wire one in explicitly via SetMetrics).
func NewContext(runID string) *Context {
	return &Context{
		WallClock: clockwork.NewRealClock(),
		Log:       logrus.StandardLogger().WithField("run", runID),
	}
}

// SetMetrics attaches a metrics registry; nil is valid and disables
// instrumentation everywhere a *metrics.Metrics is consulted.
func (c *Context) SetMetrics(m *metrics.Metrics) { c.Metrics = m }

// ErrCode returns the sticky error code (spec §7): every core operation
// checks this at entry and short-circuits once it is non-zero.
func (c *Context) ErrCode() ErrCode { return c.err }

// SetError sets the sticky code the first time it is called with a
// non-zero code; subsequent calls are no-ops, since spec §7 treats the
// code as "sticky" — the first failure wins. It also logs the error at
// Error level with the object/step fields the ambient logging note
// specifies.
func (c *Context) SetError(code ErrCode, step int, object string) {
	if c.err != ErrNone || code == ErrNone {
		return
	}
	c.err = code
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{"step": step, "object": object}).Error(code.Error())
	}
}

// Warn increments the warning counter without setting the sticky code
// (spec §7 "warnings increment a counter and never set the code").
func (c *Context) Warn(step int, object, message string) {
	c.warnings++
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{"step": step, "object": object}).Warn(message)
	}
}

// Warnings returns the accumulated non-fatal warning count.
func (c *Context) Warnings() int { return c.warnings }

// Failed reports whether the sticky code is set, the cue every engine
// uses to short-circuit remaining work in the current step (spec §7, §5).
func (c *Context) Failed() bool { return c.err != ErrNone }
