// Package metrics wraps the Prometheus instrumentation surface for a
// simulation run, adapted from the pack's internal/observability pattern
// (couchcryptid-storm-data-etl-service): a struct of pre-registered
// collectors built once at run open and passed by reference everywhere a
// count needs bumping.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors exercised by the runoff and routing engines.
type Metrics struct {
	StepsRun               prometheus.Counter
	RoutingStepsRun         prometheus.Counter
	PicardIterations        prometheus.Histogram
	StorageNonConvergences  prometheus.Counter
	HotstartBytesWritten    prometheus.Counter
	ResultBytesWritten      prometheus.Counter
	SubcatchmentsSkipped    prometheus.Counter
	ODESolverFailures       prometheus.Counter
}

// New creates and registers a Metrics struct with the default Prometheus
// registry.
func New() *Metrics {
	m := newUnregistered()
	prometheus.MustRegister(
		m.StepsRun,
		m.RoutingStepsRun,
		m.PicardIterations,
		m.StorageNonConvergences,
		m.HotstartBytesWritten,
		m.ResultBytesWritten,
		m.SubcatchmentsSkipped,
		m.ODESolverFailures,
	)
	return m
}

// NewForTesting builds a Metrics struct without touching the default
// registry, so package tests can construct one per test without
// "already registered" panics.
func NewForTesting() *Metrics {
	return newUnregistered()
}

func newUnregistered() *Metrics {
	return &Metrics{
		StepsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "runoff_steps_total",
			Help:      "Total runoff steps executed.",
		}),
		RoutingStepsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "routing_steps_total",
			Help:      "Total routing steps executed.",
		}),
		PicardIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swmmcore",
			Name:      "storage_picard_iterations",
			Help:      "Iteration count per storage-node Picard solve.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}),
		StorageNonConvergences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "storage_non_convergences_total",
			Help:      "Storage-node Picard solves that hit MAXITER without meeting STOPTOL.",
		}),
		HotstartBytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "hotstart_bytes_written_total",
			Help:      "Bytes written to hotstart files.",
		}),
		ResultBytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "results_bytes_written_total",
			Help:      "Bytes written to the results store.",
		}),
		SubcatchmentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "subcatchments_skipped_total",
			Help:      "Zero-area subcatchments skipped by the runoff engine.",
		}),
		ODESolverFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swmmcore",
			Name:      "ode_solver_failures_total",
			Help:      "Ponded-depth ODE integrations that failed to converge.",
		}),
	}
}

// IncStepsRun, IncRoutingStepsRun, AddHotstartBytes, AddResultBytes,
// IncSubcatchmentSkipped, and IncODEFailure are nil-safe wrappers so a run
// started without metrics wired (m == nil) never needs a guard at the
// call site.
func (m *Metrics) IncStepsRun() {
	if m != nil {
		m.StepsRun.Inc()
	}
}

func (m *Metrics) IncRoutingStepsRun() {
	if m != nil {
		m.RoutingStepsRun.Inc()
	}
}

func (m *Metrics) AddHotstartBytes(n int) {
	if m != nil {
		m.HotstartBytesWritten.Add(float64(n))
	}
}

func (m *Metrics) AddResultBytes(n int) {
	if m != nil {
		m.ResultBytesWritten.Add(float64(n))
	}
}

func (m *Metrics) IncSubcatchmentSkipped() {
	if m != nil {
		m.SubcatchmentsSkipped.Inc()
	}
}

func (m *Metrics) IncODEFailure() {
	if m != nil {
		m.ODESolverFailures.Inc()
	}
}

// ObserveStorageIteration records a storage node's Picard iteration count, bumping the
// non-convergence counter when it hit MAXITER without converging. Nil-safe
// so callers that run without metrics wired don't need a guard at every
// call site.
func (m *Metrics) ObserveStorageIteration(iterations int, converged bool) {
	if m == nil {
		return
	}
	m.PicardIterations.Observe(float64(iterations))
	if !converged {
		m.StorageNonConvergences.Inc()
	}
}
