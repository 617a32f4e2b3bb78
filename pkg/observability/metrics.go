package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts flatten calls and their outcomes.
type Metrics struct {
	Flattens     prometheus.Counter
	Errors       prometheus.Counter
	UIDs         prometheus.Counter
	ListingSizes prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Flattens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lineage_flatten_total",
			Help: "Total number of successful flatten calls",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lineage_flatten_errors_total",
			Help: "Total number of failed flatten calls",
		}),
		UIDs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lineage_uids_assigned_total",
			Help: "Total number of identifiers generated for entities that had none",
		}),
		ListingSizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lineage_listing_size",
			Help:    "Number of entities per flattened listing",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Flattens, m.Errors, m.UIDs, m.ListingSizes)
	}
	return m
}

func (m *Metrics) UIDsAssigned(n int) {
	m.UIDs.Add(float64(n))
}

func (m *Metrics) Flattened(size int) {
	m.Flattens.Inc()
	m.ListingSizes.Observe(float64(size))
}

func (m *Metrics) Failed() {
	m.Errors.Inc()
}

// Logger reports flatten events at Info level.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) UIDsAssigned(n int) {
	if n > 0 {
		l.Log.Info("identifiers assigned", "count", n)
	}
}

func (l Logger) Flattened(size int) {
	l.Log.Info("listing flattened", "size", size)
}

func (l Logger) Failed() {
	l.Log.Warn("flatten failed")
}

// Recorder is the set of events Metrics and Logger receive.
type Recorder interface {
	UIDsAssigned(n int)
	Flattened(size int)
	Failed()
}

// Multi fans every event out to each recorder in order.
func Multi(recorders ...Recorder) Recorder {
	return multi(recorders)
}

type multi []Recorder

func (m multi) UIDsAssigned(n int) {
	for _, r := range m {
		r.UIDsAssigned(n)
	}
}

func (m multi) Flattened(size int) {
	for _, r := range m {
		r.Flattened(size)
	}
}

func (m multi) Failed() {
	for _, r := range m {
		r.Failed()
	}
}
