package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
)

// Metrics records engine activity as Prometheus collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	runs        *prometheus.CounterVec
	steps       *prometheus.HistogramVec
	tape        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_transitions_total",
				Help: "Total number of transitions applied",
			},
			[]string{"machine", "from"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of runs that halted, by verdict",
			},
			[]string{"machine", "verdict"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Number of steps taken by halted runs",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		tape: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_tape_cells",
				Help:    "Tape length of halted runs",
				Buckets: prometheus.ExponentialBuckets(2, 2, 12),
			},
			[]string{"machine"},
		),
	}
	reg.MustRegister(m.transitions, m.runs, m.steps, m.tape)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.transitions.WithLabelValues(e.Machine, e.Transition.From).Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			m.runs.WithLabelValues(e.Machine, Verdict(e.Accepted)).Inc()
			m.steps.WithLabelValues(e.Machine).Observe(float64(e.Steps))
			m.tape.WithLabelValues(e.Machine).Observe(float64(e.TapeLength))
		},
	}
}

// Verdict names the outcome of a run.
func Verdict(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}
