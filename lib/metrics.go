package lib

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeLabel = "outcome"
	ResultLabel  = "result"

	outcomeError = "error"

	verifyMatch    = "match"
	verifyMismatch = "mismatch"
	verifyFailed   = "failed"
)

// Metrics counts interpretation outcomes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	interpretations *prometheus.CounterVec
	verifications   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		interpretations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lineq_interpretations_total",
				Help: "Equations interpreted, by outcome",
			},
			[]string{OutcomeLabel},
		),
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lineq_verifications_total",
				Help: "Unique solutions substituted back into their equation, by result",
			},
			[]string{ResultLabel},
		),
	}

	for _, c := range []prometheus.Collector{m.interpretations, m.verifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeError() {
	if m == nil {
		return
	}
	m.interpretations.WithLabelValues(outcomeError).Inc()
}

func (m *Metrics) observeSolution(solution Solution, v Verification) {
	if m == nil {
		return
	}
	m.interpretations.WithLabelValues(solution.Kind.String()).Inc()

	switch {
	case !v.Checked:
	case v.Err != nil:
		m.verifications.WithLabelValues(verifyFailed).Inc()
	case v.Matched:
		m.verifications.WithLabelValues(verifyMatch).Inc()
	default:
		m.verifications.WithLabelValues(verifyMismatch).Inc()
	}
}
