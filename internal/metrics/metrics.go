package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Access guard outcomes
const (
	OutcomeAuthorized      = "authorized"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeForbidden       = "forbidden"
	OutcomeUnknownRole     = "unknown_role"
	OutcomeSuperseded      = "superseded"
)

// Recorder holds the console counters
type Recorder struct {
	accessDecisions *prometheus.CounterVec
	logins          *prometheus.CounterVec
	logouts         prometheus.Counter
}

// NewRecorder registers the console counters on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		accessDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mis",
			Subsystem: "console",
			Name:      "access_decisions_total",
			Help:      "Access guard decisions by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mis",
			Subsystem: "console",
			Name:      "logins_total",
			Help:      "Console login attempts by result.",
		}, []string{"result"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mis",
			Subsystem: "console",
			Name:      "logouts_total",
			Help:      "Console logouts, including expiry cleanups.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.accessDecisions, r.logins, r.logouts)
	}
	return r
}

// AccessDecision counts one guard outcome. Safe on a nil Recorder.
func (r *Recorder) AccessDecision(outcome string) {
	if r == nil {
		return
	}
	r.accessDecisions.WithLabelValues(outcome).Inc()
}

// Login counts one login attempt. Safe on a nil Recorder.
func (r *Recorder) Login(success bool) {
	if r == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	r.logins.WithLabelValues(result).Inc()
}

// Logout counts one session removal. Safe on a nil Recorder.
func (r *Recorder) Logout() {
	if r == nil {
		return
	}
	r.logouts.Inc()
}
