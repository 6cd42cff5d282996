package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mtogo",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts by principal kind and outcome.",
	}, []string{"kind", "outcome"})

	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mtogo",
		Subsystem: "auth",
		Name:      "sessions_evicted_total",
		Help:      "Sessions evicted to keep a principal under the session cap.",
	})

	Logouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mtogo",
		Subsystem: "auth",
		Name:      "logouts_total",
		Help:      "Logout attempts by outcome.",
	}, []string{"outcome"})
)
