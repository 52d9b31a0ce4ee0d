package donation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	donationsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "donations_total",
			Help: "Number of recorded donations by type and payment method.",
		},
		[]string{"type", "method"},
	)

	failuresTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "donation_failures_total",
			Help: "Number of failed donation attempts by error kind.",
		},
		[]string{"kind"},
	)
)
