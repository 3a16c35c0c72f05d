package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "notifications_total",
		Help:      "Lifecycle notifications by sink and delivery outcome.",
	},
	[]string{"sink", "outcome"},
)
