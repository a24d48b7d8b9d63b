package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application metrics shared by the API and the
// reminder worker.
type Metrics struct {
	AppointmentsCreated     prometheus.Counter
	AppointmentsRescheduled prometheus.Counter
	AppointmentsDeleted     prometheus.Counter
	RosterRefreshes         prometheus.Counter
	RosterRefreshFailures   prometheus.Counter
	RosterSize              prometheus.Gauge

	RemindersSent   prometheus.Counter
	RemindersFailed prometheus.Counter

	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec
}

// New creates and registers all application metrics.
func New(namespace string) *Metrics {
	return &Metrics{
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Total number of appointments created",
		}),
		AppointmentsRescheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_rescheduled_total",
			Help:      "Total number of appointments rescheduled",
		}),
		AppointmentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_deleted_total",
			Help:      "Total number of appointments deleted",
		}),
		RosterRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_refreshes_total",
			Help:      "Total number of roster refreshes from the store",
		}),
		RosterRefreshFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_refresh_failures_total",
			Help:      "Total number of failed roster refreshes",
		}),
		RosterSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Number of appointments in the current roster snapshot",
		}),
		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Total number of reminder emails sent",
		}),
		RemindersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder emails that failed to send",
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}
}
