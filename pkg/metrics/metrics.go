package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Admin records counters for catalog writes and notification fan-out.
// A nil *Admin is valid and records nothing.
type Admin struct {
	dishWrites    *prometheus.CounterVec
	fanoutBatches *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewAdmin registers the admin metrics on the provided registerer.
func NewAdmin(reg prometheus.Registerer) *Admin {
	if reg == nil {
		return &Admin{}
	}
	dishWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tastytalk_admin",
		Name:      "dish_writes_total",
		Help:      "Dish writes by operation and outcome.",
	}, []string{"op", "outcome"})
	fanoutBatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tastytalk_admin",
		Name:      "notification_batches_total",
		Help:      "Notification batch commits by outcome.",
	}, []string{"outcome"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tastytalk_admin",
		Name:      "notifications_written_total",
		Help:      "Notification documents written by title.",
	}, []string{"title"})
	reg.MustRegister(dishWrites, fanoutBatches, notifications)
	return &Admin{
		dishWrites:    dishWrites,
		fanoutBatches: fanoutBatches,
		notifications: notifications,
	}
}

// DishWrite counts a create/update/archive/unarchive attempt.
func (a *Admin) DishWrite(op string, err error) {
	if a == nil || a.dishWrites == nil {
		return
	}
	a.dishWrites.WithLabelValues(op, outcome(err)).Inc()
}

// FanoutBatch counts one batch commit and the documents it wrote.
func (a *Admin) FanoutBatch(title string, written int, err error) {
	if a == nil || a.fanoutBatches == nil {
		return
	}
	a.fanoutBatches.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		a.notifications.WithLabelValues(title).Add(float64(written))
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
