// Package metrics объявляет счётчики Prometheus приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotUploads считает загрузки снапшотов по результату.
	SnapshotUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playerzero_snapshot_uploads_total",
		Help: "Total snapshot upload attempts by result.",
	}, []string{"result"})

	// WebhookEvents считает события платёжного провайдера по типу.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playerzero_webhook_events_total",
		Help: "Total payment provider webhook events by type.",
	}, []string{"type"})

	// TrialReminders считает опубликованные напоминания о пробном периоде.
	TrialReminders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playerzero_trial_reminders_total",
		Help: "Total published trial expiry reminders.",
	})
)
