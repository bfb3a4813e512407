// Package metrics описывает prometheus-метрики клиента: запросы к REST API,
// переходы между страницами и показанные уведомления.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов клиента.
type Metrics struct {
	apiRequests   *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
	navigations   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitplanhub",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Requests sent to the marketplace API by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fitplanhub",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Marketplace API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitplanhub",
			Subsystem: "ui",
			Name:      "navigations_total",
			Help:      "Page navigations by requested page and outcome.",
		}, []string{"page", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitplanhub",
			Subsystem: "ui",
			Name:      "notifications_total",
			Help:      "Notifications shown by severity.",
		}, []string{"severity"}),
	}
	reg.MustRegister(m.apiRequests, m.apiDuration, m.navigations, m.notifications)
	return m
}

// ObserveRequest учитывает запрос к API. status 0 означает транспортную ошибку.
func (m *Metrics) ObserveRequest(endpoint string, status int, d time.Duration) {
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.apiRequests.WithLabelValues(endpoint, label).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveNavigation учитывает переход. outcome: ok, login_required или forbidden.
func (m *Metrics) ObserveNavigation(page, outcome string) {
	m.navigations.WithLabelValues(page, outcome).Inc()
}

// ObserveNotification учитывает показанное уведомление.
func (m *Metrics) ObserveNotification(severity string) {
	m.notifications.WithLabelValues(severity).Inc()
}
