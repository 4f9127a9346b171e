package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках можно передавать nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge

	AppointmentsCreated  prometheus.Counter
	BookingRejections    *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	EventPublishFailures prometheus.Counter
	RewardExchanges      prometheus.Counter
	GoalsCompleted       prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		AppointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Number of appointments created",
			ConstLabels: labels,
		}),
		BookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rejections_total",
			Help:        "Number of booking attempts rejected by business rules",
			ConstLabels: labels,
		}, []string{"kind"}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Number of confirmation e-mails that failed to send",
			ConstLabels: labels,
		}),
		EventPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "event_publish_failures_total",
			Help:        "Number of appointment events that failed to publish",
			ConstLabels: labels,
		}),
		RewardExchanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reward_exchanges_total",
			Help:        "Number of rewards exchanged for points",
			ConstLabels: labels,
		}),
		GoalsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "goals_completed_total",
			Help:        "Number of customer goals that reached 100% and earned points",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.AppointmentsCreated,
		m.BookingRejections,
		m.NotificationFailures,
		m.EventPublishFailures,
		m.RewardExchanges,
		m.GoalsCompleted,
	)

	return m
}

func (m *Metrics) IncAppointmentsCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.Inc()
}

// IncBookingRejection учитывает отказ в бронировании по коду нарушения
func (m *Metrics) IncBookingRejection(kind string) {
	if m == nil {
		return
	}
	m.BookingRejections.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncNotificationFailures() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

func (m *Metrics) IncEventPublishFailures() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

func (m *Metrics) IncRewardExchanges() {
	if m == nil {
		return
	}
	m.RewardExchanges.Inc()
}

func (m *Metrics) IncGoalsCompleted() {
	if m == nil {
		return
	}
	m.GoalsCompleted.Inc()
}

// ObserveHTTPRequest учитывает завершённый HTTP запрос
// path должен быть шаблоном маршрута, а не сырым URL
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
