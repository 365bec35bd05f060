package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	BookingsCreated  *prometheus.CounterVec
	BookingDecisions *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections both in use and idle",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service"}),
		BookingDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_decisions_total",
			Help: "Total number of owner decisions on bookings",
		}, []string{"service", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.BookingsCreated,
		m.BookingDecisions,
	)

	return m
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated() {
	m.BookingsCreated.WithLabelValues(m.serviceName).Inc()
}

// BookingDecided учитывает решение владельца по бронированию
func (m *Metrics) BookingDecided(status string) {
	m.BookingDecisions.WithLabelValues(m.serviceName, status).Inc()
}

// Nop реализация для случая, когда метрики выключены
type Nop struct{}

func (Nop) BookingCreated()       {}
func (Nop) BookingDecided(string) {}
