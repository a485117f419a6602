package metrics

import (
	"net/http"
	"strconv"
	"time"

	"eventTicketing/internal/models"
	"eventTicketing/internal/store/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	eventsTotal      prometheus.Gauge
	activeEvents     prometheus.Gauge
	ticketsSold      prometheus.Gauge
	salesTotal       prometheus.Gauge
	mutations        *prometheus.CounterVec
	paymentRequests  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpRequestDelay *prometheus.HistogramVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		eventsTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "events_total",
			Help: "Number of events in the store",
		}),
		activeEvents: f.NewGauge(prometheus.GaugeOpts{
			Name: "events_active_total",
			Help: "Number of events with status active",
		}),
		ticketsSold: f.NewGauge(prometheus.GaugeOpts{
			Name: "tickets_sold_total",
			Help: "Sum of sold tickets over all events",
		}),
		salesTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "sales_total",
			Help: "Sum of sold tickets times price over all events",
		}),
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "event_store_mutations_total",
			Help: "Event store mutations by operation and outcome",
		}, []string{"op", "status"}),
		paymentRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_requests_total",
			Help: "Payment form submissions by outcome",
		}, []string{"status"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDelay: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) ObserveMutation(op string, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}

	m.mutations.WithLabelValues(op, status).Inc()
}

func (m *Metrics) ObservePayment(status models.PaymentStatus) {
	m.paymentRequests.WithLabelValues(string(status)).Inc()
}

// ObserveEvents is meant to be passed to events.Store.Subscribe.
func (m *Metrics) ObserveEvents(list []models.Event) {
	stats := events.ComputeStats(list)

	m.eventsTotal.Set(float64(stats.TotalEvents))
	m.activeEvents.Set(float64(stats.ActiveEvents))
	m.ticketsSold.Set(float64(stats.TotalTicketsSold))
	m.salesTotal.Set(stats.TotalSales.InexactFloat64())
}

// Middleware records request count and latency by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		status := strconv.Itoa(code)

		m.httpRequestDelay.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(r.Method, path, status).Inc()
	}

	return http.HandlerFunc(fn)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
