// Package metrics expone contadores de negocio y de HTTP en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Granja-api/internal/application/ports"
)

const namespace = "granja"

var _ ports.Metrics = (*Registry)(nil)

// Registry agrupa los collectors de la aplicación en un registro propio.
type Registry struct {
	reg *prometheus.Registry

	stockMutations  *prometheus.CounterVec
	stockRejections *prometheus.CounterVec
	fcrComputed     *prometheus.CounterVec

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New crea y registra los collectors.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		stockMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "mutations_total",
			Help:      "Cambios de stock confirmados por recurso y operación.",
		}, []string{"resource", "operation"}),
		stockRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "rejections_total",
			Help:      "Operaciones rechazadas por validación o stock insuficiente.",
		}, []string{"resource", "operation"}),
		fcrComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "production",
			Name:      "fcr_computed_total",
			Help:      "Cálculos de conversión alimenticia por clasificación.",
		}, []string{"performance"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Peticiones HTTP en curso.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		r.stockMutations,
		r.stockRejections,
		r.fcrComputed,
		r.httpInFlight,
		r.httpRequests,
		r.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Registry) StockMutation(resource, operation string) {
	r.stockMutations.WithLabelValues(resource, operation).Inc()
}

func (r *Registry) StockRejection(resource, operation string) {
	r.stockRejections.WithLabelValues(resource, operation).Inc()
}

func (r *Registry) FCRComputed(performance string) {
	r.fcrComputed.WithLabelValues(performance).Inc()
}

// RequestStarted incrementa el gauge de peticiones en curso y devuelve la función que lo cierra.
func (r *Registry) RequestStarted() (done func()) {
	r.httpInFlight.Inc()
	return r.httpInFlight.Dec
}

// ObserveRequest registra una petición terminada. route es la ruta declarada (ej. /api/flocks/:id),
// no la URL concreta, para no disparar la cardinalidad.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
