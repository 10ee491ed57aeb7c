package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCounters(t *testing.T) {
	r := New()
	r.StockMutation("feed_inventory", "purchase")
	r.StockMutation("feed_inventory", "purchase")
	r.StockRejection("inventory_items", "movement")
	r.FCRComputed("Excellent")

	assert.Equal(t, 2.0, value(t, r.stockMutations.WithLabelValues("feed_inventory", "purchase")))
	assert.Equal(t, 1.0, value(t, r.stockRejections.WithLabelValues("inventory_items", "movement")))
	assert.Equal(t, 1.0, value(t, r.fcrComputed.WithLabelValues("Excellent")))
}

func TestHTTPMetricsAndHandler(t *testing.T) {
	r := New()
	done := r.RequestStarted()
	assert.Equal(t, 1.0, value(t, r.httpInFlight))
	done()
	assert.Equal(t, 0.0, value(t, r.httpInFlight))

	r.ObserveRequest("GET", "/api/flocks/:id", 200, 30*time.Millisecond)
	assert.Equal(t, 1.0, value(t, r.httpRequests.WithLabelValues("GET", "/api/flocks/:id", "200")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "granja_http_requests_total")
}

// value lee el valor actual de un contador o gauge.
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}
