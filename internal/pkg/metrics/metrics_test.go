package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	before := testutil.ToFloat64(metrics.OrdersCreated)
	metrics.OrdersCreated.Inc()
	metrics.ConversionEvents.WithLabelValues("Purchase", "sent").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.OrdersCreated), 0)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "storefront_orders_created_total")
	assert.Contains(t, string(body), `storefront_conversion_events_total{event="Purchase",result="sent"}`)
}
