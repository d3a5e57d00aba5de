package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/orders/{id}", "418"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/orders/{id}", "418"))

	assert.Equal(t, float64(3), after-before)
}

func TestRecordLookup(t *testing.T) {
	found := testutil.ToFloat64(CompositionLookups.WithLabelValues("found"))
	dangling := testutil.ToFloat64(CompositionLookups.WithLabelValues("dangling"))

	RecordLookup(true)
	RecordLookup(false)
	RecordLookup(false)

	assert.Equal(t, found+1, testutil.ToFloat64(CompositionLookups.WithLabelValues("found")))
	assert.Equal(t, dangling+2, testutil.ToFloat64(CompositionLookups.WithLabelValues("dangling")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	RecordLookup(true)

	rec := httptest.NewRecorder()
	Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "stockpile_composition_lookups_total"))
}
