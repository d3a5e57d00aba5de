package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(v string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", v)
			next.ServeHTTP(w, r)
		})
	}
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupMiddlewareOrder(t *testing.T) {
	r := New()
	api := r.Group("/api", tag("group"))
	api.Delete("/products/{id}", "products.destroy", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestNestedGroupsAndURL(t *testing.T) {
	r := New()
	r.Group("/api").Group("dashboard/").Get("/analytics/sales-over-time", "dashboard.sales", ok)

	path, found := r.Path("dashboard.sales")
	require.True(t, found)
	assert.Equal(t, "/api/dashboard/analytics/sales-over-time", path)

	r.Group("/api").Put("/orders/{id}", "orders.update", ok)
	u, err := r.URL("orders.update", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/9", u)

	_, err = r.URL("orders.update", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	g := r.Group("/api/orders")
	g.Post("/", "orders.store", ok)
	g.Get("/", "orders.index", ok)
	r.Get("/healthz", "health", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/api/orders", Name: "orders.index"}, routes[0])
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/healthz", routes[2].Path)
}
