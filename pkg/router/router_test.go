package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestGroupMiddlewareOrder(t *testing.T) {
	r := New()
	api := r.Group("/api", tag("api"))
	api.Group("orders", tag("auth")).Patch("/{id}/status", "orders.status", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/orders/abc/status", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"api", "auth", "route"}, rec.Header().Values("X-Chain"))
}

func TestURLFillsParams(t *testing.T) {
	r := New()
	r.Delete("/api/orders/{id}", "orders.delete", ok)

	url, err := r.URL("orders.delete", map[string]string{"id": "01J"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/01J", url)

	_, err = r.URL("orders.delete", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Put("/b", "", ok)
	r.Get("/b", "b.show", ok)
	r.HandleFunc("/a", "a", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, Route{Method: "*", Path: "/a", Name: "a"}, routes[0])
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, http.MethodPut, routes[2].Method)
}

func TestHandleFuncAnyMethod(t *testing.T) {
	r := New()
	r.HandleFunc("/graphql", "graphql", ok)

	for _, m := range []string{http.MethodGet, http.MethodPost} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(m, "/graphql", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code, m)
	}
}
