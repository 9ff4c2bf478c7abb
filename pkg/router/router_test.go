package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/pkg/router"
)

func noop(http.ResponseWriter, *http.Request) {}

func TestNamedRoutesReverse(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/products", "products.list", noop)
	api.Get("/products/{id}", "products.get", noop)

	path, err := r.URL("products.list", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/products", path)

	path, err = r.URL("products.get", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/42", path)
}

func TestURLRejectsUnknownAndIncomplete(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.get", noop)

	_, err := r.URL("no.such.route", nil)
	assert.Error(t, err)

	_, err = r.URL("products.get", nil)
	assert.Error(t, err, "unfilled {id} placeholder")
}

func TestRouteTableSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/healthz", "healthz", noop)
	r.Post("/api/login", "auth.login", noop)
	r.Get("/unnamed", "", noop)

	infos := r.Routes()
	require.Len(t, infos, 2, "unnamed routes stay out of the table")

	seen := map[string]string{}
	for _, ri := range infos {
		seen[ri.Name] = ri.Method + " " + ri.Path
	}
	assert.Equal(t, "GET /healthz", seen["healthz"])
	assert.Equal(t, "POST /api/login", seen["auth.login"])
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := router.New()

	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Group", "api")
			next.ServeHTTP(w, req)
		})
	}

	r.Group("/api", tag).Get("/ping", "ping", noop)
	r.Get("/bare", "bare", noop)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "api", rec.Header().Get("X-Group"))

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bare", nil))
	assert.Empty(t, rec.Header().Get("X-Group"))
}
