// Package routes wires the middleware chain and every HTTP endpoint.
package routes

import (
	"fmt"
	"net/http"

	"github.com/groovecrate/vinylstore/app/controllers"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/graphql"
	"github.com/groovecrate/vinylstore/pkg/metrics"
	"github.com/groovecrate/vinylstore/pkg/middleware"
	"github.com/groovecrate/vinylstore/pkg/response"
	"github.com/groovecrate/vinylstore/pkg/router"
	"github.com/groovecrate/vinylstore/pkg/storage"
	"github.com/groovecrate/vinylstore/pkg/ws"
)

// Deps carries everything the routes need. The server builds it once at boot;
// tests build it from memory-backed fakes.
type Deps struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Disk    storage.Disk
	Hub     *ws.Hub

	// StaticDir serves the storefront when non-empty.
	StaticDir string

	// Limiter is optional; tests leave it nil.
	Limiter *middleware.RateLimiter
}

// Register installs the middleware chain and all routes on r.
func Register(r *router.Router, d Deps) error {
	r.Use(
		metrics.Middleware(),
		middleware.RequestID(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}
	r.Use(middleware.Identity(d.Auth))

	authCtl := controllers.NewAuthController(d.Auth)
	productCtl := controllers.NewProductController(d.Catalog, d.Disk, r.URL)

	api := r.Group("/api")
	api.Post("/login", "auth.login", authCtl.Login)
	api.Post("/logout", "auth.logout", authCtl.Logout)

	products := api.Group("/products")
	products.Get("/", "products.list", productCtl.List)
	products.Post("/", "products.create", productCtl.Create)
	products.Get("/{id}", "products.get", productCtl.Get)
	products.Put("/{id}", "products.update", productCtl.Update)
	products.Delete("/{id}", "products.delete", productCtl.Delete)
	products.Post("/{id}/cover", "products.cover", productCtl.UploadCover)

	api.Post("/purchase/{id}", "products.purchase", productCtl.Purchase)

	schema, err := graphql.NewSchema(d.Catalog)
	if err != nil {
		return fmt.Errorf("routes: build graphql schema: %w", err)
	}
	r.Mount("/api/graphql", graphql.Handler(schema))

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})
	r.Mount("/metrics", metrics.Handler())

	if d.Hub != nil {
		r.Get("/ws/catalog", "ws.catalog", d.Hub.Serve)
	}

	// Locally stored uploads are served straight off the disk; S3 serves its
	// own URLs.
	if local, ok := d.Disk.(*storage.Local); ok {
		r.Mount("/storage", http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root()))))
	}

	if d.StaticDir != "" {
		r.Mount("/", http.FileServer(http.Dir(d.StaticDir)))
	}

	return nil
}
