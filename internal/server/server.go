// Package server boots the vinyl store: configuration, logging, database,
// cache, services, HTTP routes, and the optional gRPC health endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/app/routes"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/config"
	"github.com/groovecrate/vinylstore/database/seeders"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/cache"
	"github.com/groovecrate/vinylstore/pkg/database"
	vgrpc "github.com/groovecrate/vinylstore/pkg/grpc"
	"github.com/groovecrate/vinylstore/pkg/logger"
	"github.com/groovecrate/vinylstore/pkg/middleware"
	"github.com/groovecrate/vinylstore/pkg/migration"
	"github.com/groovecrate/vinylstore/pkg/router"
	"github.com/groovecrate/vinylstore/pkg/session"
	"github.com/groovecrate/vinylstore/pkg/storage"
	"github.com/groovecrate/vinylstore/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Run boots everything and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func Run(cfg *config.Config) error {
	if err := logger.Setup(cfg.AppEnv, cfg.LogMongoURI, cfg.LogMongoDB); err != nil {
		return fmt.Errorf("server: logger: %w", err)
	}
	defer logger.Close()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}

	if err := migration.New(db).Run(); err != nil {
		return err
	}

	// First boot on an empty database: create the admin account when the
	// environment provides one, warn when it does not.
	admins := repositories.NewGormAdminRepository(db)
	if err := seeders.EnsureAdmin(context.Background(), cfg, admins); err != nil {
		return fmt.Errorf("server: seed admin: %w", err)
	}

	sessionCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	sessOpts := session.DefaultOptions(cfg.SessionTTL)
	sessOpts.Secure = cfg.IsProduction()
	sessions := session.NewStore(sessionCache, sessOpts)

	disk, err := storage.New(cfg)
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	authSvc := services.NewAuthService(
		admins,
		sessions,
		auth.NewTokens(cfg.AppKey, cfg.SessionTTL),
	)
	catalog := services.NewCatalogService(repositories.NewGormProductRepository(db), authSvc, hub)

	r := router.New()
	err = routes.Register(r, routes.Deps{
		Auth:      authSvc,
		Catalog:   catalog,
		Disk:      disk,
		Hub:       hub,
		StaticDir: cfg.StaticDir,
		Limiter:   middleware.NewRateLimiter(300, time.Minute),
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", httpSrv.Addr, "env", cfg.AppEnv)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCPort != "" {
		srv, _, err := vgrpc.Start(cfg.GRPCPort)
		if err != nil {
			return err
		}
		grpcSrv = srv
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: http: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	vgrpc.Stop(grpcSrv)
	hub.Close()

	return nil
}

// buildCache selects the session cache backend. Redis is the deployment
// default; memory keeps local development dependency-free.
func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.CacheDriver {
	case "memory":
		return cache.NewMemory(), nil
	case "", "redis":
		c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("server: redis: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("server: unsupported CACHE_DRIVER %q (supported: redis, memory)", cfg.CacheDriver)
	}
}
