package http

import (
	"context"
	"errors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"time"
	"tmiclient/internal/app/adapters/http/handlers"
	"tmiclient/internal/app/adapters/http/middlewares"
	"tmiclient/internal/app/infrastructure/config"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	log logger.Logger
	cfg config.App
}

func NewRouter(log logger.Logger, cfg config.App, stats ports.StatsPort) *Router {
	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, stats),
		middlewares: middlewares.New(),
		log:         log,
		cfg:         cfg,
	}
	r.router.Use(gin.Recovery())

	r.router.GET("/healthz", r.handlers.HealthHandler)
	r.router.GET("/status", r.middlewares.Auth(cfg.AuthToken), r.handlers.StatusHandler)

	if cfg.AuthToken != "" {
		accounts := gin.BasicAuth(gin.Accounts{"admin": cfg.AuthToken})
		pprof.RouteRegister(r.router.Group("/", accounts))
		r.router.GET("/metrics", accounts, gin.WrapH(promhttp.Handler()))
	} else {
		r.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return r
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := r.newServer(r.cfg.HTTPAddr, r.router)

	errCh := make(chan error, 1)
	go func() {
		r.log.Info("HTTP server listening on " + r.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
