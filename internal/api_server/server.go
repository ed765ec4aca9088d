package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/dcm-project/compute-provisioner/api/v1"
	"github.com/dcm-project/compute-provisioner/internal/api/server"
	"github.com/dcm-project/compute-provisioner/internal/config"
	"github.com/dcm-project/compute-provisioner/internal/handlers"
)

const gracefulShutdownTimeout = 5 * time.Second

type Server struct {
	cfg      *config.Config
	listener net.Listener
	handler  *handlers.Handler
	gatherer prometheus.Gatherer
	logger   log.Logger
}

func New(cfg *config.Config, listener net.Listener, handler *handlers.Handler, gatherer prometheus.Gatherer, logger log.Logger) *Server {
	return &Server{
		cfg:      cfg,
		listener: listener,
		handler:  handler,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Router builds the HTTP routes: /metrics at the root and the compute API
// under the document's server URL behind request validation.
func (s *Server) Router() (http.Handler, error) {
	swagger, err := v1.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load OpenAPI spec: %w", err)
	}
	if len(swagger.Servers) == 0 {
		return nil, fmt.Errorf("OpenAPI spec missing servers configuration")
	}
	baseURL := swagger.Servers[0].URL

	validator, err := handlers.NewRequestValidator(swagger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	router.Get(baseURL+"/openapi.yaml", serveDocument)
	router.Group(func(r chi.Router) {
		r.Use(validator)
		server.HandlerWithOptions(server.NewStrictHandlerWithOptions(s.handler, nil, handlers.StrictOptions()), server.ChiServerOptions{
			BaseURL:          baseURL,
			BaseRouter:       r,
			ErrorHandlerFunc: handlers.ParamErrorHandler,
		})
	})
	return router, nil
}

func serveDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v1.Spec())
}

func (s *Server) Run(ctx context.Context) error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	srv := http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
	}()

	level.Info(s.logger).Log("msg", "server listening", "address", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			level.Debug(logger).Log(
				"msg", "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
