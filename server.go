package dataformat

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/config"
	"github.com/thrustcurve/dataformat/formatter"
	"github.com/thrustcurve/dataformat/idmap"
	"github.com/thrustcurve/dataformat/internal"
	"golang.org/x/xerrors"
)

// Endpoint names, used in routes and metric labels.
const (
	endpointMetadata = "metadata"
	endpointSearch   = "search"
	endpointMotor    = "motor"
)

// Server serves catalog documents over HTTP in XML and JSON.
type Server struct {
	cfg     config.AppConfig
	catalog *catalog.Catalog
	ids     *idmap.Registry
	cache   *ResponseCache
	metrics *Metrics
	handler http.Handler
	server  *http.Server
}

// NewServer wires the routes for cat. Compatibility identifiers come from ids,
// or from idmap.Default() when ids is nil.
func NewServer(cfg config.AppConfig, cat *catalog.Catalog, ids *idmap.Registry) *Server {
	if ids == nil {
		ids = idmap.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:     cfg,
		catalog: cat,
		ids:     ids,
		cache:   NewResponseCache(),
		metrics: NewMetrics(reg, ids),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	base := strings.TrimRight(cfg.API.BasePath, "/")
	for _, kind := range []formatter.Kind{formatter.KindXML, formatter.KindJSON} {
		ext := "." + string(kind)
		mux.HandleFunc(base+"/"+endpointMetadata+ext, s.handleMetadata(kind))
		mux.HandleFunc(base+"/"+endpointSearch+ext, s.handleSearch(kind))
		mux.HandleFunc(base+"/"+endpointMotor+ext, s.handleMotor(kind))
	}

	s.handler = mux
	if cfg.Server.Gzip {
		s.handler = gziphandler.GzipHandler(mux)
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured port in the background.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			internal.Logger.Fatal().Err(err).Msg("server error")
		}
	}()
	internal.Logger.Info().Str("addr", addr).Msg("server listening")
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return xerrors.Errorf("failed to shut down server: %v", err)
	}
	return nil
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM and then shuts s down.
func HandleGracefulShutdown(s *Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	internal.Logger.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		internal.Logger.Error().Err(err).Msg("server shutdown error")
	} else {
		internal.Logger.Info().Msg("server shut down successfully")
	}
}
