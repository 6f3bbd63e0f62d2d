package metrics

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServer struct {
	Logger *slog.Logger

	srv *http.Server
}

func (s *HTTPServer) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.HTTPServer")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.srv = &http.Server{Addr: ":8080", Handler: mux}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.Logger.Info("Starting HTTP server", "addr", s.srv.Addr)
	go s.srv.Serve(ln) // nolint:errcheck

	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
