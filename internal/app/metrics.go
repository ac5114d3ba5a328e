package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type metricsServer struct {
	srv  *http.Server
	addr net.Addr
	done chan struct{}
}

// startMetricsServer serves h at /metrics until close.
func startMetricsServer(addr string, h http.Handler, logger zerolog.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	s := &metricsServer{
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		addr: ln.Addr(),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		logger.Info().Str("addr", s.addr.String()).Msg("serving metrics")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return s, nil
}

func (s *metricsServer) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}

// MetricsAddr returns the address the metrics server listens on, or "".
func (a *Application) MetricsAddr() string {
	if a.server == nil {
		return ""
	}
	return a.server.addr.String()
}
