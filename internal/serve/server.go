// Package serve runs the local preview server: the built site over
// HTTP plus a filesystem watcher that rebuilds on content changes.
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RebuildFunc re-runs the site build.
type RebuildFunc func(ctx context.Context) error

// Server serves the output directory and rebuilds on change.
type Server struct {
	Addr      string
	OutputDir string

	// WatchPaths are files or directory trees that trigger a rebuild.
	WatchPaths []string

	// Debounce coalesces bursts of filesystem events.
	Debounce time.Duration

	Rebuild RebuildFunc
	Log     *zap.Logger

	// addrCh reports the bound address once listening, for tests and
	// for the startup log line.
	addrCh chan net.Addr
}

// Handler returns the HTTP handler: the static site with caching
// disabled so edits show up on plain refresh.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/*", http.FileServer(http.Dir(s.OutputDir)))
	return r
}

// Run serves until the context is cancelled. The watcher runs
// alongside and calls Rebuild after each debounced change burst.
func (s *Server) Run(ctx context.Context) error {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	if s.addrCh != nil {
		s.addrCh <- ln.Addr()
	}
	s.Log.Info("serving docs", zap.String("addr", ln.Addr().String()))

	srv := &http.Server{Handler: s.Handler()}

	watchErr := make(chan error, 1)
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		watchErr <- s.watch(watchCtx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-serveErr
		<-watchErr
		return nil
	case err := <-serveErr:
		cancelWatch()
		<-watchErr
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-watchErr:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-serveErr
		return err
	}
}
