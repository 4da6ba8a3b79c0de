// Package web serves the read-only web view of a note library: the
// same navigation tree the TUI shows, rendered as an HTML sidebar, plus
// note lists and note pages. The web view performs no mutations.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/notehaven/notehaven/pkg/library"
)

// Server serves the web view over one library.
type Server struct {
	lib  *library.Library
	addr string
	log  *logrus.Logger
}

// New creates a server that will listen on addr, e.g. "127.0.0.1:9115".
func New(lib *library.Library, addr string, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{lib: lib, addr: addr, log: log}
}

// Handler builds the route table. Split out of Serve so tests can drive
// the handlers through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleIndex)
	r.Route("/storages/{storageID}", func(r chi.Router) {
		r.Get("/", s.handleStorage)
		r.Get("/notes", s.handleNotes)
		r.Get("/notes/*", s.handleNotes)
		r.Get("/tags/{tag}", s.handleTag)
		r.Get("/trashcan", s.handleTrash)
		r.Get("/search", s.handleSearch)
	})
	r.Get("/notes/{noteID}", s.handleNote)

	return r
}

// Serve starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Infof("serving web view on http://%s", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve web view: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
