// Package web serves the browser front end: search a site, view a song,
// and repair a song whose stanzas do not line up.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/lyricpipe/core/render"
	"github.com/gaurav-prasanna/lyricpipe/sites"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds the state shared by all handlers.
type Server struct {
	registry    *sites.Registry
	defaultSite string
	song        *render.HTMLRenderer
	templates   *template.Template
}

// New parses the page templates and returns a Server over registry.
// defaultSite preselects the site in the search form.
func New(registry *sites.Registry, defaultSite string, fontSize int) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{
		registry:    registry,
		defaultSite: defaultSite,
		song:        render.NewHTMLRenderer(fontSize),
		templates:   tmpl,
	}, nil
}

// Handler returns the routed handler wrapped in request ID and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /search/", s.handleSearch)
	mux.HandleFunc("POST /search/", s.handleSearchPost)
	mux.HandleFunc("GET /song/{endpoint...}", s.handleSong)
	mux.HandleFunc("POST /reformatted/", s.handleReformatted)
	return withRequestID(withLogging(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "web server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
