// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server serves configured tables as HTML pages. Every request
// rebuilds the table state from the URL, so sort and page links are plain
// GET links and the search box submits a GET form.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/logging"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/state"
	"github.com/toeirei/livetable/internal/table"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Options configures a Server.
type Options struct {
	Addr string
	// Language is used when a request carries no Accept-Language header.
	Language        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// Views renders header and footer slots named by table definitions.
	Views table.Views
}

// Server renders the tables of a registry over HTTP.
type Server struct {
	reg     *host.Registry
	opts    Options
	handler http.Handler

	addr  net.Addr
	ready chan struct{}
}

// New returns a server for reg. Zero timeouts get defaults.
func New(reg *host.Registry, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8080"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{reg: reg, opts: opts, ready: make(chan struct{})}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /t/{name}", s.handleTable)
	mux.HandleFunc("GET /t/{name}/fragment", s.handleTable)
	s.handler = gzhttp.GzipHandler(logRequests(mux))
	return s
}

// Handler returns the HTTP handler, gzip-compressed when clients accept it.
func (s *Server) Handler() http.Handler { return s.handler }

// Ready is closed once Serve is listening.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound address. Only valid after Ready is closed.
func (s *Server) Addr() net.Addr { return s.addr }

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	logging.L.Info("http server listening", "address", s.addr.String())

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
		logging.L.Info("http server shutting down")
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logging.L.Info("http server stopped")
	return nil
}

func (s *Server) localizer(r *http.Request) *i18n.Localizer {
	if al := r.Header.Get("Accept-Language"); al != "" {
		return i18n.NewLocalizer(al)
	}
	return i18n.NewLocalizer(s.opts.Language)
}

type indexEntry struct {
	Title string
	Href  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	var tables []indexEntry
	for _, name := range s.reg.Names() {
		c, err := s.reg.Get(name)
		if err != nil {
			continue
		}
		title := c.Definition().Title
		if title == "" {
			title = name
		}
		tables = append(tables, indexEntry{Title: title, Href: tablePath(name)})
	}
	s.execute(w, "index", map[string]any{
		"Lang":   loc.Tag().String(),
		"Title":  loc.T("Tables"),
		"Tables": tables,
	})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	comp, err := s.reg.Get(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	loc := s.localizer(r)

	st := state.FromQuery(r.URL.Query(), comp.Definition().InitialState())
	vm, err := comp.ViewModel(ctx, st)
	if err != nil {
		logging.Errorf("table %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if vm.Page != nil {
		st.Page = vm.Page.Number
	}

	linker := func(in state.Intent) string {
		next, err := comp.Dispatch(ctx, st, in)
		if err != nil {
			logging.Warnf("table %s: link for %s: %v", name, in.Name(), err)
			return ""
		}
		return stateURL(name, next)
	}
	opts := []table.Option{
		table.WithResolver(comp.Resolver(table.DefaultResolver{Formats: format.NewRegistry(loc.Tag())})),
		table.WithTranslator(loc),
		table.WithLinker(linker),
		table.WithPaginator(paginate.Links{
			URL:        func(n int) string { return linker(state.PageChanged{Page: n}) },
			Translator: loc,
		}),
	}
	if s.opts.Views != nil {
		opts = append(opts, table.WithViews(s.opts.Views))
	}
	fragment := table.New(opts...).Render(vm)

	if r.URL.Path == tablePath(name)+"/fragment" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fragment))
		return
	}

	title := comp.Definition().Title
	if title == "" {
		title = name
	}
	s.execute(w, "page", map[string]any{
		"Lang":          loc.Tag().String(),
		"Title":         title,
		"Back":          loc.T("Tables"),
		"Action":        tablePath(name),
		"SortAttribute": vm.SortAttribute,
		"SortDirection": string(vm.SortDirection),
		"Table":         fragment,
	})
}

func (s *Server) execute(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logging.Errorf("render %s: %v", name, err)
	}
}

func tablePath(name string) string {
	return "/t/" + url.PathEscape(name)
}

// stateURL returns the page URL that reproduces st.
func stateURL(name string, st state.State) string {
	q := st.Query()
	if len(q) == 0 {
		return tablePath(name)
	}
	return tablePath(name) + "?" + q.Encode()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.L.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}
