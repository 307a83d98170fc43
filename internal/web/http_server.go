package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rook-computer/drawstring/internal/assets"
)

type HTTPServer struct {
	Config ServerConfig
	Deps   APIV1Deps

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

// NewHTTPServer builds a server for cfg. Fonts from cfg.FontDir are loaded here so a
// bad directory is reported before listening.
func NewHTTPServer(cfg ServerConfig, deps APIV1Deps) (*HTTPServer, error) {
	deps = deps.withDefaults()
	if cfg.FontDir != "" {
		n, err := deps.Fonts.LoadDir(cfg.FontDir)
		if err != nil && n == 0 {
			return nil, err
		}
		if err != nil {
			deps.Logger.Errorf("web", "fonts: %v", err)
		}
		deps.Logger.Infof("web", "loaded %d font(s) from %s", n, cfg.FontDir)
	}
	return &HTTPServer{Config: cfg, Deps: deps}, nil
}

// Handler returns the full handler: API, UI and, in dev mode, CORS.
func (s *HTTPServer) Handler() http.Handler {
	var h http.Handler = NewDefaultMux(s.Config.StaticDir, s.Deps)
	if s.Config.DevMode {
		h = WithDevCORS(h)
	}
	return h
}

// Addr returns the bound address once started, or the configured one.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.Config.ListenAddr
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv, log := s.srv, s.Deps.Logger
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Errorf("web", "serve: %v", err)
	}()

	log.Infof("web", "listening on %s", ln.Addr())
	return nil
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// StaticUIHandler serves dir at "/", or the embedded preview page when dir is empty.
func StaticUIHandler(dir string) http.Handler {
	if dir == "" {
		return cleanPath(http.FileServer(http.FS(assets.WebUI)))
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	return cleanPath(http.FileServer(http.Dir(dir)))
}

// cleanPath normalizes the request path so directory traversal cannot escape the root.
func cleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
