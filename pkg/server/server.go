// Package server serves the web keypad and its static assets behind the
// cache-first offline wrapper.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hufspace/hufspace-cli/pkg/offline"
)

//go:embed static templates
var embedded embed.FS

// Options configures a Server.
type Options struct {
	// StaticDir serves assets from disk instead of the embedded copies.
	StaticDir string
	// Watch evicts cached assets when files in StaticDir change.
	Watch    bool
	Offline  bool
	Manifest offline.Manifest
	Logger   logrus.FieldLogger
}

// Server is the web keypad.
type Server struct {
	opts    Options
	engine  *gin.Engine
	storage *offline.Storage
	logger  logrus.FieldLogger
	watcher *offline.Watcher
}

// New builds the router. Call Precache before serving to fill the cache.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Manifest.CacheName == "" {
		opts.Manifest = offline.DefaultManifest()
	}

	assets, err := staticFS(opts.StaticDir)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(embedded, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:    opts,
		storage: offline.NewStorage(),
		logger:  opts.Logger,
	}
	s.engine = s.setupRoutes(tmpl, assets)
	return s, nil
}

func staticFS(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embedded, "static")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("static dir is not a directory: " + dir)
	}
	return os.DirFS(dir), nil
}

func (s *Server) setupRoutes(tmpl *template.Template, assets fs.FS) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(s.logger))
	if s.opts.Offline {
		router.Use(offline.CacheFirst(s.storage, s.logger))
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.getIndex)
	router.POST("/press", s.postPress)
	router.GET("/healthz", getHealth)
	router.GET("/cache", s.getCache)
	router.StaticFS("/static", http.FS(assets))

	return router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Storage returns the offline cache storage.
func (s *Server) Storage() *offline.Storage {
	return s.storage
}

// Precache installs the manifest from the server's own routes. Failing to
// install leaves the cache empty and every request goes to the network.
func (s *Server) Precache(ctx context.Context) error {
	if !s.opts.Offline {
		return nil
	}
	_, err := offline.Install(ctx, s.storage, s.opts.Manifest, &offline.HandlerFetcher{Handler: s.engine}, offline.InstallOptions{
		Logger: s.logger,
	})
	if err != nil {
		return err
	}

	if s.opts.Watch && s.opts.StaticDir != "" {
		w, err := offline.NewWatcher(s.opts.StaticDir, "/static", s.storage.Open(s.opts.Manifest.CacheName), s.logger)
		if err != nil {
			return err
		}
		s.watcher = w
	}
	return nil
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		s.close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.close()
	return err
}

func (s *Server) close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warnf("failed to close watcher: %v", err)
		}
		s.watcher = nil
	}
}
