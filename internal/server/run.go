package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/r9s-ai/bundleurl/internal/config"
	"github.com/r9s-ai/bundleurl/internal/logx"
	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/internal/watch"
)

const shutdownTimeout = 10 * time.Second

func Run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gin.SetMode(ginMode(cfg.Logging.Level))

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	pidCleanup, err := writePIDFile(cfg)
	if err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	if pidCleanup != nil {
		defer func() { _ = pidCleanup.Close() }()
	}

	svc, err := resolve.New(resolve.SettingsFromConfig(cfg), cfg.Cache.Size)
	if err != nil {
		return fmt.Errorf("init resolver: %w", err)
	}
	reload := newReloader(cfgPath, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	installReloadSignalHandler(ctx, reload)
	if cfg.Watch.Enabled {
		debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
		go func() {
			err := watch.Watch(ctx, cfgPath, debounce, func() {
				if err := reload(); err != nil {
					log.Printf("reload failed: %v", err)
					return
				}
				log.Printf("reload ok (config changed)")
			})
			if err != nil {
				log.Printf("config watch disabled: %v", err)
			}
		}()
	}

	engine := NewRouter(cfg, svc, reload, accessLogger, accessColor)
	srv := New(cfg, engine)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Printf("bundleurl listening on %s (project root %s, platforms %v)", cfg.Server.Listen, cfg.Bundler.ProjectRoot, svc.Platforms())
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Server wraps http.Server, optionally accepting cleartext HTTP/2.
type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, handler http.Handler) *Server {
	if cfg.Server.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Listen,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		},
	}
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// newReloader re-reads cfgPath and applies its bundler settings. Listen address,
// timeouts and cache size only change on restart.
func newReloader(cfgPath string, svc *resolve.Service) ReloadFunc {
	var mu sync.Mutex
	return func() error {
		mu.Lock()
		defer mu.Unlock()
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("reload config %q: %w", cfgPath, err)
		}
		svc.Reconfigure(resolve.SettingsFromConfig(cfg))
		return nil
	}
}

func installReloadSignalHandler(ctx context.Context, reload ReloadFunc) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				if err := reload(); err != nil {
					log.Printf("reload failed: %v", err)
					continue
				}
				log.Printf("reload ok")
			}
		}
	}()
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if cfg == nil || !cfg.Logging.AccessLog {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		return log.New(os.Stdout, "", 0), nil, logx.ColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", 0), f, false, nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

func writePIDFile(cfg *config.Config) (io.Closer, error) {
	if cfg == nil {
		return nil, nil
	}
	path := strings.TrimSpace(cfg.Server.PidFile)
	if path == "" {
		return nil, nil
	}
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	tmp := path + ".tmp"
	pid := strconv.Itoa(os.Getpid()) + "\n"
	// #nosec G304 -- pid_file comes from trusted config/env.
	if err := os.WriteFile(tmp, []byte(pid), 0o600); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	return closerFunc(func() error { return os.Remove(path) }), nil
}

// ginMode maps logging.level onto gin's mode; only "debug" enables route dumps.
func ginMode(level string) string {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
