// Package chassis runs the announcement service: one TCP listener serving the
// REST API and the MCP streamable-HTTP endpoint behind the same handler.
//
// TLS is optional. With cert/key files it serves HTTPS (HTTP/1.1 + HTTP/2);
// with DevTLS a self-signed ECDSA P-256 cert is generated at startup; with
// neither it serves plain HTTP, which is what a reverse proxy expects.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server is the HTTP chassis.
type Server struct {
	addr    string
	logger  *slog.Logger
	tlsCfg  *tls.Config
	handler http.Handler
	srv     *http.Server
	ln      net.Listener
	mu      sync.Mutex
}

// Config holds configuration for the chassis server.
type Config struct {
	Addr     string       // listen address, e.g. ":8430"
	TLS      *tls.Config  // explicit TLS config; takes precedence over files
	CertFile string       // production cert path
	KeyFile  string       // production key path
	DevTLS   bool         // generate a self-signed cert when no files are given
	Handler  http.Handler // API + MCP mux
	Logger   *slog.Logger
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Handler == nil {
		return nil, errors.New("chassis: nil handler")
	}

	tlsCfg := cfg.TLS
	if tlsCfg == nil {
		switch {
		case cfg.CertFile != "" && cfg.KeyFile != "":
			var err error
			tlsCfg, err = LoadTLSConfig(cfg.CertFile, cfg.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("load TLS cert: %w", err)
			}
			cfg.Logger.Info("TLS: cert loaded", "cert", cfg.CertFile)
		case cfg.DevTLS:
			var err error
			tlsCfg, err = SelfSignedTLSConfig(listenHost(cfg.Addr)...)
			if err != nil {
				return nil, fmt.Errorf("generate dev TLS: %w", err)
			}
			cfg.Logger.Info("TLS: self-signed dev cert generated", "hosts", tlsCfg.Certificates[0].Leaf.DNSNames)
		}
	}

	return &Server{
		addr:    cfg.Addr,
		logger:  cfg.Logger,
		tlsCfg:  tlsCfg,
		handler: cfg.Handler,
	}, nil
}

// securityHeaders wraps an http.Handler and adds standard security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		next.ServeHTTP(w, r)
	})
}

// Listen binds the listener without serving yet. Start calls it when needed;
// tests call it to learn the bound address.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr(), nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.addr, err)
	}
	if s.tlsCfg != nil {
		ln = tls.NewListener(ln, s.tlsCfg)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           securityHeaders(s.handler),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	return ln.Addr(), nil
}

// Start serves until ctx is cancelled or the listener fails. On cancellation
// it shuts down gracefully, waiting up to 10 seconds for in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}
	proto := "HTTP/1.1"
	if s.tlsCfg != nil {
		proto = "HTTPS (HTTP/1.1+HTTP/2)"
	}
	s.logger.Info("chassis started", "addr", addr.String(), "proto", proto)

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Stop gracefully shuts down the listener.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	s.logger.Info("chassis stopping")
	err := s.srv.Shutdown(ctx)
	s.logger.Info("chassis stopped")
	return err
}
