package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/numstr/pkg/logger"
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
	startHooks        []func(*slog.Logger)
	stopHooks         []func(*slog.Logger)
}

// Server runs an http.Server until its context is cancelled or the process
// receives SIGINT/SIGTERM, then drains it within the shutdown timeout.
type Server struct {
	cfg  *config
	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := &config{
		addr:              ":8080",
		readHeaderTimeout: 10 * time.Second,
		shutdownTimeout:   5 * time.Second,
		logger:            logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Run listens on the configured address and serves handler until shutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           handler,
		ReadTimeout:       s.cfg.readTimeout,
		ReadHeaderTimeout: s.cfg.readHeaderTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
		IdleTimeout:       s.cfg.idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		ErrorLog:          slog.NewLogLogger(s.cfg.logger.Handler(), slog.LevelError),
	}
	s.srv = srv
	s.mu.Unlock()

	log := s.cfg.logger.With(logger.Component("httpserver"))
	log.InfoContext(ctx, "http server started", slog.String("addr", srv.Addr))
	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		log.InfoContext(ctx, "shutting down http server", slog.String("reason", "context done"))
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case sig := <-stop:
		log.InfoContext(ctx, "shutting down http server", slog.String("reason", sig.String()))
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown drains the running server. Only the first call has an effect.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
		if err != nil {
			s.cfg.logger.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
