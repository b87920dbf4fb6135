package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/booksearch/config"
	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/validation"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	searchdb   searchdb.DB
	validator  *validation.Validator
	logger     logger.Logger
}

// Run serves the gateway until ctx is cancelled or SIGINT arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)

	defer cancel()

	s := &server{
		cfg:    cfg,
		logger: logger.New(cfg.GetLogLevel()),
	}
	if err := s.setupDependencies(); err != nil {
		return err
	}
	s.setupRouter()

	return s.serve(ctx)
}

func (s *server) setupDependencies() error {
	var err error
	s.searchdb, err = searchdb.New(s.logger, s.cfg.Engine())
	if err != nil {
		s.logger.Error("error creating searchDB", "err", err.Error())
		return err
	}
	s.validator, err = validation.New(s.logger)
	if err != nil {
		s.logger.Error("error creating validator", "err", err.Error())
		s.searchdb.Close()
		return err
	}

	return nil

}

func (s *server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	router := newRouter(s.logger)

	setupRoutes(router, s.logger, s.searchdb, s.validator)

	s.router = router
}

func (s *server) serve(ctx context.Context) error {

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.GetPort()),
		Handler: s.router.Handler(),
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err, ok := <-listenErr:
		s.searchdb.Close()
		if ok {
			s.logger.Error("http server stopped", "err", err.Error())
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.shutdown()
}

func (s *server) shutdown() error {
	s.logger.Info("starting to shut down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	defer func() {
		if err := s.searchdb.Close(); err != nil {
			s.logger.Warn("error closing searchDB", "err", err.Error())
		}
	}()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("error shutting down http server", "err", err.Error())
		return err
	}
	s.logger.Info("shut down http server successfully")
	return nil
}
