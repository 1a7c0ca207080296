package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

const (
	_defaultIdleTimeout    = time.Minute
	_defaultReadTimeout    = 5 * time.Second
	_defaultWriteTimeout   = 10 * time.Second
	_defaultShutdownPeriod = 30 * time.Second
)

// UserService апсерт и чтение пользователей
type UserService interface {
	Upsert(ctx context.Context, input service.UpsertInput) (*service.UpsertResult, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// TripService read-only каталог туров
type TripService interface {
	List(ctx context.Context) ([]model.Trip, error)
	GetByID(ctx context.Context, id int64) (*model.Trip, error)
}

// Diagnostics проверка соединения с базой для /api/test-db
type Diagnostics interface {
	Tables(ctx context.Context) ([]string, error)
}

type Server struct {
	users       UserService
	trips       TripService
	diagnostics Diagnostics
	corsOrigin  string
	logger      *zap.Logger
	httpSrv     *http.Server
}

func New(
	addr string,
	users UserService,
	trips TripService,
	diagnostics Diagnostics,
	corsOrigin string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:       users,
		trips:       trips,
		diagnostics: diagnostics,
		corsOrigin:  corsOrigin,
		logger:      logger,
	}

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		IdleTimeout:  _defaultIdleTimeout,
		ReadTimeout:  _defaultReadTimeout,
		WriteTimeout: _defaultWriteTimeout,
	}

	return s
}

// Run блокируется до отмены ctx, после чего мягко гасит сервер
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), _defaultShutdownPeriod)
		defer cancel()

		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		s.logger.Info("HTTP server stopped")
		return <-errChan
	case err := <-errChan:
		return err
	}
}
