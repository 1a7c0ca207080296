package service

import (
	"context"

	"github.com/tourbeau/tourbot/internal/model"
	"go.uber.org/zap"
)

// CatalogLimit максимум туров в выдаче списка
const CatalogLimit = 100

// TripStore операции хранилища каталога туров
type TripStore interface {
	List(ctx context.Context, limit int) ([]model.Trip, error)
	GetByID(ctx context.Context, id int64) (*model.Trip, error)
}

// TripService read-only каталог туров, записи засеяны вне этого сервиса
type TripService struct {
	trips  TripStore
	logger *zap.Logger
}

func NewTripService(trips TripStore, logger *zap.Logger) *TripService {
	return &TripService{
		trips:  trips,
		logger: logger,
	}
}

func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	return s.trips.List(ctx, CatalogLimit)
}

func (s *TripService) GetByID(ctx context.Context, id int64) (*model.Trip, error) {
	return s.trips.GetByID(ctx, id)
}
