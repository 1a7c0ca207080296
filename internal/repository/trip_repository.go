package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/repository/base"
)

const tripColumns = `id, title, description, destination, start_date, end_date, price,
		category_title, category_href, image_url, options, capacity, available_slots,
		created_at, updated_at`

type TripRepository struct {
	*base.Repository
}

func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{Repository: base.NewRepository(pool)}
}

// List возвращает туры в порядке id (каталог read-only, записи засеяны заранее)
func (r *TripRepository) List(ctx context.Context, limit int) ([]model.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]model.Trip, 0, limit)
	for rows.Next() {
		var trip model.Trip
		err := rows.Scan(
			&trip.ID,
			&trip.Title,
			&trip.Description,
			&trip.Destination,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Price,
			&trip.Category.Title,
			&trip.Category.Href,
			&trip.ImageURL,
			&trip.Options,
			&trip.Capacity,
			&trip.AvailableSlots,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}

	return trips, nil
}

// GetByID получает тур по ID
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*model.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = $1
	`

	var trip model.Trip
	err := r.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Title,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Price,
		&trip.Category.Title,
		&trip.Category.Href,
		&trip.ImageURL,
		&trip.Options,
		&trip.Capacity,
		&trip.AvailableSlots,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.NewError("trip", model.ErrNotFound)
		}
		return nil, fmt.Errorf("get trip by id: %w", err)
	}

	return &trip, nil
}
