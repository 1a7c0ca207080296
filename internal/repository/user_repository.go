package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/repository/base"
)

const userColumns = `id, telegram_id, first_name, last_name, username, profile_photo,
		national_code, phone, address, birthdate, superuser, logins, created_at, updated_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// UpsertParams параметры идемпотентного апсерта по telegram_id
type UpsertParams struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Username   *string
	// ProfilePhoto nil означает "обогащение не удалось" — старое значение не трогаем
	ProfilePhoto *string
	Now          time.Time
}

// Upsert атомарно создаёт или обновляет пользователя одним условным INSERT.
// Гонка двух конкурентных апсертов по новому telegram_id разрешается на
// уровне хранилища (UNIQUE + ON CONFLICT), а не в приложении.
func (r *UserRepository) Upsert(ctx context.Context, p UpsertParams) (*model.User, bool, error) {
	query := `
		INSERT INTO users (telegram_id, first_name, last_name, username, profile_photo, logins, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, ARRAY[$6]::timestamptz[], $6, $6)
		ON CONFLICT (telegram_id) DO UPDATE SET
			first_name    = EXCLUDED.first_name,
			last_name     = EXCLUDED.last_name,
			username      = EXCLUDED.username,
			profile_photo = COALESCE(EXCLUDED.profile_photo, users.profile_photo),
			logins        = array_append(users.logins, EXCLUDED.updated_at),
			updated_at    = EXCLUDED.updated_at
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted
	`

	var user model.User
	var inserted bool
	err := r.QueryRow(
		ctx, query,
		p.TelegramID,
		p.FirstName,
		p.LastName,
		p.Username,
		p.ProfilePhoto,
		p.Now,
	).Scan(
		&user.ID,
		&user.TelegramID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.ProfilePhoto,
		&user.NationalCode,
		&user.Phone,
		&user.Address,
		&user.Birthdate,
		&user.Superuser,
		&user.Logins,
		&user.CreatedAt,
		&user.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}

	return &user, inserted, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.ProfilePhoto,
		&user.NationalCode,
		&user.Phone,
		&user.Address,
		&user.Birthdate,
		&user.Superuser,
		&user.Logins,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.NewError("user", model.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}
