package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/repository"
	"go.uber.org/zap"
)

// UserStore операции хранилища, нужные сервису пользователей
type UserStore interface {
	Upsert(ctx context.Context, p repository.UpsertParams) (*model.User, bool, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// PhotoFetcher best-effort источник аватарки, "" означает "нет фото"
type PhotoFetcher interface {
	Fetch(ctx context.Context, userID int64) string
}

type UserService struct {
	users  UserStore
	photos PhotoFetcher
	logger *zap.Logger
}

func NewUserService(users UserStore, photos PhotoFetcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		photos: photos,
		logger: logger,
	}
}

// UpsertInput входной payload апсерта
type UpsertInput struct {
	TelegramID int64   `json:"telegram_id"`
	FirstName  string  `json:"first_name"`
	LastName   *string `json:"last_name"`
	Username   *string `json:"username"`
}

// UpsertResult результат апсерта в терминах исходного API-конверта
type UpsertResult struct {
	User          *model.User
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    *string
}

// Upsert создаёт или обновляет пользователя по telegram_id, дописывая
// отметку логина. Аватарка подтягивается best-effort: при неудаче
// сохранённое значение остаётся нетронутым.
func (s *UserService) Upsert(ctx context.Context, input UpsertInput) (*UpsertResult, error) {
	if input.TelegramID <= 0 {
		return nil, model.NewError("user", model.ErrValidation)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, model.NewError("user", model.ErrValidation)
	}

	var profilePhoto *string
	if url := s.photos.Fetch(ctx, input.TelegramID); url != "" {
		profilePhoto = &url
	}

	user, inserted, err := s.users.Upsert(ctx, repository.UpsertParams{
		TelegramID:   input.TelegramID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		ProfilePhoto: profilePhoto,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	result := &UpsertResult{User: user}
	if inserted {
		id := strconv.FormatInt(user.ID, 10)
		result.UpsertedID = &id

		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", user.TelegramID),
			zap.Bool("has_photo", profilePhoto != nil))
	} else {
		result.MatchedCount = 1
		result.ModifiedCount = 1

		s.logger.Info("User updated",
			zap.Int64("telegram_id", user.TelegramID),
			zap.Int("logins", len(user.Logins)))
	}

	return result, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}
