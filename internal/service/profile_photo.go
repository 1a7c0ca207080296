package service

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// DefaultFetchTimeout обогащение не должно задерживать основной апсерт
const DefaultFetchTimeout = 3 * time.Second

// telegramFileAPI часть Bot API, нужная для получения аватарки.
// *bot.Bot реализует интерфейс.
type telegramFileAPI interface {
	GetUserProfilePhotos(ctx context.Context, params *bot.GetUserProfilePhotosParams) (*models.UserProfilePhotos, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// ProfilePhotoFetcher достаёт URL аватарки пользователя из Telegram.
// Это best-effort обогащение: любая ошибка превращается в пустой результат.
type ProfilePhotoFetcher struct {
	tg      telegramFileAPI
	logger  *zap.Logger
	timeout time.Duration
}

func NewProfilePhotoFetcher(tg telegramFileAPI, logger *zap.Logger) *ProfilePhotoFetcher {
	return &ProfilePhotoFetcher{
		tg:      tg,
		logger:  logger,
		timeout: DefaultFetchTimeout,
	}
}

// Fetch возвращает ссылку на аватарку в максимальном размере или "" если
// фото нет либо какой-то из запросов не удался. Ошибка наружу не выходит.
func (f *ProfilePhotoFetcher) Fetch(ctx context.Context, userID int64) string {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	photos, err := f.tg.GetUserProfilePhotos(ctx, &bot.GetUserProfilePhotosParams{
		UserID: userID,
		Limit:  1,
	})
	if err != nil {
		f.logger.Warn("Failed to get profile photos",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return ""
	}

	if photos == nil || photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		f.logger.Debug("User has no profile photo", zap.Int64("user_id", userID))
		return ""
	}

	// Размеры отсортированы по возрастанию, берём последний
	sizes := photos.Photos[0]
	fileID := sizes[len(sizes)-1].FileID

	file, err := f.tg.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		f.logger.Warn("Failed to resolve profile photo file",
			zap.Int64("user_id", userID),
			zap.String("file_id", fileID),
			zap.Error(err))
		return ""
	}

	return f.tg.FileDownloadLink(file)
}
