package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tourbeau/tourbot/internal/controller/state"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

// Sender исходящие вызовы Bot API, используемые обработчиками.
// *bot.Bot реализует интерфейс.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
}

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	tg            Sender
	userService   *service.UserService
	sessions      *state.Manager
	managerChatID int64
	webAppURL     string
	logger        *zap.Logger
}

// NewHandlers создаёт новый обработчик сообщений
func NewHandlers(
	tg Sender,
	userService *service.UserService,
	sessions *state.Manager,
	managerChatID int64,
	webAppURL string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		tg:            tg,
		userService:   userService,
		sessions:      sessions,
		managerChatID: managerChatID,
		webAppURL:     webAppURL,
		logger:        logger,
	}
}
