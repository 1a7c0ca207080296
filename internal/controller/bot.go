package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tourbeau/tourbot/internal/config"
	"github.com/tourbeau/tourbot/internal/controller/handlers"
	"github.com/tourbeau/tourbot/internal/controller/state"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	mode     config.BotMode
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	cfg *config.Config,
	userService *service.UserService,
	sessions *state.Manager,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		botInstance,
		userService,
		sessions,
		cfg.ManagerChatID,
		cfg.WebAppURL,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		mode:     cfg.Mode,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует обработчики в зависимости от режима.
// Режимы взаимоисключающие: либо пошаговый диалог, либо кнопка мини-приложения.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	if c.mode == config.BotModeWebApp {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStartWebApp)
		return c.setCommands(ctx, []models.BotCommand{
			{Command: "start", Description: "📝 Открыть форму регистрации"},
		})
	}

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (шаги диалога регистрации)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Вложения не матчатся текстовыми handlers, ловим их отдельно
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && (len(update.Message.Photo) > 0 || update.Message.Video != nil)
	}, c.handlers.HandleMedia)

	return c.setCommands(ctx, []models.BotCommand{
		{Command: "start", Description: "🚀 Начать регистрацию"},
		{Command: "cancel", Description: "❌ Отменить регистрацию"},
	})
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context, commands []models.BotCommand) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...", zap.String("mode", string(c.mode)))
	c.bot.Start(ctx)
}
