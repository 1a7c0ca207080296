package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tourbeau/tourbot/internal/controller/state"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: регистрирует пользователя и
// начинает диалог сбора данных
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	input := service.UpsertInput{
		TelegramID: user.ID,
		FirstName:  user.FirstName,
	}
	if user.LastName != "" {
		input.LastName = &user.LastName
	}
	if user.Username != "" {
		input.Username = &user.Username
	}

	if _, err := h.userService.Upsert(ctx, input); err != nil {
		h.logger.Error("Failed to register user on /start",
			zap.Int64("telegram_id", user.ID),
			zap.Error(err))
		h.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	h.sessions.Begin(user.ID)

	h.logger.Info("Registration started", zap.Int64("telegram_id", user.ID))

	h.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   promptFullname,
	})
}

// HandleStartWebApp обрабатывает /start в режиме мини-приложения:
// вместо диалога отдаёт одну кнопку с веб-формой
func (h *Handlers) HandleStartWebApp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{
					Text:   "📝 Регистрация",
					WebApp: &models.WebAppInfo{URL: h.webAppURL},
				},
			},
		},
	}

	h.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "Для регистрации нажмите кнопку ниже:",
		ReplyMarkup: keyboard,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена регистрации
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if h.sessions.Step(telegramID) == state.StepNone {
		h.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активной регистрации для отмены.",
		})
		return
	}

	h.sessions.Clear(telegramID)

	h.logger.Info("Registration cancelled", zap.Int64("telegram_id", telegramID))

	h.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "Регистрация отменена.",
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от шага
// регистрации. Команды сюда не попадают как ответы.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentStep := h.sessions.Step(telegramID)

	// Без активной регистрации текст игнорируем
	if currentStep == state.StepNone {
		return
	}

	if currentStep == state.StepReceipt {
		// На шаге чека принимаем только фото или видео
		h.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   promptReceipt,
		})
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	nextStep := h.sessions.SaveAnswer(telegramID, text)

	h.logger.Info("Registration step completed",
		zap.Int64("telegram_id", telegramID),
		zap.String("step", string(currentStep)),
		zap.String("next_step", string(nextStep)))

	h.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   promptFor(nextStep),
	})
}
