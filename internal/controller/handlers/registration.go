package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tourbeau/tourbot/internal/controller/state"
	"go.uber.org/zap"
)

const (
	promptFullname  = "Имя и фамилия:"
	promptPhone     = "Контактный телефон:"
	promptBirthdate = "Дата рождения:"
	promptAddress   = "Адрес:"
	promptReceipt   = "Отправьте фото или видео чека об оплате:"
)

func promptFor(step state.Step) string {
	switch step {
	case state.StepFullname:
		return promptFullname
	case state.StepPhone:
		return promptPhone
	case state.StepBirthdate:
		return promptBirthdate
	case state.StepAddress:
		return promptAddress
	case state.StepReceipt:
		return promptReceipt
	}
	return ""
}

// HandleMedia обрабатывает сообщения с вложениями. Единственный шаг,
// принимающий вложения — чек об оплате; в остальных случаях повторяем
// подсказку текущего шага, не продвигая диалог.
func (h *Handlers) HandleMedia(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if len(update.Message.Photo) == 0 && update.Message.Video == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentStep := h.sessions.Step(telegramID)

	switch currentStep {
	case state.StepNone:
		return
	case state.StepReceipt:
		h.completeRegistration(ctx, update)
	default:
		h.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   promptFor(currentStep),
		})
	}
}

// completeRegistration собирает анкету, пересылает её с чеком в чат
// менеджеров и завершает сессию
func (h *Handlers) completeRegistration(ctx context.Context, update *models.Update) {
	telegramID := update.Message.From.ID

	sess, ok := h.sessions.Snapshot(telegramID)
	if !ok {
		return
	}

	caption := registrationCaption(telegramID, update.Message.From.Username, sess)

	var err error
	if len(update.Message.Photo) > 0 {
		// Размеры отсортированы по возрастанию, последний — оригинал
		photo := update.Message.Photo[len(update.Message.Photo)-1]
		_, err = h.tg.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  h.managerChatID,
			Photo:   &models.InputFileString{Data: photo.FileID},
			Caption: caption,
		})
	} else {
		_, err = h.tg.SendVideo(ctx, &bot.SendVideoParams{
			ChatID:  h.managerChatID,
			Video:   &models.InputFileString{Data: update.Message.Video.FileID},
			Caption: caption,
		})
	}

	if err != nil {
		h.logger.Error("Failed to forward registration to managers",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось отправить заявку. Попробуйте ещё раз.",
		})
		return
	}

	h.sessions.Clear(telegramID)

	h.logger.Info("Registration completed", zap.Int64("telegram_id", telegramID))

	h.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Регистрация успешно завершена.",
	})
}

func registrationCaption(telegramID int64, username string, sess state.Session) string {
	return fmt.Sprintf(
		"📥 Новая регистрация\n\n"+
			"ID: %d\n"+
			"Username: @%s\n\n"+
			"👤 ФИО: %s\n"+
			"📱 Телефон: %s\n"+
			"🎂 Дата рождения: %s\n"+
			"🏠 Адрес: %s\n"+
			"🧾 Чек об оплате ниже 👇",
		telegramID,
		username,
		sess.Fullname,
		sess.Phone,
		sess.Birthdate,
		sess.Address,
	)
}
