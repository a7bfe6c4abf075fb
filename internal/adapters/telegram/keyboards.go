package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

func mainKeyboard(hasNick bool) tgbotapi.InlineKeyboardMarkup {
	nickBtn := tgbotapi.NewInlineKeyboardButtonData("🎮 Указать игровой ник", domain.CBSetNick)
	if hasNick {
		nickBtn = tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить игровой ник", domain.CBChangeNick)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Запросить кооп", domain.CBRequestCoop),
			tgbotapi.NewInlineKeyboardButtonData("🔵 Ответить на кооп", domain.CBRespondCoop),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Моя статистика", domain.CBMyStats),
			tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из очереди", domain.CBExitQueue),
		),
		tgbotapi.NewInlineKeyboardRow(nickBtn),
	)
}

// optionsKeyboard: un botón por opción y la fila de отмена al final. El token
// viaja en callback_data y vuelve intacto por el webhook.
func optionsKeyboard(options []service.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)+1)
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Token),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", domain.CBCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
