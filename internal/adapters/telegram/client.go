package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
)

// Client implementa service.Notifier sobre la Bot API. Todos los envíos van
// con parse_mode HTML y sin preview de links, y llevan pegado el teclado
// principal (cuyo botón de ник depende del perfil del destinatario).
type Client struct {
	bot   *tgbotapi.BotAPI
	users *storage.UserRepo
}

func NewClient(token string, users *storage.UserRepo) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Client{bot: bot, users: users}, nil
}

func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	msg := c.baseMessage(recipientID, text)
	msg.ReplyMarkup = c.keyboardFor(ctx, recipientID)
	_, err := c.bot.Send(msg)
	return err
}

func (c *Client) SendOptions(ctx context.Context, recipientID, text string, options []service.Option) error {
	msg := c.baseMessage(recipientID, text)
	msg.ReplyMarkup = optionsKeyboard(options)
	_, err := c.bot.Send(msg)
	return err
}

// SendChannel manda al chat de avisos; threadID != 0 apunta a un topic de
// foro. Va por MakeRequest porque MessageConfig no expone message_thread_id.
func (c *Client) SendChannel(ctx context.Context, chatID int64, threadID int, text string) error {
	params := tgbotapi.Params{
		"chat_id":    strconv.FormatInt(chatID, 10),
		"text":       text,
		"parse_mode": tgbotapi.ModeHTML,
	}
	if threadID != 0 {
		params["message_thread_id"] = strconv.Itoa(threadID)
	}
	_, err := c.bot.MakeRequest("sendMessage", params)
	return err
}

// AnswerCallback cierra el spinner del botón apretado; Telegram reintenta el
// callback si no se contesta.
func (c *Client) AnswerCallback(callbackID string) error {
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (c *Client) baseMessage(recipientID, text string) tgbotapi.MessageConfig {
	chatID, _ := strconv.ParseInt(recipientID, 10, 64)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}

// keyboardFor: si el perfil no se puede leer, teclado sin nick y listo; es
// cosmético, no vale abortar el envío.
func (c *Client) keyboardFor(ctx context.Context, recipientID string) tgbotapi.InlineKeyboardMarkup {
	hasNick := false
	if u, err := c.users.Brief(ctx, recipientID); err == nil && u != nil {
		hasNick = u.GameNick != ""
	}
	return mainKeyboard(hasNick)
}
