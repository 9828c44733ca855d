package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the slice of the Bot API the handlers use. Send is for calls
// returning a message, Request for the ones returning only ok.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

func (s botAPISender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return s.api.Request(c)
}

type sendOptions struct {
	ParseMode string
	Silent    bool
}

func (b *Bot) sendText(chatID int64, text string, opts sendOptions) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	msg.DisableNotification = opts.Silent
	return b.s.Send(msg)
}

// sendMessage is the best-effort plain reply used by the handlers.
func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.sendText(chatID, text, sendOptions{}); err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) error {
	_, err := b.s.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}
