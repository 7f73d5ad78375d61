// internal/infra/telegram/client.go
package telegram

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// NotifyError is returned when a message could not be delivered to Telegram.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("failed to send telegram message: %v", e.Err)
}

func (e *NotifyError) Unwrap() error { return e.Err }

// Sender is the subset of *telebot.Bot used by the adapter.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// chatRecipient addresses a chat by the raw id from configuration,
// so both numeric ids and @channel usernames work.
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot    Sender
	chat   chatRecipient
	logger *logrus.Entry
}

func NewTelebotAdapter(b Sender, chatID string, logger *logrus.Entry) *TelebotAdapter {
	return &TelebotAdapter{
		bot:    b,
		chat:   chatRecipient(chatID),
		logger: logger.WithField("chat_id", chatID),
	}
}

// SendMessage sends a plain text message to the configured chat.
func (tba *TelebotAdapter) SendMessage(text string) error {
	_, err := tba.bot.Send(tba.chat, text, &telebot.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		tba.logger.WithError(err).Errorf("Failed to send message: %q", text)
		return &NotifyError{Err: err}
	}
	tba.logger.Debugf("Message sent: %q", text)
	return nil
}
