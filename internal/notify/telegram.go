// Package notify delivers finished summaries to a Telegram chat.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
)

const telegramMessageMaxLength = 4096

type Telegram struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("token is empty")
	}

	if chatID == 0 {
		return nil, errors.New("chat ID is empty")
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Telegram{bot: b, chatID: chatID}, nil
}

// Send delivers text to the configured chat, splitting it into several
// messages when it exceeds the Telegram message length limit.
func (t *Telegram) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("text is empty")
	}

	for _, message := range splitMessage(text, telegramMessageMaxLength) {
		if _, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: t.chatID,
			Text:   message,
		}); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}

	return nil
}

func splitMessage(text string, maxLength int) []string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return []string{text}
	}

	var messages []string
	for start := 0; start < len(runes); start += maxLength {
		end := min(start+maxLength, len(runes))
		messages = append(messages, string(runes[start:end]))
	}

	return messages
}
