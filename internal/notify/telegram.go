// Package notify delivers the shortlist to a Telegram chat.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

// TelegramNotifier sends one message per scan.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse chat id %q: %w", chatID, err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: id,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// SendShortlist formats and sends the scan result.
func (n *TelegramNotifier) SendShortlist(shortlist []model.Candidate) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatShortlist(shortlist, time.Now()))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	n.logger.Info().Int("candidates", len(shortlist)).Msg("Shortlist sent")
	return nil
}

// FormatShortlist renders the scan result as a Markdown message.
func FormatShortlist(shortlist []model.Candidate, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Nifty-100 scan — %s*\n\n", at.Format("02 Jan 2006 15:04"))

	if len(shortlist) == 0 {
		b.WriteString("No stocks met all criteria today.")
		return b.String()
	}

	for i, c := range shortlist {
		fmt.Fprintf(&b, "%d. *%s*  %.2f\n", i+1, c.Symbol, c.Price)
		fmt.Fprintf(&b, "   score %d/10, RR %.2f, target %.2f, stop %.2f\n",
			c.Score, c.RiskReward, c.Target, c.Stop)
		fmt.Fprintf(&b, "   RSI %.1f, ADX %.1f\n", c.RSI, c.ADX)
	}
	return b.String()
}
