// Package telegram posts admin announcements to the promo channel.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	"github.com/yansassi23/upduoadm/internal/infra/httpclient"
)

const apiTimeout = 30 * time.Second

type Bot struct {
	api *tgbotapi.BotAPI
}

func NewBot(token string) (*Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}

	api, err := tgbotapi.NewBotAPIWithClient(strings.TrimSpace(token), tgbotapi.APIEndpoint, httpclient.New(apiTimeout))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}

	return &Bot{api: api}, nil
}

func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	if b == nil || b.api == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	_ = ctx
	return nil
}

// Announcer posts new daily winners to the configured promo chat.
type Announcer struct {
	bot    *Bot
	chatID int64
}

func NewAnnouncer(bot *Bot, chatID int64) *Announcer {
	return &Announcer{bot: bot, chatID: chatID}
}

func (a *Announcer) AnnounceWinner(ctx context.Context, winner model.DailyWinner) error {
	if a == nil || a.bot == nil {
		return fmt.Errorf("announcer is not initialized")
	}
	return a.bot.SendText(ctx, a.chatID, winnerMessage(winner))
}

func winnerMessage(winner model.DailyWinner) string {
	name := strings.TrimSpace(winner.User.Name)
	if name == "" {
		name = "Ganhador do dia"
	}
	return fmt.Sprintf(
		"🏆 Ganhador do sorteio de %s: %s! Prêmio: %d diamantes. Parabéns!",
		winner.DrawDate.Format("02/01/2006"),
		name,
		winner.PrizeAmount,
	)
}
