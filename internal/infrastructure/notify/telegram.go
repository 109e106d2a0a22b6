// Package notify envía avisos de cierre de jornada a canales externos.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/Acopio-api/internal/application/usecase"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

var _ usecase.SummaryNotifier = (*TelegramNotifier)(nil)

// TelegramNotifier publica un mensaje en un chat de Telegram cada vez que se
// genera un resumen de jornada.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier inicializa el bot con el token dado. Devuelve error si
// el token no es válido ante la API de Telegram.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifySummary envía el detalle del cierre al chat configurado.
func (n *TelegramNotifier) NotifySummary(_ context.Context, depotName string, summary *entity.DailySummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Cierre de jornada — %s\n", depotName)
	fmt.Fprintf(&b, "Jornada: %s\n", summary.BucketKey)
	for _, d := range summary.Details {
		fmt.Fprintf(&b, "• %s: %s kg — $%s\n", d.CommodityTypeID, d.TotalWeight.String(), d.TotalCost.String())
	}
	fmt.Fprintf(&b, "Total: $%s", summary.TotalAmount.String())

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// NopNotifier descarta los avisos. Se usa cuando no hay token configurado.
type NopNotifier struct{}

func (NopNotifier) NotifySummary(context.Context, string, *entity.DailySummary) error { return nil }
