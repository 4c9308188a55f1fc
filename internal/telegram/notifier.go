package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/logger"
)

type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) NotifySignal(action, pair string, price, target float64, confidence int, reasoning string) {
	emoji := "🟢"
	if action == "SELL" {
		emoji = "🔴"
	}
	msg := fmt.Sprintf("%s *%s* %s\nPrice: %.6g\nTarget: %.6g\nConfidence: %d\n%s",
		emoji, action, pair, price, target, confidence, reasoning)
	n.send(msg)
}

func (n *Notifier) NotifyFeeSurge(p50, previous int64, capacityUsage float64) {
	msg := fmt.Sprintf("⚠️ *Fee surge*\np50 charged: %d stroops (was %d)\nLedger capacity usage: %.2f",
		p50, previous, capacityUsage)
	n.send(msg)
}

func (n *Notifier) NotifyError(context string, err error) {
	msg := fmt.Sprintf("⚠️ *Error* [%s]\n%v", context, err)
	n.send(msg)
}

func (n *Notifier) NotifyStatus(message string) {
	n.send(message)
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
