package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hitoshi/projman/internal/bot"
	"github.com/hitoshi/projman/internal/model"
)

// Poller はTelegram Bot APIのロングポーリングで更新を受信し、
// Dispatcherへ逐次渡す。1件ずつ処理するため、同一ユーザーの
// 操作は受信順に観測される。
type Poller struct {
	client      *Client
	dispatcher  *bot.Dispatcher
	pollTimeout int
}

// NewPoller はPollerを生成する。pollTimeoutはロングポーリングの
// 待機秒数。
func NewPoller(client *Client, dispatcher *bot.Dispatcher, pollTimeout int) *Poller {
	return &Poller{
		client:      client,
		dispatcher:  dispatcher,
		pollTimeout: pollTimeout,
	}
}

// Run はコンテキストがキャンセルされるまで更新を受信・処理し続ける。
func (p *Poller) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.pollTimeout

	updates := p.client.api.GetUpdatesChan(cfg)

	slog.Info("started polling for updates", slog.Int("timeout_sec", p.pollTimeout))

	for {
		select {
		case <-ctx.Done():
			p.client.api.StopReceivingUpdates()
			slog.Info("stopped polling for updates")
			return
		case update, ok := <-updates:
			if !ok {
				slog.Info("update channel closed")
				return
			}
			if converted := convertUpdate(update); converted != nil {
				p.dispatcher.Dispatch(ctx, converted)
			}
		}
	}
}

// convertUpdate はTelegramの更新をbotパッケージの境界型へ変換する。
// メッセージでもコールバックでもない更新にはnilを返す。
func convertUpdate(update tgbotapi.Update) *bot.Update {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return &bot.Update{
			Message: &bot.Message{
				ChatID: update.Message.Chat.ID,
				From:   convertUser(update.Message.From),
				Text:   update.Message.Text,
			},
		}
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return &bot.Update{
			Callback: &bot.Callback{
				ID:     update.CallbackQuery.ID,
				ChatID: update.CallbackQuery.Message.Chat.ID,
				From:   convertUser(update.CallbackQuery.From),
				Data:   update.CallbackQuery.Data,
			},
		}
	default:
		return nil
	}
}

// convertUser はTelegramのユーザー情報を境界型へ変換する。
func convertUser(u *tgbotapi.User) model.TelegramUser {
	return model.TelegramUser{
		TelegramID:   u.ID,
		Username:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
	}
}
