// Package telegram はTelegram Bot APIとのトランスポート層を提供する。
//
// botパッケージの境界型とTelegram APIのペイロードをここで相互変換し、
// ドメイン側がAPI固有の型に依存しないようにする。
package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hitoshi/projman/internal/bot"
)

// Client はbot.SenderのTelegram Bot API実装。
// 送信失敗はログに記録して握りつぶす。送信の失敗がドメイン操作を
// 巻き戻すことはなく、リトライはユーザーの再操作に委ねる。
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient はボットトークンで認証したClientを生成する。
func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}

	slog.Info("authenticated to telegram", slog.String("bot_username", api.Self.UserName))

	return &Client{api: api}, nil
}

var _ bot.Sender = (*Client)(nil)

// SendText はテキストメッセージをHTMLパースモードで送信する。
// ユーザー由来の文字列を埋め込む場合、呼び出し側で
// security.TextSanitizerを通してエスケープ済みであること。
func (c *Client) SendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := c.api.Send(msg); err != nil {
		slog.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// SendTextWithKeyboard はインラインキーボード付きのテキストメッセージを送信する。
func (c *Client) SendTextWithKeyboard(chatID int64, text string, keyboard bot.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = toInlineKeyboard(keyboard)
	if _, err := c.api.Send(msg); err != nil {
		slog.Error("failed to send message with keyboard",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// AnswerCallback はコールバッククエリに応答し、ローディング表示を解除する。
// textが空でない場合はクライアント上に通知として表示される。
func (c *Client) AnswerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := c.api.Request(callback); err != nil {
		slog.Error("failed to answer callback query",
			slog.String("callback_id", callbackID),
			slog.String("error", err.Error()),
		)
	}
}

// toInlineKeyboard はbot.KeyboardをTelegramのインラインキーボードへ変換する。
func toInlineKeyboard(keyboard bot.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
