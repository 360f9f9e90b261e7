package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/projman/internal/auth"
	"github.com/hitoshi/projman/internal/metrics"
)

// Dispatcher は受信した更新を適切なルーターへ振り分ける。
// 1件の更新の処理中に起きるパニックはここで回収し、
// ボット全体の消費を止めない。
type Dispatcher struct {
	gate      *auth.Gate
	limiter   *RateLimiter
	commands  *Router
	callbacks *CallbackRouter
	sender    Sender
	metrics   metrics.Recorder
}

// NewDispatcher はDispatcherを生成する。
func NewDispatcher(gate *auth.Gate, limiter *RateLimiter, commands *Router, callbacks *CallbackRouter, sender Sender, rec metrics.Recorder) *Dispatcher {
	return &Dispatcher{
		gate:      gate,
		limiter:   limiter,
		commands:  commands,
		callbacks: callbacks,
		sender:    sender,
		metrics:   rec,
	}
}

// Dispatch は1件の更新を処理する。更新の並び順を保つため、
// 呼び出し元は更新を逐次渡すこと。
func (d *Dispatcher) Dispatch(ctx context.Context, update *Update) {
	start := time.Now()
	updateID := uuid.New().String()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while handling update",
				slog.String("update_id", updateID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			d.metrics.RecordHandlerError("panic")
			if chatID, ok := updateChatID(update); ok {
				d.sender.SendText(chatID, "エラーが発生しました。もう一度お試しください。")
			}
		}
		d.metrics.RecordHandleLatency(time.Since(start))
	}()

	switch {
	case update.Message != nil:
		d.dispatchMessage(ctx, updateID, update.Message)
	case update.Callback != nil:
		d.dispatchCallback(ctx, updateID, update.Callback)
	default:
		slog.Debug("ignoring update without message or callback",
			slog.String("update_id", updateID),
		)
	}
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, updateID string, msg *Message) {
	d.metrics.RecordUpdate("message")

	if !d.gate.IsAllowed(msg.From.TelegramID) {
		d.metrics.RecordUnauthorized()
		slog.Warn("unauthorized user",
			slog.String("update_id", updateID),
			slog.Int64("telegram_id", msg.From.TelegramID),
		)
		d.sender.SendText(msg.ChatID, "このボットを利用する権限がありません。")
		return
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, CommandMarker) {
		// コマンド以外のテキストは扱わない
		slog.Debug("ignoring non-command message",
			slog.String("update_id", updateID),
			slog.Int64("telegram_id", msg.From.TelegramID),
		)
		return
	}

	if !d.limiter.Allow(msg.From.TelegramID) {
		d.metrics.RecordRateLimited()
		slog.Warn("rate limit exceeded",
			slog.String("update_id", updateID),
			slog.Int64("telegram_id", msg.From.TelegramID),
		)
		d.sender.SendText(msg.ChatID, "リクエストが多すぎます。しばらく待ってから再度お試しください。")
		return
	}

	d.commands.Route(ctx, msg)
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, updateID string, cb *Callback) {
	d.metrics.RecordUpdate("callback")

	if !d.gate.IsAllowed(cb.From.TelegramID) {
		d.metrics.RecordUnauthorized()
		slog.Warn("unauthorized user",
			slog.String("update_id", updateID),
			slog.Int64("telegram_id", cb.From.TelegramID),
		)
		d.sender.AnswerCallback(cb.ID, "このボットを利用する権限がありません。")
		return
	}

	if !d.limiter.Allow(cb.From.TelegramID) {
		d.metrics.RecordRateLimited()
		slog.Warn("rate limit exceeded",
			slog.String("update_id", updateID),
			slog.Int64("telegram_id", cb.From.TelegramID),
		)
		d.sender.AnswerCallback(cb.ID, "リクエストが多すぎます。しばらく待ってから再度お試しください。")
		return
	}

	d.callbacks.Route(ctx, cb)
}

// updateChatID は更新の返信先チャットIDを取り出す。
func updateChatID(update *Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.ChatID, true
	case update.Callback != nil:
		return update.Callback.ChatID, true
	default:
		return 0, false
	}
}
