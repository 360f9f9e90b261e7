package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/hitoshi/projman/internal/metrics"
	"github.com/hitoshi/projman/internal/model"
)

// CommandMarker はコマンドの先頭マーカー文字。
const CommandMarker = "/"

// Handler は1つのコマンドを処理するインターフェース。
type Handler interface {
	// Command はマーカーを含まないコマンド名を返す（例: "start"）。
	Command() string

	// Description はヘルプ表示用のコマンド説明を返す。
	Description() string

	// Handle はコマンドを実行する。userは解決済みの発信ユーザー、
	// argsはコマンド名より後のテキスト。
	// 想定内の失敗はmodel.BotErrorとして返すと、ルーターが
	// ユーザー向けメッセージへ変換して送信する。
	Handle(ctx context.Context, msg *Message, user *model.User, args string) error
}

// Router はコマンド名からハンドラーへのディスパッチを行う。
// レジストリは起動時に構築され、以降は読み取り専用として扱う。
type Router struct {
	resolver UserResolver
	sender   Sender
	metrics  metrics.Recorder

	handlers map[string]Handler
	ordered  []Handler // ヘルプ表示用の登録順
}

// NewRouter は空のレジストリを持つRouterを生成する。
func NewRouter(resolver UserResolver, sender Sender, rec metrics.Recorder) *Router {
	return &Router{
		resolver: resolver,
		sender:   sender,
		metrics:  rec,
		handlers: make(map[string]Handler),
	}
}

// Register はハンドラーをレジストリに登録する。
// コマンド名は小文字に正規化される。名前の重複は設定ミスであり、
// 起動時エラーとして返す。
func (r *Router) Register(h Handler) error {
	name := strings.ToLower(h.Command())
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("duplicate command handler: %s", name)
	}
	r.handlers[name] = h
	r.ordered = append(r.ordered, h)
	slog.Debug("registered command handler", slog.String("command", name))
	return nil
}

// Handlers はヘルプ表示用にハンドラーを登録順で返す。
func (r *Router) Handlers() []Handler {
	return r.ordered
}

// splitCommand はコマンドテキストをコマンドトークンと引数に分割する。
// 最初の連続する空白で分割し、引数の前後の空白は除去する。
func splitCommand(text string) (command, args string) {
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx:])
}

// normalizeCommand はコマンドトークンからマーカーと"@suffix"
// （グループチャットでのボット指定）を除去し、小文字へ正規化する。
func normalizeCommand(token string) string {
	name := strings.TrimPrefix(token, CommandMarker)
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}

// Route はコマンドテキストを解析し、対応するハンドラーを実行する。
// ハンドラー実行前に発信者をUserレコードへ解決するため、
// ハンドラーが生のTelegram IDを扱うことはない。
func (r *Router) Route(ctx context.Context, msg *Message) {
	token, args := splitCommand(strings.TrimSpace(msg.Text))
	command := normalizeCommand(token)

	handler, ok := r.handlers[command]
	if !ok {
		slog.Debug("unknown command", slog.String("command", command))
		r.sender.SendText(msg.ChatID, "不明なコマンドです。/help で利用可能なコマンドを確認してください。")
		return
	}

	user, err := r.resolver.Resolve(ctx, msg.From)
	if err != nil {
		slog.Error("failed to resolve user",
			slog.Int64("telegram_id", msg.From.TelegramID),
			slog.String("error", err.Error()),
		)
		r.sender.SendText(msg.ChatID, "エラーが発生しました。もう一度お試しください。")
		return
	}

	slog.Debug("routing command",
		slog.String("command", command),
		slog.Int64("user_id", user.ID),
	)
	r.metrics.RecordCommand(command)

	if err := handler.Handle(ctx, msg, user, args); err != nil {
		r.reportError(msg.ChatID, command, err)
	}
}

// reportError はハンドラーエラーをユーザー向けメッセージへ変換して送信する。
// BotError（想定内の失敗）はそのメッセージと対処方法を、
// それ以外（想定外の失敗）はログに残して汎用メッセージを送信する。
func (r *Router) reportError(chatID int64, command string, err error) {
	if be := model.AsBotError(err); be != nil {
		r.metrics.RecordHandlerError("expected")
		text := be.Message
		if be.Action != "" {
			text += "\n\n" + be.Action
		}
		r.sender.SendText(chatID, text)
		return
	}

	r.metrics.RecordHandlerError("unexpected")
	slog.Error("command handler failed",
		slog.String("command", command),
		slog.String("error", err.Error()),
	)
	r.sender.SendText(chatID, "エラーが発生しました。もう一度お試しください。")
}
