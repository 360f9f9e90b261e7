package bot

import (
	"context"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// StartHandler は /start コマンドを処理する。
// ユーザー登録はルーターのResolveで済んでいるため、
// ここでは挨拶とコマンド案内のみを送信する。
type StartHandler struct {
	sender Sender
}

// NewStartHandler はStartHandlerを生成する。
func NewStartHandler(sender Sender) *StartHandler {
	return &StartHandler{sender: sender}
}

func (h *StartHandler) Command() string { return "start" }

func (h *StartHandler) Description() string { return "ボットを開始する" }

func (h *StartHandler) Handle(_ context.Context, msg *Message, user *model.User, _ string) error {
	name := user.FirstName
	if name == "" {
		name = user.Username
	}

	text := fmt.Sprintf(
		"こんにちは、%sさん！\nプロジェクト管理ボットへようこそ。\n\n/newproject でプロジェクトを作成できます。\n/help でコマンド一覧を表示します。",
		name,
	)
	h.sender.SendText(msg.ChatID, text)
	return nil
}
