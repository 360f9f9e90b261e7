package bot

import (
	"context"
	"strings"

	"github.com/hitoshi/projman/internal/model"
)

// HelpHandler は /help コマンドを処理する。
// ヘルプ本文はルーターのレジストリから登録順に生成するため、
// コマンドの追加・削除で本文を書き換える必要はない。
type HelpHandler struct {
	router *Router
	sender Sender
}

// NewHelpHandler はHelpHandlerを生成する。
func NewHelpHandler(router *Router, sender Sender) *HelpHandler {
	return &HelpHandler{router: router, sender: sender}
}

func (h *HelpHandler) Command() string { return "help" }

func (h *HelpHandler) Description() string { return "コマンド一覧を表示する" }

func (h *HelpHandler) Handle(_ context.Context, msg *Message, _ *model.User, _ string) error {
	var b strings.Builder
	b.WriteString("利用可能なコマンド:\n\n")
	for _, handler := range h.router.Handlers() {
		b.WriteString(CommandMarker)
		b.WriteString(handler.Command())
		b.WriteString(" - ")
		b.WriteString(handler.Description())
		b.WriteString("\n")
	}

	h.sender.SendText(msg.ChatID, b.String())
	return nil
}
