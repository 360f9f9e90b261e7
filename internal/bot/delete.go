package bot

import (
	"context"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// DeleteHandler は /delete コマンドを処理する。
// ここでは確認キーボードを提示するだけで、実際の削除は
// confirm_deleteコールバックで行う。対象IDはボタンのデータに
// 埋め込まれるため、確認待ちの状態をサーバー側に持たない。
type DeleteHandler struct {
	projects ProjectService
	sender   Sender
}

// NewDeleteHandler はDeleteHandlerを生成する。
func NewDeleteHandler(projects ProjectService, sender Sender) *DeleteHandler {
	return &DeleteHandler{projects: projects, sender: sender}
}

func (h *DeleteHandler) Command() string { return "delete" }

func (h *DeleteHandler) Description() string { return "プロジェクトを削除する" }

func (h *DeleteHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	name, _ := splitCommand(args)
	if name == "" {
		return model.NewInvalidArgumentError("使い方: /delete <プロジェクト名>")
	}

	project, err := h.projects.FindByName(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return model.NewProjectNotFoundError(name)
	}

	text := fmt.Sprintf("プロジェクト「%s」を削除しますか？\nこの操作は取り消せません。", project.Name)
	h.sender.SendTextWithKeyboard(msg.ChatID, text, ConfirmDeleteKeyboard(project.ID))
	return nil
}
