package bot

import (
	"context"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// UnarchiveHandler は /unarchive コマンドを処理する。
// アーカイブ済みのプロジェクトをACTIVEへ戻す。
type UnarchiveHandler struct {
	projects ProjectService
	sender   Sender
}

// NewUnarchiveHandler はUnarchiveHandlerを生成する。
func NewUnarchiveHandler(projects ProjectService, sender Sender) *UnarchiveHandler {
	return &UnarchiveHandler{projects: projects, sender: sender}
}

func (h *UnarchiveHandler) Command() string { return "unarchive" }

func (h *UnarchiveHandler) Description() string { return "アーカイブ済みのプロジェクトを復元する" }

func (h *UnarchiveHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	name, _ := splitCommand(args)
	if name == "" {
		return model.NewInvalidArgumentError("使い方: /unarchive <プロジェクト名>")
	}

	project, err := h.projects.FindByName(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return model.NewProjectNotFoundError(name)
	}
	if project.Status == model.ProjectStatusActive {
		h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」はすでにアクティブです。", project.Name))
		return nil
	}

	if err := h.projects.Unarchive(ctx, project.ID); err != nil {
		return err
	}

	h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」を復元しました。/select %s で選択できます。", project.Name, project.Name))
	return nil
}
