package bot

import (
	"context"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// SelectHandler は /select コマンドを処理する。
// 名前で指定されたACTIVEプロジェクトを現在のプロジェクトとして選択する。
type SelectHandler struct {
	projects ProjectService
	sessions SessionService
	sender   Sender
}

// NewSelectHandler はSelectHandlerを生成する。
func NewSelectHandler(projects ProjectService, sessions SessionService, sender Sender) *SelectHandler {
	return &SelectHandler{projects: projects, sessions: sessions, sender: sender}
}

func (h *SelectHandler) Command() string { return "select" }

func (h *SelectHandler) Description() string { return "プロジェクトを名前で選択する" }

func (h *SelectHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	name, _ := splitCommand(args)
	if name == "" {
		return model.NewInvalidArgumentError("使い方: /select <プロジェクト名>")
	}

	project, err := h.projects.FindByName(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return model.NewProjectNotFoundError(name)
	}
	if project.Status != model.ProjectStatusActive {
		return model.NewInvalidStateError(fmt.Sprintf("プロジェクト「%s」はアーカイブ済みです。先に /unarchive %s で復元してください。", project.Name, project.Name))
	}

	if err := h.sessions.SelectProject(ctx, user.ID, project.ID); err != nil {
		return err
	}

	h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」を選択しました。", project.Name))
	return nil
}
