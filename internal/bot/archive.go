package bot

import (
	"context"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// ArchiveHandler は /archive コマンドを処理する。
// 対象が現在選択中のプロジェクトであれば、ステータス変更後に
// セッションの選択を解除する。選択状態の判定はステータスを
// 変更する前に行う。
type ArchiveHandler struct {
	projects ProjectService
	sessions SessionService
	sender   Sender
}

// NewArchiveHandler はArchiveHandlerを生成する。
func NewArchiveHandler(projects ProjectService, sessions SessionService, sender Sender) *ArchiveHandler {
	return &ArchiveHandler{projects: projects, sessions: sessions, sender: sender}
}

func (h *ArchiveHandler) Command() string { return "archive" }

func (h *ArchiveHandler) Description() string { return "プロジェクトをアーカイブする" }

func (h *ArchiveHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	name, _ := splitCommand(args)
	if name == "" {
		return model.NewInvalidArgumentError("使い方: /archive <プロジェクト名>")
	}

	project, err := h.projects.FindByName(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return model.NewProjectNotFoundError(name)
	}
	if project.Status == model.ProjectStatusArchived {
		h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」はすでにアーカイブ済みです。", project.Name))
		return nil
	}

	// ステータス変更前に選択状態を確定する
	session, err := h.sessions.GetOrCreate(ctx, user.ID)
	if err != nil {
		return err
	}
	wasCurrent := session.CurrentProjectID != nil && *session.CurrentProjectID == project.ID

	if err := h.projects.Archive(ctx, project.ID); err != nil {
		return err
	}
	if wasCurrent {
		if err := h.sessions.ClearCurrentProject(ctx, user.ID); err != nil {
			return err
		}
	}

	h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」をアーカイブしました。", project.Name))
	return nil
}
