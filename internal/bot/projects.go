package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/projman/internal/model"
)

// ProjectsHandler は /projects コマンドを処理する。
// ACTIVEとARCHIVEDのプロジェクト一覧を表示し、現在選択中の
// プロジェクトに印を付ける。選択キーボードはACTIVEのみから組み立てる。
type ProjectsHandler struct {
	projects ProjectService
	sessions SessionService
	sender   Sender
}

// NewProjectsHandler はProjectsHandlerを生成する。
func NewProjectsHandler(projects ProjectService, sessions SessionService, sender Sender) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, sessions: sessions, sender: sender}
}

func (h *ProjectsHandler) Command() string { return "projects" }

func (h *ProjectsHandler) Description() string { return "プロジェクト一覧を表示する" }

func (h *ProjectsHandler) Handle(ctx context.Context, msg *Message, user *model.User, _ string) error {
	active, err := h.projects.ListActive(ctx, user.ID)
	if err != nil {
		return err
	}
	archived, err := h.projects.ListArchived(ctx, user.ID)
	if err != nil {
		return err
	}

	if len(active) == 0 && len(archived) == 0 {
		h.sender.SendText(msg.ChatID, "プロジェクトがありません。/newproject で作成できます。")
		return nil
	}

	current, err := h.sessions.GetCurrentProject(ctx, user.ID)
	if err != nil {
		return err
	}

	var currentID int64
	if current != nil {
		currentID = current.ID
	}

	var b strings.Builder
	if len(active) > 0 {
		b.WriteString("アクティブなプロジェクト:\n")
		for _, p := range active {
			marker := ""
			if p.ID == currentID {
				marker = " ← 選択中"
			}
			fmt.Fprintf(&b, "・%s%s\n", p.Name, marker)
		}
	}
	if len(archived) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("アーカイブ済みのプロジェクト:\n")
		for _, p := range archived {
			fmt.Fprintf(&b, "・%s\n", p.Name)
		}
	}

	if len(active) > 0 {
		b.WriteString("\n切り替えるプロジェクトを選択してください:")
		h.sender.SendTextWithKeyboard(msg.ChatID, b.String(), SelectionKeyboard(active))
		return nil
	}

	h.sender.SendText(msg.ChatID, b.String())
	return nil
}
