package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/security"
)

// CurrentHandler は /current コマンドを処理する。
// 現在選択中のプロジェクトの詳細を表示する。選択中のプロジェクトが
// アーカイブ・削除されている場合は未選択として扱われる。
type CurrentHandler struct {
	sessions  SessionService
	sanitizer security.TextSanitizer
	sender    Sender
}

// NewCurrentHandler はCurrentHandlerを生成する。
func NewCurrentHandler(sessions SessionService, sanitizer security.TextSanitizer, sender Sender) *CurrentHandler {
	return &CurrentHandler{sessions: sessions, sanitizer: sanitizer, sender: sender}
}

func (h *CurrentHandler) Command() string { return "current" }

func (h *CurrentHandler) Description() string { return "現在のプロジェクトを表示する" }

func (h *CurrentHandler) Handle(ctx context.Context, msg *Message, user *model.User, _ string) error {
	project, err := h.sessions.GetCurrentProject(ctx, user.ID)
	if err != nil {
		return err
	}
	if project == nil {
		h.sender.SendText(msg.ChatID, "プロジェクトが選択されていません。/projects で選択できます。")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "現在のプロジェクト: %s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(&b, "説明: %s\n", h.sanitizer.Sanitize(project.Description))
	}
	if project.WorkingDirectory != "" {
		fmt.Fprintf(&b, "作業ディレクトリ: %s\n", h.sanitizer.Sanitize(project.WorkingDirectory))
	}
	fmt.Fprintf(&b, "作成日時: %s", project.CreatedAt.Format("2006-01-02 15:04"))

	h.sender.SendText(msg.ChatID, b.String())
	return nil
}
