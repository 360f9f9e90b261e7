package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/security"
)

// SetDirHandler は /setdir コマンドを処理する。
// 現在選択中のプロジェクトに作業ディレクトリの絶対パスを設定する。
type SetDirHandler struct {
	projects  ProjectService
	sessions  SessionService
	sanitizer security.TextSanitizer
	sender    Sender
}

// NewSetDirHandler はSetDirHandlerを生成する。
func NewSetDirHandler(projects ProjectService, sessions SessionService, sanitizer security.TextSanitizer, sender Sender) *SetDirHandler {
	return &SetDirHandler{
		projects:  projects,
		sessions:  sessions,
		sanitizer: sanitizer,
		sender:    sender,
	}
}

func (h *SetDirHandler) Command() string { return "setdir" }

func (h *SetDirHandler) Description() string { return "現在のプロジェクトに作業ディレクトリを設定する" }

func (h *SetDirHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	path := strings.TrimSpace(args)
	if path == "" {
		return model.NewInvalidArgumentError("使い方: /setdir <絶対パス>")
	}
	if !strings.HasPrefix(path, "/") {
		return model.NewInvalidArgumentError("作業ディレクトリは絶対パスで指定してください。")
	}

	current, err := h.sessions.GetCurrentProject(ctx, user.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return model.NewInvalidStateError("プロジェクトが選択されていません。/projects で選択してください。")
	}

	// パスは受信したまま保存する。エスケープは表示時のみ行う。
	project, err := h.projects.SetWorkingDirectory(ctx, current.ID, path)
	if err != nil {
		return err
	}

	h.sender.SendText(msg.ChatID, fmt.Sprintf("プロジェクト「%s」の作業ディレクトリを設定しました:\n%s", project.Name, h.sanitizer.Sanitize(project.WorkingDirectory)))
	return nil
}
