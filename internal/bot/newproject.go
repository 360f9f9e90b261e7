package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/security"
)

// projectNamePattern はプロジェクト名の許容形式。
// 英数字・アンダースコア・ハイフンのみ、1〜100文字。
var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// NewProjectHandler は /newproject コマンドを処理する。
// 作成に成功したプロジェクトは自動的に現在のプロジェクトとして選択される。
type NewProjectHandler struct {
	projects  ProjectService
	sessions  SessionService
	sanitizer security.TextSanitizer
	sender    Sender
}

// NewNewProjectHandler はNewProjectHandlerを生成する。
func NewNewProjectHandler(projects ProjectService, sessions SessionService, sanitizer security.TextSanitizer, sender Sender) *NewProjectHandler {
	return &NewProjectHandler{
		projects:  projects,
		sessions:  sessions,
		sanitizer: sanitizer,
		sender:    sender,
	}
}

func (h *NewProjectHandler) Command() string { return "newproject" }

func (h *NewProjectHandler) Description() string { return "新しいプロジェクトを作成する" }

func (h *NewProjectHandler) Handle(ctx context.Context, msg *Message, user *model.User, args string) error {
	name, description := splitCommand(args)
	if name == "" {
		return model.NewInvalidArgumentError("使い方: /newproject <名前> [説明]")
	}
	if !projectNamePattern.MatchString(name) {
		return model.NewInvalidArgumentError("プロジェクト名は英数字・アンダースコア・ハイフンのみ、100文字以内で指定してください。")
	}

	// 説明は受信したまま保存する。エスケープは表示時のみ行う。
	project, err := h.projects.Create(ctx, user.ID, name, description)
	if err != nil {
		return err
	}

	// 作成したプロジェクトを自動選択する
	if err := h.sessions.SelectProject(ctx, user.ID, project.ID); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "プロジェクト「%s」を作成しました。", project.Name)
	if project.Description != "" {
		fmt.Fprintf(&b, "\n説明: %s", h.sanitizer.Sanitize(project.Description))
	}
	b.WriteString("\n現在のプロジェクトとして選択されています。")

	h.sender.SendText(msg.ChatID, b.String())
	return nil
}
