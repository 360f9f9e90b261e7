package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/hitoshi/projman/internal/model"
)

// TestProjectsHandler_ListsWithSelectionMark は一覧表示と選択中マーク、
// ACTIVEのみから組まれる選択キーボードを検証する。
func TestProjectsHandler_ListsWithSelectionMark(t *testing.T) {
	projects := &mockProjectService{
		listActiveFn: func(ctx context.Context, userID int64) ([]*model.Project, error) {
			return []*model.Project{
				{ID: 1, UserID: userID, Name: "alpha", Status: model.ProjectStatusActive},
				{ID: 2, UserID: userID, Name: "beta", Status: model.ProjectStatusActive},
			}, nil
		},
		listArchivedFn: func(ctx context.Context, userID int64) ([]*model.Project, error) {
			return []*model.Project{
				{ID: 3, UserID: userID, Name: "old", Status: model.ProjectStatusArchived},
			}, nil
		},
	}
	sessions := &mockSessionService{
		getCurrentProjectFn: func(ctx context.Context, userID int64) (*model.Project, error) {
			return &model.Project{ID: 2, UserID: userID, Name: "beta", Status: model.ProjectStatusActive}, nil
		},
	}
	sender := &mockSender{}

	h := NewProjectsHandler(projects, sessions, sender)
	if err := h.Handle(context.Background(), testMessage("/projects"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.keyboards) != 1 {
		t.Fatalf("expected 1 keyboard message, got %d", len(sender.keyboards))
	}
	sent := sender.keyboards[0]

	for _, want := range []string{"alpha", "beta", "old"} {
		if !strings.Contains(sent.text, want) {
			t.Errorf("expected listing to contain %q, got %q", want, sent.text)
		}
	}
	if !strings.Contains(sent.text, "beta ← 選択中") {
		t.Errorf("expected current project to be marked, got %q", sent.text)
	}

	// キーボードはACTIVEの2件のみ
	if len(sent.keyboard) != 2 {
		t.Fatalf("expected 2 keyboard rows, got %d", len(sent.keyboard))
	}
	if sent.keyboard[0][0].Data != "select_project:1" || sent.keyboard[1][0].Data != "select_project:2" {
		t.Errorf("unexpected keyboard data: %+v", sent.keyboard)
	}
}

// TestProjectsHandler_Empty はプロジェクトなしでの案内を検証する。
func TestProjectsHandler_Empty(t *testing.T) {
	sender := &mockSender{}

	h := NewProjectsHandler(&mockProjectService{}, &mockSessionService{}, sender)
	if err := h.Handle(context.Background(), testMessage("/projects"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.keyboards) != 0 {
		t.Error("expected no keyboard when there are no projects")
	}
	if !strings.Contains(sender.lastText(), "/newproject") {
		t.Errorf("expected empty-state notice to suggest /newproject, got %q", sender.lastText())
	}
}

// TestProjectsHandler_ArchivedOnly はACTIVEが無い場合にキーボードを
// 出さないことを検証する。
func TestProjectsHandler_ArchivedOnly(t *testing.T) {
	projects := &mockProjectService{
		listArchivedFn: func(ctx context.Context, userID int64) ([]*model.Project, error) {
			return []*model.Project{
				{ID: 3, UserID: userID, Name: "old", Status: model.ProjectStatusArchived},
			}, nil
		},
	}
	sender := &mockSender{}

	h := NewProjectsHandler(projects, &mockSessionService{}, sender)
	if err := h.Handle(context.Background(), testMessage("/projects"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.keyboards) != 0 {
		t.Error("expected no selection keyboard without active projects")
	}
	if !strings.Contains(sender.lastText(), "old") {
		t.Errorf("expected archived listing, got %q", sender.lastText())
	}
}

// TestHelpHandler_ListsRegisteredCommands はヘルプが登録順で全コマンドを
// 列挙することを検証する。
func TestHelpHandler_ListsRegisteredCommands(t *testing.T) {
	sender := &mockSender{}
	router := NewRouter(&mockResolver{}, sender, mockRecorder{})

	help := NewHelpHandler(router, sender)
	handlers := []Handler{
		&stubHandler{command: "start", description: "ボットを開始する"},
		help,
		&stubHandler{command: "projects", description: "プロジェクト一覧を表示する"},
	}
	for _, h := range handlers {
		if err := router.Register(h); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	if err := help.Handle(context.Background(), testMessage("/help"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	got := sender.lastText()
	startIdx := strings.Index(got, "/start")
	helpIdx := strings.Index(got, "/help")
	projectsIdx := strings.Index(got, "/projects")
	if startIdx < 0 || helpIdx < 0 || projectsIdx < 0 {
		t.Fatalf("expected all commands listed, got %q", got)
	}
	if !(startIdx < helpIdx && helpIdx < projectsIdx) {
		t.Errorf("expected registration order, got %q", got)
	}
}

// TestStartHandler_Greets は挨拶メッセージを検証する。
func TestStartHandler_Greets(t *testing.T) {
	sender := &mockSender{}

	h := NewStartHandler(sender)
	if err := h.Handle(context.Background(), testMessage("/start"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	got := sender.lastText()
	if !strings.Contains(got, "Taro") {
		t.Errorf("expected greeting to use first name, got %q", got)
	}
	if !strings.Contains(got, "/help") {
		t.Errorf("expected greeting to mention /help, got %q", got)
	}
}
