package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/hitoshi/projman/internal/model"
)

// TestSelectHandler_SelectsByName は名前指定での選択を検証する。
func TestSelectHandler_SelectsByName(t *testing.T) {
	projects := &mockProjectService{
		findByNameFn: func(ctx context.Context, userID int64, name string) (*model.Project, error) {
			return &model.Project{ID: 42, UserID: userID, Name: name, Status: model.ProjectStatusActive}, nil
		},
	}
	var selectedID int64
	sessions := &mockSessionService{
		selectProjectFn: func(ctx context.Context, userID, projectID int64) error {
			selectedID = projectID
			return nil
		},
	}
	sender := &mockSender{}

	h := NewSelectHandler(projects, sessions, sender)
	if err := h.Handle(context.Background(), testMessage("/select alpha"), testUser(), "alpha"); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if selectedID != 42 {
		t.Errorf("selected project = %d, want 42", selectedID)
	}
	if !strings.Contains(sender.lastText(), "alpha") {
		t.Errorf("expected confirmation to name the project, got %q", sender.lastText())
	}
}

// TestSelectHandler_Archived はアーカイブ済みプロジェクトの選択が
// 復元の案内付きで拒否されることを検証する。
func TestSelectHandler_Archived(t *testing.T) {
	projects := &mockProjectService{
		findByNameFn: func(ctx context.Context, userID int64, name string) (*model.Project, error) {
			return &model.Project{ID: 42, UserID: userID, Name: name, Status: model.ProjectStatusArchived}, nil
		},
	}
	selectCalled := false
	sessions := &mockSessionService{
		selectProjectFn: func(ctx context.Context, userID, projectID int64) error {
			selectCalled = true
			return nil
		},
	}

	h := NewSelectHandler(projects, sessions, &mockSender{})
	err := h.Handle(context.Background(), testMessage("/select alpha"), testUser(), "alpha")

	if !model.IsCode(err, model.ErrCodeInvalidState) {
		t.Errorf("expected INVALID_STATE, got %v", err)
	}
	if be := model.AsBotError(err); be == nil || !strings.Contains(be.Message, "/unarchive") {
		t.Errorf("expected message to suggest /unarchive, got %v", err)
	}
	if selectCalled {
		t.Error("SelectProject must not be called for an archived project")
	}
}

// TestSelectHandler_NotFound は存在しない名前で未検出エラーが返ることを検証する。
// 削除済みプロジェクトの名前も検索にかからないため、同じ結果になる。
func TestSelectHandler_NotFound(t *testing.T) {
	h := NewSelectHandler(&mockProjectService{}, &mockSessionService{}, &mockSender{})

	err := h.Handle(context.Background(), testMessage("/select ghost"), testUser(), "ghost")
	if !model.IsCode(err, model.ErrCodeProjectNotFound) {
		t.Errorf("expected PROJECT_NOT_FOUND, got %v", err)
	}
}

// TestSelectHandler_MissingName は名前なしで使い方が案内されることを検証する。
func TestSelectHandler_MissingName(t *testing.T) {
	h := NewSelectHandler(&mockProjectService{}, &mockSessionService{}, &mockSender{})

	err := h.Handle(context.Background(), testMessage("/select"), testUser(), "")
	if !model.IsCode(err, model.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

// TestCurrentHandler_ShowsDetails は選択中プロジェクトの詳細表示を検証する。
func TestCurrentHandler_ShowsDetails(t *testing.T) {
	sessions := &mockSessionService{
		getCurrentProjectFn: func(ctx context.Context, userID int64) (*model.Project, error) {
			return &model.Project{
				ID: 42, UserID: userID, Name: "alpha",
				Description:      "first project",
				WorkingDirectory: "/srv/alpha",
				Status:           model.ProjectStatusActive,
			}, nil
		},
	}
	sender := &mockSender{}

	h := NewCurrentHandler(sessions, mockSanitizer{}, sender)
	if err := h.Handle(context.Background(), testMessage("/current"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	got := sender.lastText()
	for _, want := range []string{"alpha", "first project", "/srv/alpha"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected details to contain %q, got %q", want, got)
		}
	}
}

// TestCurrentHandler_NoSelection は未選択状態での案内を検証する。
// 選択後にアーカイブ・削除されたプロジェクトも未選択として扱われる。
func TestCurrentHandler_NoSelection(t *testing.T) {
	sender := &mockSender{}

	h := NewCurrentHandler(&mockSessionService{}, mockSanitizer{}, sender)
	if err := h.Handle(context.Background(), testMessage("/current"), testUser(), ""); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if !strings.Contains(sender.lastText(), "選択されていません") {
		t.Errorf("expected no-selection notice, got %q", sender.lastText())
	}
}
