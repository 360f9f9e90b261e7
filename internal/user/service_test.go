package user

import (
	"context"
	"testing"

	"github.com/hitoshi/projman/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	findByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	findByTelegramIDFn func(ctx context.Context, telegramID int64) (*model.User, error)
	createFn           func(ctx context.Context, user *model.User) error
	updateFn           func(ctx context.Context, user *model.User) error
	updateActiveFn     func(ctx context.Context, id int64, active bool) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if m.findByTelegramIDFn != nil {
		return m.findByTelegramIDFn(ctx, telegramID)
	}
	return nil, nil
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) UpdateActive(ctx context.Context, id int64, active bool) error {
	if m.updateActiveFn != nil {
		return m.updateActiveFn(ctx, id, active)
	}
	return nil
}

// --- テスト ---

// TestService_Resolve_CreatesNewUser は初回接触でユーザーが自動作成されることを検証する。
func TestService_Resolve_CreatesNewUser(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}

	svc := NewService(repo)
	u, err := svc.Resolve(context.Background(), model.TelegramUser{
		TelegramID: 500,
		Username:   "taro",
		FirstName:  "Taro",
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if !u.IsActive {
		t.Error("new user should be active")
	}
	if u.TelegramID != 500 || u.Username != "taro" {
		t.Errorf("user = %+v, want telegram_id 500 / username taro", u)
	}
}

// TestService_Resolve_UpdatesChangedInfo は表示情報の差分だけ更新されることを検証する。
func TestService_Resolve_UpdatesChangedInfo(t *testing.T) {
	updateCalled := false
	repo := &mockUserRepo{
		findByTelegramIDFn: func(ctx context.Context, telegramID int64) (*model.User, error) {
			return &model.User{ID: 1, TelegramID: telegramID, Username: "old_name", FirstName: "Taro", IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			updateCalled = true
			return nil
		},
	}

	svc := NewService(repo)
	u, err := svc.Resolve(context.Background(), model.TelegramUser{
		TelegramID: 500,
		Username:   "new_name",
		FirstName:  "Taro",
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if !updateCalled {
		t.Error("expected Update to be called for changed username")
	}
	if u.Username != "new_name" {
		t.Errorf("Username = %q, want new_name", u.Username)
	}
}

// TestService_Resolve_NoWriteWhenUnchanged は差分なしでは書き込みが
// 発生しないことを検証する。
func TestService_Resolve_NoWriteWhenUnchanged(t *testing.T) {
	updateCalled := false
	repo := &mockUserRepo{
		findByTelegramIDFn: func(ctx context.Context, telegramID int64) (*model.User, error) {
			return &model.User{ID: 1, TelegramID: telegramID, Username: "taro", FirstName: "Taro", IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			updateCalled = true
			return nil
		},
	}

	svc := NewService(repo)
	if _, err := svc.Resolve(context.Background(), model.TelegramUser{
		TelegramID: 500,
		Username:   "taro",
		FirstName:  "Taro",
	}); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if updateCalled {
		t.Error("Update must not be called when nothing changed")
	}
}

// TestService_Deactivate は無効化フラグの更新を検証する。
func TestService_Deactivate(t *testing.T) {
	var gotID int64
	var gotActive bool
	repo := &mockUserRepo{
		updateActiveFn: func(ctx context.Context, id int64, active bool) error {
			gotID = id
			gotActive = active
			return nil
		},
	}

	svc := NewService(repo)
	if err := svc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	if gotID != 1 || gotActive != false {
		t.Errorf("UpdateActive(%d, %v), want (1, false)", gotID, gotActive)
	}
}
