package bot

import (
	"context"
	"time"

	"github.com/hitoshi/projman/internal/model"
)

// --- モック ---

type mockResolver struct {
	resolveFn func(ctx context.Context, tu model.TelegramUser) (*model.User, error)
}

func (m *mockResolver) Resolve(ctx context.Context, tu model.TelegramUser) (*model.User, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, tu)
	}
	return &model.User{ID: 1, TelegramID: tu.TelegramID, FirstName: tu.FirstName, Username: tu.Username, IsActive: true}, nil
}

type mockProjectService struct {
	findByIDFn            func(ctx context.Context, id int64) (*model.Project, error)
	findByNameFn          func(ctx context.Context, userID int64, name string) (*model.Project, error)
	listActiveFn          func(ctx context.Context, userID int64) ([]*model.Project, error)
	listArchivedFn        func(ctx context.Context, userID int64) ([]*model.Project, error)
	createFn              func(ctx context.Context, userID int64, name, description string) (*model.Project, error)
	archiveFn             func(ctx context.Context, projectID int64) error
	unarchiveFn           func(ctx context.Context, projectID int64) error
	softDeleteFn          func(ctx context.Context, projectID int64) error
	setWorkingDirectoryFn func(ctx context.Context, projectID int64, path string) (*model.Project, error)
}

func (m *mockProjectService) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockProjectService) FindByName(ctx context.Context, userID int64, name string) (*model.Project, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, userID, name)
	}
	return nil, nil
}
func (m *mockProjectService) ListActive(ctx context.Context, userID int64) ([]*model.Project, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockProjectService) ListArchived(ctx context.Context, userID int64) ([]*model.Project, error) {
	if m.listArchivedFn != nil {
		return m.listArchivedFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockProjectService) Create(ctx context.Context, userID int64, name, description string) (*model.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name, description)
	}
	return &model.Project{ID: 1, UserID: userID, Name: name, Description: description, Status: model.ProjectStatusActive}, nil
}
func (m *mockProjectService) Archive(ctx context.Context, projectID int64) error {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, projectID)
	}
	return nil
}
func (m *mockProjectService) Unarchive(ctx context.Context, projectID int64) error {
	if m.unarchiveFn != nil {
		return m.unarchiveFn(ctx, projectID)
	}
	return nil
}
func (m *mockProjectService) SoftDelete(ctx context.Context, projectID int64) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, projectID)
	}
	return nil
}
func (m *mockProjectService) SetWorkingDirectory(ctx context.Context, projectID int64, path string) (*model.Project, error) {
	if m.setWorkingDirectoryFn != nil {
		return m.setWorkingDirectoryFn(ctx, projectID, path)
	}
	return nil, nil
}

type mockSessionService struct {
	getOrCreateFn         func(ctx context.Context, userID int64) (*model.Session, error)
	selectProjectFn       func(ctx context.Context, userID, projectID int64) error
	clearCurrentProjectFn func(ctx context.Context, userID int64) error
	getCurrentProjectFn   func(ctx context.Context, userID int64) (*model.Project, error)
}

func (m *mockSessionService) GetOrCreate(ctx context.Context, userID int64) (*model.Session, error) {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, userID)
	}
	return &model.Session{ID: 1, UserID: userID}, nil
}
func (m *mockSessionService) SelectProject(ctx context.Context, userID, projectID int64) error {
	if m.selectProjectFn != nil {
		return m.selectProjectFn(ctx, userID, projectID)
	}
	return nil
}
func (m *mockSessionService) ClearCurrentProject(ctx context.Context, userID int64) error {
	if m.clearCurrentProjectFn != nil {
		return m.clearCurrentProjectFn(ctx, userID)
	}
	return nil
}
func (m *mockSessionService) GetCurrentProject(ctx context.Context, userID int64) (*model.Project, error) {
	if m.getCurrentProjectFn != nil {
		return m.getCurrentProjectFn(ctx, userID)
	}
	return nil, nil
}

// mockSender は送信内容を記録するbot.Senderの実装。
type mockSender struct {
	texts     []sentText
	keyboards []sentKeyboard
	answered  []sentAnswer
}

type sentText struct {
	chatID int64
	text   string
}

type sentKeyboard struct {
	chatID   int64
	text     string
	keyboard Keyboard
}

type sentAnswer struct {
	callbackID string
	text       string
}

func (m *mockSender) SendText(chatID int64, text string) {
	m.texts = append(m.texts, sentText{chatID: chatID, text: text})
}

func (m *mockSender) SendTextWithKeyboard(chatID int64, text string, keyboard Keyboard) {
	m.keyboards = append(m.keyboards, sentKeyboard{chatID: chatID, text: text, keyboard: keyboard})
}

func (m *mockSender) AnswerCallback(callbackID, text string) {
	m.answered = append(m.answered, sentAnswer{callbackID: callbackID, text: text})
}

func (m *mockSender) lastText() string {
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1].text
}

// mockRecorder は何も記録しないmetrics.Recorderの実装。
type mockRecorder struct{}

func (mockRecorder) RecordUpdate(string)               {}
func (mockRecorder) RecordCommand(string)              {}
func (mockRecorder) RecordCallback(string)             {}
func (mockRecorder) RecordHandlerError(string)         {}
func (mockRecorder) RecordUnauthorized()               {}
func (mockRecorder) RecordRateLimited()                {}
func (mockRecorder) RecordHandleLatency(time.Duration) {}

// mockSanitizer はsecurity.TextSanitizerの実装。
// sanitizeFnが未設定の場合は入力をそのまま返す。
type mockSanitizer struct {
	sanitizeFn func(raw string) string
}

func (m mockSanitizer) Sanitize(raw string) string {
	if m.sanitizeFn != nil {
		return m.sanitizeFn(raw)
	}
	return raw
}
