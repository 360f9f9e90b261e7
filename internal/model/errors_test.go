package model

import (
	"errors"
	"fmt"
	"testing"
)

// TestAsBotError はBotErrorの取り出しを検証する。ラップされていても取り出せる。
func TestAsBotError(t *testing.T) {
	be := NewDuplicateNameError("alpha")

	if got := AsBotError(be); got == nil || got.Code != ErrCodeDuplicateName {
		t.Errorf("AsBotError(direct) = %+v, want DUPLICATE_NAME", got)
	}

	wrapped := fmt.Errorf("failed to create project: %w", be)
	if got := AsBotError(wrapped); got == nil || got.Code != ErrCodeDuplicateName {
		t.Errorf("AsBotError(wrapped) = %+v, want DUPLICATE_NAME", got)
	}

	if got := AsBotError(errors.New("plain")); got != nil {
		t.Errorf("AsBotError(plain) = %+v, want nil", got)
	}
	if got := AsBotError(nil); got != nil {
		t.Errorf("AsBotError(nil) = %+v, want nil", got)
	}
}

// TestIsCode はコード判定を検証する。
func TestIsCode(t *testing.T) {
	err := NewProjectNotFoundError("ghost")

	if !IsCode(err, ErrCodeProjectNotFound) {
		t.Error("expected IsCode to match PROJECT_NOT_FOUND")
	}
	if IsCode(err, ErrCodeForbidden) {
		t.Error("expected IsCode not to match FORBIDDEN")
	}
	if IsCode(errors.New("plain"), ErrCodeProjectNotFound) {
		t.Error("expected IsCode to be false for non-BotError")
	}
}

// TestConstructors は各コンストラクタのコードとカテゴリを検証する。
func TestConstructors(t *testing.T) {
	tests := []struct {
		err      *BotError
		code     string
		category string
	}{
		{NewUnauthorizedError(), ErrCodeUnauthorized, "auth"},
		{NewDuplicateNameError("a"), ErrCodeDuplicateName, "project"},
		{NewProjectNotFoundError("a"), ErrCodeProjectNotFound, "project"},
		{NewForbiddenError(), ErrCodeForbidden, "auth"},
		{NewInvalidArgumentError("reason"), ErrCodeInvalidArgument, "validation"},
		{NewInvalidStateError("msg"), ErrCodeInvalidState, "project"},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
		}
		if tt.err.Category != tt.category {
			t.Errorf("%s: Category = %q, want %q", tt.code, tt.err.Category, tt.category)
		}
		if tt.err.Message == "" || tt.err.Action == "" {
			t.Errorf("%s: Message and Action must be populated", tt.code)
		}
	}
}

// TestProjectStatus_Valid はステータス値の検証を確認する。
func TestProjectStatus_Valid(t *testing.T) {
	valid := []ProjectStatus{ProjectStatusActive, ProjectStatusArchived, ProjectStatusDeleted}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ProjectStatus("PENDING").Valid() {
		t.Error("PENDING should be invalid")
	}
	if ProjectStatus("").Valid() {
		t.Error("empty status should be invalid")
	}
}

// TestSession_HasCurrentProject はポインタ有無の判定を検証する。
func TestSession_HasCurrentProject(t *testing.T) {
	s := &Session{}
	if s.HasCurrentProject() {
		t.Error("empty session should have no current project")
	}

	id := int64(42)
	s.CurrentProjectID = &id
	if !s.HasCurrentProject() {
		t.Error("session with pointer should have a current project")
	}
}
