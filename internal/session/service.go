// Package session はユーザーセッションのドメインロジックを提供する。
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/repository"
)

// ProjectFinder はカレントプロジェクトの解決に必要な読み取りインターフェース。
type ProjectFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Project, error)
}

// Service はセッション管理のサービス層。
// ユーザーごとに1件のセッションを初回利用時に作成し、
// カレントプロジェクトのポインタと一時状態を管理する。
type Service struct {
	sessionRepo repository.SessionRepository
	projects    ProjectFinder
}

// NewService はServiceを生成する。
func NewService(sessionRepo repository.SessionRepository, projects ProjectFinder) *Service {
	return &Service{sessionRepo: sessionRepo, projects: projects}
}

// GetOrCreate は既存セッションを返す。存在しない場合は空のセッションを作成する。
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*model.Session, error) {
	existing, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	session := &model.Session{UserID: userID}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("created session", slog.Int64("user_id", userID))
	return session, nil
}

// SelectProject はカレントプロジェクトのポインタを設定する。
// 対象プロジェクトがACTIVEであることと所有権の検証は行わない。
// 呼び出し元（コマンド層・コールバック層）が検証してから呼び出すこと。
func (s *Service) SelectProject(ctx context.Context, userID, projectID int64) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return fmt.Errorf("failed to ensure session: %w", err)
	}
	if err := s.sessionRepo.UpdateCurrentProject(ctx, userID, &projectID); err != nil {
		return err
	}
	slog.Info("selected project",
		slog.Int64("user_id", userID),
		slog.Int64("project_id", projectID),
	)
	return nil
}

// ClearCurrentProject はカレントプロジェクトのポインタを解除する。
func (s *Service) ClearCurrentProject(ctx context.Context, userID int64) error {
	if err := s.sessionRepo.UpdateCurrentProject(ctx, userID, nil); err != nil {
		return err
	}
	slog.Info("cleared current project", slog.Int64("user_id", userID))
	return nil
}

// GetCurrentProject はカレントプロジェクトを解決して返す。
// 参照先のプロジェクトが現在ACTIVEである場合のみ返し、それ以外
// （選択後にアーカイブ・削除された場合を含む）は未選択として
// nilを返す。保存されたポインタ自体は書き換えない（遅延無効化）。
func (s *Service) GetCurrentProject(ctx context.Context, userID int64) (*model.Project, error) {
	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.HasCurrentProject() {
		return nil, nil
	}

	p, err := s.projects.FindByID(ctx, *session.CurrentProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != model.ProjectStatusActive {
		return nil, nil
	}
	return p, nil
}

// SetState は一時状態タグと状態データを設定する。
// 将来のマルチステップフロー用であり、プロジェクト選択とは独立している。
func (s *Service) SetState(ctx context.Context, userID int64, state, stateData string) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return fmt.Errorf("failed to ensure session: %w", err)
	}
	if err := s.sessionRepo.UpdateState(ctx, userID, state, stateData); err != nil {
		return err
	}
	slog.Debug("updated session state",
		slog.Int64("user_id", userID),
		slog.String("state", state),
	)
	return nil
}

// GetState は一時状態タグを返す。セッションが存在しない場合は空文字列を返す。
func (s *Service) GetState(ctx context.Context, userID int64) (string, error) {
	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}
	return session.State, nil
}

// GetStateData は状態データを返す。セッションが存在しない場合は空文字列を返す。
func (s *Service) GetStateData(ctx context.Context, userID int64) (string, error) {
	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}
	return session.StateData, nil
}

// ClearState は一時状態を解除する。
func (s *Service) ClearState(ctx context.Context, userID int64) error {
	if err := s.sessionRepo.UpdateState(ctx, userID, "", ""); err != nil {
		return err
	}
	slog.Debug("cleared session state", slog.Int64("user_id", userID))
	return nil
}
