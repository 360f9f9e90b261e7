// Package project はプロジェクトライフサイクルのドメインロジックを提供する。
//
// ステータス遷移: 作成時ACTIVE、ACTIVE ⇄ ARCHIVEDは明示的な遷移、
// 任意の状態 → DELETEDは一方向の終端遷移（論理削除）。
//
// 所有権の検証はこのサービスでは行わない。プロジェクトIDを指定する
// 変更系操作の呼び出し元（コマンド層・コールバック層）が
// project.UserID == user.ID を確認してから呼び出すことが契約である。
package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/repository"
)

// Service はプロジェクトライフサイクルのサービス層。
type Service struct {
	projectRepo repository.ProjectRepository
}

// NewService はServiceを生成する。
func NewService(projectRepo repository.ProjectRepository) *Service {
	return &Service{projectRepo: projectRepo}
}

// FindByID は指定IDのプロジェクトを取得する。
// 見つからない場合（論理削除済み含む）はnilを返す。
func (s *Service) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// FindByName は所有ユーザーと名前でプロジェクトを検索する。
// 論理削除済みのプロジェクトは対象外。見つからない場合はnilを返す。
func (s *Service) FindByName(ctx context.Context, userID int64, name string) (*model.Project, error) {
	return s.projectRepo.FindByUserAndName(ctx, userID, name)
}

// ListActive はACTIVEなプロジェクト一覧を返す。
func (s *Service) ListActive(ctx context.Context, userID int64) ([]*model.Project, error) {
	return s.projectRepo.ListByUserAndStatus(ctx, userID, model.ProjectStatusActive)
}

// ListArchived はアーカイブ済みプロジェクト一覧を返す。
func (s *Service) ListArchived(ctx context.Context, userID int64) ([]*model.Project, error) {
	return s.projectRepo.ListByUserAndStatus(ctx, userID, model.ProjectStatusArchived)
}

// Create はプロジェクトをACTIVEステータスで作成する。
// (userID, name)が既に存在する場合はDuplicateNameのBotErrorを返す。
// 重複判定は論理削除済みを含む全ステータスが対象であり、一度使った
// 名前は削除後も再利用できない（意図された仕様）。
// 事前チェックと挿入の間の競合はDBの一意制約がリポジトリ層で塞ぐ。
func (s *Service) Create(ctx context.Context, userID int64, name, description string) (*model.Project, error) {
	exists, err := s.projectRepo.ExistsByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate name: %w", err)
	}
	if exists {
		return nil, model.NewDuplicateNameError(name)
	}

	p := &model.Project{
		UserID:      userID,
		Name:        name,
		Description: description,
		Status:      model.ProjectStatusActive,
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("created project",
		slog.Int64("user_id", userID),
		slog.String("name", name),
	)
	return p, nil
}

// Update はプロジェクトの名前・説明を更新する。
// 名前を変更する場合は変更後の名前の重複をチェックする。
func (s *Service) Update(ctx context.Context, projectID int64, name, description string) (*model.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewProjectNotFoundError(fmt.Sprintf("id=%d", projectID))
	}

	if name != "" && name != p.Name {
		exists, err := s.projectRepo.ExistsByUserAndName(ctx, p.UserID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check duplicate name: %w", err)
		}
		if exists {
			return nil, model.NewDuplicateNameError(name)
		}
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("updated project", slog.Int64("project_id", projectID))
	return p, nil
}

// Archive はプロジェクトをARCHIVEDに遷移させる。
// 既にARCHIVEDの場合のガードは呼び出し元の責務であり、
// ここでは無条件にステータスを設定する。
func (s *Service) Archive(ctx context.Context, projectID int64) error {
	if err := s.projectRepo.UpdateStatus(ctx, projectID, model.ProjectStatusArchived); err != nil {
		return err
	}
	slog.Info("archived project", slog.Int64("project_id", projectID))
	return nil
}

// Unarchive はプロジェクトをACTIVEに遷移させる。
func (s *Service) Unarchive(ctx context.Context, projectID int64) error {
	if err := s.projectRepo.UpdateStatus(ctx, projectID, model.ProjectStatusActive); err != nil {
		return err
	}
	slog.Info("unarchived project", slog.Int64("project_id", projectID))
	return nil
}

// SoftDelete はプロジェクトをDELETEDに遷移させる。
// DELETEDは終端状態であり、どの操作でもここから復帰させることはできない。
// 行は保持され、一覧・検索からは除外される。
func (s *Service) SoftDelete(ctx context.Context, projectID int64) error {
	if err := s.projectRepo.UpdateStatus(ctx, projectID, model.ProjectStatusDeleted); err != nil {
		return err
	}
	slog.Info("soft deleted project", slog.Int64("project_id", projectID))
	return nil
}

// HardDelete はプロジェクトの行を物理削除する。運用ツール専用。
func (s *Service) HardDelete(ctx context.Context, projectID int64) error {
	if err := s.projectRepo.DeleteByID(ctx, projectID); err != nil {
		return err
	}
	slog.Info("hard deleted project", slog.Int64("project_id", projectID))
	return nil
}

// SetWorkingDirectory はプロジェクトの作業ディレクトリを設定する。
func (s *Service) SetWorkingDirectory(ctx context.Context, projectID int64, path string) (*model.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewProjectNotFoundError(fmt.Sprintf("id=%d", projectID))
	}

	p.WorkingDirectory = path
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("set working directory",
		slog.Int64("project_id", projectID),
		slog.String("working_directory", path),
	)
	return p, nil
}
