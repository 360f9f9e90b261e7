package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/projman/internal/model"
)

// pqUniqueViolation はPostgreSQLのunique_violationエラーコード。
const pqUniqueViolation = "23505"

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

const projectColumns = `id, user_id, name, description, working_directory, status, created_at, updated_at`

// scanProject は1行分のプロジェクトレコードを読み取る。
func scanProject(row *sql.Row) (*model.Project, error) {
	p := &model.Project{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.WorkingDirectory,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
// 論理削除済みのプロジェクトは返さない。
func (r *PostgresProjectRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND status <> $2`,
		id, model.ProjectStatusDeleted,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to find project by id: %w", err)
	}
	return p, nil
}

// FindByUserAndName は所有ユーザーと名前でプロジェクトを検索する。
// 論理削除済みのプロジェクトは返さない。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByUserAndName(ctx context.Context, userID int64, name string) (*model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = $1 AND name = $2 AND status <> $3`,
		userID, name, model.ProjectStatusDeleted,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to find project by name: %w", err)
	}
	return p, nil
}

// ExistsByUserAndName は(userID, name)のプロジェクトが存在するかを返す。
// DELETEDを含む全ステータスを対象とする（名前は論理削除後も再利用不可）。
func (r *PostgresProjectRepo) ExistsByUserAndName(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE user_id = $1 AND name = $2)`,
		userID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}

// ListByUserAndStatus は指定ステータスのプロジェクト一覧を作成日時順で返す。
func (r *PostgresProjectRepo) ListByUserAndStatus(ctx context.Context, userID int64, status model.ProjectStatus) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = $1 AND status = $2
		 ORDER BY created_at`,
		userID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p := &model.Project{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.WorkingDirectory,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// Create はプロジェクトを作成し、採番されたIDとタイムスタンプをprojectに書き戻す。
// (user_id, name)の一意制約違反はDuplicateNameのBotErrorに変換される。
// サービス層の事前チェックと重複するが、check-then-insertの競合を
// ここで確実に塞ぐ。
func (r *PostgresProjectRepo) Create(ctx context.Context, project *model.Project) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (user_id, name, description, working_directory, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		project.UserID, project.Name, project.Description,
		project.WorkingDirectory, project.Status,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.NewDuplicateNameError(project.Name)
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// Update はプロジェクトの名前・説明・作業ディレクトリを更新する。
func (r *PostgresProjectRepo) Update(ctx context.Context, project *model.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, working_directory = $4, updated_at = now()
		 WHERE id = $1`,
		project.ID, project.Name, project.Description, project.WorkingDirectory,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.NewDuplicateNameError(project.Name)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewProjectNotFoundError(project.Name)
	}
	return nil
}

// UpdateStatus はプロジェクトのステータスを無条件に更新する。
func (r *PostgresProjectRepo) UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewProjectNotFoundError(fmt.Sprintf("id=%d", id))
	}
	return nil
}

// DeleteByID はプロジェクトの行を物理削除する。運用ツール専用。
func (r *PostgresProjectRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
