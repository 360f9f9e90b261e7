package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
type PostgresSessionRepo struct {
	db *sql.DB
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

// FindByUserID は指定ユーザーのセッションを取得する。見つからない場合はnilを返す。
func (r *PostgresSessionRepo) FindByUserID(ctx context.Context, userID int64) (*model.Session, error) {
	session := &model.Session{}
	var currentProject sql.NullInt64
	var state, stateData sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, current_project_id, state, state_data, last_activity_at, created_at, updated_at
		 FROM user_sessions WHERE user_id = $1`,
		userID,
	).Scan(
		&session.ID, &session.UserID, &currentProject, &state, &stateData,
		&session.LastActivityAt, &session.CreatedAt, &session.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if currentProject.Valid {
		session.CurrentProjectID = &currentProject.Int64
	}
	session.State = state.String
	session.StateData = stateData.String

	return session, nil
}

// Create は空のセッションを作成し、採番されたIDをsessionに書き戻す。
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_sessions (user_id)
		 VALUES ($1)
		 RETURNING id, last_activity_at, created_at, updated_at`,
		session.UserID,
	).Scan(&session.ID, &session.LastActivityAt, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// UpdateCurrentProject はカレントプロジェクトのポインタを更新する。
// projectIDがnilの場合はNULL（未選択）として保存される。
func (r *PostgresSessionRepo) UpdateCurrentProject(ctx context.Context, userID int64, projectID *int64) error {
	var value sql.NullInt64
	if projectID != nil {
		value = sql.NullInt64{Int64: *projectID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE user_sessions
		 SET current_project_id = $2, last_activity_at = now(), updated_at = now()
		 WHERE user_id = $1`,
		userID, value,
	)
	if err != nil {
		return fmt.Errorf("failed to update current project: %w", err)
	}
	return nil
}

// UpdateState は一時状態タグと状態データを更新する。
// 空文字列はNULLとして保存される。
func (r *PostgresSessionRepo) UpdateState(ctx context.Context, userID int64, state, stateData string) error {
	toNull := func(s string) sql.NullString {
		if s == "" {
			return sql.NullString{}
		}
		return sql.NullString{String: s, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE user_sessions
		 SET state = $2, state_data = $3, last_activity_at = now(), updated_at = now()
		 WHERE user_id = $1`,
		userID, toNull(state), toNull(stateData),
	)
	if err != nil {
		return fmt.Errorf("failed to update session state: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
