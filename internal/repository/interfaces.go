// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/projman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByTelegramID はTelegram IDでユーザーを検索する。見つからない場合はnilを返す。
	FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDとタイムスタンプをuserに書き戻す。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの表示情報（username, first/last name, language code）を更新する。
	Update(ctx context.Context, user *model.User) error

	// UpdateActive はユーザーの有効フラグを更新する。
	UpdateActive(ctx context.Context, id int64, active bool) error
}

// ProjectRepository はプロジェクトデータの永続化インターフェース。
type ProjectRepository interface {
	// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
	// 論理削除済み（DELETED）のプロジェクトは返さない。
	FindByID(ctx context.Context, id int64) (*model.Project, error)

	// FindByUserAndName は所有ユーザーと名前でプロジェクトを検索する。
	// 論理削除済みのプロジェクトは返さない。見つからない場合はnilを返す。
	FindByUserAndName(ctx context.Context, userID int64, name string) (*model.Project, error)

	// ExistsByUserAndName は(userID, name)のプロジェクトが存在するかを返す。
	// 重複名チェック用であり、DELETEDを含む全ステータスを対象とする。
	ExistsByUserAndName(ctx context.Context, userID int64, name string) (bool, error)

	// ListByUserAndStatus は指定ステータスのプロジェクト一覧を作成日時順で返す。
	ListByUserAndStatus(ctx context.Context, userID int64, status model.ProjectStatus) ([]*model.Project, error)

	// Create はプロジェクトを作成し、採番されたIDとタイムスタンプをprojectに書き戻す。
	// (userID, name)の一意制約に違反した場合はDuplicateNameのBotErrorを返す。
	Create(ctx context.Context, project *model.Project) error

	// Update はプロジェクトの名前・説明・作業ディレクトリを更新する。
	Update(ctx context.Context, project *model.Project) error

	// UpdateStatus はプロジェクトのステータスを無条件に更新する。
	// 対象が存在しない場合はProjectNotFoundのBotErrorを返す。
	UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error

	// DeleteByID はプロジェクトの行を物理削除する。運用ツール専用であり、
	// 通常のライフサイクルでは使用しない（削除は常に論理削除）。
	DeleteByID(ctx context.Context, id int64) error
}

// SessionRepository はセッションデータの永続化インターフェース。
// セッションはユーザーごとに1件のみ保持される。
type SessionRepository interface {
	// FindByUserID は指定ユーザーのセッションを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID int64) (*model.Session, error)

	// Create は空のセッションを作成し、採番されたIDをsessionに書き戻す。
	Create(ctx context.Context, session *model.Session) error

	// UpdateCurrentProject はカレントプロジェクトのポインタを更新する。
	// projectIDがnilの場合はポインタを解除する。
	UpdateCurrentProject(ctx context.Context, userID int64, projectID *int64) error

	// UpdateState は一時状態タグと状態データを更新する。
	// 両方空文字列の場合はNULLとして保存される。
	UpdateState(ctx context.Context, userID int64, state, stateData string) error
}
