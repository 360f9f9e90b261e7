package bot

import (
	"context"

	"github.com/hitoshi/projman/internal/model"
)

// UserResolver は発信者情報をUserレコードへ解決するインターフェース。
type UserResolver interface {
	Resolve(ctx context.Context, tu model.TelegramUser) (*model.User, error)
}

// ProjectService はコマンド・コールバック層が利用する
// プロジェクトライフサイクル操作のインターフェース。
type ProjectService interface {
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	FindByName(ctx context.Context, userID int64, name string) (*model.Project, error)
	ListActive(ctx context.Context, userID int64) ([]*model.Project, error)
	ListArchived(ctx context.Context, userID int64) ([]*model.Project, error)
	Create(ctx context.Context, userID int64, name, description string) (*model.Project, error)
	Archive(ctx context.Context, projectID int64) error
	Unarchive(ctx context.Context, projectID int64) error
	SoftDelete(ctx context.Context, projectID int64) error
	SetWorkingDirectory(ctx context.Context, projectID int64, path string) (*model.Project, error)
}

// SessionService はコマンド・コールバック層が利用する
// セッション操作のインターフェース。
type SessionService interface {
	GetOrCreate(ctx context.Context, userID int64) (*model.Session, error)
	SelectProject(ctx context.Context, userID, projectID int64) error
	ClearCurrentProject(ctx context.Context, userID int64) error
	GetCurrentProject(ctx context.Context, userID int64) (*model.Project, error)
}
