package model

import "time"

// ProjectStatus はプロジェクトのライフサイクル状態を表す。
type ProjectStatus string

const (
	// ProjectStatusActive は通常の利用可能状態を示す。
	ProjectStatusActive ProjectStatus = "ACTIVE"
	// ProjectStatusArchived はアーカイブ済み状態を示す。Unarchiveで復帰できる。
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
	// ProjectStatusDeleted は論理削除済み状態を示す。終端状態であり復帰できない。
	ProjectStatusDeleted ProjectStatus = "DELETED"
)

// Valid はステータス値が定義済みのものかを返す。
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusDeleted:
		return true
	}
	return false
}

// Project はユーザーが所有するワークスペースレコードを表す。
// (UserID, Name) の組はステータスに関わらず一意。アーカイブ済み・
// 削除済みプロジェクトの名前も再利用できない（意図された仕様）。
type Project struct {
	ID               int64
	UserID           int64
	Name             string
	Description      string
	WorkingDirectory string
	Status           ProjectStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
