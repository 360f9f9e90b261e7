package bot

import (
	"fmt"

	"github.com/hitoshi/projman/internal/model"
)

// コールバックデータのアクションプレフィックス。
// "action:id" 形式でプロジェクトIDを埋め込み、サーバー側に
// 確認待ちの状態を持たない。
const (
	ActionSelectProject = "select_project"
	ActionConfirmDelete = "confirm_delete"
	ActionCancelDelete  = "cancel_delete"
)

// SelectionKeyboard はACTIVEプロジェクトの選択キーボードを組み立てる。
// 1行1プロジェクトで、ボタンのデータに "select_project:<id>" を持つ。
func SelectionKeyboard(projects []*model.Project) Keyboard {
	keyboard := make(Keyboard, 0, len(projects))
	for _, p := range projects {
		keyboard = append(keyboard, []Button{{
			Label: p.Name,
			Data:  fmt.Sprintf("%s:%d", ActionSelectProject, p.ID),
		}})
	}
	return keyboard
}

// ConfirmDeleteKeyboard は削除確認キーボードを組み立てる。
// 対象のプロジェクトIDは確認ボタンのデータに埋め込まれるため、
// 複数の確認ダイアログが並行しても取り違えは起きない。
func ConfirmDeleteKeyboard(projectID int64) Keyboard {
	return Keyboard{
		{
			{Label: "はい、削除する", Data: fmt.Sprintf("%s:%d", ActionConfirmDelete, projectID)},
			{Label: "キャンセル", Data: ActionCancelDelete},
		},
	}
}
