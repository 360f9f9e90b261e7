package model

import "time"

// Session はユーザーごとに1件保持されるセッションレコードを表す。
// CurrentProjectID はACTIVEなプロジェクトを指す場合のみ有効な
// 非所有参照で、0は未選択を意味しない（HasCurrentProjectで判定する）。
// State / StateData は将来のマルチステップフロー用に予約された
// 自由形式の一時状態。
type Session struct {
	ID                int64
	UserID            int64
	CurrentProjectID  *int64
	State             string
	StateData         string
	LastActivityAt    time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasCurrentProject はカレントプロジェクトのポインタが設定されているかを返す。
// 参照先のステータス検証は行わない（session.Serviceが読み取り時に検証する）。
func (s *Session) HasCurrentProject() bool {
	return s.CurrentProjectID != nil
}
