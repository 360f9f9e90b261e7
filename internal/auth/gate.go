// Package auth は発信者の利用可否判定を提供する。
package auth

// Gate は設定された許可リストに基づいて、Telegramの発信者が
// ボットを利用できるかを判定する。
// 許可リストが空の場合は全ユーザーを許可する（オープンモード）。
type Gate struct {
	allowed map[int64]struct{}
}

// NewGate は許可リストからGateを生成する。
func NewGate(allowedIDs []int64) *Gate {
	allowed := make(map[int64]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = struct{}{}
	}
	return &Gate{allowed: allowed}
}

// IsAllowed は指定のTelegram IDがボットを利用できるかを返す。
// ユーザーレコードの存在は前提としない（未登録ユーザーも判定できる）。
func (g *Gate) IsAllowed(telegramID int64) bool {
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[telegramID]
	return ok
}

// Open は許可リストが空（オープンモード）かどうかを返す。
func (g *Gate) Open() bool {
	return len(g.allowed) == 0
}
