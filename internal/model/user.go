// Package model はドメインモデルを定義する。
package model

import "time"

// User はボット利用ユーザーを表す。
// Telegramアカウントと1対1で対応し、初回接触時に自動作成される。
// レコードの削除は行わず、IsActiveフラグによる無効化のみ行う。
type User struct {
	ID           int64
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TelegramUser はトランスポートが供給する発信者情報を表す。
// トランスポート固有のペイロードをドメイン層へ持ち込まないための境界型。
type TelegramUser struct {
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}
