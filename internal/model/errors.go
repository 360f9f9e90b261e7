package model

import (
	"errors"
	"fmt"
)

// BotError は統一エラーフォーマットを表す。
// ユーザーに表示する原因カテゴリと対処方法を含む。
// ここで定義されるエラーはすべて回復可能な想定内の失敗であり、
// ディスパッチ層がユーザー向けメッセージとして送信する。
type BotError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, project, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *BotError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeDuplicateName   = "DUPLICATE_NAME"
	ErrCodeProjectNotFound = "PROJECT_NOT_FOUND"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeUnknownCommand  = "UNKNOWN_COMMAND"
	ErrCodeUnknownAction   = "UNKNOWN_ACTION"
)

// AsBotError はerrをBotErrorとして取り出す。該当しない場合はnilを返す。
func AsBotError(err error) *BotError {
	var be *BotError
	if errors.As(err, &be) {
		return be
	}
	return nil
}

// IsCode はerrが指定コードのBotErrorかどうかを返す。
func IsCode(err error, code string) bool {
	be := AsBotError(err)
	return be != nil && be.Code == code
}

// NewUnauthorizedError は許可リスト外ユーザーのアクセスエラーを生成する。
func NewUnauthorizedError() *BotError {
	return &BotError{
		Code:     ErrCodeUnauthorized,
		Message:  "このボットを利用する権限がありません。",
		Category: "auth",
		Action:   "管理者に利用許可を依頼してください。",
	}
}

// NewDuplicateNameError は同名プロジェクトの重複作成エラーを生成する。
// アーカイブ済み・削除済みプロジェクトの名前も重複とみなされる。
func NewDuplicateNameError(name string) *BotError {
	return &BotError{
		Code:     ErrCodeDuplicateName,
		Message:  fmt.Sprintf("プロジェクト '%s' は既に存在します。", name),
		Category: "project",
		Action:   "別の名前を指定してください。",
	}
}

// NewProjectNotFoundError はプロジェクト未検出エラーを生成する。
func NewProjectNotFoundError(name string) *BotError {
	return &BotError{
		Code:     ErrCodeProjectNotFound,
		Message:  fmt.Sprintf("プロジェクト '%s' が見つかりません。", name),
		Category: "project",
		Action:   "/projects でプロジェクト一覧を確認してください。",
	}
}

// NewForbiddenError は他ユーザー所有リソースへの操作エラーを生成する。
func NewForbiddenError() *BotError {
	return &BotError{
		Code:     ErrCodeForbidden,
		Message:  "このプロジェクトを操作する権限がありません。",
		Category: "auth",
		Action:   "自分が作成したプロジェクトのみ操作できます。",
	}
}

// NewInvalidArgumentError は不正なコマンド引数・コールバックペイロードの
// エラーを生成する。
func NewInvalidArgumentError(reason string) *BotError {
	return &BotError{
		Code:     ErrCodeInvalidArgument,
		Message:  fmt.Sprintf("引数が不正です: %s", reason),
		Category: "validation",
		Action:   "/help でコマンドの使い方を確認してください。",
	}
}

// NewInvalidStateError は現在のステータスでは実行できない操作の
// エラーを生成する。
func NewInvalidStateError(message string) *BotError {
	return &BotError{
		Code:     ErrCodeInvalidState,
		Message:  message,
		Category: "project",
		Action:   "/projects でプロジェクトの状態を確認してください。",
	}
}
