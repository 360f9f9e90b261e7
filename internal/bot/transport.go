// Package bot はコマンド・コールバックのディスパッチ層と
// プロジェクト管理のボットロジックを提供する。
//
// トランスポート（Telegram API）とはこのファイルの境界型だけで
// やり取りし、トランスポート固有のペイロードは扱わない。
package bot

import "github.com/hitoshi/projman/internal/model"

// Button はインラインキーボードの1ボタンを表す。
// Dataにはコールバックトークン（"<action>:<argument>" または単独の
// センチネル）を格納する。トークンは操作と対象を自己記述するため、
// 表示後にサーバー状態が変化してもボタン単体で解決できる。
type Button struct {
	Label string
	Data  string
}

// Keyboard はインラインキーボードのボタン配置（行×列）を表す。
type Keyboard [][]Button

// Message はトランスポートから受信したテキストメッセージを表す。
type Message struct {
	ChatID int64
	From   model.TelegramUser
	Text   string
}

// Callback はトランスポートから受信したコールバックイベントを表す。
type Callback struct {
	ID     string
	ChatID int64
	From   model.TelegramUser
	Data   string
}

// Update はトランスポートから受信した1件の更新イベントを表す。
// MessageとCallbackのどちらか一方のみが設定される。
type Update struct {
	Message  *Message
	Callback *Callback
}

// Sender はトランスポートへの送信インターフェース。
// 送信失敗は実装側でログに記録され、呼び出し元へは伝播しない
// （送信失敗がドメイン操作の成否を変えることはない）。
type Sender interface {
	// SendText はテキストメッセージを送信する。
	SendText(chatID int64, text string)

	// SendTextWithKeyboard はインラインキーボード付きのテキストメッセージを送信する。
	SendTextWithKeyboard(chatID int64, text string, keyboard Keyboard)

	// AnswerCallback はコールバッククエリに応答し、クライアントの
	// ローディング表示を解除する。textが空でない場合は通知として表示する。
	AnswerCallback(callbackID, text string)
}
