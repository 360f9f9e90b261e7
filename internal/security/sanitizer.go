// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizer はユーザー入力（プロジェクト名・説明・ディレクトリパス等）を
// Telegramへ送信するHTMLメッセージに埋め込む前にサニタイズし、
// マークアップの混入による表示崩れや偽装を防ぐ。
// bluemondayライブラリの全タグ除去ポリシーを使用する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer はユーザー入力テキストのサニタイズ機能のインターフェース。
type TextSanitizer interface {
	// Sanitize は全てのHTMLタグを除去し、特殊文字をエスケープした
	// テキストを返す。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerの新しいインスタンスを生成する。
// StrictPolicyは全ての要素と属性を許可しないため、タグはすべて除去され、
// テキストに含まれる & < > 等はHTMLエンティティとしてエスケープされる。
func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize は全てのHTMLタグを除去したテキストを返す。
func (s *textSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
