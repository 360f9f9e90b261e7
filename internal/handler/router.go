// Package handler は運用系HTTPエンドポイントを提供する。
//
// ボット本体はTelegramのロングポーリングで動作するため、
// ここではヘルスチェックとメトリクス公開のみを扱う。
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/projman/internal/metrics"
)

// HealthChecker はヘルスチェックの依存を表すインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	Ping() error
}

// NewRouter は運用系エンドポイントのルーティングを構成したchi.Routerを返す。
//
//	GET /health  - DB接続を含むヘルスチェック
//	GET /metrics - Prometheusスクレイプ用メトリクス
func NewRouter(checker HealthChecker, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler(checker))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	return r
}

// healthHandler はDB接続を確認し、結果をJSONで返すハンドラーを返す。
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := checker.Ping(); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	}
}
