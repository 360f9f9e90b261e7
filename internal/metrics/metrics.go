// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// ディスパッチ層から利用する。
type Recorder interface {
	RecordUpdate(updateType string)
	RecordCommand(command string)
	RecordCallback(action string)
	RecordHandlerError(kind string)
	RecordUnauthorized()
	RecordRateLimited()
	RecordHandleLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	updates       *prometheus.CounterVec
	commands      *prometheus.CounterVec
	callbacks     *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	unauthorized  prometheus.Counter
	rateLimited   prometheus.Counter
	handleLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projman_updates_total",
			Help: "受信した更新イベントの種別ごとの合計数",
		}, []string{"type"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projman_commands_total",
			Help: "実行されたコマンドの合計数",
		}, []string{"command"}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projman_callbacks_total",
			Help: "処理されたコールバックアクションの合計数",
		}, []string{"action"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projman_handler_errors_total",
			Help: "ハンドラーエラーの種別ごとの合計数（expected/unexpected）",
		}, []string{"kind"}),
		unauthorized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projman_unauthorized_total",
			Help: "許可リスト外ユーザーからのアクセス試行の合計数",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projman_rate_limited_total",
			Help: "レート制限により拒否されたコマンドの合計数",
		}),
		handleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "projman_handle_latency_seconds",
			Help:    "更新イベント1件の処理レイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.updates,
		c.commands,
		c.callbacks,
		c.handlerErrors,
		c.unauthorized,
		c.rateLimited,
		c.handleLatency,
	)

	return c
}

// RecordUpdate は更新イベントの受信を記録する。
func (c *Collector) RecordUpdate(updateType string) {
	c.updates.WithLabelValues(updateType).Inc()
}

// RecordCommand はコマンドの実行を記録する。
func (c *Collector) RecordCommand(command string) {
	c.commands.WithLabelValues(command).Inc()
}

// RecordCallback はコールバックアクションの処理を記録する。
func (c *Collector) RecordCallback(action string) {
	c.callbacks.WithLabelValues(action).Inc()
}

// RecordHandlerError はハンドラーエラーを記録する。
func (c *Collector) RecordHandlerError(kind string) {
	c.handlerErrors.WithLabelValues(kind).Inc()
}

// RecordUnauthorized は許可リスト外ユーザーのアクセス試行を記録する。
func (c *Collector) RecordUnauthorized() {
	c.unauthorized.Inc()
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// RecordHandleLatency は更新イベント処理のレイテンシを記録する。
func (c *Collector) RecordHandleLatency(duration time.Duration) {
	c.handleLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
