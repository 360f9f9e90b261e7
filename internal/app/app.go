package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/projman/internal/auth"
	"github.com/hitoshi/projman/internal/bot"
	"github.com/hitoshi/projman/internal/config"
	"github.com/hitoshi/projman/internal/database"
	"github.com/hitoshi/projman/internal/handler"
	"github.com/hitoshi/projman/internal/logger"
	"github.com/hitoshi/projman/internal/metrics"
	"github.com/hitoshi/projman/internal/project"
	"github.com/hitoshi/projman/internal/repository"
	"github.com/hitoshi/projman/internal/security"
	"github.com/hitoshi/projman/internal/session"
	"github.com/hitoshi/projman/internal/telegram"
	"github.com/hitoshi/projman/internal/user"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.Bool("allowlist_enabled", len(cfg.AllowedTelegramIDs) > 0),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はボットサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、Telegramのロングポーリングと
// 運用系HTTPサーバーを起動する。SIGINTまたはSIGTERMシグナルを受信すると
// グレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	projectRepo := repository.NewPostgresProjectRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)

	// 3. ドメインサービスの初期化
	userService := user.NewService(userRepo)
	projectService := project.NewService(projectRepo)
	sessionService := session.NewService(sessionRepo, projectService)

	sanitizer := security.NewTextSanitizer()
	gate := auth.NewGate(cfg.AllowedTelegramIDs)

	// 4. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 5. Telegramクライアントの初期化
	client, err := telegram.NewClient(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram client: %w", err)
	}

	// 6. ディスパッチ層の構築
	commands := bot.NewRouter(userService, client, collector)
	handlers := []bot.Handler{
		bot.NewStartHandler(client),
		bot.NewHelpHandler(commands, client),
		bot.NewNewProjectHandler(projectService, sessionService, sanitizer, client),
		bot.NewProjectsHandler(projectService, sessionService, client),
		bot.NewSelectHandler(projectService, sessionService, client),
		bot.NewCurrentHandler(sessionService, sanitizer, client),
		bot.NewSetDirHandler(projectService, sessionService, sanitizer, client),
		bot.NewArchiveHandler(projectService, sessionService, client),
		bot.NewUnarchiveHandler(projectService, client),
		bot.NewDeleteHandler(projectService, client),
	}
	for _, h := range handlers {
		if err := commands.Register(h); err != nil {
			return fmt.Errorf("failed to register command handler: %w", err)
		}
	}

	callbacks := bot.NewCallbackRouter(userService, projectService, sessionService, client, collector)

	limiterCfg := bot.DefaultRateLimiterConfig()
	if cfg.RateLimitCommands > 0 {
		// config値はreq/min単位なのでreq/secに変換する
		limiterCfg.Rate = rate.Limit(float64(cfg.RateLimitCommands) / 60.0)
		limiterCfg.Burst = cfg.RateLimitCommands
	}
	limiter := bot.NewRateLimiter(limiterCfg)
	defer limiter.Stop()

	dispatcher := bot.NewDispatcher(gate, limiter, commands, callbacks, client, collector)

	// 7. 運用系HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler.NewRouter(db, registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("ops server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down bot...")
		cancel()
	}()

	// 8. ロングポーリングをメインgoroutineで実行（ブロッキング）
	poller := telegram.NewPoller(client, dispatcher, int(cfg.PollTimeout.Seconds()))
	poller.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("bot stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
