// Package main はsubscriber-apiのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/audit"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/config"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/handler"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/metrics"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/server"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/store"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/usecase"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/normalize"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/provision"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/valkey"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
)

const appName = "subscriber-api"

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting subscriber-api",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"metrics_enabled", cfg.MetricsEnabled,
		"audit_enabled", cfg.AuditEnabled,
	)

	// 3. Valkey接続
	opts := valkey.DefaultOptions().
		WithAddr(cfg.RedisAddr()).
		WithPassword(cfg.RedisPass)
	valkeyClient, err := valkey.NewClient(context.Background(), opts)
	if err != nil {
		slog.Error("failed to connect to Valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	// 4. 依存オブジェクト生成
	cat := catalog.Default()
	if _, err := cat.CompileSchema(); err != nil {
		slog.Error("invalid schema catalog", "error", err)
		os.Exit(1)
	}
	pipeline := provision.New(validate.New(cat), normalize.New())
	subscriberStore := store.NewSubscriberStore(valkeyClient)

	if count, err := subscriberStore.Count(context.Background()); err != nil {
		slog.Warn("failed to count subscribers", "error", err)
	} else {
		slog.Info("subscriber store ready", "subscriber_count", count)
	}

	auditLogger := audit.Nop()
	if cfg.AuditEnabled {
		auditLogger = audit.NewLogger(appName)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// ユースケース
	subscriberUseCase := usecase.NewSubscriberUseCase(
		subscriberStore,
		pipeline,
		auditLogger,
		m,
		cfg.PageSize,
	)

	// ハンドラー
	subscriberHandler := handler.NewSubscriberHandler(
		subscriberUseCase,
		cat,
		valkeyClient,
		logging.NewCommonFields(logging.NewMasker(cfg.LogMaskIMSI)),
	)

	// 5. サーバー起動
	srv := server.New(cfg, subscriberHandler, m)

	// 6. Graceful Shutdown設定
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 7. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler).With("app", appName)
	slog.SetDefault(logger)
}
