// Package server はHTTPサーバーの組み立てを提供する。
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/config"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/handler"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/metrics"
)

// Server はsubscriber-apiのHTTPサーバー。
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

// New は新しいServerを生成する。m がnilの場合メトリクスは無効。
func New(cfg *config.Config, h *handler.SubscriberHandler, m *metrics.Metrics) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(TraceIDMiddleware(), LoggingMiddleware())
	if m != nil {
		engine.Use(MetricsMiddleware(m))
	}
	engine.Use(RecoveryMiddleware())
	SetupRouter(engine, h, m)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はHTTPサーバーを起動する。Shutdown後は http.ErrServerClosed を返す。
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown はサーバーをGraceful Shutdownする。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
