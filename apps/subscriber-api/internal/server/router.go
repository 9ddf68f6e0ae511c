package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/handler"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/metrics"
)

// SetupRouter はルーティングを設定する。m がnilの場合 /metrics は公開しない。
func SetupRouter(engine *gin.Engine, h *handler.SubscriberHandler, m *metrics.Metrics) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(notFound)
	engine.NoMethod(methodNotAllowed)

	// ヘルスチェック
	engine.GET("/health", h.HandleHealth)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/schema", h.HandleSchema)

		subs := v1.Group("/subscribers")
		subs.GET("/template", h.HandleTemplate)
		subs.POST("/validate", h.HandleValidate)
		subs.GET("", h.HandleList)
		subs.POST("", h.HandleCreate)
		subs.GET("/:imsi", h.HandleGet)
		subs.PUT("/:imsi", h.HandleUpdate)
		subs.DELETE("/:imsi", h.HandleDelete)
	}
}
