package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/usecase"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/httputil"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/valkey"
)

// HandleSchema はGET /api/v1/schema のハンドラー。
func (h *SubscriberHandler) HandleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.JSONSchema())
}

// HandleTemplate はGET /api/v1/subscribers/template のハンドラー。
// 呼び出しごとに新しいKを生成する。
func (h *SubscriberHandler) HandleTemplate(c *gin.Context) {
	doc, err := h.cat.Template()
	if err != nil {
		h.handleError(c, "", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// HealthResponse はヘルスチェックのレスポンス。
type HealthResponse struct {
	Status string `json:"status"`
}

// HandleHealth はGET /health のハンドラー。
func (h *SubscriberHandler) HandleHealth(c *gin.Context) {
	if h.pinger != nil {
		if err := valkey.Probe(c.Request.Context(), h.pinger); err != nil {
			slog.Warn("health check failed",
				logging.WithTraceID(traceID(c)),
				logging.WithEventID(usecase.EventValkeyErr),
				logging.WithError(err),
			)
			h.writeProblem(c, httputil.ServiceUnavailable("valkey is unreachable"))
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
