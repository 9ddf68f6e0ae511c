package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/handler"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/metrics"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/httputil"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
)

// TraceIDHeader はトレースIDを運ぶヘッダ名。
const TraceIDHeader = "X-Trace-ID"

// unmatchedRoute はどのルートにも一致しなかったリクエストのメトリクスラベル。
const unmatchedRoute = "unmatched"

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。
// ヘッダが無い場合はUUIDを生成し、レスポンスヘッダにも設定する。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(handler.TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はリクエストログを出力する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Debug("request completed",
			logging.WithTraceID(c.GetString(handler.TraceIDKey)),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logging.WithSrcIP(c.ClientIP()),
			logging.WithHTTPStatus(c.Writer.Status()),
			logging.WithLatency(time.Since(start).Milliseconds()),
		)
	}
}

// MetricsMiddleware はリクエスト数とレイテンシを記録する。
// ラベルにはIMSIを含まないルートテンプレートを使う。
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				traceID := c.GetString(handler.TraceIDKey)
				slog.Error("panic recovered",
					logging.WithTraceID(traceID),
					"error", err,
				)
				httputil.AbortWithError(c,
					httputil.InternalServerError("An unexpected error occurred").
						WithInstance(c.Request.URL.Path, traceID))
			}
		}()
		c.Next()
	}
}

// notFound は未定義ルートに対するProblemDetailレスポンスを返す。
func notFound(c *gin.Context) {
	httputil.WriteError(c, httputil.NotFound("no route for "+c.Request.Method+" "+c.Request.URL.Path).
		WithInstance(c.Request.URL.Path, c.GetString(handler.TraceIDKey)))
}

// methodNotAllowed は許可されていないメソッドに対するレスポンスを返す。
func methodNotAllowed(c *gin.Context) {
	httputil.WriteError(c, httputil.NewProblemDetail(http.StatusMethodNotAllowed, "").
		WithInstance(c.Request.URL.Path, c.GetString(handler.TraceIDKey)))
}
