// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/usecase"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/httputil"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/valkey"
)

const (
	// TraceIDKey はコンテキストにTraceIDを格納するキー。
	TraceIDKey = "trace_id"
	// AdminUserHeader は操作者を示すリクエストヘッダ。
	AdminUserHeader = "X-Admin-User"
	// MaxBodyBytes はリクエストボディの上限。
	MaxBodyBytes = 1 << 20
)

// SubscriberHandler は加入者APIのハンドラー。
type SubscriberHandler struct {
	useCase usecase.SubscriberUseCaseInterface
	cat     *catalog.Catalog
	pinger  valkey.Pinger
	fields  *logging.CommonFields
}

// NewSubscriberHandler は新しいSubscriberHandlerを生成する。
func NewSubscriberHandler(
	useCase usecase.SubscriberUseCaseInterface,
	cat *catalog.Catalog,
	pinger valkey.Pinger,
	fields *logging.CommonFields,
) *SubscriberHandler {
	if cat == nil {
		cat = catalog.Default()
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &SubscriberHandler{
		useCase: useCase,
		cat:     cat,
		pinger:  pinger,
		fields:  fields,
	}
}

// traceID はコンテキストからトレースIDを取り出す。
func traceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

// newRequest はボディを読み込んでユースケース用の要求を組み立てる。
// 失敗した場合はエラーレスポンスを書き込み nil を返す。
func (h *SubscriberHandler) newRequest(c *gin.Context, withBody bool) *usecase.Request {
	req := &usecase.Request{
		Admin:   c.GetHeader(AdminUserHeader),
		TraceID: traceID(c),
	}
	if !withBody {
		return req
	}

	if ct := c.ContentType(); ct != "" && ct != gin.MIMEJSON {
		h.writeProblem(c, httputil.UnsupportedMediaType("content type must be application/json"))
		return nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeProblem(c, httputil.RequestEntityTooLarge("request body exceeds 1 MiB"))
			return nil
		}
		h.writeProblem(c, httputil.BadRequest("failed to read request body"))
		return nil
	}
	req.Body = body
	return req
}

// handleError はエラーレスポンスを処理する。
func (h *SubscriberHandler) handleError(c *gin.Context, imsi string, err error) {
	cause := err
	var pe *usecase.ProblemError
	if errors.As(err, &pe) {
		cause = pe.Cause
	} else {
		pe = usecase.ErrInternal
	}

	attrs := h.fields.SubscriberLogFields(traceID(c), pe.EventID, imsi)
	attrs = append(attrs, logging.WithHTTPStatus(pe.Status))
	if n := len(pe.InvalidParams); n > 0 {
		attrs = append(attrs, logging.WithViolationCount(n))
	}
	if cause != nil && pe.Status >= http.StatusInternalServerError {
		attrs = append(attrs, logging.WithError(cause))
	}
	slog.Log(c.Request.Context(), pe.LogLevel(), pe.Message, attrs...)

	h.writeProblem(c, pe.ToProblemDetail())
}

func (h *SubscriberHandler) writeProblem(c *gin.Context, p *httputil.ProblemDetail) {
	httputil.WriteError(c, p.WithInstance(c.Request.URL.Path, traceID(c)))
}

// logSuccess は成功時のログを出力する。
func (h *SubscriberHandler) logSuccess(c *gin.Context, msg, eventID, imsi string, status int) {
	attrs := h.fields.SubscriberLogFields(traceID(c), eventID, imsi)
	attrs = append(attrs,
		logging.WithAdmin(c.GetHeader(AdminUserHeader)),
		logging.WithHTTPStatus(status),
	)
	slog.Info(msg, attrs...)
}
