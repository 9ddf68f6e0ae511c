// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"net/http"
)

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// InvalidParam は検証違反1件を表すRFC 7807拡張メンバー。
type InvalidParam struct {
	FieldPath string `json:"field_path"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
type ProblemDetail struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail,omitempty"`
	Instance      string         `json:"instance,omitempty"`
	TraceID       string         `json:"trace_id,omitempty"`
	InvalidParams []InvalidParam `json:"invalid_params,omitempty"`
}

// NewProblemDetail は新しいProblemDetailを生成する。
// Title はステータスコードの標準テキストを用いる。
func NewProblemDetail(status int, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// BadRequest は400のエラーレスポンスを生成する。
func BadRequest(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadRequest, detail)
}

// NotFound は404のエラーレスポンスを生成する。
func NotFound(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotFound, detail)
}

// Conflict は409のエラーレスポンスを生成する。
func Conflict(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusConflict, detail)
}

// RequestEntityTooLarge は413のエラーレスポンスを生成する。
func RequestEntityTooLarge(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusRequestEntityTooLarge, detail)
}

// UnsupportedMediaType は415のエラーレスポンスを生成する。
func UnsupportedMediaType(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusUnsupportedMediaType, detail)
}

// UnprocessableEntity は422のエラーレスポンスを生成する。
// 違反一覧は invalid_params として返す。
func UnprocessableEntity(detail string, params []InvalidParam) *ProblemDetail {
	p := NewProblemDetail(http.StatusUnprocessableEntity, detail)
	p.InvalidParams = params
	return p
}

// InternalServerError は500のエラーレスポンスを生成する。
func InternalServerError(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusInternalServerError, detail)
}

// ServiceUnavailable は503のエラーレスポンスを生成する。
func ServiceUnavailable(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusServiceUnavailable, detail)
}

// WithInstance はリクエストパスとトレースIDを設定したコピーを返す。
func (p *ProblemDetail) WithInstance(instance, traceID string) *ProblemDetail {
	cp := *p
	cp.Instance = instance
	cp.TraceID = traceID
	return &cp
}

// Error はerrorインターフェースを満たす。
func (p *ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// JSON はProblemDetailをJSON形式にエンコードする。
func (p *ProblemDetail) JSON() ([]byte, error) {
	return json.Marshal(p)
}
