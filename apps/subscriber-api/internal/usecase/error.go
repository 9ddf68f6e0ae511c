package usecase

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/httputil"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
)

// イベントID
const (
	EventCreate      = "SUB_CREATE"
	EventUpdate      = "SUB_UPDATE"
	EventDelete      = "SUB_DELETE"
	EventValidateErr = "SUB_VALIDATE_ERR"
	EventDuplicate   = "SUB_DUPLICATE"
	EventNotFound    = "SUB_NOT_FOUND"
	EventValkeyErr   = "VALKEY_CONN_ERR"
	EventInternalErr = "SUB_INTERNAL_ERR"
	EventConflictErr = "SUB_CONFLICT"
	EventBadRequest  = "SUB_BAD_REQUEST"
)

// ProblemError はビジネスロジックエラーを表す。
type ProblemError struct {
	Status        int
	Detail        string
	Message       string // ログメッセージ
	EventID       string
	InvalidParams []httputil.InvalidParam
	Cause         error
}

// Error はerrorインターフェースを実装する。
func (e *ProblemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Detail
}

// Unwrap は原因エラーを返す。
func (e *ProblemError) Unwrap() error {
	return e.Cause
}

// ToProblemDetail はProblemDetailに変換する。
func (e *ProblemError) ToProblemDetail() *httputil.ProblemDetail {
	p := httputil.NewProblemDetail(e.Status, e.Detail)
	p.InvalidParams = e.InvalidParams
	return p
}

// LogLevel はログレベルを返す。
func (e *ProblemError) LogLevel() slog.Level {
	switch {
	case e.Status >= 500:
		return slog.LevelError
	case e.Status == http.StatusNotFound:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// with は原因を付与したコピーを返す。
func (e *ProblemError) with(cause error) *ProblemError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// 定義済みエラー
var (
	ErrSubscriberNotFound = &ProblemError{
		Status:  http.StatusNotFound,
		Detail:  "IMSI does not exist in subscriber DB",
		Message: "subscriber not found",
		EventID: EventNotFound,
	}

	ErrDuplicateIMSI = &ProblemError{
		Status:  http.StatusConflict,
		Detail:  "a subscriber with this IMSI already exists",
		Message: "duplicate IMSI",
		EventID: EventDuplicate,
	}

	ErrConcurrentUpdate = &ProblemError{
		Status:  http.StatusConflict,
		Detail:  "subscriber was modified concurrently, retry the request",
		Message: "concurrent update retries exhausted",
		EventID: EventConflictErr,
	}

	ErrInvalidIMSI = &ProblemError{
		Status:  http.StatusBadRequest,
		Detail:  "IMSI must be 1 to 15 digits",
		Message: "invalid IMSI in path",
		EventID: EventBadRequest,
	}

	ErrInvalidPage = &ProblemError{
		Status:  http.StatusBadRequest,
		Detail:  "page must be a positive integer and imsi filter must be digits",
		Message: "invalid list query",
		EventID: EventBadRequest,
	}

	ErrValkeyConnection = &ProblemError{
		Status:  http.StatusServiceUnavailable,
		Detail:  "Database connection error",
		Message: "Valkey connection error",
		EventID: EventValkeyErr,
	}

	ErrInternal = &ProblemError{
		Status:  http.StatusInternalServerError,
		Detail:  "An unexpected error occurred",
		Message: "internal error",
		EventID: EventInternalErr,
	}
)

// newValidationProblem は違反リストを422のProblemErrorに変換する。
func newValidationProblem(vs validate.Violations) *ProblemError {
	params := make([]httputil.InvalidParam, len(vs))
	for i, v := range vs {
		params[i] = httputil.InvalidParam{
			FieldPath: v.FieldPath,
			ErrorKind: string(v.ErrorKind),
			Message:   v.Message,
		}
	}
	noun := "violations"
	if len(vs) == 1 {
		noun = "violation"
	}
	return &ProblemError{
		Status:        http.StatusUnprocessableEntity,
		Detail:        fmt.Sprintf("subscriber document has %d %s", len(vs), noun),
		Message:       "subscriber validation failed",
		EventID:       EventValidateErr,
		InvalidParams: params,
		Cause:         vs,
	}
}
