package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// DuplicateKeyError は永続化層での一意制約違反を表す。
// errors.Is(err, ErrDuplicateKey) で判定できる。
type DuplicateKeyError struct {
	Key  string // 衝突したキー
	IMSI string // 衝突したIMSI
}

// Error はerrorインターフェースを実装する。
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: key=%s, imsi=%s", e.Key, e.IMSI)
}

// Is は ErrDuplicateKey との比較を可能にする。
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NewDuplicateKeyError はDuplicateKeyErrorを生成する。
func NewDuplicateKeyError(key, imsi string) *DuplicateKeyError {
	return &DuplicateKeyError{
		Key:  key,
		IMSI: imsi,
	}
}

// APIError は加入者APIが返したエラー応答を表す。
type APIError struct {
	StatusCode int    // HTTPステータスコード
	Title      string // ProblemDetailのtitle
	Detail     string // ProblemDetailのdetail
	Cause      error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api error: statusCode=%d, title=%s, cause=%v",
			e.StatusCode, e.Title, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api error: statusCode=%d, title=%s, detail=%s",
			e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("api error: statusCode=%d, title=%s", e.StatusCode, e.Title)
}

// Unwrap は根本原因を返す。
func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError はAPIErrorを生成する。
func NewAPIError(statusCode int, title, detail string, cause error) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Title:      title,
		Detail:     detail,
		Cause:      cause,
	}
}

// ValkeyError はValkeyとの操作エラーを表す。
type ValkeyError struct {
	Operation string // 操作名（GET, SET, DEL等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
