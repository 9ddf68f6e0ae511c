// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// 加入者関連エラー
var (
	// ErrSubscriberNotFound は加入者が見つからない場合のエラー
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrDuplicateKey はIMSIの一意制約違反エラー
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrConcurrentUpdate は楽観ロックの再試行上限に達した場合のエラー
	ErrConcurrentUpdate = errors.New("concurrent update")
	// ErrCorruptRecord は保存済みドキュメントを復元できない場合のエラー
	ErrCorruptRecord = errors.New("corrupt subscriber record")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
)

// APIクライアント関連エラー
var (
	// ErrAPIUnavailable はサーキットブレーカーが開いている場合のエラー
	ErrAPIUnavailable = errors.New("subscriber API unavailable")
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
)

// バリデーション関連エラー
var (
	// ErrInvalidIMSI は不正なIMSI形式エラー
	ErrInvalidIMSI = errors.New("invalid IMSI format")
	// ErrInvalidHex は不正な16進数文字列エラー
	ErrInvalidHex = errors.New("invalid hex string")
)
