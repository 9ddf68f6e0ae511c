// Package audit は加入者操作の監査ログを提供する。
package audit

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// UnknownAdmin はX-Admin-Userヘッダが無い場合の操作者名。
const UnknownAdmin = "unknown"

// Entry は監査ログエントリを表す。
type Entry struct {
	Time       string    `json:"time"` // RFC3339
	Level      string    `json:"level"`
	App        string    `json:"app"`
	EventID    string    `json:"event_id"`
	Msg        string    `json:"msg"`
	Operation  Operation `json:"operation"`
	TargetIMSI string    `json:"target_imsi"`
	AdminUser  string    `json:"admin_user"`
	TraceID    string    `json:"trace_id,omitempty"`
}

// Logger は監査ログをJSON Lines形式で出力する。
type Logger struct {
	writer io.Writer
	app    string
	now    func() time.Time
	mu     sync.Mutex
}

// NewLogger は標準出力へ書き込むLoggerを生成する。
func NewLogger(app string) *Logger {
	return NewLoggerWithWriter(os.Stdout, app)
}

// NewLoggerWithWriter は指定されたWriterを使用するLoggerを生成する。
func NewLoggerWithWriter(writer io.Writer, app string) *Logger {
	return &Logger{
		writer: writer,
		app:    app,
		now:    time.Now,
	}
}

// Log は監査ログエントリを出力する。
// IMSIはマスキングしない。監査ログの出力先は運用者のみが参照する前提。
func (l *Logger) Log(op Operation, imsi, admin, traceID string) {
	if admin == "" {
		admin = UnknownAdmin
	}
	entry := Entry{
		Time:       l.now().UTC().Format(time.RFC3339),
		Level:      "INFO",
		App:        l.app,
		EventID:    "AUDIT_LOG",
		Msg:        "subscriber " + string(op) + "d",
		Operation:  op,
		TargetIMSI: imsi,
		AdminUser:  admin,
		TraceID:    traceID,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(append(data, '\n'))
}

// Nop は何も出力しないLoggerを返す。AUDIT_ENABLED=false 時に使う。
func Nop() *Logger {
	return NewLoggerWithWriter(io.Discard, "")
}
