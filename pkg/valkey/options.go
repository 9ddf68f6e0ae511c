// Package valkey は加入者ストアが利用するValkey接続の共通機能を提供する。
package valkey

import (
	"net"
	"strconv"
	"time"
)

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr           string // host:port形式
	Password       string
	DB             int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	MinIdleConns   int
	MaxRetries     int // コマンド単位の再試行回数
}

// DefaultOptions はsubscriber-api向けのデフォルトOptionsを返す。
// 加入者ドキュメントは数KB程度のため読み書きタイムアウトは短めに取る。
func DefaultOptions() *Options {
	return &Options{
		Addr:           "localhost:6379",
		ConnectTimeout: 3 * time.Second,
		ReadTimeout:    2 * time.Second,
		WriteTimeout:   2 * time.Second,
		PoolSize:       10,
		MinIdleConns:   2,
		MaxRetries:     3,
	}
}

// WithAddr はアドレスを設定する。
func (o *Options) WithAddr(addr string) *Options {
	o.Addr = addr
	return o
}

// WithHostPort はホストとポートからアドレスを設定する。
func (o *Options) WithHostPort(host string, port int) *Options {
	o.Addr = BuildAddr(host, port)
	return o
}

// WithPassword はパスワードを設定する。
func (o *Options) WithPassword(password string) *Options {
	o.Password = password
	return o
}

// WithTimeouts はタイムアウトを設定する。
func (o *Options) WithTimeouts(connect, read, write time.Duration) *Options {
	o.ConnectTimeout = connect
	o.ReadTimeout = read
	o.WriteTimeout = write
	return o
}

// WithPool はプール設定を変更する。
func (o *Options) WithPool(poolSize, minIdle int) *Options {
	o.PoolSize = poolSize
	o.MinIdleConns = minIdle
	return o
}

// BuildAddr はホストとポートからアドレス文字列を生成する。IPv6リテラルは角括弧で囲む。
func BuildAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
