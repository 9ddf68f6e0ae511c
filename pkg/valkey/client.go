package valkey

import (
	"context"
	"errors"
	"net"

	"github.com/redis/go-redis/v9"
)

// NewClient はValkeyクライアントを生成し、PINGで疎通を確認する。
// ctx にデッドラインが無い場合は opts.ConnectTimeout を適用する。
func NewClient(ctx context.Context, opts *Options) (*redis.Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, ok := ctx.Deadline(); !ok && opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.ConnectTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Pinger はヘルスチェックに必要な最小限のインターフェース。
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Probe はValkeyへの疎通を確認する。
func Probe(ctx context.Context, p Pinger) error {
	return p.Ping(ctx).Err()
}

// IsConnectionError は接続関連のエラーかどうかを判定する。
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsKeyNotFound はキーが見つからないエラーかどうかを判定する。
func IsKeyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// IsTxFailed はWATCH対象キーの変更によってトランザクションが破棄されたかを判定する。
func IsTxFailed(err error) bool {
	return errors.Is(err, redis.TxFailedErr)
}
