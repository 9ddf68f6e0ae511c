package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/apperr"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

const (
	scanCount           = 100
	// defaultWatchRetries はWATCH競合時の再試行上限。
	defaultWatchRetries = 5
)

// UpdateFunc は保存済みレコードを受け取り、置き換え後のレコードを返す。
type UpdateFunc func(prior *model.Subscriber) (*model.Subscriber, error)

// ListOptions は一覧取得の条件。
type ListOptions struct {
	IMSIPrefix string // 数字のみ
	Offset     int
	Limit      int // 0以下は無制限
}

// ListResult は一覧取得の結果。
type ListResult struct {
	Items []*model.Subscriber
	Total int
}

// SubscriberStore は加入者ドキュメントへのアクセスを提供する。
// ドキュメントはJSONのまま sub:{IMSI} に格納する。
type SubscriberStore struct {
	client       *redis.Client
	watchRetries int
}

// NewSubscriberStore は新しいSubscriberStoreを生成する。
func NewSubscriberStore(client *redis.Client) *SubscriberStore {
	return &SubscriberStore{client: client, watchRetries: defaultWatchRetries}
}

// Get は指定されたIMSIの加入者を取得する。
func (s *SubscriberStore) Get(ctx context.Context, imsi string) (*model.Subscriber, error) {
	key := SubscriberKey(imsi)
	data, err := s.client.Get(ctx, key).Bytes()
	if valkey.IsKeyNotFound(err) {
		return nil, apperr.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, apperr.NewValkeyError("GET", key, err)
	}
	return decode(key, data)
}

// Create は新しい加入者を作成する。
// 同じIMSIが既に存在する場合は *apperr.DuplicateKeyError を返す。
func (s *SubscriberStore) Create(ctx context.Context, sub *model.Subscriber) error {
	key := SubscriberKey(sub.IMSI)
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal subscriber: %w", err)
	}

	ok, err := s.client.SetNX(ctx, key, payload, 0).Result()
	if err != nil {
		return apperr.NewValkeyError("SETNX", key, err)
	}
	if !ok {
		return apperr.NewDuplicateKeyError(key, sub.IMSI)
	}
	return nil
}

// Replace は保存済みレコードを読み出して fn で置き換える。
// WATCHによる楽観ロックで、競合時は再試行し上限に達したら apperr.ErrConcurrentUpdate を返す。
func (s *SubscriberStore) Replace(ctx context.Context, imsi string, fn UpdateFunc) (*model.Subscriber, error) {
	key := SubscriberKey(imsi)
	var result *model.Subscriber

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if valkey.IsKeyNotFound(err) {
			return apperr.ErrSubscriberNotFound
		}
		if err != nil {
			return apperr.NewValkeyError("GET", key, err)
		}
		prior, err := decode(key, data)
		if err != nil {
			return err
		}

		next, err := fn(prior)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal subscriber: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return apperr.NewValkeyError("SET", key, err)
		}
		result = next
		return nil
	}

	for i := 0; i < s.watchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !valkey.IsTxFailed(err) {
			return nil, err
		}
		slog.Debug("watch conflict, retrying",
			logging.WithRetryCount(i+1),
			"max_retries", s.watchRetries,
		)
	}
	return nil, apperr.ErrConcurrentUpdate
}

// Delete は加入者を削除する。
func (s *SubscriberStore) Delete(ctx context.Context, imsi string) error {
	key := SubscriberKey(imsi)
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return apperr.NewValkeyError("DEL", key, err)
	}
	if n == 0 {
		return apperr.ErrSubscriberNotFound
	}
	return nil
}

// List はIMSI昇順で加入者を取得する（SCAN + Pipeline）。
func (s *SubscriberStore) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	keys, err := s.scanKeys(ctx, opts.IMSIPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	result := &ListResult{Items: []*model.Subscriber{}, Total: len(keys)}
	page := pageOf(keys, opts.Offset, opts.Limit)
	if len(page) == 0 {
		return result, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(page))
	for i, key := range page {
		cmds[i] = pipe.Get(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !valkey.IsKeyNotFound(err) {
		return nil, apperr.NewValkeyError("GET", PrefixSubscriber+"*", err)
	}

	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			// SCAN後に削除されたキー
			continue
		}
		sub, err := decode(page[i], data)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, sub)
	}
	return result, nil
}

// Count は加入者の総数を返す。
func (s *SubscriberStore) Count(ctx context.Context) (int64, error) {
	keys, err := s.scanKeys(ctx, "")
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

func (s *SubscriberStore) scanKeys(ctx context.Context, imsiPrefix string) ([]string, error) {
	pattern := PrefixSubscriber + imsiPrefix + "*"
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, apperr.NewValkeyError("SCAN", pattern, err)
	}
	return keys, nil
}

func pageOf(keys []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(keys) {
		return nil
	}
	end := len(keys)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return keys[offset:end]
}

func decode(key string, data []byte) (*model.Subscriber, error) {
	var sub model.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrCorruptRecord, key, err)
	}
	if sub.IMSI == "" {
		sub.IMSI = IMSIFromKey(key)
	}
	if !strings.HasPrefix(key, PrefixSubscriber) || sub.IMSI != IMSIFromKey(key) {
		return nil, fmt.Errorf("%w: %s: imsi %q does not match key", apperr.ErrCorruptRecord, key, sub.IMSI)
	}
	return &sub, nil
}
