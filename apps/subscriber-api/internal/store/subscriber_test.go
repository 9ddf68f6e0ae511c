package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/apperr"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/redis/go-redis/v9"
)

func setupTestStore(t *testing.T) (*SubscriberStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSubscriberStore(client), mr, client
}

// captureLogs はテスト中のデフォルトロガーをDEBUGレベルのJSON出力に差し替える。
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func testSubscriber(imsi string) *model.Subscriber {
	opc := "CD63CB71954A9F4E48A5994E37A02BAF"
	sqn := int64(32)
	return &model.Subscriber{
		IMSI:   imsi,
		MSISDN: []string{},
		Security: model.Security{
			K:   "465B5CE8B199B49FAA5F0A2EE238A6BC",
			AMF: "8000",
			OPc: &opc,
			SQN: &sqn,
		},
		Slices: []model.Slice{{
			ID:               "65f000000000000000000001",
			SST:              1,
			DefaultIndicator: true,
			Sessions: []model.Session{{
				ID:       "65f000000000000000000002",
				Name:     "internet",
				Type:     3,
				QoS:      model.QoS{Index: 9, ARP: model.ARP{PriorityLevel: 8, PreEmptionCapability: 1, PreEmptionVulnerability: 1}},
				PCCRules: []model.PCCRule{},
			}},
		}},
		CreatedAt: "2026-01-01T00:00:00Z",
	}
}

func TestSubscriberKey(t *testing.T) {
	if got := SubscriberKey("001010000000001"); got != "sub:001010000000001" {
		t.Errorf("SubscriberKey() = %q", got)
	}
	if got := IMSIFromKey("sub:001010000000001"); got != "001010000000001" {
		t.Errorf("IMSIFromKey() = %q", got)
	}
	if got := IMSIFromKey("su"); got != "" {
		t.Errorf("IMSIFromKey(short) = %q, want empty", got)
	}
}

func TestCreateAndGet(t *testing.T) {
	s, mr, _ := setupTestStore(t)
	ctx := context.Background()
	sub := testSubscriber("001010000000001")

	if err := s.Create(ctx, sub); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// ドキュメントはJSONのまま保存される
	raw, err := mr.Get("sub:001010000000001")
	if err != nil {
		t.Fatalf("miniredis Get() error = %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	if stored["imsi"] != "001010000000001" {
		t.Errorf("stored imsi = %v", stored["imsi"])
	}

	got, err := s.Get(ctx, "001010000000001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Security.K != sub.Security.K || *got.Security.SQN != 32 {
		t.Errorf("Get() = %+v", got.Security)
	}
	if got.Slices[0].Sessions[0].Name != "internet" {
		t.Errorf("session name = %q", got.Slices[0].Sessions[0].Name)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := s.Create(ctx, testSubscriber("001010000000001"))
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("Create() error = %v, want ErrDuplicateKey", err)
	}
	var dup *apperr.DuplicateKeyError
	if !errors.As(err, &dup) || dup.IMSI != "001010000000001" {
		t.Errorf("error = %#v, want DuplicateKeyError", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s, _, _ := setupTestStore(t)

	_, err := s.Get(context.Background(), "001010000000009")
	if !errors.Is(err, apperr.ErrSubscriberNotFound) {
		t.Errorf("Get() error = %v, want ErrSubscriberNotFound", err)
	}
}

func TestGetCorruptRecord(t *testing.T) {
	s, mr, _ := setupTestStore(t)
	mr.Set("sub:001010000000001", "{not json")
	mr.Set("sub:001010000000002", `{"imsi":"001010000000003"}`)

	for _, imsi := range []string{"001010000000001", "001010000000002"} {
		if _, err := s.Get(context.Background(), imsi); !errors.Is(err, apperr.ErrCorruptRecord) {
			t.Errorf("Get(%s) error = %v, want ErrCorruptRecord", imsi, err)
		}
	}
}

func TestReplace(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()
	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Replace(ctx, "001010000000001", func(prior *model.Subscriber) (*model.Subscriber, error) {
		next := prior.Clone()
		next.MSISDN = []string{"79990000001"}
		return next, nil
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if len(got.MSISDN) != 1 {
		t.Errorf("Replace() result msisdn = %v", got.MSISDN)
	}

	reread, err := s.Get(ctx, "001010000000001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(reread.MSISDN) != 1 || reread.MSISDN[0] != "79990000001" {
		t.Errorf("stored msisdn = %v", reread.MSISDN)
	}
}

func TestReplaceNotFound(t *testing.T) {
	s, _, _ := setupTestStore(t)
	called := false

	_, err := s.Replace(context.Background(), "001010000000001", func(prior *model.Subscriber) (*model.Subscriber, error) {
		called = true
		return prior, nil
	})
	if !errors.Is(err, apperr.ErrSubscriberNotFound) {
		t.Errorf("Replace() error = %v, want ErrSubscriberNotFound", err)
	}
	if called {
		t.Error("update func should not be called for a missing record")
	}
}

func TestReplaceUpdateFuncError(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()
	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	want := errors.New("rejected")

	_, err := s.Replace(ctx, "001010000000001", func(*model.Subscriber) (*model.Subscriber, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Errorf("Replace() error = %v, want %v", err, want)
	}
}

// 読み出しから書き込みまでの間に他クライアントがsqnを更新した場合は再試行される
func TestReplaceRetriesOnConflict(t *testing.T) {
	s, _, client := setupTestStore(t)
	ctx := context.Background()
	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	other := testSubscriber("001010000000001")
	bumped := int64(64)
	other.Security.SQN = &bumped
	payload, _ := json.Marshal(other)

	calls := 0
	got, err := s.Replace(ctx, "001010000000001", func(prior *model.Subscriber) (*model.Subscriber, error) {
		calls++
		if calls == 1 {
			if err := client.Set(ctx, "sub:001010000000001", payload, 0).Err(); err != nil {
				t.Fatalf("concurrent Set() error = %v", err)
			}
		}
		return prior.Clone(), nil
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("update func calls = %d, want 2", calls)
	}
	if got.Security.SQN == nil || *got.Security.SQN != 64 {
		t.Errorf("sqn = %v, want the concurrently written 64", got.Security.SQN)
	}
}

func TestReplaceGivesUpAfterRetries(t *testing.T) {
	s, _, client := setupTestStore(t)
	ctx := context.Background()
	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	logs := captureLogs(t)

	calls := 0
	_, err := s.Replace(ctx, "001010000000001", func(prior *model.Subscriber) (*model.Subscriber, error) {
		calls++
		payload, _ := json.Marshal(prior)
		if err := client.Set(ctx, "sub:001010000000001", payload, 0).Err(); err != nil {
			t.Fatalf("concurrent Set() error = %v", err)
		}
		return prior, nil
	})
	if !errors.Is(err, apperr.ErrConcurrentUpdate) {
		t.Errorf("Replace() error = %v, want ErrConcurrentUpdate", err)
	}
	if calls != defaultWatchRetries {
		t.Errorf("calls = %d, want %d", calls, defaultWatchRetries)
	}

	out := logs.String()
	if n := strings.Count(out, `"msg":"watch conflict, retrying"`); n != defaultWatchRetries {
		t.Errorf("retry log lines = %d, want %d:\n%s", n, defaultWatchRetries, out)
	}
	if !strings.Contains(out, `"retry_count":5`) {
		t.Errorf("last retry should log retry_count 5:\n%s", out)
	}
	if strings.Contains(out, "001010000000001") {
		t.Error("retry log should not contain the IMSI")
	}
}

func TestDelete(t *testing.T) {
	s, mr, _ := setupTestStore(t)
	ctx := context.Background()
	if err := s.Create(ctx, testSubscriber("001010000000001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(ctx, "001010000000001"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mr.Exists("sub:001010000000001") {
		t.Error("key should be deleted")
	}
	if err := s.Delete(ctx, "001010000000001"); !errors.Is(err, apperr.ErrSubscriberNotFound) {
		t.Errorf("Delete() error = %v, want ErrSubscriberNotFound", err)
	}
}

func TestListAndCount(t *testing.T) {
	s, mr, _ := setupTestStore(t)
	ctx := context.Background()
	for _, imsi := range []string{"001010000000003", "001010000000001", "440100000000001", "001010000000002"} {
		if err := s.Create(ctx, testSubscriber(imsi)); err != nil {
			t.Fatalf("Create(%s) error = %v", imsi, err)
		}
	}
	// 加入者以外のキーは対象外
	mr.Set("sess:abc", "x")

	tests := []struct {
		name      string
		opts      ListOptions
		wantIMSIs []string
		wantTotal int
	}{
		{"all sorted", ListOptions{}, []string{"001010000000001", "001010000000002", "001010000000003", "440100000000001"}, 4},
		{"prefix", ListOptions{IMSIPrefix: "00101"}, []string{"001010000000001", "001010000000002", "001010000000003"}, 3},
		{"page", ListOptions{Offset: 1, Limit: 2}, []string{"001010000000002", "001010000000003"}, 4},
		{"offset beyond end", ListOptions{Offset: 10, Limit: 2}, nil, 4},
		{"no match", ListOptions{IMSIPrefix: "999"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			if len(res.Items) != len(tt.wantIMSIs) {
				t.Fatalf("Items = %d, want %d", len(res.Items), len(tt.wantIMSIs))
			}
			for i, sub := range res.Items {
				if sub.IMSI != tt.wantIMSIs[i] {
					t.Errorf("Items[%d].IMSI = %q, want %q", i, sub.IMSI, tt.wantIMSIs[i])
				}
			}
		})
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 4 {
		t.Errorf("Count() = %d, want 4", count)
	}
}

func TestConnectionErrorIsWrapped(t *testing.T) {
	s, mr, _ := setupTestStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "001010000000001")
	var vErr *apperr.ValkeyError
	if !errors.As(err, &vErr) {
		t.Fatalf("Get() error = %v, want ValkeyError", err)
	}
	if vErr.Operation != "GET" || vErr.Key != "sub:001010000000001" {
		t.Errorf("ValkeyError = %+v", vErr)
	}
}
