// Package client はsubscriber-apiのHTTPクライアントを提供する。
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/apperr"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/httputil"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"github.com/sony/gobreaker"
)

// HTTPヘッダ名
const (
	HeaderTraceID   = "X-Trace-ID"
	HeaderAdminUser = "X-Admin-User"
)

const contentTypeJSON = "application/json"

// サーキットブレーカー設定
const (
	cbName             = "subscriber-api"
	cbMaxRequests      = 1
	cbInterval         = 0
	cbTimeout          = 30 * time.Second
	cbFailureThreshold = 3
)

const subscribersPath = "/api/v1/subscribers"

// Page は一覧APIの1ページ分の応答。
type Page struct {
	Items    []*model.Subscriber `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// Options はClientの生成オプション。
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	AdminUser string
}

// Client はsubscriber-apiクライアント。
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	adminUser  string
}

// New は新しいClientを生成する。
func New(opts Options) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	cbSettings := gobreaker.Settings{
		Name:        cbName,
		MaxRequests: cbMaxRequests,
		Interval:    cbInterval,
		Timeout:     cbTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"event_id", "CB_STATE",
				"cb_name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		adminUser:  opts.AdminUser,
	}
}

// Validate はサーバ側で検証のみを行い、正規化済みドキュメントを返す。
// imsi を指定すると既存加入者の更新として検証する。
func (c *Client) Validate(ctx context.Context, doc []byte, imsi string) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := c.do(ctx, http.MethodPost, subscribersPath+"/validate", func(r *resty.Request) {
		r.SetBody(doc).SetHeader("Content-Type", contentTypeJSON)
		if imsi != "" {
			r.SetQueryParam("imsi", imsi)
		}
	}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create は加入者を新規作成する。
func (c *Client) Create(ctx context.Context, doc []byte) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := c.do(ctx, http.MethodPost, subscribersPath, func(r *resty.Request) {
		r.SetBody(doc).SetHeader("Content-Type", contentTypeJSON)
	}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Replace は加入者を全置換で更新する。
func (c *Client) Replace(ctx context.Context, imsi string, doc []byte) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := c.do(ctx, http.MethodPut, subscriberPath(imsi), func(r *resty.Request) {
		r.SetBody(doc).SetHeader("Content-Type", contentTypeJSON)
	}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Apply は加入者を作成し、既に存在する場合は置換する。
// 戻り値のbool は新規作成だったかどうか。
func (c *Client) Apply(ctx context.Context, imsi string, doc []byte) (*model.Subscriber, bool, error) {
	sub, err := c.Create(ctx, doc)
	if err == nil {
		return sub, true, nil
	}
	var apiErr *apperr.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		return nil, false, err
	}
	sub, err = c.Replace(ctx, imsi, doc)
	if err != nil {
		return nil, false, err
	}
	return sub, false, nil
}

// Get は加入者を取得する。
func (c *Client) Get(ctx context.Context, imsi string) (*model.Subscriber, error) {
	var sub model.Subscriber
	if err := c.do(ctx, http.MethodGet, subscriberPath(imsi), nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete は加入者を削除する。
func (c *Client) Delete(ctx context.Context, imsi string) error {
	return c.do(ctx, http.MethodDelete, subscriberPath(imsi), nil, nil)
}

// List は一覧の1ページを取得する。page は1始まり。
func (c *Client) List(ctx context.Context, prefix string, page int) (*Page, error) {
	var p Page
	err := c.do(ctx, http.MethodGet, subscribersPath, func(r *resty.Request) {
		r.SetQueryParam("page", strconv.Itoa(page))
		if prefix != "" {
			r.SetQueryParam("imsi", prefix)
		}
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll は全ページを順に取得する。
func (c *Client) ListAll(ctx context.Context, prefix string) ([]*model.Subscriber, error) {
	var all []*model.Subscriber
	for page := 1; ; page++ {
		p, err := c.List(ctx, prefix, page)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if len(p.Items) == 0 || len(all) >= p.Total {
			return all, nil
		}
	}
}

// do はサーキットブレーカー経由でリクエストを実行し、成功時は応答をoutにデコードする。
// 5xxと接続エラーのみをブレーカーの失敗として数える。
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request), out any) error {
	traceID := uuid.NewString()
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID)
		if c.adminUser != "" {
			req.SetHeader(HeaderAdminUser, c.adminUser)
		}
		if build != nil {
			build(req)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrAPIUnavailable, err)
		}

		slog.Debug("api response",
			"trace_id", traceID,
			"http_status", resp.StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
		)

		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, parseAPIError(resp.StatusCode(), resp.Body())
		}
		// 4xxはブレーカーの対象外
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", apperr.ErrAPIUnavailable, err)
		}
		return err
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return fmt.Errorf("unexpected response type %T", result)
	}
	if resp.IsError() {
		return parseAPIError(resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseAPIError はProblem Details応答をAPIErrorに変換する。
// invalid_params はvalidate.ViolationsとしてCauseに格納する。
func parseAPIError(status int, body []byte) *apperr.APIError {
	var p httputil.ProblemDetail
	if err := json.Unmarshal(body, &p); err != nil || p.Title == "" {
		return apperr.NewAPIError(status, http.StatusText(status), strings.TrimSpace(string(body)), nil)
	}

	var cause error
	if len(p.InvalidParams) > 0 {
		vs := make(validate.Violations, 0, len(p.InvalidParams))
		for _, ip := range p.InvalidParams {
			vs = append(vs, validate.Violation{
				FieldPath: ip.FieldPath,
				ErrorKind: validate.Kind(ip.ErrorKind),
				Message:   ip.Message,
			})
		}
		cause = vs
	}
	return apperr.NewAPIError(status, p.Title, p.Detail, cause)
}

func subscriberPath(imsi string) string {
	return subscribersPath + "/" + url.PathEscape(imsi)
}
