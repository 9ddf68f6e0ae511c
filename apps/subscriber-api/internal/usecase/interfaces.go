// Package usecase は加入者プロビジョニングのビジネスロジックを提供する。
package usecase

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=usecase

import (
	"context"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/audit"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/store"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// SubscriberRepository は加入者データアクセスのインターフェース。
type SubscriberRepository interface {
	Get(ctx context.Context, imsi string) (*model.Subscriber, error)
	Create(ctx context.Context, sub *model.Subscriber) error
	Replace(ctx context.Context, imsi string, fn store.UpdateFunc) (*model.Subscriber, error)
	Delete(ctx context.Context, imsi string) error
	List(ctx context.Context, opts store.ListOptions) (*store.ListResult, error)
}

// RecordBuilder は入力ドキュメントから保存用レコードを構築する。
type RecordBuilder interface {
	Build(data []byte, prior *model.Subscriber) (*model.Subscriber, error)
}

// AuditLogger は監査ログ出力のインターフェース。
type AuditLogger interface {
	Log(op audit.Operation, imsi, admin, traceID string)
}

// ValidationObserver は検証結果を記録するインターフェース。
type ValidationObserver interface {
	ObserveValidation(err error)
}

// SubscriberUseCaseInterface は加入者ユースケースのインターフェース。
type SubscriberUseCaseInterface interface {
	Validate(ctx context.Context, req *Request, imsi string) (*model.Subscriber, error)
	Create(ctx context.Context, req *Request) (*model.Subscriber, error)
	Update(ctx context.Context, req *Request, imsi string) (*model.Subscriber, error)
	Get(ctx context.Context, imsi string) (*model.Subscriber, error)
	Delete(ctx context.Context, req *Request, imsi string) error
	List(ctx context.Context, imsiPrefix string, page int) (*Page, error)
}
