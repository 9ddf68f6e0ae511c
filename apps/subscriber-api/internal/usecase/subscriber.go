package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/audit"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/store"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/apperr"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/valkey"
)

// Request はHTTP層から渡される要求。
type Request struct {
	Body    []byte
	Admin   string // X-Admin-User
	TraceID string
}

// Page は一覧取得の結果。
type Page struct {
	Items    []*model.Subscriber `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// SubscriberUseCase は加入者の作成・更新・削除・参照を行う。
type SubscriberUseCase struct {
	repo     SubscriberRepository
	builder  RecordBuilder
	audit    AuditLogger
	observer ValidationObserver
	pageSize int
	now      func() time.Time
}

// NewSubscriberUseCase は新しいSubscriberUseCaseを生成する。
func NewSubscriberUseCase(
	repo SubscriberRepository,
	builder RecordBuilder,
	auditLogger AuditLogger,
	observer ValidationObserver,
	pageSize int,
) *SubscriberUseCase {
	return &SubscriberUseCase{
		repo:     repo,
		builder:  builder,
		audit:    auditLogger,
		observer: observer,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Validate は保存せずに検証と正規化だけを行う。
// imsi を指定した場合は保存済みレコードに対する更新として検証する。
func (uc *SubscriberUseCase) Validate(ctx context.Context, req *Request, imsi string) (*model.Subscriber, error) {
	var prior *model.Subscriber
	if imsi != "" {
		if !ValidIMSI(imsi) {
			return nil, ErrInvalidIMSI
		}
		p, err := uc.repo.Get(ctx, imsi)
		if err != nil {
			return nil, mapError(err)
		}
		prior = p
	}

	sub, err := uc.builder.Build(req.Body, prior)
	uc.observer.ObserveValidation(err)
	if err != nil {
		return nil, mapError(err)
	}
	return sub, nil
}

// Create は加入者を新規登録する。
func (uc *SubscriberUseCase) Create(ctx context.Context, req *Request) (*model.Subscriber, error) {
	sub, err := uc.builder.Build(req.Body, nil)
	uc.observer.ObserveValidation(err)
	if err != nil {
		return nil, mapError(err)
	}

	now := uc.timestamp()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, mapError(err)
	}

	uc.audit.Log(audit.OpCreate, sub.IMSI, req.Admin, req.TraceID)
	return sub, nil
}

// Update は加入者ドキュメントを全置換する。
// sqnとflowは保存済みレコードから引き継がれる。
func (uc *SubscriberUseCase) Update(ctx context.Context, req *Request, imsi string) (*model.Subscriber, error) {
	if !ValidIMSI(imsi) {
		return nil, ErrInvalidIMSI
	}

	var (
		validated bool
		buildErr  error
	)
	sub, err := uc.repo.Replace(ctx, imsi, func(prior *model.Subscriber) (*model.Subscriber, error) {
		next, err := uc.builder.Build(req.Body, prior)
		validated, buildErr = true, err
		if err != nil {
			return nil, err
		}
		next.UpdatedAt = uc.timestamp()
		return next, nil
	})
	// 競合再試行で複数回検証しても記録は最終結果の1回だけ
	if validated {
		uc.observer.ObserveValidation(buildErr)
	}
	if err != nil {
		return nil, mapError(err)
	}

	uc.audit.Log(audit.OpUpdate, imsi, req.Admin, req.TraceID)
	return sub, nil
}

// Get は加入者を取得する。
func (uc *SubscriberUseCase) Get(ctx context.Context, imsi string) (*model.Subscriber, error) {
	if !ValidIMSI(imsi) {
		return nil, ErrInvalidIMSI
	}
	sub, err := uc.repo.Get(ctx, imsi)
	if err != nil {
		return nil, mapError(err)
	}
	return sub, nil
}

// Delete は加入者を削除する。
func (uc *SubscriberUseCase) Delete(ctx context.Context, req *Request, imsi string) error {
	if !ValidIMSI(imsi) {
		return ErrInvalidIMSI
	}
	if err := uc.repo.Delete(ctx, imsi); err != nil {
		return mapError(err)
	}
	uc.audit.Log(audit.OpDelete, imsi, req.Admin, req.TraceID)
	return nil
}

// List はIMSIプレフィックスで絞り込んだ加入者一覧を返す。page は1始まり。
func (uc *SubscriberUseCase) List(ctx context.Context, imsiPrefix string, page int) (*Page, error) {
	if page < 1 || !validPrefix(imsiPrefix) {
		return nil, ErrInvalidPage
	}
	res, err := uc.repo.List(ctx, store.ListOptions{
		IMSIPrefix: imsiPrefix,
		Offset:     (page - 1) * uc.pageSize,
		Limit:      uc.pageSize,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &Page{
		Items:    res.Items,
		Total:    res.Total,
		Page:     page,
		PageSize: uc.pageSize,
	}, nil
}

func (uc *SubscriberUseCase) timestamp() string {
	return uc.now().UTC().Format(time.RFC3339)
}

// ValidIMSI はパスパラメータのIMSIが数字のみで構成され、カタログの長さ制限内かを判定する。
func ValidIMSI(imsi string) bool {
	if _, err := validate.Digits(imsi); err != nil {
		return false
	}
	return catalog.Default().MustLimit(catalog.LimitIMSILength).Contains(int64(len(imsi)))
}

func validPrefix(prefix string) bool {
	return prefix == "" || ValidIMSI(prefix)
}

// mapError は下位層のエラーをProblemErrorに変換する。
func mapError(err error) error {
	var pe *ProblemError
	if errors.As(err, &pe) {
		return pe
	}
	if vs, ok := validate.AsViolations(err); ok {
		return newValidationProblem(vs)
	}
	switch {
	case errors.Is(err, apperr.ErrSubscriberNotFound):
		return ErrSubscriberNotFound
	case errors.Is(err, apperr.ErrDuplicateKey):
		return ErrDuplicateIMSI.with(err)
	case errors.Is(err, apperr.ErrConcurrentUpdate):
		return ErrConcurrentUpdate
	case valkey.IsConnectionError(err):
		return ErrValkeyConnection.with(err)
	default:
		return ErrInternal.with(err)
	}
}
