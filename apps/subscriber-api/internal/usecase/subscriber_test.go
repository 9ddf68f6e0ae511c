package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/audit"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/store"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/apperr"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"go.uber.org/mock/gomock"
)

// testIMSI はテスト用IMSI。
const testIMSI = "001010000000001"

var testBody = []byte(`{"imsi":"001010000000001"}`)

type mocks struct {
	repo     *MockSubscriberRepository
	builder  *MockRecordBuilder
	audit    *MockAuditLogger
	observer *MockValidationObserver
}

// setupUseCase はテスト用のSubscriberUseCaseとモック群をセットアップする。
func setupUseCase(ctrl *gomock.Controller) (*SubscriberUseCase, *mocks) {
	m := &mocks{
		repo:     NewMockSubscriberRepository(ctrl),
		builder:  NewMockRecordBuilder(ctrl),
		audit:    NewMockAuditLogger(ctrl),
		observer: NewMockValidationObserver(ctrl),
	}
	uc := NewSubscriberUseCase(m.repo, m.builder, m.audit, m.observer, 16)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return uc, m
}

func built() *model.Subscriber {
	return &model.Subscriber{IMSI: testIMSI, MSISDN: []string{}}
}

func violations() validate.Violations {
	return validate.Violations{
		{FieldPath: "slices/0/sst", ErrorKind: validate.KindOutOfRange, Message: "sst must be within 1..4"},
	}
}

func assertProblem(t *testing.T, err error, want *ProblemError) {
	t.Helper()
	var pe *ProblemError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProblemError", err)
	}
	if pe.Status != want.Status || pe.EventID != want.EventID {
		t.Errorf("problem = %d/%s, want %d/%s", pe.Status, pe.EventID, want.Status, want.EventID)
	}
}

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.builder.EXPECT().Build(testBody, nil).Return(built(), nil)
	m.observer.EXPECT().ObserveValidation(nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub *model.Subscriber) error {
		if sub.CreatedAt != "2026-03-01T00:00:00Z" || sub.UpdatedAt != sub.CreatedAt {
			t.Errorf("timestamps = %q/%q", sub.CreatedAt, sub.UpdatedAt)
		}
		return nil
	})
	m.audit.EXPECT().Log(audit.OpCreate, testIMSI, "operator", "trace-1")

	sub, err := uc.Create(context.Background(), &Request{Body: testBody, Admin: "operator", TraceID: "trace-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.IMSI != testIMSI {
		t.Errorf("IMSI = %q", sub.IMSI)
	}
}

func TestCreateValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	vs := violations()
	m.builder.EXPECT().Build(testBody, nil).Return(nil, vs)
	m.observer.EXPECT().ObserveValidation(vs)

	_, err := uc.Create(context.Background(), &Request{Body: testBody})
	assertProblem(t, err, &ProblemError{Status: http.StatusUnprocessableEntity, EventID: EventValidateErr})

	var pe *ProblemError
	errors.As(err, &pe)
	if len(pe.InvalidParams) != 1 || pe.InvalidParams[0].FieldPath != "slices/0/sst" || pe.InvalidParams[0].ErrorKind != "out_of_range" {
		t.Errorf("InvalidParams = %+v", pe.InvalidParams)
	}
	if pe.Detail != "subscriber document has 1 violation" {
		t.Errorf("Detail = %q", pe.Detail)
	}
	if !errors.Is(err, validate.ErrOutOfRange) {
		t.Error("ProblemError should unwrap to the violation kind")
	}
}

func TestCreateDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.builder.EXPECT().Build(testBody, nil).Return(built(), nil)
	m.observer.EXPECT().ObserveValidation(nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperr.NewDuplicateKeyError("sub:"+testIMSI, testIMSI))

	_, err := uc.Create(context.Background(), &Request{Body: testBody})
	assertProblem(t, err, ErrDuplicateIMSI)
}

func TestCreateValkeyDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.builder.EXPECT().Build(testBody, nil).Return(built(), nil)
	m.observer.EXPECT().ObserveValidation(nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperr.NewValkeyError("SETNX", "sub:"+testIMSI, context.DeadlineExceeded))

	_, err := uc.Create(context.Background(), &Request{Body: testBody})
	assertProblem(t, err, ErrValkeyConnection)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("cause should be preserved")
	}
}

func TestUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	prior := built()
	prior.CreatedAt = "2026-01-01T00:00:00Z"

	m.repo.EXPECT().Replace(gomock.Any(), testIMSI, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, fn store.UpdateFunc) (*model.Subscriber, error) {
			return fn(prior)
		})
	m.builder.EXPECT().Build(testBody, prior).Return(built(), nil)
	m.observer.EXPECT().ObserveValidation(nil)
	m.audit.EXPECT().Log(audit.OpUpdate, testIMSI, "operator", "")

	sub, err := uc.Update(context.Background(), &Request{Body: testBody, Admin: "operator"}, testIMSI)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if sub.UpdatedAt != "2026-03-01T00:00:00Z" {
		t.Errorf("UpdatedAt = %q", sub.UpdatedAt)
	}
}

// 競合による再試行があっても検証結果の記録は1回
func TestUpdateRetryObservesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	prior := built()
	m.repo.EXPECT().Replace(gomock.Any(), testIMSI, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, fn store.UpdateFunc) (*model.Subscriber, error) {
			if _, err := fn(prior); err != nil {
				return nil, err
			}
			return fn(prior)
		})
	m.builder.EXPECT().Build(testBody, prior).Return(built(), nil).Times(2)
	m.observer.EXPECT().ObserveValidation(nil).Times(1)
	m.audit.EXPECT().Log(audit.OpUpdate, testIMSI, "", "")

	if _, err := uc.Update(context.Background(), &Request{Body: testBody}, testIMSI); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestUpdateErrors(t *testing.T) {
	tests := []struct {
		name      string
		replace   func(fn store.UpdateFunc) (*model.Subscriber, error)
		buildErr  error
		wantBuild bool
		want      *ProblemError
	}{
		{
			name:    "not found",
			replace: func(store.UpdateFunc) (*model.Subscriber, error) { return nil, apperr.ErrSubscriberNotFound },
			want:    ErrSubscriberNotFound,
		},
		{
			name:    "concurrent update",
			replace: func(store.UpdateFunc) (*model.Subscriber, error) { return nil, apperr.ErrConcurrentUpdate },
			want:    ErrConcurrentUpdate,
		},
		{
			name:      "violations",
			replace:   func(fn store.UpdateFunc) (*model.Subscriber, error) { return fn(built()) },
			buildErr:  violations(),
			wantBuild: true,
			want:      &ProblemError{Status: http.StatusUnprocessableEntity, EventID: EventValidateErr},
		},
		{
			name:    "corrupt record",
			replace: func(store.UpdateFunc) (*model.Subscriber, error) { return nil, apperr.ErrCorruptRecord },
			want:    ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc, m := setupUseCase(ctrl)

			m.repo.EXPECT().Replace(gomock.Any(), testIMSI, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, fn store.UpdateFunc) (*model.Subscriber, error) {
					return tt.replace(fn)
				})
			if tt.wantBuild {
				m.builder.EXPECT().Build(testBody, gomock.Any()).Return(nil, tt.buildErr)
				m.observer.EXPECT().ObserveValidation(tt.buildErr)
			}

			_, err := uc.Update(context.Background(), &Request{Body: testBody}, testIMSI)
			assertProblem(t, err, tt.want)
		})
	}
}

func TestInvalidPathIMSI(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, _ := setupUseCase(ctrl)
	ctx := context.Background()

	for _, imsi := range []string{"", "00101abc", "0010100000000012"} {
		if _, err := uc.Get(ctx, imsi); !errors.Is(err, ErrInvalidIMSI) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidIMSI", imsi, err)
		}
		if _, err := uc.Update(ctx, &Request{}, imsi); !errors.Is(err, ErrInvalidIMSI) {
			t.Errorf("Update(%q) error = %v, want ErrInvalidIMSI", imsi, err)
		}
		if err := uc.Delete(ctx, &Request{}, imsi); !errors.Is(err, ErrInvalidIMSI) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidIMSI", imsi, err)
		}
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.repo.EXPECT().Get(gomock.Any(), testIMSI).Return(built(), nil)
	m.repo.EXPECT().Get(gomock.Any(), "001010000000002").Return(nil, apperr.ErrSubscriberNotFound)

	if _, err := uc.Get(context.Background(), testIMSI); err != nil {
		t.Errorf("Get() error = %v", err)
	}
	_, err := uc.Get(context.Background(), "001010000000002")
	assertProblem(t, err, ErrSubscriberNotFound)
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.repo.EXPECT().Delete(gomock.Any(), testIMSI).Return(nil)
	m.audit.EXPECT().Log(audit.OpDelete, testIMSI, "operator", "trace-9")
	m.repo.EXPECT().Delete(gomock.Any(), "001010000000002").Return(apperr.ErrSubscriberNotFound)

	if err := uc.Delete(context.Background(), &Request{Admin: "operator", TraceID: "trace-9"}, testIMSI); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	err := uc.Delete(context.Background(), &Request{}, "001010000000002")
	assertProblem(t, err, ErrSubscriberNotFound)
}

func TestValidate(t *testing.T) {
	t.Run("create dry run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc, m := setupUseCase(ctrl)

		m.builder.EXPECT().Build(testBody, nil).Return(built(), nil)
		m.observer.EXPECT().ObserveValidation(nil)

		if _, err := uc.Validate(context.Background(), &Request{Body: testBody}, ""); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("update dry run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc, m := setupUseCase(ctrl)

		prior := built()
		m.repo.EXPECT().Get(gomock.Any(), testIMSI).Return(prior, nil)
		m.builder.EXPECT().Build(testBody, prior).Return(built(), nil)
		m.observer.EXPECT().ObserveValidation(nil)

		if _, err := uc.Validate(context.Background(), &Request{Body: testBody}, testIMSI); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("update dry run on missing subscriber", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc, m := setupUseCase(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), testIMSI).Return(nil, apperr.ErrSubscriberNotFound)

		_, err := uc.Validate(context.Background(), &Request{Body: testBody}, testIMSI)
		assertProblem(t, err, ErrSubscriberNotFound)
	})
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc, m := setupUseCase(ctrl)

	m.repo.EXPECT().List(gomock.Any(), store.ListOptions{IMSIPrefix: "00101", Offset: 16, Limit: 16}).
		Return(&store.ListResult{Items: []*model.Subscriber{built()}, Total: 17}, nil)

	page, err := uc.List(context.Background(), "00101", 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 17 || page.Page != 2 || page.PageSize != 16 || len(page.Items) != 1 {
		t.Errorf("List() = %+v", page)
	}

	for _, tc := range []struct {
		prefix string
		page   int
	}{{"", 0}, {"00*", 1}, {"abc", 1}} {
		if _, err := uc.List(context.Background(), tc.prefix, tc.page); !errors.Is(err, ErrInvalidPage) {
			t.Errorf("List(%q, %d) error = %v, want ErrInvalidPage", tc.prefix, tc.page, err)
		}
	}
}

func TestProblemErrorLogLevel(t *testing.T) {
	tests := []struct {
		err  *ProblemError
		want string
	}{
		{ErrInternal, "ERROR"},
		{ErrValkeyConnection, "ERROR"},
		{ErrSubscriberNotFound, "INFO"},
		{ErrDuplicateIMSI, "WARN"},
	}
	for _, tt := range tests {
		if got := tt.err.LogLevel().String(); got != tt.want {
			t.Errorf("%s LogLevel() = %s, want %s", tt.err.EventID, got, tt.want)
		}
	}
}

func TestProblemErrorToProblemDetail(t *testing.T) {
	pe := newValidationProblem(validate.Violations{
		{FieldPath: "imsi", ErrorKind: validate.KindDigitFormat, Message: "imsi must contain only digits"},
		{FieldPath: "security", ErrorKind: validate.KindMutualExclusivity, Message: "exactly one of op or opc must be set"},
	})
	p := pe.ToProblemDetail()

	if p.Status != http.StatusUnprocessableEntity || p.Title != "Unprocessable Entity" {
		t.Errorf("problem = %d %q", p.Status, p.Title)
	}
	if p.Detail != "subscriber document has 2 violations" {
		t.Errorf("Detail = %q", p.Detail)
	}
	if len(p.InvalidParams) != 2 || p.InvalidParams[1].ErrorKind != "mutual_exclusivity" {
		t.Errorf("InvalidParams = %+v", p.InvalidParams)
	}
}
