package records_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	cachemocks "github.com/vfg2006/crm-api/infrastructure/cache/mocks"
	"github.com/vfg2006/crm-api/infrastructure/events"
	eventmocks "github.com/vfg2006/crm-api/infrastructure/events/mocks"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	repomocks "github.com/vfg2006/crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	t         *testing.T
	repo      *repomocks.MockRecordRepository[domain.Lead]
	cache     *cachemocks.MockCache
	publisher *eventmocks.MockPublisher
	service   *records.Service[domain.Lead, *domain.Lead]
}

func newFixture(t *testing.T, opts ...records.Option[domain.Lead, *domain.Lead]) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		t:         t,
		repo:      repomocks.NewMockRecordRepository[domain.Lead](ctrl),
		cache:     cachemocks.NewMockCache(ctrl),
		publisher: eventmocks.NewMockPublisher(ctrl),
	}

	opts = append([]records.Option[domain.Lead, *domain.Lead]{
		records.WithClock[domain.Lead, *domain.Lead](func() time.Time { return now }),
	}, opts...)
	f.service = records.NewService[domain.Lead, *domain.Lead](domain.KindLead, f.repo, f.cache, f.publisher, opts...)
	return f
}

// expectWrite registra a publicação do evento e a invalidação do cache que seguem toda escrita
func (f *fixture) expectWrite(eventType string) {
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event events.Event) error {
			assert.Equal(f.t, eventType, event.Type)
			assert.Equal(f.t, domain.KindLead, event.Kind)
			assert.Equal(f.t, now, event.At)
			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), cache.KeyDashboard, cache.KeyFollowUps).Return(nil)
}

func recordCode(t *testing.T, err error) string {
	t.Helper()
	var recordErr *records.RecordError
	require.True(t, errors.As(err, &recordErr), "erro esperado do tipo RecordError: %v", err)
	return recordErr.Code
}

func TestCreate_Validacao(t *testing.T) {
	tests := []struct {
		name     string
		lead     domain.Lead
		wantCode string
	}{
		{
			name:     "campos obrigatórios vazios",
			lead:     domain.Lead{FirstName: "  ", Company: ""},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "email malformado",
			lead:     domain.Lead{FirstName: "Asha", Company: "State University", Email: "asha@"},
			wantCode: apiErrors.ErrInvalidFormat,
		},
		{
			name:     "status fora da lista",
			lead:     domain.Lead{FirstName: "Asha", Company: "State University", Status: "arquivado"},
			wantCode: apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			lead := tt.lead
			_, err := f.service.Create(context.Background(), &lead)

			require.Error(t, err)
			assert.ErrorIs(t, err, records.ErrValidation)
			assert.Equal(t, tt.wantCode, recordCode(t, err))
		})
	}
}

func TestCreate(t *testing.T) {
	var hookCalls int
	f := newFixture(t, records.WithHook[domain.Lead, *domain.Lead](func(_ context.Context, lead *domain.Lead, at time.Time) error {
		hookCalls++
		assert.Equal(t, now, at)
		lead.Score = 42
		return nil
	}))

	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lead *domain.Lead) error {
			assert.NotEmpty(t, lead.ID)
			assert.Equal(t, now, lead.CreatedAt)
			assert.Equal(t, now, lead.UpdatedAt)
			return nil
		})
	f.expectWrite(events.TypeCreated)

	created, err := f.service.Create(context.Background(), &domain.Lead{
		FirstName: "Asha",
		Company:   "State University",
		Email:     " Asha.Rao@Example.edu ",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, hookCalls)
	assert.Equal(t, 42, created.Score)
	assert.Equal(t, "asha.rao@example.edu", created.Email)
	assert.Equal(t, domain.LeadStatusNew, created.Status)
	assert.Equal(t, domain.LeadSourceWebsite, created.Source)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestCreate_HookComErro(t *testing.T) {
	f := newFixture(t, records.WithHook[domain.Lead, *domain.Lead](func(context.Context, *domain.Lead, time.Time) error {
		return errors.New("produto sem preço")
	}))

	_, err := f.service.Create(context.Background(), &domain.Lead{FirstName: "Asha", Company: "State University"})

	require.Error(t, err)
	assert.Equal(t, apiErrors.ErrInvalidFormat, recordCode(t, err))
}

func TestCreate_ErroDeRepositorio(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
		wantErr  error
	}{
		{
			name:     "chave duplicada",
			repoErr:  &repository.ConstraintError{Code: "23505", Constraint: "leads_email_key"},
			wantCode: apiErrors.ErrDuplicateRecord,
			wantErr:  records.ErrDuplicate,
		},
		{
			name:     "chave estrangeira",
			repoErr:  &repository.ConstraintError{Code: "23503", Constraint: "leads_owner_id_fkey"},
			wantCode: apiErrors.ErrRelatedNotFound,
			wantErr:  records.ErrRelatedNotFound,
		},
		{
			name:     "falha genérica",
			repoErr:  errors.New("connection reset"),
			wantCode: apiErrors.ErrDatabaseOperation,
			wantErr:  records.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tt.repoErr)

			_, err := f.service.Create(context.Background(), &domain.Lead{FirstName: "Asha", Company: "State University"})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, recordCode(t, err))
		})
	}
}

func TestGet_NaoEncontrado(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetByID(gomock.Any(), "l-404").Return(nil, nil)

	_, err := f.service.Get(context.Background(), "l-404")

	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.Equal(t, apiErrors.ErrRecordNotFound, records.Code(err))
}

func TestUpdate_PreservaIDECriacao(t *testing.T) {
	created := now.Add(-48 * time.Hour)
	stored := &domain.Lead{
		Base:      domain.Base{ID: "l-1", CreatedAt: created, UpdatedAt: created},
		FirstName: "Asha",
		Company:   "State University",
		Status:    domain.LeadStatusNew,
	}

	f := newFixture(t)
	f.repo.EXPECT().GetByID(gomock.Any(), "l-1").Return(stored, nil)
	f.repo.EXPECT().Update(gomock.Any(), stored).Return(nil)
	f.expectWrite(events.TypeUpdated)

	updated, err := f.service.Update(context.Background(), "l-1", func(lead *domain.Lead) error {
		lead.ID = "outro-id"
		lead.CreatedAt = time.Time{}
		lead.Status = "Contacted"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "l-1", updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, now, updated.UpdatedAt)
	assert.Equal(t, domain.LeadStatusContacted, updated.Status)
}

func TestUpdate_ValidacaoNaoPersiste(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetByID(gomock.Any(), "l-1").Return(&domain.Lead{
		Base:      domain.Base{ID: "l-1"},
		FirstName: "Asha",
		Company:   "State University",
	}, nil)

	_, err := f.service.Update(context.Background(), "l-1", func(lead *domain.Lead) error {
		lead.Company = ""
		return nil
	})

	assert.Equal(t, apiErrors.ErrMissingRequiredData, recordCode(t, err))
}

func TestDelete(t *testing.T) {
	t.Run("remove e publica", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Delete(gomock.Any(), "l-1").Return(true, nil)
		f.expectWrite(events.TypeDeleted)

		assert.NoError(t, f.service.Delete(context.Background(), "l-1"))
	})

	t.Run("registro inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Delete(gomock.Any(), "l-404").Return(false, nil)

		err := f.service.Delete(context.Background(), "l-404")
		assert.Equal(t, apiErrors.ErrRecordNotFound, records.Code(err))
	})
}

func TestCreate_FalhaAoPublicarNaoAfetaRequisicao(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker fora do ar"))
	f.cache.EXPECT().Delete(gomock.Any(), cache.KeyDashboard, cache.KeyFollowUps).Return(errors.New("redis fora do ar"))

	_, err := f.service.Create(context.Background(), &domain.Lead{FirstName: "Asha", Company: "State University"})

	assert.NoError(t, err)
}

func TestImportRow(t *testing.T) {
	f := newFixture(t)

	var saved *domain.Lead
	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lead *domain.Lead) error {
			saved = lead
			return nil
		})
	f.expectWrite(events.TypeCreated)

	id, err := f.service.ImportRow(context.Background(), map[string]string{
		"first_name":        "Asha",
		"company":           "State University",
		"budget":            "2,50,000",
		"tags":              "lab; microscopy",
		"last_contacted_at": "2024-01-15",
		"status":            "",
	}, 7)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID, id)
	assert.Equal(t, 250000.0, saved.Budget)
	assert.Equal(t, []string{"lab", "microscopy"}, []string(saved.Tags))
	require.NotNil(t, saved.LastContactedAt)
	assert.Equal(t, time.January, saved.LastContactedAt.Month())
	require.NotNil(t, saved.OwnerID)
	assert.Equal(t, 7, *saved.OwnerID)
	assert.Equal(t, domain.LeadStatusNew, saved.Status)
}

func TestAll_PercorrePaginas(t *testing.T) {
	f := newFixture(t)

	page := func(n int) []*domain.Lead {
		items := make([]*domain.Lead, n)
		for i := range items {
			items[i] = &domain.Lead{}
		}
		return items
	}

	gomock.InOrder(
		f.repo.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter domain.ListFilter) ([]*domain.Lead, int, error) {
				assert.Equal(t, 1, filter.Page)
				assert.Equal(t, domain.MaxPageSize, filter.PageSize)
				return page(domain.MaxPageSize), 130, nil
			}),
		f.repo.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter domain.ListFilter) ([]*domain.Lead, int, error) {
				assert.Equal(t, 2, filter.Page)
				return page(30), 130, nil
			}),
	)

	all, err := f.service.All(context.Background(), domain.ListFilter{Page: 5, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, all, 130)
}
