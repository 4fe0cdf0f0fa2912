package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	cachemocks "github.com/vfg2006/crm-api/infrastructure/cache/mocks"
	"github.com/vfg2006/crm-api/infrastructure/events"
	eventmocks "github.com/vfg2006/crm-api/infrastructure/events/mocks"
	repomocks "github.com/vfg2006/crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	recordmocks "github.com/vfg2006/crm-api/internal/usecases/records/mocks"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestContractMonths(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  int
	}{
		{"ano calendário", date(2024, 1, 1), date(2024, 12, 31), 12},
		{"semestre no meio do mês", date(2024, 1, 15), date(2024, 7, 14), 6},
		{"mês incompleto não conta", date(2024, 1, 31), date(2024, 4, 29), 2},
		{"período curto conta como um mês", date(2024, 1, 1), date(2024, 1, 10), 1},
		{"dezoito meses", date(2024, 1, 1), date(2025, 6, 30), 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContractMonths(*tt.start, *tt.end))
		})
	}
}

func TestInstallmentCount(t *testing.T) {
	tests := []struct {
		frequency string
		months    int
		want      int
	}{
		{domain.BillingMonthly, 12, 12},
		{domain.BillingQuarterly, 12, 4},
		{domain.BillingHalfYearly, 12, 2},
		{domain.BillingYearly, 12, 1},
		{domain.BillingOneTime, 36, 1},
		{domain.BillingQuarterly, 7, 3},
		{domain.BillingYearly, 18, 2},
		{domain.BillingMonthly, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			assert.Equal(t, tt.want, InstallmentCount(tt.frequency, tt.months))
		})
	}
}

func TestPlanner_Schedule(t *testing.T) {
	planner, err := NewPlanner("")
	require.NoError(t, err)

	t.Run("trimestral divide o valor igualmente", func(t *testing.T) {
		schedule, err := planner.Schedule(&domain.AMCContract{
			Base:             domain.Base{ID: "amc-1"},
			StartDate:        date(2024, 1, 1),
			EndDate:          date(2024, 12, 31),
			ContractValue:    1000,
			BillingFrequency: domain.BillingQuarterly,
		})
		require.NoError(t, err)

		require.Len(t, schedule.Installments, 4)
		assert.Equal(t, 1000.0, schedule.Total)
		for i, month := range []time.Month{time.January, time.April, time.July, time.October} {
			assert.Equal(t, i+1, schedule.Installments[i].Number)
			assert.Equal(t, month, schedule.Installments[i].DueDate.Month())
			assert.Equal(t, 250.0, schedule.Installments[i].Amount)
		}
	})

	t.Run("resíduo do arredondamento na última parcela", func(t *testing.T) {
		schedule, err := planner.Schedule(&domain.AMCContract{
			StartDate:        date(2024, 1, 1),
			EndDate:          date(2024, 12, 31),
			ContractValue:    100,
			BillingFrequency: domain.BillingMonthly,
		})
		require.NoError(t, err)

		require.Len(t, schedule.Installments, 12)
		assert.Equal(t, 8.33, schedule.Installments[0].Amount)
		assert.Equal(t, 8.37, schedule.Installments[11].Amount)

		var sum float64
		for _, inst := range schedule.Installments {
			sum += inst.Amount
		}
		assert.InDelta(t, 100, sum, 0.001)
	})

	t.Run("pagamento único", func(t *testing.T) {
		schedule, err := planner.Schedule(&domain.AMCContract{
			StartDate:        date(2024, 1, 1),
			EndDate:          date(2026, 12, 31),
			ContractValue:    5000,
			BillingFrequency: domain.BillingOneTime,
		})
		require.NoError(t, err)

		require.Len(t, schedule.Installments, 1)
		assert.Equal(t, 5000.0, schedule.Installments[0].Amount)
	})

	t.Run("contrato sem período", func(t *testing.T) {
		_, err := planner.Schedule(&domain.AMCContract{ContractValue: 100})
		assert.Error(t, err)
	})
}

func TestPlanner_FormulaConfigurada(t *testing.T) {
	planner, err := NewPlanner("contract_value * 1.18 / installments")
	require.NoError(t, err)

	schedule, err := planner.Schedule(&domain.AMCContract{
		StartDate:        date(2024, 1, 1),
		EndDate:          date(2024, 12, 31),
		ContractValue:    1000,
		BillingFrequency: domain.BillingHalfYearly,
	})
	require.NoError(t, err)

	require.Len(t, schedule.Installments, 2)
	assert.Equal(t, 590.0, schedule.Installments[0].Amount)
	assert.Equal(t, 1180.0, schedule.Total)
}

func TestNewPlanner_FormulaInvalida(t *testing.T) {
	_, err := NewPlanner("contract_value / (")
	assert.Error(t, err)
}

type fixture struct {
	records   *recordmocks.MockRecordService[domain.AMCContract]
	repo      *repomocks.MockRecordRepository[domain.AMCContract]
	cache     *cachemocks.MockCache
	publisher *eventmocks.MockPublisher
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		records:   recordmocks.NewMockRecordService[domain.AMCContract](ctrl),
		repo:      repomocks.NewMockRecordRepository[domain.AMCContract](ctrl),
		cache:     cachemocks.NewMockCache(ctrl),
		publisher: eventmocks.NewMockPublisher(ctrl),
	}

	planner, err := NewPlanner("")
	require.NoError(t, err)

	f.service = NewService(f.records, f.repo, planner, f.cache, f.publisher, 30)
	f.service.now = func() time.Time { return now }
	return f
}

func TestSweep(t *testing.T) {
	f := newFixture(t)

	contracts := []*domain.AMCContract{
		{Base: domain.Base{ID: "vencido"}, EndDate: date(2024, 3, 19), Status: domain.AMCStatusActive},
		{Base: domain.Base{ID: "na-janela"}, EndDate: date(2024, 4, 10), Status: domain.AMCStatusActive},
		{Base: domain.Base{ID: "ja-lembrado"}, EndDate: date(2024, 4, 15), Status: domain.AMCStatusActive, RenewalReminderSent: true},
		{Base: domain.Base{ID: "vence-hoje"}, EndDate: date(2024, 3, 20), Status: domain.AMCStatusActive},
	}

	f.repo.EXPECT().Find(gomock.Any(), gomock.Any()).Return(contracts, nil)
	f.repo.EXPECT().Patch(gomock.Any(), "vencido", map[string]any{"status": domain.AMCStatusExpired}).Return(nil)
	f.repo.EXPECT().Patch(gomock.Any(), "na-janela", map[string]any{"renewal_reminder_sent": true}).Return(nil)
	f.repo.EXPECT().Patch(gomock.Any(), "vence-hoje", map[string]any{"renewal_reminder_sent": true}).Return(nil)

	var published []string
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event events.Event) error {
			published = append(published, event.Type+":"+event.ID)
			return nil
		}).
		Times(3)
	f.cache.EXPECT().Delete(gomock.Any(), cache.KeyDashboard, cache.KeyFollowUps).Return(nil)

	result, err := f.service.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &SweepResult{Expired: 1, Reminded: 2}, result)
	assert.Equal(t, []string{
		events.TypeAMCExpired + ":vencido",
		events.TypeAMCRenewalDue + ":na-janela",
		events.TypeAMCRenewalDue + ":vence-hoje",
	}, published)
}

func TestSweep_SemAlteracoesNaoInvalidaCache(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.AMCContract{}, nil)

	result, err := f.service.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &SweepResult{}, result)
}

func TestRenew(t *testing.T) {
	f := newFixture(t)

	current := &domain.AMCContract{
		Base:             domain.Base{ID: "amc-1"},
		ContractNumber:   "AMC-2023-001",
		AccountID:        "acc-1",
		StartDate:        date(2023, 4, 1),
		EndDate:          date(2024, 3, 31),
		ContractValue:    12000,
		BillingFrequency: domain.BillingQuarterly,
		Status:           domain.AMCStatusActive,
	}

	f.records.EXPECT().Get(gomock.Any(), "amc-1").Return(current, nil)
	f.records.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.AMCContract) (*domain.AMCContract, error) {
			c.ID = "amc-2"
			return c, nil
		})
	f.records.EXPECT().
		Update(gomock.Any(), "amc-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, apply func(*domain.AMCContract) error) (*domain.AMCContract, error) {
			return current, apply(current)
		})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	value := 13000.0
	renewed, err := f.service.Renew(context.Background(), "amc-1", domain.RenewAMCRequest{ContractValue: &value})

	require.NoError(t, err)
	assert.Equal(t, *date(2024, 4, 1), *renewed.StartDate)
	assert.Equal(t, *date(2025, 3, 31), *renewed.EndDate)
	assert.Equal(t, 13000.0, renewed.ContractValue)
	assert.Equal(t, domain.AMCStatusActive, renewed.Status)
	require.NotNil(t, renewed.RenewedFromID)
	assert.Equal(t, "amc-1", *renewed.RenewedFromID)
	assert.Equal(t, domain.BillingQuarterly, renewed.BillingFrequency)
	assert.Equal(t, domain.AMCStatusRenewed, current.Status)
}

func TestRenew_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	f.records.EXPECT().Get(gomock.Any(), "amc-1").Return(&domain.AMCContract{
		Base:   domain.Base{ID: "amc-1"},
		Status: domain.AMCStatusRenewed,
	}, nil)

	_, err := f.service.Renew(context.Background(), "amc-1", domain.RenewAMCRequest{})

	assert.ErrorIs(t, err, records.ErrInvalidState)
	assert.Equal(t, apiErrors.ErrInvalidState, records.Code(err))
}
