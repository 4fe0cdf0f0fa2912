package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	cachemocks "github.com/vfg2006/crm-api/infrastructure/cache/mocks"
	"github.com/vfg2006/crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-api/internal/domain"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	leads      *mocks.MockRecordRepository[domain.Lead]
	cases      *mocks.MockRecordRepository[domain.Case]
	complaints *mocks.MockRecordRepository[domain.Complaint]
	deals      *mocks.MockRecordRepository[domain.Deal]
	contracts  *mocks.MockRecordRepository[domain.AMCContract]
	accounts   *mocks.MockRecordRepository[domain.Account]
}

func newFixture(t *testing.T, c cache.Cache) (*Service, fixture) {
	ctrl := gomock.NewController(t)
	f := fixture{
		leads:      mocks.NewMockRecordRepository[domain.Lead](ctrl),
		cases:      mocks.NewMockRecordRepository[domain.Case](ctrl),
		complaints: mocks.NewMockRecordRepository[domain.Complaint](ctrl),
		deals:      mocks.NewMockRecordRepository[domain.Deal](ctrl),
		contracts:  mocks.NewMockRecordRepository[domain.AMCContract](ctrl),
		accounts:   mocks.NewMockRecordRepository[domain.Account](ctrl),
	}

	service := newService(Repositories{
		Leads:        f.leads,
		Cases:        f.cases,
		Complaints:   f.complaints,
		Deals:        f.deals,
		AMCContracts: f.contracts,
		Counters: map[domain.Kind]Counter{
			domain.KindLead:    f.leads,
			domain.KindAccount: f.accounts,
		},
	}, c, time.Minute, 30, func() time.Time { return now })

	return service, f
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestDashboard(t *testing.T) {
	service, f := newFixture(t, cache.Noop())

	expiring := &domain.AMCContract{
		Base:    domain.Base{ID: "amc-1"},
		Status:  domain.AMCStatusActive,
		EndDate: datePtr(now.AddDate(0, 0, 10)),
	}

	f.leads.EXPECT().Count(gomock.Any(), nil).Return(12, nil)
	f.accounts.EXPECT().Count(gomock.Any(), nil).Return(4, nil)
	f.leads.EXPECT().GroupCount(gomock.Any(), "status", nil).Return(map[string]int{"new": 8, "qualified": 4}, nil)
	f.leads.EXPECT().GroupCount(gomock.Any(), "grade", nil).Return(map[string]int{"hot": 2, "cold": 10}, nil)
	f.cases.EXPECT().GroupCount(gomock.Any(), "priority", openCases).Return(map[string]int{"high": 1}, nil)
	f.complaints.EXPECT().Count(gomock.Any(), openComplaints).Return(3, nil)
	f.deals.EXPECT().GroupSum(gomock.Any(), "stage", "amount", nil).Return(map[string]float64{"proposal": 250000}, nil)
	f.contracts.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.AMCContract{expiring}, nil)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[domain.Kind]int{domain.KindLead: 12, domain.KindAccount: 4}, dashboard.Counts)
	assert.Equal(t, 8, dashboard.LeadsByStatus["new"])
	assert.Equal(t, 2, dashboard.LeadsByGrade["hot"])
	assert.Equal(t, 1, dashboard.OpenCasesByPriority["high"])
	assert.Equal(t, 3, dashboard.OpenComplaints)
	assert.Equal(t, 250000.0, dashboard.PipelineByStage["proposal"])
	require.Len(t, dashboard.ExpiringAMCContracts, 1)
	assert.Equal(t, "amc-1", dashboard.ExpiringAMCContracts[0].ID)
	assert.Equal(t, now, dashboard.GeneratedAt)
}

func TestDashboard_ErroEmUmaConsulta(t *testing.T) {
	service, f := newFixture(t, cache.Noop())

	dbErr := errors.New("connection refused")

	f.leads.EXPECT().Count(gomock.Any(), nil).Return(0, nil).AnyTimes()
	f.accounts.EXPECT().Count(gomock.Any(), nil).Return(0, nil).AnyTimes()
	f.leads.EXPECT().GroupCount(gomock.Any(), gomock.Any(), nil).Return(map[string]int{}, nil).AnyTimes()
	f.cases.EXPECT().GroupCount(gomock.Any(), "priority", gomock.Any()).Return(map[string]int{}, nil).AnyTimes()
	f.complaints.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
	f.deals.EXPECT().GroupSum(gomock.Any(), "stage", "amount", nil).Return(nil, dbErr)
	f.contracts.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	dashboard, err := service.Dashboard(context.Background())

	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, dbErr)
}

func TestDashboard_UsaCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cachemocks.NewMockCache(ctrl)

	mockCache.EXPECT().
		Get(gomock.Any(), cache.KeyDashboard, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
			dest.(*domain.Dashboard).OpenComplaints = 7
			return true, nil
		})

	// nenhum repositório deve ser consultado
	service, _ := newFixture(t, mockCache)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, dashboard.OpenComplaints)
}

func TestFollowUps(t *testing.T) {
	service, f := newFixture(t, cache.Noop())

	f.leads.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.Lead{
		{
			Base:      domain.Base{ID: "lead-1"},
			FirstName: "Asha",
			Company:   "State University",
			Email:     "asha@example.edu",
			Status:    domain.LeadStatusNew,
			Priority:  domain.PriorityMedium,
		},
	}, nil)
	f.cases.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.Case{
		{
			Base:     domain.Base{ID: "case-1", CreatedAt: now.AddDate(0, 0, -3)},
			Subject:  "Microscope not starting",
			Priority: domain.PriorityCritical,
			Status:   domain.CaseStatusNew,
		},
	}, nil)
	f.contracts.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.AMCContract{
		{
			Base:           domain.Base{ID: "amc-1"},
			ContractNumber: "AMC-1",
			Status:         domain.AMCStatusActive,
			EndDate:        datePtr(now.AddDate(0, 0, 20)),
		},
	}, nil)

	actions, err := service.FollowUps(context.Background())
	require.NoError(t, err)
	require.Len(t, actions, 3)

	// critical vem antes de medium
	assert.Equal(t, domain.ActionEscalateCase, actions[0].Type)
	assert.Equal(t, "case-1", actions[0].EntityID)

	var types []string
	for _, a := range actions {
		types = append(types, a.Type)
	}
	assert.ElementsMatch(t, []string{domain.ActionEscalateCase, domain.ActionInitialOutreach, domain.ActionRenewalReminder}, types)
}

func TestTopLeads(t *testing.T) {
	service, f := newFixture(t, cache.Noop())

	f.leads.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*domain.Lead{
		{Base: domain.Base{ID: "frio"}, FirstName: "Ravi", Company: "Acme", Status: domain.LeadStatusNew},
		{Base: domain.Base{ID: "quente"}, FirstName: "Asha", Company: "State University", Status: domain.LeadStatusQualified,
			Source: domain.LeadSourceReferral, Budget: 1500000, Priority: domain.PriorityHigh},
		{Base: domain.Base{ID: "morno"}, FirstName: "Meera", Company: "City Hospital", Status: domain.LeadStatusContacted},
	}, nil)

	insights, err := service.TopLeads(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, insights, 2)

	assert.Equal(t, "quente", insights[0].Lead.ID)
	assert.Equal(t, domain.GradeHot, insights[0].Score.Grade)
	assert.Equal(t, "morno", insights[1].Lead.ID)
	assert.GreaterOrEqual(t, insights[0].Score.Score, insights[1].Score.Score)
}
