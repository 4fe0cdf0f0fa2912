package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/scheduler/mocks"
	"github.com/vfg2006/crm-api/internal/usecases/contracts"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		LeadScoring: config.LeadScoring{CronSchedule: "0 2 * * *", Enabled: enabled},
		AMCRenewal:  config.AMCRenewal{CronSchedule: "0 7 * * *", Enabled: enabled, ReminderDays: 30},
	}
}

func TestLeadScoringSyncService_syncLeadScores(t *testing.T) {
	tests := []struct {
		name        string
		updated     int
		err         error
		wantUpdated int
		wantError   string
	}{
		{
			name:        "Execução com sucesso registra a quantidade atualizada",
			updated:     12,
			wantUpdated: 12,
		},
		{
			name:      "Erro no recálculo fica registrado no status",
			err:       errors.New("connection refused"),
			wantError: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			scorer := mocks.NewMockLeadScorer(ctrl)
			scorer.EXPECT().ScoreAll(gomock.Any()).Return(tt.updated, tt.err)

			service := NewLeadScoringSyncService(scorer, testConfig(true))
			service.syncLeadScores()

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.wantUpdated, status["last_updated"])
			assert.Equal(t, tt.wantError, status["last_error"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestLeadScoringSyncService_IgnoraExecucaoSobreposta(t *testing.T) {
	ctrl := gomock.NewController(t)
	scorer := mocks.NewMockLeadScorer(ctrl)
	// nenhuma chamada esperada

	service := NewLeadScoringSyncService(scorer, testConfig(true))
	service.syncRunning = true

	service.syncLeadScores()
	service.TriggerManualSync()

	assert.Equal(t, true, service.GetStatus()["sync_running"])
}

func TestLeadScoringSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	scorer := mocks.NewMockLeadScorer(ctrl)

	done := make(chan struct{})
	scorer.EXPECT().ScoreAll(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		close(done)
		return 3, nil
	})

	service := NewLeadScoringSyncService(scorer, testConfig(true))
	service.TriggerManualSync()

	<-done
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, service.GetStatus()["last_updated"])
}

func TestStart_Desabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)

	leadService := NewLeadScoringSyncService(mocks.NewMockLeadScorer(ctrl), testConfig(false))
	amcService := NewAMCRenewalService(mocks.NewMockRenewalSweeper(ctrl), testConfig(false))

	require.NoError(t, leadService.Start(context.Background()))
	require.NoError(t, amcService.Start(context.Background()))

	assert.Equal(t, false, leadService.GetStatus()["sync_enabled"])
	assert.Equal(t, false, amcService.GetStatus()["sync_enabled"])
}

func TestAMCRenewalService_sweepContracts(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mocks.NewMockRenewalSweeper(ctrl)
	sweeper.EXPECT().Sweep(gomock.Any()).Return(&contracts.SweepResult{Expired: 2, Reminded: 5}, nil)

	service := NewAMCRenewalService(sweeper, testConfig(true))
	service.sweepContracts()

	status := service.GetStatus()
	assert.Equal(t, 2, status["last_expired"])
	assert.Equal(t, 5, status["last_reminded"])
	assert.Equal(t, 30, status["reminder_days"])
	assert.Equal(t, "", status["last_error"])
}
