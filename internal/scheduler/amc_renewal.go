package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/usecases/contracts"
)

// AMCRenewalConfig representa a configuração do agendador de renovação de contratos
type AMCRenewalConfig struct {
	CronSchedule string
	SyncEnabled  bool
	ReminderDays int
}

// AMCRenewalService gerencia o agendamento da varredura de contratos AMC
type AMCRenewalService struct {
	scheduler           *gocron.Scheduler
	config              AMCRenewalConfig
	sweeper             RenewalSweeper
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          contracts.SweepResult
	lastError           string
}

// NewAMCRenewalService cria uma nova instância do serviço de varredura de contratos
func NewAMCRenewalService(sweeper RenewalSweeper, appConfig *config.Config) *AMCRenewalService {
	renewalConfig := AMCRenewalConfig{
		CronSchedule: appConfig.AMCRenewal.CronSchedule,
		SyncEnabled:  appConfig.AMCRenewal.Enabled,
		ReminderDays: appConfig.AMCRenewal.ReminderDays,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": renewalConfig.CronSchedule,
		"sync_enabled":  renewalConfig.SyncEnabled,
		"reminder_days": renewalConfig.ReminderDays,
	}).Info("Configuração do agendador de renovação de contratos AMC carregada")

	return &AMCRenewalService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    renewalConfig,
		sweeper:   sweeper,
		ctx:       context.Background(),
	}
}

// Start inicia o agendador
func (s *AMCRenewalService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Varredura de contratos AMC desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de renovação de contratos AMC")
	s.ctx = ctx

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.sweepContracts)
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de contratos AMC: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de renovação de contratos AMC")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AMCRenewalService) sweepContracts() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de contratos AMC já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.sweeper.Sweep(s.ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = ""
	if result != nil {
		s.lastResult = *result
	}

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro na varredura de contratos AMC")
	}
}

// TriggerManualSync inicia manualmente uma varredura
func (s *AMCRenewalService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de contratos AMC já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando varredura manual de contratos AMC")
	go s.sweepContracts()
}

// GetStatus retorna o status atual da varredura
func (s *AMCRenewalService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"reminder_days":          s.config.ReminderDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_expired":           s.lastResult.Expired,
		"last_reminded":          s.lastResult.Reminded,
		"last_error":             s.lastError,
	}
}
