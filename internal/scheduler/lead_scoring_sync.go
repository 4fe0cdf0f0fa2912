package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/config"
)

// LeadScoringSyncConfig representa a configuração do agendador de score de leads
type LeadScoringSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// LeadScoringSyncService gerencia o agendamento e execução do recálculo de score dos leads
type LeadScoringSyncService struct {
	scheduler           *gocron.Scheduler
	config              LeadScoringSyncConfig
	scorer              LeadScorer
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastUpdated         int
	lastError           string
}

// NewLeadScoringSyncService cria uma nova instância do serviço de recálculo de score
func NewLeadScoringSyncService(scorer LeadScorer, appConfig *config.Config) *LeadScoringSyncService {
	syncConfig := LeadScoringSyncConfig{
		CronSchedule: appConfig.LeadScoring.CronSchedule,
		SyncEnabled:  appConfig.LeadScoring.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de score de leads carregada")

	return &LeadScoringSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		scorer:    scorer,
		ctx:       context.Background(),
	}
}

// Start inicia o agendador
func (s *LeadScoringSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo de score de leads desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de score de leads")
	s.ctx = ctx

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.syncLeadScores)
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de score de leads: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de score de leads")
		s.scheduler.Stop()
	}()

	return nil
}

// syncLeadScores executa o recálculo, ignorando a chamada se outra execução estiver em andamento
func (s *LeadScoringSyncService) syncLeadScores() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de score de leads já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	updated, err := s.scorer.ScoreAll(s.ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastUpdated = updated
	s.lastError = ""

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao recalcular score dos leads")
		return
	}

	logrus.WithFields(logrus.Fields{
		"updated":  updated,
		"duration": time.Since(startTime).String(),
	}).Info("Recálculo de score de leads concluído")
}

// TriggerManualSync inicia manualmente um recálculo de score
func (s *LeadScoringSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de score de leads já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual de score de leads")
	go s.syncLeadScores()
}

// GetStatus retorna o status atual do recálculo
func (s *LeadScoringSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_updated":           s.lastUpdated,
		"last_error":             s.lastError,
	}
}
