package scheduler

import (
	"context"

	"github.com/vfg2006/crm-api/internal/usecases/contracts"
)

//go:generate mockgen -source=jobs.go -destination=mocks/jobs.go -package=mocks

// LeadScorer recalcula e grava o score de todos os leads
type LeadScorer interface {
	ScoreAll(ctx context.Context) (int, error)
}

// RenewalSweeper expira contratos vencidos e marca os lembretes de renovação
type RenewalSweeper interface {
	Sweep(ctx context.Context) (*contracts.SweepResult, error)
}
