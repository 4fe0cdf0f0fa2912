package insighting

import (
	"context"

	"github.com/vfg2006/crm-api/internal/domain"
)

// FollowUpInsighter define a interface para obter as ações de acompanhamento sugeridas
type FollowUpInsighter interface {
	// FollowUps agrega as sugestões de leads, cases e contratos AMC
	FollowUps(ctx context.Context) ([]domain.SuggestedAction, error)

	// TopLeads retorna os leads abertos de maior score com suas ações
	TopLeads(ctx context.Context, limit int) ([]*domain.LeadInsight, error)
}

// DashboardInsighter define a interface para obter o resumo do dashboard
type DashboardInsighter interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

// CombinedInsighter é a interface completa usada pelos handlers
type CombinedInsighter interface {
	FollowUpInsighter
	DashboardInsighter
}
