package insighting

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/scoring"
	"github.com/vfg2006/crm-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopLeads = 10
	MaxTopLeads     = 100
)

// Counter é o pedaço do repositório usado para contar registros de qualquer tipo
type Counter interface {
	Count(ctx context.Context, where repository.Condition) (int, error)
}

// Repositories agrupa os repositórios consultados pelos insights
type Repositories struct {
	Leads        repository.RecordRepository[domain.Lead]
	Cases        repository.RecordRepository[domain.Case]
	Complaints   repository.RecordRepository[domain.Complaint]
	Deals        repository.RecordRepository[domain.Deal]
	AMCContracts repository.RecordRepository[domain.AMCContract]
	Counters     map[domain.Kind]Counter
}

// Service implementa CombinedInsighter sobre os repositórios de registros
type Service struct {
	repos        Repositories
	cache        cache.Cache
	ttl          time.Duration
	reminderDays int
	now          func() time.Time
}

// NewService cria uma nova instância do serviço de insights
func NewService(repos Repositories, c cache.Cache, ttl time.Duration, reminderDays int) CombinedInsighter {
	return newService(repos, c, ttl, reminderDays, time.Now)
}

func newService(repos Repositories, c cache.Cache, ttl time.Duration, reminderDays int, now func() time.Time) *Service {
	if c == nil {
		c = cache.Noop()
	}
	return &Service{
		repos:        repos,
		cache:        c,
		ttl:          ttl,
		reminderDays: reminderDays,
		now:          now,
	}
}

var (
	openLeads = squirrel.NotEq{"status": []string{
		domain.LeadStatusConverted, domain.LeadStatusLost, domain.LeadStatusUnqualified,
	}}
	openCases      = squirrel.NotEq{"status": []string{domain.CaseStatusResolved, domain.CaseStatusClosed}}
	openComplaints = squirrel.NotEq{"status": []string{domain.ComplaintStatusResolved, domain.ComplaintStatusClosed}}
)

func (s *Service) expiringContracts(now time.Time) repository.Condition {
	return squirrel.And{
		squirrel.Eq{"status": domain.AMCStatusActive},
		squirrel.LtOrEq{"end_date": utils.StartOfDay(now).AddDate(0, 0, s.reminderDays)},
	}
}

// Dashboard executa as consultas em paralelo e guarda o resultado no cache
func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	cached := &domain.Dashboard{}
	if hit, err := s.cache.Get(ctx, cache.KeyDashboard, cached); err != nil {
		logrus.WithError(err).Warn("Erro ao ler dashboard do cache")
	} else if hit {
		return cached, nil
	}

	startTime := time.Now()
	now := s.now()

	dashboard := &domain.Dashboard{
		Counts:               make(map[domain.Kind]int, len(s.repos.Counters)),
		ExpiringAMCContracts: []*domain.AMCContract{},
		GeneratedAt:          now,
	}

	// Mutex para proteger o mapa de contagens
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for kind, counter := range s.repos.Counters {
		g.Go(func() error {
			total, err := counter.Count(gctx, nil)
			if err != nil {
				return fmt.Errorf("erro ao contar %s: %w", kind, err)
			}
			mu.Lock()
			dashboard.Counts[kind] = total
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() (err error) {
		dashboard.LeadsByStatus, err = s.repos.Leads.GroupCount(gctx, "status", nil)
		return wrap("leads por status", err)
	})
	g.Go(func() (err error) {
		dashboard.LeadsByGrade, err = s.repos.Leads.GroupCount(gctx, "grade", nil)
		return wrap("leads por grade", err)
	})
	g.Go(func() (err error) {
		dashboard.OpenCasesByPriority, err = s.repos.Cases.GroupCount(gctx, "priority", openCases)
		return wrap("cases abertos", err)
	})
	g.Go(func() (err error) {
		dashboard.OpenComplaints, err = s.repos.Complaints.Count(gctx, openComplaints)
		return wrap("reclamações abertas", err)
	})
	g.Go(func() (err error) {
		dashboard.PipelineByStage, err = s.repos.Deals.GroupSum(gctx, "stage", "amount", nil)
		return wrap("pipeline", err)
	})
	g.Go(func() error {
		contracts, err := s.repos.AMCContracts.Find(gctx, repository.FindOptions{
			Where:   s.expiringContracts(now),
			OrderBy: "end_date",
		})
		if err != nil {
			return wrap("contratos AMC", err)
		}
		dashboard.ExpiringAMCContracts = contracts
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Erro ao montar dashboard")
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.KeyDashboard, dashboard, s.ttl); err != nil {
		logrus.WithError(err).Warn("Erro ao gravar dashboard no cache")
	}

	logrus.Debugf("Dashboard montado em %v", time.Since(startTime))
	return dashboard, nil
}

// FollowUps reúne as sugestões de leads, cases e contratos, ordenadas por prioridade e vencimento
func (s *Service) FollowUps(ctx context.Context) ([]domain.SuggestedAction, error) {
	var cached []domain.SuggestedAction
	if hit, err := s.cache.Get(ctx, cache.KeyFollowUps, &cached); err != nil {
		logrus.WithError(err).Warn("Erro ao ler sugestões do cache")
	} else if hit {
		return cached, nil
	}

	now := s.now()

	var (
		leads     []*domain.Lead
		cases     []*domain.Case
		contracts []*domain.AMCContract
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leads, err = s.repos.Leads.Find(gctx, repository.FindOptions{Where: openLeads})
		return wrap("leads abertos", err)
	})
	g.Go(func() (err error) {
		cases, err = s.repos.Cases.Find(gctx, repository.FindOptions{Where: openCases})
		return wrap("cases abertos", err)
	})
	g.Go(func() (err error) {
		contracts, err = s.repos.AMCContracts.Find(gctx, repository.FindOptions{Where: s.expiringContracts(now)})
		return wrap("contratos AMC", err)
	})
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Erro ao buscar registros para sugestões")
		return nil, err
	}

	actions := []domain.SuggestedAction{}
	for _, lead := range leads {
		actions = append(actions, scoring.LeadActions(lead, scoring.ScoreLead(lead, now), now)...)
	}
	for _, c := range cases {
		actions = append(actions, scoring.CaseActions(c, now)...)
	}
	for _, contract := range contracts {
		actions = append(actions, scoring.AMCActions(contract, now, s.reminderDays)...)
	}
	scoring.SortActions(actions)

	if err := s.cache.Set(ctx, cache.KeyFollowUps, actions, s.ttl); err != nil {
		logrus.WithError(err).Warn("Erro ao gravar sugestões no cache")
	}

	return actions, nil
}

// TopLeads recalcula o score na hora, já que o valor gravado pode estar desatualizado
func (s *Service) TopLeads(ctx context.Context, limit int) ([]*domain.LeadInsight, error) {
	if limit <= 0 {
		limit = DefaultTopLeads
	}
	if limit > MaxTopLeads {
		limit = MaxTopLeads
	}

	leads, err := s.repos.Leads.Find(ctx, repository.FindOptions{Where: openLeads})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar leads abertos")
		return nil, wrap("leads abertos", err)
	}

	now := s.now()
	insights := make([]*domain.LeadInsight, 0, len(leads))
	for _, lead := range leads {
		score := scoring.ScoreLead(lead, now)
		insights = append(insights, &domain.LeadInsight{
			Lead:    lead,
			Score:   score,
			Actions: scoring.LeadActions(lead, score, now),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Score.Score > insights[j].Score.Score
	})

	if len(insights) > limit {
		insights = insights[:limit]
	}
	return insights, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("erro ao consultar %s: %w", what, err)
}
