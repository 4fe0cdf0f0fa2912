package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/scoring"
)

const defaultBatchSize = 200

type LeadService interface {
	Convert(ctx context.Context, id string) (*domain.LeadConversion, error)
	Score(ctx context.Context, id string) (*domain.LeadInsight, error)
	ScoreAll(ctx context.Context) (int, error)
}

type Service struct {
	leads      records.RecordService[domain.Lead]
	accounts   records.RecordService[domain.Account]
	contacts   records.RecordService[domain.Contact]
	deals      records.RecordService[domain.Deal]
	repository repository.RecordRepository[domain.Lead]
	cache      cache.Cache
	publisher  events.Publisher
	batchSize  int
	now        func() time.Time
}

func NewService(
	leads records.RecordService[domain.Lead],
	accounts records.RecordService[domain.Account],
	contacts records.RecordService[domain.Contact],
	deals records.RecordService[domain.Deal],
	repo repository.RecordRepository[domain.Lead],
	c cache.Cache,
	publisher events.Publisher,
	batchSize int,
) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{
		leads:      leads,
		accounts:   accounts,
		contacts:   contacts,
		deals:      deals,
		repository: repo,
		cache:      c,
		publisher:  publisher,
		batchSize:  batchSize,
		now:        time.Now,
	}
}

// ScoreHook recalcula score e grade sempre que um lead é salvo
func ScoreHook(_ context.Context, lead *domain.Lead, now time.Time) error {
	scoring.Apply(lead, now)
	return nil
}

// Convert cria conta, contato principal e, havendo orçamento, uma oportunidade a partir do lead.
// Os registros são criados em sequência; uma falha no meio deixa os anteriores persistidos.
func (s *Service) Convert(ctx context.Context, id string) (*domain.LeadConversion, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status == domain.LeadStatusConverted || lead.ConvertedAccountID != nil {
		return nil, records.InvalidState(domain.KindLead, id, "lead already converted")
	}

	accountName := lead.Company
	if accountName == "" {
		accountName = lead.FullName()
	}

	account, err := s.accounts.Create(ctx, &domain.Account{
		Ownership: lead.Ownership,
		Name:      accountName,
		Industry:  lead.Industry,
		Type:      domain.AccountTypeCustomer,
		Phone:     lead.Phone,
		Email:     lead.Email,
		City:      lead.City,
	})
	if err != nil {
		return nil, err
	}

	contact, err := s.contacts.Create(ctx, &domain.Contact{
		AccountID:   account.ID,
		FirstName:   lead.FirstName,
		LastName:    lead.LastName,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Designation: lead.Title,
		IsPrimary:   true,
	})
	if err != nil {
		return nil, err
	}

	conversion := &domain.LeadConversion{Account: account, Contact: contact}

	if lead.Budget > 0 {
		leadID := lead.ID
		deal, err := s.deals.Create(ctx, &domain.Deal{
			Ownership: lead.Ownership,
			AccountID: account.ID,
			ContactID: &contact.ID,
			LeadID:    &leadID,
			Name:      fmt.Sprintf("%s - Opportunity", accountName),
			Stage:     domain.DealStageProspecting,
			Amount:    lead.Budget,
		})
		if err != nil {
			return nil, err
		}
		conversion.Deal = deal
	}

	converted, err := s.leads.Update(ctx, id, func(l *domain.Lead) error {
		l.Status = domain.LeadStatusConverted
		l.ConvertedAccountID = &account.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	conversion.Lead = converted

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeLeadConverted,
		Kind: domain.KindLead,
		ID:   id,
		At:   s.now(),
		Data: map[string]string{"account_id": account.ID, "contact_id": contact.ID},
	})

	logrus.WithFields(logrus.Fields{"lead_id": id, "account_id": account.ID}).Info("Lead convertido")
	return conversion, nil
}

// Score devolve o detalhamento do score e as ações sugeridas sem persistir nada
func (s *Service) Score(ctx context.Context, id string) (*domain.LeadInsight, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	score := scoring.ScoreLead(lead, now)

	return &domain.LeadInsight{
		Lead:    lead,
		Score:   score,
		Actions: scoring.LeadActions(lead, score, now),
	}, nil
}

// ScoreAll recalcula o score de todos os leads em lotes, convertidos inclusive, e grava apenas os que mudaram
func (s *Service) ScoreAll(ctx context.Context) (int, error) {
	startTime := time.Now()
	now := s.now()
	updated := 0

	for offset := uint64(0); ; offset += uint64(s.batchSize) {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		batch, err := s.repository.Find(ctx, repository.FindOptions{
			OrderBy: "id",
			Limit:   uint64(s.batchSize),
			Offset:  offset,
		})
		if err != nil {
			return updated, fmt.Errorf("erro ao buscar leads: %w", err)
		}

		for _, lead := range batch {
			score := scoring.ScoreLead(lead, now)
			if score.Score == lead.Score && score.Grade == lead.Grade {
				continue
			}

			err := s.repository.Patch(ctx, lead.ID, map[string]any{
				"score": score.Score,
				"grade": score.Grade,
			})
			if err != nil {
				logrus.WithError(err).Errorf("Erro ao atualizar score do lead %s", lead.ID)
				continue
			}
			updated++
		}

		if len(batch) < s.batchSize {
			break
		}
	}

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeLeadsScored,
		Kind: domain.KindLead,
		At:   now,
		Data: map[string]int{"updated": updated},
	})
	records.Invalidate(ctx, s.cache)

	logrus.Infof("Score de leads recalculado em %v: %d leads atualizados", time.Since(startTime), updated)
	return updated, nil
}
