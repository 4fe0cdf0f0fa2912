package contracts

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/utils"
)

type ContractService interface {
	Schedule(ctx context.Context, id string) (*domain.AMCSchedule, error)
	Renew(ctx context.Context, id string, req domain.RenewAMCRequest) (*domain.AMCContract, error)
	Sweep(ctx context.Context) (*SweepResult, error)
}

type SweepResult struct {
	Expired  int `json:"expired"`
	Reminded int `json:"reminded"`
}

type Service struct {
	contracts    records.RecordService[domain.AMCContract]
	repository   repository.RecordRepository[domain.AMCContract]
	planner      *Planner
	cache        cache.Cache
	publisher    events.Publisher
	reminderDays int
	now          func() time.Time
}

func NewService(
	contracts records.RecordService[domain.AMCContract],
	repo repository.RecordRepository[domain.AMCContract],
	planner *Planner,
	c cache.Cache,
	publisher events.Publisher,
	reminderDays int,
) *Service {
	return &Service{
		contracts:    contracts,
		repository:   repo,
		planner:      planner,
		cache:        c,
		publisher:    publisher,
		reminderDays: reminderDays,
		now:          time.Now,
	}
}

func (s *Service) Schedule(ctx context.Context, id string) (*domain.AMCSchedule, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule, err := s.planner.Schedule(contract)
	if err != nil {
		return nil, records.NewRecordErrorWithID(records.ErrInvalidState, apiErrors.ErrInvalidState, domain.KindAMCContract, id, err.Error())
	}
	return schedule, nil
}

// Renew cria o contrato seguinte a partir do dia posterior ao fim do atual e marca o atual como renovado
func (s *Service) Renew(ctx context.Context, id string, req domain.RenewAMCRequest) (*domain.AMCContract, error) {
	current, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != domain.AMCStatusActive && current.Status != domain.AMCStatusExpired {
		return nil, records.InvalidState(domain.KindAMCContract, id, "only active or expired contracts can be renewed")
	}
	if current.StartDate == nil || current.EndDate == nil {
		return nil, records.InvalidState(domain.KindAMCContract, id, "contract has no period")
	}

	start := current.EndDate.AddDate(0, 0, 1)
	end := renewalEnd(*current.StartDate, *current.EndDate, start)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	value := current.ContractValue
	if req.ContractValue != nil {
		value = *req.ContractValue
	}

	number, err := utils.GenerateReference("AMC")
	if err != nil {
		return nil, records.NewRecordError(records.ErrGenerateID, apiErrors.ErrInternalServer, domain.KindAMCContract, err.Error())
	}

	previousID := current.ID
	renewed, err := s.contracts.Create(ctx, &domain.AMCContract{
		Ownership:        current.Ownership,
		ContractNumber:   number,
		AccountID:        current.AccountID,
		ProductID:        current.ProductID,
		StartDate:        &start,
		EndDate:          &end,
		ContractValue:    value,
		BillingFrequency: current.BillingFrequency,
		VisitsPerYear:    current.VisitsPerYear,
		Status:           domain.AMCStatusActive,
		RenewedFromID:    &previousID,
		Notes:            fmt.Sprintf("Renewal of %s", current.ContractNumber),
	})
	if err != nil {
		return nil, err
	}

	_, err = s.contracts.Update(ctx, id, func(c *domain.AMCContract) error {
		c.Status = domain.AMCStatusRenewed
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeAMCRenewed,
		Kind: domain.KindAMCContract,
		ID:   renewed.ID,
		At:   s.now(),
		Data: map[string]string{"renewed_from_id": previousID},
	})

	return renewed, nil
}

// renewalEnd repete a duração do contrato atual; períodos de meses inteiros seguem o calendário
func renewalEnd(start, end, next time.Time) time.Time {
	months := ContractMonths(start, end)
	if start.AddDate(0, months, -1).Equal(end) {
		return next.AddDate(0, months, -1)
	}
	return next.Add(end.Sub(start))
}

// Sweep expira contratos vencidos e marca o lembrete dos que entram na janela de renovação
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	today := utils.StartOfDay(now)
	windowEnd := today.AddDate(0, 0, s.reminderDays)

	due, err := s.repository.Find(ctx, repository.FindOptions{
		Where: squirrel.And{
			squirrel.Eq{"status": domain.AMCStatusActive},
			squirrel.LtOrEq{"end_date": windowEnd},
		},
		OrderBy: "end_date",
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contratos AMC: %w", err)
	}

	result := &SweepResult{}
	for _, contract := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		remaining := contract.DaysUntilExpiry(now)
		switch {
		case remaining < 0:
			if err := s.repository.Patch(ctx, contract.ID, map[string]any{"status": domain.AMCStatusExpired}); err != nil {
				logrus.WithError(err).Errorf("Erro ao expirar contrato %s", contract.ID)
				continue
			}
			result.Expired++
			s.publish(ctx, events.TypeAMCExpired, contract, now)

		case !contract.RenewalReminderSent:
			if err := s.repository.Patch(ctx, contract.ID, map[string]any{"renewal_reminder_sent": true}); err != nil {
				logrus.WithError(err).Errorf("Erro ao marcar lembrete do contrato %s", contract.ID)
				continue
			}
			result.Reminded++
			s.publish(ctx, events.TypeAMCRenewalDue, contract, now)
		}
	}

	if result.Expired > 0 || result.Reminded > 0 {
		records.Invalidate(ctx, s.cache)
	}

	logrus.Infof("Varredura de contratos AMC: %d expirados, %d lembretes", result.Expired, result.Reminded)
	return result, nil
}

func (s *Service) publish(ctx context.Context, eventType string, contract *domain.AMCContract, now time.Time) {
	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: eventType,
		Kind: domain.KindAMCContract,
		ID:   contract.ID,
		At:   now,
		Data: map[string]any{
			"contract_number": contract.ContractNumber,
			"account_id":      contract.AccountID,
			"end_date":        contract.EndDate,
		},
	})
}
