// Package servicedesk reúne as operações de atendimento: resolução de casos e escalonamento de reclamações
package servicedesk

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

type ServiceDesk interface {
	ResolveCase(ctx context.Context, id string, req domain.ResolveCaseRequest) (*domain.CaseResolution, error)
	CaseSolutions(ctx context.Context, id string) ([]*domain.Solution, error)
	EscalateComplaint(ctx context.Context, id string, req domain.EscalateComplaintRequest) (*domain.Complaint, error)
}

type Service struct {
	cases      records.RecordService[domain.Case]
	solutions  records.RecordService[domain.Solution]
	complaints records.RecordService[domain.Complaint]
	publisher  events.Publisher
	now        func() time.Time
}

func NewService(
	cases records.RecordService[domain.Case],
	solutions records.RecordService[domain.Solution],
	complaints records.RecordService[domain.Complaint],
	publisher events.Publisher,
) *Service {
	return &Service{
		cases:      cases,
		solutions:  solutions,
		complaints: complaints,
		publisher:  publisher,
		now:        time.Now,
	}
}

// ResolveCase vincula uma solução existente ou publica uma nova e encerra o caso como resolvido
func (s *Service) ResolveCase(ctx context.Context, id string, req domain.ResolveCaseRequest) (*domain.CaseResolution, error) {
	c, err := s.cases.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsOpen() {
		return nil, records.InvalidState(domain.KindCase, id, "case is already "+c.Status)
	}

	solution, err := s.resolveSolution(ctx, c, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resolved, err := s.cases.Update(ctx, id, func(c *domain.Case) error {
		c.Status = domain.CaseStatusResolved
		c.SolutionID = &solution.ID
		c.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeCaseResolved,
		Kind: domain.KindCase,
		ID:   id,
		At:   now,
		Data: map[string]string{"solution_id": solution.ID, "number": resolved.Number},
	})

	logrus.WithFields(logrus.Fields{"case_id": id, "solution_id": solution.ID}).Info("Caso resolvido")
	return &domain.CaseResolution{Case: resolved, Solution: solution}, nil
}

func (s *Service) resolveSolution(ctx context.Context, c *domain.Case, req domain.ResolveCaseRequest) (*domain.Solution, error) {
	if req.SolutionID != nil && *req.SolutionID != "" {
		solution, err := s.solutions.Get(ctx, *req.SolutionID)
		if err != nil {
			if errors.Is(err, records.ErrNotFound) {
				return nil, records.NewRecordErrorWithID(records.ErrRelatedNotFound, apiErrors.ErrRelatedNotFound,
					domain.KindCase, c.ID, "solution_id "+*req.SolutionID)
			}
			return nil, err
		}
		return solution, nil
	}

	if req.Solution == nil {
		return nil, records.NewRecordErrorWithID(records.ErrValidation, apiErrors.ErrMissingRequiredData, domain.KindCase, c.ID,
			[]domain.FieldError{{Field: "solution", Reason: domain.ReasonRequired, Detail: "solution_id or solution"}})
	}

	caseID := c.ID
	solution := *req.Solution
	solution.CaseID = &caseID
	solution.Status = domain.SolutionStatusPublished
	if solution.Title == "" {
		solution.Title = c.Subject
	}

	return s.solutions.Create(ctx, &solution)
}

func (s *Service) CaseSolutions(ctx context.Context, id string) ([]*domain.Solution, error) {
	if _, err := s.cases.Get(ctx, id); err != nil {
		return nil, err
	}

	solutions, err := s.solutions.All(ctx, domain.ListFilter{
		Filters: map[string][]string{"case_id": {id}},
	})
	if err != nil {
		return nil, err
	}
	if solutions == nil {
		solutions = []*domain.Solution{}
	}
	return solutions, nil
}

// EscalateComplaint move reclamações abertas ou em investigação para escalonadas, com severidade mínima alta
func (s *Service) EscalateComplaint(ctx context.Context, id string, req domain.EscalateComplaintRequest) (*domain.Complaint, error) {
	complaint, err := s.complaints.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !complaint.CanEscalate() {
		return nil, records.InvalidState(domain.KindComplaint, id, "complaint is "+complaint.Status)
	}

	now := s.now()
	escalated, err := s.complaints.Update(ctx, id, func(c *domain.Complaint) error {
		c.Status = domain.ComplaintStatusEscalated
		c.EscalatedAt = &now
		if c.Severity != domain.PriorityCritical {
			c.Severity = domain.PriorityHigh
		}
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			c.Description = strings.TrimSpace(c.Description + "\n\nEscalation: " + reason)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeComplaintEscalated,
		Kind: domain.KindComplaint,
		ID:   id,
		At:   now,
		Data: map[string]string{"reason": req.Reason, "number": escalated.Number},
	})

	return escalated, nil
}
