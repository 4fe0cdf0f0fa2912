package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Entity restringe T às structs de domínio cujo ponteiro implementa domain.Record
type Entity[T any] interface {
	*T
	domain.Record
}

// Hook é executado antes de persistir um registro, depois da validação
type Hook[T any] func(ctx context.Context, rec *T, now time.Time) error

type RecordService[T any] interface {
	Kind() domain.Kind
	Schema() domain.Schema
	Create(ctx context.Context, rec *T) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.PaginatedResponse[*T], error)
	All(ctx context.Context, filter domain.ListFilter) ([]*T, error)
	Update(ctx context.Context, id string, apply func(rec *T) error) (*T, error)
	Delete(ctx context.Context, id string) error
	ImportRow(ctx context.Context, row map[string]string, ownerID int) (string, error)
	ExportRows(ctx context.Context, filter domain.ListFilter) ([]map[string]any, error)
}

// Table é a visão sem tipo de um RecordService, usada por importação e exportação
type Table interface {
	Kind() domain.Kind
	Schema() domain.Schema
	ImportRow(ctx context.Context, row map[string]string, ownerID int) (string, error)
	ExportRows(ctx context.Context, filter domain.ListFilter) ([]map[string]any, error)
}

type Service[T any, P Entity[T]] struct {
	kind       domain.Kind
	schema     domain.Schema
	repository repository.RecordRepository[T]
	cache      cache.Cache
	publisher  events.Publisher
	hooks      []Hook[T]
	now        func() time.Time
}

type Option[T any, P Entity[T]] func(*Service[T, P])

// WithClock substitui o relógio usado em timestamps e hooks
func WithClock[T any, P Entity[T]](now func() time.Time) Option[T, P] {
	return func(s *Service[T, P]) {
		s.now = now
	}
}

func WithHook[T any, P Entity[T]](hook Hook[T]) Option[T, P] {
	return func(s *Service[T, P]) {
		s.hooks = append(s.hooks, hook)
	}
}

func NewService[T any, P Entity[T]](
	kind domain.Kind,
	repo repository.RecordRepository[T],
	c cache.Cache,
	publisher events.Publisher,
	opts ...Option[T, P],
) *Service[T, P] {
	if c == nil {
		c = cache.Noop()
	}
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}

	s := &Service[T, P]{
		kind:       kind,
		schema:     domain.MustSchema(kind),
		repository: repo,
		cache:      c,
		publisher:  publisher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T, P]) Kind() domain.Kind {
	return s.kind
}

func (s *Service[T, P]) Schema() domain.Schema {
	return s.schema
}

// AddHook registra um hook depois da construção, usado pelos serviços especializados
func (s *Service[T, P]) AddHook(hook Hook[T]) {
	s.hooks = append(s.hooks, hook)
}

func (s *Service[T, P]) Now() time.Time {
	return s.now()
}

func (s *Service[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	record := P(rec)
	if err := record.Validate(); err != nil {
		return nil, validationError(s.kind, err)
	}

	record.SetID(uuid.NewString())

	if referenced, ok := any(rec).(domain.Referenced); ok && referenced.Reference() == "" {
		ref, err := utils.GenerateReference(referenced.ReferencePrefix())
		if err != nil {
			return nil, NewRecordError(ErrGenerateID, apiErrors.ErrInternalServer, s.kind, err.Error())
		}
		referenced.SetReference(ref)
	}

	now := s.now()
	if err := s.runHooks(ctx, rec, now); err != nil {
		return nil, err
	}

	record.Touch(now)

	if err := s.repository.Create(ctx, rec); err != nil {
		logrus.WithError(err).Errorf("Erro ao criar %s", s.kind)
		return nil, fromRepository(s.kind, record.GetID(), err)
	}

	s.afterWrite(ctx, events.TypeCreated, record.GetID(), rec)
	return rec, nil
}

func (s *Service[T, P]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := s.repository.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Errorf("Erro ao buscar %s %s", s.kind, id)
		return nil, fromRepository(s.kind, id, err)
	}
	if rec == nil {
		return nil, notFound(s.kind, id)
	}
	return rec, nil
}

func (s *Service[T, P]) List(ctx context.Context, filter domain.ListFilter) (domain.PaginatedResponse[*T], error) {
	filter.Normalize()

	items, total, err := s.repository.List(ctx, filter)
	if err != nil {
		logrus.WithError(err).Errorf("Erro ao listar %s", s.kind)
		return domain.PaginatedResponse[*T]{}, fromRepository(s.kind, "", err)
	}

	return domain.NewPaginatedResponse(items, total, filter), nil
}

// All percorre todas as páginas de uma listagem filtrada
func (s *Service[T, P]) All(ctx context.Context, filter domain.ListFilter) ([]*T, error) {
	filter.Page = 1
	filter.PageSize = domain.MaxPageSize

	var all []*T
	for {
		items, total, err := s.repository.List(ctx, filter)
		if err != nil {
			return nil, fromRepository(s.kind, "", err)
		}
		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			return all, nil
		}
		filter.Page++
	}
}

// Update aplica as alterações sobre o registro armazenado; id, created_at e o número de referência não mudam
func (s *Service[T, P]) Update(ctx context.Context, id string, apply func(rec *T) error) (*T, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record := P(rec)
	base := *record.GetBase()

	var reference string
	referenced, isReferenced := any(rec).(domain.Referenced)
	if isReferenced {
		reference = referenced.Reference()
	}

	if err := apply(rec); err != nil {
		return nil, validationError(s.kind, err)
	}

	*record.GetBase() = base
	if isReferenced && reference != "" {
		referenced.SetReference(reference)
	}

	if err := record.Validate(); err != nil {
		return nil, validationError(s.kind, err)
	}

	now := s.now()
	if err := s.runHooks(ctx, rec, now); err != nil {
		return nil, err
	}

	record.Touch(now)

	if err := s.repository.Update(ctx, rec); err != nil {
		logrus.WithError(err).Errorf("Erro ao atualizar %s %s", s.kind, id)
		return nil, fromRepository(s.kind, id, err)
	}

	s.afterWrite(ctx, events.TypeUpdated, id, rec)
	return rec, nil
}

func (s *Service[T, P]) Delete(ctx context.Context, id string) error {
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).Errorf("Erro ao remover %s %s", s.kind, id)
		return fromRepository(s.kind, id, err)
	}
	if !deleted {
		return notFound(s.kind, id)
	}

	s.afterWrite(ctx, events.TypeDeleted, id, nil)
	return nil
}

// ImportRow decodifica uma linha de arquivo e cria o registro correspondente
func (s *Service[T, P]) ImportRow(ctx context.Context, row map[string]string, ownerID int) (string, error) {
	rec := new(T)
	if err := DecodeRow(row, rec); err != nil {
		return "", validationError(s.kind, err)
	}

	if owned, ok := any(rec).(domain.Owned); ok {
		owned.AssignOwner(ownerID)
	}

	created, err := s.Create(ctx, rec)
	if err != nil {
		return "", err
	}
	return P(created).GetID(), nil
}

// ExportRows devolve os registros filtrados como mapas indexados pelas colunas do schema
func (s *Service[T, P]) ExportRows(ctx context.Context, filter domain.ListFilter) ([]map[string]any, error) {
	items, err := s.All(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row, err := toMap(item)
		if err != nil {
			return nil, NewRecordErrorWithID(ErrMalformedInput, apiErrors.ErrInternalServer, s.kind, P(item).GetID(), err.Error())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service[T, P]) runHooks(ctx context.Context, rec *T, now time.Time) error {
	for _, hook := range s.hooks {
		if err := hook(ctx, rec, now); err != nil {
			var recordErr *RecordError
			if asRecordError(err, &recordErr) {
				return recordErr
			}
			return validationError(s.kind, err)
		}
	}
	return nil
}

// afterWrite publica o evento e invalida os caches agregados; falhas aqui nunca afetam a requisição
func (s *Service[T, P]) afterWrite(ctx context.Context, eventType, id string, data any) {
	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: eventType,
		Kind: s.kind,
		ID:   id,
		At:   s.now(),
		Data: data,
	})
	Invalidate(ctx, s.cache)
}

// Invalidate remove do cache os agregados que dependem de qualquer registro
func Invalidate(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.KeyDashboard, cache.KeyFollowUps); err != nil {
		logrus.WithError(err).Warn("Erro ao invalidar cache")
	}
}
