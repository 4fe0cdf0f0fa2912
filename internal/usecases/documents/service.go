package documents

import (
	"context"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

const Kind domain.Kind = "documents"

var ErrFileTooLarge = errors.New("document exceeds the allowed size")

type UploadRequest struct {
	Entity      domain.Kind
	EntityID    string
	FileName    string
	ContentType string
	Content     []byte
	UploadedBy  int
}

type DocumentService interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)
	List(ctx context.Context, entity domain.Kind, entityID string) ([]*domain.Document, error)
	Download(ctx context.Context, id string) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repository repository.DocumentRepository
	maxSize    int64
	now        func() time.Time
}

func NewService(repo repository.DocumentRepository, cfg config.Documents) *Service {
	return &Service{
		repository: repo,
		maxSize:    cfg.MaxSizeBytes,
		now:        time.Now,
	}
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (*domain.Document, error) {
	entity, fields := validateTarget(req.Entity, req.EntityID)
	if strings.TrimSpace(req.FileName) == "" {
		fields = append(fields, domain.FieldError{Field: "file", Reason: domain.ReasonRequired})
	}
	if len(fields) > 0 {
		code := apiErrors.ErrInvalidFormat
		if domain.ValidationErrors(fields).OnlyMissing() {
			code = apiErrors.ErrMissingRequiredData
		}
		return nil, records.NewRecordError(records.ErrValidation, code, Kind, fields)
	}

	size := int64(len(req.Content))
	if s.maxSize > 0 && size > s.maxSize {
		return nil, records.NewRecordError(ErrFileTooLarge, apiErrors.ErrFileTooLarge, Kind,
			map[string]int64{"size": size, "max_size": s.maxSize})
	}

	doc := &domain.Document{
		ID:          uuid.NewString(),
		Entity:      entity,
		EntityID:    strings.TrimSpace(req.EntityID),
		FileName:    filepath.Base(req.FileName),
		ContentType: ContentType(req.FileName, req.ContentType, req.Content),
		Size:        size,
		Content:     req.Content,
		CreatedAt:   s.now(),
	}
	if req.UploadedBy > 0 {
		uploadedBy := req.UploadedBy
		doc.UploadedBy = &uploadedBy
	}

	if err := s.repository.Create(ctx, doc); err != nil {
		logrus.WithError(err).Errorf("Erro ao salvar documento %s", doc.FileName)
		return nil, records.NewRecordError(errors.Wrap(records.ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, Kind, nil)
	}

	logrus.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"entity":      doc.Entity,
		"entity_id":   doc.EntityID,
		"size":        doc.Size,
	}).Info("Documento enviado")

	doc.Content = nil
	return doc, nil
}

func (s *Service) List(ctx context.Context, entity domain.Kind, entityID string) ([]*domain.Document, error) {
	schema, ok := domain.SchemaFor(entity)
	if !ok {
		return nil, records.NewRecordError(records.ErrValidation, apiErrors.ErrInvalidFormat, Kind,
			[]domain.FieldError{{Field: "entity", Reason: domain.ReasonInvalid}})
	}

	docs, err := s.repository.ListByEntity(ctx, schema.Kind, entityID)
	if err != nil {
		return nil, records.NewRecordError(errors.Wrap(records.ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, Kind, nil)
	}
	return docs, nil
}

// Download devolve o documento com o conteúdo
func (s *Service) Download(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.repository.GetByID(ctx, id, true)
	if err != nil {
		return nil, records.NewRecordErrorWithID(errors.Wrap(records.ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, Kind, id, nil)
	}
	if doc == nil {
		return nil, records.NotFound(Kind, id)
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil {
		return records.NewRecordErrorWithID(errors.Wrap(records.ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, Kind, id, nil)
	}
	if !deleted {
		return records.NotFound(Kind, id)
	}
	return nil
}

func validateTarget(entity domain.Kind, entityID string) (domain.Kind, []domain.FieldError) {
	var fields []domain.FieldError

	var kind domain.Kind
	if strings.TrimSpace(string(entity)) == "" {
		fields = append(fields, domain.FieldError{Field: "entity", Reason: domain.ReasonRequired})
	} else if schema, ok := domain.SchemaFor(entity); ok {
		kind = schema.Kind
	} else {
		fields = append(fields, domain.FieldError{Field: "entity", Reason: domain.ReasonInvalid, Detail: "unknown entity"})
	}

	if strings.TrimSpace(entityID) == "" {
		fields = append(fields, domain.FieldError{Field: "entity_id", Reason: domain.ReasonRequired})
	}

	return kind, fields
}

// ContentType usa o tipo informado, depois a extensão e por fim a detecção pelo conteúdo
func ContentType(fileName, declared string, content []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(content)
}
