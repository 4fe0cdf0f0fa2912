package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const (
	documentsTable = "documents"
)

var documentMetaColumns = []string{"id", "entity", "entity_id", "file_name", "content_type", "size", "uploaded_by", "created_at"}

//go:generate mockgen -source=document.go -destination=mocks/document.go -package=mocks

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string, withContent bool) (*domain.Document, error)
	ListByEntity(ctx context.Context, entity domain.Kind, entityID string) ([]*domain.Document, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type documentRepository struct {
	conn *postgres.Connection
}

func NewDocumentRepository(conn *postgres.Connection) DocumentRepository {
	return &documentRepository{
		conn: conn,
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query, args, err := squirrel.
		Insert(documentsTable).
		Columns("id", "entity", "entity_id", "file_name", "content_type", "size", "content", "uploaded_by", "created_at").
		Values(doc.ID, string(doc.Entity), doc.EntityID, doc.FileName, doc.ContentType, doc.Size, doc.Content, doc.UploadedBy, doc.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapPQError("erro ao salvar documento", err)
	}

	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string, withContent bool) (*domain.Document, error) {
	columns := documentMetaColumns
	if withContent {
		columns = append(append([]string{}, documentMetaColumns...), "content")
	}

	query, args, err := squirrel.
		Select(columns...).
		From(documentsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var doc domain.Document
	if err := r.conn.X.GetContext(ctx, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar documento: %w", err)
	}

	return &doc, nil
}

func (r *documentRepository) ListByEntity(ctx context.Context, entity domain.Kind, entityID string) ([]*domain.Document, error) {
	where := squirrel.Eq{"entity": string(entity)}
	if entityID != "" {
		where["entity_id"] = entityID
	}

	query, args, err := squirrel.
		Select(documentMetaColumns...).
		From(documentsTable).
		Where(where).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	docs := []*domain.Document{}
	if err := r.conn.X.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao listar documentos: %w", err)
	}

	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(documentsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover documento: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}
