package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// likeEscaper faz % e _ da busca valerem como texto; a barra é o escape padrão do ILIKE no Postgres
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

//go:generate mockgen -source=record.go -destination=mocks/record.go -package=mocks

// Condition é qualquer expressão aceita pelo squirrel em um WHERE
type Condition = squirrel.Sqlizer

type FindOptions struct {
	Where   Condition
	OrderBy string
	Limit   uint64
	Offset  uint64
}

// RecordRepository é o acesso genérico a uma tabela descrita por domain.Schema
type RecordRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Patch(ctx context.Context, id string, values map[string]any) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*T, int, error)
	Find(ctx context.Context, opts FindOptions) ([]*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, where Condition) (int, error)
	GroupCount(ctx context.Context, column string, where Condition) (map[string]int, error)
	GroupSum(ctx context.Context, column, sumColumn string, where Condition) (map[string]float64, error)
}

type recordRepository[T any] struct {
	conn      *postgres.Connection
	schema    domain.Schema
	insertSQL string
	updateSQL string
}

func NewRecordRepository[T any](conn *postgres.Connection, kind domain.Kind) RecordRepository[T] {
	schema := domain.MustSchema(kind)
	return &recordRepository[T]{
		conn:      conn,
		schema:    schema,
		insertSQL: namedInsert(schema),
		updateSQL: namedUpdate(schema),
	}
}

func namedInsert(schema domain.Schema) string {
	params := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.Table, strings.Join(schema.Columns, ", "), strings.Join(params, ", "))
}

func namedUpdate(schema domain.Schema) string {
	sets := make([]string, 0, len(schema.Columns))
	for _, c := range schema.Columns {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = :%s", c, c))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", schema.Table, strings.Join(sets, ", "))
}

func (r *recordRepository[T]) Create(ctx context.Context, rec *T) error {
	if _, err := r.conn.X.NamedExecContext(ctx, r.insertSQL, rec); err != nil {
		return wrapPQError(fmt.Sprintf("erro ao inserir em %s", r.schema.Table), err)
	}
	return nil
}

func (r *recordRepository[T]) Update(ctx context.Context, rec *T) error {
	result, err := r.conn.X.NamedExecContext(ctx, r.updateSQL, rec)
	if err != nil {
		return wrapPQError(fmt.Sprintf("erro ao atualizar %s", r.schema.Table), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *recordRepository[T]) Patch(ctx context.Context, id string, values map[string]any) error {
	for column := range values {
		if !r.schema.HasColumn(column) {
			return fmt.Errorf("coluna desconhecida em %s: %s", r.schema.Table, column)
		}
	}

	query, args, err := squirrel.
		Update(r.schema.Table).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapPQError(fmt.Sprintf("erro ao atualizar %s", r.schema.Table), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *recordRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	query, args, err := squirrel.
		Select(r.schema.Columns...).
		From(r.schema.Table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var rec T
	if err := r.conn.X.GetContext(ctx, &rec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar em %s: %w", r.schema.Table, err)
	}

	return &rec, nil
}

func (r *recordRepository[T]) List(ctx context.Context, filter domain.ListFilter) ([]*T, int, error) {
	filter.Normalize()
	selectBuilder, countBuilder := BuildListQuery(r.schema, filter)

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar %s: %w", r.schema.Table, err)
	}

	if total == 0 {
		return []*T{}, 0, nil
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	items := []*T{}
	if err := r.conn.X.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("erro ao listar %s: %w", r.schema.Table, err)
	}

	return items, total, nil
}

// BuildListQuery monta a consulta paginada e a contagem correspondente para uma listagem
func BuildListQuery(schema domain.Schema, filter domain.ListFilter) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	where := squirrel.And{}

	columns := make([]string, 0, len(filter.Filters))
	for column := range filter.Filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		values := filter.Filters[column]
		if !schema.CanFilter(column) || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			where = append(where, squirrel.Eq{column: values[0]})
		} else {
			where = append(where, squirrel.Eq{column: values})
		}
	}

	if filter.OwnerID != nil && schema.HasColumn("owner_id") {
		where = append(where, squirrel.Eq{"owner_id": *filter.OwnerID})
	}

	if term := strings.TrimSpace(filter.Search); term != "" && len(schema.Searchable) > 0 {
		search := squirrel.Or{}
		for _, column := range schema.Searchable {
			search = append(search, squirrel.ILike{column: "%" + likeEscaper.Replace(term) + "%"})
		}
		where = append(where, search)
	}

	orderBy := "created_at DESC"
	if filter.SortBy != "" && contains(schema.Sortable, filter.SortBy) {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s", filter.SortBy, direction)
	}

	selectBuilder := squirrel.
		Select(schema.Columns...).
		From(schema.Table).
		OrderBy(orderBy, "id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		PlaceholderFormat(squirrel.Dollar)

	countBuilder := squirrel.
		Select("COUNT(*)").
		From(schema.Table).
		PlaceholderFormat(squirrel.Dollar)

	if len(where) > 0 {
		selectBuilder = selectBuilder.Where(where)
		countBuilder = countBuilder.Where(where)
	}

	return selectBuilder, countBuilder
}

func (r *recordRepository[T]) Find(ctx context.Context, opts FindOptions) ([]*T, error) {
	builder := squirrel.
		Select(r.schema.Columns...).
		From(r.schema.Table).
		PlaceholderFormat(squirrel.Dollar)

	if opts.Where != nil {
		builder = builder.Where(opts.Where)
	}
	if opts.OrderBy != "" {
		builder = builder.OrderBy(opts.OrderBy)
	}
	if opts.Limit > 0 {
		builder = builder.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		builder = builder.Offset(opts.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	items := []*T{}
	if err := r.conn.X.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao buscar em %s: %w", r.schema.Table, err)
	}

	return items, nil
}

func (r *recordRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(r.schema.Table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapPQError(fmt.Sprintf("erro ao remover de %s", r.schema.Table), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *recordRepository[T]) Count(ctx context.Context, where Condition) (int, error) {
	builder := squirrel.Select("COUNT(*)").From(r.schema.Table).PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar %s: %w", r.schema.Table, err)
	}

	return total, nil
}

func (r *recordRepository[T]) GroupCount(ctx context.Context, column string, where Condition) (map[string]int, error) {
	if !r.schema.HasColumn(column) {
		return nil, fmt.Errorf("coluna desconhecida em %s: %s", r.schema.Table, column)
	}

	builder := squirrel.
		Select(column, "COUNT(*)").
		From(r.schema.Table).
		GroupBy(column).
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var key sql.NullString
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		result[key.String] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return result, nil
}

func (r *recordRepository[T]) GroupSum(ctx context.Context, column, sumColumn string, where Condition) (map[string]float64, error) {
	if !r.schema.HasColumn(column) || !r.schema.HasColumn(sumColumn) {
		return nil, fmt.Errorf("coluna desconhecida em %s", r.schema.Table)
	}

	builder := squirrel.
		Select(column, fmt.Sprintf("COALESCE(SUM(%s), 0)", sumColumn)).
		From(r.schema.Table).
		GroupBy(column).
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var key sql.NullString
		var total float64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		result[key.String] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return result, nil
}

// ConstraintError indica violação de chave única ou estrangeira
type ConstraintError struct {
	Code       string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("violação de restrição %s (%s): %v", e.Constraint, e.Code, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func (e *ConstraintError) IsUnique() bool {
	return e.Code == pqUniqueViolation
}

func (e *ConstraintError) IsForeignKey() bool {
	return e.Code == pqForeignKeyViolation
}

func wrapPQError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if code == pqUniqueViolation || code == pqForeignKeyViolation {
			return &ConstraintError{Code: code, Constraint: pqErr.Constraint, Err: err}
		}
		return fmt.Errorf("%s (código %s): %w", msg, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
