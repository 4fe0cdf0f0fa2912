package importing

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Entity   domain.Kind `json:"entity"`
	Total    int         `json:"total"`
	Imported int         `json:"imported"`
	Failed   int         `json:"failed"`
	Errors   []RowError  `json:"errors"`
}

type Importer interface {
	Import(ctx context.Context, kind domain.Kind, fileName string, r io.Reader, ownerID int) (*ImportResult, error)
	Template(kind domain.Kind, w io.Writer) error
	Export(ctx context.Context, kind domain.Kind, filter domain.ListFilter, w io.Writer) error
	Schema(kind domain.Kind) (domain.Schema, error)
}

type Service struct {
	tables    map[domain.Kind]records.Table
	publisher events.Publisher
	maxRows   int
}

func NewService(tables []records.Table, publisher events.Publisher, cfg config.Import) *Service {
	byKind := make(map[domain.Kind]records.Table, len(tables))
	for _, table := range tables {
		byKind[table.Kind()] = table
	}

	return &Service{
		tables:    byKind,
		publisher: publisher,
		maxRows:   cfg.MaxRows,
	}
}

func (s *Service) table(kind domain.Kind) (records.Table, error) {
	table, ok := s.tables[kind]
	if !ok {
		return nil, NewImportError(ErrUnknownEntity, apiErrors.ErrUnknownEntity, string(kind))
	}
	return table, nil
}

func (s *Service) Schema(kind domain.Kind) (domain.Schema, error) {
	table, err := s.table(kind)
	if err != nil {
		return domain.Schema{}, err
	}
	return table.Schema(), nil
}

// ReadLines escolhe o leitor pela extensão do arquivo
func ReadLines(fileName string, r io.Reader) ([]Line, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, NewImportError(ErrUnsupportedFile, apiErrors.ErrUnsupportedFile, "only .csv and .xlsx are accepted")
	}
}

// Import processa as linhas em sequência. Linhas com erro são contadas e as anteriores permanecem gravadas.
func (s *Service) Import(ctx context.Context, kind domain.Kind, fileName string, r io.Reader, ownerID int) (*ImportResult, error) {
	startTime := time.Now()

	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()
	if !schema.Importable() {
		return nil, NewImportError(ErrNotImportable, apiErrors.ErrUnsupportedFile, string(kind))
	}

	lines, err := ReadLines(fileName, r)
	if err != nil {
		var importErr *ImportError
		if errors.As(err, &importErr) {
			return nil, importErr
		}
		return nil, NewImportError(ErrMalformedFile, apiErrors.ErrMalformedFile, err.Error())
	}

	if len(lines) == 0 || lines[0].Err != nil {
		return nil, NewImportError(ErrMalformedFile, apiErrors.ErrMalformedFile, "missing header row")
	}

	columns := MapHeaders(lines[0].Fields, schema)
	if !hasAny(columns) {
		return nil, NewImportError(ErrMalformedFile, apiErrors.ErrMalformedFile,
			"no recognized columns, expected: "+strings.Join(schema.ImportColumns, ", "))
	}

	rows := lines[1:]
	if s.maxRows > 0 && len(rows) > s.maxRows {
		return nil, NewImportError(ErrTooManyRows, apiErrors.ErrFileTooLarge, map[string]int{"rows": len(rows), "max_rows": s.maxRows})
	}

	result := &ImportResult{Entity: kind, Total: len(rows), Errors: []RowError{}}

	for _, line := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if line.Err != nil {
			result.fail(line.Number, line.Err.Error())
			continue
		}

		if _, err := table.ImportRow(ctx, toRow(columns, line.Fields), ownerID); err != nil {
			result.fail(line.Number, rowMessage(err))
			continue
		}
		result.Imported++
	}

	events.PublishSafe(ctx, s.publisher, events.Event{
		Type: events.TypeImportCompleted,
		Kind: kind,
		At:   time.Now(),
		Data: map[string]int{"total": result.Total, "imported": result.Imported, "failed": result.Failed},
	})

	logrus.WithFields(logrus.Fields{
		"entity":   kind,
		"total":    result.Total,
		"imported": result.Imported,
		"failed":   result.Failed,
	}).Infof("Importação concluída em %v", time.Since(startTime))

	return result, nil
}

func (r *ImportResult) fail(line int, message string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Line: line, Message: message})
}

func (s *Service) Template(kind domain.Kind, w io.Writer) error {
	table, err := s.table(kind)
	if err != nil {
		return err
	}
	schema := table.Schema()
	if !schema.Importable() {
		return NewImportError(ErrNotImportable, apiErrors.ErrUnsupportedFile, string(kind))
	}
	return WriteTemplate(w, schema)
}

func (s *Service) Export(ctx context.Context, kind domain.Kind, filter domain.ListFilter, w io.Writer) error {
	table, err := s.table(kind)
	if err != nil {
		return err
	}

	rows, err := table.ExportRows(ctx, filter)
	if err != nil {
		return err
	}

	if err := WriteXLSX(w, table.Schema(), rows); err != nil {
		return NewImportError(ErrExport, apiErrors.ErrInternalServer, err.Error())
	}
	return nil
}

func toRow(columns, fields []string) map[string]string {
	row := make(map[string]string, len(columns))
	for i, column := range columns {
		if column == "" || i >= len(fields) {
			continue
		}
		row[column] = fields[i]
	}
	return row
}

func hasAny(columns []string) bool {
	for _, c := range columns {
		if c != "" {
			return true
		}
	}
	return false
}

// rowMessage resume o erro de uma linha; erros de validação listam os campos
func rowMessage(err error) string {
	var recordErr *records.RecordError
	if errors.As(err, &recordErr) {
		if fields, ok := recordErr.Details.([]domain.FieldError); ok {
			return domain.ValidationErrors(fields).Error()
		}
	}
	return err.Error()
}
