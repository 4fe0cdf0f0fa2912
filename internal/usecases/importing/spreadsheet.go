package importing

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReadXLSX lê a primeira planilha do arquivo; linhas vazias são ignoradas
func ReadXLSX(r io.Reader) ([]Line, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar planilha")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", sheet, err)
	}

	lines := make([]Line, 0, len(rows))
	for i, row := range rows {
		fields := make([]string, len(row))
		empty := true
		for j, cell := range row {
			fields[j] = strings.TrimSpace(cell)
			if fields[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Fields: fields})
	}

	return lines, nil
}

// WriteTemplate escreve o cabeçalho de importação do tipo e uma linha de exemplo
func WriteTemplate(w io.Writer, schema domain.Schema) error {
	writer := csv.NewWriter(w)

	example := make([]string, len(schema.ImportColumns))
	for i, column := range schema.ImportColumns {
		example[i] = schema.Example[column]
	}

	if err := writer.Write(schema.ImportColumns); err != nil {
		return err
	}
	if err := writer.Write(example); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX exporta as linhas com as colunas do schema, na mesma ordem da tabela
func WriteXLSX(w io.Writer, schema domain.Schema, rows []map[string]any) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar planilha")
		}
	}()

	sheet := string(schema.Kind)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("erro ao criar aba: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("erro ao remover aba padrão: %w", err)
	}

	for i, column := range schema.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, column := range schema.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(row[column])); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// cellValue achata listas e objetos para que caibam em uma célula
func cellValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(cellValue(item)))
		}
		return strings.Join(parts, ";")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v[k]))
		}
		return strings.Join(parts, " ")
	default:
		return v
	}
}
