package importing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/records/mocks"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newImporter(t *testing.T, maxRows int) (*Service, *mocks.MockTable) {
	ctrl := gomock.NewController(t)
	table := mocks.NewMockTable(ctrl)
	table.EXPECT().Kind().Return(domain.KindLead).AnyTimes()
	table.EXPECT().Schema().Return(domain.MustSchema(domain.KindLead)).AnyTimes()

	service := NewService([]records.Table{table}, events.NewLogPublisher(), config.Import{MaxRows: maxRows})
	return service, table
}

func TestImport_ContaFalhasSemDesfazerLinhasAnteriores(t *testing.T) {
	service, table := newImporter(t, 100)

	csv := strings.Join([]string{
		"First Name,Last Name,Email Address,Company,Tags",
		`Asha,Rao,asha@example.edu,"State University, Bengaluru",lab;microscopy`,
		`,Sem Nome,x@example.com,Acme,`,
		`Ravi,"Broken,ravi@example.com,Acme,`,
		`Meera,Iyer,meera@example.com,City Hospital,`,
	}, "\n")

	gomock.InOrder(
		table.EXPECT().
			ImportRow(gomock.Any(), map[string]string{
				"first_name": "Asha", "last_name": "Rao", "email": "asha@example.edu",
				"company": "State University, Bengaluru", "tags": "lab;microscopy",
			}, 7).
			Return("lead-1", nil),
		table.EXPECT().
			ImportRow(gomock.Any(), gomock.Any(), 7).
			Return("", records.NewRecordError(records.ErrValidation, apiErrors.ErrMissingRequiredData, domain.KindLead,
				[]domain.FieldError{{Field: "first_name", Reason: domain.ReasonRequired}})),
		table.EXPECT().
			ImportRow(gomock.Any(), gomock.Any(), 7).
			Return("lead-3", nil),
	)

	result, err := service.Import(context.Background(), domain.KindLead, "leads.csv", strings.NewReader(csv), 7)
	require.NoError(t, err)

	assert.Equal(t, domain.KindLead, result.Entity)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, "validation failed: first_name: required", result.Errors[0].Message)

	assert.Equal(t, 4, result.Errors[1].Line)
	assert.Equal(t, ErrUnterminatedQuote.Error(), result.Errors[1].Message)
}

func TestImport_Erros(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.Kind
		fileName string
		content  string
		maxRows  int
		wantErr  error
		wantCode string
	}{
		{
			name:     "Extensão não suportada",
			kind:     domain.KindLead,
			fileName: "leads.txt",
			content:  "first_name\nAsha",
			wantErr:  ErrUnsupportedFile,
			wantCode: apiErrors.ErrUnsupportedFile,
		},
		{
			name:     "Tipo desconhecido",
			kind:     domain.Kind("invoices"),
			fileName: "x.csv",
			content:  "a\nb",
			wantErr:  ErrUnknownEntity,
			wantCode: apiErrors.ErrUnknownEntity,
		},
		{
			name:     "Arquivo vazio",
			kind:     domain.KindLead,
			fileName: "leads.csv",
			content:  "\n\n",
			wantErr:  ErrMalformedFile,
			wantCode: apiErrors.ErrMalformedFile,
		},
		{
			name:     "Cabeçalho sem colunas conhecidas",
			kind:     domain.KindLead,
			fileName: "leads.csv",
			content:  "foo,bar\n1,2",
			wantErr:  ErrMalformedFile,
			wantCode: apiErrors.ErrMalformedFile,
		},
		{
			name:     "Limite de linhas excedido",
			kind:     domain.KindLead,
			fileName: "leads.csv",
			content:  "first_name\nA\nB\nC",
			maxRows:  2,
			wantErr:  ErrTooManyRows,
			wantCode: apiErrors.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newImporter(t, tt.maxRows)

			result, err := service.Import(context.Background(), tt.kind, tt.fileName, strings.NewReader(tt.content), 1)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)

			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, tt.wantCode, importErr.Code)
		})
	}
}

func TestMapHeaders(t *testing.T) {
	schema := domain.MustSchema(domain.KindLead)

	got := MapHeaders([]string{"First Name", "E-mail", "Organization", "Unknown", "email"}, schema)

	// a segunda coluna de email é ignorada
	assert.Equal(t, []string{"first_name", "email", "company", "", ""}, got)
}

func TestTemplate(t *testing.T) {
	service, _ := newImporter(t, 0)

	var buf bytes.Buffer
	require.NoError(t, service.Template(domain.KindLead, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	header, err := SplitLine(lines[0])
	require.NoError(t, err)
	assert.Equal(t, domain.MustSchema(domain.KindLead).ImportColumns, header)

	example, err := SplitLine(lines[1])
	require.NoError(t, err)
	assert.Equal(t, "Asha", example[0])
}
