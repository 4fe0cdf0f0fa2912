package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		templateEntity = ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplate(t *testing.T) {
	out, err := execute(t, "template", "--entity", "leads")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "first_name,last_name,company"))
	assert.Contains(t, lines[1], "asha.rao@example.edu")
}

func TestTemplate_TipoDesconhecido(t *testing.T) {
	_, err := execute(t, "template", "--entity", "planetas")
	assert.ErrorContains(t, err, "planetas")
}

func TestTemplate_SemEntity(t *testing.T) {
	_, err := execute(t, "template")
	assert.Error(t, err)
}

func TestPrintImportResult(t *testing.T) {
	tests := []struct {
		name    string
		result  importing.ImportResult
		wantErr bool
	}{
		{
			name:   "todas as linhas importadas",
			result: importing.ImportResult{Entity: "leads", Total: 2, Imported: 2},
		},
		{
			name: "linha com falha",
			result: importing.ImportResult{
				Entity: "leads", Total: 2, Imported: 1, Failed: 1,
				Errors: []importing.RowError{{Line: 3, Message: "email: formato inválido"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cmd := importCmd
			cmd.SetOut(out)

			err := printImportResult(cmd, &tt.result)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out.String(), `"entity": "leads"`)
		})
	}
}
