package importing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr error
	}{
		{
			name: "Campos simples",
			line: "Asha,Rao,asha@example.edu",
			want: []string{"Asha", "Rao", "asha@example.edu"},
		},
		{
			name: "Vírgula dentro de aspas faz parte do campo",
			line: `Asha,"Rao, PhD","State University, Bengaluru"`,
			want: []string{"Asha", "Rao, PhD", "State University, Bengaluru"},
		},
		{
			name: "Aspas duplas viram aspa literal",
			line: `"The ""Best"" Lab",42`,
			want: []string{`The "Best" Lab`, "42"},
		},
		{
			name: "Espaços nas pontas são removidos",
			line: "  Asha ,  Rao  , ",
			want: []string{"Asha", "Rao", ""},
		},
		{
			name: "Campos vazios são preservados",
			line: "a,,c,",
			want: []string{"a", "", "c", ""},
		},
		{
			name:    "Aspa sem fechamento invalida a linha",
			line:    `Asha,"Rao`,
			wantErr: ErrUnterminatedQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitLine(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := "\ufefffirst_name,company\r\n" +
		"Asha,\"State University, Bengaluru\"\r\n" +
		"\r\n" +
		"Ravi,\"Broken\r\n" +
		"Meera,City Hospital\n"

	lines, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, []string{"first_name", "company"}, lines[0].Fields)

	assert.Equal(t, 2, lines[1].Number)
	assert.Equal(t, []string{"Asha", "State University, Bengaluru"}, lines[1].Fields)

	// linha em branco é ignorada mas conta na numeração
	assert.Equal(t, 4, lines[2].Number)
	assert.ErrorIs(t, lines[2].Err, ErrUnterminatedQuote)

	assert.Equal(t, 5, lines[3].Number)
	assert.NoError(t, lines[3].Err)
	assert.Equal(t, []string{"Meera", "City Hospital"}, lines[3].Fields)
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Email Address":      "email_address",
		" First-Name ":       "first_name",
		"Last Contacted At":  "last_contacted_at",
		"Tax (%)":            "tax",
		"Unit Price / Rate":  "unit_price_rate",
		"already_normalized": "already_normalized",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeHeader(input), input)
	}
}
