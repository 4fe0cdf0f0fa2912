package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/domain"
)

func TestBuildListQuery(t *testing.T) {
	owner := 7
	leads := domain.MustSchema(domain.KindLead)

	searchArgs := make([]interface{}, len(leads.Searchable))
	for i := range searchArgs {
		searchArgs[i] = "%asha%"
	}
	wildcardArgs := make([]interface{}, len(leads.Searchable))
	for i := range wildcardArgs {
		wildcardArgs[i] = `%50\%\_off\\x%`
	}

	tests := []struct {
		name      string
		filter    domain.ListFilter
		wantWhere string
		wantArgs  []interface{}
		wantOrder string
		wantPage  string
	}{
		{
			name:      "sem filtros",
			filter:    domain.ListFilter{},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "filtro por status retorna apenas o valor pedido",
			filter:    domain.ListFilter{Filters: map[string][]string{"status": {"qualified"}}},
			wantWhere: "WHERE (status = $1)",
			wantArgs:  []interface{}{"qualified"},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "vários valores viram IN",
			filter:    domain.ListFilter{Filters: map[string][]string{"status": {"new", "contacted"}}},
			wantWhere: "WHERE (status IN ($1,$2))",
			wantArgs:  []interface{}{"new", "contacted"},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "coluna fora da lista de filtros é ignorada",
			filter:    domain.ListFilter{Filters: map[string][]string{"notes": {"x"}, "grade": {"hot"}}},
			wantWhere: "WHERE (grade = $1)",
			wantArgs:  []interface{}{"hot"},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "dono e ordenação permitida",
			filter:    domain.ListFilter{OwnerID: &owner, SortBy: "score", SortDesc: true, Page: 3, PageSize: 10},
			wantWhere: "WHERE (owner_id = $1)",
			wantArgs:  []interface{}{7},
			wantOrder: "ORDER BY score DESC, id",
			wantPage:  "LIMIT 10 OFFSET 20",
		},
		{
			name:      "owner_id na query string filtra pelo dono",
			filter:    domain.ListFilter{Filters: map[string][]string{"owner_id": {"5"}}},
			wantWhere: "WHERE (owner_id = $1)",
			wantArgs:  []interface{}{"5"},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "ordenação desconhecida usa a padrão",
			filter:    domain.ListFilter{SortBy: "password_hash"},
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "busca em todas as colunas pesquisáveis",
			filter:    domain.ListFilter{Search: "  asha "},
			wantWhere: "WHERE ((first_name ILIKE $1 OR last_name ILIKE $2",
			wantArgs:  searchArgs,
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
		{
			name:      "curingas do ILIKE na busca são tratados como texto",
			filter:    domain.ListFilter{Search: `50%_off\x`},
			wantWhere: "WHERE ((first_name ILIKE $1 OR last_name ILIKE $2",
			wantArgs:  wildcardArgs,
			wantOrder: "ORDER BY created_at DESC, id",
			wantPage:  "LIMIT 20 OFFSET 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			filter.Normalize()

			selectBuilder, countBuilder := BuildListQuery(leads, filter)

			query, args, err := selectBuilder.ToSql()
			require.NoError(t, err)
			countQuery, countArgs, err := countBuilder.ToSql()
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "SELECT id, created_at, updated_at, owner_id"), query)
			assert.True(t, strings.HasPrefix(countQuery, "SELECT COUNT(*) FROM leads"), countQuery)
			assert.Contains(t, query, tt.wantOrder)
			assert.Contains(t, query, tt.wantPage)

			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
				assert.NotContains(t, countQuery, "WHERE")
				assert.Empty(t, args)
				return
			}

			assert.Contains(t, query, tt.wantWhere)
			assert.Contains(t, countQuery, tt.wantWhere)
			assert.Equal(t, tt.wantArgs, args)
			assert.Equal(t, tt.wantArgs, countArgs)
		})
	}
}

func TestNamedStatements(t *testing.T) {
	schema := domain.MustSchema(domain.KindDealer)

	insert := namedInsert(schema)
	assert.True(t, strings.HasPrefix(insert, "INSERT INTO dealers (id, created_at, updated_at"), insert)
	assert.Contains(t, insert, "VALUES (:id, :created_at, :updated_at")

	update := namedUpdate(schema)
	assert.True(t, strings.HasPrefix(update, "UPDATE dealers SET "), update)
	assert.NotContains(t, update, "id = :id,")
	assert.NotContains(t, update, "created_at = :created_at")
	assert.True(t, strings.HasSuffix(update, "WHERE id = :id"), update)
}

func TestConstraintError(t *testing.T) {
	unique := &ConstraintError{Code: pqUniqueViolation, Constraint: "users_email_key"}
	assert.True(t, unique.IsUnique())
	assert.False(t, unique.IsForeignKey())

	fk := &ConstraintError{Code: pqForeignKeyViolation, Constraint: "deals_account_id_fkey"}
	assert.True(t, fk.IsForeignKey())
	assert.False(t, fk.IsUnique())
}
