package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/domain"
)

func TestBuildUserUpdate(t *testing.T) {
	t.Run("sem hash mantém a senha e limpa a revenda", func(t *testing.T) {
		query, args, err := buildUserUpdate(&domain.User{ID: 5, Name: "Ana", RoleID: domain.RoleSales}).ToSql()
		require.NoError(t, err)

		assert.NotContains(t, query, "password_hash")
		assert.Contains(t, query, "dealer_id = $6")
		assert.Nil(t, args[5])
		assert.Contains(t, query, "WHERE deleted = $8 AND id = $9")
	})

	t.Run("com hash e remoção lógica", func(t *testing.T) {
		query, _, err := buildUserUpdate(&domain.User{ID: 5, PasswordHash: "hash", Deleted: true}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "password_hash = $")
		assert.Contains(t, query, "deleted = $")
		assert.Contains(t, query, "deleted_at = $")
	})
}

func TestSelectUsers_IgnoraRemovidos(t *testing.T) {
	query, args, err := selectUsers(map[string]interface{}{"email": "ana@example.com"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM users WHERE deleted = $1 AND email = $2")
	assert.Equal(t, []interface{}{false, "ana@example.com"}, args)
}
