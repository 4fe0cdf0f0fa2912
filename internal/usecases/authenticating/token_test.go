package authenticating

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
)

func tokenService(now time.Time) *Service {
	return &Service{
		cfg: &config.Config{SecretKey: "segredo-de-teste", Auth: config.Auth{TokenTTL: time.Hour}},
		now: func() time.Time { return now },
	}
}

func TestIssueToken_Claims(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	service := tokenService(now)

	token, err := service.issueToken(&domain.User{ID: 7, Name: "Ana", RoleID: domain.RoleSales})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 0)
}

func TestValidateToken_Expirado(t *testing.T) {
	issuedAt := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	token, err := tokenService(issuedAt).issueToken(&domain.User{ID: 7, RoleID: domain.RoleSales})
	require.NoError(t, err)

	_, err = tokenService(issuedAt.Add(2 * time.Hour)).ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Rejeicoes(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	service := tokenService(now)

	sign := func(claims domain.Claims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}
	otherIssuer := valid
	otherIssuer.Issuer = "outro-sistema"

	tests := []struct {
		name  string
		token string
	}{
		{"assinatura com outro segredo", sign(domain.Claims{UserRoleID: domain.RoleSales, RegisteredClaims: valid}, "outro")},
		{"emissor diferente", sign(domain.Claims{UserRoleID: domain.RoleSales, RegisteredClaims: otherIssuer}, "segredo-de-teste")},
		{"perfil inexistente", sign(domain.Claims{UserRoleID: 99, RegisteredClaims: valid}, "segredo-de-teste")},
		{"algoritmo none", strings.Join([]string{"eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0", "e30", ""}, ".")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	service := tokenService(time.Now())

	for i := 0; i < 20; i++ {
		generated, err := generatePassword(generatedPasswordLength)
		require.NoError(t, err)
		assert.Len(t, generated, generatedPasswordLength)
		assert.NoError(t, service.ValidatePasswordStrength(generated))
	}

	short, err := generatePassword(3)
	require.NoError(t, err)
	assert.Len(t, short, minPasswordLength)
}
