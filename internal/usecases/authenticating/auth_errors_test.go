package authenticating_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"código explícito prevalece", authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrUserLocked, ""), apiErrors.ErrUserLocked},
		{"código padrão do erro base", authenticating.NewAuthError(authenticating.ErrSamePassword, "", ""), apiErrors.ErrWeakPassword},
		{"erro base embrulhado", fmt.Errorf("login: %w", authenticating.ErrExpiredToken), apiErrors.ErrExpiredToken},
		{"erro desconhecido", errors.New("conexão recusada"), apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authenticating.CodeFor(tt.err))
		})
	}
}

func TestNewUserAuthError(t *testing.T) {
	err := authenticating.NewUserAuthError(authenticating.ErrUserDisabled, "", 12, "conta suspensa")

	assert.Equal(t, apiErrors.ErrUserDisabled, err.Code)
	assert.Equal(t, 12, err.UserID)
	assert.Equal(t, "usuário desativado: conta suspensa", err.Error())
	assert.ErrorIs(t, err, authenticating.ErrUserDisabled)
}
