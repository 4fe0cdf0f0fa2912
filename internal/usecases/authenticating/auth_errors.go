package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

var (
	// login e sessão
	ErrInvalidCredentials    = errors.New("credenciais inválidas")
	ErrUserDisabled          = errors.New("usuário desativado")
	ErrUserNotFound          = errors.New("usuário não encontrado")
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")
	ErrUserAlreadyExists     = errors.New("usuário já existe")

	// validação do cadastro de usuários
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidFormat       = errors.New("formato de dados inválido")

	// senha
	ErrWeakPassword      = errors.New("senha fraca")
	ErrSamePassword      = errors.New("nova senha deve ser diferente da atual")
	ErrNoAdminPrivileges = errors.New("apenas administradores podem realizar esta ação")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// códigos da API para cada erro base, usados quando o erro chega sem AuthError
var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidCredentials, apiErrors.ErrInvalidCredentials},
	{ErrUserDisabled, apiErrors.ErrUserDisabled},
	{ErrUserNotFound, apiErrors.ErrUserNotFound},
	{ErrExpiredToken, apiErrors.ErrExpiredToken},
	{ErrInvalidToken, apiErrors.ErrInvalidToken},
	{ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege},
	{ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege},
	{ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists},
	{ErrMissingRequiredData, apiErrors.ErrMissingRequiredData},
	{ErrInvalidFormat, apiErrors.ErrInvalidFormat},
	{ErrWeakPassword, apiErrors.ErrWeakPassword},
	{ErrSamePassword, apiErrors.ErrWeakPassword},
	{ErrDatabaseOperation, apiErrors.ErrDatabaseOperation},
}

// AuthError carrega o código da API e o usuário envolvido, quando houver
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// CodeFor devolve o código da API para qualquer erro de autenticação, SRV_001 para o resto
func CodeFor(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return apiErrors.ErrInternalServer
}

// NewAuthError cria um erro de autenticação; code vazio usa o código padrão do erro base
func NewAuthError(baseErr error, code string, details string) *AuthError {
	if code == "" {
		code = CodeFor(baseErr)
	}
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewUserAuthError é NewAuthError com o usuário afetado, exposto nos detalhes da resposta
func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	authErr := NewAuthError(baseErr, code, details)
	authErr.UserID = userID
	return authErr
}
