package records

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// Erros específicos para o contexto de registros
var (
	ErrNotFound        = errors.New("record not found")
	ErrValidation      = errors.New("validation failed")
	ErrMalformedInput  = errors.New("malformed input")
	ErrDuplicate       = errors.New("duplicate record")
	ErrRelatedNotFound = errors.New("related record not found")
	ErrInvalidState    = errors.New("operation not allowed in current state")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating reference number")
)

// RecordError é um erro com contexto adicional para registros
type RecordError struct {
	Err      error       // Erro base
	Code     string      // Código de erro para API
	Kind     domain.Kind // Tipo do registro envolvido
	RecordID string      // ID do registro envolvido (quando aplicável)
	Details  any         // Detalhes adicionais
}

// Error implementa a interface error
func (e *RecordError) Error() string {
	prefix := e.Err.Error()
	if e.Kind != "" {
		prefix = fmt.Sprintf("%s %s", e.Kind, prefix)
	}
	if e.RecordID != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.RecordID)
	}
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Details)
	}
	return prefix
}

// Unwrap retorna o erro subjacente
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError cria um novo RecordError
func NewRecordError(err error, code string, kind domain.Kind, details any) *RecordError {
	return &RecordError{
		Err:     err,
		Code:    code,
		Kind:    kind,
		Details: details,
	}
}

// NewRecordErrorWithID cria um novo RecordError com o ID do registro
func NewRecordErrorWithID(err error, code string, kind domain.Kind, id string, details any) *RecordError {
	return &RecordError{
		Err:      err,
		Code:     code,
		Kind:     kind,
		RecordID: id,
		Details:  details,
	}
}

func notFound(kind domain.Kind, id string) *RecordError {
	return NewRecordErrorWithID(ErrNotFound, apiErrors.ErrRecordNotFound, kind, id, nil)
}

// NotFound é usado por serviços especializados que compartilham o mesmo contrato de erro
func NotFound(kind domain.Kind, id string) error {
	return notFound(kind, id)
}

// InvalidState indica que o registro não está em um estado que permita a operação
func InvalidState(kind domain.Kind, id string, details string) error {
	return NewRecordErrorWithID(ErrInvalidState, apiErrors.ErrInvalidState, kind, id, details)
}

func validationError(kind domain.Kind, err error) *RecordError {
	var fieldErrs domain.ValidationErrors
	if errors.As(err, &fieldErrs) {
		code := apiErrors.ErrInvalidFormat
		if fieldErrs.OnlyMissing() {
			code = apiErrors.ErrMissingRequiredData
		}
		return NewRecordError(ErrValidation, code, kind, []domain.FieldError(fieldErrs))
	}
	return NewRecordError(ErrMalformedInput, apiErrors.ErrInvalidFormat, kind, err.Error())
}

// fromRepository traduz erros de persistência para o contrato da API
func fromRepository(kind domain.Kind, id string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNotFound) {
		return notFound(kind, id)
	}

	var constraintErr *repository.ConstraintError
	if errors.As(err, &constraintErr) {
		if constraintErr.IsUnique() {
			return NewRecordErrorWithID(ErrDuplicate, apiErrors.ErrDuplicateRecord, kind, id, constraintErr.Constraint)
		}
		return NewRecordErrorWithID(ErrRelatedNotFound, apiErrors.ErrRelatedNotFound, kind, id, constraintErr.Constraint)
	}

	return NewRecordErrorWithID(errors.Wrap(ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, kind, id, nil)
}

func asRecordError(err error, target **RecordError) bool {
	return errors.As(err, target)
}

// Code extrai o código de API de um erro do pacote, com SRV_001 como padrão
func Code(err error) string {
	var recordErr *RecordError
	if errors.As(err, &recordErr) {
		return recordErr.Code
	}
	return apiErrors.ErrInternalServer
}
