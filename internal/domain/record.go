package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Record é implementado por toda entidade persistida pelo serviço genérico de registros
type Record interface {
	GetBase() *Base
	GetID() string
	SetID(id string)
	Touch(now time.Time)
	Validate() error
}

// Referenced é implementado por entidades com número de referência legível (QT-, CS-, CP-)
type Referenced interface {
	ReferencePrefix() string
	Reference() string
	SetReference(ref string)
}

// Owned é implementado por entidades que pertencem a um usuário
type Owned interface {
	AssignOwner(userID int)
}

type Base struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Base) GetBase() *Base {
	return b
}

func (b *Base) GetID() string {
	return b.ID
}

func (b *Base) SetID(id string) {
	b.ID = id
}

func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type Ownership struct {
	OwnerID *int `json:"owner_id" db:"owner_id"`
}

// AssignOwner define o dono apenas quando o registro ainda não possui um
func (o *Ownership) AssignOwner(userID int) {
	if o.OwnerID == nil && userID > 0 {
		o.OwnerID = &userID
	}
}

const (
	ReasonRequired = "required"
	ReasonInvalid  = "invalid"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		if fe.Detail != "" {
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", fe.Field, fe.Reason, fe.Detail))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// OnlyMissing indica se todos os erros são de campos obrigatórios ausentes
func (v ValidationErrors) OnlyMissing() bool {
	for _, fe := range v {
		if fe.Reason != ReasonRequired {
			return false
		}
	}
	return true
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.errs = append(v.errs, FieldError{Field: field, Reason: ReasonRequired})
	}
}

// oneOf normaliza o valor para minúsculas e aplica o primeiro valor permitido quando vazio
func (v *validator) oneOf(field string, value *string, allowed []string) {
	normalized := strings.ToLower(strings.TrimSpace(*value))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if normalized == "" {
		*value = allowed[0]
		return
	}

	for _, a := range allowed {
		if a == normalized {
			*value = normalized
			return
		}
	}

	v.errs = append(v.errs, FieldError{
		Field:  field,
		Reason: ReasonInvalid,
		Detail: "expected one of " + strings.Join(allowed, ", "),
	})
}

func (v *validator) nonNegative(field string, value float64) {
	if value < 0 {
		v.errs = append(v.errs, FieldError{Field: field, Reason: ReasonInvalid, Detail: "must not be negative"})
	}
}

func (v *validator) between(field string, value, min, max float64) {
	if value < min || value > max {
		v.errs = append(v.errs, FieldError{
			Field:  field,
			Reason: ReasonInvalid,
			Detail: fmt.Sprintf("must be between %g and %g", min, max),
		})
	}
}

func (v *validator) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.errs = append(v.errs, FieldError{Field: field, Reason: ReasonInvalid, Detail: "malformed email"})
	}
}

func (v *validator) dateOrder(field string, start, end *time.Time) {
	if start == nil || end == nil {
		return
	}
	if end.Before(*start) {
		v.errs = append(v.errs, FieldError{Field: field, Reason: ReasonInvalid, Detail: "must not be before start date"})
	}
}

func (v *validator) add(field, reason, detail string) {
	v.errs = append(v.errs, FieldError{Field: field, Reason: reason, Detail: detail})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
