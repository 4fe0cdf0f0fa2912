package importing

import (
	"fmt"

	"github.com/pkg/errors"
)

// Erros específicos para o contexto de importação
var (
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrNotImportable   = errors.New("entity does not support file import")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds the allowed size")
	ErrTooManyRows     = errors.New("file exceeds the allowed number of rows")
	ErrMalformedFile   = errors.New("malformed file")
	ErrExport          = errors.New("error exporting records")
)

// ImportError é um erro com contexto adicional para importação
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details any    // Detalhes adicionais
}

// Error implementa a interface error
func (e *ImportError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError cria um novo ImportError
func NewImportError(err error, code string, details any) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
