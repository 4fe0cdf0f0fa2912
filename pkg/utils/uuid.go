package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceCharacters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReference gera números legíveis como QT-7KX2PA, sem caracteres ambíguos
func GenerateReference(prefix string) (string, error) {
	id, err := gonanoid.Generate(referenceCharacters, 6)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(prefix) + "-" + id, nil
}
