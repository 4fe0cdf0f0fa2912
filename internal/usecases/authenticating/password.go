package authenticating

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	minPasswordLength       = 8
	generatedPasswordLength = 12
)

// classes exigidas em toda senha, na ordem em que a falta é reportada
var passwordClasses = []struct {
	chars   string
	missing string
}{
	{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", "a senha deve conter pelo menos uma letra maiúscula"},
	{"abcdefghijklmnopqrstuvwxyz", "a senha deve conter pelo menos uma letra minúscula"},
	{"0123456789", "a senha deve conter pelo menos um número"},
	{"!@#$%^&*()-_=+[]{}|;:,.<>?", "a senha deve conter pelo menos um caractere especial"},
}

// ValidatePasswordStrength exige o tamanho mínimo e um caractere de cada classe
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	for _, class := range passwordClasses {
		if !strings.ContainsAny(password, class.chars) {
			return errors.New(class.missing)
		}
	}

	return nil
}

// generatePassword sorteia um caractere de cada classe e completa com o alfabeto inteiro
func generatePassword(length int) (string, error) {
	if length < minPasswordLength {
		length = minPasswordLength
	}

	var all strings.Builder
	password := make([]byte, 0, length)
	for _, class := range passwordClasses {
		all.WriteString(class.chars)
		c, err := randomChar(class.chars)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	for len(password) < length {
		c, err := randomChar(all.String())
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates para as classes obrigatórias não ficarem no começo
	for i := len(password) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randomChar(charset string) (byte, error) {
	n, err := randomInt(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
