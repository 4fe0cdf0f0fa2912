package importing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// Line é uma linha do arquivo já separada em campos
type Line struct {
	Number int
	Fields []string
	Err    error
}

// SplitLine separa uma linha CSV respeitando aspas: vírgulas dentro de aspas fazem parte do campo
// e "" dentro de aspas é uma aspa literal. Os campos são devolvidos sem espaços nas pontas.
func SplitLine(line string) ([]string, error) {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
		case inQuotes:
			field.WriteByte(ch)
		case ch == '"':
			inQuotes = true
		case ch == ',':
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}

	return append(fields, strings.TrimSpace(field.String())), nil
}

// ReadCSV lê o arquivo linha a linha. Linhas em branco são ignoradas e CRLF é aceito.
// Uma aspa sem fechamento invalida apenas a própria linha.
func ReadCSV(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []Line
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if number == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields, err := SplitLine(text)
		lines = append(lines, Line{Number: number, Fields: fields, Err: err})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo CSV: %w", err)
	}

	return lines, nil
}
