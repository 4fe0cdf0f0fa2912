// Package migration aplica o schema do CRM no PostgreSQL
package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schemaSQL string

// Statements divide o schema em comandos individuais
func Statements() []string {
	var statements []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if trimmed := strings.TrimSpace(stmt); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

// Migrate aplica todo o schema em uma única transação; os comandos são idempotentes
func Migrate(ctx context.Context, conn postgres.Conn) error {
	logrus.Info("Iniciando migração do schema...")
	startTime := time.Now()

	statements := Statements()
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("erro no comando %d/%d: %w", i+1, len(statements), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("Migração concluída em %v (%d comandos)", time.Since(startTime), len(statements))
	return nil
}

type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// SeedAdmin cria o usuário administrador inicial quando o e-mail ainda não existe
func SeedAdmin(ctx context.Context, conn postgres.Conn, seed AdminSeed) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	result, err := conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, active, role_id) VALUES ($1, $2, $3, TRUE, 1) ON CONFLICT (email) DO NOTHING`,
		seed.Name, strings.ToLower(strings.TrimSpace(seed.Email)), string(hash),
	)
	if err != nil {
		return false, fmt.Errorf("erro ao criar administrador: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
