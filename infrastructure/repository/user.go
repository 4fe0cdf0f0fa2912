package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "lastname", "email", "password_hash", "active", "role_id", "dealer_id", "avatar_url", "created_at", "updated_at"}

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context) ([]*domain.User, error)
}

// userRow espelha a tabela users para o mapeamento do sqlx
type userRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Lastname     string    `db:"lastname"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Active       bool      `db:"active"`
	RoleID       int       `db:"role_id"`
	DealerID     *string   `db:"dealer_id"`
	AvatarURL    *string   `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Lastname:     r.Lastname,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Active:       r.Active,
		RoleID:       r.RoleID,
		DealerID:     r.DealerID,
		AvatarURL:    r.AvatarURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{conn: conn}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("name", "lastname", "email", "password_hash", "active", "role_id", "dealer_id", "avatar_url").
		Values(user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID, user.DealerID, user.AvatarURL).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, wrapPQError("erro ao criar usuário", err)
	}

	return user, nil
}

// buildUserUpdate grava o estado completo do usuário; hash vazio preserva a senha atual
func buildUserUpdate(user *domain.User) squirrel.UpdateBuilder {
	update := squirrel.
		Update(usersTable).
		Set("name", user.Name).
		Set("lastname", user.Lastname).
		Set("email", user.Email).
		Set("active", user.Active).
		Set("role_id", user.RoleID).
		Set("dealer_id", user.DealerID).
		Set("avatar_url", user.AvatarURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID, "deleted": false}).
		PlaceholderFormat(squirrel.Dollar)

	if user.PasswordHash != "" {
		update = update.Set("password_hash", user.PasswordHash)
	}
	if user.Deleted {
		update = update.Set("deleted", true).Set("deleted_at", user.DeletedAt)
	}

	return update
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query, args, err := buildUserUpdate(user).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapPQError("erro ao atualizar usuário", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

// selectUsers ignora usuários removidos em todas as leituras
func selectUsers(where squirrel.Eq) squirrel.SelectBuilder {
	conditions := squirrel.Eq{"deleted": false}
	for k, v := range where {
		conditions[k] = v
	}
	return squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := selectUsers(where).ToSql()
	if err != nil {
		return nil, err
	}

	var row userRow
	if err := r.conn.X.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return row.toDomain(), nil
}

func (r *userRepository) ListUser(ctx context.Context) ([]*domain.User, error) {
	query, args, err := selectUsers(nil).OrderBy("name ASC", "lastname ASC").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := r.conn.X.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		user := row.toDomain()
		user.PasswordHash = ""
		users = append(users, user)
	}

	return users, nil
}
