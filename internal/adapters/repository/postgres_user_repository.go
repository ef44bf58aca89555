package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.UserRepository = (*PostgresUserRepository)(nil)

const userQueryTimeout = 3 * time.Second

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, userQueryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if pgCode(err) == pgUniqueViolation {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userQueryTimeout)
	defer cancel()

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE ` + column + ` = $1
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", column, err)
	}

	return &user, nil
}
