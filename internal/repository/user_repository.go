package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

const pgUniqueViolation = "23505"

// UserRepository is the credential store.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	// FindByUsername returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Save inserts a new user; domain.ErrUsernameTaken on conflict.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT username, password_hash, display_name, role, created_at
        FROM users WHERE username=$1`

	var (
		user domain.User
		role string
	)
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&role,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	user.Role = parsed
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (username, password_hash, display_name, role, created_at)
        VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.Role.String(),
		user.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	saved := *user
	return &saved, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
