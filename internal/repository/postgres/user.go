package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

const uniqueViolationCode = "23505"

func (r *repo) CreateUser(ctx context.Context, params *repository.CreateUserParams) (domain.User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id
	`
	user := domain.User{
		Username: params.Username,
		Password: params.Password,
	}
	err := r.pool.QueryRow(ctx, query, params.Username, params.Password).Scan(&user.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

func (r *repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE id = $1
	`
	var user domain.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&user.Id, &user.Username, &user.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}

func (r *repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE username = $1
	`
	var user domain.User
	err := r.pool.QueryRow(ctx, query, username).Scan(&user.Id, &user.Username, &user.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("querying user by username: %w", err)
	}

	return user, nil
}
