package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repo struct {
	pool *pgxpool.Pool
}

func NewRepo(ctx context.Context, databaseURL string) (*repo, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &repo{pool: pool}, nil
}

func (r *repo) Close() {
	r.pool.Close()
}

// Migrate creates the four tables. The UNIQUE constraints on users.username
// and room_participants(room_id, user_id) are what make registration and
// join race-free.
func (r *repo) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rooms (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			creator_id BIGINT NOT NULL REFERENCES users (id),
			bpm INTEGER NOT NULL DEFAULT 120,
			key_signature TEXT NOT NULL DEFAULT 'C Major',
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS loops (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT NOT NULL REFERENCES rooms (id),
			user_id BIGINT NOT NULL REFERENCES users (id),
			name TEXT NOT NULL,
			audio_data TEXT NOT NULL,
			duration DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS room_participants (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT NOT NULL REFERENCES rooms (id),
			user_id BIGINT NOT NULL REFERENCES users (id),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (room_id, user_id)
		);

		CREATE INDEX IF NOT EXISTS loops_room_id_idx ON loops (room_id);
		CREATE INDEX IF NOT EXISTS room_participants_room_id_idx ON room_participants (room_id);
	`

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
