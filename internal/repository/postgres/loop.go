package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

func (r *repo) CreateLoop(ctx context.Context, params *repository.CreateLoopParams) (domain.Loop, error) {
	query := `
		INSERT INTO loops (room_id, user_id, name, audio_data, duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, volume, is_active, created_at
	`
	loop := domain.Loop{
		RoomId:    params.RoomId,
		UserId:    params.UserId,
		Name:      params.Name,
		AudioData: params.AudioData,
		Duration:  params.Duration,
	}
	err := r.pool.QueryRow(ctx, query,
		params.RoomId,
		params.UserId,
		params.Name,
		params.AudioData,
		params.Duration,
	).Scan(&loop.Id, &loop.Volume, &loop.IsActive, &loop.CreatedAt)
	if err != nil {
		return domain.Loop{}, fmt.Errorf("inserting loop: %w", err)
	}

	return loop, nil
}

func (r *repo) ListLoopsForRoom(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error) {
	query := `
		SELECT l.id, l.room_id, l.user_id, l.name, l.audio_data, l.duration,
			l.volume, l.is_active, l.created_at,
			u.id, u.username
		FROM loops l
		JOIN users u ON u.id = l.user_id
		WHERE l.room_id = $1
		ORDER BY l.id
	`
	rows, err := r.pool.Query(ctx, query, roomId)
	if err != nil {
		return nil, fmt.Errorf("querying loops: %w", err)
	}
	defer rows.Close()

	loops := []domain.LoopWithUser{}
	for rows.Next() {
		var loop domain.LoopWithUser
		if err := rows.Scan(
			&loop.Id,
			&loop.RoomId,
			&loop.UserId,
			&loop.Name,
			&loop.AudioData,
			&loop.Duration,
			&loop.Volume,
			&loop.IsActive,
			&loop.CreatedAt,
			&loop.User.Id,
			&loop.User.Username,
		); err != nil {
			return nil, fmt.Errorf("scanning loop: %w", err)
		}
		loops = append(loops, loop)
	}

	return loops, rows.Err()
}

// UpdateLoop applies a partial update; COALESCE keeps unset fields. Concurrent
// updates to the same loop are last-write-wins by row serialization order.
func (r *repo) UpdateLoop(ctx context.Context, params *repository.UpdateLoopParams) (domain.Loop, error) {
	query := `
		UPDATE loops
		SET volume = COALESCE($2, volume),
			is_active = COALESCE($3, is_active)
		WHERE id = $1
		RETURNING id, room_id, user_id, name, audio_data, duration, volume, is_active, created_at
	`
	var loop domain.Loop
	err := r.pool.QueryRow(ctx, query, params.LoopId, params.Volume, params.IsActive).Scan(
		&loop.Id,
		&loop.RoomId,
		&loop.UserId,
		&loop.Name,
		&loop.AudioData,
		&loop.Duration,
		&loop.Volume,
		&loop.IsActive,
		&loop.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Loop{}, domain.ErrLoopNotFound
	}
	if err != nil {
		return domain.Loop{}, fmt.Errorf("updating loop: %w", err)
	}

	return loop, nil
}

func (r *repo) DeleteLoop(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM loops WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting loop: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
