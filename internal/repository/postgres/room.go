package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

// CreateRoomWithCreator inserts the room and its creator's participant row in
// one transaction, so a room is never visible with zero participants.
func (r *repo) CreateRoomWithCreator(ctx context.Context, params *repository.CreateRoomParams) (domain.Room, domain.RoomParticipant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Room{}, domain.RoomParticipant{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	room := domain.Room{
		Name:         params.Name,
		CreatorId:    params.CreatorId,
		Bpm:          params.Bpm,
		KeySignature: params.KeySignature,
		IsPublic:     params.IsPublic,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO rooms (name, creator_id, bpm, key_signature, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, params.Name, params.CreatorId, params.Bpm, params.KeySignature, params.IsPublic).
		Scan(&room.Id, &room.CreatedAt)
	if err != nil {
		return domain.Room{}, domain.RoomParticipant{}, fmt.Errorf("inserting room: %w", err)
	}

	participant := domain.RoomParticipant{
		RoomId: room.Id,
		UserId: params.CreatorId,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1, $2)
		RETURNING id, joined_at, last_active_at
	`, room.Id, params.CreatorId).
		Scan(&participant.Id, &participant.JoinedAt, &participant.LastActiveAt)
	if err != nil {
		return domain.Room{}, domain.RoomParticipant{}, fmt.Errorf("inserting creator participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Room{}, domain.RoomParticipant{}, fmt.Errorf("committing room creation: %w", err)
	}

	return room, participant, nil
}

func (r *repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	query := `
		SELECT id, name, creator_id, bpm, key_signature, is_public, created_at
		FROM rooms
		WHERE id = $1
	`
	var room domain.Room
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&room.Id,
		&room.Name,
		&room.CreatorId,
		&room.Bpm,
		&room.KeySignature,
		&room.IsPublic,
		&room.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("querying room: %w", err)
	}

	return room, nil
}

func (r *repo) ListPublicRooms(ctx context.Context) ([]domain.Room, error) {
	query := `
		SELECT id, name, creator_id, bpm, key_signature, is_public, created_at
		FROM rooms
		WHERE is_public = TRUE
		ORDER BY id
	`
	return r.queryRooms(ctx, query)
}

func (r *repo) ListRoomsByCreator(ctx context.Context, creatorId int64) ([]domain.Room, error) {
	query := `
		SELECT id, name, creator_id, bpm, key_signature, is_public, created_at
		FROM rooms
		WHERE creator_id = $1
		ORDER BY id
	`
	return r.queryRooms(ctx, query, creatorId)
}

func (r *repo) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.Id,
			&room.Name,
			&room.CreatorId,
			&room.Bpm,
			&room.KeySignature,
			&room.IsPublic,
			&room.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}
