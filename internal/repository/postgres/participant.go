package postgres

import (
	"context"
	"fmt"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
)

// UpsertParticipant makes join idempotent: the UNIQUE(room_id, user_id)
// constraint turns a concurrent re-join into an update of last_active_at.
func (r *repo) UpsertParticipant(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error) {
	query := `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (room_id, user_id)
		DO UPDATE SET last_active_at = NOW()
		RETURNING id, room_id, user_id, joined_at, last_active_at
	`
	var participant domain.RoomParticipant
	err := r.pool.QueryRow(ctx, query, roomId, userId).Scan(
		&participant.Id,
		&participant.RoomId,
		&participant.UserId,
		&participant.JoinedAt,
		&participant.LastActiveAt,
	)
	if err != nil {
		return domain.RoomParticipant{}, fmt.Errorf("upserting participant: %w", err)
	}

	return participant, nil
}

func (r *repo) RemoveParticipant(ctx context.Context, roomId, userId int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM room_participants
		WHERE room_id = $1 AND user_id = $2
	`, roomId, userId)
	if err != nil {
		return false, fmt.Errorf("deleting participant: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// TouchParticipant refreshes last_active_at. A heartbeat from a lapsed client
// matches no row and is silently a no-op.
func (r *repo) TouchParticipant(ctx context.Context, roomId, userId int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE room_participants
		SET last_active_at = NOW()
		WHERE room_id = $1 AND user_id = $2
	`, roomId, userId)
	if err != nil {
		return fmt.Errorf("touching participant: %w", err)
	}

	return nil
}

func (r *repo) ListParticipants(ctx context.Context, roomId int64) ([]domain.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.room_id, p.user_id, p.joined_at, p.last_active_at,
			u.id, u.username
		FROM room_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.room_id = $1
		ORDER BY p.joined_at
	`
	rows, err := r.pool.Query(ctx, query, roomId)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.ParticipantWithUser{}
	for rows.Next() {
		var p domain.ParticipantWithUser
		if err := rows.Scan(
			&p.Id,
			&p.RoomId,
			&p.UserId,
			&p.JoinedAt,
			&p.LastActiveAt,
			&p.User.Id,
			&p.User.Username,
		); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}
