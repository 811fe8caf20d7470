package room

import (
	"context"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
)

// JoinRoom is idempotent: repeated calls refresh last_active_at on the same
// participant row.
func (s service) JoinRoom(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error) {
	if _, err := s.store.GetRoom(ctx, roomId); err != nil {
		return domain.RoomParticipant{}, err
	}

	participant, err := s.store.UpsertParticipant(ctx, roomId, userId)
	if err != nil {
		return domain.RoomParticipant{}, err
	}

	s.logger.DebugContext(ctx, "participant joined", "room_id", roomId, "user_id", userId)
	return participant, nil
}

// LeaveRoom reports false, not an error, when the user was never a member.
func (s service) LeaveRoom(ctx context.Context, roomId, userId int64) (bool, error) {
	removed, err := s.store.RemoveParticipant(ctx, roomId, userId)
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.DebugContext(ctx, "participant left", "room_id", roomId, "user_id", userId)
	}
	return removed, nil
}

// Heartbeat must never hard-fail a lapsed client; an unknown pair is a no-op.
func (s service) Heartbeat(ctx context.Context, roomId, userId int64) error {
	return s.store.TouchParticipant(ctx, roomId, userId)
}
