package room

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

const (
	MinBpm = 60
	MaxBpm = 200
)

type CreateRoomParams struct {
	Name         string
	Bpm          int
	KeySignature string
	IsPublic     bool
	CreatorId    int64
}

type CreateRoomResponse struct {
	Room    domain.Room
	Creator domain.RoomParticipant
}

// CreateRoom persists the room and joins the creator in one store operation,
// so there is no window where the room exists with zero participants.
func (s service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return CreateRoomResponse{}, domain.NewValidationError("room name is required")
	}
	if len(name) > 64 {
		return CreateRoomResponse{}, domain.NewValidationError("room name must not exceed 64 characters")
	}
	if params.Bpm < MinBpm || params.Bpm > MaxBpm {
		return CreateRoomResponse{}, domain.NewValidationError(fmt.Sprintf("bpm must be between %d and %d", MinBpm, MaxBpm))
	}
	if !domain.IsValidKeySignature(params.KeySignature) {
		return CreateRoomResponse{}, domain.NewValidationError("unknown key signature")
	}

	room, creator, err := s.store.CreateRoomWithCreator(ctx, &repository.CreateRoomParams{
		Name:         name,
		Bpm:          params.Bpm,
		KeySignature: params.KeySignature,
		IsPublic:     params.IsPublic,
		CreatorId:    params.CreatorId,
	})
	if err != nil {
		return CreateRoomResponse{}, err
	}

	s.logger.InfoContext(ctx, "room created", "room_id", room.Id, "creator_id", params.CreatorId)
	return CreateRoomResponse{Room: room, Creator: creator}, nil
}

// GetRoomSnapshot composes the room with its participants, classifying each
// participant's presence from its heartbeat age at read time. Loops are a
// separate read by contract.
func (s service) GetRoomSnapshot(ctx context.Context, roomId int64) (domain.RoomSnapshot, error) {
	room, err := s.store.GetRoom(ctx, roomId)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}

	participants, err := s.store.ListParticipants(ctx, roomId)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}

	now := time.Now().UTC()
	for i := range participants {
		participants[i].Presence = domain.ClassifyPresence(now, participants[i].LastActiveAt)
	}

	return domain.RoomSnapshot{
		Room:         room,
		Participants: participants,
	}, nil
}

func (s service) ListPublicRooms(ctx context.Context) ([]domain.Room, error) {
	return s.store.ListPublicRooms(ctx)
}

func (s service) ListUserRooms(ctx context.Context, userId int64) ([]domain.Room, error) {
	return s.store.ListRoomsByCreator(ctx, userId)
}
