package room

import (
	"context"
	"log/slog"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

type iStore interface {
	// room
	GetRoom(ctx context.Context, id int64) (domain.Room, error)
	CreateRoomWithCreator(ctx context.Context, params *repository.CreateRoomParams) (domain.Room, domain.RoomParticipant, error)
	ListPublicRooms(ctx context.Context) ([]domain.Room, error)
	ListRoomsByCreator(ctx context.Context, creatorId int64) ([]domain.Room, error)
	// loop
	ListLoopsForRoom(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error)
	CreateLoop(ctx context.Context, params *repository.CreateLoopParams) (domain.Loop, error)
	UpdateLoop(ctx context.Context, params *repository.UpdateLoopParams) (domain.Loop, error)
	DeleteLoop(ctx context.Context, id int64) (bool, error)
	// participant
	UpsertParticipant(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error)
	RemoveParticipant(ctx context.Context, roomId, userId int64) (bool, error)
	TouchParticipant(ctx context.Context, roomId, userId int64) error
	ListParticipants(ctx context.Context, roomId int64) ([]domain.ParticipantWithUser, error)
}

type service struct {
	store  iStore
	logger *slog.Logger
}

func NewService(store iStore, logger *slog.Logger) *service {
	return &service{
		store:  store,
		logger: logger,
	}
}
