package controller

import (
	"context"
	"log/slog"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/room"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/user"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/validator"
)

type iUserService interface {
	Register(ctx context.Context, params *user.RegisterParams) (domain.User, error)
	Login(ctx context.Context, params *user.LoginParams) (domain.User, error)
}

type iRoomService interface {
	CreateRoom(ctx context.Context, params *room.CreateRoomParams) (room.CreateRoomResponse, error)
	GetRoomSnapshot(ctx context.Context, roomId int64) (domain.RoomSnapshot, error)
	ListPublicRooms(ctx context.Context) ([]domain.Room, error)
	ListUserRooms(ctx context.Context, userId int64) ([]domain.Room, error)
	JoinRoom(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error)
	LeaveRoom(ctx context.Context, roomId, userId int64) (bool, error)
	Heartbeat(ctx context.Context, roomId, userId int64) error
	CreateLoop(ctx context.Context, params *room.CreateLoopParams) (domain.Loop, error)
	ListLoops(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error)
	UpdateLoop(ctx context.Context, params *room.UpdateLoopParams) (domain.Loop, error)
	DeleteLoop(ctx context.Context, loopId int64) error
	DeleteAllLoops(ctx context.Context, roomId int64) (room.DeleteAllLoopsResponse, error)
	ExportMixdown(ctx context.Context, roomId int64) (room.ExportResponse, error)
}

type controller struct {
	userService iUserService
	roomService iRoomService
	validate    *validator.Validator
	logger      *slog.Logger
}

func NewController(userService iUserService, roomService iRoomService, logger *slog.Logger) *controller {
	return &controller{
		userService: userService,
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
}
