package redis

import (
	"context"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
	"github.com/redis/go-redis/v9"
)

func (r repo) getRoomKey(roomId int64) string {
	return "room:" + formatId(roomId)
}

func (r repo) getPublicRoomsKey() string {
	return "rooms:public"
}

func (r repo) getCreatorRoomsKey(creatorId int64) string {
	return "user:" + formatId(creatorId) + ":rooms"
}

func (r repo) CreateRoomWithCreator(ctx context.Context, params *repository.CreateRoomParams) (domain.Room, domain.RoomParticipant, error) {
	roomId, err := r.nextId(ctx, "room")
	if err != nil {
		return domain.Room{}, domain.RoomParticipant{}, err
	}

	participantId, err := r.nextId(ctx, "participant")
	if err != nil {
		return domain.Room{}, domain.RoomParticipant{}, err
	}

	now := time.Now().UTC()
	room := roomRow{
		Id:           roomId,
		Name:         params.Name,
		CreatorId:    params.CreatorId,
		Bpm:          params.Bpm,
		KeySignature: params.KeySignature,
		IsPublic:     params.IsPublic,
		CreatedAt:    toMillis(now),
	}
	creatorRow := participantRow{
		Id:           participantId,
		RoomId:       roomId,
		UserId:       params.CreatorId,
		JoinedAt:     toMillis(now),
		LastActiveAt: toMillis(now),
	}

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, r.getRoomKey(roomId), room)
	if params.IsPublic {
		pipe.ZAdd(ctx, r.getPublicRoomsKey(), redis.Z{Score: float64(roomId), Member: roomId})
	}
	pipe.ZAdd(ctx, r.getCreatorRoomsKey(params.CreatorId), redis.Z{Score: float64(roomId), Member: roomId})
	pipe.HSet(ctx, r.getParticipantKey(roomId, params.CreatorId), creatorRow)
	pipe.ZAdd(ctx, r.getParticipantListKey(roomId), redis.Z{Score: float64(participantId), Member: params.CreatorId})

	if err := r.executePipe(ctx, pipe); err != nil {
		return domain.Room{}, domain.RoomParticipant{}, err
	}

	return room.toDomain(), creatorRow.toDomain(), nil
}

func (r repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	var row roomRow
	if err := r.rc.HGetAll(ctx, r.getRoomKey(id)).Scan(&row); err != nil {
		return domain.Room{}, err
	}

	if row.Id == 0 {
		return domain.Room{}, domain.ErrRoomNotFound
	}

	return row.toDomain(), nil
}

func (r repo) ListPublicRooms(ctx context.Context) ([]domain.Room, error) {
	return r.listRoomsByIndex(ctx, r.getPublicRoomsKey())
}

func (r repo) ListRoomsByCreator(ctx context.Context, creatorId int64) ([]domain.Room, error) {
	return r.listRoomsByIndex(ctx, r.getCreatorRoomsKey(creatorId))
}

func (r repo) listRoomsByIndex(ctx context.Context, indexKey string) ([]domain.Room, error) {
	ids, err := r.rc.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]domain.Room, 0, len(ids))
	for _, id := range ids {
		room, err := r.GetRoom(ctx, parseId(id))
		if err != nil {
			if err == domain.ErrRoomNotFound {
				continue
			}
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}
