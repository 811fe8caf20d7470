package redis

import (
	"context"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/redis/go-redis/v9"
)

func (r repo) getParticipantKey(roomId, userId int64) string {
	return "room:" + formatId(roomId) + ":participant:" + formatId(userId)
}

func (r repo) getParticipantListKey(roomId int64) string {
	return "room:" + formatId(roomId) + ":participants"
}

func (r repo) addParticipantToList(ctx context.Context, pipe redis.Pipeliner, roomId, userId, participantId int64) {
	pipe.ZAdd(ctx, r.getParticipantListKey(roomId), redis.Z{Score: float64(participantId), Member: userId})
}

// UpsertParticipant is the join critical section. HSETNX on the pair key
// decides exactly one winner for a first join; every other call degrades to a
// last-active refresh on the existing row.
func (r repo) UpsertParticipant(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error) {
	now := toMillis(time.Now().UTC())
	pKey := r.getParticipantKey(roomId, userId)

	claimed, err := r.rc.HSetNX(ctx, pKey, "user_id", userId).Result()
	if err != nil {
		return domain.RoomParticipant{}, err
	}

	if claimed {
		participantId, err := r.nextId(ctx, "participant")
		if err != nil {
			return domain.RoomParticipant{}, err
		}

		row := participantRow{
			Id:           participantId,
			RoomId:       roomId,
			UserId:       userId,
			JoinedAt:     now,
			LastActiveAt: now,
		}
		pipe := r.rc.TxPipeline()
		pipe.HSet(ctx, pKey, row)
		r.addParticipantToList(ctx, pipe, roomId, userId, participantId)
		if err := r.executePipe(ctx, pipe); err != nil {
			return domain.RoomParticipant{}, err
		}

		return row.toDomain(), nil
	}

	if err := r.rc.HSet(ctx, pKey, "last_active_at", now).Err(); err != nil {
		return domain.RoomParticipant{}, err
	}

	return r.getParticipant(ctx, roomId, userId)
}

func (r repo) getParticipant(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error) {
	var row participantRow
	if err := r.rc.HGetAll(ctx, r.getParticipantKey(roomId, userId)).Scan(&row); err != nil {
		return domain.RoomParticipant{}, err
	}

	if row.Id == 0 {
		return domain.RoomParticipant{}, domain.ErrParticipantNotFound
	}

	return row.toDomain(), nil
}

func (r repo) RemoveParticipant(ctx context.Context, roomId, userId int64) (bool, error) {
	removed, err := r.rc.Del(ctx, r.getParticipantKey(roomId, userId)).Result()
	if err != nil {
		return false, err
	}

	if err := r.rc.ZRem(ctx, r.getParticipantListKey(roomId), userId).Err(); err != nil {
		return false, err
	}

	return removed > 0, nil
}

func (r repo) TouchParticipant(ctx context.Context, roomId, userId int64) error {
	pKey := r.getParticipantKey(roomId, userId)
	exists, err := r.rc.Exists(ctx, pKey).Result()
	if err != nil {
		return err
	}

	// lenient: heartbeats from lapsed clients are a no-op
	if exists == 0 {
		return nil
	}

	return r.rc.HSet(ctx, pKey, "last_active_at", toMillis(time.Now().UTC())).Err()
}

func (r repo) ListParticipants(ctx context.Context, roomId int64) ([]domain.ParticipantWithUser, error) {
	userIds, err := r.rc.ZRange(ctx, r.getParticipantListKey(roomId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]domain.ParticipantWithUser, 0, len(userIds))
	for _, idField := range userIds {
		userId := parseId(idField)

		participant, err := r.getParticipant(ctx, roomId, userId)
		if err != nil {
			if err == domain.ErrParticipantNotFound {
				continue
			}
			return nil, err
		}

		user, err := r.GetUser(ctx, userId)
		if err != nil {
			return nil, err
		}

		participants = append(participants, domain.ParticipantWithUser{
			RoomParticipant: participant,
			User:            user,
		})
	}

	return participants, nil
}
