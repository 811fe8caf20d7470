package redis

import (
	"context"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
	"github.com/redis/go-redis/v9"
)

func (r repo) getLoopKey(loopId int64) string {
	return "loop:" + formatId(loopId)
}

func (r repo) getLoopListKey(roomId int64) string {
	return "room:" + formatId(roomId) + ":loops"
}

func (r repo) CreateLoop(ctx context.Context, params *repository.CreateLoopParams) (domain.Loop, error) {
	loopId, err := r.nextId(ctx, "loop")
	if err != nil {
		return domain.Loop{}, err
	}

	row := loopRow{
		Id:        loopId,
		RoomId:    params.RoomId,
		UserId:    params.UserId,
		Name:      params.Name,
		AudioData: params.AudioData,
		Duration:  params.Duration,
		Volume:    1.0,
		IsActive:  true,
		CreatedAt: toMillis(time.Now().UTC()),
	}

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, r.getLoopKey(loopId), row)
	pipe.ZAdd(ctx, r.getLoopListKey(params.RoomId), redis.Z{Score: float64(loopId), Member: loopId})

	if err := r.executePipe(ctx, pipe); err != nil {
		return domain.Loop{}, err
	}

	return row.toDomain(), nil
}

func (r repo) getLoop(ctx context.Context, loopId int64) (domain.Loop, error) {
	var row loopRow
	if err := r.rc.HGetAll(ctx, r.getLoopKey(loopId)).Scan(&row); err != nil {
		return domain.Loop{}, err
	}

	if row.Id == 0 {
		return domain.Loop{}, domain.ErrLoopNotFound
	}

	return row.toDomain(), nil
}

func (r repo) ListLoopsForRoom(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error) {
	ids, err := r.rc.ZRange(ctx, r.getLoopListKey(roomId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	loops := make([]domain.LoopWithUser, 0, len(ids))
	for _, idField := range ids {
		loop, err := r.getLoop(ctx, parseId(idField))
		if err != nil {
			if err == domain.ErrLoopNotFound {
				continue
			}
			return nil, err
		}

		user, err := r.GetUser(ctx, loop.UserId)
		if err != nil {
			return nil, err
		}

		loops = append(loops, domain.LoopWithUser{Loop: loop, User: user})
	}

	return loops, nil
}

// UpdateLoop writes only the provided fields. Two concurrent updates to the
// same field race with last-write-wins; there is no version counter.
func (r repo) UpdateLoop(ctx context.Context, params *repository.UpdateLoopParams) (domain.Loop, error) {
	key := r.getLoopKey(params.LoopId)
	exists, err := r.rc.Exists(ctx, key).Result()
	if err != nil {
		return domain.Loop{}, err
	}
	if exists == 0 {
		return domain.Loop{}, domain.ErrLoopNotFound
	}

	fields := map[string]interface{}{}
	if params.Volume != nil {
		fields["volume"] = *params.Volume
	}
	if params.IsActive != nil {
		fields["is_active"] = *params.IsActive
	}

	if len(fields) > 0 {
		if err := r.rc.HSet(ctx, key, fields).Err(); err != nil {
			return domain.Loop{}, err
		}
	}

	return r.getLoop(ctx, params.LoopId)
}

func (r repo) DeleteLoop(ctx context.Context, loopId int64) (bool, error) {
	loop, err := r.getLoop(ctx, loopId)
	if err != nil {
		if err == domain.ErrLoopNotFound {
			return false, nil
		}
		return false, err
	}

	pipe := r.rc.TxPipeline()
	pipe.Del(ctx, r.getLoopKey(loopId))
	pipe.ZRem(ctx, r.getLoopListKey(loop.RoomId), loopId)

	if err := r.executePipe(ctx, pipe); err != nil {
		return false, err
	}

	return true, nil
}
