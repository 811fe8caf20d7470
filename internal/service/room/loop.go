package room

import (
	"context"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

type CreateLoopParams struct {
	RoomId    int64
	UserId    int64
	Name      string
	AudioData string
	Duration  float64
}

// CreateLoop stores the payload verbatim; the audio bytes are opaque here.
func (s service) CreateLoop(ctx context.Context, params *CreateLoopParams) (domain.Loop, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return domain.Loop{}, domain.NewValidationError("loop name is required")
	}
	if len(name) > 64 {
		return domain.Loop{}, domain.NewValidationError("loop name must not exceed 64 characters")
	}
	if params.Duration <= 0 {
		return domain.Loop{}, domain.NewValidationError("duration must be greater than zero")
	}

	if _, err := s.store.GetRoom(ctx, params.RoomId); err != nil {
		return domain.Loop{}, err
	}

	loop, err := s.store.CreateLoop(ctx, &repository.CreateLoopParams{
		RoomId:    params.RoomId,
		UserId:    params.UserId,
		Name:      name,
		AudioData: params.AudioData,
		Duration:  params.Duration,
	})
	if err != nil {
		return domain.Loop{}, err
	}

	s.logger.InfoContext(ctx, "loop created", "loop_id", loop.Id, "room_id", params.RoomId, "duration", params.Duration)
	return loop, nil
}

func (s service) ListLoops(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error) {
	return s.store.ListLoopsForRoom(ctx, roomId)
}

type UpdateLoopParams struct {
	LoopId   int64
	Volume   *float64
	IsActive *bool
}

// UpdateLoop deliberately skips any ownership check: any room member may
// adjust or mute any loop.
func (s service) UpdateLoop(ctx context.Context, params *UpdateLoopParams) (domain.Loop, error) {
	if params.Volume != nil && (*params.Volume < 0 || *params.Volume > 1) {
		return domain.Loop{}, domain.NewValidationError("volume must be between 0 and 1")
	}

	return s.store.UpdateLoop(ctx, &repository.UpdateLoopParams{
		LoopId:   params.LoopId,
		Volume:   params.Volume,
		IsActive: params.IsActive,
	})
}

func (s service) DeleteLoop(ctx context.Context, loopId int64) error {
	found, err := s.store.DeleteLoop(ctx, loopId)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrLoopNotFound
	}

	return nil
}

type DeleteAllLoopsResponse struct {
	Deleted int
	Failed  int
}

// DeleteAllLoops removes every loop in the room as an unordered batch of
// independent deletions. No transaction wraps the batch: deletions that
// succeed stay deleted even when others fail, and the caller sees only the
// aggregate counts.
func (s service) DeleteAllLoops(ctx context.Context, roomId int64) (DeleteAllLoopsResponse, error) {
	loops, err := s.store.ListLoopsForRoom(ctx, roomId)
	if err != nil {
		return DeleteAllLoopsResponse{}, err
	}

	var deleted, failed atomic.Int64
	var g errgroup.Group
	for _, loop := range loops {
		loopId := loop.Id
		g.Go(func() error {
			if _, err := s.store.DeleteLoop(ctx, loopId); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "failed to delete loop", "loop_id", loopId, "error", err)
				return nil
			}
			deleted.Add(1)
			return nil
		})
	}
	g.Wait()

	resp := DeleteAllLoopsResponse{
		Deleted: int(deleted.Load()),
		Failed:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "batch loop delete finished", "room_id", roomId, "deleted", resp.Deleted, "failed", resp.Failed)
	return resp, nil
}
