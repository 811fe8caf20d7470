package jamclient

import (
	"context"
	"sync"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
)

const (
	// DefaultPollInterval is the ambient sync cadence: the room snapshot and
	// loop list are refetched this often regardless of local activity.
	DefaultPollInterval = 5 * time.Second
	// DefaultHeartbeatInterval is deliberately coarser than the data poll;
	// presence decay does not need data-sync resolution.
	DefaultHeartbeatInterval = 30 * time.Second
)

type SessionConfig struct {
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	// OnUpdate is called with the freshly fetched state after every refresh,
	// ambient or mutation-triggered.
	OnUpdate func(domain.RoomSnapshot, []domain.LoopWithUser)
	// OnError is called for failed refreshes. Heartbeat failures never reach
	// it; they are logged and retried on the next tick.
	OnError func(error)
}

// RoomSession runs the client side of room synchronization for one
// participant. All mutations go through it so the local cache is invalidated
// and refetched immediately instead of waiting for the next ambient tick.
type RoomSession struct {
	client *Client
	roomId int64
	userId int64
	cfg    SessionConfig

	mu       sync.RWMutex
	snapshot domain.RoomSnapshot
	loops    []domain.LoopWithUser
}

// OpenRoomSession joins the room and primes the local cache. Run must be
// called to start the ambient poll and heartbeat loops.
func (c *Client) OpenRoomSession(ctx context.Context, roomId, userId int64, cfg SessionConfig) (*RoomSession, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}

	if _, err := c.JoinRoom(ctx, roomId, userId); err != nil {
		return nil, err
	}

	s := &RoomSession{
		client: c,
		roomId: roomId,
		userId: userId,
		cfg:    cfg,
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Run blocks, driving the ambient poll and the heartbeat until ctx is done.
func (s *RoomSession) Run(ctx context.Context) {
	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()
	heartbeat := time.NewTicker(s.cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.reportError(err)
			}
		case <-heartbeat.C:
			// best-effort: a failed heartbeat is retried on the next tick
			if err := s.client.Heartbeat(ctx, s.roomId, s.userId); err != nil && ctx.Err() == nil {
				s.client.logger.Debug("heartbeat failed", "room_id", s.roomId, "error", err)
			}
		}
	}
}

// Refresh refetches the snapshot and loop list. The two reads are not one
// transaction server-side, so a loop may reference a user who just left the
// participant list; callers must tolerate that skew.
func (s *RoomSession) Refresh(ctx context.Context) error {
	snapshot, err := s.client.GetRoomSnapshot(ctx, s.roomId)
	if err != nil {
		return err
	}

	loops, err := s.client.ListLoops(ctx, s.roomId)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.loops = loops
	s.mu.Unlock()

	if s.cfg.OnUpdate != nil {
		s.cfg.OnUpdate(snapshot, loops)
	}

	return nil
}

func (s *RoomSession) reportError(err error) {
	if s.cfg.OnError != nil {
		s.cfg.OnError(err)
	} else {
		s.client.logger.Warn("room sync failed", "room_id", s.roomId, "error", err)
	}
}

func (s *RoomSession) Snapshot() domain.RoomSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

func (s *RoomSession) Loops() []domain.LoopWithUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loops := make([]domain.LoopWithUser, len(s.loops))
	copy(loops, s.loops)

	return loops
}

// setLocalLoop applies an optimistic local echo and returns the
// last-known-good loop state for a possible revert.
func (s *RoomSession) setLocalLoop(loopId int64, apply func(*domain.Loop)) (domain.Loop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.loops {
		if s.loops[i].Id == loopId {
			previous := s.loops[i].Loop
			apply(&s.loops[i].Loop)
			return previous, true
		}
	}

	return domain.Loop{}, false
}

func (s *RoomSession) restoreLocalLoop(loopId int64, previous domain.Loop) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.loops {
		if s.loops[i].Id == loopId {
			s.loops[i].Loop = previous
			return
		}
	}
}

// SetLoopVolume echoes the new volume locally right away; the authoritative
// value arrives with the post-mutation refetch. On rejection the local state
// reverts to last-known-good.
func (s *RoomSession) SetLoopVolume(ctx context.Context, loopId int64, volume float64) error {
	previous, found := s.setLocalLoop(loopId, func(l *domain.Loop) { l.Volume = volume })

	if _, err := s.client.UpdateLoop(ctx, loopId, &UpdateLoopParams{Volume: &volume}); err != nil {
		if found {
			s.restoreLocalLoop(loopId, previous)
		}
		return err
	}

	return s.Refresh(ctx)
}

// SetLoopActive toggles a loop in or out of the mix, with the same
// optimistic-echo contract as SetLoopVolume.
func (s *RoomSession) SetLoopActive(ctx context.Context, loopId int64, active bool) error {
	previous, found := s.setLocalLoop(loopId, func(l *domain.Loop) { l.IsActive = active })

	if _, err := s.client.UpdateLoop(ctx, loopId, &UpdateLoopParams{IsActive: &active}); err != nil {
		if found {
			s.restoreLocalLoop(loopId, previous)
		}
		return err
	}

	return s.Refresh(ctx)
}

func (s *RoomSession) RecordLoop(ctx context.Context, name, audioData string, duration float64) (domain.Loop, error) {
	loop, err := s.client.CreateLoop(ctx, s.roomId, &CreateLoopParams{
		Name:      name,
		AudioData: audioData,
		Duration:  duration,
		UserId:    s.userId,
	})
	if err != nil {
		return domain.Loop{}, err
	}

	return loop, s.Refresh(ctx)
}

func (s *RoomSession) DeleteLoop(ctx context.Context, loopId int64) error {
	if err := s.client.DeleteLoop(ctx, loopId); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

func (s *RoomSession) Leave(ctx context.Context) (bool, error) {
	return s.client.LeaveRoom(ctx, s.roomId, s.userId)
}
