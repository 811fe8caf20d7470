package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
	redisrepo "github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository/redis"
)

type testEnv struct {
	service *service
	store   iFullStore
	user    domain.User
}

type iFullStore interface {
	iStore
	CreateUser(ctx context.Context, params *repository.CreateUserParams) (domain.User, error)
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	s := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	store := redisrepo.NewRepo(rc)
	user, err := store.CreateUser(context.Background(), &repository.CreateUserParams{
		Username: "alice",
		Password: "hashed",
	})
	require.NoError(t, err)

	return testEnv{
		service: NewService(store, slog.Default()),
		store:   store,
		user:    user,
	}
}

func createJamRoom(t *testing.T, env testEnv) domain.Room {
	t.Helper()
	resp, err := env.service.CreateRoom(context.Background(), &CreateRoomParams{
		Name:         "Jam",
		Bpm:          140,
		KeySignature: "A Minor",
		IsPublic:     true,
		CreatorId:    env.user.Id,
	})
	require.NoError(t, err)

	return resp.Room
}

func TestCreateRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.CreateRoom(ctx, &CreateRoomParams{
		Name:         "  Jam  ",
		Bpm:          140,
		KeySignature: "A Minor",
		IsPublic:     true,
		CreatorId:    env.user.Id,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.Room.Id)
	assert.Equal(t, "Jam", resp.Room.Name, "name must be trimmed")
	assert.Equal(t, 140, resp.Room.Bpm)
	assert.Equal(t, "A Minor", resp.Room.KeySignature)
	assert.Equal(t, env.user.Id, resp.Creator.UserId)

	snapshot, err := env.service.GetRoomSnapshot(ctx, resp.Room.Id)
	require.NoError(t, err)
	require.Len(t, snapshot.Participants, 1, "creator joins atomically with creation")
	assert.Equal(t, "alice", snapshot.Participants[0].User.Username)
	assert.Equal(t, domain.PresenceRecording, snapshot.Participants[0].Presence.Bucket)
}

func TestCreateRoomValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params CreateRoomParams
	}{
		{"empty name", CreateRoomParams{Name: "   ", Bpm: 120, KeySignature: "C Major", CreatorId: env.user.Id}},
		{"bpm too low", CreateRoomParams{Name: "Jam", Bpm: 59, KeySignature: "C Major", CreatorId: env.user.Id}},
		{"bpm too high", CreateRoomParams{Name: "Jam", Bpm: 201, KeySignature: "C Major", CreatorId: env.user.Id}},
		{"bad key", CreateRoomParams{Name: "Jam", Bpm: 120, KeySignature: "H Major", CreatorId: env.user.Id}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.CreateRoom(ctx, &tt.params)
			var ve *domain.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	bob, err := env.store.CreateUser(ctx, &repository.CreateUserParams{Username: "bob", Password: "hashed"})
	require.NoError(t, err)

	var first domain.RoomParticipant
	for i := 0; i < 5; i++ {
		p, err := env.service.JoinRoom(ctx, room.Id, bob.Id)
		require.NoError(t, err)
		if i == 0 {
			first = p
		}
		assert.Equal(t, first.Id, p.Id)
	}

	snapshot, err := env.service.GetRoomSnapshot(ctx, room.Id)
	require.NoError(t, err)
	assert.Len(t, snapshot.Participants, 2)
}

func TestJoinUnknownRoom(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.JoinRoom(context.Background(), 999, env.user.Id)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestLeaveRoomIdempotentSafe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	removed, err := env.service.LeaveRoom(ctx, room.Id, env.user.Id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.service.LeaveRoom(ctx, room.Id, env.user.Id)
	require.NoError(t, err)
	assert.False(t, removed, "leaving as a non-member is success=false, not an error")
}

func TestHeartbeatIsLenient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	require.NoError(t, env.service.Heartbeat(ctx, room.Id, env.user.Id))
	require.NoError(t, env.service.Heartbeat(ctx, room.Id, 12345), "unknown participant must not error")
}

func TestCreateLoopValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	_, err := env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: room.Id, UserId: env.user.Id, Name: " ", AudioData: "abc", Duration: 4})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: room.Id, UserId: env.user.Id, Name: "Riff", AudioData: "abc", Duration: 0})
	assert.ErrorAs(t, err, &ve)

	_, err = env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: 999, UserId: env.user.Id, Name: "Riff", AudioData: "abc", Duration: 4})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestLoopRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	audio := "T3BhcXVlQXVkaW9QYXlsb2Fk"
	created, err := env.service.CreateLoop(ctx, &CreateLoopParams{
		RoomId:    room.Id,
		UserId:    env.user.Id,
		Name:      "Riff",
		AudioData: audio,
		Duration:  12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, created.Volume)
	assert.True(t, created.IsActive)

	loops, err := env.service.ListLoops(ctx, room.Id)
	require.NoError(t, err)
	require.Len(t, loops, 1)
	assert.Equal(t, 12.5, loops[0].Duration)
	assert.Equal(t, audio, loops[0].AudioData)
}

func TestUpdateLoopVolumeBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	loop, err := env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: room.Id, UserId: env.user.Id, Name: "Riff", AudioData: "abc", Duration: 4})
	require.NoError(t, err)

	tooLoud := 1.5
	_, err = env.service.UpdateLoop(ctx, &UpdateLoopParams{LoopId: loop.Id, Volume: &tooLoud})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	half := 0.5
	updated, err := env.service.UpdateLoop(ctx, &UpdateLoopParams{LoopId: loop.Id, Volume: &half})
	require.NoError(t, err)
	assert.Equal(t, 0.5, updated.Volume)

	_, err = env.service.UpdateLoop(ctx, &UpdateLoopParams{LoopId: 999, Volume: &half})
	assert.ErrorIs(t, err, domain.ErrLoopNotFound)
}

func TestDeleteLoopNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.DeleteLoop(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrLoopNotFound)
}

func TestExportMixdownCountsActiveLoopsOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := createJamRoom(t, env)

	active, err := env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: room.Id, UserId: env.user.Id, Name: "Keep", AudioData: "a", Duration: 8.25})
	require.NoError(t, err)

	muted, err := env.service.CreateLoop(ctx, &CreateLoopParams{RoomId: room.Id, UserId: env.user.Id, Name: "Muted", AudioData: "b", Duration: 30})
	require.NoError(t, err)
	inactive := false
	_, err = env.service.UpdateLoop(ctx, &UpdateLoopParams{LoopId: muted.Id, IsActive: &inactive})
	require.NoError(t, err)

	resp, err := env.service.ExportMixdown(ctx, room.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.LoopsCount)
	assert.Equal(t, active.Duration, resp.TotalDuration)
	assert.NotEmpty(t, resp.ExportId)
	assert.Contains(t, resp.DownloadUrl, resp.ExportId)
}

func TestExportMixdownEmptyRoom(t *testing.T) {
	env := newTestEnv(t)
	room := createJamRoom(t, env)

	resp, err := env.service.ExportMixdown(context.Background(), room.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.LoopsCount)
	assert.Equal(t, 0.0, resp.TotalDuration)
}

// flakyStore fails deletion of one specific loop to exercise the batch
// partial-failure policy.
type flakyStore struct {
	iStore
	mu         sync.Mutex
	failLoopId int64
	deleted    map[int64]bool
	loops      []domain.LoopWithUser
}

func (f *flakyStore) ListLoopsForRoom(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	remaining := []domain.LoopWithUser{}
	for _, l := range f.loops {
		if !f.deleted[l.Id] {
			remaining = append(remaining, l)
		}
	}
	return remaining, nil
}

func (f *flakyStore) DeleteLoop(ctx context.Context, id int64) (bool, error) {
	if id == f.failLoopId {
		return false, errors.New("store failure")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted[id] = true
	return true, nil
}

func TestDeleteAllLoopsPartialFailure(t *testing.T) {
	store := &flakyStore{
		failLoopId: 2,
		deleted:    map[int64]bool{},
		loops: []domain.LoopWithUser{
			{Loop: domain.Loop{Id: 1, RoomId: 1}},
			{Loop: domain.Loop{Id: 2, RoomId: 1}},
			{Loop: domain.Loop{Id: 3, RoomId: 1}},
		},
	}
	svc := NewService(store, slog.Default())
	ctx := context.Background()

	resp, err := svc.DeleteAllLoops(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Deleted)
	assert.Equal(t, 1, resp.Failed)

	// the two successful deletions stay deleted despite the aggregate failure
	remaining, err := svc.ListLoops(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].Id)
}

func TestDeleteAllLoopsEmptyRoom(t *testing.T) {
	env := newTestEnv(t)
	room := createJamRoom(t, env)

	resp, err := env.service.DeleteAllLoops(context.Background(), room.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Deleted)
	assert.Equal(t, 0, resp.Failed)
}
