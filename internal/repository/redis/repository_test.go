package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc)
}

func createTestUser(t *testing.T, r *repo, username string) domain.User {
	t.Helper()
	user, err := r.CreateUser(context.Background(), &repository.CreateUserParams{
		Username: username,
		Password: "hashed-secret",
	})
	require.NoError(t, err)

	return user
}

func createTestRoom(t *testing.T, r *repo, creatorId int64) domain.Room {
	t.Helper()
	room, _, err := r.CreateRoomWithCreator(context.Background(), &repository.CreateRoomParams{
		Name:         "Jam",
		Bpm:          140,
		KeySignature: "A Minor",
		IsPublic:     true,
		CreatorId:    creatorId,
	})
	require.NoError(t, err)

	return room
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	assert.NotZero(t, user.Id)

	_, err := r.CreateUser(ctx, &repository.CreateUserParams{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	found, err := r.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.Id, found.Id)
	assert.Equal(t, "hashed-secret", found.Password)
}

func TestCreateRoomWithCreator(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, user.Id)

	assert.NotZero(t, room.Id)
	assert.Equal(t, 140, room.Bpm)
	assert.Equal(t, "A Minor", room.KeySignature)
	assert.True(t, room.IsPublic)

	// the creator is a participant from the first read onwards
	participants, err := r.ListParticipants(ctx, room.Id)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, user.Id, participants[0].UserId)
	assert.Equal(t, "alice", participants[0].User.Username)

	rooms, err := r.ListPublicRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.Id, rooms[0].Id)

	created, err := r.ListRoomsByCreator(ctx, user.Id)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestUpsertParticipantIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	creator := createTestUser(t, r, "alice")
	joiner := createTestUser(t, r, "bob")
	room := createTestRoom(t, r, creator.Id)

	first, err := r.UpsertParticipant(ctx, room.Id, joiner.Id)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := r.UpsertParticipant(ctx, room.Id, joiner.Id)
		require.NoError(t, err)
		assert.Equal(t, first.Id, again.Id, "re-join must not create a new row")
		assert.Equal(t, first.JoinedAt, again.JoinedAt)
		assert.False(t, again.LastActiveAt.Before(first.LastActiveAt))
	}

	participants, err := r.ListParticipants(ctx, room.Id)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestRemoveParticipant(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	creator := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, creator.Id)

	removed, err := r.RemoveParticipant(ctx, room.Id, creator.Id)
	require.NoError(t, err)
	assert.True(t, removed)

	// removing again is not an error, just a false
	removed, err = r.RemoveParticipant(ctx, room.Id, creator.Id)
	require.NoError(t, err)
	assert.False(t, removed)

	participants, err := r.ListParticipants(ctx, room.Id)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestTouchParticipant(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	creator := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, creator.Id)

	require.NoError(t, r.TouchParticipant(ctx, room.Id, creator.Id))

	// unknown pair is a silent no-op
	require.NoError(t, r.TouchParticipant(ctx, room.Id, 999))
}

func TestLoopRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, user.Id)

	audio := "UklGRiQAAABXQVZFZm10IBAAAAABAAEA"
	loop, err := r.CreateLoop(ctx, &repository.CreateLoopParams{
		RoomId:    room.Id,
		UserId:    user.Id,
		Name:      "Riff",
		AudioData: audio,
		Duration:  12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, loop.Volume)
	assert.True(t, loop.IsActive)

	loops, err := r.ListLoopsForRoom(ctx, room.Id)
	require.NoError(t, err)
	require.Len(t, loops, 1)
	assert.Equal(t, 12.5, loops[0].Duration)
	assert.Equal(t, audio, loops[0].AudioData, "payload must survive byte-for-byte")
	assert.Equal(t, "alice", loops[0].User.Username)
}

func TestUpdateLoopLastWriteWins(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, user.Id)
	loop, err := r.CreateLoop(ctx, &repository.CreateLoopParams{
		RoomId: room.Id, UserId: user.Id, Name: "Riff", AudioData: "abc", Duration: 4,
	})
	require.NoError(t, err)

	low, high := 0.2, 0.8
	_, err = r.UpdateLoop(ctx, &repository.UpdateLoopParams{LoopId: loop.Id, Volume: &low})
	require.NoError(t, err)
	updated, err := r.UpdateLoop(ctx, &repository.UpdateLoopParams{LoopId: loop.Id, Volume: &high})
	require.NoError(t, err)

	// exactly one of the two writes persists, decided by store order
	assert.Contains(t, []float64{low, high}, updated.Volume)
	assert.Equal(t, high, updated.Volume)

	inactive := false
	updated, err = r.UpdateLoop(ctx, &repository.UpdateLoopParams{LoopId: loop.Id, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, high, updated.Volume, "partial update must not reset other fields")

	_, err = r.UpdateLoop(ctx, &repository.UpdateLoopParams{LoopId: 999, Volume: &low})
	assert.ErrorIs(t, err, domain.ErrLoopNotFound)
}

func TestDeleteLoop(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, user.Id)
	loop, err := r.CreateLoop(ctx, &repository.CreateLoopParams{
		RoomId: room.Id, UserId: user.Id, Name: "Riff", AudioData: "abc", Duration: 4,
	})
	require.NoError(t, err)

	found, err := r.DeleteLoop(ctx, loop.Id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = r.DeleteLoop(ctx, loop.Id)
	require.NoError(t, err)
	assert.False(t, found)

	loops, err := r.ListLoopsForRoom(ctx, room.Id)
	require.NoError(t, err)
	assert.Empty(t, loops)
}

func TestGetRoomNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetRoom(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestParticipantTimestampsAreUTCInstants(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	user := createTestUser(t, r, "alice")
	room := createTestRoom(t, r, user.Id)

	participants, err := r.ListParticipants(ctx, room.Id)
	require.NoError(t, err)
	require.Len(t, participants, 1)

	p := participants[0]
	assert.WithinDuration(t, time.Now().UTC(), p.LastActiveAt, 5*time.Second)
	assert.Equal(t, time.UTC, p.JoinedAt.Location())
}
