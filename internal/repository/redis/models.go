package redis

import "github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"

type userRow struct {
	Id       int64  `redis:"id"`
	Username string `redis:"username"`
	Password string `redis:"password"`
}

func (u userRow) toDomain() domain.User {
	return domain.User{
		Id:       u.Id,
		Username: u.Username,
		Password: u.Password,
	}
}

type roomRow struct {
	Id           int64  `redis:"id"`
	Name         string `redis:"name"`
	CreatorId    int64  `redis:"creator_id"`
	Bpm          int    `redis:"bpm"`
	KeySignature string `redis:"key_signature"`
	IsPublic     bool   `redis:"is_public"`
	CreatedAt    int64  `redis:"created_at"`
}

func (r roomRow) toDomain() domain.Room {
	return domain.Room{
		Id:           r.Id,
		Name:         r.Name,
		CreatorId:    r.CreatorId,
		Bpm:          r.Bpm,
		KeySignature: r.KeySignature,
		IsPublic:     r.IsPublic,
		CreatedAt:    fromMillis(r.CreatedAt),
	}
}

type loopRow struct {
	Id        int64   `redis:"id"`
	RoomId    int64   `redis:"room_id"`
	UserId    int64   `redis:"user_id"`
	Name      string  `redis:"name"`
	AudioData string  `redis:"audio_data"`
	Duration  float64 `redis:"duration"`
	Volume    float64 `redis:"volume"`
	IsActive  bool    `redis:"is_active"`
	CreatedAt int64   `redis:"created_at"`
}

func (l loopRow) toDomain() domain.Loop {
	return domain.Loop{
		Id:        l.Id,
		RoomId:    l.RoomId,
		UserId:    l.UserId,
		Name:      l.Name,
		AudioData: l.AudioData,
		Duration:  l.Duration,
		Volume:    l.Volume,
		IsActive:  l.IsActive,
		CreatedAt: fromMillis(l.CreatedAt),
	}
}

type participantRow struct {
	Id           int64 `redis:"id"`
	RoomId       int64 `redis:"room_id"`
	UserId       int64 `redis:"user_id"`
	JoinedAt     int64 `redis:"joined_at"`
	LastActiveAt int64 `redis:"last_active_at"`
}

func (p participantRow) toDomain() domain.RoomParticipant {
	return domain.RoomParticipant{
		Id:           p.Id,
		RoomId:       p.RoomId,
		UserId:       p.UserId,
		JoinedAt:     fromMillis(p.JoinedAt),
		LastActiveAt: fromMillis(p.LastActiveAt),
	}
}
