package domain

import "time"

type User struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type Room struct {
	Id           int64     `json:"id"`
	Name         string    `json:"name"`
	CreatorId    int64     `json:"creatorId"`
	Bpm          int       `json:"bpm"`
	KeySignature string    `json:"keySignature"`
	IsPublic     bool      `json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AudioData is base64-encoded opaque bytes, stored and returned verbatim.
type Loop struct {
	Id        int64     `json:"id"`
	RoomId    int64     `json:"roomId"`
	UserId    int64     `json:"userId"`
	Name      string    `json:"name"`
	AudioData string    `json:"audioData"`
	Duration  float64   `json:"duration"`
	Volume    float64   `json:"volume"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomParticipant is the membership+presence record for one (room, user) pair.
// At most one row exists per pair; re-joining refreshes LastActiveAt.
type RoomParticipant struct {
	Id           int64     `json:"id"`
	RoomId       int64     `json:"roomId"`
	UserId       int64     `json:"userId"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

type ParticipantWithUser struct {
	RoomParticipant
	User     User     `json:"user"`
	Presence Presence `json:"presence"`
}

type LoopWithUser struct {
	Loop
	User User `json:"user"`
}

// RoomSnapshot is the composed read of a room and its participants. Loops are
// fetched by a separate call, so a snapshot and a loop list taken together may
// skew: a loop can reference a user who left between the two reads.
type RoomSnapshot struct {
	Room
	Participants []ParticipantWithUser `json:"participants"`
}
