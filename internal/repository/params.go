package repository

type CreateUserParams struct {
	Username string
	Password string
}

type CreateRoomParams struct {
	Name         string
	Bpm          int
	KeySignature string
	IsPublic     bool
	CreatorId    int64
}

type CreateLoopParams struct {
	RoomId    int64
	UserId    int64
	Name      string
	AudioData string
	Duration  float64
}

// UpdateLoopParams carries a partial update; nil fields are left untouched.
type UpdateLoopParams struct {
	LoopId   int64
	Volume   *float64
	IsActive *bool
}
