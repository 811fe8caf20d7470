package redis

import (
	"context"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

func (r repo) getUserKey(userId int64) string {
	return "user:" + formatId(userId)
}

func (r repo) getUsernameKey(username string) string {
	return "username:" + username
}

// CreateUser claims the username key with SETNX before writing the user hash,
// so concurrent registrations of the same name cannot both succeed.
func (r repo) CreateUser(ctx context.Context, params *repository.CreateUserParams) (domain.User, error) {
	userId, err := r.nextId(ctx, "user")
	if err != nil {
		return domain.User{}, err
	}

	claimed, err := r.rc.SetNX(ctx, r.getUsernameKey(params.Username), userId, 0).Result()
	if err != nil {
		return domain.User{}, err
	}
	if !claimed {
		return domain.User{}, domain.ErrUsernameTaken
	}

	row := userRow{
		Id:       userId,
		Username: params.Username,
		Password: params.Password,
	}
	if err := r.rc.HSet(ctx, r.getUserKey(userId), row).Err(); err != nil {
		return domain.User{}, err
	}

	return row.toDomain(), nil
}

func (r repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var row userRow
	if err := r.rc.HGetAll(ctx, r.getUserKey(id)).Scan(&row); err != nil {
		return domain.User{}, err
	}

	if row.Id == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return row.toDomain(), nil
}

func (r repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	idField, err := r.rc.Get(ctx, r.getUsernameKey(username)).Result()
	if err != nil {
		if isNil(err) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return r.GetUser(ctx, parseId(idField))
}
