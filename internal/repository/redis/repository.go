package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc *redis.Client
}

func NewRepo(rc *redis.Client) *repo {
	return &repo{rc: rc}
}

// nextId allocates an auto-incrementing id for an entity kind, mirroring the
// serial columns of the relational layout.
func (r repo) nextId(ctx context.Context, kind string) (int64, error) {
	return r.rc.Incr(ctx, kind+":next-id").Result()
}

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseId(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}
