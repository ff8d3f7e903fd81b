package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	checkpointKeyFmt = "notify:last_checked:%d"
	tokenKeyFmt      = "booking:request_token:%s"

	// tokenTTL bounds how long a batch request token blocks replays.
	tokenTTL = 24 * time.Hour
)

// CheckpointStore keeps per-provider poll checkpoints in redis so they
// survive process restarts.
type CheckpointStore struct {
	rdb *redis.Client
}

func NewCheckpointStore(rdb *redis.Client) *CheckpointStore {
	return &CheckpointStore{rdb: rdb}
}

func (s *CheckpointStore) LastChecked(
	ctx context.Context,
	providerID uint,
) (time.Time, bool, error) {

	val, err := s.rdb.Get(ctx, fmt.Sprintf(checkpointKeyFmt, providerID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, err
	}

	return t, true, nil
}

func (s *CheckpointStore) SetLastChecked(
	ctx context.Context,
	providerID uint,
	t time.Time,
) error {
	return s.rdb.Set(
		ctx,
		fmt.Sprintf(checkpointKeyFmt, providerID),
		t.Format(time.RFC3339Nano),
		0,
	).Err()
}

// TokenStore reserves batch request tokens with SETNX so a retried booking
// call cannot commit twice.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) Reserve(ctx context.Context, token string) (bool, error) {
	return s.rdb.SetNX(ctx, fmt.Sprintf(tokenKeyFmt, token), 1, tokenTTL).Result()
}

// Release frees a reserved token whose batch did not commit.
func (s *TokenStore) Release(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(tokenKeyFmt, token)).Err()
}
