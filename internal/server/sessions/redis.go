package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis with a native TTL, so expiry needs
// no sweeper. Destroy relies on DEL being a no-op for missing keys.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisSession struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (s *RedisStore) Create(ctx context.Context, userID int64, ttl time.Duration) (*models.Session, error) {
	sess, err := newSession(userID, ttl)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(redisSession{
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *RedisStore) Resolve(ctx context.Context, id string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		// Corrupt blob: drop it rather than keep failing on every request.
		_ = s.client.Del(ctx, redisKeyPrefix+id).Err()
		return nil, common.ErrorNotFound
	}

	sess := &models.Session{
		ID:        id,
		UserID:    rs.UserID,
		CreatedAt: rs.CreatedAt,
		ExpiresAt: rs.ExpiresAt,
	}
	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, redisKeyPrefix+id).Err()
		return nil, common.ErrorSessionExpired
	}

	return sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
