package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// storedAtSuffix marks the companion key holding a payload's last-write time.
const storedAtSuffix = ":cached_at"

// RedisStore persists cache entries in Redis so they survive process
// restarts. Each logical key maps to two Redis keys: the payload itself and
// its last-write timestamp. Entries carry no server-side expiry.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Errorf("Redis connection failed for %s: %v", addr, err)
		return nil, err
	}

	logrus.Infof("Redis connected at %s", addr)
	return rdb, nil
}

// Get returns the payload and last-write time for key. Unreadable or
// partially written entries are reported as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.Debugf("cache read failed for %s: %v", key, err)
		}
		return nil, time.Time{}, false
	}

	raw, err := s.rdb.Get(ctx, key+storedAtSuffix).Result()
	if err != nil {
		return nil, time.Time{}, false
	}
	storedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logrus.Debugf("cache timestamp corrupt for %s: %v", key, err)
		return nil, time.Time{}, false
	}

	return payload, storedAt, true
}

// Put overwrites the payload and last-write time for key.
func (s *RedisStore) Put(ctx context.Context, key string, payload []byte, storedAt time.Time) error {
	if err := s.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, key+storedAtSuffix, storedAt.Format(time.RFC3339Nano), 0).Err()
}
