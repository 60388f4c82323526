package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
)

// only the holder may delete the key
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

var _ domain.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "booking_lock").Logger(),
	}
}

// Acquire takes the key with SET NX PX. When Redis cannot be reached the
// booking proceeds under the database transaction only.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("redis unavailable, booking without distributed lock")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrLockBusy
	}

	return func() {
		// the request context may already be canceled
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.log.Warn().Err(err).Str("key", key).Msg("failed to release booking lock")
		}
	}, nil
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}
