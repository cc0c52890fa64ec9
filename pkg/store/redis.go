package store

import (
	"context"
	"errors"
	"time"

	"github.com/raywall/user-file-service/pkg/user"
	"github.com/redis/go-redis/v9"
)

// RedisAPI é o subconjunto de comandos usados pelo store; *redis.Client o satisfaz.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore guarda o documento JSON em uma chave string, sem expiração.
type RedisStore struct {
	client RedisAPI
	key    string
}

func NewRedisStore(client RedisAPI, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) source() string {
	return "redis key " + s.key
}

func (s *RedisStore) Load(ctx context.Context) (user.Collection, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return user.Collection{}, nil
	}
	if err != nil {
		return nil, &user.IOError{Op: "read", Source: s.source(), Err: err}
	}
	return decode(data, s.source())
}

func (s *RedisStore) Save(ctx context.Context, c user.Collection) error {
	data, err := encode(c)
	if err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}
	return nil
}
