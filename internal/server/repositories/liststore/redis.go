package liststore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisStore maps the contract one-to-one onto Redis list commands
// (LPUSH, LRANGE, LTRIM, DEL). Swap uses WATCH + MULTI/EXEC.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedis connects using a redis:// or rediss:// URL and checks the
// connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStore(client), nil
}

func (s *RedisStore) PushFront(ctx context.Context, key string, item string) error {
	if err := s.client.LPush(ctx, key, item).Err(); err != nil {
		return storeErr("lpush", key, err)
	}
	return nil
}

func (s *RedisStore) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	items, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, storeErr("lrange", key, err)
	}
	return items, nil
}

func (s *RedisStore) Trim(ctx context.Context, key string, start, stop int64) error {
	if err := s.client.LTrim(ctx, key, start, stop).Err(); err != nil {
		return storeErr("ltrim", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return storeErr("del", key, err)
	}
	return nil
}

func (s *RedisStore) Swap(ctx context.Context, key string, expected, items []string) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		if !slices.Equal(current, expected) {
			return common.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(items) > 0 {
				values := make([]any, len(items))
				for i, item := range items {
					values[i] = item
				}
				pipe.RPush(ctx, key, values...)
			}
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return common.ErrVersionConflict
	default:
		return storeErr("swap", key, err)
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeErr("ping", "", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
