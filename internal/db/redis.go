package db

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/rpgcore/internal/model"
)

// RedisAttributeRepository keeps each entity's attributes in one hash,
// keyed by prefix + entity id.
type RedisAttributeRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisAttributeRepository creates a Redis-backed repository.
func NewRedisAttributeRepository(client redis.UniversalClient, prefix string) *RedisAttributeRepository {
	return &RedisAttributeRepository{client: client, prefix: prefix}
}

func (r *RedisAttributeRepository) key(id model.EntityID) string {
	return r.prefix + id.String()
}

func (r *RedisAttributeRepository) Load(ctx context.Context, id model.EntityID) (map[string]float64, error) {
	raw, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("loading attributes of %s: %w", id, err)
	}

	attrs := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("attribute %q of %s: %w", name, id, err)
		}
		attrs[name] = v
	}
	return attrs, nil
}

// Save replaces the hash atomically. Fields are written in name order.
func (r *RedisAttributeRepository) Save(ctx context.Context, id model.EntityID, attrs map[string]float64) error {
	key := r.key(id)
	names := slices.Sorted(maps.Keys(attrs))

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(names) == 0 {
			return nil
		}
		values := make([]any, 0, 2*len(names))
		for _, name := range names {
			values = append(values, name, strconv.FormatFloat(attrs[name], 'g', -1, 64))
		}
		pipe.HSet(ctx, key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving attributes of %s: %w", id, err)
	}
	return nil
}

func (r *RedisAttributeRepository) Delete(ctx context.Context, id model.EntityID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("deleting attributes of %s: %w", id, err)
	}
	return nil
}
