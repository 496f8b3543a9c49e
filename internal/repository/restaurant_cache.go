package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// ErrCacheMiss is returned when the entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// RestaurantCache is a read-through cache for single restaurants.
type RestaurantCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	Set(ctx context.Context, r *domain.Restaurant) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type redisRestaurantCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRestaurantCache stores restaurants as JSON under restaurant:<id>.
func NewRedisRestaurantCache(client *redis.Client, ttl time.Duration) RestaurantCache {
	return &redisRestaurantCache{client: client, ttl: ttl}
}

func restaurantKey(id uuid.UUID) string {
	return "restaurant:" + id.String()
}

func (c *redisRestaurantCache) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	raw, err := c.client.Get(ctx, restaurantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var rest domain.Restaurant
	if err := json.Unmarshal(raw, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (c *redisRestaurantCache) Set(ctx context.Context, rest *domain.Restaurant) error {
	raw, err := json.Marshal(rest)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, restaurantKey(rest.ID), raw, c.ttl).Err()
}

func (c *redisRestaurantCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, restaurantKey(id)).Err()
}
