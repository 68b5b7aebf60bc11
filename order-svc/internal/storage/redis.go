package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"harveys-cafe/order-svc/internal/cart"

	"github.com/redis/go-redis/v9"
)

const (
	CartTTL        = 7 * 24 * time.Hour
	ResetMarkerKey = "inventory:last_reset"
)

type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) CartKey(cartID string) string {
	return "cart:" + cartID
}

// Load returns an empty cart when none is stored.
func (s *RedisCartStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	raw, err := s.Client.Get(ctx, s.CartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}

	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return c, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.CartKey(cartID), payload, s.TTL).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, cartID string) error {
	return s.Client.Del(ctx, s.CartKey(cartID)).Err()
}

// RedisResetMarker keeps the day of the last inventory reset.
type RedisResetMarker struct {
	Client *redis.Client
	Key    string
}

func NewRedisResetMarker(client *redis.Client) *RedisResetMarker {
	return &RedisResetMarker{Client: client, Key: ResetMarkerKey}
}

func (m *RedisResetMarker) LastReset(ctx context.Context) (string, error) {
	day, err := m.Client.Get(ctx, m.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return day, err
}

func (m *RedisResetMarker) MarkReset(ctx context.Context, day string) error {
	return m.Client.Set(ctx, m.Key, day, 0).Err()
}
