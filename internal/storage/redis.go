package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"souqeats/internal/domain"
	"souqeats/internal/service"
)

// RedisCartStore keeps session carts as JSON blobs with a sliding TTL.
type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ service.CartStore = (*RedisCartStore)(nil)

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// GetCart returns the stored cart, or an empty cart when the session has
// none yet.
func (s *RedisCartStore) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	payload, err := s.Client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *RedisCartStore) SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, cartKey(sessionID), payload, s.TTL).Err()
}

func (s *RedisCartStore) ClearCart(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, cartKey(sessionID)).Err()
}
