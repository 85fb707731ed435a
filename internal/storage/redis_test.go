package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"souqeats/internal/domain"
)

func setupCartStore(t *testing.T) *RedisCartStore {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCartStore(client, time.Hour)
}

func TestRedisCartStore_RoundTrip(t *testing.T) {
	store := setupCartStore(t)
	ctx := context.Background()

	cart := domain.Cart{}
	cart.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	cart.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})

	assert.NoError(t, store.SaveCart(ctx, "sess-1", cart))

	loaded, err := store.GetCart(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, loaded.Count())
	assert.Equal(t, 9000, loaded.Total())
}

func TestRedisCartStore_MissingSessionIsEmptyCart(t *testing.T) {
	store := setupCartStore(t)

	cart, err := store.GetCart(context.Background(), "never-seen")
	assert.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestRedisCartStore_ClearCart(t *testing.T) {
	store := setupCartStore(t)
	ctx := context.Background()

	cart := domain.Cart{}
	cart.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	assert.NoError(t, store.SaveCart(ctx, "sess-1", cart))

	assert.NoError(t, store.ClearCart(ctx, "sess-1"))

	loaded, err := store.GetCart(ctx, "sess-1")
	assert.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestRedisCartStore_SessionsAreIsolated(t *testing.T) {
	store := setupCartStore(t)
	ctx := context.Background()

	first := domain.Cart{}
	first.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	assert.NoError(t, store.SaveCart(ctx, "sess-1", first))

	second, err := store.GetCart(ctx, "sess-2")
	assert.NoError(t, err)
	assert.True(t, second.Empty())
}
