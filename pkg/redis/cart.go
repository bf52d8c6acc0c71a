package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session carts and the pending-order hint live in Redis under the
// session id. Each cart is one JSON snapshot under a fixed key,
// rewritten whole on every mutation.

const (
	cartTTL         = 7 * 24 * time.Hour
	pendingOrderTTL = 2 * time.Hour
)

// CartStorage persists cart snapshots. It satisfies cart.Storage.
type CartStorage struct{}

func NewCartStorage() *CartStorage {
	return &CartStorage{}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load returns the stored snapshot, or (nil, nil) when no cart exists.
func (s *CartStorage) Load(ctx context.Context, sessionID string) ([]byte, error) {
	client := RedisClient()
	defer client.Close()

	data, err := client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *CartStorage) Save(ctx context.Context, sessionID string, snapshot []byte) error {
	client := RedisClient()
	defer client.Close()

	return client.Set(ctx, cartKey(sessionID), snapshot, cartTTL).Err()
}

func (s *CartStorage) Delete(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	return client.Del(ctx, cartKey(sessionID)).Err()
}

// StashPendingOrder records the order number about to be paid, written
// just before redirecting to the gateway and read back by the payment
// return resolver as a fallback.
func StashPendingOrder(ctx context.Context, sessionID string, orderNumber int64) error {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("checkout:pending:%s", sessionID)
	return client.Set(ctx, key, orderNumber, pendingOrderTTL).Err()
}

// PendingOrder returns the stashed order number for the session, or false
// when none is stashed.
func PendingOrder(ctx context.Context, sessionID string) (int64, bool) {
	client := RedisClient()
	defer client.Close()

	value, err := client.Get(ctx, fmt.Sprintf("checkout:pending:%s", sessionID)).Result()
	if err != nil {
		return 0, false
	}
	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

func ClearPendingOrder(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	return client.Del(ctx, fmt.Sprintf("checkout:pending:%s", sessionID)).Err()
}
