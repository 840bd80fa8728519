package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

// KV is the slice of the redis client the cart store persists through.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}

// Store persists one serialized cart blob per cart token. Every mutation is
// followed by a save, and every load refreshes the TTL, so an open cart
// round-trips reloads and new tabs without server-side sessions.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore builds a cart store over the provided key-value client.
func NewStore(kv KV, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Load returns the cart stored under token, or an empty cart when none exists.
func (s *Store) Load(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupt blob is unrecoverable; start the shopper over rather
		// than failing every cart call.
		return New(), nil
	}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	return &cart, nil
}

// Save serializes the cart under token and refreshes its TTL.
func (s *Store) Save(ctx context.Context, token string, cart *Cart) error {
	if cart == nil {
		return fmt.Errorf("cart required")
	}
	blob, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("serializing cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(token), string(blob), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// Delete removes the stored cart blob for token.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(token)); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}
