package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

const cartTTL = 7 * 24 * time.Hour

// CartItem is one line in a shopping cart, keyed by product ID.
type CartItem struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type Cart map[uint]CartItem

// CartStore keeps session carts in the cache, keyed by an opaque cart token.
type CartStore struct {
	store Store
}

func NewCartStore(store Store) *CartStore {
	return &CartStore{store: store}
}

func (s *CartStore) Get(ctx context.Context, cartID string) (Cart, error) {
	raw, err := s.store.Get(ctx, "cart:"+cartID)
	if errors.Is(err, ErrNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) Save(ctx context.Context, cartID string, cart Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, "cart:"+cartID, string(raw), cartTTL)
}

func (s *CartStore) Clear(ctx context.Context, cartID string) error {
	return s.store.Del(ctx, "cart:"+cartID)
}
