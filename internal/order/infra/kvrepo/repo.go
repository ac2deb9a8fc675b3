// Package kvrepo persists the order list as a single JSON blob in the
// key-value store, mirroring how the storefront keeps all of its state.
package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
	"github.com/ankalaev/animanga-shop/pkg/kv"
)

type OrderRepo struct {
	store kv.Store
}

func NewOrderRepo(store kv.Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// Load degrades a missing or unreadable blob to an empty list; order data is
// recoverable user state, never a fatal condition.
func (r *OrderRepo) Load(ctx context.Context) ([]domain.Order, error) {
	b, err := r.store.Load(ctx, kv.KeyOrders)
	if err != nil {
		return []domain.Order{}, nil
	}
	var orders []domain.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (r *OrderRepo) Save(ctx context.Context, orders []domain.Order) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := r.store.Save(ctx, kv.KeyOrders, b); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
