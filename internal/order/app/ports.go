package app

import (
	"context"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
)

// OrderRepo persists the full order list as one atomic blob.
type OrderRepo interface {
	Load(ctx context.Context) ([]domain.Order, error)
	Save(ctx context.Context, orders []domain.Order) error
}
