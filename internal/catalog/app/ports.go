package app

import (
	"context"

	"github.com/ankalaev/animanga-shop/internal/catalog/domain"
)

type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
}
