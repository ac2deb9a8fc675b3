package adapter

import (
	"context"

	cartapp "github.com/ankalaev/animanga-shop/internal/cart/app"
	checkoutapp "github.com/ankalaev/animanga-shop/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Snapshot(_ context.Context) (checkoutapp.CartSnapshot, error) {
	lines := r.svc.Lines()
	totals := r.svc.Totals()

	items := make([]checkoutapp.CartLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, checkoutapp.CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			Price:     l.Price,
			OldPrice:  l.OldPrice,
			Quantity:  l.Quantity,
			Fandom:    l.Fandom,
			Size:      l.Size,
		})
	}

	return checkoutapp.CartSnapshot{
		Lines:          items,
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		Shipping:       totals.Shipping,
		Total:          totals.Total,
		DeliveryMethod: r.svc.SelectedDelivery().Name,
		PaymentMethod:  r.svc.SelectedPayment().Name,
	}, nil
}

func (r *CartServiceReader) Clear(ctx context.Context) error {
	return r.svc.Clear(ctx)
}
