package adapter

import (
	"context"

	checkoutapp "github.com/ankalaev/animanga-shop/internal/checkout/app"
	checkoutdomain "github.com/ankalaev/animanga-shop/internal/checkout/domain"
	orderapp "github.com/ankalaev/animanga-shop/internal/order/app"
	orderdomain "github.com/ankalaev/animanga-shop/internal/order/domain"
)

type OrderServicePlacer struct {
	svc *orderapp.Service
}

func NewOrderServicePlacer(svc *orderapp.Service) *OrderServicePlacer {
	return &OrderServicePlacer{svc: svc}
}

func (p *OrderServicePlacer) Place(ctx context.Context, customer checkoutdomain.CustomerInfo, snap checkoutapp.CartSnapshot) (checkoutdomain.PlacedOrder, error) {
	items := make([]orderdomain.Item, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, orderdomain.Item{
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

	order, err := p.svc.Create(ctx, orderdomain.CreateOrderRequest{
		FirstName:      customer.FirstName,
		LastName:       customer.LastName,
		Phone:          customer.Phone,
		Email:          customer.Email,
		Address:        customer.Address,
		Comment:        customer.Comment,
		Agreement:      customer.Agreement,
		Items:          items,
		Subtotal:       snap.Subtotal,
		Discount:       snap.Discount,
		Shipping:       snap.Shipping,
		Total:          snap.Total,
		PaymentMethod:  snap.PaymentMethod,
		DeliveryMethod: snap.DeliveryMethod,
	})
	if err != nil {
		return checkoutdomain.PlacedOrder{}, err
	}

	return checkoutdomain.PlacedOrder{
		ID:        order.ID,
		Number:    order.Number,
		Status:    string(order.Status),
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}, nil
}
