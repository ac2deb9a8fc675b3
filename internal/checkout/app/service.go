package app

import (
	"context"
	"errors"

	"github.com/ankalaev/animanga-shop/internal/checkout/domain"
)

type CartReader interface {
	Snapshot(ctx context.Context) (CartSnapshot, error)
	Clear(ctx context.Context) error
}

// CartSnapshot is the cart state checkout freezes into an order.
type CartSnapshot struct {
	Lines          []CartLine
	Subtotal       int64
	Discount       int64
	Shipping       int64
	Total          int64
	DeliveryMethod string
	PaymentMethod  string
}

type CartLine struct {
	ProductID int64
	Name      string
	Category  string
	Price     int64
	OldPrice  int64
	Quantity  int
	Fandom    string
	Size      string
}

type OrderPlacer interface {
	Place(ctx context.Context, customer domain.CustomerInfo, snap CartSnapshot) (domain.PlacedOrder, error)
}

type Service struct {
	Cart   CartReader
	Orders OrderPlacer
}

func NewService(cart CartReader, orders OrderPlacer) *Service {
	return &Service{
		Cart:   cart,
		Orders: orders,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

// Quote returns the pricing breakdown the customer reviews before placing
// an order. An empty cart cannot be quoted.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	snap, err := s.Cart.Snapshot(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(snap.Lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(snap.Lines))
	for idx, it := range snap.Lines {
		lines[idx] = domain.QuoteLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			LineTotal: it.Price * int64(it.Quantity),
		}
	}

	return domain.Quote{
		Lines:          lines,
		Subtotal:       snap.Subtotal,
		Discount:       snap.Discount,
		Shipping:       snap.Shipping,
		Total:          snap.Total,
		DeliveryMethod: snap.DeliveryMethod,
		PaymentMethod:  snap.PaymentMethod,
	}, nil
}

// PlaceOrder turns the current cart into an order and empties the cart on
// success. Customer and cart validation happen downstream, so a rejected
// form leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, customer domain.CustomerInfo) (domain.PlacedOrder, error) {
	snap, err := s.Cart.Snapshot(ctx)
	if err != nil {
		return domain.PlacedOrder{}, err
	}

	placed, err := s.Orders.Place(ctx, customer, snap)
	if err != nil {
		return domain.PlacedOrder{}, err
	}

	if err := s.Cart.Clear(ctx); err != nil {
		return placed, err
	}
	return placed, nil
}
