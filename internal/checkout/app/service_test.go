package app

import (
	"context"
	"errors"
	"testing"

	"github.com/ankalaev/animanga-shop/internal/checkout/domain"
)

type fakeCart struct {
	snap    CartSnapshot
	cleared bool
}

func (f *fakeCart) Snapshot(context.Context) (CartSnapshot, error) { return f.snap, nil }
func (f *fakeCart) Clear(context.Context) error {
	f.cleared = true
	return nil
}

type fakePlacer struct {
	err    error
	placed *domain.PlacedOrder
	got    CartSnapshot
}

func (f *fakePlacer) Place(_ context.Context, _ domain.CustomerInfo, snap CartSnapshot) (domain.PlacedOrder, error) {
	f.got = snap
	if f.err != nil {
		return domain.PlacedOrder{}, f.err
	}
	return *f.placed, nil
}

func filledCart() CartSnapshot {
	return CartSnapshot{
		Lines: []CartLine{
			{ProductID: 1, Name: "Berserk", Price: 999, Quantity: 2},
			{ProductID: 2, Name: "Solo Leveling", Price: 749, Quantity: 1},
		},
		Subtotal:       2747,
		Shipping:       300,
		Total:          3047,
		DeliveryMethod: "Courier delivery",
		PaymentMethod:  "Bank card",
	}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart -> ErrEmptyCart", func(t *testing.T) {
		svc := NewService(&fakeCart{}, &fakePlacer{})
		if _, err := svc.Quote(ctx); !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("err = %v, want ErrEmptyCart", err)
		}
	})

	t.Run("line totals and breakdown", func(t *testing.T) {
		svc := NewService(&fakeCart{snap: filledCart()}, &fakePlacer{})
		q, err := svc.Quote(ctx)
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		if len(q.Lines) != 2 || q.Lines[0].LineTotal != 1998 {
			t.Fatalf("lines %+v", q.Lines)
		}
		if q.Total != 3047 || q.DeliveryMethod != "Courier delivery" {
			t.Fatalf("quote %+v", q)
		}
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	customer := domain.CustomerInfo{FirstName: "Sakura", Phone: "x", Email: "s@example.com", Agreement: true}

	t.Run("success clears the cart", func(t *testing.T) {
		cart := &fakeCart{snap: filledCart()}
		placer := &fakePlacer{placed: &domain.PlacedOrder{Number: "AM-240615-0001", Total: 3047}}
		svc := NewService(cart, placer)

		placed, err := svc.PlaceOrder(ctx, customer)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if placed.Number != "AM-240615-0001" {
			t.Fatalf("number = %q", placed.Number)
		}
		if !cart.cleared {
			t.Fatal("cart not cleared")
		}
		if placer.got.Subtotal != 2747 {
			t.Fatalf("placer saw %+v", placer.got)
		}
	})

	t.Run("rejected order keeps the cart", func(t *testing.T) {
		cart := &fakeCart{snap: filledCart()}
		boom := errors.New("validation failed")
		svc := NewService(cart, &fakePlacer{err: boom})

		if _, err := svc.PlaceOrder(ctx, customer); !errors.Is(err, boom) {
			t.Fatalf("err = %v", err)
		}
		if cart.cleared {
			t.Fatal("cart cleared after rejection")
		}
	})
}
