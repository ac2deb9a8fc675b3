package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ankalaev/animanga-shop/internal/cart/domain"
	"github.com/ankalaev/animanga-shop/pkg/kv"
)

func newTestService(t *testing.T) (*Service, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	svc := NewService(context.Background(), store)
	svc.pick = func(int) int { return 0 }
	return svc, store
}

func mangaRef(id int64, price int64) domain.ProductRef {
	return domain.ProductRef{ID: id, Name: "Berserk", Category: "manga", Price: price}
}

func TestAddOrIncrement(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	t.Run("new product -> quantity 1 with fandom", func(t *testing.T) {
		line, err := svc.AddOrIncrement(ctx, mangaRef(1, 500))
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if line.Quantity != 1 {
			t.Fatalf("quantity = %d, want 1", line.Quantity)
		}
		if line.Fandom != domain.Fandoms[0] {
			t.Fatalf("fandom = %q, want %q", line.Fandom, domain.Fandoms[0])
		}
	})

	t.Run("same product again -> merged into one line", func(t *testing.T) {
		line, err := svc.AddOrIncrement(ctx, mangaRef(1, 500))
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if line.Quantity != 2 {
			t.Fatalf("quantity = %d, want 2", line.Quantity)
		}
		if got := len(svc.Lines()); got != 1 {
			t.Fatalf("lines = %d, want 1", got)
		}
	})

	t.Run("every mutation persists", func(t *testing.T) {
		raw, err := store.Load(ctx, kv.KeyCart)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		var lines []domain.Line
		if err := json.Unmarshal(raw, &lines); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(lines) != 1 || lines[0].Quantity != 2 {
			t.Fatalf("persisted %+v", lines)
		}
	})
}

func TestQuantityEdges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddOrIncrement(ctx, mangaRef(1, 500)); err != nil {
		t.Fatalf("add: %v", err)
	}

	t.Run("decrement at one -> no-op", func(t *testing.T) {
		if err := svc.Decrement(ctx, 1); err != nil {
			t.Fatalf("decrement: %v", err)
		}
		if got := svc.Lines()[0].Quantity; got != 1 {
			t.Fatalf("quantity = %d, want 1", got)
		}
	})

	t.Run("increment missing line -> no-op", func(t *testing.T) {
		if err := svc.Increment(ctx, 99); err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got := len(svc.Lines()); got != 1 {
			t.Fatalf("lines = %d, want 1", got)
		}
	})

	t.Run("remove deletes regardless of quantity", func(t *testing.T) {
		if err := svc.Increment(ctx, 1); err != nil {
			t.Fatalf("increment: %v", err)
		}
		if err := svc.Remove(ctx, 1); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if got := len(svc.Lines()); got != 0 {
			t.Fatalf("lines = %d, want 0", got)
		}
	})
}

func TestSubtotal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddOrIncrement(ctx, mangaRef(1, 999)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Increment(ctx, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := svc.Increment(ctx, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}

	if got := svc.Subtotal(); got != 2997 {
		t.Fatalf("subtotal = %d, want 2997", got)
	}
	// courier is preselected
	if got := svc.Total(); got != 3297 {
		t.Fatalf("total = %d, want 3297", got)
	}
}

func TestApplyPromo(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 1000))

		promo, err := svc.ApplyPromo(ctx, "  welcome10 ")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if promo.Code != "WELCOME10" {
			t.Fatalf("code = %q", promo.Code)
		}
	})

	t.Run("second apply -> already used", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 1000))

		if _, err := svc.ApplyPromo(ctx, "WELCOME10"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if _, err := svc.ApplyPromo(ctx, "welcome10"); !errors.Is(err, ErrPromoAlreadyUsed) {
			t.Fatalf("err = %v, want ErrPromoAlreadyUsed", err)
		}
	})

	t.Run("unknown code -> not found", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 1000))

		if _, err := svc.ApplyPromo(ctx, "NOPE"); !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("err = %v, want ErrPromoNotFound", err)
		}
	})

	t.Run("below minimum -> rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 1000))

		if _, err := svc.ApplyPromo(ctx, "SUMMER2024"); !errors.Is(err, ErrMinimumNotMet) {
			t.Fatalf("err = %v, want ErrMinimumNotMet", err)
		}
	})

	t.Run("category promo without matching items -> rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, domain.ProductRef{ID: 2, Name: "Spawn", Category: "comics", Price: 2000})

		if _, err := svc.ApplyPromo(ctx, "MANGA20"); !errors.Is(err, ErrCategoryNotInCart) {
			t.Fatalf("err = %v, want ErrCategoryNotInCart", err)
		}
	})
}

func TestDiscountStacking(t *testing.T) {
	ctx := context.Background()

	t.Run("category promo discounts the whole subtotal", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 1000))
		mustAdd(t, svc, domain.ProductRef{ID: 2, Name: "Spawn", Category: "comics", Price: 500})

		if _, err := svc.ApplyPromo(ctx, "MANGA20"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		// 20% of 1500, not of the manga line alone
		if got := svc.Discount(); got != 300 {
			t.Fatalf("discount = %d, want 300", got)
		}
	})

	t.Run("percentages add against the same base", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, domain.ProductRef{ID: 3, Name: "Totoro figure", Category: "merch", Price: 1000})

		if _, err := svc.ApplyPromo(ctx, "WELCOME10"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if _, err := svc.ApplyPromo(ctx, "ANIME15"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got := svc.Discount(); got != 250 {
			t.Fatalf("discount = %d, want 250", got)
		}
	})
}

func TestShipping(t *testing.T) {
	ctx := context.Background()

	t.Run("free shipping above minimum -> zero", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 2000))

		if _, err := svc.ApplyPromo(ctx, "FREESHIP"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got := svc.Shipping(); got != 0 {
			t.Fatalf("shipping = %d, want 0", got)
		}
	})

	t.Run("cart shrinks below minimum -> cost returns", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 2000))
		if _, err := svc.ApplyPromo(ctx, "FREESHIP"); err != nil {
			t.Fatalf("apply: %v", err)
		}

		if err := svc.Remove(ctx, 1); err != nil {
			t.Fatalf("remove: %v", err)
		}
		mustAdd(t, svc, mangaRef(1, 500))
		if got := svc.Shipping(); got != 300 {
			t.Fatalf("shipping = %d, want 300", got)
		}
	})

	t.Run("express delivery changes the cost", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustAdd(t, svc, mangaRef(1, 500))

		if err := svc.SelectDelivery("express"); err != nil {
			t.Fatalf("select: %v", err)
		}
		if got := svc.Shipping(); got != 500 {
			t.Fatalf("shipping = %d, want 500", got)
		}
	})
}

func TestTotalNeverNegative(t *testing.T) {
	svc, _ := newTestService(t)
	mustAdd(t, svc, mangaRef(1, 100))

	if err := svc.SelectDelivery("pickup"); err != nil {
		t.Fatalf("select: %v", err)
	}

	// stack enough percentage to push past the subtotal
	svc.mu.Lock()
	svc.applied = []string{"SUMMER2024", "SUMMER2024", "SUMMER2024", "SUMMER2024", "SUMMER2024"}
	svc.mu.Unlock()

	if got := svc.Discount(); got != 125 {
		t.Fatalf("discount = %d, want 125", got)
	}
	if got := svc.Total(); got != 0 {
		t.Fatalf("total = %d, want 0", got)
	}
}

func TestSelectionExclusive(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SelectDelivery("post"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := svc.SelectDelivery("pickup"); err != nil {
		t.Fatalf("select: %v", err)
	}

	selected := 0
	for _, d := range svc.DeliveryOptions() {
		if d.Selected {
			selected++
			if d.ID != "pickup" {
				t.Fatalf("selected %s, want pickup", d.ID)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("selected count = %d, want 1", selected)
	}

	if err := svc.SelectPayment("nope"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestReloadOnForeignWrite(t *testing.T) {
	svc, store := newTestService(t)
	mustAdd(t, svc, mangaRef(1, 500))

	foreign := []domain.Line{{ProductID: 7, Name: "Vagabond", Category: "manga", Price: 800, Quantity: 3, Fandom: "Naruto"}}
	raw, err := json.Marshal(foreign)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	store.Inject(kv.KeyCart, raw)

	lines := svc.Lines()
	if len(lines) != 1 || lines[0].ProductID != 7 || lines[0].Quantity != 3 {
		t.Fatalf("lines after reload = %+v", lines)
	}
}

func mustAdd(t *testing.T, svc *Service, ref domain.ProductRef) {
	t.Helper()
	if _, err := svc.AddOrIncrement(context.Background(), ref); err != nil {
		t.Fatalf("add %d: %v", ref.ID, err)
	}
}
