package kvrepo

import (
	"context"
	"testing"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
	"github.com/ankalaev/animanga-shop/pkg/kv"
)

func TestLoadDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewOrderRepo(store)

	t.Run("missing blob", func(t *testing.T) {
		orders, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(orders) != 0 {
			t.Fatalf("orders = %v", orders)
		}
	})

	t.Run("corrupt blob", func(t *testing.T) {
		if err := store.Save(ctx, kv.KeyOrders, []byte("{not json")); err != nil {
			t.Fatalf("save: %v", err)
		}
		orders, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(orders) != 0 {
			t.Fatalf("orders = %v", orders)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(kv.NewMemoryStore())

	in := []domain.Order{{ID: "a", Number: "AM-240615-0001", Status: domain.StatusNew}}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "a" || out[0].Status != domain.StatusNew {
		t.Fatalf("out = %+v", out)
	}
}
