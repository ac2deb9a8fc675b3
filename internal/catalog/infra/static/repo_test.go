package static

import (
	"context"
	"errors"
	"testing"

	"github.com/ankalaev/animanga-shop/internal/catalog/app"
)

func TestSeedData(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 14 {
		t.Fatalf("products = %d, want 14", len(list))
	}

	seen := make(map[int64]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Title == "" || p.Author == "" || p.Price <= 0 || p.Kind == "" {
			t.Fatalf("incomplete product %+v", p)
		}
	}

	if _, err := repo.Get(ctx, 1); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := repo.Get(ctx, 99); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo()

	list, _ := repo.List(ctx)
	list[0].Title = "mutated"

	again, _ := repo.List(ctx)
	if again[0].Title == "mutated" {
		t.Fatal("seed list mutated through a caller")
	}
}
