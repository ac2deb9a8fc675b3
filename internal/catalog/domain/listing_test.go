package domain

import "testing"

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Title: "Berserk", Author: "Kentaro Miura", Kind: KindManga, Genres: []string{"seinen", "action"}, Age: Age18, Status: StatusReleased, Price: 999, Rating: 4.9, Badge: BadgeHit},
		{ID: 2, Title: "Solo Leveling", Author: "Chugong", Kind: KindManhwa, Genres: []string{"action", "fantasy"}, Age: Age16, Status: StatusOngoing, Price: 749, Rating: 4.7},
		{ID: 3, Title: "The Walking Dead", Author: "Robert Kirkman", Kind: KindComics, Genres: []string{"horror"}, Age: Age18, Status: StatusReleased, Price: 1299, Rating: 4.3},
		{ID: 4, Title: "Spy x Family", Author: "Tatsuya Endo", Kind: KindManga, Genres: []string{"comedy", "action"}, Age: Age12, Status: StatusOngoing, Price: 649, Rating: 4.8, Badge: BadgeNew},
	}
}

func TestFilterMatches(t *testing.T) {
	t.Run("kind all matches everything", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{Kind: KindAll})
		if len(got) != 4 {
			t.Fatalf("matched %d, want 4", len(got))
		}
	})

	t.Run("kind narrows", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{Kind: KindManga})
		if len(got) != 2 {
			t.Fatalf("matched %d, want 2", len(got))
		}
	})

	t.Run("genres are any-of", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{Genres: []string{"horror", "comedy"}})
		if len(got) != 2 {
			t.Fatalf("matched %d, want 2", len(got))
		}
	})

	t.Run("price max zero is unbounded", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{PriceMin: 700})
		if len(got) != 3 {
			t.Fatalf("matched %d, want 3", len(got))
		}
		got = Apply(sampleProducts(), Filter{PriceMin: 700, PriceMax: 1000})
		if len(got) != 2 {
			t.Fatalf("matched %d, want 2", len(got))
		}
	})

	t.Run("search covers title and author", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{Search: "  MIURA "})
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestSorting(t *testing.T) {
	first := func(f Filter) int64 {
		return Apply(sampleProducts(), f)[0].ID
	}

	t.Run("popular puts badged items first", func(t *testing.T) {
		got := Apply(sampleProducts(), Filter{Sort: SortPopular})
		if got[0].ID != 1 || got[1].ID != 4 {
			t.Fatalf("order %d, %d", got[0].ID, got[1].ID)
		}
	})

	t.Run("price ascending", func(t *testing.T) {
		if id := first(Filter{Sort: SortPriceLow}); id != 4 {
			t.Fatalf("first = %d, want 4", id)
		}
	})

	t.Run("price descending", func(t *testing.T) {
		if id := first(Filter{Sort: SortPriceHigh}); id != 3 {
			t.Fatalf("first = %d, want 3", id)
		}
	})

	t.Run("newest by id", func(t *testing.T) {
		if id := first(Filter{Sort: SortNew}); id != 4 {
			t.Fatalf("first = %d, want 4", id)
		}
	})

	t.Run("alphabetical", func(t *testing.T) {
		if id := first(Filter{Sort: SortTitle}); id != 1 {
			t.Fatalf("first = %d, want 1", id)
		}
	})
}

func TestPaginate(t *testing.T) {
	products := make([]Product, 17)
	for i := range products {
		products[i] = Product{ID: int64(i + 1)}
	}

	t.Run("default page size is eight", func(t *testing.T) {
		page := Paginate(products, 1, 0)
		if len(page.Products) != 8 || page.TotalPages != 3 {
			t.Fatalf("page %+v", page)
		}
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := Paginate(products, 3, 8)
		if len(page.Products) != 1 || page.Products[0].ID != 17 {
			t.Fatalf("page %+v", page)
		}
	})

	t.Run("past the end -> empty with math intact", func(t *testing.T) {
		page := Paginate(products, 5, 8)
		if len(page.Products) != 0 || page.Total != 17 || page.TotalPages != 3 {
			t.Fatalf("page %+v", page)
		}
	})

	t.Run("page below one clamps to first", func(t *testing.T) {
		page := Paginate(products, 0, 8)
		if page.PageNumber != 1 || len(page.Products) != 8 {
			t.Fatalf("page %+v", page)
		}
	})
}
