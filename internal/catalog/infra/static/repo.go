// Package static is the catalog's reference-data source: a fixed product
// list loaded once at startup.
package static

import (
	"context"

	"github.com/ankalaev/animanga-shop/internal/catalog/app"
	"github.com/ankalaev/animanga-shop/internal/catalog/domain"
)

type ProductRepo struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

func NewProductRepo() *ProductRepo {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &ProductRepo{products: products, byID: byID}
}

func (r *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductRepo) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

var products = []domain.Product{
	{ID: 1, Title: "Naruto, Vol. 1: Uzumaki Naruto", Author: "Masashi Kishimoto", Category: "Manga / Shonen", Price: 849, OldPrice: 999, Genres: []string{"action", "shonen"}, Age: domain.Age12, Status: domain.StatusReleased, Badge: domain.BadgeHit, Rating: 4.8, InStock: true, Kind: domain.KindManga},
	{ID: 2, Title: "Attack on Titan, Vol. 13: The Final Battle", Author: "Hajime Isayama", Category: "Manga / Drama", Price: 1099, Genres: []string{"drama", "fantasy"}, Age: domain.Age16, Status: domain.StatusReleased, Badge: domain.BadgeNew, Rating: 4.9, InStock: true, Kind: domain.KindManga},
	{ID: 3, Title: "Chainsaw Man, Vol. 10", Author: "Tatsuki Fujimoto", Category: "Manga / Action", Price: 799, OldPrice: 899, Genres: []string{"action", "shonen"}, Age: domain.Age16, Status: domain.StatusOngoing, Rating: 4.7, InStock: true, Kind: domain.KindManga},
	{ID: 4, Title: "My Hero Academia, Vol. 39", Author: "Kohei Horikoshi", Category: "Manga / Shonen", Price: 899, OldPrice: 1099, Genres: []string{"action", "shonen"}, Age: domain.Age12, Status: domain.StatusReleased, Badge: domain.BadgeSale, Rating: 4.6, InStock: true, Kind: domain.KindManga},
	{ID: 5, Title: "One Piece, Vol. 100: Road to the Dream", Author: "Eiichiro Oda", Category: "Manga / Adventure", Price: 949, Genres: []string{"adventure", "comedy"}, Age: domain.Age12, Status: domain.StatusOngoing, Rating: 4.8, InStock: true, Kind: domain.KindManga},
	{ID: 6, Title: "Jujutsu Kaisen, Vol. 4", Author: "Gege Akutami", Category: "Manga / Fantasy", Price: 849, Genres: []string{"fantasy", "action"}, Age: domain.Age16, Status: domain.StatusOngoing, Badge: domain.BadgeExclusive, Rating: 4.7, InStock: true, Kind: domain.KindManga},
	{ID: 7, Title: "Bleach, Vol. 74: The Last Verse", Author: "Tite Kubo", Category: "Manga / Shonen", Price: 899, OldPrice: 999, Genres: []string{"action", "fantasy"}, Age: domain.Age16, Status: domain.StatusReleased, Rating: 4.5, InStock: true, Kind: domain.KindManga},
	{ID: 8, Title: "Demon Slayer, Vol. 23", Author: "Koyoharu Gotouge", Category: "Manga / Fantasy", Price: 799, Genres: []string{"fantasy", "action"}, Age: domain.Age16, Status: domain.StatusReleased, Badge: domain.BadgeBestseller, Rating: 4.9, InStock: true, Kind: domain.KindManga},
	{ID: 9, Title: "Solo Leveling, Vol. 1", Author: "Chugong", Category: "Manhwa / Fantasy", Price: 899, Genres: []string{"fantasy", "action"}, Age: domain.Age16, Status: domain.StatusReleased, Badge: domain.BadgeNew, Rating: 4.8, InStock: true, Kind: domain.KindManhwa},
	{ID: 10, Title: "The Returner, Vol. 1", Author: "UU", Category: "Manhwa / Fantasy", Price: 849, Genres: []string{"fantasy", "adventure"}, Age: domain.Age16, Status: domain.StatusOngoing, Rating: 4.6, InStock: true, Kind: domain.KindManhwa},
	{ID: 11, Title: "King of the Dead, Vol. 1", Author: "Er Gen", Category: "Manhua / Fantasy", Price: 799, Genres: []string{"fantasy", "adventure"}, Age: domain.Age16, Status: domain.StatusReleased, Rating: 4.5, InStock: true, Kind: domain.KindManhua},
	{ID: 12, Title: "Path of the Immortal, Vol. 1", Author: "Wang Yu", Category: "Manhua / Fantasy", Price: 849, OldPrice: 999, Genres: []string{"fantasy", "action"}, Age: domain.Age18, Status: domain.StatusOngoing, Badge: domain.BadgeHit, Rating: 4.7, InStock: true, Kind: domain.KindManhua},
	{ID: 13, Title: "Spider-Man, Vol. 1", Author: "Stan Lee", Category: "Comics / Superheroes", Price: 1299, OldPrice: 1499, Genres: []string{"superheroes", "action"}, Age: domain.Age12, Status: domain.StatusReleased, Badge: domain.BadgeSale, Rating: 4.7, InStock: true, Kind: domain.KindComics},
	{ID: 14, Title: "Batman, Vol. 1", Author: "Bob Kane", Category: "Comics / Superheroes", Price: 1199, Genres: []string{"superheroes", "detective"}, Age: domain.Age16, Status: domain.StatusReleased, Rating: 4.8, InStock: true, Kind: domain.KindComics},
}
