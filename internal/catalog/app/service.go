package app

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ankalaev/animanga-shop/internal/catalog/domain"
	"github.com/ankalaev/animanga-shop/pkg/kv"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const defaultPerPage = 8

type Service struct {
	repo  ProductRepo
	store kv.Store
}

func NewService(repo ProductRepo, store kv.Store) *Service {
	return &Service{
		repo:  repo,
		store: store,
	}
}

// Browse lists the catalog through filter, sort and pagination.
func (s *Service) Browse(ctx context.Context, f domain.Filter, page, perPage int) (domain.Page, error) {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Paginate(domain.Apply(products, f), page, perPage), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ToggleFavorite flips a product id in the persisted favorites list and
// reports whether the product is now a favorite.
func (s *Service) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return false, err
	}

	ids := s.Favorites(ctx)
	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			return false, s.saveFavorites(ctx, ids)
		}
	}
	ids = append(ids, id)
	return true, s.saveFavorites(ctx, ids)
}

// Favorites returns the persisted favorite product ids. A missing or
// unreadable blob degrades to an empty list.
func (s *Service) Favorites(ctx context.Context) []int64 {
	b, err := s.store.Load(ctx, kv.KeyFavorites)
	if err != nil {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		return []int64{}
	}
	return ids
}

func (s *Service) saveFavorites(ctx context.Context, ids []int64) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, kv.KeyFavorites, b)
}
