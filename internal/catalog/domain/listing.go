package domain

import (
	"sort"
	"strings"
)

// Matches reports whether p satisfies every constraint in f. Genre, age and
// status lists match any-of; search is a case-insensitive substring test over
// title and author.
func (f Filter) Matches(p Product) bool {
	if f.Kind != "" && f.Kind != KindAll && p.Kind != f.Kind {
		return false
	}
	if len(f.Genres) > 0 && !hasAnyGenre(p.Genres, f.Genres) {
		return false
	}
	if len(f.Ages) > 0 && !containsAge(f.Ages, p.Age) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, p.Status) {
		return false
	}
	if p.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && p.Price > f.PriceMax {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		title := strings.ToLower(p.Title)
		author := strings.ToLower(p.Author)
		if !strings.Contains(title, q) && !strings.Contains(author, q) {
			return false
		}
	}
	return true
}

// Apply filters and sorts products without mutating the input slice.
func Apply(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sortProducts(out, f.Sort)
	return out
}

func sortProducts(ps []Product, order SortOrder) {
	switch order {
	case SortNew:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID > ps[j].ID })
	case SortPriceLow:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceHigh:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortRating:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Rating > ps[j].Rating })
	case SortTitle:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Title < ps[j].Title })
	default:
		// Popular: badged products first, then by rating.
		sort.SliceStable(ps, func(i, j int) bool {
			bi, bj := ps[i].Badge != "", ps[j].Badge != ""
			if bi != bj {
				return bi
			}
			return ps[i].Rating > ps[j].Rating
		})
	}
}

// Paginate slices a filtered listing. Page numbers are 1-based; out-of-range
// pages return an empty slice with the pagination math intact.
func Paginate(products []Product, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 8
	}
	if page < 1 {
		page = 1
	}

	total := len(products)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	if start >= total {
		return Page{Products: []Product{}, Total: total, PageNumber: page, TotalPages: totalPages}
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page{
		Products:   products[start:end],
		Total:      total,
		PageNumber: page,
		TotalPages: totalPages,
	}
}

func hasAnyGenre(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func containsAge(list []AgeRating, a AgeRating) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}

func containsStatus(list []ReleaseStatus, s ReleaseStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
