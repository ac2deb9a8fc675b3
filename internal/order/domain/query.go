package domain

import (
	"sort"
	"strings"
	"time"
)

type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"  // last 7 days
	RangeMonth DateRange = "month" // last 30 days
)

// QueryFilter narrows the order list. Status "" or "all" matches everything;
// Search is a case-insensitive substring test over the order number and the
// customer's name, phone and email.
type QueryFilter struct {
	Status Status
	Range  DateRange
	Search string
}

func (f QueryFilter) cutoff(now time.Time) (time.Time, bool) {
	switch f.Range {
	case RangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func (f QueryFilter) Matches(o Order, now time.Time) bool {
	if f.Status != "" && f.Status != "all" && o.Status != f.Status {
		return false
	}
	if cutoff, ok := f.cutoff(now); ok && o.CreatedAt.Before(cutoff) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(strings.Join([]string{
			o.Number,
			o.Customer.FirstName,
			o.Customer.LastName,
			o.Customer.Phone,
			o.Customer.Email,
		}, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// Query filters and sorts orders newest-first. The input slice is not
// mutated; sorting always happens before any pagination.
func Query(orders []Order, f QueryFilter, now time.Time) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o, now) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// OrderPage is one slice of a filtered order listing.
type OrderPage struct {
	Orders     []Order
	Total      int
	PageNumber int
	TotalPages int
}

func PaginateOrders(orders []Order, page, perPage int) OrderPage {
	if perPage <= 0 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}

	total := len(orders)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	if start >= total {
		return OrderPage{Orders: []Order{}, Total: total, PageNumber: page, TotalPages: totalPages}
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return OrderPage{
		Orders:     orders[start:end],
		Total:      total,
		PageNumber: page,
		TotalPages: totalPages,
	}
}
