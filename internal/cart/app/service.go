package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/ankalaev/animanga-shop/internal/cart/domain"
	"github.com/ankalaev/animanga-shop/pkg/kv"
)

var (
	ErrPromoNotFound     = errors.New("promo code not found")
	ErrPromoAlreadyUsed  = errors.New("promo code already applied")
	ErrMinimumNotMet     = errors.New("minimum order amount not met")
	ErrCategoryNotInCart = errors.New("no cart items match the promo category")
	ErrDeliveryNotFound  = errors.New("delivery option not found")
	ErrPaymentNotFound   = errors.New("payment method not found")
)

// Service is the cart/pricing engine. It owns the line items and the applied
// promo set for the current session, persists the cart snapshot on every
// mutation, and reloads from the store when another session rewrites the
// cart key.
type Service struct {
	store  kv.Store
	promos map[string]domain.PromoCode

	mu       sync.Mutex
	lines    []domain.Line
	applied  []string
	delivery []domain.DeliveryOption
	payments []domain.PaymentMethod

	pick func(n int) int
}

func NewService(ctx context.Context, store kv.Store) *Service {
	table := make(map[string]domain.PromoCode)
	for _, p := range domain.DefaultPromoCodes() {
		table[p.Code] = p
	}

	s := &Service{
		store:    store,
		promos:   table,
		delivery: domain.DefaultDeliveryOptions(),
		payments: domain.DefaultPaymentMethods(),
		pick:     rand.IntN,
	}
	s.lines = s.load(ctx)

	store.Subscribe(kv.KeyCart, func(string) {
		s.Reload(context.Background())
	})
	return s
}

// Reload replaces the in-memory cart with the persisted snapshot. Called when
// the cart key changes in another session sharing the store.
func (s *Service) Reload(ctx context.Context) {
	lines := s.load(ctx)
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

// load degrades any storage failure to an empty cart.
func (s *Service) load(ctx context.Context) []domain.Line {
	b, err := s.store.Load(ctx, kv.KeyCart)
	if err != nil {
		return nil
	}
	var lines []domain.Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil
	}
	return lines
}

func (s *Service) persist(ctx context.Context) error {
	b, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.Save(ctx, kv.KeyCart, b); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// AddOrIncrement adds product as a new line with quantity 1, or bumps the
// quantity of the existing line for the same product id. New lines get a
// fandom tag drawn uniformly from the fixed set.
func (s *Service) AddOrIncrement(ctx context.Context, product domain.ProductRef) (domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity++
			return s.lines[i], s.persist(ctx)
		}
	}

	line := domain.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		OldPrice:  product.OldPrice,
		Quantity:  1,
		Fandom:    domain.Fandoms[s.pick(len(domain.Fandoms))],
		Size:      product.Size,
	}
	s.lines = append(s.lines, line)
	return line, s.persist(ctx)
}

// Increment bumps an existing line's quantity. Silently does nothing when the
// line is absent.
func (s *Service) Increment(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return s.persist(ctx)
		}
	}
	return nil
}

// Decrement lowers a line's quantity, stopping at 1. Removal is always an
// explicit separate action.
func (s *Service) Decrement(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if s.lines[i].Quantity <= 1 {
				return nil
			}
			s.lines[i].Quantity--
			return s.persist(ctx)
		}
	}
	return nil
}

// Remove deletes the whole line regardless of quantity; absent lines are a
// no-op.
func (s *Service) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	if err := s.store.Delete(ctx, kv.KeyCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ApplyPromo normalizes and applies a promo code to the current session.
func (s *Service) ApplyPromo(_ context.Context, code string) (domain.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.applied {
		if c == code {
			return domain.PromoCode{}, ErrPromoAlreadyUsed
		}
	}

	promo, ok := s.promos[code]
	if !ok {
		return domain.PromoCode{}, ErrPromoNotFound
	}

	if promo.MinOrder > 0 && s.subtotalLocked() < promo.MinOrder {
		return domain.PromoCode{}, fmt.Errorf("%w: need %d", ErrMinimumNotMet, promo.MinOrder)
	}

	if promo.Category != "" && promo.Category != domain.CategoryAll {
		eligible := false
		for _, line := range s.lines {
			if promo.AppliesTo(line) {
				eligible = true
				break
			}
		}
		if !eligible {
			return domain.PromoCode{}, ErrCategoryNotInCart
		}
	}

	s.applied = append(s.applied, code)
	return promo, nil
}

// RemovePromo drops a code from the applied set; absent codes are a no-op.
func (s *Service) RemovePromo(_ context.Context, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.applied {
		if c == code {
			s.applied = append(s.applied[:i], s.applied[i+1:]...)
			return
		}
	}
}

func (s *Service) AppliedPromos() []domain.PromoCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PromoCode, 0, len(s.applied))
	for _, code := range s.applied {
		out = append(out, s.promos[code])
	}
	return out
}

func (s *Service) AvailablePromos() []domain.PromoCode {
	return domain.DefaultPromoCodes()
}

func (s *Service) SelectDelivery(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.delivery {
		if s.delivery[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrDeliveryNotFound
	}
	for i := range s.delivery {
		s.delivery[i].Selected = s.delivery[i].ID == id
	}
	return nil
}

func (s *Service) SelectPayment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.payments {
		if s.payments[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrPaymentNotFound
	}
	for i := range s.payments {
		s.payments[i].Selected = s.payments[i].ID == id
	}
	return nil
}

func (s *Service) DeliveryOptions() []domain.DeliveryOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DeliveryOption, len(s.delivery))
	copy(out, s.delivery)
	return out
}

func (s *Service) PaymentMethods() []domain.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PaymentMethod, len(s.payments))
	copy(out, s.payments)
	return out
}

func (s *Service) SelectedDelivery() domain.DeliveryOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDeliveryLocked()
}

func (s *Service) SelectedPayment() domain.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.payments {
		if m.Selected {
			return m
		}
	}
	return domain.PaymentMethod{}
}

// Subtotal is the sum of price times quantity over all lines.
func (s *Service) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Discount sums every applied percentage promo against the same subtotal
// base (additive stacking, no compounding) and rounds once at the end.
// Free-shipping promos contribute nothing here.
func (s *Service) Discount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountLocked()
}

// Shipping is the selected delivery cost, zeroed when any applied
// free-shipping promo's minimum is met by the current subtotal.
func (s *Service) Shipping() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingLocked()
}

// Total is subtotal minus discount plus effective shipping, floored at zero.
func (s *Service) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Service) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := 0
	for _, l := range s.lines {
		items += l.Quantity
	}
	return domain.Totals{
		Items:    items,
		Subtotal: s.subtotalLocked(),
		Discount: s.discountLocked(),
		Shipping: s.shippingLocked(),
		Total:    s.totalLocked(),
	}
}

func (s *Service) subtotalLocked() int64 {
	var sum int64
	for _, l := range s.lines {
		sum += l.LineTotal()
	}
	return sum
}

func (s *Service) discountLocked() int64 {
	subtotal := float64(s.subtotalLocked())
	var discount float64
	for _, code := range s.applied {
		promo := s.promos[code]
		if promo.Kind == domain.PromoPercentage {
			discount += subtotal * float64(promo.Value) / 100
		}
	}
	return int64(math.Round(discount))
}

func (s *Service) shippingLocked() int64 {
	subtotal := s.subtotalLocked()
	for _, code := range s.applied {
		promo := s.promos[code]
		if promo.Kind == domain.PromoFreeShipping && subtotal >= promo.MinOrder {
			return 0
		}
	}
	return s.selectedDeliveryLocked().Cost
}

func (s *Service) totalLocked() int64 {
	total := s.subtotalLocked() - s.discountLocked() + s.shippingLocked()
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Service) selectedDeliveryLocked() domain.DeliveryOption {
	for _, d := range s.delivery {
		if d.Selected {
			return d
		}
	}
	return domain.DeliveryOption{}
}
