package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
	"github.com/ankalaev/animanga-shop/pkg/validate"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// DefaultActor labels history entries produced by the order console.
const DefaultActor = "administrator"

type Service struct {
	repo OrderRepo

	now  func() time.Time
	rand *rand.Rand
}

func NewService(repo OrderRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Create validates the request and appends a new order in state "new".
// Missing required fields (including an empty item list) surface as a
// *validate.Error naming each field.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Order{}, err
	}

	orders, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.now()
	number, err := s.nextNumber(now, orders)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        s.newID(now),
		Number:    number,
		CreatedAt: now,
		Customer: domain.Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Email:     req.Email,
			Address:   req.Address,
			Comment:   req.Comment,
		},
		Items:          req.Items,
		Subtotal:       req.Subtotal,
		Discount:       req.Discount,
		Shipping:       req.Shipping,
		Total:          req.Total,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		Status:         domain.StatusNew,
	}

	orders = append(orders, order)
	if err := s.repo.Save(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (domain.Order, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// Transition moves an order to newStatus, enforcing the lifecycle edges, and
// logs the change in the order's history.
func (s *Service) Transition(ctx context.Context, orderID string, newStatus domain.Status, actor string) (domain.Order, error) {
	if !newStatus.Valid() {
		return domain.Order{}, ErrInvalidStatus
	}
	if actor == "" {
		actor = DefaultActor
	}

	return s.mutate(ctx, orderID, func(o *domain.Order) error {
		if !o.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, newStatus)
		}
		o.History = append(o.History, domain.HistoryEntry{
			At:     s.now(),
			Action: "status changed",
			From:   o.Status,
			To:     newStatus,
			By:     actor,
		})
		o.Status = newStatus
		return nil
	})
}

// UpdateNotes overwrites the free-text admin notes and logs the change.
func (s *Service) UpdateNotes(ctx context.Context, orderID, notes, actor string) (domain.Order, error) {
	if actor == "" {
		actor = DefaultActor
	}
	return s.mutate(ctx, orderID, func(o *domain.Order) error {
		o.Notes = notes
		o.History = append(o.History, domain.HistoryEntry{
			At:     s.now(),
			Action: "notes updated",
			By:     actor,
		})
		return nil
	})
}

// Delete permanently removes an order. Irreversible; the caller is expected
// to have confirmed the action.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	for i, o := range orders {
		if o.ID == orderID {
			orders = append(orders[:i], orders[i+1:]...)
			return s.repo.Save(ctx, orders)
		}
	}
	return ErrNotFound
}

// PurgeOld removes orders older than maxAgeDays that are delivered or
// cancelled, returning how many were removed. Retained orders keep their
// relative order.
func (s *Service) PurgeOld(ctx context.Context, maxAgeDays int) (int, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().AddDate(0, 0, -maxAgeDays)
	kept := orders[:0]
	removed := 0
	for _, o := range orders {
		if o.CreatedAt.Before(cutoff) && o.Status.Terminal() {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.repo.Save(ctx, kept)
}

// Query returns matching orders sorted newest-first.
func (s *Service) Query(ctx context.Context, f domain.QueryFilter) ([]domain.Order, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Query(orders, f, s.now()), nil
}

// QueryPage filters, sorts and paginates in one step.
func (s *Service) QueryPage(ctx context.Context, f domain.QueryFilter, page, perPage int) (domain.OrderPage, error) {
	orders, err := s.Query(ctx, f)
	if err != nil {
		return domain.OrderPage{}, err
	}
	return domain.PaginateOrders(orders, page, perPage), nil
}

// Stats counts orders per status.
func (s *Service) Stats(ctx context.Context) (map[domain.Status]int, int, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts, len(orders), nil
}

func (s *Service) mutate(ctx context.Context, orderID string, fn func(*domain.Order) error) (domain.Order, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			if err := fn(&orders[i]); err != nil {
				return domain.Order{}, err
			}
			if err := s.repo.Save(ctx, orders); err != nil {
				return domain.Order{}, err
			}
			return orders[i], nil
		}
	}
	return domain.Order{}, ErrNotFound
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID builds the internal order id: millisecond timestamp plus a 9-char
// base36 suffix.
func (s *Service) newID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[s.rand.IntN(len(base36))]
	}
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix)
}

// nextNumber builds a human order number AM-YYMMDD-NNNN whose 4-digit suffix
// does not collide with any existing order number.
func (s *Service) nextNumber(now time.Time, existing []domain.Order) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		taken[o.Number] = struct{}{}
	}

	prefix := fmt.Sprintf("AM-%s-", now.Format("060102"))
	start := s.rand.IntN(10000)
	for i := 0; i < 10000; i++ {
		n := fmt.Sprintf("%s%04d", prefix, (start+i)%10000)
		if _, ok := taken[n]; !ok {
			return n, nil
		}
	}
	return "", fmt.Errorf("order numbers exhausted for %s", now.Format("2006-01-02"))
}
