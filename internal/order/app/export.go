package app

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
)

type exportDump struct {
	ExportedAt  time.Time      `json:"export_date"`
	TotalOrders int            `json:"total_orders"`
	Orders      []domain.Order `json:"orders"`
}

// Export writes a formatted JSON dump of every order to w and returns the
// order count.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportDump{
		ExportedAt:  s.now(),
		TotalOrders: len(orders),
		Orders:      orders,
	}); err != nil {
		return 0, err
	}
	return len(orders), nil
}
