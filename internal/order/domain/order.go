package domain

import "time"

// Item is a frozen copy of one cart line at the time the order was placed.
type Item struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	OldPrice  int64  `json:"old_price,omitempty"`
	Quantity  int    `json:"quantity"`
	Fandom    string `json:"fandom,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// HistoryEntry is one append-only record of an admin action on an order.
type HistoryEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
	From   Status    `json:"from,omitempty"`
	To     Status    `json:"to,omitempty"`
	By     string    `json:"by"`
}

// Order is an immutable-after-creation snapshot of a completed checkout.
// Only Status, Notes and History change afterwards.
type Order struct {
	ID             string         `json:"id"`
	Number         string         `json:"number"`
	CreatedAt      time.Time      `json:"created_at"`
	Customer       Customer       `json:"customer"`
	Items          []Item         `json:"items"`
	Subtotal       int64          `json:"subtotal"`
	Discount       int64          `json:"discount"`
	Shipping       int64          `json:"shipping"`
	Total          int64          `json:"total"`
	PaymentMethod  string         `json:"payment_method"`
	DeliveryMethod string         `json:"delivery_method"`
	Notes          string         `json:"notes,omitempty"`
	Status         Status         `json:"status"`
	History        []HistoryEntry `json:"history,omitempty"`
}

// CreateOrderRequest carries everything checkout hands over when placing an
// order. Agreement is a form-level flag and is not persisted on the order.
type CreateOrderRequest struct {
	FirstName      string `validate:"required"`
	LastName       string
	Phone          string `validate:"required"`
	Email          string `validate:"required,email"`
	Address        string
	Comment        string
	Agreement      bool   `validate:"eq=true"`
	Items          []Item `validate:"min=1"`
	Subtotal       int64
	Discount       int64
	Shipping       int64
	Total          int64
	PaymentMethod  string
	DeliveryMethod string
}
