package domain

import "time"

type QuoteLine struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// Quote is the pricing breakdown shown before the order is placed.
type Quote struct {
	Lines          []QuoteLine
	Subtotal       int64
	Discount       int64
	Shipping       int64
	Total          int64
	DeliveryMethod string
	PaymentMethod  string
}

// CustomerInfo is the checkout form as submitted by the customer.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	Comment   string
	Agreement bool
}

// PlacedOrder is the confirmation handed back after a successful checkout.
type PlacedOrder struct {
	ID        string
	Number    string
	Status    string
	Total     int64
	CreatedAt time.Time
}
