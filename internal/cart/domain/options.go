package domain

// DeliveryOption and PaymentMethod are small fixed option sets. Exactly one
// member of each set is selected at a time; selection is last-write-wins.

type DeliveryOption struct {
	ID          string
	Name        string
	Description string
	Cost        int64
	Selected    bool
}

type PaymentMethod struct {
	ID       string
	Name     string
	Selected bool
}

func DefaultDeliveryOptions() []DeliveryOption {
	return []DeliveryOption{
		{ID: "courier", Name: "Courier delivery", Description: "2-3 days", Cost: 300, Selected: true},
		{ID: "pickup", Name: "Store pickup", Description: "82 Mira St, Krasnoyarsk", Cost: 0},
		{ID: "post", Name: "Postal service", Description: "5-7 days", Cost: 200},
		{ID: "express", Name: "Express delivery", Description: "1-2 days", Cost: 500},
	}
}

func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "card", Name: "Card online", Selected: true},
		{ID: "paypal", Name: "PayPal"},
		{ID: "cash", Name: "Cash"},
		{ID: "sber", Name: "Sberbank"},
		{ID: "qiwi", Name: "QIWI"},
		{ID: "yumoney", Name: "YooMoney"},
	}
}
