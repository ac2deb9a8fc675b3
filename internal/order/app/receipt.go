package app

import (
	"fmt"
	"strings"

	"github.com/ankalaev/animanga-shop/internal/order/domain"
)

const receiptRule = "----------------------------------------"

// RenderReceipt produces the plain-text key/value receipt offered to the
// customer after checkout.
func RenderReceipt(o domain.Order) string {
	var b strings.Builder

	line := func(k, v string) { fmt.Fprintf(&b, "%s: %s\n", k, v) }
	head := func(s string) { b.WriteString(s + "\n") }

	head("AniManga Paradise receipt")
	head(receiptRule)
	line("Order number", o.Number)
	line("Date", o.CreatedAt.Format("02.01.2006 15:04"))
	line("Status", string(o.Status))
	head(receiptRule)

	head("CUSTOMER")
	name := o.Customer.FirstName
	if o.Customer.LastName != "" {
		name += " " + o.Customer.LastName
	}
	line("Name", name)
	line("Phone", o.Customer.Phone)
	line("Email", o.Customer.Email)
	addr := o.Customer.Address
	if addr == "" {
		addr = "Store pickup"
	}
	line("Address", addr)
	head(receiptRule)

	head("ITEMS")
	for i, it := range o.Items {
		line(
			fmt.Sprintf("%d. %s", i+1, it.Name),
			fmt.Sprintf("%d x %d = %d", it.Quantity, it.Price, it.LineTotal()),
		)
	}
	head(receiptRule)

	head("TOTALS")
	line("Items", fmt.Sprintf("%d", o.Subtotal))
	line("Discount", fmt.Sprintf("%d", o.Discount))
	line("Shipping", fmt.Sprintf("%d", o.Shipping))
	line("TO PAY", fmt.Sprintf("%d", o.Total))
	head(receiptRule)

	line("PAYMENT", o.PaymentMethod)
	line("DELIVERY", o.DeliveryMethod)
	head(receiptRule)

	comment := o.Customer.Comment
	if comment == "" {
		comment = "none"
	}
	line("COMMENT", comment)
	head(receiptRule)

	head("THANK YOU FOR YOUR PURCHASE!")
	line("AniManga Paradise", "82 Mira St, Krasnoyarsk")
	line("Phone", "+7 (391) 123-45-67")
	line("Email", "info@animanga.ru")

	return b.String()
}
