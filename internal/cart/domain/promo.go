package domain

import "strings"

type PromoKind string

const (
	PromoPercentage   PromoKind = "percentage"
	PromoFreeShipping PromoKind = "free_shipping"
)

// CategoryAll marks a promo code with no category restriction.
const CategoryAll = "all"

// PromoCode is static reference data. Codes match case-insensitively; Value
// is a percentage magnitude and meaningless for free-shipping codes.
type PromoCode struct {
	Code        string
	Description string
	Kind        PromoKind
	Value       int64
	MinOrder    int64
	Category    string
}

// AppliesTo reports whether line falls under the promo's category. The
// category tag is matched against the line's category label, so "manga"
// covers "Manga / Shonen".
func (p PromoCode) AppliesTo(line Line) bool {
	if p.Category == "" || p.Category == CategoryAll {
		return true
	}
	return strings.Contains(strings.ToLower(line.Category), strings.ToLower(p.Category))
}

func DefaultPromoCodes() []PromoCode {
	return []PromoCode{
		{Code: "WELCOME10", Description: "10% off for new customers", Kind: PromoPercentage, Value: 10, MinOrder: 0, Category: CategoryAll},
		{Code: "FREESHIP", Description: "Free shipping on orders from 2000", Kind: PromoFreeShipping, MinOrder: 2000, Category: CategoryAll},
		{Code: "ANIME15", Description: "15% off all anime merch", Kind: PromoPercentage, Value: 15, MinOrder: 1000, Category: "merch"},
		{Code: "MANGA20", Description: "20% off all manga", Kind: PromoPercentage, Value: 20, MinOrder: 1500, Category: "manga"},
		{Code: "SUMMER2024", Description: "25% summer discount on clothing", Kind: PromoPercentage, Value: 25, MinOrder: 2000, Category: "clothing"},
	}
}
