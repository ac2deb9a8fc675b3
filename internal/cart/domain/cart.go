package domain

// Line is one product entry in the cart. At most one line exists per product
// id; re-adding a product increments Quantity instead of duplicating.
type Line struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	OldPrice  int64  `json:"old_price,omitempty"`
	Quantity  int    `json:"quantity"`
	Fandom    string `json:"fandom"`
	Size      string `json:"size,omitempty"`
}

func (l Line) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// ProductRef carries the product fields the cart denormalizes into a line.
type ProductRef struct {
	ID       int64
	Name     string
	Category string
	Price    int64
	OldPrice int64
	Size     string
}

// Fandoms is the fixed set a new line's display tag is drawn from.
var Fandoms = []string{
	"Naruto",
	"One Piece",
	"Attack on Titan",
	"Chainsaw Man",
	"My Hero Academia",
	"Pokemon",
}

// Totals is the derived pricing breakdown for the current cart state.
type Totals struct {
	Items    int
	Subtotal int64
	Discount int64
	Shipping int64
	Total    int64
}
