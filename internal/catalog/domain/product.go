package domain

// Kind groups products the way the storefront shelves them.
type Kind string

const (
	KindAll    Kind = "all"
	KindManga  Kind = "manga"
	KindManhwa Kind = "manhwa"
	KindManhua Kind = "manhua"
	KindComics Kind = "comics"
)

type AgeRating string

const (
	Age12 AgeRating = "12+"
	Age16 AgeRating = "16+"
	Age18 AgeRating = "18+"
)

type ReleaseStatus string

const (
	StatusReleased ReleaseStatus = "released"
	StatusOngoing  ReleaseStatus = "ongoing"
)

type Badge string

const (
	BadgeHit        Badge = "hit"
	BadgeNew        Badge = "new"
	BadgeSale       Badge = "sale"
	BadgeExclusive  Badge = "exclusive"
	BadgeBestseller Badge = "bestseller"
)

// Product is immutable reference data; prices are whole currency units.
type Product struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Author   string        `json:"author"`
	Category string        `json:"category"`
	Price    int64         `json:"price"`
	OldPrice int64         `json:"old_price,omitempty"`
	Genres   []string      `json:"genres"`
	Age      AgeRating     `json:"age"`
	Status   ReleaseStatus `json:"status"`
	Badge    Badge         `json:"badge,omitempty"`
	Rating   float64       `json:"rating"`
	InStock  bool          `json:"in_stock"`
	Kind     Kind          `json:"kind"`
}

type SortOrder string

const (
	SortPopular   SortOrder = "popular"
	SortNew       SortOrder = "new"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortTitle     SortOrder = "name"
)

// Filter holds every catalog listing constraint; the zero value matches
// the whole catalog.
type Filter struct {
	Kind     Kind
	Genres   []string
	Ages     []AgeRating
	Statuses []ReleaseStatus
	PriceMin int64
	PriceMax int64 // 0 means unbounded
	Search   string
	Sort     SortOrder
}

// Page is one slice of a filtered listing.
type Page struct {
	Products   []Product
	Total      int
	PageNumber int
	TotalPages int
}
