package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed catalog categories.
type Category string

const (
	CategoryModa             Category = "Moda"
	CategoryCelulares        Category = "Celulares"
	CategoryComida           Category = "Comida"
	CategoryProdutosDeBeleza Category = "Produtos de Beleza"
)

// Product is read-only reference data supplied by the catalog.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
	ImageURL string          `json:"imageUrl"`
}

// CartItem is one line of the cart. ID equals the source product's ID and
// acts as the merge key; the display fields are snapshots taken when the
// product was added.
type CartItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price * quantity for this line.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItem is structurally identical to CartItem; orders store a frozen
// copy of the cart lines at checkout time.
type OrderItem = CartItem

// Order is an immutable record of a completed checkout. Total is computed
// once at checkout and persisted, never recomputed.
type Order struct {
	ID    string          `json:"id"`
	Date  time.Time       `json:"date"`
	Items []OrderItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
}
