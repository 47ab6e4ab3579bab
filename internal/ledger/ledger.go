// Package ledger owns the ephemeral shopping cart, converts it to a
// persisted order on checkout, and answers date-filtered queries over the
// order history.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edrone/storefront/internal/domain"
	"github.com/edrone/storefront/internal/kv"
)

// Ledger is the cart and order core. The cart lives only in memory; the
// order history lives in the store under a single key. A mutex serializes
// all operations so checkout's persist-then-clear sequence can never
// interleave with another cart mutation.
type Ledger struct {
	mu    sync.Mutex
	store kv.Store
	items []domain.CartItem

	now   func() time.Time
	newID func(time.Time) string
}

// New creates a Ledger with an empty cart on top of the given store.
func New(store kv.Store) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		newID: newOrderID,
	}
}

// newOrderID derives the order id from the checkout timestamp, with a random
// suffix so two checkouts in the same millisecond still get distinct ids.
func newOrderID(ts time.Time) string {
	return fmt.Sprintf("%d-%s", ts.UnixMilli(), uuid.New().String()[:8])
}

// AddItem puts quantity units of product into the cart. A quantity below 1
// is treated as 1. If the product is already in the cart its quantity is
// increased; the cart never holds two lines for the same product.
func (l *Ledger) AddItem(product domain.Product, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range l.items {
		if l.items[i].ID == product.ID {
			l.items[i].Quantity += quantity
			return
		}
	}

	l.items = append(l.items, domain.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
		Quantity: quantity,
	})
}

// SetItemQuantity replaces the quantity of the line with the given item id.
// A quantity below 1 removes the line. An unknown id is a no-op.
func (l *Ledger) SetItemQuantity(itemID int64, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity < 1 {
		l.removeLocked(itemID)
		return
	}

	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem removes the line with the given item id, if present.
func (l *Ledger) RemoveItem(itemID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(itemID)
}

func (l *Ledger) removeLocked(itemID int64) {
	for i, item := range l.items {
		if item.ID == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot copy of the current cart lines in insertion order.
func (l *Ledger) Items() []domain.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return snapshotItems(l.items)
}

// Subtotal returns the sum of price*quantity over the current cart lines.
func (l *Ledger) Subtotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return subtotal(l.items)
}

func subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func snapshotItems(items []domain.CartItem) []domain.CartItem {
	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)
	return snapshot
}

// Checkout converts the current cart into a persisted order and clears the
// cart. On an empty cart it returns (nil, nil). If persisting the updated
// history fails, the cart is left untouched so the caller can retry.
func (l *Ledger) Checkout(ctx context.Context) (*domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.items) == 0 {
		return nil, nil
	}

	ts := l.now().UTC()
	order := domain.Order{
		ID:    l.newID(ts),
		Date:  ts,
		Items: snapshotItems(l.items),
		Total: subtotal(l.items),
	}

	orders, err := l.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders = append(orders, order)
	if err := l.saveOrders(ctx, orders); err != nil {
		return nil, err
	}

	l.items = nil
	return &order, nil
}

// Filter bounds ListOrders by calendar date. Zero values mean unbounded.
// Both bounds are inclusive and compared on the UTC date, ignoring the
// time of day.
type Filter struct {
	From time.Time
	To   time.Time
}

func (f Filter) matches(ts time.Time) bool {
	day := dateOnly(ts)
	if !f.From.IsZero() && day.Before(dateOnly(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(dateOnly(f.To)) {
		return false
	}
	return true
}

func dateOnly(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ListOrders returns the persisted orders newest-first, restricted to the
// given filter. No stored history yields an empty result, not an error.
func (l *Ledger) ListOrders(ctx context.Context, filter Filter) ([]domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if filter.matches(order.Date) {
			result = append(result, order)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	return result, nil
}
