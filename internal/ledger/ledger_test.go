package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrone/storefront/internal/domain"
	"github.com/edrone/storefront/internal/kv"
)

func setupLedger(t *testing.T) (*Ledger, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func product(id int64, priceStr string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     fmt.Sprintf("Product %d", id),
		Price:    decimal.RequireFromString(priceStr),
		Category: domain.CategoryModa,
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/p%d/400/300", id),
	}
}

func TestAddItem_MergesByProductID(t *testing.T) {
	l, _ := setupLedger(t)

	l.AddItem(product(1, "10.00"), 2)
	l.AddItem(product(1, "10.00"), 3)
	l.AddItem(product(1, "10.00"), 1)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddItem_CoercesQuantityToOne(t *testing.T) {
	l, _ := setupLedger(t)

	l.AddItem(product(1, "10.00"), 0)
	l.AddItem(product(2, "5.00"), -7)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAddItem_SnapshotsProductFields(t *testing.T) {
	l, _ := setupLedger(t)

	p := product(3, "249.50")
	l.AddItem(p, 1)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, p.Name, items[0].Name)
	assert.True(t, p.Price.Equal(items[0].Price))
	assert.Equal(t, p.ImageURL, items[0].ImageURL)
}

func TestSetItemQuantity_Replaces(t *testing.T) {
	l, _ := setupLedger(t)

	l.AddItem(product(1, "10.00"), 2)
	l.SetItemQuantity(1, 5)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestSetItemQuantity_BelowOneRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1, -100} {
		l, _ := setupLedger(t)
		l.AddItem(product(1, "10.00"), 2)

		l.SetItemQuantity(1, quantity)

		assert.Empty(t, l.Items(), "quantity %d should remove the line", quantity)
	}
}

func TestSetItemQuantity_UnknownIDIsNoop(t *testing.T) {
	l, _ := setupLedger(t)
	l.AddItem(product(1, "10.00"), 2)

	l.SetItemQuantity(99, 5)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	l, _ := setupLedger(t)
	l.AddItem(product(1, "10.00"), 2)
	l.AddItem(product(2, "5.00"), 1)

	l.RemoveItem(1)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)

	// Removing an absent id is a no-op.
	l.RemoveItem(99)
	assert.Len(t, l.Items(), 1)
}

func TestSubtotal(t *testing.T) {
	l, _ := setupLedger(t)

	assert.True(t, l.Subtotal().IsZero())

	l.AddItem(product(1, "10.00"), 2)
	l.AddItem(product(2, "5.00"), 1)

	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("25.00")),
		"subtotal was %s", l.Subtotal())
}

func TestSubtotal_NoFloatDrift(t *testing.T) {
	l, _ := setupLedger(t)

	// 0.10 * 3 trips up binary floating point; decimals must not.
	l.AddItem(product(1, "0.10"), 3)

	assert.Equal(t, "0.30", l.Subtotal().StringFixed(2))
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	l, store := setupLedger(t)
	checkoutAt := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return checkoutAt }

	l.AddItem(product(1, "10.00"), 2)
	l.AddItem(product(2, "5.00"), 1)

	order, err := l.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, checkoutAt, order.Date)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("25.00")))

	// Cart is empty afterwards.
	assert.Empty(t, l.Items())
	assert.True(t, l.Subtotal().IsZero())

	// Exactly one order was persisted.
	raw, err := store.Get(context.Background(), HistoryKey)
	require.NoError(t, err)
	var stored []domain.Order
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 1)
}

func TestCheckout_EmptyCartIsNoop(t *testing.T) {
	l, store := setupLedger(t)

	order, err := l.Checkout(context.Background())
	require.NoError(t, err)
	assert.Nil(t, order)

	_, err = store.Get(context.Background(), HistoryKey)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound, "no-op checkout must not touch history")
}

func TestCheckout_TwiceOnlyFirstPersists(t *testing.T) {
	l, _ := setupLedger(t)
	l.AddItem(product(1, "10.00"), 1)

	first, err := l.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := l.Checkout(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second)

	orders, err := l.ListOrders(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckout_AppendsToExistingHistory(t *testing.T) {
	l, _ := setupLedger(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ts := base
	l.now = func() time.Time { return ts }

	for i := 0; i < 3; i++ {
		l.AddItem(product(int64(i+1), "10.00"), 1)
		_, err := l.Checkout(context.Background())
		require.NoError(t, err)
		ts = ts.Add(24 * time.Hour)
	}

	orders, err := l.ListOrders(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// Newest first, and nothing earlier was mutated.
	assert.Equal(t, base.Add(48*time.Hour), orders[0].Date)
	assert.Equal(t, base, orders[2].Date)
	assert.Equal(t, int64(1), orders[2].Items[0].ID)
}

func TestCheckout_DistinctOrderIDs(t *testing.T) {
	l, _ := setupLedger(t)
	fixed := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		l.AddItem(product(1, "10.00"), 1)
		order, err := l.Checkout(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}
}

// failingStore wraps a Store and fails writes on demand.
type failingStore struct {
	kv.Store
	failSet bool
}

var errStoreDown = errors.New("store down")

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errStoreDown
	}
	return f.Store.Set(ctx, key, value)
}

func TestCheckout_PersistFailureKeepsCart(t *testing.T) {
	store := &failingStore{Store: kv.NewMemoryStore(), failSet: true}
	l := New(store)
	l.AddItem(product(1, "10.00"), 2)

	order, err := l.Checkout(context.Background())
	require.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, order)

	// Cart must survive so the user can retry.
	require.Len(t, l.Items(), 1)
	assert.Equal(t, 2, l.Items()[0].Quantity)

	// Retry after the store recovers.
	store.failSet = false
	order, err = l.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Empty(t, l.Items())
}

func TestListOrders_EmptyHistory(t *testing.T) {
	l, _ := setupLedger(t)

	orders, err := l.ListOrders(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestListOrders_NewestFirst(t *testing.T) {
	l, _ := setupLedger(t)
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return ts }

	for i := 0; i < 4; i++ {
		l.AddItem(product(1, "10.00"), 1)
		_, err := l.Checkout(context.Background())
		require.NoError(t, err)
		ts = ts.Add(72 * time.Hour)
	}

	orders, err := l.ListOrders(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, orders, 4)

	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].Date.After(orders[i-1].Date),
			"orders must be in non-increasing date order")
	}
}

func TestListOrders_DateRangeInclusive(t *testing.T) {
	l, _ := setupLedger(t)

	dates := []time.Time{
		time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		d := d
		l.now = func() time.Time { return d }
		l.AddItem(product(int64(i+1), "10.00"), 1)
		_, err := l.Checkout(context.Background())
		require.NoError(t, err)
	}

	filter := Filter{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	orders, err := l.ListOrders(context.Background(), filter)
	require.NoError(t, err)

	// Bounds are inclusive on the calendar date: the 00:00:01 June 1 and
	// 23:59:59 June 30 orders are in, May 31 and July 1 are out.
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, time.June, o.Date.Month())
	}
}

func TestListOrders_ExampleScenario(t *testing.T) {
	l, _ := setupLedger(t)
	l.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	l.AddItem(product(1, "10.00"), 2)
	l.AddItem(product(2, "5.00"), 1)
	assert.Equal(t, "25.00", l.Subtotal().StringFixed(2))

	order, err := l.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25.00", order.Total.StringFixed(2))

	inRange, err := l.ListOrders(context.Background(), Filter{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	outOfRange, err := l.ListOrders(context.Background(), Filter{
		To: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, outOfRange)
}

func TestListOrders_OnlyFromBound(t *testing.T) {
	l, _ := setupLedger(t)
	l.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	l.AddItem(product(1, "10.00"), 1)
	_, err := l.Checkout(context.Background())
	require.NoError(t, err)

	orders, err := l.ListOrders(context.Background(), Filter{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = l.ListOrders(context.Background(), Filter{
		From: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderSnapshotDoesNotAliasCart(t *testing.T) {
	l, _ := setupLedger(t)
	l.AddItem(product(1, "10.00"), 2)

	order, err := l.Checkout(context.Background())
	require.NoError(t, err)

	// Refill the cart and mutate it; the persisted order must be unaffected.
	l.AddItem(product(1, "10.00"), 9)
	l.SetItemQuantity(1, 4)

	assert.Equal(t, 2, order.Items[0].Quantity)

	orders, err := l.ListOrders(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}
