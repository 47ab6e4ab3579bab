package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/edrone/storefront/internal/domain"
	"github.com/edrone/storefront/internal/kv"
)

// HistoryKey is the store key holding the serialized order history.
const HistoryKey = "e-drone-orders"

// loadOrders reads the full history from the store. A missing key is an
// empty history. A value that fails to parse is logged and treated as empty
// rather than blocking the shopping flow.
func (l *Ledger) loadOrders(ctx context.Context) ([]domain.Order, error) {
	raw, err := l.store.Get(ctx, HistoryKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		log.Printf("discarding malformed order history: %v", err)
		return nil, nil
	}
	return orders, nil
}

// saveOrders writes the full history back to the store.
func (l *Ledger) saveOrders(ctx context.Context, orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal order history: %w", err)
	}

	if err := l.store.Set(ctx, HistoryKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write order history: %w", err)
	}
	return nil
}
