package http

import (
	"log"
	"net/http"
	"time"

	"github.com/edrone/storefront/internal/domain"
	"github.com/edrone/storefront/internal/ledger"
)

type OrderHandler struct {
	ledger *ledger.Ledger
}

func NewOrderHandler(l *ledger.Ledger) *OrderHandler {
	return &OrderHandler{ledger: l}
}

type CheckoutResponseDTO struct {
	Order *domain.Order `json:"order"`
}

// Checkout converts the cart into a persisted order. An empty cart is a
// no-op and answers 200 with a null order; a created order answers 201.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.ledger.Checkout(r.Context())
	if err != nil {
		log.Printf("checkout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "store_failure", "could not persist order")
		return
	}

	if order == nil {
		respondJSON(w, http.StatusOK, CheckoutResponseDTO{})
		return
	}
	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{Order: order})
}

const dateLayout = "2006-01-02"

// ListOrders returns the order history newest-first, optionally bounded by
// the inclusive from/to date query parameters (YYYY-MM-DD, UTC).
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filter ledger.Filter

	if from := r.URL.Query().Get("from"); from != "" {
		ts, err := time.ParseInLocation(dateLayout, from, time.UTC)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		filter.From = ts
	}

	if to := r.URL.Query().Get("to"); to != "" {
		ts, err := time.ParseInLocation(dateLayout, to, time.UTC)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		filter.To = ts
	}

	orders, err := h.ledger.ListOrders(r.Context(), filter)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		respondError(w, http.StatusInternalServerError, "store_failure", "could not read order history")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
