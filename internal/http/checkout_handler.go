package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/BhautikKhunt0/resin-store/internal/service"
)

type CheckoutManager interface {
	Quote(ctx context.Context, userID, region string) (*service.Quote, error)
	Submit(ctx context.Context, userID string, fields service.CustomerFields) (*service.SubmitResult, error)
}

type CheckoutHandler struct {
	checkout CheckoutManager
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutManager, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type QuoteRequestDTO struct {
	Region string `json:"region"`
}

// Quote prices the current cart for a destination region. Safe to call
// on every form change.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	quote, err := h.checkout.Quote(ctx, sessionID, req.Region)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Submit places the order. On success the response carries the stored
// order and, when a destination number is configured, the messaging
// deep link the client should open.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var fields service.CustomerFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.checkout.Submit(ctx, sessionID, fields)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
