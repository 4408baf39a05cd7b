package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
	"github.com/BhautikKhunt0/resin-store/internal/repository"
)

type cartManagerMock struct {
	cart *domain.Cart
	err  error
}

func (m cartManagerMock) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m cartManagerMock) AddItem(ctx context.Context, userID string, productID int64, sizeLabel string, quantity int) error {
	return m.err
}

func (m cartManagerMock) UpdateQuantity(ctx context.Context, userID string, productID int64, sizeLabel string, quantity int) error {
	return m.err
}

func (m cartManagerMock) RemoveItem(ctx context.Context, userID string, productID int64, sizeLabel string) error {
	return m.err
}

func (m cartManagerMock) ClearCart(ctx context.Context, userID string) error {
	return m.err
}

func withSession(request *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(request.Context(), sessionIDKey, sessionID)
	return request.WithContext(ctx)
}

func withProductIDParam(request *http.Request, productID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("product_id", productID)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))
}

func testCart() *domain.Cart {
	return &domain.Cart{
		UserID: "sess-1",
		Items: []domain.CartItem{
			{ProductID: 1, Name: "Ocean Coaster", UnitPrice: decimal.NewFromInt(500), Quantity: 2, SizeLabel: "250g"},
		},
	}
}

func TestGetCart_Success(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/", nil), "sess-1")

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.UserID != "sess-1" {
		t.Errorf("Expected user id 'sess-1', got '%s'", response.UserID)
	}
	if len(response.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(response.Items))
	}
}

func TestGetCart_MissingSession(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	// No session in context

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "unauthorized" {
		t.Errorf("Expected error code 'unauthorized', got '%s'", response.Code)
	}
}

func TestAddItem_Created(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	req := &AddItemRequestDTO{ProductID: 1, Quantity: 2, SizeLabel: "250g"}
	reqBytes, _ := json.Marshal(req)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "sess-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(response.Items))
	}
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/items", bytes.NewReader([]byte("invalid json"))), "sess-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	tests := []struct {
		name      string
		productID int64
	}{
		{"zero product_id", 0},
		{"negative product_id", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AddItemRequestDTO{ProductID: tt.productID, Quantity: 2}
			reqBytes, _ := json.Marshal(req)
			recorder := httptest.NewRecorder()
			request := withSession(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "sess-1")

			handler.AddItem(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_product_id" {
				t.Errorf("Expected error code 'invalid_product_id', got '%s'", response.Code)
			}
		})
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	tests := []struct {
		name     string
		quantity int
	}{
		{"zero quantity", 0},
		{"negative quantity", -1},
		{"quantity too high", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AddItemRequestDTO{ProductID: 1, Quantity: tt.quantity}
			reqBytes, _ := json.Marshal(req)
			recorder := httptest.NewRecorder()
			request := withSession(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "sess-1")

			handler.AddItem(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_quantity" {
				t.Errorf("Expected error code 'invalid_quantity', got '%s'", response.Code)
			}
		})
	}
}

func TestAddItem_ProductNotFound(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{err: repository.ErrProductNotFound}, 5*time.Second)

	req := &AddItemRequestDTO{ProductID: 42, Quantity: 1}
	reqBytes, _ := json.Marshal(req)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "sess-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "not_found" {
		t.Errorf("Expected error code 'not_found', got '%s'", response.Code)
	}
}

func TestUpdateQuantity_Success(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	req := &UpdateQuantityRequestDTO{Quantity: 5, SizeLabel: "250g"}
	reqBytes, _ := json.Marshal(req)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("PUT", "/items/1", bytes.NewReader(reqBytes)), "sess-1")
	request = withProductIDParam(request, "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}

func TestUpdateQuantity_ZeroPrunesLine(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: &domain.Cart{UserID: "sess-1"}}, 5*time.Second)

	req := &UpdateQuantityRequestDTO{Quantity: 0, SizeLabel: "250g"}
	reqBytes, _ := json.Marshal(req)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("PUT", "/items/1", bytes.NewReader(reqBytes)), "sess-1")
	request = withProductIDParam(request, "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}

func TestUpdateQuantity_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: testCart()}, 5*time.Second)

	tests := []struct {
		name      string
		productID string
	}{
		{"non-numeric product_id", "abc"},
		{"zero product_id", "0"},
		{"negative product_id", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &UpdateQuantityRequestDTO{Quantity: 5}
			reqBytes, _ := json.Marshal(req)
			recorder := httptest.NewRecorder()
			request := withSession(httptest.NewRequest("PUT", "/items/"+tt.productID, bytes.NewReader(reqBytes)), "sess-1")
			request = withProductIDParam(request, tt.productID)

			handler.UpdateQuantity(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}
		})
	}
}

func TestUpdateQuantity_ItemNotFound(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{err: repository.ErrItemNotFound}, 5*time.Second)

	req := &UpdateQuantityRequestDTO{Quantity: 5}
	reqBytes, _ := json.Marshal(req)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("PUT", "/items/1", bytes.NewReader(reqBytes)), "sess-1")
	request = withProductIDParam(request, "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestRemoveItem_Success(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: &domain.Cart{UserID: "sess-1"}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/items/1?size_label=250g", nil), "sess-1")
	request = withProductIDParam(request, "1")

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestClearCart_Success(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{cart: &domain.Cart{UserID: "sess-1"}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/", nil), "sess-1")

	handler.ClearCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}

func TestClearCart_MissingSession(t *testing.T) {
	handler := NewCartHandler(cartManagerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/", nil)

	handler.ClearCart(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
