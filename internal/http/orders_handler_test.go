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

type orderRepoMock struct {
	order  *domain.Order
	orders []domain.Order
	err    error

	updatedStatus domain.OrderStatus
}

func (m *orderRepoMock) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *orderRepoMock) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *orderRepoMock) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *orderRepoMock) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if m.err != nil {
		return m.err
	}
	m.updatedStatus = status
	return nil
}

func withIDParam(request *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:            1001,
		CustomerName:  "Asha Patel",
		CustomerEmail: "asha@example.com",
		TotalAmount:   decimal.NewFromInt(1050),
		Status:        domain.OrderStatusProcessing,
	}
}

func TestListOrders_Success(t *testing.T) {
	mock := &orderRepoMock{orders: []domain.Order{*testOrder()}}
	handler := NewOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 1 {
		t.Errorf("Expected 1 order, got %d", len(response))
	}
	if response[0].ID != 1001 {
		t.Errorf("Expected order id 1001, got %d", response[0].ID)
	}
}

func TestGetOrder_Success(t *testing.T) {
	mock := &orderRepoMock{order: testOrder()}
	handler := NewOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withIDParam(httptest.NewRequest("GET", "/1001", nil), "1001")

	handler.GetOrder(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID != 1001 {
		t.Errorf("Expected order id 1001, got %d", response.ID)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	mock := &orderRepoMock{err: repository.ErrOrderNotFound}
	handler := NewOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withIDParam(httptest.NewRequest("GET", "/9999", nil), "9999")

	handler.GetOrder(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "not_found" {
		t.Errorf("Expected error code 'not_found', got '%s'", response.Code)
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	mock := &orderRepoMock{order: testOrder()}
	handler := NewOrdersHandler(mock, 5*time.Second)

	tests := []struct {
		name string
		id   string
	}{
		{"non-numeric id", "abc"},
		{"zero id", "0"},
		{"negative id", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := withIDParam(httptest.NewRequest("GET", "/"+tt.id, nil), tt.id)

			handler.GetOrder(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}
		})
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	order := testOrder()
	order.Status = domain.OrderStatusShipped
	mock := &orderRepoMock{order: order}
	handler := NewOrdersHandler(mock, 5*time.Second)

	reqBytes, _ := json.Marshal(&UpdateStatusRequestDTO{Status: "SHIPPED"})
	recorder := httptest.NewRecorder()
	request := withIDParam(httptest.NewRequest("PUT", "/1001/status", bytes.NewReader(reqBytes)), "1001")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.updatedStatus != domain.OrderStatusShipped {
		t.Errorf("Expected repository to receive status SHIPPED, got %s", mock.updatedStatus)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	mock := &orderRepoMock{order: testOrder()}
	handler := NewOrdersHandler(mock, 5*time.Second)

	tests := []struct {
		name   string
		status string
	}{
		{"unknown status", "DELIVERED"},
		{"lowercase status", "shipped"},
		{"empty status", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBytes, _ := json.Marshal(&UpdateStatusRequestDTO{Status: tt.status})
			recorder := httptest.NewRecorder()
			request := withIDParam(httptest.NewRequest("PUT", "/1001/status", bytes.NewReader(reqBytes)), "1001")

			handler.UpdateStatus(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_status" {
				t.Errorf("Expected error code 'invalid_status', got '%s'", response.Code)
			}
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	mock := &orderRepoMock{err: repository.ErrOrderNotFound}
	handler := NewOrdersHandler(mock, 5*time.Second)

	reqBytes, _ := json.Marshal(&UpdateStatusRequestDTO{Status: "CANCELED"})
	recorder := httptest.NewRecorder()
	request := withIDParam(httptest.NewRequest("PUT", "/9999/status", bytes.NewReader(reqBytes)), "9999")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
