package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, admin func(http.Handler) http.Handler) (*chi.Mux, Service) {
	t.Helper()
	svc, _ := newTestService(t, false)
	router := chi.NewRouter()
	NewHandler(svc, admin).RegisterRoutes(router)
	return router, svc
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListAndTotal(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/inventory/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []ProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 3)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/total", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_quantity":850}`, rec.Body.String())
}

func TestHandler_PlaceOrder(t *testing.T) {
	router, svc := newTestRouter(t, nil)
	products, err := svc.ListProducts(context.Background(), true)
	require.NoError(t, err)
	id := products[2].ID.String()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{
		Items: []OrderItemRequest{{ProductID: id, Quantity: 250}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var result OrderResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 125000.0, result.Total)

	// Depleted products drop out of the default listing.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/products", nil)
	var active []ProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Len(t, active, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/products?all=true", nil)
	var all []ProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{
		Items: []OrderItemRequest{{ProductID: id, Quantity: 1}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_ErrorStatuses(t *testing.T) {
	router, svc := newTestRouter(t, nil)
	products, err := svc.ListProducts(context.Background(), true)
	require.NoError(t, err)
	id := products[0].ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"bad id", http.MethodGet, "/api/v1/inventory/products/xyz", nil, http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/v1/inventory/products/00000000-0000-0000-0000-000000000001", nil, http.StatusNotFound},
		{"too many", http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: id, Quantity: 101}}}, http.StatusConflict},
		{"zero quantity", http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: id, Quantity: 0}}}, http.StatusBadRequest},
		{"empty order", http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{}, http.StatusBadRequest},
		{"negative stock", http.MethodPatch, fmt.Sprintf("/api/v1/inventory/products/%s/stock", id), map[string]int{"quantity": -1}, http.StatusBadRequest},
		{"bad product", http.MethodPost, "/api/v1/inventory/products", AddProductRequest{Name: "X", Price: -1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_AdminRoutes(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	router, svc := newTestRouter(t, deny)
	products, err := svc.ListProducts(context.Background(), true)
	require.NoError(t, err)
	id := products[0].ID.String()

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/inventory/products/"+id+"/stock", map[string]int{"quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/inventory/products/"+id, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Public routes stay open.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/products/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_AdminLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory/products", AddProductRequest{Name: "Cable", Price: 3, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p ProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.IsActive)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/inventory/products/"+p.ID.String()+"/availability", map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.False(t, p.IsActive)
	assert.Equal(t, 2, p.Quantity)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/inventory/orders", PlaceOrderRequest{
		Items: []OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/inventory/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/inventory/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, 3, s.ProductCount)
	assert.Equal(t, 850, s.TotalQuantity)
}
