package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "harveys-cafe/order-svc/internal/api/http"
	"harveys-cafe/order-svc/internal/auth"
	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/mocks"
	"harveys-cafe/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type handlerMocks struct {
	orders *mocks.OrderServiceInterface
	menu   *mocks.MenuServiceInterface
	carts  *mocks.CartServiceInterface
	reset  *mocks.Resetter
	auth   *mocks.AuthServiceInterface
}

func setupTestRouter(t *testing.T, guard mux.MiddlewareFunc) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		orders: mocks.NewOrderServiceInterface(t),
		menu:   mocks.NewMenuServiceInterface(t),
		carts:  mocks.NewCartServiceInterface(t),
		reset:  mocks.NewResetter(t),
		auth:   mocks.NewAuthServiceInterface(t),
	}
	handler := httpapi.NewHandler(m.orders, m.menu, m.carts, m.reset, m.auth, guard)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const validOrderBody = `{
	"items":[{"name":"Veg Roll","price":"₹100","quantity":2,"menu_item_id":"veg-roll"}],
	"userDetails":{"name":"Asha Rao","email":"asha@example.com","phone":"+91 9000000000"},
	"visitTime":"2026-10-17T19:30:00+05:30",
	"subtotal":200,"advanceAmount":100,"remainingAmount":100,"totalAmount":200
}`

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMock   func(m handlerMocks)
		wantCode    int
		wantErrCode string
	}{
		{
			name: "created",
			body: validOrderBody,
			setupMock: func(m handlerMocks) {
				m.orders.On("Submit", mock.Anything, mock.MatchedBy(func(req service.SubmitOrderRequest) bool {
					return len(req.Items) == 1 && req.Items[0].MenuItemID == "veg-roll" && req.TotalAmount.IntPart() == 200
				})).Return(&domain.Order{ID: "ORD_1", Status: domain.StatusPending}, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid}`,
			setupMock:   func(m handlerMocks) {},
			wantCode:    http.StatusBadRequest,
			wantErrCode: "invalid_json",
		},
		{
			name: "validation failure",
			body: validOrderBody,
			setupMock: func(m handlerMocks) {
				m.orders.On("Submit", mock.Anything, mock.Anything).
					Return(nil, &service.ValidationError{Problems: []string{"visitTime is required"}}).Once()
			},
			wantCode:    http.StatusBadRequest,
			wantErrCode: "validation_failed",
		},
		{
			name: "store failure",
			body: validOrderBody,
			setupMock: func(m handlerMocks) {
				m.orders.On("Submit", mock.Anything, mock.Anything).
					Return(nil, service.ErrStoreFailed).Once()
			},
			wantCode:    http.StatusInternalServerError,
			wantErrCode: "store_failed",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			testCase.setupMock(m)

			w := serve(r, "POST", "/api/orders", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			body := decodeBody(t, w)
			if testCase.wantErrCode != "" {
				assert.Equal(t, testCase.wantErrCode, body["code"])
				return
			}
			assert.Equal(t, true, body["success"])
			assert.Equal(t, "Order request created successfully. Waiting for admin approval.", body["message"])
		})
	}
}

func TestOrderStatusHandlers(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		setupMock func(m handlerMocks)
		wantCode  int
	}{
		{
			name:   "approve",
			method: "POST",
			path:   "/api/admin/orders/ORD_1/approve",
			setupMock: func(m handlerMocks) {
				m.orders.On("Approve", mock.Anything, "ORD_1").Return(&domain.Order{ID: "ORD_1", Status: domain.StatusApproved}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "approve missing order",
			method: "POST",
			path:   "/api/admin/orders/ORD_x/approve",
			setupMock: func(m handlerMocks) {
				m.orders.On("Approve", mock.Anything, "ORD_x").Return(nil, domain.ErrOrderNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "cancel",
			method: "POST",
			path:   "/api/admin/orders/ORD_1/cancel",
			setupMock: func(m handlerMocks) {
				m.orders.On("Cancel", mock.Anything, "ORD_1").Return(&service.CancellationResult{
					Order:    &domain.Order{ID: "ORD_1", Status: domain.StatusCancelled},
					Credited: []service.StockCredit{},
					Skipped:  []string{},
				}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "status patch routes cancellation",
			method: "PATCH",
			path:   "/api/admin/orders/ORD_1/status",
			body:   `{"status":"cancelled"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("Cancel", mock.Anything, "ORD_1").Return(&service.CancellationResult{
					Order: &domain.Order{ID: "ORD_1", Status: domain.StatusCancelled},
				}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "status patch complete",
			method: "PATCH",
			path:   "/api/admin/orders/ORD_1/status",
			body:   `{"status":"completed"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("Transition", mock.Anything, "ORD_1", domain.StatusCompleted).
					Return(nil, domain.ErrInvalidTransition).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "status patch unknown status",
			method:    "PATCH",
			path:      "/api/admin/orders/ORD_1/status",
			body:      `{"status":"shipped"}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "list with status filter",
			method: "GET",
			path:   "/api/admin/orders?status=pending&q=asha",
			setupMock: func(m handlerMocks) {
				m.orders.On("List", mock.Anything, domain.OrderFilter{Status: domain.StatusPending, Query: "asha"}).
					Return([]domain.Order{}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "list all ignores status",
			method: "GET",
			path:   "/api/admin/orders?status=all",
			setupMock: func(m handlerMocks) {
				m.orders.On("List", mock.Anything, domain.OrderFilter{}).Return([]domain.Order{}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "stats",
			method: "GET",
			path:   "/api/admin/stats",
			setupMock: func(m handlerMocks) {
				m.orders.On("Stats", mock.Anything).Return(&domain.OrderStats{Pending: 1}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			testCase.setupMock(m)

			w := serve(r, testCase.method, testCase.path, testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestOrderQRCodeHandler(t *testing.T) {
	r, m := setupTestRouter(t, nil)
	m.orders.On("QRCode", mock.Anything, "ORD_1").Return([]byte("\x89PNG"), nil).Once()

	w := serve(r, "GET", "/api/orders/ORD_1/qrcode", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String())
}

func TestMenuHandlers(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		setupMock func(m handlerMocks)
		wantCode  int
	}{
		{
			name:   "public menu",
			method: "GET",
			path:   "/api/menu",
			setupMock: func(m handlerMocks) {
				m.menu.On("List", mock.Anything).Return([]domain.MenuItem{{ID: "a", Name: "Veg Roll"}}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "menu item not found",
			method: "GET",
			path:   "/api/menu/zzz",
			setupMock: func(m handlerMocks) {
				m.menu.On("Get", mock.Anything, "zzz").Return(nil, domain.ErrMenuItemNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "create defaults count to cap",
			method: "POST",
			path:   "/api/admin/menu",
			body:   `{"name":"Masala Fries","price":["₹90"]}`,
			setupMock: func(m handlerMocks) {
				m.menu.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.MenuItem) bool {
					return item.AvailableCount == domain.DailyCap
				})).Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:   "update keeps current count",
			method: "PUT",
			path:   "/api/admin/menu/veg-roll",
			body:   `{"name":"Veg Roll","price":["₹110"]}`,
			setupMock: func(m handlerMocks) {
				m.menu.On("Get", mock.Anything, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", AvailableCount: 7}, nil).Once()
				m.menu.On("Update", mock.Anything, mock.MatchedBy(func(item *domain.MenuItem) bool {
					return item.ID == "veg-roll" && item.AvailableCount == 7
				})).Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "set stock requires count",
			method:    "PUT",
			path:      "/api/admin/menu/veg-roll/stock",
			body:      `{}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "set stock negative",
			method: "PUT",
			path:   "/api/admin/menu/veg-roll/stock",
			body:   `{"available_count":-1}`,
			setupMock: func(m handlerMocks) {
				m.menu.On("SetStock", mock.Anything, "veg-roll", -1).
					Return(nil, &service.ValidationError{Problems: []string{"available_count must be non-negative"}}).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "reset inventory",
			method: "POST",
			path:   "/api/admin/inventory/reset",
			setupMock: func(m handlerMocks) {
				m.reset.On("ResetNow", mock.Anything).Return(int64(10), nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "import catalogue",
			method: "POST",
			path:   "/api/admin/menu/import",
			setupMock: func(m handlerMocks) {
				m.menu.On("Import", mock.Anything).Return(3, nil).Once()
			},
			wantCode: http.StatusOK,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			testCase.setupMock(m)

			w := serve(r, testCase.method, testCase.path, testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestCartHandlers(t *testing.T) {
	filled := &cart.Cart{Items: []cart.Item{{ID: "line-1", Name: "Veg Roll", Price: "₹100", Quantity: 2}}}

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		setupMock func(m handlerMocks)
		wantCode  int
		wantKey   string
		wantValue interface{}
	}{
		{
			name:   "get",
			method: "GET",
			path:   "/api/carts/c1",
			setupMock: func(m handlerMocks) {
				m.carts.On("Get", mock.Anything, "c1").Return(filled, nil).Once()
			},
			wantCode:  http.StatusOK,
			wantKey:   "total",
			wantValue: "200.00",
		},
		{
			name:   "add defaults quantity to one",
			method: "POST",
			path:   "/api/carts/c1/items",
			body:   `{"item":{"name":"Veg Roll","price":"₹100","category":"Rolls"}}`,
			setupMock: func(m handlerMocks) {
				m.carts.On("AddItem", mock.Anything, "c1", mock.AnythingOfType("cart.Item"), 1).Return(filled, nil).Once()
			},
			wantCode:  http.StatusOK,
			wantKey:   "count",
			wantValue: float64(2),
		},
		{
			name:   "add over limit",
			method: "POST",
			path:   "/api/carts/c1/items",
			body:   `{"item":{"name":"Veg Roll","price":"₹100"},"quantity":4}`,
			setupMock: func(m handlerMocks) {
				m.carts.On("AddItem", mock.Anything, "c1", mock.Anything, 4).Return(nil, &cart.Violation{
					Err:     cart.ErrPerItemLimit,
					Message: "You can only add up to 3 of the same item.",
				}).Once()
			},
			wantCode:  http.StatusUnprocessableEntity,
			wantKey:   "code",
			wantValue: "per_item_limit",
		},
		{
			name:   "update unknown line",
			method: "PUT",
			path:   "/api/carts/c1/items/line-9",
			body:   `{"quantity":2}`,
			setupMock: func(m handlerMocks) {
				m.carts.On("UpdateItem", mock.Anything, "c1", "line-9", 2).Return(nil, cart.ErrLineNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "remove",
			method: "DELETE",
			path:   "/api/carts/c1/items/line-1",
			setupMock: func(m handlerMocks) {
				m.carts.On("RemoveItem", mock.Anything, "c1", "line-1").Return(cart.New(), nil).Once()
			},
			wantCode:  http.StatusOK,
			wantKey:   "total",
			wantValue: "0.00",
		},
		{
			name:   "clear",
			method: "DELETE",
			path:   "/api/carts/c1",
			setupMock: func(m handlerMocks) {
				m.carts.On("Clear", mock.Anything, "c1").Return(nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			testCase.setupMock(m)

			w := serve(r, testCase.method, testCase.path, testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantKey != "" {
				assert.Equal(t, testCase.wantValue, decodeBody(t, w)[testCase.wantKey])
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	expires := time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		body      string
		setupMock func(m handlerMocks)
		wantCode  int
	}{
		{
			name: "success",
			body: `{"email":"admin@harveys.example","password":"secret"}`,
			setupMock: func(m handlerMocks) {
				m.auth.On("Login", "admin@harveys.example", "secret").Return("token-123", expires, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"admin@harveys.example","password":"nope"}`,
			setupMock: func(m handlerMocks) {
				m.auth.On("Login", "admin@harveys.example", "nope").Return("", time.Time{}, auth.ErrInvalidCredentials).Once()
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "missing fields",
			body:      `{"email":""}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			testCase.setupMock(m)

			w := serve(r, "POST", "/api/admin/login", testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	authenticator := auth.NewAuthenticator("admin@harveys.example", string(hash), "test-signing-key", time.Hour)

	r, m := setupTestRouter(t, authenticator.RequireAdmin)

	w := serve(r, "GET", "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := authenticator.Login("admin@harveys.example", "secret")
	require.NoError(t, err)

	m.orders.On("Stats", mock.Anything).Return(&domain.OrderStats{}, nil).Once()
	req := httptest.NewRequest("GET", "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	m.menu.On("List", mock.Anything).Return([]domain.MenuItem{}, nil).Once()
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/menu", "").Code)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"wrapped store error", errors.Join(service.ErrStoreFailed, context.DeadlineExceeded), http.StatusInternalServerError},
		{"empty cart id", service.ErrEmptyCartID, http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m := setupTestRouter(t, nil)
			m.orders.On("Get", mock.Anything, "ORD_1").Return(nil, testCase.err).Once()

			w := serve(r, "GET", "/api/orders/ORD_1", "")
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}
