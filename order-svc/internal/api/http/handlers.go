package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"harveys-cafe/order-svc/internal/auth"
	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/service"

	"github.com/gorilla/mux"
)

const orderCreatedMessage = "Order request created successfully. Waiting for admin approval."

type Handler struct {
	Orders service.OrderServiceInterface
	Menu   service.MenuServiceInterface
	Carts  service.CartServiceInterface
	Reset  service.Resetter
	Auth   service.AuthServiceInterface
	// AdminGuard wraps every /api/admin route except login.
	AdminGuard mux.MiddlewareFunc
}

func NewHandler(orders service.OrderServiceInterface, menu service.MenuServiceInterface, carts service.CartServiceInterface,
	reset service.Resetter, authSvc service.AuthServiceInterface, guard mux.MiddlewareFunc) *Handler {
	return &Handler{
		Orders:     orders,
		Menu:       menu,
		Carts:      carts,
		Reset:      reset,
		Auth:       authSvc,
		AdminGuard: guard,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/carts/{cartId}", h.getCart).Methods("GET")
	r.HandleFunc("/api/carts/{cartId}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/carts/{cartId}/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/carts/{cartId}/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/carts/{cartId}/items/{itemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/admin/login", h.login).Methods("POST")

	admin := r.PathPrefix("/api/admin").Subrouter()
	if h.AdminGuard != nil {
		admin.Use(h.AdminGuard)
	}
	admin.HandleFunc("/orders", h.listOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/approve", h.approveOrder).Methods("POST")
	admin.HandleFunc("/orders/{id}/cancel", h.cancelOrder).Methods("POST")
	admin.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/stats", h.getStats).Methods("GET")

	admin.HandleFunc("/menu", h.listAllMenu).Methods("GET")
	admin.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	admin.HandleFunc("/menu/import", h.importMenu).Methods("POST")
	admin.HandleFunc("/menu/{id}", h.updateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu/{id}/stock", h.setStock).Methods("PUT")
	admin.HandleFunc("/inventory/reset", h.resetInventory).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}

	order, err := h.Orders.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Invalid order request", err.Error(), "validation_failed")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store order", err.Error(), "store_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   order,
		"message": orderCreatedMessage,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{Query: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid status filter", err.Error(), "invalid_status")
			return
		}
		filter.Status = status
	}

	orders, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) approveOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	logStatusChange(r, order.ID, order.Status)
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.Orders.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	logStatusChange(r, mux.Vars(r)["id"], domain.StatusCancelled)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}
	status, err := domain.ParseStatus(body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	if status == domain.StatusCancelled {
		result, err := h.Orders.Cancel(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		logStatusChange(r, id, domain.StatusCancelled)
		writeJSON(w, http.StatusOK, result)
		return
	}

	order, err := h.Orders.Transition(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	logStatusChange(r, id, order.Status)
	writeJSON(w, http.StatusOK, order)
}

// logStatusChange records which administrator moved an order.
func logStatusChange(r *http.Request, orderID string, status domain.Status) {
	actor := "unknown"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actor = claims.Email
	}
	log.Printf("Order %s marked %s by %s", orderID, status, actor)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Orders.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}
	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", "", "validation_failed")
		return
	}

	token, expires, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password", "", "invalid_credentials")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"expiresAt": expires,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, details, code string) {
	writeJSON(w, status, map[string]string{
		"message": message,
		"details": details,
		"code":    code,
	})
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var violation *cart.Violation
	switch {
	case errors.As(err, &violation):
		writeError(w, http.StatusUnprocessableEntity, violation.Message, "", violation.Code())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error(), "validation_failed")
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status", err.Error(), "invalid_status")
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, service.ErrEmptyCartID):
		writeError(w, http.StatusBadRequest, err.Error(), "", "invalid_request")
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found", "", "not_found")
	case errors.Is(err, domain.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "Menu item not found", "", "not_found")
	case errors.Is(err, cart.ErrLineNotFound):
		writeError(w, http.StatusNotFound, "Cart item not found", "", "not_found")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Order cannot move to that status", err.Error(), "invalid_transition")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error(), "internal")
	}
}
