package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"harveys-cafe/payment-svc/internal/domain"
	"harveys-cafe/payment-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Handler struct {
	Payments service.PaymentServiceInterface
}

func NewHandler(payments service.PaymentServiceInterface) *Handler {
	return &Handler{Payments: payments}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/payments/orders", h.createOrder).Methods("POST")
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Payment Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "payment-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format"})
		return
	}

	order, err := h.Payments.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGatewayNotConfigured):
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Payment gateway configuration missing"})
		case errors.Is(err, service.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
