package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"harveys-cafe/feed-svc/internal/domain"
	"harveys-cafe/feed-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Subscriber interface {
	ServeWS(channel string) http.HandlerFunc
}

type Handler struct {
	Stats service.StatsServiceInterface
	Hub   Subscriber
}

func NewHandler(stats service.StatsServiceInterface, hub Subscriber) *Handler {
	return &Handler{Stats: stats, Hub: hub}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/daily", h.getDailyStats).Methods("GET")
	r.HandleFunc("/ws/menu", h.Hub.ServeWS(domain.ChannelMenu))
	r.HandleFunc("/ws/orders", h.Hub.ServeWS(domain.ChannelOrders))
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

const shutdownTimeout = 10 * time.Second

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("Feed Service starting on %s", addr)
	return Serve(ctx, ln, handler)
}

func Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{Handler: handler}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Feed Service shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "feed-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDailyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: daily stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load daily stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
