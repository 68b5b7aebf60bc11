package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL   string
	PaymentSvcURL string
	FeedSvcURL    string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

// orderPrefixes are the public and admin surfaces served by order-svc.
var orderPrefixes = []string{"/api/menu", "/api/orders", "/api/carts", "/api/admin"}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Printf("PROXY: %s %s -> %s%s", r.Method, r.URL.Path, targetURL, r.URL.Path)

	upstream := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		upstream += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, upstream, r.Body)
	if err != nil {
		log.Printf("ERROR: Failed to create request: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("ERROR: Failed to proxy to %s: %v", targetURL, err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: Failed to copy response: %v", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("ROUTE: %s %s", r.Method, path)

	if hasPrefix(path, "/api/payments") {
		g.ProxyRequest(w, r, g.config.PaymentSvcURL)
		return
	}

	if hasPrefix(path, "/api/analytics") {
		g.ProxyRequest(w, r, g.config.FeedSvcURL)
		return
	}

	for _, prefix := range orderPrefixes {
		if hasPrefix(path, prefix) {
			g.ProxyRequest(w, r, g.config.OrderSvcURL)
			return
		}
	}

	log.Printf("[GATEWAY] Unmatched route: %s", path)
	writeError(w, http.StatusNotFound, "route not found")
}

// WebSocketProxy forwards upgrade requests to feed-svc; the buffered HTTPClient path cannot carry them.
func (g *Gateway) WebSocketProxy() (http.Handler, error) {
	target, err := url.Parse(g.config.FeedSvcURL)
	if err != nil {
		return nil, err
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("ERROR: Failed to proxy websocket to %s: %v", target, err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
	}
	return proxy, nil
}

func (g *Gateway) SetupRoutes() (http.Handler, error) {
	ws, err := g.WebSocketProxy()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/ws/").Handler(ws)
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r, nil
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
