package httpapi

import (
	"encoding/json"
	"net/http"

	"harveys-cafe/order-svc/internal/cart"

	"github.com/gorilla/mux"
)

type cartResponse struct {
	Items []cart.Item `json:"items"`
	Count int         `json:"count"`
	Total string      `json:"total"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{Items: c.Items, Count: c.Count(), Total: c.Total().StringFixed(2)}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Carts.Get(r.Context(), mux.Vars(r)["cartId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Item     cart.Item `json:"item"`
		Quantity int       `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	c, err := h.Carts.AddItem(r.Context(), mux.Vars(r)["cartId"], body.Item, body.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}

	vars := mux.Vars(r)
	c, err := h.Carts.UpdateItem(r.Context(), vars["cartId"], vars["itemId"], body.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := h.Carts.RemoveItem(r.Context(), vars["cartId"], vars["itemId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), mux.Vars(r)["cartId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
