package httpapi

import (
	"encoding/json"
	"net/http"

	"harveys-cafe/order-svc/internal/domain"

	"github.com/gorilla/mux"
)

type menuItemRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Price          []string `json:"price"`
	Size           []string `json:"size"`
	Type           string   `json:"type"`
	Image          string   `json:"image"`
	AvailableCount *int     `json:"available_count"`
}

func (req menuItemRequest) toItem() domain.MenuItem {
	item := domain.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		Type:        req.Type,
		Image:       req.Image,
	}
	if req.AvailableCount != nil {
		item.AvailableCount = *req.AvailableCount
	}
	return item
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item.Displayed())
}

func (h *Handler) listAllMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}
	item := req.toItem()
	if req.AvailableCount == nil {
		item.AvailableCount = domain.DailyCap
	}

	if err := h.Menu.Create(r.Context(), &item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}

	item := req.toItem()
	item.ID = id
	if req.AvailableCount == nil {
		current, err := h.Menu.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		item.AvailableCount = current.AvailableCount
	}

	if err := h.Menu.Update(r.Context(), &item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AvailableCount *int `json:"available_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", err.Error(), "invalid_json")
		return
	}
	if body.AvailableCount == nil {
		writeError(w, http.StatusBadRequest, "available_count is required", "", "validation_failed")
		return
	}

	item, err := h.Menu.SetStock(r.Context(), mux.Vars(r)["id"], *body.AvailableCount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) resetInventory(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Reset.ResetNow(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated":         updated,
		"available_count": domain.DailyCap,
	})
}

func (h *Handler) importMenu(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.Menu.Import(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": inserted})
}
