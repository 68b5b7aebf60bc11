package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// DailyCap is the remaining count every item is restored to at the daily reset.
	DailyCap     = 12
	DefaultImage = "/menuimages/vegroll.png"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type MenuItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Price          []string  `json:"price"`
	Size           []string  `json:"size"`
	Type           string    `json:"type"`
	Image          string    `json:"image"`
	AvailableCount int       `json:"available_count"`
	DailyCap       int       `json:"daily_cap"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Displayed caps the remaining count shown on the customer menu at the daily cap.
func (m MenuItem) Displayed() MenuItem {
	limit := m.DailyCap
	if limit <= 0 {
		limit = DailyCap
	}
	if m.AvailableCount > limit {
		m.AvailableCount = limit
	}
	return m
}

// NormalizeName is the key used for name-based inventory matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsPlaceholderID reports whether a line item id refers to the bundled static
// menu rather than a stored inventory record.
func IsPlaceholderID(id string) bool {
	return id == "" || strings.HasPrefix(id, "static")
}
