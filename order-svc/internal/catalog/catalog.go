// Package catalog ships the cafe's starter menu used to seed an empty inventory.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"harveys-cafe/order-svc/internal/domain"
)

//go:embed menu.json
var defaultMenu []byte

func Default() ([]domain.MenuItem, error) {
	return Parse(defaultMenu)
}

func Parse(data []byte) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	for i := range items {
		if items[i].Name == "" {
			return nil, fmt.Errorf("parse catalogue: item %d has no name", i)
		}
		if items[i].Image == "" {
			items[i].Image = domain.DefaultImage
		}
		if items[i].Size == nil {
			items[i].Size = []string{}
		}
	}
	return items, nil
}
