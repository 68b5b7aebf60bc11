package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"harveys-cafe/order-svc/internal/catalog"
	"harveys-cafe/order-svc/internal/domain"

	"github.com/google/uuid"
)

type MenuService struct {
	repo      MenuRepository
	publisher EventPublisher
	clock     Clock
	catalogue func() ([]domain.MenuItem, error)
}

func NewMenuService(repo MenuRepository, publisher EventPublisher) *MenuService {
	return &MenuService{
		repo:      repo,
		publisher: publisher,
		clock:     SystemClock{},
		catalogue: catalog.Default,
	}
}

func (s *MenuService) WithCatalogue(load func() ([]domain.MenuItem, error)) *MenuService {
	s.catalogue = load
	return s
}

// List returns the customer menu with remaining counts capped at the daily cap.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	displayed := make([]domain.MenuItem, len(items))
	for i, item := range items {
		displayed[i] = item.Displayed()
	}
	return displayed, nil
}

func (s *MenuService) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	item.ID = uuid.NewString()
	item.Name = strings.TrimSpace(item.Name)
	if item.Image == "" {
		item.Image = domain.DefaultImage
	}
	if item.Size == nil {
		item.Size = []string{}
	}
	item.DailyCap = domain.DailyCap
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Size == nil {
		item.Size = []string{}
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	s.publishStock(ctx, item)
	return nil
}

// SetStock overwrites the remaining count. Any non-negative value is accepted,
// including values above the daily cap.
func (s *MenuService) SetStock(ctx context.Context, id string, count int) (*domain.MenuItem, error) {
	if count < 0 {
		return nil, &ValidationError{Problems: []string{"available_count must be non-negative"}}
	}
	if err := s.repo.SetAvailableCount(ctx, id, count); err != nil {
		return nil, err
	}
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishStock(ctx, item)
	return item, nil
}

// Import inserts catalogue items whose names are not already on the menu.
func (s *MenuService) Import(ctx context.Context) (int, error) {
	defaults, err := s.catalogue()
	if err != nil {
		return 0, err
	}
	existing, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(existing))
	for _, item := range existing {
		known[domain.NormalizeName(item.Name)] = true
	}

	inserted := 0
	for _, item := range defaults {
		if known[domain.NormalizeName(item.Name)] {
			continue
		}
		item.AvailableCount = domain.DailyCap
		if err := s.Create(ctx, &item); err != nil {
			return inserted, fmt.Errorf("import %q: %w", item.Name, err)
		}
		known[domain.NormalizeName(item.Name)] = true
		inserted++
	}
	log.Printf("Imported %d catalogue items", inserted)
	return inserted, nil
}

func (s *MenuService) publishStock(ctx context.Context, item *domain.MenuItem) {
	if s.publisher == nil {
		return
	}
	event := domain.StockEvent{
		Type:           domain.EventStockChanged,
		MenuItemID:     item.ID,
		Name:           item.Name,
		AvailableCount: item.AvailableCount,
		Timestamp:      s.clock.Now().UTC(),
	}
	if err := s.publisher.PublishStockEvent(ctx, event); err != nil {
		log.Printf("WARN: publish stock change for %s: %v", item.Name, err)
	}
}

func validateMenuItem(item *domain.MenuItem) error {
	verr := &ValidationError{}
	if strings.TrimSpace(item.Name) == "" {
		verr.add("name is required")
	}
	if len(item.Price) == 0 {
		verr.add("at least one price is required")
	}
	for i, price := range item.Price {
		if _, err := domain.ParsePrice(price); err != nil {
			verr.add(fmt.Sprintf("price[%d]: %v", i, err))
		}
	}
	if item.AvailableCount < 0 {
		verr.add("available_count must be non-negative")
	}
	return verr.orNil()
}
