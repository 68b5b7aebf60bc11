package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"harveys-cafe/order-svc/internal/domain"
)

// DateLayout is the day marker format, DD/MM/YYYY.
const DateLayout = "02/01/2006"

type Clock interface {
	Now() time.Time
}

type MarkerStore interface {
	// LastReset returns the stored day marker, or "" when none was recorded.
	LastReset(ctx context.Context) (string, error)
	MarkReset(ctx context.Context, day string) error
}

type Inventory interface {
	ResetAvailableCounts(ctx context.Context, count int) (int64, error)
}

type StockPublisher interface {
	PublishStockEvent(ctx context.Context, event domain.StockEvent) error
}

// DailyReset restores every menu item to the daily cap once per calendar day.
type DailyReset struct {
	Inventory Inventory
	Marker    MarkerStore
	Clock     Clock
	Publisher StockPublisher
	Location  *time.Location
	Interval  time.Duration
}

func NewDailyReset(inventory Inventory, marker MarkerStore, clock Clock) *DailyReset {
	return &DailyReset{
		Inventory: inventory,
		Marker:    marker,
		Clock:     clock,
		Location:  time.Local,
		Interval:  time.Minute,
	}
}

func (d *DailyReset) Today() string {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return d.Clock.Now().In(loc).Format(DateLayout)
}

// Check resets inventory if it has not been reset today. It reports whether a
// reset happened. The marker is only written after a successful reset.
func (d *DailyReset) Check(ctx context.Context) (bool, error) {
	today := d.Today()
	last, err := d.Marker.LastReset(ctx)
	if err != nil {
		return false, fmt.Errorf("read reset marker: %w", err)
	}
	if last == today {
		return false, nil
	}

	log.Printf("Daily inventory reset due (last=%q, today=%s)", last, today)
	if _, err := d.reset(ctx, today); err != nil {
		return false, err
	}
	return true, nil
}

// ResetNow resets unconditionally and records today as done.
func (d *DailyReset) ResetNow(ctx context.Context) (int64, error) {
	return d.reset(ctx, d.Today())
}

func (d *DailyReset) reset(ctx context.Context, today string) (int64, error) {
	updated, err := d.Inventory.ResetAvailableCounts(ctx, domain.DailyCap)
	if err != nil {
		return 0, fmt.Errorf("reset inventory: %w", err)
	}
	if err := d.Marker.MarkReset(ctx, today); err != nil {
		return updated, fmt.Errorf("store reset marker: %w", err)
	}
	log.Printf("Inventory reset: %d items set to %d", updated, domain.DailyCap)

	if d.Publisher != nil {
		event := domain.StockEvent{
			Type:           domain.EventInventoryReset,
			AvailableCount: domain.DailyCap,
			Timestamp:      d.Clock.Now().UTC(),
		}
		if err := d.Publisher.PublishStockEvent(ctx, event); err != nil {
			log.Printf("WARN: publish inventory reset: %v", err)
		}
	}
	return updated, nil
}

// Run checks immediately and then every Interval until ctx is cancelled.
func (d *DailyReset) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	log.Printf("Daily reset scheduler started (interval %s)", interval)

	d.tick(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("Daily reset scheduler stopped")
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *DailyReset) tick(ctx context.Context) {
	if _, err := d.Check(ctx); err != nil {
		log.Printf("ERROR: daily inventory reset: %v", err)
	}
}
