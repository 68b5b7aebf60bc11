package service

import (
	"context"
	"errors"
	"time"

	"harveys-cafe/feed-svc/internal/domain"
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

type StatsService struct {
	store    StatsStore
	clock    Clock
	location *time.Location
}

func NewStatsService(store StatsStore, location *time.Location) *StatsService {
	if location == nil {
		location = time.Local
	}
	return &StatsService{store: store, clock: SystemClock{}, location: location}
}

func (s *StatsService) WithClock(clock Clock) *StatsService {
	s.clock = clock
	return s
}

// Daily defaults to today in the service location when date is empty.
func (s *StatsService) Daily(ctx context.Context, date string) (*domain.DailyStats, error) {
	if date == "" {
		date = s.clock.Now().In(s.location).Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.store.Daily(ctx, date)
}
