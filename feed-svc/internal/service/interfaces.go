package service

import (
	"context"
	"time"

	"harveys-cafe/feed-svc/internal/domain"
	"harveys-cafe/feed-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type StatsStore interface {
	Increment(ctx context.Context, date, field string, delta int64) error
	AddRevenue(ctx context.Context, date string, amount decimal.Decimal) error
	Daily(ctx context.Context, date string) (*domain.DailyStats, error)
}

type Broadcaster interface {
	Broadcast(channel string, payload []byte)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type StatsServiceInterface interface {
	Daily(ctx context.Context, date string) (*domain.DailyStats, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Handle(ctx context.Context, topic string, value []byte) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

var (
	_ StatsStore            = (*storage.RedisStats)(nil)
	_ StatsServiceInterface = (*StatsService)(nil)
	_ ConsumerInterface     = (*Consumer)(nil)
)
