package storage

import (
	"context"
	"strconv"
	"time"

	"harveys-cafe/feed-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	FieldOrdersCreated = "orders_created"
	FieldApproved      = "approved"
	FieldCancelled     = "cancelled"
	FieldPaymentOrders = "payment_orders"
	// FieldRevenuePaise keeps the approved advance total in paise so increments stay exact.
	FieldRevenuePaise = "advance_revenue_paise"

	DailyTTL = 30 * 24 * time.Hour
)

type RedisStats struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStats(client *redis.Client) *RedisStats {
	return &RedisStats{Client: client, TTL: DailyTTL}
}

func (s *RedisStats) DailyKey(date string) string {
	return "analytics:daily:" + date
}

func (s *RedisStats) Increment(ctx context.Context, date, field string, delta int64) error {
	key := s.DailyKey(date)
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, key, field, delta)
	pipe.Expire(ctx, key, s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStats) AddRevenue(ctx context.Context, date string, amount decimal.Decimal) error {
	return s.Increment(ctx, date, FieldRevenuePaise, amount.Shift(2).Round(0).IntPart())
}

// Daily returns zeroed counters for days with no activity.
func (s *RedisStats) Daily(ctx context.Context, date string) (*domain.DailyStats, error) {
	values, err := s.Client.HGetAll(ctx, s.DailyKey(date)).Result()
	if err != nil {
		return nil, err
	}

	count := func(field string) int64 {
		n, _ := strconv.ParseInt(values[field], 10, 64)
		return n
	}
	return &domain.DailyStats{
		Date:           date,
		OrdersCreated:  count(FieldOrdersCreated),
		Approved:       count(FieldApproved),
		Cancelled:      count(FieldCancelled),
		PaymentOrders:  count(FieldPaymentOrders),
		AdvanceRevenue: decimal.New(count(FieldRevenuePaise), -2),
	}, nil
}
