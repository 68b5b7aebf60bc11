package mocks

import (
	"context"

	"harveys-cafe/feed-svc/internal/domain"
	"harveys-cafe/feed-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type StatsStore struct {
	mock.Mock
}

func NewStatsStore(t testingT) *StatsStore {
	m := &StatsStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsStore) Increment(ctx context.Context, date, field string, delta int64) error {
	return m.Called(ctx, date, field, delta).Error(0)
}

func (m *StatsStore) AddRevenue(ctx context.Context, date string, amount decimal.Decimal) error {
	return m.Called(ctx, date, amount).Error(0)
}

func (m *StatsStore) Daily(ctx context.Context, date string) (*domain.DailyStats, error) {
	ret := m.Called(ctx, date)
	var r0 *domain.DailyStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.DailyStats)
	}
	return r0, ret.Error(1)
}

type Broadcaster struct {
	mock.Mock
}

func NewBroadcaster(t testingT) *Broadcaster {
	m := &Broadcaster{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Broadcaster) Broadcast(channel string, payload []byte) {
	m.Called(channel, payload)
}

type MessageReader struct {
	mock.Mock
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(kafka.Message), ret.Error(1)
}

type StatsServiceInterface struct {
	mock.Mock
}

func NewStatsServiceInterface(t testingT) *StatsServiceInterface {
	m := &StatsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsServiceInterface) Daily(ctx context.Context, date string) (*domain.DailyStats, error) {
	ret := m.Called(ctx, date)
	var r0 *domain.DailyStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.DailyStats)
	}
	return r0, ret.Error(1)
}

var (
	_ service.StatsStore            = (*StatsStore)(nil)
	_ service.Broadcaster           = (*Broadcaster)(nil)
	_ service.MessageReader         = (*MessageReader)(nil)
	_ service.StatsServiceInterface = (*StatsServiceInterface)(nil)
)
