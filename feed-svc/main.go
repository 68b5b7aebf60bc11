package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"harveys-cafe/config"
	httpapi "harveys-cafe/feed-svc/internal/api/http"
	"harveys-cafe/feed-svc/internal/domain"
	"harveys-cafe/feed-svc/internal/hub"
	"harveys-cafe/feed-svc/internal/service"
	"harveys-cafe/feed-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	location, err := time.LoadLocation(config.GetEnv("STATS_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		log.Printf("WARN: invalid STATS_TIMEZONE, using local time: %v", err)
		location = time.Local
	}

	redisClient := config.MustInitRedis()
	defer redisClient.Close()

	stats := storage.NewRedisStats(redisClient)
	feed := hub.NewHub()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	groupID := config.GetEnv("KAFKA_GROUP_ID", "feed-svc")
	for _, topic := range []string{domain.TopicOrders, domain.TopicInventory, domain.TopicPayments} {
		reader := config.NewKafkaReader(topic, groupID)
		defer reader.Close()
		go service.NewConsumer(reader, stats, feed, location).Start(ctx)
	}

	handler := httpapi.NewHandler(service.NewStatsService(stats, location), feed)
	if err := httpapi.StartServer(ctx, ":"+config.GetEnv("PORT", "8083"), httpapi.NewRouter(handler)); err != nil {
		log.Printf("ERROR: server stopped: %v", err)
	}
}
