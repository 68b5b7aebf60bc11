package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"harveys-cafe/config"
	httpapi "harveys-cafe/order-svc/internal/api/http"
	"harveys-cafe/order-svc/internal/auth"
	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/scheduler"
	"harveys-cafe/order-svc/internal/service"
	"harveys-cafe/order-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	ordersWriter := config.NewKafkaWriter(domain.TopicOrders)
	defer ordersWriter.Close()
	inventoryWriter := config.NewKafkaWriter(domain.TopicInventory)
	defer inventoryWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	publisher := storage.NewKafkaPublisher(ordersWriter, inventoryWriter)
	carts := storage.NewRedisCartStore(rdb, storage.CartTTL)
	qr := service.DefaultQRGenerator{BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000")}

	orderSvc := service.NewOrderService(repo, repo, publisher, carts, qr)
	menuSvc := service.NewMenuService(repo, publisher)
	cartSvc := service.NewCartService(carts, repo)

	location, err := time.LoadLocation(config.GetEnv("RESET_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		log.Printf("WARN: unknown RESET_TIMEZONE, using local time: %v", err)
		location = time.Local
	}
	reset := scheduler.NewDailyReset(repo, storage.NewRedisResetMarker(rdb), service.SystemClock{})
	reset.Publisher = publisher
	reset.Location = location
	reset.Interval = config.GetDuration("RESET_INTERVAL", time.Minute)
	go reset.Run(ctx)

	authenticator := auth.NewAuthenticator(
		config.GetEnv("ADMIN_EMAIL", ""),
		config.GetEnv("ADMIN_PASSWORD_HASH", ""),
		config.GetEnv("JWT_SECRET", ""),
		config.GetDuration("JWT_TTL", 12*time.Hour),
	)
	if len(authenticator.Secret) == 0 {
		log.Println("WARN: JWT_SECRET is empty, admin login is disabled")
		authenticator.PasswordHash = nil
	}

	handler := httpapi.NewHandler(orderSvc, menuSvc, cartSvc, reset, authenticator, authenticator.RequireAdmin)
	if err := httpapi.StartServer(ctx, ":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler)); err != nil {
		log.Printf("ERROR: server stopped: %v", err)
	}
}
