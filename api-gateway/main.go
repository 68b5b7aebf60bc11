package main

import (
	"log"
	"net/http"

	"harveys-cafe/api-gateway/internal/gateway"
	"harveys-cafe/config"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	cfg := gateway.Config{
		OrderSvcURL:   config.GetEnv("ORDER_SVC_URL", "http://localhost:8081"),
		PaymentSvcURL: config.GetEnv("PAYMENT_SVC_URL", "http://localhost:8082"),
		FeedSvcURL:    config.GetEnv("FEED_SVC_URL", "http://localhost:8083"),
	}

	timeout := config.GetDuration("UPSTREAM_TIMEOUT", 0)
	gw := gateway.NewGateway(cfg, &http.Client{Timeout: timeout})

	r, err := gw.SetupRoutes()
	if err != nil {
		log.Fatalf("Invalid upstream configuration: %v", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{config.GetEnv("ALLOWED_ORIGIN", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	addr := ":" + config.GetEnv("PORT", "8080")
	log.Printf("API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
