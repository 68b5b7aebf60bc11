package main

import (
	"log"
	"time"

	"harveys-cafe/config"
	httpapi "harveys-cafe/payment-svc/internal/api/http"
	"harveys-cafe/payment-svc/internal/domain"
	"harveys-cafe/payment-svc/internal/gateway"
	"harveys-cafe/payment-svc/internal/service"
	"harveys-cafe/payment-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	client := gateway.NewRazorpayClient(
		config.GetEnv("RAZORPAY_API_URL", gateway.DefaultRazorpayURL),
		config.GetEnv("RAZORPAY_KEY_ID", ""),
		config.GetEnv("RAZORPAY_KEY_SECRET", ""),
		config.GetDuration("RAZORPAY_TIMEOUT", 10*time.Second),
	)
	if !client.Configured() {
		log.Println("WARN: RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set, payment orders will fail")
	}

	writer := config.NewKafkaWriter(domain.TopicPayments)
	defer writer.Close()

	payments := service.NewPaymentService(client, storage.NewKafkaPublisher(writer))
	handler := httpapi.NewHandler(payments)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), httpapi.NewRouter(handler))
}
