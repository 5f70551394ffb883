package main

import (
	"context"
	"log"
	"time"

	"car-sharing-app/config"
	"car-sharing-app/database"
	paymentsapi "car-sharing-app/internal/api/payments"
	rentalsapi "car-sharing-app/internal/api/rentals"
	routes "car-sharing-app/internal/app/http"
	"car-sharing-app/internal/domain/events"
	"car-sharing-app/internal/domain/payments"
	"car-sharing-app/internal/domain/rentals"
	"car-sharing-app/internal/infra/outbox"
	"car-sharing-app/internal/infra/storage"
	stripeclient "car-sharing-app/internal/infra/stripe"
	"car-sharing-app/internal/infra/telegram"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop()

	if config.TELEGRAM_BOT_TOKEN != "" {
		notifier := telegram.New(config.TELEGRAM_BOT_TOKEN, config.TELEGRAM_CHAT_ID, logger)
		notify := func(ctx context.Context, e events.Event) error {
			msg, ok := e.(events.Message)
			if !ok {
				return nil
			}
			return notifier.SendMessage(ctx, msg.Text())
		}
		bus.Subscribe(events.NameRentalOpened, notify)
		bus.Subscribe(events.NameRentalClosed, notify)
		bus.Subscribe(events.NamePaymentReceived, notify)
	}

	checkout := stripeclient.New(config.STRIPE_SECRET_KEY)
	rentalSvc := rentals.NewService(storage.NewRentalStore(database.DB), bus)
	paymentSvc := payments.NewService(storage.NewPaymentStore(database.DB), checkout, bus, config.APP_URL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, rentalsapi.NewHandler(rentalSvc), paymentsapi.NewHandler(paymentSvc))

	r.Run(":" + config.PORT)
}
