package main

import (
	"context"
	"os"
	"os/signal"
	"resort/config"
	"resort/di"
	"resort/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Warn().Msg("Kafka is disabled, confirmations are mailed by the API directly. Nothing to consume.")

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", cfg.Kafka.Topic.BookingConfirmation).Msg("Starting booking confirmation worker.")

	notifier := di.InitializeNotifier()
	notifier.Consume(ctx)

	log.Info().Msg("Booking confirmation worker stopped.")
}
