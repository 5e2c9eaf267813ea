package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

// The worker drains appointment.booked and logs one confirmation line per
// booking. It is the hook point for outbound notifications.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL must be set for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(cfg.RabbitMQURL, log, func(_ context.Context, ev events.AppointmentBooked) error {
		log.WithFields(logrus.Fields{
			"appointment_id": ev.AppointmentID,
			"shop_id":        ev.ShopID,
			"shop_name":      ev.ShopName,
			"customer_id":    ev.CustomerID,
			"date":           ev.Date,
			"time_slot":      ev.TimeSlot,
		}).Info("appointment booked")
		return nil
	})

	log.WithField("queue", events.QueueAppointmentBooked).Info("worker consuming")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("worker stopped")
		os.Exit(1)
	}
	log.Info("worker stopped")
}
