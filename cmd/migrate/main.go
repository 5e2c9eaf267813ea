package main

import (
	"flag"
	"os"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/db/migrate"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

func main() {
	direction := flag.String("direction", migrate.Up, "up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := migrate.Run(cfg.DBUrl, *direction); err != nil {
		log.WithError(err).WithField("direction", *direction).Error("migration failed")
		os.Exit(1)
	}
	log.WithField("direction", *direction).Info("migrations applied")
}
