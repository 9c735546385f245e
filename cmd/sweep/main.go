package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hotelbooking/internal/app"
	"hotelbooking/internal/config"
	"hotelbooking/internal/logger"
)

// sweep runs one no-show and refund pass, for cron-style deployments.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("startup: %v", err)
	}
	defer a.Close()

	res, err := a.Sweeper.RunOnce(ctx)
	if err != nil {
		logrus.Fatalf("sweep failed: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"no_shows":        res.NoShows,
		"no_show_failed":  res.NoShowFailures,
		"refunds":         res.RefundsDone,
		"refunds_skipped": res.RefundsSkipped,
	}).Info("sweep completed")
}
