package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logpulse/config"
	"logpulse/internal/logger"
	"logpulse/internal/messaging/consumer"
	"logpulse/internal/models"
	"logpulse/processing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "./config", "directory holding "+config.FollowerFile)
	flag.Parse()

	cfgPath, err := config.PathIn(*configDir, config.FollowerFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFollowerConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load follower configuration: %w", err)
	}

	log, _, err := logger.NewLogger(cfg.Logging.Level, os.Stderr)
	if err != nil {
		return err
	}
	defer log.Sync()

	var c consumer.Consumer
	if cfg.KafkaConsumer.UseMock() {
		log.Infof("Initializing mock report consumer...")
		c = consumer.NewMockConsumer(log.Named("consumer"), demoReports(time.Now().UTC())...)
	} else {
		kc, err := consumer.NewKafkaConsumer(cfg.KafkaConsumer, log.Named("consumer"))
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka consumer: %w", err)
		}
		c = kc
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	follower := processing.NewFollower(c, 5*time.Second, log.Named("follower"), processing.NewConsoleSink(log.Named("report")))
	log.Infof("Following reports. Press Ctrl+C to stop.")
	return follower.Run(ctx)
}

// demoReports is what the mock consumer replays: one summary and an alert that recovers
func demoReports(now time.Time) []*models.ReportMessage {
	from := now.Add(-10 * time.Second)
	return []*models.ReportMessage{
		models.NewSummaryMessage(models.SummaryReport{
			From:        from,
			To:          now,
			Processed:   14,
			TopSections: []models.Count[string]{{Key: "api", Count: 9}, {Key: "report", Count: 4}, {Key: "/", Count: 1}},
			ErrorCodes:  []models.Count[int]{{Key: 401, Count: 3}, {Key: 500, Count: 1}},
		}),
		models.NewAlertMessage(models.AlertReport{
			From: now.Add(-2 * time.Minute), To: now, Count: 14, Threshold: 10,
			Alerting: true, Transition: models.TransitionAlert,
		}),
		models.NewAlertMessage(models.AlertReport{
			From: now.Add(-time.Minute), To: now.Add(time.Minute), Count: 6, Threshold: 10,
			Transition: models.TransitionRecovered,
		}),
	}
}
