package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"logpulse/config"
	"logpulse/ingestion/parser"
	core "logpulse/ingestion/service/core"
	grpchandler "logpulse/ingestion/service/grpc"
	httphandler "logpulse/ingestion/service/http"
	"logpulse/ingestion/tailer"
	"logpulse/internal/console"
	"logpulse/internal/logger"
	"logpulse/internal/messaging/producer"
	"logpulse/internal/notify"
	"logpulse/processing"
	"logpulse/storage/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "./config", "directory holding "+config.MonitorFile)
	filePath := flag.String("file", "", "access log to tail (overrides tail.file_path)")
	flag.Parse()

	if *filePath != "" {
		os.Setenv("LOGPULSE_FILE", *filePath)
	}

	// 1. Load monitor config
	cfgPath, err := config.PathIn(*configDir, config.MonitorFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadMonitorConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load monitor configuration: %w", err)
	}

	// 2. Terminal and logger
	term, interactive, err := console.OpenTerminal()
	if err != nil {
		return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer term.Restore()

	var out io.Writer = os.Stderr
	if interactive {
		out = console.NewCRLFWriter(os.Stderr)
	}
	log, _, err := logger.NewLogger(cfg.Logging.Level, out)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. Core pipeline
	agg := processing.NewAggregator(processing.WindowConfig{
		ShortWindow:    cfg.Window.Short,
		LongWindow:     cfg.Window.Long,
		AlertThreshold: cfg.Window.Threshold(),
		TopSections:    cfg.Window.TopSections,
	}, log.Named("aggregator"))

	ingestion := core.NewService(
		tailer.New(cfg.Tail.FilePath, log.Named("tailer")),
		parser.NewCommonLogParser(),
		agg,
		log.Named("ingestion"),
	)

	// 4. Report sinks
	board := httphandler.NewStatusBoard(ingestion.Stats)
	sinks := []processing.ReportSink{processing.NewConsoleSink(log.Named("report")), board}

	if cfg.KafkaProducer.Enabled() {
		kafkaProducer, err := producer.NewKafkaProducer(cfg.KafkaProducer, log.Named("kafka"))
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		defer kafkaProducer.Close()
		sinks = append(sinks, producer.NewReportPublisher(kafkaProducer))
	}

	if cfg.Database.Enabled() {
		recorder, err := store.NewPostgresStore(ctx, cfg.Database, log.Named("store"))
		if err != nil {
			return fmt.Errorf("failed to initialize alert store: %w", err)
		}
		defer recorder.Close()
		sinks = append(sinks, recorder)
	}

	if cfg.Webhook.URL != "" {
		sinks = append(sinks, notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout))
	}

	scheduler := processing.NewScheduler(agg, cfg.Window.Short, cfg.Window.Long, log.Named("scheduler"), sinks...)

	var grpcServer *grpchandler.Server
	if cfg.Status.GrpcListenAddr != "" {
		grpcServer = grpchandler.NewServer(log.Named("grpc"))
	}
	setIngesting := func(running bool) {
		board.SetIngesting(running)
		if grpcServer != nil {
			grpcServer.SetIngesting(running)
		}
	}

	// 5. Run the loops. The group does not cancel on error: losing the file stops
	// ingestion but reporting continues until the operator exits.
	var g errgroup.Group

	setIngesting(true)
	g.Go(func() error {
		err := ingestion.Run(ctx)
		setIngesting(false)
		if err != nil {
			log.Errorf("Ingestion stopped: %v", err)
			return fmt.Errorf("ingestion: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	if cfg.Status.HttpListenAddr != "" {
		startStatusServer(ctx, &g, cfg.Status.HttpListenAddr, httphandler.NewStatusHandler(board, log.Named("http")), log)
	} else {
		log.Infof("status.http_listen_addr not configured, skipping HTTP server startup.")
	}

	if grpcServer != nil {
		g.Go(func() error {
			return grpcServer.Serve(ctx, cfg.Status.GrpcListenAddr)
		})
	}

	if interactive {
		go watchExitKeys(cancel, log)
		log.Infof("Monitoring %s. Press 'x' to exit.", cfg.Tail.FilePath)
	} else {
		log.Infof("Monitoring %s. Send SIGINT or SIGTERM to exit.", cfg.Tail.FilePath)
	}

	err = g.Wait()
	log.Infof("Monitor shut down.")
	return err
}

// startStatusServer serves the status API until ctx is cancelled
func startStatusServer(ctx context.Context, g *errgroup.Group, addr string, h *httphandler.StatusHandler, log *zap.SugaredLogger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		log.Infof("HTTP status server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("HTTP server failed: %v", err)
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("HTTP server shutdown failed: %v", err)
		}
		return nil
	})
}

// watchExitKeys cancels the run on 'x', 'X' or Ctrl+C
func watchExitKeys(cancel context.CancelFunc, log *zap.SugaredLogger) {
	err := console.WatchKeys(os.Stdin, func(key rune) bool {
		switch key {
		case 'x', 'X', console.Interrupt:
			log.Infof("Exit requested, shutting down...")
			cancel()
			return false
		}
		return true
	})
	if err != nil {
		log.Warnf("Stopped reading keys: %v", err)
	}
}
