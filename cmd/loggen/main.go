package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"logpulse/config"
	"logpulse/internal/console"
	"logpulse/internal/generator"
	"logpulse/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "./config", "directory holding "+config.GeneratorFile)
	filePath := flag.String("file", "", "access log to append to (overrides file_path)")
	flag.Parse()

	if *filePath != "" {
		os.Setenv("LOGPULSE_FILE", *filePath)
	}

	cfgPath, err := config.PathIn(*configDir, config.GeneratorFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadGeneratorConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load generator configuration: %w", err)
	}

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

	w := generator.NewWriter(cfg.FilePath, cfg.Interval, generator.NewFactory(rand.New(rand.NewSource(cfg.Seed))), log.Named("loggen"))

	if interactive {
		log.Infof("Press '+' to write faster, '-' to write slower, 'x' to exit.")
		go func() {
			_ = console.WatchKeys(os.Stdin, func(key rune) bool {
				switch key {
				case '+':
					log.Infof("Interval is now %s", w.Faster())
				case '-':
					log.Infof("Interval is now %s", w.Slower())
				case 'x', 'X', console.Interrupt:
					cancel()
					return false
				}
				return true
			})
		}()
	}

	return w.Run(ctx)
}
