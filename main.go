package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to a TOML config file (default: ./flightrules.toml or the user config dir)")
	noRawFlag := flag.Bool("no-raw", false, "Hide raw data")
	noDecodeFlag := flag.Bool("no-decode", false, "Show only raw data without decoding")
	flagNoColor := flag.Bool("no-color", false, "Disable color output")
	watchFlag := flag.Bool("watch", false, "Keep refreshing the report until interrupted (SIGHUP reloads the config)")
	intervalFlag := flag.Int("interval", 0, "Refresh interval in seconds for -watch (overrides config)")
	listenFlag := flag.String("listen", "", "Serve status, metrics and a websocket stream on this address in -watch mode")
	logLevelFlag := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	if *flagNoColor {
		color.NoColor = true // disables colorized output globally
	}

	cfg, usedPath, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *intervalFlag > 0 {
		cfg.UpdateIntervalSeconds = *intervalFlag
	}
	if *listenFlag != "" {
		cfg.Server.ListenAddr = *listenFlag
	}
	if *logLevelFlag != "" {
		cfg.Logging.Level = *logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := NewFetcher(cfg.Fetch, logger)

	// First check stdin for piped data
	var stationCode, rawInput string
	stdinHasData := false
	if !*watchFlag {
		stationCode, rawInput, stdinHasData = readFromStdin()
	}

	if !stdinHasData {
		stationCode, err = resolveStationCode(flag.Args(), cfg.Airport, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	if *watchFlag {
		cfg.Airport = stationCode
		return runWatch(ctx, cfg, usedPath, fetcher, logger, !*noRawFlag)
	}

	return processMETAR(ctx, os.Stdout, fetcher, stationCode, rawInput, cfg.FlightRules, reportOptions{
		noRaw:    *noRawFlag,
		noDecode: *noDecodeFlag,
	})
}

// resolveStationCode takes the station from the arguments, then the config,
// then an interactive prompt
func resolveStationCode(args []string, configured string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return getStationCodeFromArgs(args)
	}
	if configured != "" {
		return normalizeStationCode(configured)
	}
	return promptForStationCode(in, out)
}

// runWatch runs the refresh loop, wiring SIGHUP to a config reload and
// optionally serving HTTP alongside it
func runWatch(ctx context.Context, cfg Config, configPath string, fetcher MetarFetcher, logger *zap.Logger, showRaw bool) error {
	hub := NewHub(logger)
	defer hub.Close()

	watcher := NewWatcher(cfg, fetcher, logger, WatcherOptions{
		ConfigPath: configPath,
		Out:        os.Stdout,
		ShowRaw:    showRaw,
		Metrics:    NewMetrics(),
		Publisher:  hub,
	})

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				watcher.Reload()
			}
		}
	}()

	if cfg.Server.ListenAddr != "" {
		srv := NewServer(cfg.Server.ListenAddr, watcher, hub, logger)
		go func() {
			if err := srv.Start(); err != nil {
				logger.Error("HTTP server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("HTTP server shutdown", zap.Error(err))
			}
		}()
	}

	return watcher.Run(ctx)
}
