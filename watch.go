package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Publisher receives every new observation
type Publisher interface {
	Publish(obs Observation)
}

// WatcherOptions carries the optional collaborators of a Watcher
type WatcherOptions struct {
	ConfigPath string
	Out        io.Writer
	ShowRaw    bool
	Clock      clockwork.Clock
	Metrics    *Metrics
	Publisher  Publisher
}

// Watcher periodically fetches, decodes and classifies the configured
// airport, and picks up configuration changes on Reload.
type Watcher struct {
	fetcher    MetarFetcher
	logger     *zap.Logger
	configPath string
	out        io.Writer
	showRaw    bool
	clock      clockwork.Clock
	metrics    *Metrics
	publisher  Publisher

	mu     sync.RWMutex
	cfg    Config
	latest *Observation

	reload chan struct{}
}

// NewWatcher creates a watcher for cfg.Airport
func NewWatcher(cfg Config, fetcher MetarFetcher, logger *zap.Logger, opts WatcherOptions) *Watcher {
	w := &Watcher{
		fetcher:    fetcher,
		logger:     logger.Named("watcher"),
		configPath: opts.ConfigPath,
		out:        opts.Out,
		showRaw:    opts.ShowRaw,
		clock:      opts.Clock,
		metrics:    opts.Metrics,
		publisher:  opts.Publisher,
		cfg:        cfg,
		reload:     make(chan struct{}, 1),
	}
	if w.out == nil {
		w.out = os.Stdout
	}
	if w.clock == nil {
		w.clock = clock
	}
	return w
}

// Latest returns the most recent successful observation
func (w *Watcher) Latest() (Observation, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.latest == nil {
		return Observation{}, false
	}
	return *w.latest, true
}

// Thresholds returns the flight rules currently in force
func (w *Watcher) Thresholds() Thresholds {
	return w.config().FlightRules
}

func (w *Watcher) config() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

func (w *Watcher) interval() time.Duration {
	return time.Duration(w.config().UpdateIntervalSeconds) * time.Second
}

// Reload asks the running loop to re-read the configuration file
func (w *Watcher) Reload() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	cfg := w.config()
	w.logger.Info("Watching airport",
		zap.String("airport", cfg.Airport),
		zap.Duration("interval", w.interval()))

	w.Refresh(ctx) //nolint:errcheck // failures are reported and retried on the next tick

	ticker := w.clock.NewTicker(w.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			w.Refresh(ctx) //nolint:errcheck
		case <-w.reload:
			airportChanged, intervalChanged, thresholdsChanged := w.reloadConfig()
			if intervalChanged {
				ticker.Reset(w.interval())
			}
			if airportChanged {
				w.Refresh(ctx) //nolint:errcheck
			} else if thresholdsChanged {
				w.reclassify()
			}
		}
	}
}

// Refresh fetches and processes one report for the configured airport
func (w *Watcher) Refresh(ctx context.Context) (Observation, error) {
	cfg := w.config()

	start := w.clock.Now()
	raw, err := w.fetcher.FetchMETAR(ctx, cfg.Airport)
	if w.metrics != nil {
		w.metrics.FetchDuration.Observe(w.clock.Since(start).Seconds())
	}
	if err != nil {
		w.recordOutcome(cfg.Airport, "error")
		w.logger.Warn("METAR fetch failed", zap.String("airport", cfg.Airport), zap.Error(err))
		fmt.Fprint(w.out, FormatError(cfg.Airport, err))
		return Observation{}, err
	}

	obs, err := Observe(raw, cfg.FlightRules)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrEmptyInput) {
			outcome = "empty"
			err = fmt.Errorf("no data received for %s: %w", cfg.Airport, err)
		}
		w.recordOutcome(cfg.Airport, outcome)
		fmt.Fprint(w.out, FormatError(cfg.Airport, err))
		return Observation{}, err
	}
	w.recordOutcome(cfg.Airport, "success")

	w.accept(cfg.Airport, obs)
	w.logger.Debug("Observation updated",
		zap.String("airport", cfg.Airport),
		zap.Stringer("category", obs.Category),
		zap.String("condition", string(obs.Condition)))

	return obs, nil
}

// reclassify applies new thresholds to the latest report without fetching
func (w *Watcher) reclassify() {
	latest, ok := w.Latest()
	if !ok {
		return
	}
	cfg := w.config()

	obs, err := Observe(latest.Report.Raw, cfg.FlightRules)
	if err != nil {
		return
	}
	w.accept(cfg.Airport, obs)
}

func (w *Watcher) accept(airport string, obs Observation) {
	w.mu.Lock()
	w.latest = &obs
	w.mu.Unlock()

	fmt.Fprint(w.out, FormatObservation(obs, w.showRaw))
	if w.metrics != nil {
		w.metrics.RecordObservation(airport, obs)
	}
	if w.publisher != nil {
		w.publisher.Publish(obs)
	}
}

func (w *Watcher) recordOutcome(airport, outcome string) {
	if w.metrics != nil {
		w.metrics.FetchRequests.WithLabelValues(airport, outcome).Inc()
	}
}

// reloadConfig re-reads the config file and reports what changed. A file
// that fails to load or validate leaves the running config untouched.
func (w *Watcher) reloadConfig() (airportChanged, intervalChanged, thresholdsChanged bool) {
	if w.configPath == "" {
		w.logger.Info("No config file to reload")
		return false, false, false
	}

	next, _, err := LoadConfig(w.configPath)
	if err == nil {
		err = next.Validate()
	}
	if err == nil && next.Airport == "" {
		err = errors.New("airport is required in watch mode")
	}
	if err != nil {
		w.logger.Warn("Ignoring config reload", zap.String("path", w.configPath), zap.Error(err))
		return false, false, false
	}

	w.mu.Lock()
	prev := w.cfg
	// Fetch and server settings are fixed for the life of the process
	next.Fetch = prev.Fetch
	next.Server = prev.Server
	w.cfg = next
	w.mu.Unlock()

	airportChanged = prev.Airport != next.Airport
	intervalChanged = prev.UpdateIntervalSeconds != next.UpdateIntervalSeconds
	thresholdsChanged = prev.FlightRules != next.FlightRules

	w.logger.Info("Config reloaded",
		zap.String("airport", next.Airport),
		zap.Bool("airport_changed", airportChanged),
		zap.Bool("interval_changed", intervalChanged),
		zap.Bool("thresholds_changed", thresholdsChanged))

	return airportChanged, intervalChanged, thresholdsChanged
}
