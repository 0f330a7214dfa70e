package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MetarFetcher supplies raw METAR text for a station
type MetarFetcher interface {
	FetchMETAR(ctx context.Context, stationCode string) (string, error)
}

// Fetcher fetches raw reports from the Aviation Weather Center API
type Fetcher struct {
	baseURL    string
	maxRetries int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFetcher creates a fetcher from the fetch settings
func NewFetcher(cfg FetchConfig, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		logger: logger.Named("fetcher"),
	}
}

// FetchMETAR fetches the latest raw METAR for a given station code
func (f *Fetcher) FetchMETAR(ctx context.Context, stationCode string) (string, error) {
	q := url.Values{}
	q.Set("ids", stationCode)
	q.Set("format", "raw")
	metarURL := f.baseURL + "/metar?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between retries
			backoff := time.Duration(500*(1<<uint(attempt-1))) * time.Millisecond
			f.logger.Info("Retrying METAR fetch",
				zap.String("airport", stationCode),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-clock.After(backoff):
			}
		}

		data, err := fetchData(ctx, f.httpClient, metarURL, stationCode, "METAR")
		if err == nil {
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		f.logger.Warn("METAR fetch failed, may retry",
			zap.String("airport", stationCode),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", f.maxRetries+1))
	}

	return "", lastErr
}

// fetchData fetches a URL and returns the first non-empty line of the body
func fetchData(ctx context.Context, client *http.Client, url string, stationCode string, dataType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error building %s request: %w", dataType, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", dataType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	for _, line := range strings.Split(string(body), "\n") {
		if data := strings.TrimSpace(line); data != "" {
			return data, nil
		}
	}

	return "", fmt.Errorf("no %s data found for station %s", dataType, stationCode)
}
