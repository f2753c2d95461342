package service

import (
	"context"
	"sync"
	"time"

	"smart_irrigation"
	"smart_irrigation/internal/logger"
	"smart_irrigation/internal/metrics"
)

// FetchForecast fetches the current rain forecast from the clima upstream.
type FetchForecast func(ctx context.Context) (smart_irrigation.RainForecast, error)

// WeatherService polls the forecast on its own cycle, independent of and
// uncorrelated with the telemetry poll. The last good forecast survives a
// failed fetch; only the error string changes.
type WeatherService struct {
	fetch    FetchForecast
	interval time.Duration
	log      *logger.Logger

	mu       sync.RWMutex
	forecast smart_irrigation.RainForecast
	hasData  bool
	lastErr  string
}

func NewWeatherService(fetch FetchForecast, intervalMs int, log *logger.Logger) (*WeatherService, error) {
	if intervalMs <= 0 {
		return nil, errInvalidInterval
	}
	return &WeatherService{
		fetch:    fetch,
		interval: time.Duration(intervalMs) * time.Millisecond,
		log:      log,
	}, nil
}

// Start fetches immediately and then on every tick until ctx is canceled.
func (w *WeatherService) Start(ctx context.Context) {
	go func() {
		w.refreshOnce(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.refreshOnce(ctx)
			}
		}
	}()
}

func (w *WeatherService) refreshOnce(ctx context.Context) {
	metrics.WeatherFetchTotal.Inc()
	forecast, err := w.fetch(ctx)
	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		metrics.WeatherFetchFailures.Inc()
		w.lastErr = err.Error()
		w.log.Errorw("weather_fetch_failed", "err", err)
		return
	}
	w.forecast = forecast
	w.hasData = true
	w.lastErr = ""
	w.log.Debugw("weather_fetch_ok", "rain_probability", forecast.RainProbability)
}

// Forecast returns the last good forecast and whether one exists yet.
func (w *WeatherService) Forecast() (smart_irrigation.RainForecast, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.forecast, w.hasData
}

// RainProbability returns the current forecast probability, or 0 when no
// forecast has been fetched yet.
func (w *WeatherService) RainProbability() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.hasData {
		return 0
	}
	return float64(w.forecast.RainProbability)
}

// LastError returns the user-visible error of the most recent failed
// forecast fetch, or "" after a success.
func (w *WeatherService) LastError() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}
