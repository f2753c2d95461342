package service

import (
	"context"
	"fmt"

	"smart_irrigation"
	"smart_irrigation/internal/client"
	"smart_irrigation/internal/logger"
	"smart_irrigation/internal/store"
)

// Dashboard exposes the derived dashboard state (snapshot, alert feed,
// chart series, recommendation).
type Dashboard interface {
	Snapshot() Snapshot
	Alerts() []smart_irrigation.Alert
	Chart() []smart_irrigation.ChartBucket
	Recommendation() smart_irrigation.Recommendation
}

// TelemetryPolling drives the telemetry refresh cycle.
type TelemetryPolling interface {
	Start(ctx context.Context)
	Stop()
	Refresh()
	LastError() string
}

// WeatherPolling drives the independent forecast refresh cycle.
type WeatherPolling interface {
	Start(ctx context.Context)
	Forecast() (smart_irrigation.RainForecast, bool)
	LastError() string
}

// Devices exposes per-device queries and the manual irrigation action.
type Devices interface {
	DeviceReadings(ctx context.Context, deviceID string) ([]smart_irrigation.SensorReading, error)
	TriggerManualIrrigation(ctx context.Context) error
}

// Config carries the tunables read from configuration.
type Config struct {
	PollIntervalMs        int
	WeatherIntervalMs     int
	FreshnessMinutes      int
	StatusPolicy          string
	RecommendationVariant string
	Latitude              float64
	Longitude             float64
}

// Service aggregates all sub-services. Fields are named rather than
// embedded because the two polling interfaces share method names.
type Service struct {
	Dashboard Dashboard
	Telemetry TelemetryPolling
	Weather   WeatherPolling
	Devices   Devices
}

// NewService wires the clients and the store into concrete services.
func NewService(cfg Config, st *store.TelemetryStore, tc *client.TelemetryClient, wc *client.WeatherClient, log *logger.Logger) (*Service, error) {
	policy, err := NewStatusPolicy(cfg.StatusPolicy)
	if err != nil {
		return nil, err
	}

	poller, err := NewPoller(tc.Readings, st, cfg.PollIntervalMs, log)
	if err != nil {
		return nil, fmt.Errorf("telemetry poller: %w", err)
	}

	weather, err := NewWeatherService(func(ctx context.Context) (smart_irrigation.RainForecast, error) {
		return wc.Forecast(ctx, cfg.Latitude, cfg.Longitude)
	}, cfg.WeatherIntervalMs, log)
	if err != nil {
		return nil, fmt.Errorf("weather poller: %w", err)
	}

	freshness := NewFreshnessService(cfg.FreshnessMinutes)
	dashboard := NewDashboardService(st, policy, freshness, weather, poller, cfg.RecommendationVariant)

	return &Service{
		Dashboard: dashboard,
		Telemetry: poller,
		Weather:   weather,
		Devices:   NewDeviceService(tc, poller, log),
	}, nil
}
