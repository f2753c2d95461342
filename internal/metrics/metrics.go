package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TelemetryFetchTotal counts every telemetry fetch attempt, scheduled
	// or manual.
	TelemetryFetchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_telemetry_fetch_total",
		Help: "Total number of telemetry fetch attempts (timer ticks and manual refreshes).",
	})

	TelemetryFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_telemetry_fetch_failures_total",
		Help: "Total number of telemetry fetches that failed at the transport or decode boundary.",
	})

	// TelemetryFetchStale counts completions discarded because a fetch
	// issued later already landed.
	TelemetryFetchStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_telemetry_fetch_stale_total",
		Help: "Total number of fetch completions discarded as out of sequence.",
	})

	// TelemetryLastSuccess is 0 until the first successful fetch.
	TelemetryLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "irrigation_telemetry_last_success_timestamp_seconds",
		Help: "Unix timestamp (seconds) of the last successful telemetry fetch. 0 if none yet.",
	})

	ReadingsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "irrigation_readings_stored",
		Help: "Number of readings in the current in-memory snapshot.",
	})

	ActiveAlerts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "irrigation_active_alerts",
		Help: "Number of alerts derived from the current snapshot (capped feed size).",
	})

	WeatherFetchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_weather_fetch_total",
		Help: "Total number of forecast fetch attempts.",
	})

	WeatherFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_weather_fetch_failures_total",
		Help: "Total number of forecast fetches that failed, including provider-reported errors.",
	})

	ManualIrrigationTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_manual_trigger_total",
		Help: "Total number of manual irrigation actions accepted by the upstream.",
	})
)
