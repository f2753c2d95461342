package service

import (
	"time"

	"smart_irrigation"
	"smart_irrigation/internal/store"
)

// Recommendation variants accepted in configuration.
const (
	VariantDetailed = "detailed"
	VariantCoarse   = "coarse"
)

// Snapshot is the composed dashboard view: everything the presentation
// layer renders, derived from the current in-memory readings on every
// call.
type Snapshot struct {
	Latest           smart_irrigation.SensorReading  `json:"latest"`
	Status           StatusResult                    `json:"status"`
	MoistureBand     string                          `json:"moistureBand"`
	Online           bool                            `json:"online"`
	TimeSinceReading string                          `json:"timeSinceReading"`
	Alerts           []smart_irrigation.Alert        `json:"alerts"`
	Recommendation   smart_irrigation.Recommendation `json:"recommendation"`
	Forecast         *smart_irrigation.RainForecast  `json:"forecast,omitempty"`
	ReadingCount     int                             `json:"readingCount"`
	TelemetryError   string                          `json:"telemetryError,omitempty"`
	WeatherError     string                          `json:"weatherError,omitempty"`
}

// DashboardService derives dashboard state from the store, the freshness
// check, the configured status policy and the weather cycle.
type DashboardService struct {
	store     *store.TelemetryStore
	policy    StatusPolicy
	freshness *FreshnessService
	weather   *WeatherService
	poller    *Poller
	variant   string

	now func() time.Time
}

func NewDashboardService(st *store.TelemetryStore, policy StatusPolicy, freshness *FreshnessService, weather *WeatherService, poller *Poller, variant string) *DashboardService {
	if variant == "" {
		variant = VariantDetailed
	}
	return &DashboardService{
		store:     st,
		policy:    policy,
		freshness: freshness,
		weather:   weather,
		poller:    poller,
		variant:   variant,
		now:       time.Now,
	}
}

// Snapshot composes the full dashboard view.
func (d *DashboardService) Snapshot() Snapshot {
	now := d.now()
	readings := d.store.Snapshot()
	latest := d.store.Latest()
	hasData := len(readings) > 0
	online := d.freshness.IsOnline(latest, now)

	snap := Snapshot{
		Latest:           latest,
		Status:           d.policy.Classify(latest, hasData),
		MoistureBand:     MoistureBand(latest.SoilMoisture),
		Online:           online,
		TimeSinceReading: TimeSinceReading(latest, now),
		Alerts:           ClassifyAlerts(readings),
		Recommendation:   d.recommend(latest, online),
		ReadingCount:     len(readings),
		TelemetryError:   d.poller.LastError(),
		WeatherError:     d.weather.LastError(),
	}
	if forecast, ok := d.weather.Forecast(); ok {
		snap.Forecast = &forecast
	}
	return snap
}

// Alerts classifies the current snapshot.
func (d *DashboardService) Alerts() []smart_irrigation.Alert {
	return ClassifyAlerts(d.store.Snapshot())
}

// Chart resamples the current snapshot onto the 24-hour grid.
func (d *DashboardService) Chart() []smart_irrigation.ChartBucket {
	readings := d.store.Snapshot()
	return Resample(readings, ChartDeviceIDs(readings), d.now())
}

// Recommendation derives the current action recommendation using the
// configured variant.
func (d *DashboardService) Recommendation() smart_irrigation.Recommendation {
	latest := d.store.Latest()
	online := d.freshness.IsOnline(latest, d.now())
	return d.recommend(latest, online)
}

func (d *DashboardService) recommend(latest smart_irrigation.SensorReading, online bool) smart_irrigation.Recommendation {
	if d.variant == VariantCoarse {
		return RecommendCoarse(latest.SoilMoisture, latest.Status, online)
	}
	return Recommend(latest.SoilMoisture, d.weather.RainProbability(), online)
}
