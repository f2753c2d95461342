package smart_irrigation

import (
	"encoding/json"
	"time"
)

// Server-assigned reading statuses as they appear on the wire.
const (
	RawStatusNormal           = "NORMAL"
	RawStatusAttention        = "ATENCAO"
	RawStatusCritical         = "CRITICO"
	RawStatusManualIrrigation = "IRRIGACAO_MANUAL"
	RawStatusOffline          = "OFFLINE"

	// RawStatusFallback labels a reading whose server never assigned a status.
	RawStatusFallback = "AGUARDANDO"
)

// ServerStatus is the parsed form of the server-assigned status string.
// Unrecognized values map to ServerStatusUnknown instead of silently
// defaulting, so the boundary contract stays explicit.
type ServerStatus int

const (
	ServerStatusUnknown ServerStatus = iota
	ServerStatusNormal
	ServerStatusAttention
	ServerStatusCritical
	ServerStatusManualIrrigation
	ServerStatusOffline
)

// ParseServerStatus maps a wire status string into the closed enum.
func ParseServerStatus(s string) ServerStatus {
	switch s {
	case RawStatusNormal:
		return ServerStatusNormal
	case RawStatusAttention:
		return ServerStatusAttention
	case RawStatusCritical:
		return ServerStatusCritical
	case RawStatusManualIrrigation:
		return ServerStatusManualIrrigation
	case RawStatusOffline:
		return ServerStatusOffline
	default:
		return ServerStatusUnknown
	}
}

// SensorReading is one timestamped measurement from a device.
// Depending on the deployment variant the payload carries batteryLevel
// (volts) or temperature (°C); both are kept optional here.
type SensorReading struct {
	ID           int64     `json:"id"`
	DeviceID     string    `json:"deviceId"`
	SoilMoisture float64   `json:"soilMoisture"`
	BatteryLevel float64   `json:"batteryLevel,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
	Status       string    `json:"status,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// UnmarshalJSON tolerates the field aliases and gaps seen across
// deployments: sensorId for deviceId, missing numerics (default 0) and a
// missing or unparsable timestamp (zero time, treated as never-seen).
func (r *SensorReading) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID           int64    `json:"id"`
		DeviceID     string   `json:"deviceId"`
		SensorID     string   `json:"sensorId"`
		SoilMoisture *float64 `json:"soilMoisture"`
		BatteryLevel *float64 `json:"batteryLevel"`
		Temperature  *float64 `json:"temperature"`
		Status       string   `json:"status"`
		Timestamp    string   `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	r.ID = raw.ID
	r.DeviceID = raw.DeviceID
	if r.DeviceID == "" {
		r.DeviceID = raw.SensorID
	}
	r.SoilMoisture = floatOrZero(raw.SoilMoisture)
	r.BatteryLevel = floatOrZero(raw.BatteryLevel)
	r.Temperature = floatOrZero(raw.Temperature)
	r.Status = raw.Status

	r.Timestamp = time.Time{}
	if raw.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
			r.Timestamp = ts
		}
	}
	return nil
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// DisplayStatus returns the status label shown to users, applying the
// fallback for readings the server never labeled.
func (r SensorReading) DisplayStatus() string {
	if r.Status == "" {
		return RawStatusFallback
	}
	return r.Status
}

// AlertType classifies a threshold-breach alert.
type AlertType string

const (
	AlertDrought AlertType = "drought"
	AlertBattery AlertType = "battery"
)

// Alert is a derived threshold breach. Alerts are recomputed from the
// current readings on every evaluation and never stored.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	DeviceID  string    `json:"deviceId"`
	Timestamp time.Time `json:"timestamp"`
}

// SystemStatus is the coarse headline status of the irrigation system.
// The moisture policy emits one of the four constants below; the
// server-status policy passes the raw server string through instead.
type SystemStatus string

const (
	StatusMonitoring SystemStatus = "monitoring"
	StatusIrrigating SystemStatus = "irrigating"
	StatusWarning    SystemStatus = "warning"
	StatusError      SystemStatus = "error"
)

// RainForecast is the externally fetched weather snapshot. It refreshes on
// its own poll cycle, uncorrelated in time with the telemetry poll.
type RainForecast struct {
	Temperature     int     `json:"temperature"`
	RainProbability int     `json:"rainProbability"`
	Description     string  `json:"description"`
	Humidity        float64 `json:"humidity"`
	TempMax         int     `json:"tempMax"`
	TempMin         int     `json:"tempMin"`
}

// ChartBucket is one fixed time slot of the resampled chart series. A
// device absent from Values is a gap in the chart, not a zero.
type ChartBucket struct {
	TimeLabel string             `json:"time"`
	Values    map[string]float64 `json:"values"`
}

// RecommendationKind identifies the prioritized action class.
type RecommendationKind string

const (
	RecommendOfflineAlert RecommendationKind = "offline-alert"
	RecommendIrrigateNow  RecommendationKind = "irrigate-now"
	RecommendWaitForRain  RecommendationKind = "wait-for-rain"
	RecommendMonitor      RecommendationKind = "monitor"
)

// RecommendationSeverity grades how urgently the action is needed.
type RecommendationSeverity string

const (
	SeverityInfo     RecommendationSeverity = "info"
	SeverityWarning  RecommendationSeverity = "warning"
	SeverityCritical RecommendationSeverity = "critical"
)

// Recommendation is a human-readable action derived from moisture,
// forecast and connectivity signals.
type Recommendation struct {
	Kind     RecommendationKind     `json:"kind"`
	Severity RecommendationSeverity `json:"severity"`
	Message  string                 `json:"message"`
}
