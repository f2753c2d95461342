package service

import (
	"fmt"

	"smart_irrigation"
)

// Moisture gauge bands. These color the gauge only and are independent of
// the headline status thresholds.
const (
	gaugeCriticalPct  = 40.0
	gaugeAttentionPct = 60.0
)

// StatusResult is the derived headline status of the system. Under the
// moisture policy Status is one of the four SystemStatus constants; under
// the server policy it carries the server-provided status verbatim.
type StatusResult struct {
	Status smart_irrigation.SystemStatus `json:"status"`
	Label  string                        `json:"label"`
	Color  string                        `json:"color"`
}

// StatusPolicy derives the system status from the single most recent
// reading. Two independently evolved policies coexist in the product and
// are deliberately not reconciled; deployments pick one by configuration.
type StatusPolicy interface {
	Classify(latest smart_irrigation.SensorReading, hasData bool) StatusResult
}

// Policy names accepted in configuration.
const (
	PolicyMoisture = "moisture"
	PolicyServer   = "server"
)

// NewStatusPolicy selects a policy by its configured name.
func NewStatusPolicy(kind string) (StatusPolicy, error) {
	switch kind {
	case PolicyMoisture, "":
		return MoistureThresholdPolicy{}, nil
	case PolicyServer:
		return ServerStatusPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown status policy %q", kind)
	}
}

// MoistureThresholdPolicy derives the status from soil moisture alone.
type MoistureThresholdPolicy struct{}

func (MoistureThresholdPolicy) Classify(latest smart_irrigation.SensorReading, hasData bool) StatusResult {
	if !hasData {
		return StatusResult{Status: smart_irrigation.StatusMonitoring, Label: "Sem dados", Color: "green"}
	}
	switch {
	case latest.SoilMoisture < 30:
		return StatusResult{Status: smart_irrigation.StatusIrrigating, Label: "Irrigando", Color: "blue"}
	case latest.SoilMoisture < 50:
		return StatusResult{Status: smart_irrigation.StatusWarning, Label: "Atenção", Color: "orange"}
	default:
		return StatusResult{Status: smart_irrigation.StatusMonitoring, Label: "Monitorando", Color: "green"}
	}
}

// ServerStatusPolicy passes the server-assigned status through verbatim.
// Only the color is derived, from the parsed closed enum.
type ServerStatusPolicy struct{}

func (ServerStatusPolicy) Classify(latest smart_irrigation.SensorReading, hasData bool) StatusResult {
	raw := latest.DisplayStatus()

	label := raw
	if smart_irrigation.ParseServerStatus(raw) == smart_irrigation.ServerStatusManualIrrigation {
		label = "IRRIGAÇÃO MANUAL"
	}

	return StatusResult{
		Status: smart_irrigation.SystemStatus(raw),
		Label:  label,
		Color:  serverStatusColor(raw),
	}
}

func serverStatusColor(raw string) string {
	switch smart_irrigation.ParseServerStatus(raw) {
	case smart_irrigation.ServerStatusCritical:
		return "red"
	case smart_irrigation.ServerStatusAttention:
		return "yellow"
	case smart_irrigation.ServerStatusManualIrrigation:
		return "blue"
	default:
		return "green"
	}
}

// MoistureBand grades the moisture gauge: critical below 40%, attention
// below 60%, ok otherwise.
func MoistureBand(moisture float64) string {
	switch {
	case moisture < gaugeCriticalPct:
		return "critical"
	case moisture < gaugeAttentionPct:
		return "attention"
	default:
		return "ok"
	}
}
