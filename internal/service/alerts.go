package service

import (
	"fmt"
	"sort"

	"smart_irrigation"
)

// Alert thresholds. Both comparisons are strict: a reading sitting exactly
// on a threshold is not an alert.
const (
	droughtThresholdPct  = 30.0
	lowBatteryThresholdV = 3.2

	alertScanWindow = 50
	alertFeedLimit  = 10
)

// ClassifyAlerts scans the most recent readings (store order, not a time
// window) and emits threshold-breach alerts, newest first, capped at
// alertFeedLimit. A single reading can produce both a drought and a
// battery alert. The result is derived state: it is recomputed from the
// current snapshot on every call and never persisted.
func ClassifyAlerts(readings []smart_irrigation.SensorReading) []smart_irrigation.Alert {
	recent := readings
	if len(recent) > alertScanWindow {
		recent = recent[:alertScanWindow]
	}

	var alerts []smart_irrigation.Alert
	for _, r := range recent {
		if r.SoilMoisture < droughtThresholdPct {
			alerts = append(alerts, smart_irrigation.Alert{
				ID:        fmt.Sprintf("drought-%d", r.ID),
				Type:      smart_irrigation.AlertDrought,
				Message:   fmt.Sprintf("Solo seco detectado (%.1f%%)", r.SoilMoisture),
				DeviceID:  r.DeviceID,
				Timestamp: r.Timestamp,
			})
		}
		if r.BatteryLevel < lowBatteryThresholdV {
			alerts = append(alerts, smart_irrigation.Alert{
				ID:        fmt.Sprintf("battery-%d", r.ID),
				Type:      smart_irrigation.AlertBattery,
				Message:   fmt.Sprintf("Bateria baixa (%.1fV)", r.BatteryLevel),
				DeviceID:  r.DeviceID,
				Timestamp: r.Timestamp,
			})
		}
	}

	// Stable sort keeps input order on equal timestamps.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	if len(alerts) > alertFeedLimit {
		alerts = alerts[:alertFeedLimit]
	}
	return alerts
}
