package service

import (
	"fmt"
	"testing"
	"time"

	"smart_irrigation"
)

func alertReading(id int64, moisture, battery float64, ts time.Time) smart_irrigation.SensorReading {
	return smart_irrigation.SensorReading{
		ID:           id,
		DeviceID:     "esp32-01",
		SoilMoisture: moisture,
		BatteryLevel: battery,
		Timestamp:    ts,
	}
}

func TestClassifyAlerts_Thresholds(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		moisture  float64
		battery   float64
		wantTypes []smart_irrigation.AlertType
	}{
		{name: "moisture exactly 30 is not a drought", moisture: 30, battery: 4.0, wantTypes: nil},
		{name: "moisture 29.999 is a drought", moisture: 29.999, battery: 4.0, wantTypes: []smart_irrigation.AlertType{smart_irrigation.AlertDrought}},
		{name: "battery exactly 3.2 is not low", moisture: 80, battery: 3.2, wantTypes: nil},
		{name: "battery 3.199 is low", moisture: 80, battery: 3.199, wantTypes: []smart_irrigation.AlertType{smart_irrigation.AlertBattery}},
		{name: "one reading can fire both", moisture: 10, battery: 3.0, wantTypes: []smart_irrigation.AlertType{smart_irrigation.AlertDrought, smart_irrigation.AlertBattery}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyAlerts([]smart_irrigation.SensorReading{alertReading(1, tc.moisture, tc.battery, now)})
			if len(got) != len(tc.wantTypes) {
				t.Fatalf("alert count: want %d, got %d (%+v)", len(tc.wantTypes), len(got), got)
			}
			for i, want := range tc.wantTypes {
				if got[i].Type != want {
					t.Errorf("alert %d type: want %s, got %s", i, want, got[i].Type)
				}
			}
		})
	}
}

func TestClassifyAlerts_Messages(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := ClassifyAlerts([]smart_irrigation.SensorReading{alertReading(42, 12.34, 3.1, now)})
	if len(got) != 2 {
		t.Fatalf("want 2 alerts, got %d", len(got))
	}
	if got[0].Message != "Solo seco detectado (12.3%)" {
		t.Errorf("drought message: got %q", got[0].Message)
	}
	if got[0].ID != "drought-42" {
		t.Errorf("drought id: got %q", got[0].ID)
	}
	if got[1].Message != "Bateria baixa (3.1V)" {
		t.Errorf("battery message: got %q", got[1].Message)
	}
	if got[1].ID != "battery-42" {
		t.Errorf("battery id: got %q", got[1].ID)
	}
}

func TestClassifyAlerts_SortedAndCapped(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 20 dry readings, oldest first in the input, all within the scan window.
	var readings []smart_irrigation.SensorReading
	for i := 0; i < 20; i++ {
		readings = append(readings, alertReading(int64(i), 10, 4.0, now.Add(time.Duration(i)*time.Minute)))
	}

	got := ClassifyAlerts(readings)
	if len(got) != alertFeedLimit {
		t.Fatalf("feed size: want %d, got %d", alertFeedLimit, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("feed not sorted newest-first at index %d", i)
		}
	}
	if got[0].ID != fmt.Sprintf("drought-%d", 19) {
		t.Errorf("newest alert first: got %q", got[0].ID)
	}
}

func TestClassifyAlerts_ScanWindowIsStoreOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Store order is newest first; only the first 50 entries are scanned.
	var readings []smart_irrigation.SensorReading
	for i := 0; i < alertScanWindow; i++ {
		readings = append(readings, alertReading(int64(i), 80, 4.0, now.Add(-time.Duration(i)*time.Minute)))
	}
	// A dry reading beyond the window must never alert.
	readings = append(readings, alertReading(999, 5, 2.0, now.Add(-time.Hour)))

	if got := ClassifyAlerts(readings); len(got) != 0 {
		t.Errorf("reading outside scan window alerted: %+v", got)
	}
}

func TestClassifyAlerts_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := ClassifyAlerts(nil); len(got) != 0 {
		t.Errorf("want no alerts, got %+v", got)
	}
}
