package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTelemetryClient_Readings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/telemetry" {
			t.Errorf("path: want /api/telemetry, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"deviceId":"esp32-01","soilMoisture":42.5,"batteryLevel":3.7,"timestamp":"2026-08-30T10:00:00Z"},
			{"id":2,"sensorId":"lora-03","soilMoisture":61,"timestamp":"2026-08-30T10:05:00Z"}
		]`))
	}))
	defer srv.Close()

	c := NewTelemetryClient(srv.URL, "/api/telemetry", "/api/irrigacao", 5*time.Second)
	got, err := c.Readings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 readings, got %d", len(got))
	}
	if got[0].DeviceID != "esp32-01" || got[1].DeviceID != "lora-03" {
		t.Errorf("device ids: got %q and %q", got[0].DeviceID, got[1].DeviceID)
	}
}

func TestTelemetryClient_ReadingsUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewTelemetryClient(srv.URL, "/api/telemetry", "/api/irrigacao", 5*time.Second)
	if _, err := c.Readings(context.Background()); err == nil {
		t.Error("5xx response must surface as an error")
	}
}

func TestTelemetryClient_DeviceReadings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/telemetry/device/esp32-01" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"deviceId":"esp32-01","soilMoisture":50,"timestamp":"2026-08-30T10:00:00Z"}]`))
	}))
	defer srv.Close()

	c := NewTelemetryClient(srv.URL, "/api/telemetry", "/api/irrigacao", 5*time.Second)
	got, err := c.DeviceReadings(context.Background(), "esp32-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].DeviceID != "esp32-01" {
		t.Errorf("want one esp32-01 reading, got %+v", got)
	}
}

func TestTelemetryClient_TriggerManualIrrigation(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewTelemetryClient(srv.URL, "/api/telemetry", "/api/leituras/irrigacao-manual", 5*time.Second)
	if err := c.TriggerManualIrrigation(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method: want POST, got %s", gotMethod)
	}
	if gotPath != "/api/leituras/irrigacao-manual" {
		t.Errorf("path: got %s", gotPath)
	}
}

func TestTelemetryClient_TriggerManualIrrigationRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewTelemetryClient(srv.URL, "/api/telemetry", "/api/irrigacao", 5*time.Second)
	if err := c.TriggerManualIrrigation(context.Background()); err == nil {
		t.Error("non-2xx response must surface as an error")
	}
}
