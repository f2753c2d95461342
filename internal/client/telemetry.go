package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smart_irrigation"
)

// TelemetryClient fetches sensor readings from the backend API.
type TelemetryClient struct {
	base           string
	path           string
	irrigationPath string
	client         *http.Client
}

// NewTelemetryClient builds a client for the telemetry upstream. path is
// the readings collection path (e.g. /api/telemetry or /api/leituras);
// irrigationPath is the manual-irrigation action path.
func NewTelemetryClient(base, path, irrigationPath string, timeout time.Duration) *TelemetryClient {
	return &TelemetryClient{
		base:           strings.TrimRight(strings.TrimSpace(base), "/"),
		path:           normalizePath(path),
		irrigationPath: normalizePath(irrigationPath),
		client:         &http.Client{Timeout: timeout},
	}
}

func normalizePath(p string) string {
	return "/" + strings.TrimLeft(strings.TrimSpace(p), "/")
}

// Readings fetches the full list of readings. Order is not trusted; the
// store re-sorts on replace.
func (c *TelemetryClient) Readings(ctx context.Context) ([]smart_irrigation.SensorReading, error) {
	return c.getReadings(ctx, c.base+c.path)
}

// DeviceReadings fetches readings scoped to a single device.
func (c *TelemetryClient) DeviceReadings(ctx context.Context, deviceID string) ([]smart_irrigation.SensorReading, error) {
	return c.getReadings(ctx, c.base+c.path+"/device/"+url.PathEscape(deviceID))
}

func (c *TelemetryClient) getReadings(ctx context.Context, u string) ([]smart_irrigation.SensorReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telemetry request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("telemetry upstream status %d", resp.StatusCode)
	}

	var readings []smart_irrigation.SensorReading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return nil, fmt.Errorf("telemetry decode error: %w", err)
	}
	return readings, nil
}

// TriggerManualIrrigation fires the server-side manual irrigation action.
// No body is required; any 2xx response counts as accepted.
func (c *TelemetryClient) TriggerManualIrrigation(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+c.irrigationPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("irrigation request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("irrigation upstream status %d", resp.StatusCode)
	}
	return nil
}
