package service

import (
	"context"

	"smart_irrigation"
	"smart_irrigation/internal/client"
	"smart_irrigation/internal/logger"
	"smart_irrigation/internal/metrics"

	"github.com/google/uuid"
)

// DeviceService passes per-device queries through to the upstream and
// fires the manual irrigation action.
type DeviceService struct {
	client *client.TelemetryClient
	poller TelemetryPolling
	log    *logger.Logger
}

func NewDeviceService(c *client.TelemetryClient, poller TelemetryPolling, log *logger.Logger) *DeviceService {
	return &DeviceService{client: c, poller: poller, log: log}
}

// DeviceReadings fetches the upstream readings scoped to one device.
func (s *DeviceService) DeviceReadings(ctx context.Context, deviceID string) ([]smart_irrigation.SensorReading, error) {
	return s.client.DeviceReadings(ctx, deviceID)
}

// TriggerManualIrrigation fires the server-side action and, on success,
// refreshes telemetry immediately so the manual action shows up without
// waiting for the next tick.
func (s *DeviceService) TriggerManualIrrigation(ctx context.Context) error {
	actionID := uuid.NewString()
	if err := s.client.TriggerManualIrrigation(ctx); err != nil {
		s.log.Errorw("manual_irrigation_failed", "err", err, "action_id", actionID)
		return err
	}
	metrics.ManualIrrigationTotal.Inc()
	s.log.Infow("manual_irrigation_accepted", "action_id", actionID)
	s.poller.Refresh()
	return nil
}
