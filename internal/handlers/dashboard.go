package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusTriggered = "triggered"
	statusRefreshed = "refresh_scheduled"

	errNoForecast       = "no forecast available yet"
	errDeviceReadings   = "failed to load device readings"
	errManualIrrigation = "failed to trigger manual irrigation"
	errMissingDeviceID  = "deviceId is required"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard snapshot
// @Description  Latest reading, status, freshness, alerts and recommendation composed in one view
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.Snapshot
// @Router       /api/v1/dashboard/snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Snapshot())
}

// @Summary      Alert feed
// @Description  Threshold-breach alerts from the recent readings, newest first, capped at 10
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/dashboard/alerts [get]
func (h *Handler) getAlerts(c *gin.Context) {
	alerts := h.services.Dashboard.Alerts()
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// @Summary      Chart series
// @Description  24 hourly buckets over the trailing day, oldest first; absent devices are chart gaps
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/dashboard/chart [get]
func (h *Handler) getChart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"buckets": h.services.Dashboard.Chart()})
}

// @Summary      Irrigation recommendation
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  smart_irrigation.Recommendation
// @Router       /api/v1/dashboard/recommendation [get]
func (h *Handler) getRecommendation(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Recommendation())
}

// @Summary      Rain forecast
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  smart_irrigation.RainForecast
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/dashboard/weather [get]
func (h *Handler) getWeather(c *gin.Context) {
	forecast, ok := h.services.Weather.Forecast()
	if !ok {
		msg := errNoForecast
		if lastErr := h.services.Weather.LastError(); lastErr != "" {
			msg = lastErr
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// @Summary      Device readings
// @Tags         devices
// @Produce      json
// @Param        deviceId  path  string  true  "Device identifier"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/devices/{deviceId}/readings [get]
func (h *Handler) getDeviceReadings(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingDeviceID})
		return
	}
	readings, err := h.services.Devices.DeviceReadings(c.Request.Context(), deviceID)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errDeviceReadings, "device_readings_failed", err, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deviceId": deviceID, "readings": readings})
}

// @Summary      Trigger manual irrigation
// @Description  Fires the server-side manual irrigation action and refreshes telemetry on success
// @Tags         irrigation
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/irrigation/manual [post]
func (h *Handler) manualIrrigation(c *gin.Context) {
	if err := h.services.Devices.TriggerManualIrrigation(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errManualIrrigation, "manual_irrigation_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusTriggered})
}

// @Summary      Manual refresh
// @Description  Schedules an out-of-band telemetry fetch without resetting the poll timer
// @Tags         dashboard
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /api/v1/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	h.services.Telemetry.Refresh()
	c.JSON(http.StatusAccepted, gin.H{"status": statusRefreshed})
}
