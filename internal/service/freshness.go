package service

import (
	"fmt"
	"time"

	"smart_irrigation"
)

const defaultFreshnessMinutes = 2

// FreshnessService decides whether the sensor network is online from the
// age of the most recent reading. The check runs against the wall clock at
// evaluation time, never against a cached flag, so a device flips to
// offline the instant its last reading crosses the threshold even if no
// new poll has happened.
type FreshnessService struct {
	threshold time.Duration
}

func NewFreshnessService(thresholdMinutes int) *FreshnessService {
	if thresholdMinutes <= 0 {
		thresholdMinutes = defaultFreshnessMinutes
	}
	return &FreshnessService{threshold: time.Duration(thresholdMinutes) * time.Minute}
}

// IsOnline reports whether the latest reading is fresh. A reading aged
// exactly at the threshold is already offline (strict less-than).
func (f *FreshnessService) IsOnline(latest smart_irrigation.SensorReading, now time.Time) bool {
	if latest.Timestamp.IsZero() {
		return false
	}
	return now.Sub(latest.Timestamp) < f.threshold
}

// TimeSinceReading formats the age of the latest reading for display.
// Tiers use integer-truncated division: 90s reads "Há 1 minutos".
func TimeSinceReading(latest smart_irrigation.SensorReading, now time.Time) string {
	if latest.Timestamp.IsZero() {
		return "Nunca"
	}

	secs := int64(now.Sub(latest.Timestamp).Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("Há %d segundos", secs)
	case secs < 3600:
		return fmt.Sprintf("Há %d minutos", secs/60)
	case secs < 86400:
		return fmt.Sprintf("Há %d horas", secs/3600)
	default:
		return fmt.Sprintf("Há %d dias", secs/86400)
	}
}
