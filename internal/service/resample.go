package service

import (
	"math"
	"time"

	"smart_irrigation"
)

// Chart grid: one bucket per hour over the trailing 24-hour window. A
// reading qualifies for a bucket only when it lies strictly within one
// hour of the bucket time.
const (
	chartBucketCount    = 24
	chartBucketSpacing  = time.Hour
	chartNeighborWindow = time.Hour
)

// ChartDeviceIDs lists the device ids present in the readings, in
// first-seen order.
func ChartDeviceIDs(readings []smart_irrigation.SensorReading) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range readings {
		if r.DeviceID == "" || seen[r.DeviceID] {
			continue
		}
		seen[r.DeviceID] = true
		ids = append(ids, r.DeviceID)
	}
	return ids
}

// Resample projects raw readings onto the fixed hourly grid, oldest bucket
// first. Per bucket and device the nearest reading within the window is
// selected (point selection, not averaging), its moisture rounded to one
// decimal. Buckets with no qualifying reading leave the device absent,
// producing a gap rather than a zero. Equidistant candidates resolve to
// the first one encountered in input order.
func Resample(readings []smart_irrigation.SensorReading, deviceIDs []string, now time.Time) []smart_irrigation.ChartBucket {
	windowStart := now.Add(-time.Duration(chartBucketCount) * chartBucketSpacing)

	byDevice := make(map[string][]smart_irrigation.SensorReading, len(deviceIDs))
	for _, r := range readings {
		if r.Timestamp.IsZero() || r.Timestamp.Before(windowStart) {
			continue
		}
		byDevice[r.DeviceID] = append(byDevice[r.DeviceID], r)
	}

	buckets := make([]smart_irrigation.ChartBucket, 0, chartBucketCount)
	for i := chartBucketCount - 1; i >= 0; i-- {
		bucketTime := now.Add(-time.Duration(i) * chartBucketSpacing)
		bucket := smart_irrigation.ChartBucket{
			TimeLabel: bucketTime.Format("15:04"),
			Values:    make(map[string]float64),
		}

		for _, id := range deviceIDs {
			if v, ok := nearestMoisture(byDevice[id], bucketTime); ok {
				bucket.Values[id] = v
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// nearestMoisture picks the reading closest to the bucket time, rounded to
// one decimal place. Strict less-than on the distance comparison keeps the
// first of two equidistant readings.
func nearestMoisture(readings []smart_irrigation.SensorReading, bucketTime time.Time) (float64, bool) {
	best := chartNeighborWindow
	found := false
	var value float64
	for _, r := range readings {
		diff := r.Timestamp.Sub(bucketTime)
		if diff < 0 {
			diff = -diff
		}
		if diff < best {
			best = diff
			value = r.SoilMoisture
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return math.Round(value*10) / 10, true
}
