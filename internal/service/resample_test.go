package service

import (
	"testing"
	"time"

	"smart_irrigation"
)

func chartReading(id int64, device string, moisture float64, ts time.Time) smart_irrigation.SensorReading {
	return smart_irrigation.SensorReading{ID: id, DeviceID: device, SoilMoisture: moisture, Timestamp: ts}
}

func TestResample_GridShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	buckets := Resample(nil, []string{"esp32-01"}, now)

	if len(buckets) != chartBucketCount {
		t.Fatalf("bucket count: want %d, got %d", chartBucketCount, len(buckets))
	}
	// Oldest bucket first: 23 hours back, then forward to now.
	if buckets[0].TimeLabel != "19:00" {
		t.Errorf("first bucket label: want 19:00, got %q", buckets[0].TimeLabel)
	}
	if buckets[len(buckets)-1].TimeLabel != "18:00" {
		t.Errorf("last bucket label: want 18:00, got %q", buckets[len(buckets)-1].TimeLabel)
	}
	for i, b := range buckets {
		if len(b.Values) != 0 {
			t.Errorf("bucket %d: want empty values, got %v", i, b.Values)
		}
	}
}

func TestResample_NearestNeighborWithinWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	// Reading 45 minutes before the 17:00 bucket and 15 minutes before the
	// 16:00... lands at 16:15: nearest slot is 16:00 (15 min away).
	r := chartReading(1, "esp32-01", 47.26, now.Add(-time.Hour-45*time.Minute))

	buckets := Resample([]smart_irrigation.SensorReading{r}, []string{"esp32-01"}, now)

	var hits []string
	for _, b := range buckets {
		if v, ok := b.Values["esp32-01"]; ok {
			hits = append(hits, b.TimeLabel)
			if v != 47.3 {
				t.Errorf("bucket %s: want value rounded to 47.3, got %v", b.TimeLabel, v)
			}
		}
	}
	// Slots 16:00 and 17:00 are both within one hour of 16:15.
	if len(hits) != 2 || hits[0] != "16:00" || hits[1] != "17:00" {
		t.Errorf("buckets hit: want [16:00 17:00], got %v", hits)
	}
}

func TestResample_ReadingTooFarFromEverySlot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	// 65 minutes past the newest slot: at least 65 minutes from every grid
	// point, so the device appears in no bucket.
	r := chartReading(1, "esp32-01", 50, now.Add(65*time.Minute))

	buckets := Resample([]smart_irrigation.SensorReading{r}, []string{"esp32-01"}, now)
	for _, b := range buckets {
		if _, ok := b.Values["esp32-01"]; ok {
			t.Errorf("bucket %s: want gap, got value", b.TimeLabel)
		}
	}
}

func TestResample_PicksNearestNotFirst(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	slot := now.Add(-2 * time.Hour) // 16:00 bucket
	readings := []smart_irrigation.SensorReading{
		chartReading(1, "esp32-01", 70, slot.Add(40*time.Minute)),
		chartReading(2, "esp32-01", 30, slot.Add(5*time.Minute)),
	}

	buckets := Resample(readings, []string{"esp32-01"}, now)
	for _, b := range buckets {
		if b.TimeLabel == "16:00" {
			if v := b.Values["esp32-01"]; v != 30 {
				t.Errorf("16:00 bucket: want nearest value 30, got %v", v)
			}
			return
		}
	}
	t.Fatal("16:00 bucket not found")
}

func TestResample_EquidistantKeepsFirstEncountered(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	slot := now.Add(-2 * time.Hour)
	readings := []smart_irrigation.SensorReading{
		chartReading(1, "esp32-01", 61, slot.Add(10*time.Minute)),
		chartReading(2, "esp32-01", 39, slot.Add(-10*time.Minute)),
	}

	buckets := Resample(readings, []string{"esp32-01"}, now)
	for _, b := range buckets {
		if b.TimeLabel == "16:00" {
			if v := b.Values["esp32-01"]; v != 61 {
				t.Errorf("16:00 bucket: want first equidistant reading 61, got %v", v)
			}
			return
		}
	}
	t.Fatal("16:00 bucket not found")
}

func TestResample_DiscardsReadingsOutsideWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	readings := []smart_irrigation.SensorReading{
		chartReading(1, "esp32-01", 50, now.Add(-30*time.Hour)),
		chartReading(2, "esp32-01", 50, time.Time{}), // zero timestamp never charts
	}

	buckets := Resample(readings, []string{"esp32-01"}, now)
	for _, b := range buckets {
		if _, ok := b.Values["esp32-01"]; ok {
			t.Errorf("bucket %s: stale reading charted", b.TimeLabel)
		}
	}
}

func TestChartDeviceIDs(t *testing.T) {
	t.Parallel()

	now := time.Now()
	readings := []smart_irrigation.SensorReading{
		chartReading(1, "esp32-02", 50, now),
		chartReading(2, "esp32-01", 50, now),
		chartReading(3, "esp32-02", 50, now),
		chartReading(4, "", 50, now),
	}

	got := ChartDeviceIDs(readings)
	if len(got) != 2 || got[0] != "esp32-02" || got[1] != "esp32-01" {
		t.Errorf("want [esp32-02 esp32-01] in first-seen order, got %v", got)
	}
}
