package store

import (
	"sort"
	"sync"

	"smart_irrigation"
)

// TelemetryStore holds the current ordered snapshot of sensor readings.
// Every successful fetch is authoritative and complete: Replace discards
// the previous sequence wholesale. There is no merge, dedup or append.
type TelemetryStore struct {
	mu       sync.RWMutex
	readings []smart_irrigation.SensorReading
}

func NewTelemetryStore() *TelemetryStore {
	return &TelemetryStore{}
}

// Replace swaps in a new snapshot, re-sorted newest-first. Input order is
// not trusted; the sort runs on every fetch.
func (s *TelemetryStore) Replace(readings []smart_irrigation.SensorReading) {
	next := make([]smart_irrigation.SensorReading, len(readings))
	copy(next, readings)
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Timestamp.After(next[j].Timestamp)
	})

	s.mu.Lock()
	s.readings = next
	s.mu.Unlock()
}

// Latest returns the most recent reading, or a sentinel "empty" reading
// (zero numerics, OFFLINE status, no timestamp) when no data has ever
// been received.
func (s *TelemetryStore) Latest() smart_irrigation.SensorReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.readings) == 0 {
		return smart_irrigation.SensorReading{Status: smart_irrigation.RawStatusOffline}
	}
	return s.readings[0]
}

// Snapshot returns a copy of the current readings, newest first.
func (s *TelemetryStore) Snapshot() []smart_irrigation.SensorReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]smart_irrigation.SensorReading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Len reports the number of readings in the current snapshot.
func (s *TelemetryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}
