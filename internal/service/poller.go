package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"smart_irrigation"
	"smart_irrigation/internal/logger"
	"smart_irrigation/internal/metrics"
	"smart_irrigation/internal/store"

	"github.com/google/uuid"
)

var errInvalidInterval = errors.New("poll interval must be a positive number of milliseconds")

// FetchReadings fetches the authoritative reading list from the upstream.
type FetchReadings func(ctx context.Context) ([]smart_irrigation.SensorReading, error)

// Poller drives the telemetry refresh cycle: an immediate fetch on Start,
// then one per tick, plus out-of-band fetches via Refresh that do not
// reset the ticker phase.
//
// Fetches are not mutually exclusive; a manual refresh can be in flight
// while a tick fires. Each fetch is tagged with a monotonically increasing
// sequence number and a completion older than the last applied one is
// discarded, so the store always reflects the most recently issued fetch
// rather than whichever response happens to land last.
//
// A failed fetch never stops the ticker and never clears the store: the
// previous snapshot is retained and a single error string is exposed until
// the next success.
type Poller struct {
	fetch    FetchReadings
	store    *store.TelemetryStore
	interval time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	seq     uint64
	applied uint64
	lastErr string
	running bool
	runCtx  context.Context
	cancel  context.CancelFunc
}

// NewPoller validates the caller-supplied interval (milliseconds, must be
// positive) and builds a stopped poller.
func NewPoller(fetch FetchReadings, st *store.TelemetryStore, intervalMs int, log *logger.Logger) (*Poller, error) {
	if intervalMs <= 0 {
		return nil, errInvalidInterval
	}
	return &Poller{
		fetch:    fetch,
		store:    st,
		interval: time.Duration(intervalMs) * time.Millisecond,
		log:      log,
	}, nil
}

// Start performs an immediate fetch and begins the recurring timer.
// Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.runCtx = runCtx
	p.cancel = cancel
	p.running = true
	p.mu.Unlock()

	go func() {
		p.fetchOnce(runCtx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.fetchOnce(runCtx)
			}
		}
	}()
}

// Stop cancels the timer. A fetch already in flight resolves on its own
// and its completion is dropped without touching the store.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	p.cancel()
}

// Refresh triggers an out-of-band fetch without resetting the timer phase.
// On a stopped poller it still fetches once, so a manual retry works after
// shutdown of the periodic cycle.
func (p *Poller) Refresh() {
	p.mu.Lock()
	ctx := p.runCtx
	p.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}
	go p.fetchOnce(ctx)
}

// LastError returns the user-visible error of the most recent failed
// fetch, or "" after a success.
func (p *Poller) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Poller) fetchOnce(ctx context.Context) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	fetchID := uuid.NewString()
	metrics.TelemetryFetchTotal.Inc()

	readings, err := p.fetch(ctx)
	if ctx.Err() != nil {
		// Torn down while in flight: completion is a no-op.
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		metrics.TelemetryFetchStale.Inc()
		p.log.Debugw("telemetry_fetch_stale", "fetch_id", fetchID, "seq", seq, "applied", p.applied)
		return
	}
	p.applied = seq

	if err != nil {
		metrics.TelemetryFetchFailures.Inc()
		p.lastErr = err.Error()
		p.log.Errorw("telemetry_fetch_failed", "err", err, "fetch_id", fetchID)
		return
	}

	p.store.Replace(readings)
	p.lastErr = ""
	metrics.TelemetryLastSuccess.Set(float64(time.Now().Unix()))
	metrics.ReadingsStored.Set(float64(len(readings)))
	metrics.ActiveAlerts.Set(float64(len(ClassifyAlerts(p.store.Snapshot()))))
	p.log.Debugw("telemetry_fetch_ok", "fetch_id", fetchID, "count", len(readings))
}
