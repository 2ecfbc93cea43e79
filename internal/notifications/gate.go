package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AvailableMessage is broadcast exactly once when a maintenance window ends.
const AvailableMessage = "AVAILABLE"

// Broadcaster is the hub surface the gate drives.
type Broadcaster interface {
	Broadcast(message string)
}

// MaintenanceGate polls the maintenance-window table on a fixed cadence and
// holds the Idle/Active flag request middleware reads. The Active -> Idle
// transition is edge-triggered: it fires one AVAILABLE broadcast, never more,
// regardless of how many polls observe the idle state afterwards.
type MaintenanceGate struct {
	check       func(ctx context.Context) (bool, error)
	broadcaster Broadcaster
	interval    time.Duration

	mu     sync.Mutex
	active bool
}

func NewMaintenanceGate(check func(ctx context.Context) (bool, error), b Broadcaster, interval time.Duration) *MaintenanceGate {
	return &MaintenanceGate{check: check, broadcaster: b, interval: interval}
}

// Active reports whether a maintenance window currently covers now, as of
// the last poll. Never touches storage, so it is safe on the request path.
func (g *MaintenanceGate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Run polls until ctx is cancelled. Meant for its own goroutine.
func (g *MaintenanceGate) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (g *MaintenanceGate) poll(ctx context.Context) {
	active, err := g.check(ctx)
	if err != nil {
		// Keep the previous state; a transient storage error must not
		// open the gate mid-window or double-fire the edge.
		slog.Error("maintenance window check failed", "error", err)
		return
	}

	g.mu.Lock()
	ended := g.active && !active
	g.active = active
	g.mu.Unlock()

	if ended {
		slog.Info("maintenance window ended, notifying subscribers")
		g.broadcaster.Broadcast(AvailableMessage)
	}
}
