package services

import (
	"context"
	"errors"
	"time"

	"github.com/carhubapp/carhub-server/internal/store"
)

// ErrWindowInPast rejects a maintenance window whose shifted end does not
// lie in the future.
var ErrWindowInPast = errors.New("maintenance window must end in the future")

// MaintenanceService creates maintenance windows and answers the "is a
// window active right now" question the gate polls.
type MaintenanceService struct {
	store      store.MaintenanceStore
	startDelay time.Duration
}

func NewMaintenanceService(st store.MaintenanceStore, startDelay time.Duration) *MaintenanceService {
	return &MaintenanceService{store: st, startDelay: startDelay}
}

// StartWindow schedules a window ending at endTime. Both bounds are shifted
// forward by the configured delay so in-flight requests can drain and
// subscribers get advance notice before enforcement begins.
func (s *MaintenanceService) StartWindow(ctx context.Context, endTime time.Time) error {
	start := time.Now().UTC().Add(s.startDelay)
	end := endTime.UTC().Add(s.startDelay)
	if !end.After(start) {
		return ErrWindowInPast
	}
	return s.store.CreateWindow(ctx, start, end)
}

// ActiveNow reports whether any window covers the current instant.
func (s *MaintenanceService) ActiveNow(ctx context.Context) (bool, error) {
	return s.store.WindowActiveAt(ctx, time.Now().UTC())
}
