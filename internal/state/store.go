package state

import (
	"sync"
	"time"

	"github.com/five82/lectio/internal/guideapi"
)

// offlineAfter is how many failed probes in a row mark the backend offline.
const offlineAfter = 2

// Snapshot is the latest backend health seen by the poller.
type Snapshot struct {
	Health    guideapi.HealthResponse
	HasHealth bool
	Latency   time.Duration

	LastUpdated time.Time
	LastError   error

	ConsecutiveFailures int
	// FailingSince is when the current run of failures started.
	FailingSince time.Time
	Probes       int
}

// IsOffline reports whether enough probes in a row have failed.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= offlineAfter
}

// Healthy reports whether the last probe succeeded with a healthy status.
func (s Snapshot) Healthy() bool {
	return s.HasHealth && s.LastError == nil && s.Health.Healthy()
}

// Store holds the snapshot shared between the poller and the UI.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Update records one probe. A failed probe keeps the last known health so the
// header can still show it next to the error.
func (s *Store) Update(health *guideapi.HealthResponse, latency time.Duration, err error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Probes++
	s.snap.LastUpdated = now

	if err != nil {
		if s.snap.ConsecutiveFailures == 0 {
			s.snap.FailingSince = now
		}
		s.snap.ConsecutiveFailures++
		s.snap.LastError = err
		return
	}

	s.snap.HasHealth = health != nil
	if health != nil {
		s.snap.Health = *health
	}
	s.snap.Latency = latency
	s.snap.LastError = nil
	s.snap.ConsecutiveFailures = 0
	s.snap.FailingSince = time.Time{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
