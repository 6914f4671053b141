package dshot

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Counters is a point-in-time copy of the Stats counters.
type Counters struct {
	Total        int
	Disarmed     int
	Commands     int
	Throttles    int
	CRCFailures  int
	LengthErrors int
	Telemetry    int

	MinThrottle uint16
	MaxThrottle uint16
}

// Stats aggregates decoded frames. Observe can be registered with WithObserver and may be
// called from several goroutines.
type Stats struct {
	mu            sync.Mutex
	c             Counters
	commandCounts map[Command]int
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c
}

// Observe records one frame.
func (s *Stats) Observe(f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.c.Total++
	if !f.CRC.Pass {
		s.c.CRCFailures++
	}
	if f.TelemetryRequest {
		s.c.Telemetry++
	}
	switch f.Kind {
	case KindDisarmed:
		s.c.Disarmed++
	case KindCommand:
		s.c.Commands++
		if s.commandCounts == nil {
			s.commandCounts = make(map[Command]int)
		}
		s.commandCounts[f.Command]++
	case KindThrottle:
		if s.c.Throttles == 0 || f.Throttle < s.c.MinThrottle {
			s.c.MinThrottle = f.Throttle
		}
		if s.c.Throttles == 0 || f.Throttle > s.c.MaxThrottle {
			s.c.MaxThrottle = f.Throttle
		}
		s.c.Throttles++
	}
}

// ObserveError records a capture that produced no frame.
func (s *Stats) ObserveError(err error) {
	if !errors.Is(err, ErrInputLength) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.LengthErrors++
}

// CommandCounts returns a copy of the per-command frame counts.
func (s *Stats) CommandCounts() map[Command]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Command]int, len(s.commandCounts))
	for c, n := range s.commandCounts {
		out[c] = n
	}
	return out
}
