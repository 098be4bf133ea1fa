package health

import (
	"context"
	"sort"
	"time"
)

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

// Service runs the registered probes.
type Service struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{probes: map[string]Probe{}, timeout: 2 * time.Second}
}

// Register adds a named probe. A nil probe is ignored.
func (s *Service) Register(name string, probe Probe) {
	if probe == nil {
		return
	}
	s.probes[name] = probe
}

// Report is the health payload.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Status runs every probe and reports "ok" or the error text for each.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true}
	if len(s.probes) == 0 {
		return report
	}

	names := make([]string, 0, len(s.probes))
	for name := range s.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	report.Checks = make(map[string]string, len(names))
	for _, name := range names {
		probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.probes[name](probeCtx)
		cancel()
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
