// Package sim is the memoized facade over the simulation engine. It owns
// the current scenario, recomputes annual results only when the scenario
// actually changes, and notifies subscribers on fresh results.
package sim

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jrbassindale1/roomclimate/internal/costcarbon"
	"github.com/jrbassindale1/roomclimate/internal/engine"
	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/stats"
	"github.com/jrbassindale1/roomclimate/internal/weather"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

// Callback receives fresh results after a recompute. Implementations must
// be safe for concurrent use; the service holds no lock while calling.
type Callback interface {
	OnAnnualResult(r AnnualRun)
}

// AnnualRun bundles everything one simulation run produced. RunID changes
// exactly when the scenario changes.
type AnnualRun struct {
	RunID    string              `json:"runId"`
	Scenario config.Scenario     `json:"scenario"`
	Annual   engine.AnnualResult `json:"annual"`
	Metrics  stats.AnnualMetrics `json:"metrics"`
	Summary  costcarbon.Summary  `json:"summary"`
	Elapsed  time.Duration       `json:"elapsedNs"`
}

// Service runs simulations against the current scenario and memoizes the
// annual result on a hash of the scenario.
type Service struct {
	mu       sync.Mutex
	scenario config.Scenario
	dataset  *epw.Dataset
	provider weather.Provider

	cachedKey uint64
	cached    *AnnualRun

	callback Callback
}

// NewService builds a service over a normalized scenario. dataset may be
// nil; EPW mode then falls back to climatology with a logged warning.
func NewService(scenario config.Scenario, dataset *epw.Dataset) *Service {
	s := &Service{dataset: dataset}
	s.setScenarioLocked(scenario)
	return s
}

// SetCallback registers the subscriber notified after each recompute.
func (s *Service) SetCallback(cb Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

// Scenario returns the current normalized scenario.
func (s *Service) Scenario() config.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario
}

// SetScenario replaces the current scenario. The memo key is left alone:
// a later Annual call decides whether anything actually changed.
func (s *Service) SetScenario(scenario config.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setScenarioLocked(scenario)
}

func (s *Service) setScenarioLocked(scenario config.Scenario) {
	s.scenario = scenario.Normalized()
	provider, fellBack := weather.NewProvider(&s.scenario, s.dataset)
	if fellBack {
		log.Warnf("EPW dataset unavailable, falling back to climatology")
	}
	s.provider = provider
}

// scenarioKey hashes the msgpack encoding of the scenario. Encoding
// failures are not expected for this struct; they disable memoization for
// the call rather than failing it.
func scenarioKey(sc *config.Scenario) (uint64, error) {
	b, err := msgpack.Marshal(sc)
	if err != nil {
		return 0, fmt.Errorf("encoding scenario for memo key: %w", err)
	}
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64(), nil
}

// Annual returns the annual run for the current scenario, recomputing
// only when the scenario changed since the last call. The returned
// pointer is shared; callers must not mutate it.
func (s *Service) Annual() *AnnualRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := scenarioKey(&s.scenario)
	if err == nil && s.cached != nil && key == s.cachedKey {
		return s.cached
	}

	started := time.Now()
	annual := engine.SimulateAnnual(s.scenario, s.provider)
	run := &AnnualRun{
		RunID:    uuid.New().String(),
		Scenario: s.scenario,
		Annual:   annual,
		Metrics:  stats.Aggregate(annual, s.scenario.Comfort),
		Summary:  costcarbon.Summarize(annual, s.scenario.Tariff),
		Elapsed:  time.Since(started),
	}
	log.Debugf("annual run %s computed in %v (%d points)", run.RunID, run.Elapsed, len(annual.Points))

	if err == nil {
		s.cachedKey = key
		s.cached = run
	} else {
		s.cached = nil
	}

	cb := s.callback
	if cb != nil {
		go cb.OnAnnualResult(*run)
	}
	return run
}

// Day simulates a single date under the current scenario. Day runs are
// cheap and not memoized.
func (s *Service) Day(date time.Time) engine.DayResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SimulateDay(s.scenario, s.provider, date)
}

// Snapshot evaluates the instantaneous balance at one moment under the
// current scenario, at the given indoor temperature.
func (s *Service) Snapshot(t time.Time, indoorC float64) engine.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SnapshotAt(s.scenario, s.provider, t, indoorC)
}

// WeatherMode reports which forcing source is live, for surfacing the
// EPW-fallback warning to clients.
func (s *Service) WeatherMode() config.WeatherMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider.Mode()
}
