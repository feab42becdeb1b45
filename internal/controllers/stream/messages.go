package stream

import (
	"encoding/json"

	"github.com/jrbassindale1/roomclimate/internal/costcarbon"
	"github.com/jrbassindale1/roomclimate/internal/sim"
	"github.com/jrbassindale1/roomclimate/internal/stats"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

// Message types exchanged with clients.
const (
	TypeAnnualResult = "annual:result"
	TypeScenario     = "scenario:current"
	TypeScenarioSet  = "scenario:set"
	TypeError        = "error"
)

// Envelope wraps every message with its type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals a payload into a typed envelope.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// AnnualResultPayload is the broadcast sent after each recompute: the run
// identity plus its aggregates, without the raw point series.
type AnnualResultPayload struct {
	RunID   string              `json:"runId"`
	Metrics stats.AnnualMetrics `json:"metrics"`
	Summary costcarbon.Summary  `json:"summary"`
}

// ScenarioPayload carries a scenario in either direction.
type ScenarioPayload struct {
	Scenario config.Scenario `json:"scenario"`
}

func annualPayload(run sim.AnnualRun) AnnualResultPayload {
	return AnnualResultPayload{
		RunID:   run.RunID,
		Metrics: run.Metrics,
		Summary: run.Summary,
	}
}
