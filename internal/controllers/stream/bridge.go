package stream

import (
	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
)

// Bridge implements sim.Callback and broadcasts fresh results to the hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnAnnualResult(run sim.AnnualRun) {
	msg, err := NewEnvelope(TypeAnnualResult, annualPayload(run))
	if err != nil {
		log.Errorf("marshaling annual result: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
