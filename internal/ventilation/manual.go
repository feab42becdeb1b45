// Package ventilation computes the effective whole-room air-change rate and
// heat-recovery efficiency at each simulation instant, combining the active
// preset, automatic controls (adaptive, MVHR, night purge), and manual
// window/rooflight openings.
package ventilation

import (
	"math"

	"github.com/jrbassindale1/roomclimate/internal/envelope"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

// Flow regime labels for manual openings.
const (
	FlowNone        = "none"
	FlowCross       = "cross"
	FlowSingleSided = "single-sided"
	FlowStack       = "stack"
)

// Orifice-flow constants for the manual ventilation estimate.
const (
	crossVentCoeff    = 0.55 // wind-driven cross flow through opposing openings
	singleSidedCoeff  = 1.0 / 3.0
	stackDischarge    = 0.4
	windAssistCoeff   = 0.025
	referenceWindMS   = 3.0 // used when no wind data constrains the estimate
	gravity           = 9.81
	kelvinAtFreezing  = 273.15
	minTempDifference = 0.1 // K, below this buoyancy flow is negligible
)

// ManualVentInput describes the current manual opening state.
type ManualVentInput struct {
	Opened      envelope.OpenedArea
	Rooflight   envelope.ResolvedRooflight
	RoomHeightM float64
	VolumeM3    float64
	IndoorC     float64
	OutdoorC    float64
	WindSpeedMS float64 // <= 0 means no wind data; a fixed reference is used
}

// ManualVentResult is the air-change rate contributed by manual openings.
type ManualVentResult struct {
	ACH  float64 `json:"ach"`
	Mode string  `json:"mode"`
}

// ManualWindowVentilation estimates the air-change rate from manually
// opened windows and the rooflight. Openings on opposing faces give
// wind-driven cross ventilation; wall openings alone give buoyancy-driven
// single-sided flow; a rooflight (alone or combined with low openings)
// gives stack flow. Wind direction is not resolved; a fixed reference wind
// speed stands in when none is supplied.
func ManualWindowVentilation(in ManualVentInput) ManualVentResult {
	wallArea := in.Opened.TotalOpenAreaM2
	roofArea := in.Rooflight.OpeningAreaM2
	if wallArea <= 0 && roofArea <= 0 {
		return ManualVentResult{Mode: FlowNone}
	}
	if in.VolumeM3 <= 0 {
		return ManualVentResult{Mode: FlowNone}
	}

	wind := in.WindSpeedMS
	if wind <= 0 {
		wind = referenceWindMS
	}

	deltaT := math.Abs(in.IndoorC - in.OutdoorC)
	meanK := (in.IndoorC+in.OutdoorC)/2 + kelvinAtFreezing

	var flowM3S float64
	var mode string

	switch {
	case roofArea > 0 && wallArea > 0:
		// Low inlet, high outlet: stack flow over the full room height.
		mode = FlowStack
		aEff := math.Min(wallArea, roofArea)
		stackHeight := math.Max(0.5, in.RoomHeightM-in.Opened.MeanOpeningHeightM/2)
		flowM3S = stackFlow(aEff, stackHeight, deltaT, meanK)
	case roofArea > 0:
		mode = FlowStack
		flowM3S = stackFlow(roofArea, math.Max(0.5, in.Rooflight.OpenHeightM+0.5), deltaT, meanK)
	case hasOpposingOpenings(in.Opened.ByFace):
		mode = FlowCross
		flowM3S = crossVentCoeff * opposingEffectiveArea(in.Opened.ByFace) * wind
	default:
		mode = FlowSingleSided
		h := math.Max(0.5, in.Opened.MeanOpeningHeightM)
		buoyancy := singleSidedCoeff * wallArea * math.Sqrt(gravity*h*math.Max(minTempDifference, deltaT)/meanK) / 2
		flowM3S = buoyancy + windAssistCoeff*wallArea*wind
	}

	ach := flowM3S * 3600 / in.VolumeM3
	if math.IsNaN(ach) || math.IsInf(ach, 0) || ach < 0 {
		ach = 0
	}
	return ManualVentResult{ACH: ach, Mode: mode}
}

func stackFlow(areaM2, heightM, deltaT, meanK float64) float64 {
	return stackDischarge * areaM2 * math.Sqrt(2*gravity*heightM*math.Max(minTempDifference, deltaT)/meanK)
}

func hasOpposingOpenings(byFace [4]float64) bool {
	return (byFace[config.FaceNorth] > 0 && byFace[config.FaceSouth] > 0) ||
		(byFace[config.FaceEast] > 0 && byFace[config.FaceWest] > 0)
}

// opposingEffectiveArea sums, per opposing pair, the smaller of the two
// sides; the tighter side throttles cross flow.
func opposingEffectiveArea(byFace [4]float64) float64 {
	ns := math.Min(byFace[config.FaceNorth], byFace[config.FaceSouth])
	ew := math.Min(byFace[config.FaceEast], byFace[config.FaceWest])
	return ns + ew
}
