package ventilation

import "github.com/jrbassindale1/roomclimate/pkg/config"

// Control mode labels reported per timestep.
const (
	ModeAdaptive   = "adaptive"
	ModeMVHR       = "mvhr"
	ModeMVHRBypass = "mvhr-bypass"
	ModeNightPurge = "night-purge"
	ModePreset     = "preset"
)

// Adaptive-ventilation reason tags.
const (
	ReasonDayCooling   = "day-cooling"
	ReasonNightCooling = "night-cooling"
	ReasonNightFloor   = "night-floor"
	ReasonOutdoorWarm  = "outdoor-warm"
	ReasonComfortable  = "comfortable"
)

// Empirically chosen control constants. These are preserved as-is from the
// reference behavior; annual-energy comparisons depend on their exact
// values.
const (
	adaptiveACHMin     = 0.6
	adaptiveACHMax     = 6.0
	adaptiveNightACH   = 4.0
	adaptiveHoldACH    = 1.5
	adaptiveWarmACH    = 0.8
	mvhrBoostFactor    = 1.5
	occupiedStartHour  = 7.0
	occupiedEndHour    = 22.0
	purgeStartHour     = 22.0
	purgeEndHour       = 6.0
	bypassMinOutdoorC  = 14.0 // free cooling only useful above this
)

// PolicyInput is everything the policy engine dispatches on for one step.
type PolicyInput struct {
	Preset          config.VentilationPreset
	AdaptiveEnabled bool
	MVHRAuto        bool
	NightPurge      bool
	Comfort         config.ComfortBand
	IndoorC         float64
	OutdoorC        float64
	HourOfDay       float64
	Manual          ManualVentInput
}

// Result is the resolved ventilation state for one step.
type Result struct {
	ACH          float64 `json:"achTotal"`
	HeatRecovery float64 `json:"heatRecoveryEfficiency"`
	Mode         string  `json:"mode"`
	Reason       string  `json:"reason,omitempty"`
	ManualACH    float64 `json:"manualACH"`
	ManualMode   string  `json:"manualMode"`
}

// Resolve applies the control precedence: adaptive automation, then MVHR
// auto-control, then night purge, then the preset's base rate. Manual
// openings always add on top and force heat recovery to zero, since fresh
// air entering through an open window bypasses the heat exchanger.
func Resolve(in PolicyInput) Result {
	var out Result

	switch {
	case in.AdaptiveEnabled || in.Preset.IsAdaptive:
		out.Mode = ModeAdaptive
		out.ACH, out.Reason = adaptiveRate(in)
	case in.MVHRAuto && in.Preset.HeatRecovery > 0:
		out.ACH = in.Preset.ACHTotal
		if isOccupiedHour(in.HourOfDay) {
			out.ACH *= mvhrBoostFactor
		}
		out.HeatRecovery = in.Preset.HeatRecovery
		out.Mode = ModeMVHR
		// Summer bypass: outdoor air is cooler than the room but still
		// warm enough that free cooling beats heat recovery.
		if in.OutdoorC < in.IndoorC && in.OutdoorC > bypassMinOutdoorC {
			out.HeatRecovery = 0
			out.Mode = ModeMVHRBypass
		}
	case in.NightPurge:
		out.Mode = ModePreset
		out.ACH = in.Preset.ACHTotal
		out.HeatRecovery = in.Preset.HeatRecovery
		if isPurgeHour(in.HourOfDay) {
			out.Mode = ModeNightPurge
			out.ACH = config.PurgePreset().ACHTotal
			out.HeatRecovery = 0
		}
	default:
		out.Mode = ModePreset
		out.ACH = in.Preset.ACHTotal
		out.HeatRecovery = in.Preset.HeatRecovery
	}

	manual := ManualWindowVentilation(in.Manual)
	out.ManualACH = manual.ACH
	out.ManualMode = manual.Mode
	out.ACH += manual.ACH
	if manual.ACH > 0 {
		out.HeatRecovery = 0
	}

	return out
}

// adaptiveRate picks an air-change rate within [adaptiveACHMin,
// adaptiveACHMax] from the relationship between indoor and outdoor
// temperature and the comfort band, tagging the reason.
func adaptiveRate(in PolicyInput) (float64, string) {
	coolingOpportunity := in.OutdoorC < in.IndoorC

	if coolingOpportunity {
		switch {
		case in.IndoorC > in.Comfort.MaxC:
			if isOccupiedHour(in.HourOfDay) {
				return adaptiveACHMax, ReasonDayCooling
			}
			return adaptiveNightACH, ReasonNightCooling
		case in.IndoorC < in.Comfort.MinC:
			return adaptiveACHMin, ReasonNightFloor
		default:
			return adaptiveHoldACH, ReasonComfortable
		}
	}

	if in.IndoorC < in.Comfort.MinC {
		return adaptiveACHMin, ReasonNightFloor
	}
	return adaptiveWarmACH, ReasonOutdoorWarm
}

func isOccupiedHour(h float64) bool {
	return h >= occupiedStartHour && h < occupiedEndHour
}

func isPurgeHour(h float64) bool {
	return h >= purgeStartHour || h < purgeEndHour
}
