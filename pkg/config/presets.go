package config

// UValuePreset bundles fabric U-values (W/m2K) with the glazing's solar and
// visible transmission properties.
type UValuePreset struct {
	Name                 string  `json:"name"`
	Wall                 float64 `json:"wall"`
	Roof                 float64 `json:"roof"`
	Floor                float64 `json:"floor"`
	Window               float64 `json:"window"`
	GValue               float64 `json:"gValue"`
	VisibleTransmittance float64 `json:"visibleTransmittance"`
}

var uValuePresets = map[string]UValuePreset{
	"standard":   {Name: "standard", Wall: 0.28, Roof: 0.16, Floor: 0.22, Window: 1.6, GValue: 0.63, VisibleTransmittance: 0.76},
	"upgraded":   {Name: "upgraded", Wall: 0.18, Roof: 0.13, Floor: 0.15, Window: 1.2, GValue: 0.55, VisibleTransmittance: 0.71},
	"passivhaus": {Name: "passivhaus", Wall: 0.12, Roof: 0.10, Floor: 0.10, Window: 0.8, GValue: 0.50, VisibleTransmittance: 0.69},
}

// UValuePresetByName looks up a fabric preset; the "standard" preset is
// returned for unknown names.
func UValuePresetByName(name string) UValuePreset {
	if p, ok := uValuePresets[name]; ok {
		return p
	}
	return uValuePresets["standard"]
}

// VentilationPreset bundles a base whole-room air-change rate with a heat
// recovery efficiency; adaptive presets let the policy engine drive the
// rate instead.
type VentilationPreset struct {
	Name         string  `json:"name"`
	ACHTotal     float64 `json:"achTotal"`
	HeatRecovery float64 `json:"heatRecoveryEfficiency"`
	IsAdaptive   bool    `json:"isAdaptive"`
}

var ventilationPresets = map[string]VentilationPreset{
	"background": {Name: "background", ACHTotal: 0.3},
	"trickle":    {Name: "trickle", ACHTotal: 0.6},
	"purge":      {Name: "purge", ACHTotal: 4.0},
	"mvhr":       {Name: "mvhr", ACHTotal: 0.5, HeatRecovery: 0.9},
	"adaptive":   {Name: "adaptive", ACHTotal: 0.6, IsAdaptive: true},
}

// VentilationPresetByName looks up a ventilation preset; "background" is
// returned for unknown names.
func VentilationPresetByName(name string) VentilationPreset {
	if p, ok := ventilationPresets[name]; ok {
		return p
	}
	return ventilationPresets["background"]
}

// PurgePreset returns the preset whose rate the night-purge boost uses.
func PurgePreset() VentilationPreset {
	return ventilationPresets["purge"]
}
