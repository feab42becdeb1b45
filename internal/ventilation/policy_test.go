package ventilation

import (
	"testing"

	"github.com/jrbassindale1/roomclimate/internal/envelope"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

var testBand = config.ComfortBand{MinC: 20, MaxC: 25}

func baseInput() PolicyInput {
	return PolicyInput{
		Preset:    config.VentilationPresetByName("trickle"),
		Comfort:   testBand,
		IndoorC:   22,
		OutdoorC:  10,
		HourOfDay: 12,
		Manual: ManualVentInput{
			RoomHeightM: 3,
			VolumeM3:    144,
			IndoorC:     22,
			OutdoorC:    10,
		},
	}
}

func TestResolvePresetBase(t *testing.T) {
	out := Resolve(baseInput())
	if out.Mode != ModePreset {
		t.Errorf("mode = %q, want preset", out.Mode)
	}
	if out.ACH != 0.6 {
		t.Errorf("ach = %v, want trickle base 0.6", out.ACH)
	}
}

func TestResolveAdaptiveReasons(t *testing.T) {
	tests := []struct {
		name       string
		indoor     float64
		outdoor    float64
		hour       float64
		wantReason string
		wantACH    float64
	}{
		{"hot room cool day", 27, 18, 14, ReasonDayCooling, adaptiveACHMax},
		{"hot room cool night", 27, 18, 2, ReasonNightCooling, adaptiveNightACH},
		{"cold room", 17, 5, 3, ReasonNightFloor, adaptiveACHMin},
		{"comfortable with cooling available", 23, 15, 14, ReasonComfortable, adaptiveHoldACH},
		{"outdoor warmer than room", 23, 28, 14, ReasonOutdoorWarm, adaptiveWarmACH},
		{"cold room warm outside", 18, 25, 14, ReasonNightFloor, adaptiveACHMin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.AdaptiveEnabled = true
			in.IndoorC = tt.indoor
			in.OutdoorC = tt.outdoor
			in.HourOfDay = tt.hour
			in.Manual.IndoorC = tt.indoor
			in.Manual.OutdoorC = tt.outdoor

			out := Resolve(in)
			if out.Mode != ModeAdaptive {
				t.Fatalf("mode = %q, want adaptive", out.Mode)
			}
			if out.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", out.Reason, tt.wantReason)
			}
			if out.ACH != tt.wantACH {
				t.Errorf("ach = %v, want %v", out.ACH, tt.wantACH)
			}
			if out.ACH < adaptiveACHMin || out.ACH > adaptiveACHMax {
				t.Errorf("ach %v outside adaptive band", out.ACH)
			}
		})
	}
}

func TestResolveMVHR(t *testing.T) {
	in := baseInput()
	in.Preset = config.VentilationPresetByName("mvhr")
	in.MVHRAuto = true

	// Occupied hour: boosted rate, heat recovery active.
	in.HourOfDay = 9
	in.OutdoorC = 2
	out := Resolve(in)
	if out.Mode != ModeMVHR {
		t.Errorf("mode = %q, want mvhr", out.Mode)
	}
	if out.ACH != in.Preset.ACHTotal*mvhrBoostFactor {
		t.Errorf("boosted ach = %v", out.ACH)
	}
	if out.HeatRecovery != in.Preset.HeatRecovery {
		t.Errorf("heat recovery = %v, want %v", out.HeatRecovery, in.Preset.HeatRecovery)
	}

	// Unoccupied hour: base rate.
	in.HourOfDay = 3
	if out := Resolve(in); out.ACH != in.Preset.ACHTotal {
		t.Errorf("night ach = %v, want base %v", out.ACH, in.Preset.ACHTotal)
	}

	// Summer bypass: mild outdoor air below room temperature.
	in.HourOfDay = 14
	in.IndoorC = 25
	in.OutdoorC = 18
	out = Resolve(in)
	if out.Mode != ModeMVHRBypass {
		t.Errorf("mode = %q, want mvhr-bypass", out.Mode)
	}
	if out.HeatRecovery != 0 {
		t.Errorf("bypass heat recovery = %v, want 0", out.HeatRecovery)
	}
}

func TestResolveNightPurge(t *testing.T) {
	in := baseInput()
	in.NightPurge = true

	in.HourOfDay = 23
	out := Resolve(in)
	if out.Mode != ModeNightPurge {
		t.Errorf("mode = %q, want night-purge", out.Mode)
	}
	if out.ACH != config.PurgePreset().ACHTotal {
		t.Errorf("purge ach = %v, want %v", out.ACH, config.PurgePreset().ACHTotal)
	}

	in.HourOfDay = 12
	out = Resolve(in)
	if out.Mode != ModePreset || out.ACH != in.Preset.ACHTotal {
		t.Errorf("daytime = %+v, want preset base", out)
	}
}

func TestManualOpeningsZeroHeatRecovery(t *testing.T) {
	in := baseInput()
	in.Preset = config.VentilationPresetByName("mvhr")
	in.MVHRAuto = true
	in.HourOfDay = 9
	in.OutdoorC = 2
	in.Manual.Opened = envelope.OpenedWindowArea(
		config.FacesConfig{South: config.FaceConfig{GlazingRatio: 0.4}},
		config.RoomDims{WidthM: 8, DepthM: 6, HeightM: 3}, 0,
		[]config.OpenSegment{{Face: "south", Leaf: 0, State: "turn"}},
	)

	out := Resolve(in)
	if out.ManualACH <= 0 {
		t.Fatal("manual opening produced no air change")
	}
	if out.HeatRecovery != 0 {
		t.Errorf("heat recovery = %v with open window, want 0", out.HeatRecovery)
	}
	if out.ACH <= in.Preset.ACHTotal*mvhrBoostFactor {
		t.Errorf("manual ach not added: %v", out.ACH)
	}
}

func TestManualWindowVentilationModes(t *testing.T) {
	dims := config.RoomDims{WidthM: 8, DepthM: 6, HeightM: 3}
	faces := config.FacesConfig{
		North: config.FaceConfig{GlazingRatio: 0.3},
		South: config.FaceConfig{GlazingRatio: 0.4},
	}
	openSouth := []config.OpenSegment{{Face: "south", Leaf: 0, State: "turn"}}
	openBoth := append([]config.OpenSegment{{Face: "north", Leaf: 0, State: "turn"}}, openSouth...)

	base := ManualVentInput{
		RoomHeightM: dims.HeightM,
		VolumeM3:    dims.VolumeM3(),
		IndoorC:     24,
		OutdoorC:    16,
	}

	tests := []struct {
		name     string
		opened   []config.OpenSegment
		roofOpen bool
		wantMode string
	}{
		{"nothing open", nil, false, FlowNone},
		{"south face only", openSouth, false, FlowSingleSided},
		{"opposing faces", openBoth, false, FlowCross},
		{"rooflight only", nil, true, FlowStack},
		{"rooflight plus window", openSouth, true, FlowStack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Opened = envelope.OpenedWindowArea(faces, dims, 0, tt.opened)
			if tt.roofOpen {
				in.Rooflight = envelope.ResolveRooflight(
					config.RooflightConfig{WidthM: 1.2, DepthM: 1.2, OpenHeightM: 0.3}, dims)
			}
			got := ManualWindowVentilation(in)
			if got.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", got.Mode, tt.wantMode)
			}
			if tt.wantMode == FlowNone && got.ACH != 0 {
				t.Errorf("ach = %v with nothing open", got.ACH)
			}
			if tt.wantMode != FlowNone && got.ACH <= 0 {
				t.Errorf("ach = %v, want > 0", got.ACH)
			}
		})
	}
}
