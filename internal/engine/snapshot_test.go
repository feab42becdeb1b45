package engine

import (
	"math"
	"testing"

	"github.com/jrbassindale1/roomclimate/internal/envelope"
	"github.com/jrbassindale1/roomclimate/internal/weather"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/solar"
)

var testRoom = config.RoomDims{WidthM: 8, DepthM: 6, HeightM: 3}

func southWindow(overhang float64) envelope.Window {
	return envelope.Window{
		Face:           config.FaceSouth,
		WidthM:         4,
		HeightM:        2,
		AzimuthDeg:     180,
		LeafCount:      6,
		OverhangDepthM: overhang,
	}
}

func baseInput() SnapshotInput {
	return SnapshotInput{
		Room:       testRoom,
		Fabric:     config.UValuePresetByName("standard"),
		Windows:    []envelope.Window{southWindow(0)},
		Forcing:    weather.Forcing{DryBulbC: 10, DNI: 500, DHI: 100, GHI: 450},
		Sun:        solar.Position{AltitudeDeg: 40, AzimuthDeg: 180},
		ACHTotal:   0.5,
		InternalsW: 180,
		RoomC:      20,
	}
}

func TestSnapshotBalanceSigns(t *testing.T) {
	snap := ComputeSnapshot(baseInput())

	if snap.SolarGainW <= 0 {
		t.Errorf("SolarGainW = %v, want > 0 with sun on the south face", snap.SolarGainW)
	}
	if snap.FabricLossW <= 0 {
		t.Errorf("FabricLossW = %v, want > 0 with indoor above outdoor", snap.FabricLossW)
	}
	if snap.VentLossW <= 0 {
		t.Errorf("VentLossW = %v, want > 0", snap.VentLossW)
	}
	want := snap.SolarGainW + snap.InternalGainsW - snap.FabricLossW - snap.VentLossW
	if math.Abs(snap.NetHeatW-want) > 1e-9 {
		t.Errorf("NetHeatW = %v, want %v", snap.NetHeatW, want)
	}
}

func TestOverhangReducesHighSunGain(t *testing.T) {
	open := baseInput()
	shaded := baseInput()
	shaded.Windows = []envelope.Window{southWindow(1.0)}

	gOpen := ComputeSnapshot(open).SolarGainW
	gShaded := ComputeSnapshot(shaded).SolarGainW
	if gShaded >= gOpen {
		t.Errorf("overhang gain %v not below unshaded %v", gShaded, gOpen)
	}

	// Low winter sun slips under the overhang: reduction shrinks.
	lowOpen := open
	lowOpen.Sun = solar.Position{AltitudeDeg: 12, AzimuthDeg: 180}
	lowShaded := shaded
	lowShaded.Sun = lowOpen.Sun

	highRatio := gShaded / gOpen
	lowRatio := ComputeSnapshot(lowShaded).SolarGainW / ComputeSnapshot(lowOpen).SolarGainW
	if lowRatio <= highRatio {
		t.Errorf("low-sun shading ratio %v not above high-sun ratio %v", lowRatio, highRatio)
	}
}

func TestHeatRecoveryCutsVentLoss(t *testing.T) {
	in := baseInput()
	plain := ComputeSnapshot(in)

	in.HeatRecovery = 0.9
	mvhr := ComputeSnapshot(in)

	want := plain.VentLossW * 0.1
	if math.Abs(mvhr.VentLossW-want) > 1e-9 {
		t.Errorf("VentLossW with 90%% recovery = %v, want %v", mvhr.VentLossW, want)
	}
}

func TestNaNForcingDoesNotPoison(t *testing.T) {
	in := baseInput()
	in.Forcing.DryBulbC = math.NaN()
	in.Forcing.GHI = math.Inf(1)

	snap := ComputeSnapshot(in)
	if math.IsNaN(snap.NetHeatW) || math.IsInf(snap.NetHeatW, 0) {
		t.Errorf("NetHeatW = %v, want finite", snap.NetHeatW)
	}
	// NaN outdoor temperature falls back to the room temperature, so no
	// conduction either way.
	if snap.FabricLossW != 0 {
		t.Errorf("FabricLossW = %v, want 0 with unknown outdoor", snap.FabricLossW)
	}
}

func TestIlluminanceTracksGlazingAndSky(t *testing.T) {
	in := baseInput()
	lit := ComputeSnapshot(in)
	if lit.IlluminanceLux <= 0 {
		t.Errorf("IlluminanceLux = %v, want > 0 in daylight", lit.IlluminanceLux)
	}

	in.Forcing.GHI = 0
	dark := ComputeSnapshot(in)
	if dark.IlluminanceLux != 0 {
		t.Errorf("IlluminanceLux = %v, want 0 with no daylight", dark.IlluminanceLux)
	}

	in = baseInput()
	in.Windows = nil
	if got := ComputeSnapshot(in).IlluminanceLux; got != 0 {
		t.Errorf("IlluminanceLux = %v, want 0 with no glazing", got)
	}
}

func TestPVGeneration(t *testing.T) {
	pv := config.PVConfig{AreaM2: 10, Efficiency: 0.2, PerformanceRatio: 0.8, TiltDeg: 30, AzimuthDeg: 180}
	sun := solar.Position{AltitudeDeg: 45, AzimuthDeg: 180}
	f := weather.Forcing{DNI: 600, DHI: 100, GHI: 520}

	if got := PVGenerationW(pv, sun, f, 0.2); got <= 0 {
		t.Errorf("PVGenerationW = %v, want > 0 at noon", got)
	}
	night := solar.Position{AltitudeDeg: -10, AzimuthDeg: 0}
	if got := PVGenerationW(pv, night, f, 0.2); got != 0 {
		t.Errorf("PVGenerationW = %v, want 0 at night", got)
	}
	if got := PVGenerationW(config.PVConfig{}, sun, f, 0.2); got != 0 {
		t.Errorf("PVGenerationW = %v, want 0 with no array", got)
	}
}
