// Package engine implements the simulation core: the instantaneous heat
// balance snapshot, the 1R1C forward-Euler time-stepper for daily and
// annual runs, the PV generation model, and a memoized service facade that
// recomputes only when the scenario actually changes.
package engine

import (
	"math"

	"github.com/jrbassindale1/roomclimate/internal/envelope"
	"github.com/jrbassindale1/roomclimate/internal/weather"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/solar"
)

// ventHeatCapacity converts ACH x volume to a heat-loss coefficient in W/K
// (volumetric heat capacity of air ~0.33 Wh/m3K).
const ventHeatCapacity = 0.33

// Daylight model constants: average daylight-factor formula with a desk
// plane at a fixed reference distance from the window wall.
const (
	luminousEfficacy  = 110.0 // lm/W, luminous efficacy of daylight
	visibleSkyAngle   = 65.0  // degrees of visible sky for the DF formula
	meanReflectance   = 0.5
	deskPlaneFraction = 0.6 // desk position relative to the room average
)

// SnapshotInput is everything the instantaneous heat balance depends on.
// It is assembled by the time-stepper once per step, or directly by API
// callers for a single-instant query.
type SnapshotInput struct {
	Room         config.RoomDims
	Fabric       config.UValuePreset
	Windows      []envelope.Window
	Rooflight    envelope.ResolvedRooflight
	Forcing      weather.Forcing
	Sun          solar.Position
	ACHTotal     float64
	HeatRecovery float64
	GroundAlbedo float64
	InternalsW   float64
	RoomC        float64 // current indoor temperature
}

// Snapshot is the instantaneous heat balance. Losses are positive when heat
// leaves the room.
type Snapshot struct {
	SolarGainW       float64    `json:"solarGain"`
	SolarGainByFaceW [4]float64 `json:"solarGainByFace"`
	RooflightGainW   float64    `json:"rooflightGain"`
	InternalGainsW   float64    `json:"internalGains"`
	FabricLossW      float64    `json:"fabricLoss"`
	VentLossW        float64    `json:"ventLoss"`
	NetHeatW         float64    `json:"netHeat"`
	IlluminanceLux   float64    `json:"illuminance"`
	FabricUAWK       float64    `json:"fabricUA"`
	VentUAWK         float64    `json:"ventUA"`
}

// ComputeSnapshot evaluates the instantaneous heat balance. It is a pure
// function of its input; malformed (NaN/Inf) forcing values contribute zero
// heat flow rather than poisoning the integrator.
func ComputeSnapshot(in SnapshotInput) Snapshot {
	var out Snapshot

	tOut := finite(in.Forcing.DryBulbC, in.RoomC)
	deltaT := in.RoomC - tOut

	// Solar gain per face.
	for _, w := range in.Windows {
		comps := solar.PlaneIrradiance(solar.PlaneInput{
			TiltDeg:           90,
			SurfaceAzimuthDeg: w.AzimuthDeg,
			SunAltitudeDeg:    in.Sun.AltitudeDeg,
			SunAzimuthDeg:     in.Sun.AzimuthDeg,
			DNI:               in.Forcing.DNI,
			DHI:               in.Forcing.DHI,
			GHI:               in.Forcing.GHI,
			GroundAlbedo:      in.GroundAlbedo,
		})
		sf := shadingFactor(w, in.Sun)
		gain := (comps.Beam*sf + comps.Diffuse + comps.Ground) * w.AreaM2() * in.Fabric.GValue
		gain = finite(gain, 0)
		out.SolarGainByFaceW[w.Face] += gain
		out.SolarGainW += gain
	}

	// Rooflight gain uses horizontal-plane irradiance directly.
	if in.Rooflight.AreaM2() > 0 {
		ghi := math.Max(0, finite(in.Forcing.GHI, 0))
		out.RooflightGainW = ghi * in.Rooflight.AreaM2() * in.Fabric.GValue
		out.SolarGainW += out.RooflightGainW
	}

	// Conductive loss per element.
	out.FabricUAWK = fabricUA(in.Room, in.Fabric, in.Windows, in.Rooflight)
	out.FabricLossW = out.FabricUAWK * deltaT

	// Ventilation loss, reduced by heat recovery.
	out.VentUAWK = ventHeatCapacity * in.ACHTotal * in.Room.VolumeM3() * (1 - clamp01(in.HeatRecovery))
	out.VentLossW = out.VentUAWK * deltaT

	out.InternalGainsW = math.Max(0, finite(in.InternalsW, 0))
	out.NetHeatW = out.SolarGainW + out.InternalGainsW - out.FabricLossW - out.VentLossW
	out.IlluminanceLux = deskIlluminance(in)

	return out
}

// fabricUA sums U*A over walls, windows, roof, floor, and rooflight.
func fabricUA(room config.RoomDims, fab config.UValuePreset, windows []envelope.Window, roof envelope.ResolvedRooflight) float64 {
	var windowArea float64
	windowAreaByFace := [4]float64{}
	for _, w := range windows {
		windowArea += w.AreaM2()
		windowAreaByFace[w.Face] += w.AreaM2()
	}

	var wallArea float64
	for _, face := range config.Faces {
		gross := room.FaceSpanM(face) * room.HeightM
		wallArea += math.Max(0, gross-windowAreaByFace[face])
	}

	roofArea := math.Max(0, room.FloorAreaM2()-roof.AreaM2())

	ua := fab.Wall*wallArea +
		fab.Window*windowArea +
		fab.Roof*roofArea +
		fab.Floor*room.FloorAreaM2() +
		fab.Window*roof.AreaM2() // rooflight glazing at window U-value
	return finite(ua, 0)
}

// shadingFactor is the beam-only reduction from overhang and fin
// self-shading: 0 when the projection fully shades the aperture, 1 when
// unshaded. Diffuse and ground components are unaffected.
func shadingFactor(w envelope.Window, sun solar.Position) float64 {
	if sun.AltitudeDeg <= 0 {
		return 1
	}

	// Horizontal sun angle relative to the face normal.
	gamma := degToRad(angleDiff(sun.AzimuthDeg, w.AzimuthDeg))
	if math.Abs(gamma) >= math.Pi/2 {
		// Sun behind the face; beam is already zero.
		return 1
	}
	cosGamma := math.Cos(gamma)

	factor := 1.0

	// Overhang (and a horizontal fin, which acts the same way): the shadow
	// drops down the window by the projected profile angle.
	depth := w.OverhangDepthM + w.HorizontalFinDepthM
	if depth > 0 && w.HeightM > 0 {
		tanProfile := math.Tan(degToRad(sun.AltitudeDeg)) / cosGamma
		shadow := depth * tanProfile
		factor *= 1 - clamp01(shadow/w.HeightM)
	}

	// Vertical fins cast a sideways shadow with horizontal sun angle.
	if w.VerticalFinDepthM > 0 && w.WidthM > 0 {
		shadow := w.VerticalFinDepthM * math.Abs(math.Tan(gamma))
		factor *= 1 - clamp01(shadow/w.WidthM)
	}

	return clamp01(factor)
}

// deskIlluminance estimates desk-height illuminance from an average
// daylight-factor model: glazed area, visible transmittance, and the
// current global horizontal irradiance converted to outdoor illuminance.
func deskIlluminance(in SnapshotInput) float64 {
	var glassArea float64
	for _, w := range in.Windows {
		glassArea += w.AreaM2()
	}
	glassArea += in.Rooflight.AreaM2()
	if glassArea <= 0 {
		return 0
	}

	room := in.Room
	totalSurface := 2*room.FloorAreaM2() + 2*(room.WidthM+room.DepthM)*room.HeightM
	df := in.Fabric.VisibleTransmittance * glassArea * visibleSkyAngle /
		(totalSurface * (1 - meanReflectance*meanReflectance)) / 100

	outdoorLux := math.Max(0, finite(in.Forcing.GHI, 0)) * luminousEfficacy
	return df * outdoorLux * deskPlaneFraction
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// angleDiff returns the signed smallest difference a-b in degrees.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+540, 360) - 180
	return d
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
