package engine

import (
	"math"

	"github.com/jrbassindale1/roomclimate/internal/weather"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/solar"
)

// PVGenerationW returns the instantaneous on-site PV output: tilted-plane
// irradiance times array area, module efficiency, and a fixed performance
// ratio covering inverter and wiring losses. Zero when the array has no
// area or the sun is down.
func PVGenerationW(pv config.PVConfig, sun solar.Position, f weather.Forcing, groundAlbedo float64) float64 {
	if pv.AreaM2 <= 0 || sun.AltitudeDeg <= 0 {
		return 0
	}

	comps := solar.PlaneIrradiance(solar.PlaneInput{
		TiltDeg:           pv.TiltDeg,
		SurfaceAzimuthDeg: pv.AzimuthDeg,
		SunAltitudeDeg:    sun.AltitudeDeg,
		SunAzimuthDeg:     sun.AzimuthDeg,
		DNI:               f.DNI,
		DHI:               f.DHI,
		GHI:               f.GHI,
		GroundAlbedo:      groundAlbedo,
	})

	out := comps.Total() * pv.AreaM2 * pv.Efficiency * pv.PerformanceRatio
	if math.IsNaN(out) || out < 0 {
		return 0
	}
	return out
}
