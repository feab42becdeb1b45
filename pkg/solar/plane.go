package solar

import "math"

// PlaneInput describes a tilted receiving plane and the sky condition used
// to decompose horizontal irradiance onto it.
type PlaneInput struct {
	TiltDeg           float64 // 0 = horizontal, 90 = vertical
	SurfaceAzimuthDeg float64 // direction the plane faces, 0 = N, 180 = S
	SunAltitudeDeg    float64
	SunAzimuthDeg     float64
	DNI               float64 // direct normal irradiance, W/m2
	DHI               float64 // diffuse horizontal irradiance, W/m2
	GHI               float64 // global horizontal irradiance, W/m2
	GroundAlbedo      float64
}

// PlaneComponents is the beam/sky/ground split of irradiance incident on a
// tilted plane. All components are >= 0.
type PlaneComponents struct {
	Beam    float64
	Diffuse float64
	Ground  float64
}

// Total returns the sum of all incident components.
func (c PlaneComponents) Total() float64 {
	return c.Beam + c.Diffuse + c.Ground
}

// PlaneIrradiance decomposes horizontal irradiance components onto a tilted
// plane. The beam component uses the angle of incidence between the sun
// vector and the plane normal and is zero when the sun is below the horizon
// or behind the plane. The diffuse component uses an isotropic sky model
// with view factor (1+cos(tilt))/2; the ground-reflected component uses
// albedo * GHI * (1-cos(tilt))/2.
func PlaneIrradiance(in PlaneInput) PlaneComponents {
	var out PlaneComponents

	dni := math.Max(0, finiteOrZero(in.DNI))
	dhi := math.Max(0, finiteOrZero(in.DHI))
	ghi := math.Max(0, finiteOrZero(in.GHI))
	albedo := math.Max(0, finiteOrZero(in.GroundAlbedo))

	tiltRad := degToRad(in.TiltDeg)
	cosTilt := math.Cos(tiltRad)

	if in.SunAltitudeDeg > 0 && dni > 0 {
		altRad := degToRad(in.SunAltitudeDeg)
		surfRelAz := degToRad(in.SunAzimuthDeg - in.SurfaceAzimuthDeg)
		cosInc := math.Sin(altRad)*cosTilt +
			math.Cos(altRad)*math.Sin(tiltRad)*math.Cos(surfRelAz)
		if cosInc > 0 {
			out.Beam = dni * cosInc
		}
	}

	out.Diffuse = dhi * (1 + cosTilt) / 2
	out.Ground = ghi * albedo * (1 - cosTilt) / 2

	return out
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
