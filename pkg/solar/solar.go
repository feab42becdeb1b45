// Package solar provides sun position, sunrise/sunset, clear-sky radiation,
// and tilted-plane irradiance calculations for the room climate simulator.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Position is the sun's apparent position in the sky for an observer.
// Azimuth is measured clockwise from true north (0° = N, 90° = E, 180° = S).
// Altitude is the angle above the horizon; values <= 0 mean the sun is below
// the horizon and callers must not treat beam radiation as present.
type Position struct {
	AltitudeDeg float64
	AzimuthDeg  float64
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// ClampLatitude limits a latitude to the valid [-90, 90] range.
func ClampLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// NormalizeLongitude wraps a longitude into [-180, 180).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// solarCoordinates returns the solar declination (radians) and the equation
// of time (minutes) for the given instant.
func solarCoordinates(t time.Time) (declRad, eqTimeMin float64) {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	declRad = math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(lambda)))

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin = radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	return declRad, eqTimeMin
}

// SunPosition computes the sun's altitude and azimuth for the given instant
// and observer location. The instant's own zone information is used to
// convert to UTC, so simulation code can pass local times built with a
// fixed-offset zone.
func SunPosition(t time.Time, lat, lon float64) Position {
	lat = ClampLatitude(lat)
	lon = NormalizeLongitude(lon)

	declRad, eqTimeMin := solarCoordinates(t)

	utc := t.UTC()
	utcMin := float64(utc.Hour()*60+utc.Minute()) + float64(utc.Second())/60.0
	tst := utcMin + 4*lon + eqTimeMin
	haDeg := tst/4 - 180
	haRad := degToRad(haDeg)

	latRad := degToRad(lat)
	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenRad := math.Acos(cosZen)
	altDeg := 90 - radToDeg(zenRad)

	pos := Position{AltitudeDeg: altDeg}

	azDen := math.Cos(latRad) * math.Sin(zenRad)
	if azDen == 0 {
		// Sun at zenith or observer at a pole; azimuth undefined, use south.
		pos.AzimuthDeg = 180
		return pos
	}
	azCos := (math.Sin(declRad) - math.Sin(latRad)*cosZen) / azDen
	azCos = math.Max(-1, math.Min(1, azCos))
	azDeg := radToDeg(math.Acos(azCos))
	if haDeg > 0 {
		azDeg = 360 - azDeg
	}
	pos.AzimuthDeg = azDeg

	return pos
}
