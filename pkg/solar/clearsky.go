package solar

import (
	"math"
	"time"
)

const solarConstant = 1367.0 // W/m2 at the top of the atmosphere

// Irradiance is a set of horizontal-plane irradiance components plus the
// direct normal beam, as produced by the clear-sky model.
type Irradiance struct {
	DNI float64
	DHI float64
	GHI float64
}

// ClearSkyIrradiance estimates surface irradiance for the given instant and
// location using a Bras-style clear-sky attenuation model, reduced by cloud
// cover. cloudTenths is total sky cover in tenths (0 = clear, 10 = overcast);
// cloud reduces the global total (Kasten-Czeplak) and shifts the remainder
// toward diffuse. Returns all zeroes when the sun is at or below the horizon.
func ClearSkyIrradiance(t time.Time, lat, lon, elevationM, cloudTenths float64) Irradiance {
	pos := SunPosition(t, lat, lon)
	if pos.AltitudeDeg <= 0 {
		return Irradiance{}
	}

	sinAlt := math.Sin(degToRad(pos.AltitudeDeg))

	// Extraterrestrial irradiance on a horizontal plane, with the annual
	// Earth-Sun distance correction.
	doy := float64(t.YearDay())
	distCorr := 1 + 0.033*math.Cos(2*math.Pi*doy/365)
	io := solarConstant * distCorr * sinAlt

	// Bras optical air mass and atmospheric attenuation; nfac 2 is a clean
	// atmosphere, 4-5 is hazy. Elevation thins the air mass slightly.
	const nfac = 2.0
	m := 1.0 / (sinAlt + 0.15*math.Pow(pos.AltitudeDeg+3.885, -1.253))
	m *= math.Exp(-math.Max(0, elevationM) / 8435.0)
	a1 := 0.128 - 0.054*math.Log10(m)
	ghiClear := io * math.Exp(-nfac*a1*m)
	if ghiClear < 0 {
		ghiClear = 0
	}

	// Cloud attenuation of the global total (Kasten-Czeplak).
	c := math.Max(0, math.Min(10, finiteOrZero(cloudTenths))) / 10.0
	ghi := ghiClear * (1 - 0.75*math.Pow(c, 3.4))

	// Diffuse fraction grows with cloud cover; fully overcast skies are
	// effectively all-diffuse.
	diffFrac := 0.165 + (1-0.165)*math.Pow(c, 1.5)
	dhi := ghi * diffFrac
	dni := (ghi - dhi) / sinAlt

	return Irradiance{DNI: dni, DHI: dhi, GHI: ghi}
}
