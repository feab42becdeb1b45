package weather

import (
	"math"
	"time"

	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/solar"
)

// profile parameterizes the synthetic temperature model: an annual cosine
// superposed with a diurnal cosine.
type profile struct {
	meanAnnualC  float64
	seasonalAmpC float64
	diurnalAmpC  float64
	peakDay      float64 // day of year of the warmest day
	peakHour     float64 // hour of day of the warmest hour
	cloudTenths  float64 // held constant across the synthetic day
	windSpeedMS  float64
	mode         config.WeatherMode
}

const (
	defaultPeakDayNorth = 203.0 // late July
	defaultPeakDaySouth = 22.0  // late January
	defaultPeakHour     = 15.0
)

// manualProfile converts user-set summer/winter peak temperatures and a
// diurnal range into the cosine parameters.
func manualProfile(m config.ManualClimate) profile {
	return profile{
		meanAnnualC:  (m.SummerPeakC + m.WinterPeakC) / 2,
		seasonalAmpC: (m.SummerPeakC - m.WinterPeakC) / 2,
		diurnalAmpC:  m.DiurnalRangeC / 2,
		peakDay:      defaultPeakDayNorth,
		peakHour:     defaultPeakHour,
		cloudTenths:  m.CloudTenths,
		windSpeedMS:  m.WindSpeedMS,
		mode:         config.WeatherManual,
	}
}

// climatologyProfile derives a plausible default climate from latitude
// alone. Crude, but it keeps the tool usable anywhere on the map before an
// EPW file is loaded.
func climatologyProfile(loc config.Location) profile {
	absLat := math.Abs(loc.Latitude)
	summerPeak := 30 - 0.18*absLat
	winterPeak := 24 - 0.45*absLat

	peakDay := defaultPeakDayNorth
	if loc.Latitude < 0 {
		peakDay = defaultPeakDaySouth
	}

	return profile{
		meanAnnualC:  (summerPeak + winterPeak) / 2,
		seasonalAmpC: (summerPeak - winterPeak) / 2,
		diurnalAmpC:  4,
		peakDay:      peakDay,
		peakHour:     defaultPeakHour,
		cloudTenths:  5,
		windSpeedMS:  3.5,
		mode:         config.WeatherClimatology,
	}
}

// synthetic generates forcing from a profile plus the clear-sky radiation
// model attenuated by the profile's constant cloud cover.
type synthetic struct {
	loc     config.Location
	profile profile
}

func newSynthetic(loc config.Location, p profile) *synthetic {
	return &synthetic{loc: loc, profile: p}
}

func (s *synthetic) Mode() config.WeatherMode { return s.profile.mode }

func (s *synthetic) ForcingAt(t time.Time) Forcing {
	p := s.profile

	doy := float64(t.YearDay())
	hour := float64(t.Hour()) + float64(t.Minute())/60

	temp := p.meanAnnualC +
		p.seasonalAmpC*math.Cos(2*math.Pi*(doy-p.peakDay)/365) +
		p.diurnalAmpC*math.Cos(2*math.Pi*(hour-p.peakHour)/24)

	irr := solar.ClearSkyIrradiance(t, s.loc.Latitude, s.loc.Longitude, s.loc.ElevationM, p.cloudTenths)

	return Forcing{
		DryBulbC:    temp,
		DNI:         irr.DNI,
		DHI:         irr.DHI,
		GHI:         irr.GHI,
		CloudTenths: p.cloudTenths,
		RelHumidity: 70,
		WindSpeedMS: p.windSpeedMS,
		WindDirDeg:  225, // prevailing south-westerly placeholder
	}
}
