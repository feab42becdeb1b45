package solar

import (
	"math"
	"time"
)

// SunTimesMode distinguishes normal days from the polar cases where the sun
// never sets or never rises.
type SunTimesMode int

const (
	SunNormal SunTimesMode = iota
	SunAllDay
	SunAllNight
)

func (m SunTimesMode) String() string {
	switch m {
	case SunAllDay:
		return "day"
	case SunAllNight:
		return "night"
	default:
		return "normal"
	}
}

// SunTimes holds sunrise and sunset for one calendar day, in local clock
// time of the requested zone. Sunrise and Sunset are only valid when Mode
// is SunNormal.
type SunTimes struct {
	Mode    SunTimesMode
	Sunrise time.Time
	Sunset  time.Time
}

// DaySunTimes computes sunrise and sunset for the calendar day containing
// date, at the given location. tzHours is the UTC offset of the local clock
// the results are expressed in.
func DaySunTimes(date time.Time, lat, lon float64, tzHours int) SunTimes {
	lat = ClampLatitude(lat)
	lon = NormalizeLongitude(lon)

	noonUTC := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC).
		Add(-time.Duration(tzHours) * time.Hour)
	declRad, eqTimeMin := solarCoordinates(noonUTC)

	latRad := degToRad(lat)
	cosH := -math.Tan(latRad) * math.Tan(declRad)
	if cosH < -1 {
		return SunTimes{Mode: SunAllDay}
	}
	if cosH > 1 {
		return SunTimes{Mode: SunAllNight}
	}

	haMin := radToDeg(math.Acos(cosH)) * 4 // hour angle in minutes of time

	// Solar noon in UTC minutes from midnight, adjusted for longitude and
	// the equation of time.
	solarNoonUTC := 720.0 - lon*4.0 - eqTimeMin

	loc := time.FixedZone("", tzHours*3600)
	midnightUTC := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	sunrise := midnightUTC.Add(time.Duration((solarNoonUTC - haMin) * float64(time.Minute))).In(loc)
	sunset := midnightUTC.Add(time.Duration((solarNoonUTC + haMin) * float64(time.Minute))).In(loc)

	return SunTimes{Mode: SunNormal, Sunrise: sunrise, Sunset: sunset}
}
