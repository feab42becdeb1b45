package weather

import (
	"time"

	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

// epwProvider serves forcing straight from a parsed EPW hourly dataset by
// direct month/day/hour lookup; the simulation's fixed timestep grid holds
// each hour's values for the whole hour.
type epwProvider struct {
	dataset *epw.Dataset
}

func (p *epwProvider) Mode() config.WeatherMode { return config.WeatherEPW }

func (p *epwProvider) ForcingAt(t time.Time) Forcing {
	// Feb 29 in the simulation grid reads as Feb 28; EPW years are non-leap.
	day := t.Day()
	if t.Month() == time.February && day == 29 {
		day = 28
	}
	rec := p.dataset.At(int(t.Month()), day, t.Hour())
	return Forcing{
		DryBulbC:    rec.DryBulbC,
		DNI:         rec.DNI,
		DHI:         rec.DHI,
		GHI:         rec.GHI,
		CloudTenths: rec.TotalSkyCover,
		RelHumidity: rec.RelHumidity,
		WindSpeedMS: rec.WindSpeedMS,
		WindDirDeg:  rec.WindDirDeg,
	}
}
