// Package weather resolves outdoor forcing (temperature, irradiance, cloud,
// wind) for any simulation instant from one of three sources: an EPW hourly
// dataset, a synthetic climatology model, or a manual seasonal profile. All
// sources expose the same Forcing shape so downstream code is mode-agnostic.
package weather

import (
	"time"

	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

// Forcing is the outdoor condition at one instant.
type Forcing struct {
	DryBulbC    float64 `json:"dryBulb"`
	DNI         float64 `json:"dni"`
	DHI         float64 `json:"dhi"`
	GHI         float64 `json:"ghi"`
	CloudTenths float64 `json:"cloudTenths"`
	RelHumidity float64 `json:"relHumidity"`
	WindSpeedMS float64 `json:"windSpeed"`
	WindDirDeg  float64 `json:"windDir"`
}

// Provider resolves forcing for an instant. Instants are local clock times
// built with the scenario's fixed timezone offset.
type Provider interface {
	ForcingAt(t time.Time) Forcing
	Mode() config.WeatherMode
}

// NewProvider builds the provider for the scenario's weather mode. EPW mode
// requires a parsed dataset; when it is nil (missing file or parse failure
// upstream) the provider falls back to the climatology model so the
// simulation can proceed. The returned bool reports that fallback so a
// caller can surface it as a warning.
func NewProvider(scenario *config.Scenario, dataset *epw.Dataset) (Provider, bool) {
	loc := scenario.Location

	switch scenario.Weather.Mode {
	case config.WeatherEPW:
		if dataset == nil {
			return newSynthetic(loc, climatologyProfile(loc)), true
		}
		return &epwProvider{dataset: dataset}, false
	case config.WeatherManual:
		return newSynthetic(loc, manualProfile(scenario.Weather.Manual)), false
	default:
		return newSynthetic(loc, climatologyProfile(loc)), false
	}
}
