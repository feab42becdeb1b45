// Package costcarbon converts the thermal energy of an annual run into
// delivered electricity, running cost, and operational carbon, with PV
// generation netted off.
package costcarbon

import (
	"math"

	"github.com/jrbassindale1/roomclimate/internal/engine"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

// Summary is the annual energy, cost and carbon roll-up.
type Summary struct {
	HeatingThermalKWh float64 `json:"heatingThermalKWh"`
	CoolingThermalKWh float64 `json:"coolingThermalKWh"`

	// Delivered electricity after applying the plant COPs.
	HeatingElectricKWh float64 `json:"heatingElectricKWh"`
	CoolingElectricKWh float64 `json:"coolingElectricKWh"`
	PVGenerationKWh    float64 `json:"pvGenerationKWh"`

	// Net grid draw; PV beyond the load is not exported for credit.
	NetElectricKWh float64 `json:"netElectricKWh"`

	CostGBP     float64 `json:"cost"`
	CarbonKgCO2 float64 `json:"carbonKg"`

	// Gross figures before the PV offset, for comparison.
	GrossCostGBP     float64 `json:"grossCost"`
	GrossCarbonKgCO2 float64 `json:"grossCarbonKg"`
}

// Summarize integrates heating, cooling and PV power over the run and
// prices the net grid electricity with the tariff. COPs at or below zero
// fall back to direct electric (COP 1).
func Summarize(annual engine.AnnualResult, tariff config.Tariff) Summary {
	var s Summary
	h := annual.HoursPerStep
	for _, p := range annual.Points {
		s.HeatingThermalKWh += p.HeatingW * h / 1000
		s.CoolingThermalKWh += p.CoolingW * h / 1000
		s.PVGenerationKWh += p.PVGenW * h / 1000
	}

	heatCOP := tariff.HeatingCOP
	if heatCOP <= 0 {
		heatCOP = 1
	}
	coolCOP := tariff.CoolingCOP
	if coolCOP <= 0 {
		coolCOP = 1
	}

	s.HeatingElectricKWh = s.HeatingThermalKWh / heatCOP
	s.CoolingElectricKWh = s.CoolingThermalKWh / coolCOP

	gross := s.HeatingElectricKWh + s.CoolingElectricKWh
	s.NetElectricKWh = math.Max(0, gross-s.PVGenerationKWh)

	s.GrossCostGBP = gross * tariff.ElectricityPriceKWh
	s.GrossCarbonKgCO2 = gross * tariff.CarbonKgPerKWh
	s.CostGBP = s.NetElectricKWh * tariff.ElectricityPriceKWh
	s.CarbonKgCO2 = s.NetElectricKWh * tariff.CarbonKgPerKWh
	return s
}
