package costcarbon

import (
	"math"
	"testing"
	"time"

	"github.com/jrbassindale1/roomclimate/internal/engine"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

func run(points []engine.Point) engine.AnnualResult {
	return engine.AnnualResult{Year: 2023, StepMinutes: 60, HoursPerStep: 1, Points: points}
}

var testTariff = config.Tariff{
	ElectricityPriceKWh: 0.30,
	CarbonKgPerKWh:      0.20,
	HeatingCOP:          3.0,
	CoolingCOP:          4.0,
}

func TestSummarizeAppliesCOPs(t *testing.T) {
	// 3000 W heating for 10 h, 4000 W cooling for 5 h.
	var points []engine.Point
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		points = append(points, engine.Point{Time: base, HeatingW: 3000})
	}
	for i := 0; i < 5; i++ {
		points = append(points, engine.Point{Time: base, CoolingW: 4000})
	}

	s := Summarize(run(points), testTariff)
	if math.Abs(s.HeatingThermalKWh-30) > 1e-9 {
		t.Errorf("HeatingThermalKWh = %v, want 30", s.HeatingThermalKWh)
	}
	if math.Abs(s.HeatingElectricKWh-10) > 1e-9 {
		t.Errorf("HeatingElectricKWh = %v, want 10", s.HeatingElectricKWh)
	}
	if math.Abs(s.CoolingElectricKWh-5) > 1e-9 {
		t.Errorf("CoolingElectricKWh = %v, want 5", s.CoolingElectricKWh)
	}
	wantCost := 15 * 0.30
	if math.Abs(s.CostGBP-wantCost) > 1e-9 {
		t.Errorf("CostGBP = %v, want %v", s.CostGBP, wantCost)
	}
	wantCarbon := 15 * 0.20
	if math.Abs(s.CarbonKgCO2-wantCarbon) > 1e-9 {
		t.Errorf("CarbonKgCO2 = %v, want %v", s.CarbonKgCO2, wantCarbon)
	}
}

func TestPVOffsetsButNeverGoesNegative(t *testing.T) {
	points := []engine.Point{
		{HeatingW: 3000, PVGenW: 2000},
		{HeatingW: 3000, PVGenW: 2000},
	}
	s := Summarize(run(points), testTariff)
	// 2 kWh electric heating, 4 kWh PV: net clamps at zero.
	if s.NetElectricKWh != 0 {
		t.Errorf("NetElectricKWh = %v, want 0", s.NetElectricKWh)
	}
	if s.CostGBP != 0 {
		t.Errorf("CostGBP = %v, want 0", s.CostGBP)
	}
	if s.GrossCostGBP <= 0 {
		t.Errorf("GrossCostGBP = %v, want > 0", s.GrossCostGBP)
	}
}

func TestZeroCOPFallsBackToDirectElectric(t *testing.T) {
	points := []engine.Point{{HeatingW: 1000}}
	s := Summarize(run(points), config.Tariff{ElectricityPriceKWh: 0.30})
	if math.Abs(s.HeatingElectricKWh-1) > 1e-9 {
		t.Errorf("HeatingElectricKWh = %v, want 1", s.HeatingElectricKWh)
	}
}

func TestEmptyRunIsZero(t *testing.T) {
	s := Summarize(engine.AnnualResult{HoursPerStep: 1}, testTariff)
	if s.CostGBP != 0 || s.CarbonKgCO2 != 0 {
		t.Errorf("empty run should cost nothing, got %+v", s)
	}
}
