package stats

import (
	"math"
	"testing"
	"time"

	"github.com/jrbassindale1/roomclimate/internal/engine"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

var testBand = config.ComfortBand{MinC: 20, MaxC: 25}

// hourlyYear builds an 8760-point run with indoor/outdoor temperatures
// supplied per hour of year.
func hourlyYear(indoor func(h int) float64, outdoor func(h int) float64) engine.AnnualResult {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]engine.Point, 8760)
	for i := range points {
		points[i] = engine.Point{
			Time:     start.Add(time.Duration(i) * time.Hour),
			IndoorC:  indoor(i),
			OutdoorC: outdoor(i),
		}
	}
	return engine.AnnualResult{Year: 2023, StepMinutes: 60, HoursPerStep: 1, Points: points}
}

func TestBucketsSumToYear(t *testing.T) {
	annual := hourlyYear(
		func(h int) float64 { return 15 + 15*math.Sin(float64(h)/500) },
		func(h int) float64 { return 10 },
	)

	m := Aggregate(annual, testBand)
	sum := m.TooColdHours + m.ComfortableHours + m.WarmHours + m.Over26To28Hours + m.Over28Hours
	if math.Abs(sum-8760) > 1e-6 {
		t.Errorf("comfort buckets sum to %v, want 8760", sum)
	}
}

func TestBucketBoundaries(t *testing.T) {
	// One hour at each temperature of interest, comfortable otherwise.
	probe := map[int]float64{
		0: 19.0, // too cold
		1: 20.0, // comfortable (inclusive floor)
		2: 25.0, // comfortable (inclusive ceiling)
		3: 25.5, // warm
		4: 26.0, // warm (inclusive)
		5: 27.0, // 26-28
		6: 28.5, // over 28
	}
	annual := hourlyYear(
		func(h int) float64 {
			if v, ok := probe[h]; ok {
				return v
			}
			return 22
		},
		func(h int) float64 { return 10 },
	)

	m := Aggregate(annual, testBand)
	if m.TooColdHours != 1 {
		t.Errorf("TooColdHours = %v, want 1", m.TooColdHours)
	}
	if m.WarmHours != 2 {
		t.Errorf("WarmHours = %v, want 2", m.WarmHours)
	}
	if m.Over26To28Hours != 1 {
		t.Errorf("Over26To28Hours = %v, want 1", m.Over26To28Hours)
	}
	if m.Over28Hours != 1 {
		t.Errorf("Over28Hours = %v, want 1", m.Over28Hours)
	}
	if m.ComfortableHours != 8755 {
		t.Errorf("ComfortableHours = %v, want 8755", m.ComfortableHours)
	}
}

func TestDegreeHours(t *testing.T) {
	// 10 hours at 18 C (2 K below floor), 5 hours at 27 C (2 K above
	// ceiling), rest on the floor.
	annual := hourlyYear(
		func(h int) float64 {
			switch {
			case h < 10:
				return 18
			case h < 15:
				return 27
			}
			return 20
		},
		func(h int) float64 { return 5 },
	)

	m := Aggregate(annual, testBand)
	if math.Abs(m.HeatingDegreeHours-20) > 1e-9 {
		t.Errorf("HeatingDegreeHours = %v, want 20", m.HeatingDegreeHours)
	}
	if math.Abs(m.CoolingDegreeHours-10) > 1e-9 {
		t.Errorf("CoolingDegreeHours = %v, want 10", m.CoolingDegreeHours)
	}
}

func TestPeakAndMinTimes(t *testing.T) {
	annual := hourlyYear(
		func(h int) float64 {
			switch h {
			case 4000:
				return 31
			case 200:
				return 12
			}
			return 22
		},
		func(h int) float64 { return 10 },
	)

	m := Aggregate(annual, testBand)
	if m.PeakIndoorC != 31 {
		t.Errorf("PeakIndoorC = %v, want 31", m.PeakIndoorC)
	}
	if got := annual.Points[4000].Time; !m.PeakIndoorTime.Equal(got) {
		t.Errorf("PeakIndoorTime = %v, want %v", m.PeakIndoorTime, got)
	}
	if m.MinIndoorC != 12 {
		t.Errorf("MinIndoorC = %v, want 12", m.MinIndoorC)
	}
}

func TestHistogramCoversAllHours(t *testing.T) {
	annual := hourlyYear(
		func(h int) float64 { return 18 + 10*float64(h%10)/10 },
		func(h int) float64 { return 10 },
	)

	m := Aggregate(annual, testBand)
	var total float64
	for _, b := range m.Histogram {
		total += b.Hours
		if b.ToC-b.FromC != 1.0 {
			t.Errorf("bin width %v, want 1", b.ToC-b.FromC)
		}
	}
	if math.Abs(total-8760) > 1e-6 {
		t.Errorf("histogram hours = %v, want 8760", total)
	}
}

func TestWorstSummerWeekFindsHotWindow(t *testing.T) {
	// Overheat only across July 10-16 (day-of-year 191-197).
	hotStart := 190 * 24
	hotEnd := 197 * 24
	annual := hourlyYear(
		func(h int) float64 {
			if h >= hotStart && h < hotEnd {
				return 29
			}
			return 22
		},
		func(h int) float64 { return 15 },
	)

	m := Aggregate(annual, testBand)
	if m.WorstSummerWeek.OverheatHours != float64(hotEnd-hotStart) {
		t.Errorf("OverheatHours = %v, want %v", m.WorstSummerWeek.OverheatHours, hotEnd-hotStart)
	}
	if m.WorstSummerWeek.StartPointIndex != hotStart {
		t.Errorf("StartPointIndex = %v, want %v", m.WorstSummerWeek.StartPointIndex, hotStart)
	}
}

func TestColdestWeekFindsColdOutdoorWindow(t *testing.T) {
	coldStart := 30 * 24
	coldEnd := 37 * 24
	annual := hourlyYear(
		func(h int) float64 { return 21 },
		func(h int) float64 {
			if h >= coldStart && h < coldEnd {
				return -8
			}
			return 10
		},
	)

	m := Aggregate(annual, testBand)
	if m.ColdestWeek.StartPointIndex != coldStart {
		t.Errorf("StartPointIndex = %v, want %v", m.ColdestWeek.StartPointIndex, coldStart)
	}
	if math.Abs(m.ColdestWeek.MeanOutdoorC-(-8)) > 1e-9 {
		t.Errorf("MeanOutdoorC = %v, want -8", m.ColdestWeek.MeanOutdoorC)
	}
}

func TestMonthlyOverheatAttribution(t *testing.T) {
	// 3 hours above 26 in January, one of them above 28.
	annual := hourlyYear(
		func(h int) float64 {
			switch h {
			case 10, 11:
				return 27
			case 12:
				return 29
			}
			return 22
		},
		func(h int) float64 { return 5 },
	)

	m := Aggregate(annual, testBand)
	jan := m.Monthly[0]
	if jan.Month != time.January {
		t.Fatalf("Monthly[0].Month = %v, want January", jan.Month)
	}
	if jan.HoursOver26 != 3 {
		t.Errorf("HoursOver26 = %v, want 3", jan.HoursOver26)
	}
	if jan.HoursOver28 != 1 {
		t.Errorf("HoursOver28 = %v, want 1", jan.HoursOver28)
	}
	for i := 1; i < 12; i++ {
		if m.Monthly[i].HoursOver26 != 0 {
			t.Errorf("month %d HoursOver26 = %v, want 0", i+1, m.Monthly[i].HoursOver26)
		}
	}
}

func TestEmptyRun(t *testing.T) {
	m := Aggregate(engine.AnnualResult{}, testBand)
	if m.ComfortableHours != 0 || len(m.Histogram) != 0 {
		t.Errorf("empty run should produce zero metrics, got %+v", m)
	}
}
