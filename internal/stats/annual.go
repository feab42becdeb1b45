// Package stats aggregates a full year of simulation points into the
// annual comfort and overheating metrics shown to the user: degree-hours,
// comfort-hour buckets, temperature histogram, worst/coldest weeks, and
// monthly overheating hours.
package stats

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jrbassindale1/roomclimate/internal/engine"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

// Absolute overheating thresholds (CIBSE-style), independent of the
// scenario's own comfort band.
const (
	OverheatThresholdC = 26.0
	SevereThresholdC   = 28.0
)

const histogramBinWidthC = 1.0

// HistogramBin is one fixed-width temperature bin with its occupied hours.
type HistogramBin struct {
	FromC float64 `json:"from"`
	ToC   float64 `json:"to"`
	Hours float64 `json:"hours"`
}

// WeekExtract identifies a 7-day window of interest within the year.
type WeekExtract struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	OverheatHours   float64   `json:"overheatHours,omitempty"`
	MeanOutdoorC    float64   `json:"meanOutdoor"`
	PeakIndoorC     float64   `json:"peakIndoor"`
	MinIndoorC      float64   `json:"minIndoor"`
	StartPointIndex int       `json:"startPointIndex"`
}

// MonthlyOverheat is one calendar month's overheating hours.
type MonthlyOverheat struct {
	Month       time.Month `json:"month"`
	HoursOver26 float64    `json:"hoursOver26"`
	HoursOver28 float64    `json:"hoursOver28"`
}

// AnnualMetrics is the aggregate view of one annual simulation run.
type AnnualMetrics struct {
	HeatingDegreeHours float64 `json:"heatingDegreeHours"`
	CoolingDegreeHours float64 `json:"coolingDegreeHours"`

	PeakIndoorC    float64   `json:"peakIndoor"`
	PeakIndoorTime time.Time `json:"peakIndoorTime"`
	MinIndoorC     float64   `json:"minIndoor"`
	MinIndoorTime  time.Time `json:"minIndoorTime"`

	MeanIndoorC  float64 `json:"meanIndoor"`
	MeanOutdoorC float64 `json:"meanOutdoor"`

	// Mutually exclusive comfort buckets summing to 8760 hours.
	TooColdHours     float64 `json:"tooColdHours"`
	ComfortableHours float64 `json:"comfortableHours"`
	WarmHours        float64 `json:"warmHours"`
	Over26To28Hours  float64 `json:"over26to28Hours"`
	Over28Hours      float64 `json:"over28Hours"`

	HeatingKWh float64 `json:"heatingKWh"`
	CoolingKWh float64 `json:"coolingKWh"`
	PVKWh      float64 `json:"pvKWh"`

	Histogram       []HistogramBin    `json:"histogram"`
	Monthly         []MonthlyOverheat `json:"monthly"`
	WorstSummerWeek WeekExtract       `json:"worstSummerWeek"`
	ColdestWeek     WeekExtract       `json:"coldestWeek"`
}

// Aggregate reduces an annual run to its metrics. The comfort band drives
// degree-hours and the too-cold/comfortable boundary; the 26/28 °C
// overheating thresholds are absolute.
func Aggregate(annual engine.AnnualResult, band config.ComfortBand) AnnualMetrics {
	points := annual.Points
	h := annual.HoursPerStep

	var m AnnualMetrics
	if len(points) == 0 {
		return m
	}

	indoor := make([]float64, len(points))
	outdoor := make([]float64, len(points))

	m.PeakIndoorC = math.Inf(-1)
	m.MinIndoorC = math.Inf(1)

	for i, p := range points {
		indoor[i] = p.IndoorC
		outdoor[i] = p.OutdoorC

		if p.IndoorC > m.PeakIndoorC {
			m.PeakIndoorC = p.IndoorC
			m.PeakIndoorTime = p.Time
		}
		if p.IndoorC < m.MinIndoorC {
			m.MinIndoorC = p.IndoorC
			m.MinIndoorTime = p.Time
		}

		m.HeatingDegreeHours += math.Max(0, band.MinC-p.IndoorC) * h
		m.CoolingDegreeHours += math.Max(0, p.IndoorC-band.MaxC) * h

		switch {
		case p.IndoorC < band.MinC:
			m.TooColdHours += h
		case p.IndoorC <= band.MaxC:
			m.ComfortableHours += h
		case p.IndoorC <= OverheatThresholdC:
			m.WarmHours += h
		case p.IndoorC <= SevereThresholdC:
			m.Over26To28Hours += h
		default:
			m.Over28Hours += h
		}

		m.HeatingKWh += p.HeatingW * h / 1000
		m.CoolingKWh += p.CoolingW * h / 1000
		m.PVKWh += p.PVGenW * h / 1000
	}

	m.MeanIndoorC = stat.Mean(indoor, nil)
	m.MeanOutdoorC = stat.Mean(outdoor, nil)

	m.Histogram = histogram(indoor, h)
	m.Monthly = monthlyOverheat(points, h)
	m.WorstSummerWeek = worstSummerWeek(points, h)
	m.ColdestWeek = coldestWeek(points, h)

	return m
}

// histogram bins indoor temperatures at fixed width across the observed
// range.
func histogram(indoor []float64, hoursPerStep float64) []HistogramBin {
	min := floats.Min(indoor)
	max := floats.Max(indoor)

	lo := math.Floor(min/histogramBinWidthC) * histogramBinWidthC
	hi := math.Ceil(max/histogramBinWidthC) * histogramBinWidthC
	if hi <= lo {
		hi = lo + histogramBinWidthC
	}
	n := int(math.Round((hi - lo) / histogramBinWidthC))

	bins := make([]HistogramBin, n)
	for i := range bins {
		bins[i].FromC = lo + float64(i)*histogramBinWidthC
		bins[i].ToC = bins[i].FromC + histogramBinWidthC
	}
	for _, v := range indoor {
		idx := int((v - lo) / histogramBinWidthC)
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Hours += hoursPerStep
	}
	return bins
}

func monthlyOverheat(points []engine.Point, hoursPerStep float64) []MonthlyOverheat {
	months := make([]MonthlyOverheat, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}
	for _, p := range points {
		i := int(p.Time.Month()) - 1
		if p.IndoorC > OverheatThresholdC {
			months[i].HoursOver26 += hoursPerStep
		}
		if p.IndoorC > SevereThresholdC {
			months[i].HoursOver28 += hoursPerStep
		}
	}
	return months
}

// weekWindows sizes the day-aligned sliding 7-day windows.
func weekWindows(stepHours float64) (stepsPerDay, stepsPerWeek int) {
	stepsPerDay = int(math.Round(24 / stepHours))
	return stepsPerDay, stepsPerDay * 7
}

// worstSummerWeek finds the 7-day window with the most hours above the
// overheating threshold; ties go to the first occurrence.
func worstSummerWeek(points []engine.Point, hoursPerStep float64) WeekExtract {
	stepsPerDay, stepsPerWeek := weekWindows(hoursPerStep)
	if len(points) < stepsPerWeek {
		return WeekExtract{}
	}

	best := WeekExtract{OverheatHours: -1}
	for start := 0; start+stepsPerWeek <= len(points); start += stepsPerDay {
		window := points[start : start+stepsPerWeek]
		var over float64
		for _, p := range window {
			if p.IndoorC > OverheatThresholdC {
				over += hoursPerStep
			}
		}
		if over > best.OverheatHours {
			best = summarizeWindow(window, start)
			best.OverheatHours = over
		}
	}
	return best
}

// coldestWeek finds the 7-day window with the lowest mean outdoor
// temperature; ties go to the first occurrence.
func coldestWeek(points []engine.Point, hoursPerStep float64) WeekExtract {
	stepsPerDay, stepsPerWeek := weekWindows(hoursPerStep)
	if len(points) < stepsPerWeek {
		return WeekExtract{}
	}

	bestMean := math.Inf(1)
	var best WeekExtract
	for start := 0; start+stepsPerWeek <= len(points); start += stepsPerDay {
		window := points[start : start+stepsPerWeek]
		outdoor := make([]float64, len(window))
		for i, p := range window {
			outdoor[i] = p.OutdoorC
		}
		mean := stat.Mean(outdoor, nil)
		if mean < bestMean {
			bestMean = mean
			best = summarizeWindow(window, start)
		}
	}
	best.MeanOutdoorC = bestMean
	return best
}

func summarizeWindow(window []engine.Point, startIdx int) WeekExtract {
	out := WeekExtract{
		Start:           window[0].Time,
		End:             window[len(window)-1].Time,
		PeakIndoorC:     math.Inf(-1),
		MinIndoorC:      math.Inf(1),
		StartPointIndex: startIdx,
	}
	var outdoorSum float64
	for _, p := range window {
		outdoorSum += p.OutdoorC
		if p.IndoorC > out.PeakIndoorC {
			out.PeakIndoorC = p.IndoorC
		}
		if p.IndoorC < out.MinIndoorC {
			out.MinIndoorC = p.IndoorC
		}
	}
	out.MeanOutdoorC = outdoorSum / float64(len(window))
	return out
}
