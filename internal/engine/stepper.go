package engine

import (
	"time"

	"github.com/jrbassindale1/roomclimate/internal/envelope"
	"github.com/jrbassindale1/roomclimate/internal/ventilation"
	"github.com/jrbassindale1/roomclimate/internal/weather"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/solar"
)

// ComfortStatus labels a step by the HVAC action it required.
type ComfortStatus string

const (
	StatusHeating     ComfortStatus = "heating"
	StatusCooling     ComfortStatus = "cooling"
	StatusComfortable ComfortStatus = "comfortable"
)

// Point is one recorded timestep, immutable once produced.
type Point struct {
	Time           time.Time     `json:"time"`
	IndoorC        float64       `json:"indoor"`
	OutdoorC       float64       `json:"outdoor"`
	SolarGainW     float64       `json:"solarGain"`
	SolarByFaceW   [4]float64    `json:"solarByFace"`
	FabricLossW    float64       `json:"fabricLoss"`
	VentLossW      float64       `json:"ventLoss"`
	ACH            float64       `json:"ach"`
	HeatRecovery   float64       `json:"heatRecovery"`
	HeatingW       float64       `json:"heating"`
	CoolingW       float64       `json:"cooling"`
	Status         ComfortStatus `json:"status"`
	VentMode       string        `json:"ventMode"`
	VentReason     string        `json:"ventReason,omitempty"`
	PVGenW         float64       `json:"pvGen"`
	IlluminanceLux float64       `json:"illuminance"`
}

// DayResult is one simulated day after spin-up.
type DayResult struct {
	Date   time.Time `json:"date"`
	Points []Point   `json:"points"`
}

// AnnualResult is a full simulated year at the scenario's step size.
type AnnualResult struct {
	Year         int     `json:"year"`
	StepMinutes  int     `json:"stepMinutes"`
	HoursPerStep float64 `json:"hoursPerStep"`
	Points       []Point `json:"points"`
}

// simYear is the nominal non-leap year the simulation grid runs over; EPW
// datasets carry no meaningful year of their own.
const simYear = 2023

// run holds the per-run resolved geometry so the per-step work only deals
// with time-varying state.
type run struct {
	scenario  config.Scenario
	fabric    config.UValuePreset
	preset    config.VentilationPreset
	windows   []envelope.Window
	rooflight envelope.ResolvedRooflight
	opened    envelope.OpenedArea
	loc       *time.Location
	stepDt    time.Duration
}

func newRun(scenario config.Scenario) *run {
	scenario = scenario.Normalized()
	return &run{
		scenario:  scenario,
		fabric:    config.UValuePresetByName(scenario.UValues),
		preset:    config.VentilationPresetByName(scenario.Ventilation.Preset),
		windows:   envelope.BuildWindows(scenario.Faces, scenario.OrientationDeg, scenario.Room),
		rooflight: envelope.ResolveRooflight(scenario.Rooflight, scenario.Room),
		opened:    envelope.OpenedWindowArea(scenario.Faces, scenario.Room, scenario.OrientationDeg, scenario.OpenSegments),
		loc:       time.FixedZone("site", scenario.Location.TimezoneH*3600),
		stepDt:    time.Duration(scenario.Sim.StepMinutes) * time.Minute,
	}
}

// step advances the room temperature by one forward-Euler step and returns
// the recorded point. Heating and cooling are solved reactively: whatever
// power holds the comfort band exactly, with no capacity limit.
func (r *run) step(t time.Time, roomC float64, forcing weather.Forcing) (float64, Point) {
	s := r.scenario
	sun := solar.SunPosition(t, s.Location.Latitude, s.Location.Longitude)

	hour := float64(t.Hour()) + float64(t.Minute())/60
	vent := ventilation.Resolve(ventilation.PolicyInput{
		Preset:          r.preset,
		AdaptiveEnabled: r.preset.IsAdaptive,
		MVHRAuto:        s.Ventilation.MVHRAutoControl,
		NightPurge:      s.Ventilation.NightPurge,
		Comfort:         s.Comfort,
		IndoorC:         roomC,
		OutdoorC:        forcing.DryBulbC,
		HourOfDay:       hour,
		Manual: ventilation.ManualVentInput{
			Opened:      r.opened,
			Rooflight:   r.rooflight,
			RoomHeightM: s.Room.HeightM,
			VolumeM3:    s.Room.VolumeM3(),
			IndoorC:     roomC,
			OutdoorC:    forcing.DryBulbC,
			WindSpeedMS: forcing.WindSpeedMS,
		},
	})

	snap := ComputeSnapshot(SnapshotInput{
		Room:         s.Room,
		Fabric:       r.fabric,
		Windows:      r.windows,
		Rooflight:    r.rooflight,
		Forcing:      forcing,
		Sun:          sun,
		ACHTotal:     vent.ACH,
		HeatRecovery: vent.HeatRecovery,
		GroundAlbedo: s.Sim.GroundAlbedo,
		InternalsW:   s.Sim.InternalGainsW,
		RoomC:        roomC,
	})

	dtSec := r.stepDt.Seconds()
	capacity := s.Sim.ThermalCapacitanceJK

	var heating, cooling float64
	next := roomC + dtSec/capacity*snap.NetHeatW
	status := StatusComfortable
	switch {
	case next < s.Comfort.MinC:
		heating = capacity*(s.Comfort.MinC-roomC)/dtSec - snap.NetHeatW
		next = s.Comfort.MinC
		status = StatusHeating
	case next > s.Comfort.MaxC:
		cooling = snap.NetHeatW - capacity*(s.Comfort.MaxC-roomC)/dtSec
		next = s.Comfort.MaxC
		status = StatusCooling
	}

	return next, Point{
		Time:           t,
		IndoorC:        next,
		OutdoorC:       forcing.DryBulbC,
		SolarGainW:     snap.SolarGainW,
		SolarByFaceW:   snap.SolarGainByFaceW,
		FabricLossW:    snap.FabricLossW,
		VentLossW:      snap.VentLossW,
		ACH:            vent.ACH,
		HeatRecovery:   vent.HeatRecovery,
		HeatingW:       heating,
		CoolingW:       cooling,
		Status:         status,
		VentMode:       vent.Mode,
		VentReason:     vent.Reason,
		PVGenW:         PVGenerationW(s.PV, sun, forcing, s.Sim.GroundAlbedo),
		IlluminanceLux: snap.IlluminanceLux,
	}
}

// SimulateDay runs one calendar day of the given date, warm-started by
// repeating the previous day's forcing for the configured spin-up days so
// the recorded day does not inherit an arbitrary cold-start temperature.
func SimulateDay(scenario config.Scenario, provider weather.Provider, date time.Time) DayResult {
	r := newRun(scenario)
	s := r.scenario

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc)
	stepsPerDay := int((24 * time.Hour) / r.stepDt)

	roomC := s.Comfort.MinC

	// Spin-up: previous day's forcing repeated.
	prevDay := dayStart.AddDate(0, 0, -1)
	for d := 0; d < s.Sim.SpinupDays; d++ {
		for i := 0; i < stepsPerDay; i++ {
			t := prevDay.Add(time.Duration(i) * r.stepDt)
			roomC, _ = r.step(t, roomC, provider.ForcingAt(t))
		}
	}

	points := make([]Point, 0, stepsPerDay)
	for i := 0; i < stepsPerDay; i++ {
		t := dayStart.Add(time.Duration(i) * r.stepDt)
		var p Point
		roomC, p = r.step(t, roomC, provider.ForcingAt(t))
		points = append(points, p)
	}

	return DayResult{Date: dayStart, Points: points}
}

// SnapshotAt evaluates the instantaneous balance at one moment and the
// given indoor temperature, without advancing any state. The returned
// point reports the requested indoor temperature, not the post-step one.
func SnapshotAt(scenario config.Scenario, provider weather.Provider, t time.Time, indoorC float64) Point {
	r := newRun(scenario)
	t = t.In(r.loc)
	_, p := r.step(t, indoorC, provider.ForcingAt(t))
	p.IndoorC = indoorC
	return p
}

// SimulateAnnual runs a full non-leap year at the scenario's fixed step,
// spinning up on the first day's forcing before recording. Every step is
// recorded; the aggregator downsamples nothing.
func SimulateAnnual(scenario config.Scenario, provider weather.Provider) AnnualResult {
	r := newRun(scenario)
	s := r.scenario

	yearStart := time.Date(simYear, 1, 1, 0, 0, 0, 0, r.loc)
	stepsPerHour := 60 / s.Sim.StepMinutes
	totalSteps := 8760 * stepsPerHour

	roomC := s.Comfort.MinC

	// Spin-up re-plays the first day of the year for the configured hours.
	spinupSteps := s.Sim.SpinupHours * stepsPerHour
	for i := 0; i < spinupSteps; i++ {
		t := yearStart.Add(time.Duration(i%(24*stepsPerHour)) * r.stepDt)
		roomC, _ = r.step(t, roomC, provider.ForcingAt(t))
	}

	points := make([]Point, 0, totalSteps)
	for i := 0; i < totalSteps; i++ {
		t := yearStart.Add(time.Duration(i) * r.stepDt)
		var p Point
		roomC, p = r.step(t, roomC, provider.ForcingAt(t))
		points = append(points, p)
	}

	return AnnualResult{
		Year:         simYear,
		StepMinutes:  s.Sim.StepMinutes,
		HoursPerStep: float64(s.Sim.StepMinutes) / 60,
		Points:       points,
	}
}
