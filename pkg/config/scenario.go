package config

import "math"

// WeatherMode selects the forcing source.
type WeatherMode string

const (
	WeatherEPW         WeatherMode = "epw"
	WeatherClimatology WeatherMode = "climatology"
	WeatherManual      WeatherMode = "manual"
)

// ManualClimate is the user-set seasonal profile used by the manual
// weather mode. Cloud cover is held constant across the synthetic day.
type ManualClimate struct {
	SummerPeakC   float64 `yaml:"summer_peak" json:"summerPeak"`
	WinterPeakC   float64 `yaml:"winter_peak" json:"winterPeak"`
	DiurnalRangeC float64 `yaml:"diurnal_range" json:"diurnalRange"`
	CloudTenths   float64 `yaml:"cloud_tenths" json:"cloudTenths"`
	WindSpeedMS   float64 `yaml:"wind_speed" json:"windSpeed"`
}

// WeatherConfig selects and parameterizes the forcing provider.
type WeatherConfig struct {
	Mode    WeatherMode   `yaml:"mode" json:"mode"`
	EPWPath string        `yaml:"epw_path,omitempty" json:"epwPath,omitempty"`
	Manual  ManualClimate `yaml:"manual,omitempty" json:"manual"`
}

// ComfortBand is the heating/cooling setpoint pair the time-stepper holds
// the room within.
type ComfortBand struct {
	MinC float64 `yaml:"min" json:"min"`
	MaxC float64 `yaml:"max" json:"max"`
}

// FacesConfig holds the four per-face configurations.
type FacesConfig struct {
	North FaceConfig `yaml:"north" json:"north"`
	East  FaceConfig `yaml:"east" json:"east"`
	South FaceConfig `yaml:"south" json:"south"`
	West  FaceConfig `yaml:"west" json:"west"`
}

// Get returns the config for a cardinal face.
func (fc FacesConfig) Get(f Face) FaceConfig {
	switch f {
	case FaceEast:
		return fc.East
	case FaceSouth:
		return fc.South
	case FaceWest:
		return fc.West
	default:
		return fc.North
	}
}

// VentilationConfig is the active preset plus the automatic-control toggles
// the policy engine dispatches on.
type VentilationConfig struct {
	Preset          string `yaml:"preset" json:"preset"`
	NightPurge      bool   `yaml:"night_purge,omitempty" json:"nightPurge"`
	MVHRAutoControl bool   `yaml:"mvhr_auto,omitempty" json:"mvhrAuto"`
}

// PVConfig describes the on-site photovoltaic array.
type PVConfig struct {
	AreaM2           float64 `yaml:"area,omitempty" json:"area"`
	Efficiency       float64 `yaml:"efficiency,omitempty" json:"efficiency"`
	PerformanceRatio float64 `yaml:"performance_ratio,omitempty" json:"performanceRatio"`
	TiltDeg          float64 `yaml:"tilt,omitempty" json:"tilt"`
	AzimuthDeg       float64 `yaml:"azimuth,omitempty" json:"azimuth"`
}

// Tariff converts thermal energy into money and carbon.
type Tariff struct {
	ElectricityPriceKWh float64 `yaml:"electricity_price,omitempty" json:"electricityPrice"`
	CarbonKgPerKWh      float64 `yaml:"carbon_intensity,omitempty" json:"carbonIntensity"`
	HeatingCOP          float64 `yaml:"heating_cop,omitempty" json:"heatingCOP"`
	CoolingCOP          float64 `yaml:"cooling_cop,omitempty" json:"coolingCOP"`
}

// SimParams holds the integrator settings.
type SimParams struct {
	StepMinutes          int     `yaml:"step_minutes,omitempty" json:"stepMinutes"`
	SpinupDays           int     `yaml:"spinup_days,omitempty" json:"spinupDays"`
	SpinupHours          int     `yaml:"spinup_hours,omitempty" json:"spinupHours"`
	ThermalCapacitanceJK float64 `yaml:"thermal_capacitance,omitempty" json:"thermalCapacitance"`
	InternalGainsW       float64 `yaml:"internal_gains,omitempty" json:"internalGains"`
	GroundAlbedo         float64 `yaml:"ground_albedo,omitempty" json:"groundAlbedo"`
}

// Scenario is the complete simulation configuration. It aggregates every
// input the engine depends on; the memoized service hashes the whole struct
// so any change triggers exactly one recomputation.
type Scenario struct {
	Location       Location          `yaml:"location" json:"location"`
	Room           RoomDims          `yaml:"room" json:"room"`
	OrientationDeg float64           `yaml:"orientation,omitempty" json:"orientation"`
	Faces          FacesConfig       `yaml:"faces" json:"faces"`
	OpenSegments   []OpenSegment     `yaml:"open_segments,omitempty" json:"openSegments,omitempty"`
	Rooflight      RooflightConfig   `yaml:"rooflight,omitempty" json:"rooflight"`
	UValues        string            `yaml:"u_values,omitempty" json:"uValues"`
	Ventilation    VentilationConfig `yaml:"ventilation" json:"ventilation"`
	Comfort        ComfortBand       `yaml:"comfort,omitempty" json:"comfort"`
	Weather        WeatherConfig     `yaml:"weather" json:"weather"`
	PV             PVConfig          `yaml:"pv,omitempty" json:"pv"`
	Tariff         Tariff            `yaml:"tariff,omitempty" json:"tariff"`
	Sim            SimParams         `yaml:"sim,omitempty" json:"sim"`
}

// DefaultScenario returns a ready-to-simulate London scenario.
func DefaultScenario() Scenario {
	return Scenario{
		Location: Location{Latitude: 51.5, Longitude: -0.1, TimezoneH: 0, ElevationM: 20},
		Room:     RoomDims{WidthM: 8, DepthM: 6, HeightM: 3},
		Faces: FacesConfig{
			South: FaceConfig{GlazingRatio: 0.4, OverhangDepthM: 0.5},
			North: FaceConfig{GlazingRatio: 0.15},
		},
		Rooflight:   RooflightConfig{WidthM: 1.2, DepthM: 1.2},
		UValues:     "standard",
		Ventilation: VentilationConfig{Preset: "trickle"},
		Comfort:     ComfortBand{MinC: 20, MaxC: 25},
		Weather: WeatherConfig{
			Mode: WeatherClimatology,
			Manual: ManualClimate{
				SummerPeakC:   22,
				WinterPeakC:   5,
				DiurnalRangeC: 8,
				CloudTenths:   5,
				WindSpeedMS:   3.5,
			},
		},
		PV:     PVConfig{AreaM2: 0, Efficiency: 0.20, PerformanceRatio: 0.8, TiltDeg: 30, AzimuthDeg: 180},
		Tariff: Tariff{ElectricityPriceKWh: 0.28, CarbonKgPerKWh: 0.20, HeatingCOP: 3.0, CoolingCOP: 3.5},
		Sim: SimParams{
			StepMinutes:          10,
			SpinupDays:           2,
			SpinupHours:          48,
			ThermalCapacitanceJK: 8.0e6,
			InternalGainsW:       180,
			GroundAlbedo:         0.2,
		},
	}
}

// Normalized returns the scenario with every field clamped into its valid
// range and zero-valued settings replaced by defaults.
func (s Scenario) Normalized() Scenario {
	def := DefaultScenario()

	s.Location = s.Location.Normalized()

	if s.Room.WidthM <= 0 {
		s.Room.WidthM = def.Room.WidthM
	}
	if s.Room.DepthM <= 0 {
		s.Room.DepthM = def.Room.DepthM
	}
	if s.Room.HeightM <= 0 {
		s.Room.HeightM = def.Room.HeightM
	}

	s.OrientationDeg = math.Mod(s.OrientationDeg, 360)
	if s.OrientationDeg < 0 {
		s.OrientationDeg += 360
	}

	h := s.Room.HeightM
	s.Faces.North = s.Faces.North.Clamped(h)
	s.Faces.East = s.Faces.East.Clamped(h)
	s.Faces.South = s.Faces.South.Clamped(h)
	s.Faces.West = s.Faces.West.Clamped(h)

	if s.UValues == "" {
		s.UValues = def.UValues
	}
	if s.Ventilation.Preset == "" {
		s.Ventilation.Preset = def.Ventilation.Preset
	}
	if s.Comfort.MinC == 0 && s.Comfort.MaxC == 0 {
		s.Comfort = def.Comfort
	}
	if s.Comfort.MaxC < s.Comfort.MinC {
		s.Comfort.MaxC = s.Comfort.MinC
	}

	if s.Weather.Mode == "" {
		s.Weather.Mode = def.Weather.Mode
	}
	if s.Weather.Manual == (ManualClimate{}) {
		s.Weather.Manual = def.Weather.Manual
	}
	s.Weather.Manual.CloudTenths = math.Max(0, math.Min(10, s.Weather.Manual.CloudTenths))

	if s.PV.Efficiency <= 0 {
		s.PV.Efficiency = def.PV.Efficiency
	}
	if s.PV.PerformanceRatio <= 0 {
		s.PV.PerformanceRatio = def.PV.PerformanceRatio
	}
	s.PV.AreaM2 = math.Max(0, s.PV.AreaM2)

	if s.Tariff.ElectricityPriceKWh <= 0 {
		s.Tariff.ElectricityPriceKWh = def.Tariff.ElectricityPriceKWh
	}
	if s.Tariff.CarbonKgPerKWh <= 0 {
		s.Tariff.CarbonKgPerKWh = def.Tariff.CarbonKgPerKWh
	}
	if s.Tariff.HeatingCOP <= 0 {
		s.Tariff.HeatingCOP = def.Tariff.HeatingCOP
	}
	if s.Tariff.CoolingCOP <= 0 {
		s.Tariff.CoolingCOP = def.Tariff.CoolingCOP
	}

	if s.Sim.StepMinutes <= 0 || 60%s.Sim.StepMinutes != 0 {
		s.Sim.StepMinutes = def.Sim.StepMinutes
	}
	if s.Sim.SpinupDays <= 0 {
		s.Sim.SpinupDays = def.Sim.SpinupDays
	}
	if s.Sim.SpinupHours <= 0 {
		s.Sim.SpinupHours = def.Sim.SpinupHours
	}
	if s.Sim.ThermalCapacitanceJK <= 0 {
		s.Sim.ThermalCapacitanceJK = def.Sim.ThermalCapacitanceJK
	}
	if s.Sim.InternalGainsW < 0 {
		s.Sim.InternalGainsW = 0
	}
	if s.Sim.GroundAlbedo <= 0 || s.Sim.GroundAlbedo > 1 {
		s.Sim.GroundAlbedo = def.Sim.GroundAlbedo
	}

	return s
}
