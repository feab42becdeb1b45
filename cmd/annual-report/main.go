package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

func main() {
	var (
		cfgFile = flag.String("config", "", "Path to a YAML scenario file (default scenario if omitted)")
		epwFile = flag.String("epw", "", "Path to an EPW weather file (overrides the scenario's weather mode)")
		debug   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	scenario := loadScenario(*cfgFile)

	var dataset *epw.Dataset
	if *epwFile != "" {
		dataset = loadEPW(*epwFile)
		scenario.Weather.Mode = config.WeatherEPW
		scenario.Weather.EPWPath = *epwFile
	}

	svc := sim.NewService(scenario, dataset)
	run := svc.Annual()
	m := run.Metrics
	s := run.Summary

	fmt.Printf("Annual Report (run %s, weather %s)\n", run.RunID, svc.WeatherMode())
	fmt.Println("=================================")
	fmt.Printf("Indoor temperature:  %.1f°C mean, %.1f°C min (%s), %.1f°C peak (%s)\n",
		m.MeanIndoorC, m.MinIndoorC, m.MinIndoorTime.Format("Jan 2 15:04"),
		m.PeakIndoorC, m.PeakIndoorTime.Format("Jan 2 15:04"))
	fmt.Printf("Outdoor temperature: %.1f°C mean\n", m.MeanOutdoorC)
	fmt.Println()
	fmt.Printf("Comfort hours:\n")
	fmt.Printf("  Too cold:        %6.0f h\n", m.TooColdHours)
	fmt.Printf("  Comfortable:     %6.0f h\n", m.ComfortableHours)
	fmt.Printf("  Warm:            %6.0f h\n", m.WarmHours)
	fmt.Printf("  Over 26°C:       %6.0f h\n", m.Over26To28Hours)
	fmt.Printf("  Over 28°C:       %6.0f h\n", m.Over28Hours)
	fmt.Println()
	fmt.Printf("Degree-hours:       %.0f heating, %.0f cooling\n", m.HeatingDegreeHours, m.CoolingDegreeHours)
	fmt.Printf("Thermal demand:     %.0f kWh heating, %.0f kWh cooling\n", m.HeatingKWh, m.CoolingKWh)
	fmt.Println()
	fmt.Printf("Electricity:        %.0f kWh heating, %.0f kWh cooling, %.0f kWh PV\n",
		s.HeatingElectricKWh, s.CoolingElectricKWh, s.PVGenerationKWh)
	fmt.Printf("Net grid draw:      %.0f kWh\n", s.NetElectricKWh)
	fmt.Printf("Running cost:       £%.0f (£%.0f before PV)\n", s.CostGBP, s.GrossCostGBP)
	fmt.Printf("Carbon:             %.0f kgCO2e (%.0f before PV)\n", s.CarbonKgCO2, s.GrossCarbonKgCO2)
	fmt.Println()
	fmt.Printf("Worst summer week:  from %s, %.0f h over 26°C, peak %.1f°C\n",
		m.WorstSummerWeek.Start.Format("Jan 2"), m.WorstSummerWeek.OverheatHours, m.WorstSummerWeek.PeakIndoorC)
	fmt.Printf("Coldest week:       from %s, %.1f°C mean outdoor\n",
		m.ColdestWeek.Start.Format("Jan 2"), m.ColdestWeek.MeanOutdoorC)
}

func loadScenario(cfgFile string) config.Scenario {
	if cfgFile == "" {
		return config.DefaultScenario()
	}
	provider := config.NewYAMLProvider(cfgFile)
	sc, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}
	return *sc
}

func loadEPW(path string) *epw.Dataset {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening EPW file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ds, err := epw.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing EPW file: %v\n", err)
		os.Exit(1)
	}
	return ds
}
