package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

func main() {
	var (
		cfgFile = flag.String("config", "", "Path to a YAML scenario file (default scenario if omitted)")
		epwFile = flag.String("epw", "", "Path to an EPW weather file")
		dateStr = flag.String("date", "2023-06-21", "Date to simulate (YYYY-MM-DD)")
		debug   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		os.Exit(1)
	}

	scenario := loadScenario(*cfgFile)

	var dataset *epw.Dataset
	if *epwFile != "" {
		dataset = loadEPW(*epwFile)
		scenario.Weather.Mode = config.WeatherEPW
		scenario.Weather.EPWPath = *epwFile
	}

	svc := sim.NewService(scenario, dataset)
	day := svc.Day(date)

	fmt.Printf("Day Profile for %s (weather %s)\n", day.Date.Format("2006-01-02"), svc.WeatherMode())
	fmt.Println("time   indoor outdoor  solar fabric   vent   ACH   heat   cool  mode")
	for _, p := range day.Points {
		fmt.Printf("%s  %5.1f  %6.1f  %5.0f  %5.0f  %5.0f  %4.1f  %5.0f  %5.0f  %s\n",
			p.Time.Format("15:04"), p.IndoorC, p.OutdoorC,
			p.SolarGainW, p.FabricLossW, p.VentLossW,
			p.ACH, p.HeatingW, p.CoolingW, p.VentMode)
	}
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
