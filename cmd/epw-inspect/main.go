package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file.epw>\n", os.Args[0])
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
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

	loc := ds.Location
	fmt.Printf("Location:   %s, %s (%s)\n", loc.City, loc.Country, loc.Source)
	fmt.Printf("Position:   %.4f, %.4f at %.0f m, UTC%+.0f\n", loc.Latitude, loc.Longitude, loc.ElevationM, loc.TimezoneH)
	fmt.Printf("Records:    %d\n", len(ds.Records))

	minT, maxT := math.Inf(1), math.Inf(-1)
	var tSum, ghiSum, missing float64
	for _, r := range ds.Records {
		if math.IsNaN(r.DryBulbC) {
			missing++
			continue
		}
		tSum += r.DryBulbC
		minT = math.Min(minT, r.DryBulbC)
		maxT = math.Max(maxT, r.DryBulbC)
		ghiSum += r.GHI
	}

	n := float64(len(ds.Records)) - missing
	fmt.Printf("Dry bulb:   %.1f°C min, %.1f°C mean, %.1f°C max\n", minT, tSum/n, maxT)
	fmt.Printf("Global horizontal: %.0f kWh/m2 per year\n", ghiSum/1000)
}
