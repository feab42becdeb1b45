// Package epw parses EnergyPlus Weather (EPW) files: 8 header lines followed
// by exactly 8760 hourly records covering one non-leap year.
package epw

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// HoursPerYear is the record count of a valid EPW dataset.
const HoursPerYear = 8760

const headerLines = 8

// Column indices of the fields consumed from each data row.
const (
	colMonth          = 1
	colDay            = 2
	colHour           = 3
	colDryBulb        = 6
	colRelHumidity    = 8
	colGHI            = 13
	colDNI            = 14
	colDHI            = 15
	colWindDir        = 20
	colWindSpeed      = 21
	colTotalSkyCover  = 22
	colOpaqueSkyCover = 23
)

// Location is the site metadata from the LOCATION header line.
type Location struct {
	City       string
	Country    string
	Source     string
	Latitude   float64
	Longitude  float64
	TimezoneH  float64
	ElevationM float64
}

// Record is one hourly weather observation.
type Record struct {
	Month          int
	Day            int
	Hour           int // 0-23
	DryBulbC       float64
	RelHumidity    float64
	GHI            float64
	DNI            float64
	DHI            float64
	WindDirDeg     float64
	WindSpeedMS    float64
	TotalSkyCover  float64 // tenths, 0-10
	OpaqueSkyCover float64
}

// Dataset is a parsed EPW file: location metadata plus 8760 hourly records
// in file order (Jan 1 hour 0 through Dec 31 hour 23).
type Dataset struct {
	Location Location
	Records  []Record
}

// Missing-value sentinels used by the EPW format.
func isMissing(v float64) bool {
	return v == 9999 || v == 99999 || v == 999999 || v == -9999
}

// Parse reads an EPW stream. It returns an error for malformed headers or a
// row count other than 8760; the caller is expected to fall back to
// synthetic weather on error.
func Parse(r io.Reader) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var loc Location
	for i := 0; i < headerLines; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("epw: truncated header at line %d", i+1)
		}
		if i == 0 {
			var err error
			loc, err = parseLocationLine(scanner.Text())
			if err != nil {
				return nil, err
			}
		}
	}

	records := make([]Record, 0, HoursPerYear)
	lineNum := headerLines
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseDataRow(line)
		if err != nil {
			return nil, fmt.Errorf("epw: line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("epw: read: %w", err)
	}
	if len(records) != HoursPerYear {
		return nil, fmt.Errorf("epw: expected %d data rows, got %d", HoursPerYear, len(records))
	}

	interpolateTemperatureGaps(records)

	return &Dataset{Location: loc, Records: records}, nil
}

func parseLocationLine(line string) (Location, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 10 || !strings.EqualFold(strings.TrimSpace(fields[0]), "LOCATION") {
		return Location{}, fmt.Errorf("epw: malformed LOCATION header")
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(fields[6]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(fields[7]), 64)
	tz, err3 := strconv.ParseFloat(strings.TrimSpace(fields[8]), 64)
	elev, err4 := strconv.ParseFloat(strings.TrimSpace(fields[9]), 64)
	for _, err := range []error{err1, err2, err3, err4} {
		if err != nil {
			return Location{}, fmt.Errorf("epw: unparseable LOCATION fields: %w", err)
		}
	}

	return Location{
		City:       strings.TrimSpace(fields[1]),
		Country:    strings.TrimSpace(fields[3]),
		Source:     strings.TrimSpace(fields[4]),
		Latitude:   lat,
		Longitude:  lon,
		TimezoneH:  tz,
		ElevationM: elev,
	}, nil
}

func parseDataRow(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) <= colOpaqueSkyCover {
		return Record{}, fmt.Errorf("short row: %d fields", len(fields))
	}

	month, err := strconv.Atoi(strings.TrimSpace(fields[colMonth]))
	if err != nil {
		return Record{}, fmt.Errorf("month: %w", err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(fields[colDay]))
	if err != nil {
		return Record{}, fmt.Errorf("day: %w", err)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(fields[colHour]))
	if err != nil {
		return Record{}, fmt.Errorf("hour: %w", err)
	}

	rec := Record{
		Month:          month,
		Day:            day,
		Hour:           hour % 24, // EPW hours run 1-24; wrap 24 to 0
		DryBulbC:       numField(fields, colDryBulb, math.NaN()),
		RelHumidity:    numField(fields, colRelHumidity, 50),
		GHI:            numField(fields, colGHI, 0),
		DNI:            numField(fields, colDNI, 0),
		DHI:            numField(fields, colDHI, 0),
		WindDirDeg:     numField(fields, colWindDir, 0),
		WindSpeedMS:    numField(fields, colWindSpeed, 0),
		TotalSkyCover:  numField(fields, colTotalSkyCover, 5),
		OpaqueSkyCover: numField(fields, colOpaqueSkyCover, 5),
	}
	return rec, nil
}

// numField parses a numeric column, returning fallback when the column is
// absent, unparseable, or carries a missing-value sentinel. Dry-bulb uses a
// NaN fallback so gaps can be interpolated afterward.
func numField(fields []string, idx int, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
	if err != nil || isMissing(v) {
		return fallback
	}
	return v
}

// interpolateTemperatureGaps fills NaN dry-bulb runs by linear interpolation
// between the surrounding valid values. Gaps touching either end of the year
// are filled with the nearest valid value.
func interpolateTemperatureGaps(records []Record) {
	n := len(records)
	i := 0
	for i < n {
		if !math.IsNaN(records[i].DryBulbC) {
			i++
			continue
		}
		start := i
		for i < n && math.IsNaN(records[i].DryBulbC) {
			i++
		}
		// Gap is records[start:i].
		switch {
		case start == 0 && i == n:
			for j := range records {
				records[j].DryBulbC = 0
			}
		case start == 0:
			for j := start; j < i; j++ {
				records[j].DryBulbC = records[i].DryBulbC
			}
		case i == n:
			for j := start; j < i; j++ {
				records[j].DryBulbC = records[start-1].DryBulbC
			}
		default:
			before := records[start-1].DryBulbC
			after := records[i].DryBulbC
			span := float64(i - start + 1)
			for j := start; j < i; j++ {
				frac := float64(j-start+1) / span
				records[j].DryBulbC = before + (after-before)*frac
			}
		}
	}
}

// Cumulative day-of-year offsets for a non-leap year, by month.
var monthStartDay = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// At returns the record for the given month (1-12), day (1-31), and hour
// (0-23), by direct index into the hourly grid.
func (d *Dataset) At(month, day, hour int) Record {
	if month < 1 || month > 12 {
		month = 1
	}
	idx := (monthStartDay[month]+day-1)*24 + hour
	if idx < 0 {
		idx = 0
	}
	if idx >= len(d.Records) {
		idx = len(d.Records) - 1
	}
	return d.Records[idx]
}
