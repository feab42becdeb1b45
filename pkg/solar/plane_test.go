package solar

import (
	"math"
	"testing"
	"time"
)

func TestPlaneIrradianceNonNegative(t *testing.T) {
	tests := []struct {
		name string
		in   PlaneInput
	}{
		{
			name: "south wall midday sun",
			in: PlaneInput{
				TiltDeg: 90, SurfaceAzimuthDeg: 180,
				SunAltitudeDeg: 35, SunAzimuthDeg: 180,
				DNI: 700, DHI: 120, GHI: 520, GroundAlbedo: 0.2,
			},
		},
		{
			name: "sun behind plane",
			in: PlaneInput{
				TiltDeg: 90, SurfaceAzimuthDeg: 0,
				SunAltitudeDeg: 35, SunAzimuthDeg: 180,
				DNI: 700, DHI: 120, GHI: 520, GroundAlbedo: 0.2,
			},
		},
		{
			name: "sun below horizon",
			in: PlaneInput{
				TiltDeg: 90, SurfaceAzimuthDeg: 180,
				SunAltitudeDeg: -5, SunAzimuthDeg: 180,
				DNI: 700, DHI: 120, GHI: 520, GroundAlbedo: 0.2,
			},
		},
		{
			name: "NaN inputs guarded",
			in: PlaneInput{
				TiltDeg: 45, SurfaceAzimuthDeg: 180,
				SunAltitudeDeg: 20, SunAzimuthDeg: 200,
				DNI: math.NaN(), DHI: math.Inf(1), GHI: -50, GroundAlbedo: 0.2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PlaneIrradiance(tt.in)
			if c.Beam < 0 || c.Diffuse < 0 || c.Ground < 0 {
				t.Errorf("negative component: %+v", c)
			}
			if math.IsNaN(c.Total()) || math.IsInf(c.Total(), 0) {
				t.Errorf("non-finite total: %+v", c)
			}
			if tt.in.SunAltitudeDeg <= 0 && c.Beam != 0 {
				t.Errorf("beam = %v with sun below horizon, want 0", c.Beam)
			}
		})
	}
}

func TestPlaneIrradianceHorizontalRecoversGHI(t *testing.T) {
	// For a horizontal plane, beam + diffuse should roughly reconstruct GHI
	// when the inputs are self-consistent.
	alt := 40.0
	dni := 600.0
	dhi := 150.0
	ghi := dni*math.Sin(degToRad(alt)) + dhi

	c := PlaneIrradiance(PlaneInput{
		TiltDeg: 0, SurfaceAzimuthDeg: 180,
		SunAltitudeDeg: alt, SunAzimuthDeg: 170,
		DNI: dni, DHI: dhi, GHI: ghi, GroundAlbedo: 0.2,
	})

	if math.Abs(c.Beam+c.Diffuse-ghi) > 1.0 {
		t.Errorf("beam+diffuse = %.1f, want ~%.1f", c.Beam+c.Diffuse, ghi)
	}
	if c.Ground != 0 {
		t.Errorf("ground component on horizontal plane = %v, want 0", c.Ground)
	}
}

func TestClearSkyIrradiance(t *testing.T) {
	noon := time.Date(2023, 6, 21, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC)

	clear := ClearSkyIrradiance(noon, 51.5, 0, 20, 0)
	if clear.GHI < 500 || clear.GHI > 1100 {
		t.Errorf("clear-sky solstice noon GHI = %.0f, want 500-1100", clear.GHI)
	}
	if clear.DNI <= 0 || clear.DHI <= 0 {
		t.Errorf("clear-sky components not positive: %+v", clear)
	}

	overcast := ClearSkyIrradiance(noon, 51.5, 0, 20, 10)
	if overcast.GHI >= clear.GHI {
		t.Errorf("overcast GHI %.0f not below clear %.0f", overcast.GHI, clear.GHI)
	}
	if overcast.DHI < overcast.GHI*0.9 {
		t.Errorf("overcast sky should be nearly all diffuse: %+v", overcast)
	}

	night := ClearSkyIrradiance(midnight, 51.5, 0, 20, 0)
	if night.GHI != 0 || night.DNI != 0 || night.DHI != 0 {
		t.Errorf("nighttime irradiance nonzero: %+v", night)
	}
}
