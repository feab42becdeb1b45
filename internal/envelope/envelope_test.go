package envelope

import (
	"math"
	"testing"

	"github.com/jrbassindale1/roomclimate/pkg/config"
)

var testDims = config.RoomDims{WidthM: 8, DepthM: 6, HeightM: 3}

func TestBuildWindows(t *testing.T) {
	faces := config.FacesConfig{
		South: config.FaceConfig{GlazingRatio: 0.5, CillLiftM: 0.8},
		East:  config.FaceConfig{GlazingRatio: 0.25},
	}

	windows := BuildWindows(faces, 0, testDims)
	if len(windows) != 2 {
		t.Fatalf("window count = %d, want 2", len(windows))
	}

	var south, east *Window
	for i := range windows {
		switch windows[i].Face {
		case config.FaceSouth:
			south = &windows[i]
		case config.FaceEast:
			east = &windows[i]
		}
	}
	if south == nil || east == nil {
		t.Fatal("missing expected faces")
	}

	// South face spans the 8 m width; glazing 0.5 gives a 4 m window.
	if math.Abs(south.WidthM-4.0) > 1e-9 {
		t.Errorf("south width = %v, want 4.0", south.WidthM)
	}
	if math.Abs(south.HeightM-2.2) > 1e-9 {
		t.Errorf("south height = %v, want 2.2 (3.0 - 0.8 cill lift)", south.HeightM)
	}
	if south.AzimuthDeg != 180 {
		t.Errorf("south azimuth = %v, want 180", south.AzimuthDeg)
	}

	// East face spans the 6 m depth.
	if math.Abs(east.WidthM-1.5) > 1e-9 {
		t.Errorf("east width = %v, want 1.5", east.WidthM)
	}
	if east.AzimuthDeg != 90 {
		t.Errorf("east azimuth = %v, want 90", east.AzimuthDeg)
	}
}

func TestBuildWindowsOrientation(t *testing.T) {
	faces := config.FacesConfig{South: config.FaceConfig{GlazingRatio: 0.3}}
	windows := BuildWindows(faces, 270, testDims)
	if len(windows) != 1 {
		t.Fatalf("window count = %d, want 1", len(windows))
	}
	if windows[0].AzimuthDeg != 90 {
		t.Errorf("rotated south azimuth = %v, want 90", windows[0].AzimuthDeg)
	}
}

func TestOpenedWindowArea(t *testing.T) {
	faces := config.FacesConfig{
		South: config.FaceConfig{GlazingRatio: 0.5}, // 4.0 x 3.0 m window, 7 leaves
	}

	tests := []struct {
		name         string
		segments     []config.OpenSegment
		wantOpen     int
		wantTopHung  bool
		wantTurn     bool
		wantAreaZero bool
	}{
		{
			name:     "one top-hung leaf",
			segments: []config.OpenSegment{{Face: "south", Leaf: 0, State: "top-hung"}},
			wantOpen: 1, wantTopHung: true,
		},
		{
			name:     "one turn leaf",
			segments: []config.OpenSegment{{Face: "south", Leaf: 2, State: "turn"}},
			wantOpen: 1, wantTurn: true,
		},
		{
			name:         "closed segments ignored",
			segments:     []config.OpenSegment{{Face: "south", Leaf: 0, State: "closed"}},
			wantAreaZero: true,
		},
		{
			name:         "unknown face ignored",
			segments:     []config.OpenSegment{{Face: "up", Leaf: 0, State: "turn"}},
			wantAreaZero: true,
		},
		{
			name:         "leaf index out of range ignored",
			segments:     []config.OpenSegment{{Face: "south", Leaf: 99, State: "turn"}},
			wantAreaZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OpenedWindowArea(faces, testDims, 0, tt.segments)
			if tt.wantAreaZero {
				if got.TotalOpenAreaM2 != 0 || got.OpenLeafCount != 0 {
					t.Errorf("expected no open area, got %+v", got)
				}
				return
			}
			if got.OpenLeafCount != tt.wantOpen {
				t.Errorf("open leaves = %d, want %d", got.OpenLeafCount, tt.wantOpen)
			}
			if tt.wantTopHung && (got.TopHungAreaM2 <= 0 || got.TurnAreaM2 != 0) {
				t.Errorf("top-hung split wrong: %+v", got)
			}
			if tt.wantTurn && (got.TurnAreaM2 <= 0 || got.TopHungAreaM2 != 0) {
				t.Errorf("turn split wrong: %+v", got)
			}
			if got.ByFace[config.FaceSouth] != got.TotalOpenAreaM2 {
				t.Errorf("per-face area %v != total %v", got.ByFace[config.FaceSouth], got.TotalOpenAreaM2)
			}
		})
	}
}

func TestTopHungFractionOfTurn(t *testing.T) {
	faces := config.FacesConfig{South: config.FaceConfig{GlazingRatio: 0.5}}
	topHung := OpenedWindowArea(faces, testDims, 0, []config.OpenSegment{{Face: "south", Leaf: 0, State: "top-hung"}})
	turn := OpenedWindowArea(faces, testDims, 0, []config.OpenSegment{{Face: "south", Leaf: 0, State: "turn"}})

	want := turn.TotalOpenAreaM2 * TopHungVentRatio
	if math.Abs(topHung.TotalOpenAreaM2-want) > 1e-9 {
		t.Errorf("top-hung area = %v, want %v", topHung.TotalOpenAreaM2, want)
	}
}

func TestResolveRooflight(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.RooflightConfig
		wantW     float64
		wantD     float64
		wantOpen  bool
		checkArea func(t *testing.T, r ResolvedRooflight)
	}{
		{
			name:  "below minimum span clamps up",
			cfg:   config.RooflightConfig{WidthM: 0.5, DepthM: 1.2},
			wantW: config.MinRooflightSpan,
			wantD: 1.2,
		},
		{
			name:  "oversize clamps to roof-derived maximum",
			cfg:   config.RooflightConfig{WidthM: 20, DepthM: 20},
			wantW: 8 - 2*config.RooflightEdgeOffset,
			wantD: 6 - 2*config.RooflightEdgeOffset,
		},
		{
			name:     "open height uses fixed travel",
			cfg:      config.RooflightConfig{WidthM: 1.2, DepthM: 1.2, OpenHeightM: 0.9},
			wantW:    1.2,
			wantD:    1.2,
			wantOpen: true,
			checkArea: func(t *testing.T, r ResolvedRooflight) {
				perimeter := 2 * (r.WidthM + r.DepthM)
				want := math.Min(perimeter*config.RooflightTravel, r.AreaM2())
				if math.Abs(r.OpeningAreaM2-want) > 1e-9 {
					t.Errorf("opening area = %v, want %v", r.OpeningAreaM2, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRooflight(tt.cfg, testDims)
			if math.Abs(got.WidthM-tt.wantW) > 1e-9 || math.Abs(got.DepthM-tt.wantD) > 1e-9 {
				t.Errorf("size = %v x %v, want %v x %v", got.WidthM, got.DepthM, tt.wantW, tt.wantD)
			}
			if got.IsOpen != tt.wantOpen {
				t.Errorf("isOpen = %v, want %v", got.IsOpen, tt.wantOpen)
			}
			if !tt.wantOpen && got.OpeningAreaM2 != 0 {
				t.Errorf("closed rooflight has opening area %v", got.OpeningAreaM2)
			}
			if tt.checkArea != nil {
				tt.checkArea(t, got)
			}
		})
	}
}
