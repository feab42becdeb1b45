// Package envelope resolves the configured building envelope into concrete
// geometry: window dimensions per face, free opening areas for natural
// ventilation, and the rooflight's clamped size and opening area.
package envelope

import (
	"math"

	"github.com/jrbassindale1/roomclimate/pkg/config"
)

const (
	// LeafWidthM is the nominal casement leaf width windows are divided into.
	LeafWidthM = 0.6

	// TopHungVentRatio is the fraction of a leaf's clear area that a
	// tilted top-hung opening provides for ventilation.
	TopHungVentRatio = 0.3
)

// Window is one glazed opening on a cardinal face, resolved to world
// geometry.
type Window struct {
	Face       config.Face
	WidthM     float64
	HeightM    float64
	CillM      float64 // sill height above floor
	AzimuthDeg float64 // world-facing azimuth after building orientation
	LeafCount  int

	// Shading geometry carried through from the face config.
	OverhangDepthM      float64
	VerticalFinDepthM   float64
	HorizontalFinDepthM float64
}

// AreaM2 returns the glazed area.
func (w Window) AreaM2() float64 { return w.WidthM * w.HeightM }

// LeafAreaM2 returns the clear area of a single leaf.
func (w Window) LeafAreaM2() float64 {
	if w.LeafCount == 0 {
		return 0
	}
	return w.AreaM2() / float64(w.LeafCount)
}

// BuildWindows resolves the per-face configuration into windows. Faces with
// zero glazing produce no window. Window height comes from the cill-lift /
// head-drop resolution; the clamps in config guarantee at least the minimum
// clear opening height when any glazing is requested.
func BuildWindows(faces config.FacesConfig, orientationDeg float64, dims config.RoomDims) []Window {
	var windows []Window
	for _, face := range config.Faces {
		fc := faces.Get(face).Clamped(dims.HeightM)
		if fc.GlazingRatio <= 0 {
			continue
		}

		width := dims.FaceSpanM(face) * fc.GlazingRatio
		height := dims.HeightM - fc.CillLiftM - fc.HeadDropM
		if height < config.MinClearOpeningHeight {
			height = config.MinClearOpeningHeight
		}

		windows = append(windows, Window{
			Face:                face,
			WidthM:              width,
			HeightM:             height,
			CillM:               fc.CillLiftM,
			AzimuthDeg:          math.Mod(face.IntrinsicAzimuthDeg()+orientationDeg, 360),
			LeafCount:           leafCount(width),
			OverhangDepthM:      fc.OverhangDepthM,
			VerticalFinDepthM:   fc.VerticalFinDepthM,
			HorizontalFinDepthM: fc.HorizontalFinDepthM,
		})
	}
	return windows
}

func leafCount(widthM float64) int {
	n := int(math.Round(widthM / LeafWidthM))
	if n < 1 {
		n = 1
	}
	return n
}

// OpenedArea sums the free opening areas contributed by manually opened
// window leaves.
type OpenedArea struct {
	TotalOpenAreaM2 float64
	TopHungAreaM2   float64
	TurnAreaM2      float64
	OpenLeafCount   int
	TotalLeafCount  int

	// ByFace indexes free area by cardinal face for cross-flow detection.
	ByFace [4]float64

	// MeanOpeningHeightM is the area-weighted clear height of the open
	// leaves, used by the buoyancy flow estimate.
	MeanOpeningHeightM float64
}

// OpenedWindowArea computes the free opening area for the given manual
// segment states. A top-hung leaf contributes TopHungVentRatio of its clear
// area; a turn leaf contributes its full clear area. Segment references
// outside the built windows are ignored.
func OpenedWindowArea(faces config.FacesConfig, dims config.RoomDims, orientationDeg float64, segments []config.OpenSegment) OpenedArea {
	windows := BuildWindows(faces, orientationDeg, dims)

	byFace := make(map[config.Face]Window, len(windows))
	var out OpenedArea
	for _, w := range windows {
		byFace[w.Face] = w
		out.TotalLeafCount += w.LeafCount
	}

	var weightedHeight float64
	for _, seg := range segments {
		face, err := config.ParseFace(seg.Face)
		if err != nil {
			continue
		}
		w, ok := byFace[face]
		if !ok || seg.Leaf < 0 || seg.Leaf >= w.LeafCount {
			continue
		}
		state, err := config.ParseSegmentState(seg.State)
		if err != nil || state == config.SegmentClosed {
			continue
		}

		area := OpeningArea(w.LeafAreaM2(), state)
		out.TotalOpenAreaM2 += area
		out.ByFace[face] += area
		out.OpenLeafCount++
		weightedHeight += area * w.HeightM
		if state == config.SegmentTopHung {
			out.TopHungAreaM2 += area
		} else {
			out.TurnAreaM2 += area
		}
	}

	if out.TotalOpenAreaM2 > 0 {
		out.MeanOpeningHeightM = weightedHeight / out.TotalOpenAreaM2
	}
	return out
}

// OpeningArea returns the free ventilation area of a single leaf in the
// given state.
func OpeningArea(leafAreaM2 float64, state config.WindowSegmentState) float64 {
	switch state {
	case config.SegmentTopHung:
		return leafAreaM2 * TopHungVentRatio
	case config.SegmentTurn:
		return leafAreaM2
	default:
		return 0
	}
}

// ResolvedRooflight is the rooflight after clamping against the roof plan.
type ResolvedRooflight struct {
	WidthM        float64
	DepthM        float64
	OpenHeightM   float64
	OpeningAreaM2 float64
	IsOpen        bool
	MaxWidthM     float64
	MaxDepthM     float64
}

// AreaM2 returns the rooflight panel area.
func (r ResolvedRooflight) AreaM2() float64 { return r.WidthM * r.DepthM }

// RoofPlanDimensions returns the maximum rooflight span in each direction:
// the roof dimension minus the edge offset on both sides.
func RoofPlanDimensions(dims config.RoomDims) (maxWidth, maxDepth float64) {
	maxWidth = dims.WidthM - 2*config.RooflightEdgeOffset
	maxDepth = dims.DepthM - 2*config.RooflightEdgeOffset
	return maxWidth, maxDepth
}

// ResolveRooflight clamps the requested rooflight size into
// [MinRooflightSpan, roof-derived maximum] and computes the free opening
// area when open: perimeter times travel height, capped at the panel's own
// area.
func ResolveRooflight(cfg config.RooflightConfig, dims config.RoomDims) ResolvedRooflight {
	maxW, maxD := RoofPlanDimensions(dims)
	maxW = math.Max(maxW, config.MinRooflightSpan)
	maxD = math.Max(maxD, config.MinRooflightSpan)

	out := ResolvedRooflight{
		WidthM:    clampSpan(cfg.WidthM, maxW),
		DepthM:    clampSpan(cfg.DepthM, maxD),
		MaxWidthM: maxW,
		MaxDepthM: maxD,
	}

	if cfg.OpenHeightM > 0 {
		out.OpenHeightM = config.RooflightTravel
		out.IsOpen = true
		perimeter := 2 * (out.WidthM + out.DepthM)
		out.OpeningAreaM2 = math.Min(perimeter*out.OpenHeightM, out.AreaM2())
	}
	return out
}

func clampSpan(v, max float64) float64 {
	if v < config.MinRooflightSpan {
		return config.MinRooflightSpan
	}
	if v > max {
		return max
	}
	return v
}
