// Package config defines the scenario configuration consumed by the
// simulation core: location, envelope, ventilation, comfort, PV, and
// weather settings. All values are clamped at the point of mutation so the
// core never receives invalid geometry.
package config

import (
	"fmt"
	"math"
)

// Geometry limits applied by the clamping helpers.
const (
	MaxGlazingRatio       = 0.8
	MinClearOpeningHeight = 0.5 // m, smallest usable window height
	MinRooflightSpan      = 1.0 // m, minimum clear span in either direction
	RooflightEdgeOffset   = 0.6 // m, kept clear between rooflight and roof edge
	RooflightTravel       = 0.3 // m, fixed opening travel when open
)

// Location identifies the simulated site.
type Location struct {
	Latitude   float64 `yaml:"latitude" json:"latitude"`
	Longitude  float64 `yaml:"longitude" json:"longitude"`
	TimezoneH  int     `yaml:"timezone" json:"timezone"`
	ElevationM float64 `yaml:"elevation,omitempty" json:"elevation"`
}

// Normalized returns the location with latitude clamped to [-90, 90],
// longitude wrapped to [-180, 180), timezone clamped to [-12, 14], and
// elevation floored at zero.
func (l Location) Normalized() Location {
	l.Latitude = math.Max(-90, math.Min(90, l.Latitude))
	lon := math.Mod(l.Longitude+180, 360)
	if lon < 0 {
		lon += 360
	}
	l.Longitude = lon - 180
	if l.TimezoneH < -12 {
		l.TimezoneH = -12
	}
	if l.TimezoneH > 14 {
		l.TimezoneH = 14
	}
	l.ElevationM = math.Max(0, l.ElevationM)
	return l
}

// Face identifies one cardinal face of the room.
type Face int

const (
	FaceNorth Face = iota
	FaceEast
	FaceSouth
	FaceWest
)

// Faces lists all four cardinal faces in a stable order.
var Faces = [4]Face{FaceNorth, FaceEast, FaceSouth, FaceWest}

func (f Face) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceEast:
		return "east"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	default:
		return "unknown"
	}
}

// ParseFace is handy for config files and API payloads.
func ParseFace(s string) (Face, error) {
	switch s {
	case "north":
		return FaceNorth, nil
	case "east":
		return FaceEast, nil
	case "south":
		return FaceSouth, nil
	case "west":
		return FaceWest, nil
	default:
		return FaceNorth, fmt.Errorf("invalid face: %q", s)
	}
}

// IntrinsicAzimuthDeg is the face's outward normal direction before any
// building orientation is applied (north face looks due north).
func (f Face) IntrinsicAzimuthDeg() float64 {
	return float64(f) * 90
}

// Opposite returns the face across the room.
func (f Face) Opposite() Face {
	return Face((int(f) + 2) % 4)
}

// FaceConfig holds per-face glazing and shading settings.
type FaceConfig struct {
	GlazingRatio        float64 `yaml:"glazing_ratio" json:"glazingRatio"`
	OverhangDepthM      float64 `yaml:"overhang_depth,omitempty" json:"overhangDepth"`
	VerticalFinDepthM   float64 `yaml:"vertical_fin_depth,omitempty" json:"verticalFinDepth"`
	HorizontalFinDepthM float64 `yaml:"horizontal_fin_depth,omitempty" json:"horizontalFinDepth"`
	CillLiftM           float64 `yaml:"cill_lift,omitempty" json:"cillLift"`
	HeadDropM           float64 `yaml:"head_drop,omitempty" json:"headDrop"`
	CenterOffsetRatio   float64 `yaml:"center_offset,omitempty" json:"centerOffset"`
}

// Clamped returns the face config with every field forced into its valid
// range for a face of the given height. Vertical and horizontal fins are
// mutually exclusive; the vertical fin wins when both are set. When cill
// lift plus head drop would leave less than the minimum clear opening
// height, cill lift takes priority and head drop is reduced.
func (f FaceConfig) Clamped(faceHeightM float64) FaceConfig {
	f.GlazingRatio = clamp01x(f.GlazingRatio, MaxGlazingRatio)
	f.OverhangDepthM = math.Max(0, f.OverhangDepthM)
	f.VerticalFinDepthM = math.Max(0, f.VerticalFinDepthM)
	f.HorizontalFinDepthM = math.Max(0, f.HorizontalFinDepthM)
	if f.VerticalFinDepthM > 0 && f.HorizontalFinDepthM > 0 {
		f.HorizontalFinDepthM = 0
	}

	f.CillLiftM = math.Max(0, f.CillLiftM)
	f.HeadDropM = math.Max(0, f.HeadDropM)
	maxTotal := math.Max(0, faceHeightM-MinClearOpeningHeight)
	if f.CillLiftM > maxTotal {
		f.CillLiftM = maxTotal
	}
	if f.CillLiftM+f.HeadDropM > maxTotal {
		f.HeadDropM = maxTotal - f.CillLiftM
	}

	f.CenterOffsetRatio = math.Max(-0.5, math.Min(0.5, f.CenterOffsetRatio))
	return f
}

func clamp01x(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// WindowSegmentState is the open state of one window leaf.
type WindowSegmentState int

const (
	SegmentClosed WindowSegmentState = iota
	SegmentTopHung
	SegmentTurn
)

func (s WindowSegmentState) String() string {
	switch s {
	case SegmentTopHung:
		return "top-hung"
	case SegmentTurn:
		return "turn"
	default:
		return "closed"
	}
}

// Next cycles CLOSED -> TOP_HUNG -> TURN -> CLOSED.
func (s WindowSegmentState) Next() WindowSegmentState {
	switch s {
	case SegmentClosed:
		return SegmentTopHung
	case SegmentTopHung:
		return SegmentTurn
	default:
		return SegmentClosed
	}
}

// ParseSegmentState is used by config files and API payloads.
func ParseSegmentState(s string) (WindowSegmentState, error) {
	switch s {
	case "closed", "":
		return SegmentClosed, nil
	case "top-hung":
		return SegmentTopHung, nil
	case "turn":
		return SegmentTurn, nil
	default:
		return SegmentClosed, fmt.Errorf("invalid segment state: %q", s)
	}
}

// OpenSegment records the manual open state of one window leaf.
type OpenSegment struct {
	Face  string `yaml:"face" json:"face"`
	Leaf  int    `yaml:"leaf" json:"leaf"`
	State string `yaml:"state" json:"state"`
}

// RooflightConfig sizes the flat-roof rooflight. OpenHeightM is zero when
// closed or the fixed travel distance when open.
type RooflightConfig struct {
	WidthM      float64 `yaml:"width" json:"width"`
	DepthM      float64 `yaml:"depth" json:"depth"`
	OpenHeightM float64 `yaml:"open_height,omitempty" json:"openHeight"`
}

// RoomDims is the internal room geometry.
type RoomDims struct {
	WidthM  float64 `yaml:"width" json:"width"`
	DepthM  float64 `yaml:"depth" json:"depth"`
	HeightM float64 `yaml:"height" json:"height"`
}

// VolumeM3 returns the internal air volume.
func (r RoomDims) VolumeM3() float64 { return r.WidthM * r.DepthM * r.HeightM }

// FloorAreaM2 returns the floor plate area.
func (r RoomDims) FloorAreaM2() float64 { return r.WidthM * r.DepthM }

// FaceSpanM returns the horizontal span of the given face: north/south
// faces run along the room width, east/west along the depth.
func (r RoomDims) FaceSpanM(f Face) float64 {
	if f == FaceNorth || f == FaceSouth {
		return r.WidthM
	}
	return r.DepthM
}
