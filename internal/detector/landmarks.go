// Package detector provides hand detection interfaces and the landmark
// geometry used to turn a detected hand into a pinch distance.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark as reported by the tracker. X and Y are normalized
// to the frame (0.0-1.0), Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Point is a position in frame pixels.
type Point struct {
	X int
	Y int
}

// Landmark is a single landmark projected into frame pixels.
type Landmark struct {
	ID  int
	Pos Point
}

// Pixel projects landmark id onto a width x height frame.
// Coordinates are truncated toward zero.
func (h *HandLandmarks) Pixel(id, width, height int) Landmark {
	p := h.Points[id]
	return Landmark{
		ID:  id,
		Pos: Point{X: int(p.X * float64(width)), Y: int(p.Y * float64(height))},
	}
}

// Distance returns the Euclidean distance in pixels between two points.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(float64(p2.X-p1.X), float64(p2.Y-p1.Y))
}

// PinchPoints returns the thumb tip and index tip of the first detected hand.
// ok is false when no hand was detected, in which case the frame carries no
// pinch information at all.
func PinchPoints(hands []HandLandmarks, width, height int) (thumb, index Landmark, ok bool) {
	if len(hands) == 0 {
		return Landmark{}, Landmark{}, false
	}

	hand := &hands[0]
	return hand.Pixel(ThumbTip, width, height), hand.Pixel(IndexTip, width, height), true
}
