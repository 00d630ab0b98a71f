// Package track defines the hand-tracking provider contract and the
// network ingest path that feeds frames to the engine.
package track

import "fmt"

// Landmark indices follow the 21-point hand model emitted by the browser
// tracking client.
const (
	Wrist         = 0
	ThumbTip      = 4
	IndexTip      = 8
	MiddleKnuckle = 9
	MiddleTip     = 12
	RingTip       = 16
	PinkyTip      = 20

	LandmarkCount = 21
)

// FingertipIndices are the points whose mean distance from their centroid
// forms the ambient spread metric.
var FingertipIndices = [...]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Landmark is a normalized coordinate in [0,1] image space.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hand is one detected source within a frame.
type Hand struct {
	Index     int        `json:"index"`
	Score     float64    `json:"score"`
	Landmarks []Landmark `json:"landmarks"`
}

// SourceID gives a hand its stable per-frame identifier.
func (h Hand) SourceID() string {
	return fmt.Sprintf("hand-%d", h.Index)
}

// Valid reports whether the hand carries a full landmark set.
func (h Hand) Valid() bool {
	return len(h.Landmarks) >= LandmarkCount
}

// Frame is one tracking update: every hand detected in a single camera
// frame.
type Frame struct {
	Hands []Hand `json:"hands"`
}

// PointerSource is the fixed id of the synthetic pointer-fallback source.
const PointerSource = "pointer"
