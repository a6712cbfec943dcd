package reader

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

// GestureType represents the swipe directions the reader reacts to
type GestureType int

const (
	GestureNone GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
)

// String returns a readable gesture name
func (g GestureType) String() string {
	switch g {
	case GestureSwipeLeft:
		return "swipe-left"
	case GestureSwipeRight:
		return "swipe-right"
	default:
		return "none"
	}
}

// DefaultSwipeThreshold is the minimum horizontal travel of a swipe
const DefaultSwipeThreshold float32 = 50.0

// SwipeDetector turns touch down/up pairs into horizontal swipes
type SwipeDetector struct {
	onGesture func(GestureType)

	tracking      bool
	touchStartPos fyne.Position

	swipeThreshold float32
}

// NewSwipeDetector creates a detector reporting swipes to onGesture
func NewSwipeDetector(onGesture func(GestureType)) *SwipeDetector {
	return &SwipeDetector{
		onGesture:      onGesture,
		swipeThreshold: DefaultSwipeThreshold,
	}
}

// TouchDown starts tracking a touch
func (sd *SwipeDetector) TouchDown(event *mobile.TouchEvent) {
	sd.tracking = true
	sd.touchStartPos = event.Position
}

// TouchUp completes a touch and reports a swipe when the horizontal travel
// exceeds both the threshold and the vertical travel
func (sd *SwipeDetector) TouchUp(event *mobile.TouchEvent) {
	if !sd.tracking {
		return
	}
	sd.tracking = false

	gesture := Detect(sd.touchStartPos, event.Position, sd.swipeThreshold)
	if gesture != GestureNone && sd.onGesture != nil {
		sd.onGesture(gesture)
	}
}

// TouchCancel drops the touch being tracked
func (sd *SwipeDetector) TouchCancel(*mobile.TouchEvent) {
	sd.tracking = false
}

// Detect classifies the travel from start to end
func Detect(start, end fyne.Position, threshold float32) GestureType {
	dx := end.X - start.X
	dy := end.Y - start.Y

	absDx := dx
	if absDx < 0 {
		absDx = -absDx
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx <= threshold || absDx <= absDy {
		return GestureNone
	}
	if dx > 0 {
		return GestureSwipeRight
	}
	return GestureSwipeLeft
}
