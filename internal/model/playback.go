package model

import (
	"fmt"
	"math"
)

// Volume and rate defaults
const (
	DefaultVolume       = 0.8
	DefaultPlaybackRate = 1.0
	MinVolume           = 0.0
	MaxVolume           = 1.0
)

// PlaybackRates lists the legal playback rates in ascending order
var PlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// CurrentChapter identifies the selected chapter and its audio source.
// The zero value means nothing has been selected yet.
type CurrentChapter struct {
	Chapter  *Chapter
	AudioURL string
}

// IsSet returns true once a chapter has been selected
func (cc CurrentChapter) IsSet() bool {
	return cc.Chapter != nil
}

// ID returns the selected chapter id, or 0 when nothing is selected
func (cc CurrentChapter) ID() int {
	if cc.Chapter == nil {
		return 0
	}
	return cc.Chapter.ID
}

// PlaybackState is the observable audio player state
type PlaybackState struct {
	IsPlaying      bool    // intended transport state
	CurrentTime    float64 // seconds
	Duration       float64 // seconds, 0 if unknown
	Volume         float64 // 0.0 to 1.0
	PlaybackRate   float64 // one of PlaybackRates
	CurrentChapter CurrentChapter
}

// NewPlaybackState returns the state of a fresh session
func NewPlaybackState() PlaybackState {
	return PlaybackState{
		Volume:       DefaultVolume,
		PlaybackRate: DefaultPlaybackRate,
	}
}

// Progress returns the playback position as a fraction of the duration
func (ps PlaybackState) Progress() float64 {
	if ps.Duration <= 0 {
		return 0
	}
	return ClampFloat(ps.CurrentTime/ps.Duration, 0, 1)
}

// ClampFloat limits v to [lo, hi]; NaN maps to lo
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVolume limits v to the legal volume range
func ClampVolume(v float64) float64 {
	return ClampFloat(v, MinVolume, MaxVolume)
}

// ClampPlaybackRate snaps r to the nearest legal playback rate
func ClampPlaybackRate(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return DefaultPlaybackRate
	}
	best := PlaybackRates[0]
	for _, rate := range PlaybackRates[1:] {
		if math.Abs(rate-r) < math.Abs(best-r) {
			best = rate
		}
	}
	return best
}

// IsKnownDuration reports whether d is a usable media duration
func IsKnownDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// ClampPosition limits t to [0, duration], or to t >= 0 when duration is unknown
func ClampPosition(t, duration float64) float64 {
	if !IsKnownDuration(duration) {
		return ClampFloat(t, 0, math.MaxFloat64)
	}
	return ClampFloat(t, 0, duration)
}

// FormatTime returns seconds formatted as h:mm:ss or m:ss, "0:00" if unusable
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatRate returns the display label for a playback rate, e.g. "1.25x"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%gx", rate)
}
