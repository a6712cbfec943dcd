package model

import "math"

// Reader bounds and defaults
const (
	MinScale     = 0.5
	MaxScale     = 2.5
	ScaleStep    = 0.1
	DefaultScale = 1.0
)

// ReaderState is the observable document reader state
type ReaderState struct {
	PageNumber   int // 1-based
	NumPages     int // 0 until the document reports its page count
	Scale        float64
	ReadingMode  ReadingMode
	IsFullscreen bool
}

// NewReaderState returns the state of a freshly opened reader
func NewReaderState() ReaderState {
	return ReaderState{
		PageNumber:  1,
		Scale:       DefaultScale,
		ReadingMode: ReadingModeSingle,
	}
}

// LastPage returns the highest valid page number
func (rs ReaderState) LastPage() int {
	if rs.NumPages < 1 {
		return 1
	}
	return rs.NumPages
}

// ClampPage limits page to [1, max(NumPages, 1)]
func (rs ReaderState) ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if last := rs.LastPage(); page > last {
		return last
	}
	return page
}

// ClampScale limits s to the legal zoom range, rounded to one decimal
func ClampScale(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return DefaultScale
	}
	return ClampFloat(math.Round(s*10)/10, MinScale, MaxScale)
}
