package model

// MediaState represents the lifecycle state of the single media element
type MediaState string

const (
	// MediaStateIdle means no source is loading and nothing is buffered
	MediaStateIdle MediaState = "Idle"

	// MediaStateLoading means a source is assigned and its data is being fetched
	MediaStateLoading MediaState = "Loading"

	// MediaStateReady means the element can start playback
	MediaStateReady MediaState = "Ready"

	// MediaStatePlaying means the element reported playback started
	MediaStatePlaying MediaState = "Playing"

	// MediaStatePaused means playback was paused after having been ready
	MediaStatePaused MediaState = "Paused"

	// MediaStateError means a fatal fault happened; only a fresh source recovers
	MediaStateError MediaState = "Error"
)

// String returns the string representation of MediaState
func (ms MediaState) String() string {
	return string(ms)
}

// CanBuffer returns true if a buffering stall is meaningful in this state
func (ms MediaState) CanBuffer() bool {
	return ms == MediaStateReady || ms == MediaStatePlaying
}

// HasSource returns true if the element holds decodable data for the current source
func (ms MediaState) HasSource() bool {
	return ms == MediaStateReady || ms == MediaStatePlaying || ms == MediaStatePaused
}

// IsFatal returns true if the state can only be left by assigning a fresh source
func (ms MediaState) IsFatal() bool {
	return ms == MediaStateError
}

// ReadingMode selects how the document reader presents pages
type ReadingMode string

const (
	ReadingModeSingle     ReadingMode = "single"
	ReadingModeContinuous ReadingMode = "continuous"
)

// String returns the string representation of ReadingMode
func (rm ReadingMode) String() string {
	return string(rm)
}

// Valid reports whether rm is one of the known reading modes
func (rm ReadingMode) Valid() bool {
	return rm == ReadingModeSingle || rm == ReadingModeContinuous
}

// ParseReadingMode returns the reading mode named by s, or false if unknown
func ParseReadingMode(s string) (ReadingMode, bool) {
	mode := ReadingMode(s)
	if !mode.Valid() {
		return "", false
	}
	return mode, true
}
