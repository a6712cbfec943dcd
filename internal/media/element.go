package media

import (
	"errors"
	"fmt"
)

// EventType names an element lifecycle event
type EventType string

const (
	EventLoadStart      EventType = "loadstart"
	EventLoadedMetadata EventType = "loadedmetadata"
	EventDurationChange EventType = "durationchange"
	EventCanPlay        EventType = "canplay"
	EventCanPlayThrough EventType = "canplaythrough"
	EventTimeUpdate     EventType = "timeupdate"
	EventWaiting        EventType = "waiting"
	EventStalled        EventType = "stalled"
	EventPlaying        EventType = "playing"
	EventPause          EventType = "pause"
	EventEnded          EventType = "ended"
	EventError          EventType = "error"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is emitted by an element. Source is the source the element had when
// the event was raised.
type Event struct {
	Type   EventType
	Source string
}

// ErrorCode mirrors the platform media error codes
type ErrorCode int

const (
	ErrorCodeNone            ErrorCode = 0
	ErrorCodeAborted         ErrorCode = 1
	ErrorCodeNetwork         ErrorCode = 2
	ErrorCodeDecode          ErrorCode = 3
	ErrorCodeSrcNotSupported ErrorCode = 4
)

// String returns the string representation of the code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeAborted:
		return "aborted"
	case ErrorCodeNetwork:
		return "network"
	case ErrorCodeDecode:
		return "decode"
	case ErrorCodeSrcNotSupported:
		return "src-not-supported"
	default:
		return "none"
	}
}

// Error is the error state an element reports after an error event
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("media error: %s", e.Code)
	}
	return fmt.Sprintf("media error: %s: %s", e.Code, e.Message)
}

// ErrPlayNotAllowed is the play rejection raised when playback was not started by a user gesture
var ErrPlayNotAllowed = errors.New("play not allowed without user interaction")

// Element is one audio resource. Implementations may raise events and play
// completions on any goroutine.
type Element interface {
	Source() string
	// SetSource assigns a new source, resets the position and clears any
	// error. It does not start loading.
	SetSource(url string)
	Load()
	// Play starts or resumes playback, loading the source if needed. done is
	// called exactly once with nil, ErrPlayNotAllowed or a *Error.
	Play(done func(error))
	Pause()
	Paused() bool
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	// Duration returns NaN while unknown
	Duration() float64
	Volume() float64
	SetVolume(v float64)
	SetPlaybackRate(r float64)
	// Error returns the current error state, or nil
	Error() *Error
	Subscribe(fn func(Event)) (unsubscribe func())
}
