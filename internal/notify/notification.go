package notify

import "time"

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindLoading Kind = "loading"
)

// Display durations per kind. Loading notifications stay until dismissed.
const (
	SuccessDuration = 2000 * time.Millisecond
	ErrorDuration   = 5000 * time.Millisecond
	WarningDuration = 4000 * time.Millisecond
	InfoDuration    = 3000 * time.Millisecond
)

// String returns the string representation of kind
func (k Kind) String() string {
	return string(k)
}

// Duration returns how long a notification of this kind is shown; 0 means until dismissed
func (k Kind) Duration() time.Duration {
	switch k {
	case KindSuccess:
		return SuccessDuration
	case KindError:
		return ErrorDuration
	case KindWarning:
		return WarningDuration
	case KindInfo:
		return InfoDuration
	default:
		return 0
	}
}

// IsAlarm returns true for kinds rendered with the destructive style
func (k Kind) IsAlarm() bool {
	return k == KindError || k == KindWarning
}

// Notification is one transient message shown to the user
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}
