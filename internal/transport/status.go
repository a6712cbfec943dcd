package transport

import "github.com/ytget/audiobook-reader/internal/model"

// Status is the per-mount display state. It is not persisted.
type Status struct {
	State            model.MediaState
	Loading          bool
	Buffering        bool
	BufferingVisible bool
	Advisory         *Advisory
	Generation       uint64
	Source           string
}

// HasError returns true when the current source failed
func (s Status) HasError() bool {
	return s.State == model.MediaStateError
}
