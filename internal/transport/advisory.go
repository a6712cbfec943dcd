package transport

import (
	"errors"

	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/media"
	"github.com/ytget/audiobook-reader/internal/notify"
)

// Category is the user-facing class of a media failure
type Category string

const (
	CategoryTransientNetwork  Category = "transient-network"
	CategoryLoadAborted       Category = "load-aborted"
	CategoryDecodeCorrupt     Category = "decode-corrupt"
	CategorySourceUnsupported Category = "source-unsupported"
	CategoryAutoplayRejected  Category = "autoplay-rejected"
	CategoryPlaybackFailed    Category = "playback-failed"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsSticky returns true when the failed source must not be retried in place
func (c Category) IsSticky() bool {
	return c == CategoryDecodeCorrupt || c == CategorySourceUnsupported
}

// Advisory describes a failure or stall for the views and the notifier
type Advisory struct {
	Category   Category
	Kind       notify.Kind
	TitleKey   string
	MessageKey string
	Visible    bool
	Detail     string
}

var bufferingAdvisory = Advisory{
	Category:   CategoryTransientNetwork,
	Kind:       notify.KindWarning,
	TitleKey:   i18n.KeyBufferingTitle,
	MessageKey: i18n.KeyBufferingMessage,
	Visible:    true,
}

// Classify maps a play rejection or element error to an advisory. manual
// reports whether the failing attempt was started by the user.
func Classify(err error, manual bool) Advisory {
	if errors.Is(err, media.ErrPlayNotAllowed) {
		return Advisory{
			Category: CategoryAutoplayRejected,
			Kind:     notify.KindInfo,
			Detail:   err.Error(),
		}
	}

	var me *media.Error
	if !errors.As(err, &me) {
		adv := Advisory{
			Category:   CategoryPlaybackFailed,
			Kind:       notify.KindError,
			TitleKey:   i18n.KeyPlaybackError,
			MessageKey: i18n.KeyErrorGeneric,
			Visible:    true,
		}
		if err != nil {
			adv.Detail = err.Error()
		}
		return adv
	}

	adv := Advisory{Detail: me.Error(), TitleKey: i18n.KeyPlaybackError}
	switch me.Code {
	case media.ErrorCodeAborted:
		adv.Category = CategoryLoadAborted
		adv.Kind = notify.KindInfo
		adv.MessageKey = i18n.KeyErrorAborted
	case media.ErrorCodeNetwork:
		adv.Category = CategoryTransientNetwork
		adv.Kind = notify.KindWarning
		adv.MessageKey = i18n.KeyErrorNetwork
		adv.Visible = true
	case media.ErrorCodeDecode:
		adv.Category = CategoryDecodeCorrupt
		adv.Kind = notify.KindError
		adv.MessageKey = i18n.KeyErrorDecode
		adv.Visible = true
	default:
		// Source rejected or no code at all: almost always a hosting or
		// cross-origin configuration problem.
		adv.Category = CategorySourceUnsupported
		adv.Kind = notify.KindError
		adv.MessageKey = i18n.KeyErrorGeneric
		adv.Visible = manual
	}
	return adv
}
