package navigator

import (
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/store"
)

// Fader wraps a chapter switch in a gain ramp
type Fader interface {
	FadeOut(onComplete func()) bool
}

// Navigator moves through the catalog
type Navigator struct {
	catalog *model.Catalog
	store   *store.Store
	fader   Fader
	logger  *zap.Logger
}

// New creates a navigator over catalog
func New(catalog *model.Catalog, st *store.Store, logger *zap.Logger) *Navigator {
	return &Navigator{
		catalog: catalog,
		store:   st,
		logger:  logging.OrNop(logger),
	}
}

// SetFader attaches a fader used for switches during playback
func (n *Navigator) SetFader(f Fader) {
	n.fader = f
}

// Catalog returns the catalog being navigated
func (n *Navigator) Catalog() *model.Catalog {
	return n.catalog
}

// Next returns the chapter after id. It returns false at the last chapter
// and for unknown ids.
func (n *Navigator) Next(id int) (model.Chapter, bool) {
	idx := n.catalog.IndexOf(id)
	if idx < 0 {
		return model.Chapter{}, false
	}
	return n.catalog.At(idx + 1)
}

// Previous returns the chapter before id. It returns false at the first
// chapter and for unknown ids.
func (n *Navigator) Previous(id int) (model.Chapter, bool) {
	idx := n.catalog.IndexOf(id)
	if idx <= 0 {
		return model.Chapter{}, false
	}
	return n.catalog.At(idx - 1)
}

// Current returns the selected chapter
func (n *Navigator) Current() (model.Chapter, bool) {
	cur := n.store.Snapshot().CurrentChapter
	if !cur.IsSet() {
		return model.Chapter{}, false
	}
	return *cur.Chapter, true
}

// Index returns the 0-based catalog position of the current chapter, or -1
func (n *Navigator) Index() int {
	cur := n.store.Snapshot().CurrentChapter
	if !cur.IsSet() {
		return -1
	}
	return n.catalog.IndexOf(cur.ID())
}

// Total returns the number of chapters
func (n *Navigator) Total() int {
	return n.catalog.Len()
}

// HasNext reports whether a chapter follows the current one
func (n *Navigator) HasNext() bool {
	idx := n.Index()
	return idx >= 0 && idx < n.catalog.Len()-1
}

// HasPrevious reports whether a chapter precedes the current one
func (n *Navigator) HasPrevious() bool {
	return n.Index() > 0
}

// GoToNext switches to the next chapter. It returns false when there is none.
func (n *Navigator) GoToNext() bool {
	cur, ok := n.Current()
	if !ok {
		return false
	}
	target, ok := n.Next(cur.ID)
	if !ok {
		return false
	}
	return n.switchTo(target)
}

// GoToPrevious switches to the previous chapter. It returns false when there is none.
func (n *Navigator) GoToPrevious() bool {
	cur, ok := n.Current()
	if !ok {
		return false
	}
	target, ok := n.Previous(cur.ID)
	if !ok {
		return false
	}
	return n.switchTo(target)
}

// GoToChapter switches to the chapter with the given id. Selecting the
// current chapter again is a no-op.
func (n *Navigator) GoToChapter(id int) bool {
	target, ok := n.catalog.ChapterByID(id)
	if !ok {
		n.logger.Warn("unknown chapter requested", zap.Int(logging.FieldChapterID, id))
		return false
	}
	if cur, ok := n.Current(); ok && cur.ID == id {
		return false
	}
	return n.switchTo(target)
}

// AdvanceOnEnded continues with the next chapter after natural end of
// media. It returns false at the end of the book.
func (n *Navigator) AdvanceOnEnded() bool {
	cur, ok := n.Current()
	if !ok {
		return false
	}
	target, ok := n.Next(cur.ID)
	if !ok {
		n.logger.Info("reached end of book", zap.Int(logging.FieldChapterID, cur.ID))
		return false
	}
	n.logger.Info("advancing to next chapter",
		zap.Int("from", cur.ID),
		zap.Int(logging.FieldChapterID, target.ID),
	)
	n.store.PlayChapter(target)
	return true
}

// SelectInitial selects the first chapter when nothing is selected yet
func (n *Navigator) SelectInitial() bool {
	if n.store.Snapshot().CurrentChapter.IsSet() {
		return false
	}
	first, ok := n.catalog.First()
	if !ok {
		return false
	}
	n.store.SelectChapter(first)
	return true
}

func (n *Navigator) switchTo(target model.Chapter) bool {
	if n.fader != nil && n.store.Snapshot().IsPlaying {
		return n.fader.FadeOut(func() { n.apply(target) })
	}
	n.apply(target)
	return true
}

// apply reads the intent at switch time; a pause during the fade browses
func (n *Navigator) apply(target model.Chapter) {
	n.logger.Debug("switching chapter", zap.Int(logging.FieldChapterID, target.ID))
	if n.store.Snapshot().IsPlaying {
		n.store.PlayChapter(target)
		return
	}
	n.store.SelectChapter(target)
}
