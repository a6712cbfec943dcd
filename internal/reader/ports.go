package reader

import (
	"context"
	"image"
)

// Surface is the scroll container hosting the pages
type Surface interface {
	// LockScroll suppresses page-level scrolling outside the reader
	LockScroll()
	// UnlockScroll restores what LockScroll suppressed
	UnlockScroll()
	// ScrollTo moves the reader container to the given vertical offset
	ScrollTo(top float64)
}

// Fullscreen is the platform fullscreen API. Requests may complete later;
// the actual state is reported through OnChange.
type Fullscreen interface {
	Request() error
	Exit() error
	OnChange(fn func(fullscreen bool)) (unsubscribe func())
}

type nopSurface struct{}

func (nopSurface) LockScroll() {}
func (nopSurface) UnlockScroll() {}
func (nopSurface) ScrollTo(float64) {}

// PageRenderer supplies the document pages. The reader never parses the
// document itself.
type PageRenderer interface {
	NumPages(ctx context.Context) (int, error)
	RenderPage(ctx context.Context, page int, size Size) (image.Image, error)
}
