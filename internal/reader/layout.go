package reader

import (
	"math"

	"github.com/ytget/audiobook-reader/internal/model"
)

// Page layout constants, in pixels unless noted
const (
	PageAspectRatio = 8.5 / 11

	MobileBreakpoint      = 640
	HeaderHeight          = 80
	MobileHeaderHeight    = 100
	BottomMarginRatio     = 0.2
	FullscreenMarginRatio = 0.05
	VerticalPadding       = 40
	FullscreenPadding     = 20
	ZoomSafeAreaTop       = 80
	ZoomSafeAreaBottom    = 32
	MinPageHeight         = 400
	MobileMinPageHeight   = 300
	HorizontalGutter      = 40
)

// Viewport describes the window and the reader container
type Viewport struct {
	Width          float64
	Height         float64
	ContainerWidth float64
}

// Size is a page size in pixels
type Size struct {
	Width  float64
	Height float64
}

// ScrollMetrics is a snapshot of the continuous-mode scroll container
type ScrollMetrics struct {
	ScrollTop    float64
	ClientHeight float64
	ScrollHeight float64
}

// PageSlot is one page to render. Hidden pages are kept mounted so that
// flipping to them does not wait for rendering.
type PageSlot struct {
	Number int
	Hidden bool
}

// PageSize computes the rendered page size for the viewport at scale
func PageSize(v Viewport, scale float64, fullscreen bool) Size {
	mobile := v.Width < MobileBreakpoint

	header := float64(HeaderHeight)
	minHeight := float64(MinPageHeight)
	if mobile {
		header = MobileHeaderHeight
		minHeight = MobileMinPageHeight
	}

	marginRatio, padding := BottomMarginRatio, float64(VerticalPadding)
	if fullscreen {
		marginRatio, padding = FullscreenMarginRatio, FullscreenPadding
	}

	var safeTop, safeBottom float64
	if scale > 1 {
		safeTop, safeBottom = ZoomSafeAreaTop, ZoomSafeAreaBottom
	}

	available := v.Height - header - v.Height*marginRatio - padding - safeTop - safeBottom
	baseHeight := math.Max(available, minHeight)
	baseWidth := baseHeight * PageAspectRatio

	size := Size{Width: baseWidth * scale, Height: baseHeight * scale}

	// Above 100% the page may overflow and scroll.
	if scale <= 1 {
		maxWidth := math.Min(v.ContainerWidth-HorizontalGutter, v.Width-HorizontalGutter)
		if maxWidth < size.Width {
			size.Width = maxWidth
			size.Height = maxWidth / PageAspectRatio
		}
	}
	return size
}

// PageAt returns the page whose vertical band contains the centre of the
// visible area, or 0 when it cannot be determined.
func PageAt(m ScrollMetrics, numPages int) int {
	if numPages < 1 || m.ScrollHeight <= 0 {
		return 0
	}
	pageHeight := m.ScrollHeight / float64(numPages)
	center := m.ScrollTop + m.ClientHeight/2
	page := int(math.Floor(center/pageHeight)) + 1
	if page < 1 || page > numPages {
		return 0
	}
	return page
}

// PageOffset returns the scroll offset of the top of page
func PageOffset(m ScrollMetrics, numPages, page int) float64 {
	if numPages < 1 || m.ScrollHeight <= 0 {
		return 0
	}
	return float64(page-1) * m.ScrollHeight / float64(numPages)
}

// Window returns the pages to render for state
func Window(st model.ReaderState) []PageSlot {
	if st.NumPages < 1 {
		return nil
	}
	if st.ReadingMode == model.ReadingModeContinuous {
		slots := make([]PageSlot, st.NumPages)
		for i := range slots {
			slots[i] = PageSlot{Number: i + 1}
		}
		return slots
	}

	slots := make([]PageSlot, 0, 3)
	for p := st.PageNumber - 1; p <= st.PageNumber+1; p++ {
		if p >= 1 && p <= st.NumPages {
			slots = append(slots, PageSlot{Number: p, Hidden: p != st.PageNumber})
		}
	}
	return slots
}
