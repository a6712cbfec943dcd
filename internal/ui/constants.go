package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconLanguage = "🌐"
	IconBook     = "📖"
	IconHeadset  = "🎧"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	TimeSeparator      = " / "
	ZoomLabelFormat    = "%d%%"
)

// Layout sizing
const (
	CoverSize       float32 = 96
	ChapterListMinW float32 = 260
	PageSpacing     float32 = 12
	PageEntryWidth  float32 = 64
)

// PageRenderWorkers bounds concurrent page rasterization
const PageRenderWorkers = 3

// Toast notification sizing
const (
	ToastWidth  float32 = 300
	ToastMargin float32 = 20
)

// Slider granularity
const (
	SeekSliderStep   = 0.5
	VolumeSliderStep = 0.01
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Window defaults
const (
	WindowWidth  float32 = 960
	WindowHeight float32 = 680
)
