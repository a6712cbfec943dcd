package ui

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/ytget/audiobook-reader/internal/reader"
)

// WindowFullscreen adapts a fyne window to reader.Fullscreen. Fyne applies
// the change synchronously, so listeners are told right after the call.
type WindowFullscreen struct {
	window fyne.Window

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(bool)
}

var _ reader.Fullscreen = (*WindowFullscreen)(nil)

// NewWindowFullscreen creates the adapter for window
func NewWindowFullscreen(window fyne.Window) *WindowFullscreen {
	return &WindowFullscreen{
		window:    window,
		listeners: make(map[int]func(bool)),
	}
}

// Request enters fullscreen
func (f *WindowFullscreen) Request() error {
	f.set(true)
	return nil
}

// Exit leaves fullscreen
func (f *WindowFullscreen) Exit() error {
	f.set(false)
	return nil
}

// OnChange registers fn for fullscreen changes
func (f *WindowFullscreen) OnChange(fn func(bool)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *WindowFullscreen) set(on bool) {
	if f.window.FullScreen() != on {
		f.window.SetFullScreen(on)
	}
	state := f.window.FullScreen()

	f.mu.Lock()
	listeners := make([]func(bool), 0, len(f.listeners))
	for _, fn := range f.listeners {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
