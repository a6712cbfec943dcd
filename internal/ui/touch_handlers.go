package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// TouchTarget receives the raw touch stream of a TouchArea
type TouchTarget interface {
	TouchDown(*mobile.TouchEvent)
	TouchUp(*mobile.TouchEvent)
	TouchCancel(*mobile.TouchEvent)
}

// TouchArea wraps content and forwards mobile touch events to a target
type TouchArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	target  TouchTarget
}

var _ mobile.Touchable = (*TouchArea)(nil)

// NewTouchArea creates a touch area around content
func NewTouchArea(content fyne.CanvasObject, target TouchTarget) *TouchArea {
	t := &TouchArea{content: content, target: target}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget
func (t *TouchArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

// TouchDown handles touch down events
func (t *TouchArea) TouchDown(event *mobile.TouchEvent) {
	if t.target != nil {
		t.target.TouchDown(event)
	}
}

// TouchUp handles touch up events
func (t *TouchArea) TouchUp(event *mobile.TouchEvent) {
	if t.target != nil {
		t.target.TouchUp(event)
	}
}

// TouchCancel handles touch cancel events
func (t *TouchArea) TouchCancel(event *mobile.TouchEvent) {
	if t.target != nil {
		t.target.TouchCancel(event)
	}
}
