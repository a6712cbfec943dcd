package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audiobook-reader/internal/notify"
)

// ToastPanel renders the active notifications of a notify.Center
type ToastPanel struct {
	center *notify.Center
	box    *fyne.Container
}

// NewToastPanel creates the panel and subscribes it to center
func NewToastPanel(center *notify.Center) *ToastPanel {
	p := &ToastPanel{
		center: center,
		box:    container.NewVBox(),
	}
	p.box.Hide()
	center.SetUpdateCallback(p.onUpdate)
	return p
}

// Container returns the panel's canvas object
func (p *ToastPanel) Container() fyne.CanvasObject {
	return container.NewHBox(layout.NewSpacer(), p.box)
}

// onUpdate rebuilds the toast stack; the center calls it on the UI goroutine
func (p *ToastPanel) onUpdate(active []notify.Notification) {
	p.box.RemoveAll()
	for _, n := range active {
		p.box.Add(p.toast(n))
	}
	if len(active) == 0 {
		p.box.Hide()
	} else {
		p.box.Show()
	}
	p.box.Refresh()
}

func (p *ToastPanel) toast(n notify.Notification) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(n.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	switch {
	case n.Kind.IsAlarm():
		title.Importance = widget.DangerImportance
	case n.Kind == notify.KindSuccess:
		title.Importance = widget.SuccessImportance
	}

	id := n.ID
	closeBtn := widget.NewButton(IconClose, func() { p.center.Dismiss(id) })
	closeBtn.Importance = widget.LowImportance

	body := container.NewVBox(container.NewBorder(nil, nil, nil, closeBtn, title))
	if n.Message != "" {
		message := widget.NewLabel(n.Message)
		message.Wrapping = fyne.TextWrapWord
		body.Add(message)
	}
	if n.Kind == notify.KindLoading {
		body.Add(widget.NewProgressBarInfinite())
	}

	return container.NewGridWrap(fyne.NewSize(ToastWidth, body.MinSize().Height+ToastMargin), widget.NewCard("", "", body))
}
