// Package viewmodel derives the presentation state of a notification window.
package viewmodel

import (
	"github.com/jmylchreest/desknotify/internal/config"
)

// Alignment is a horizontal text alignment.
type Alignment string

const (
	AlignLeft   Alignment = "Left"
	AlignCenter Alignment = "Center"
)

// XAlign returns the alignment as a 0..1 fraction for toolkit labels.
func (a Alignment) XAlign() float32 {
	if a == AlignCenter {
		return 0.5
	}
	return 0
}

// Window size constraints in pixels.
const (
	SimpleMinWidth   = 210
	DetailedMinWidth = 500
	MinHeight        = 100
)

// Notification is the view-model bound to one or more notification windows.
// Title, Header and Body are fixed; every other property is read from the
// current settings on each call so a hot reload is reflected immediately.
type Notification struct {
	title    string
	header   string
	body     string
	settings config.Provider
}

// New creates a view-model.
func New(settings config.Provider, title, header, body string) *Notification {
	return &Notification{
		title:    title,
		header:   header,
		body:     body,
		settings: settings,
	}
}

func (n *Notification) general() config.GeneralConfig {
	if n.settings == nil {
		return config.DefaultDaemonConfig().General
	}
	return n.settings.Current().General
}

// Title returns the window title.
func (n *Notification) Title() string { return n.title }

// Header returns the header text.
func (n *Notification) Header() string { return n.header }

// Body returns the body text.
func (n *Notification) Body() string { return n.body }

// HeaderVisible is false when there is no header text.
func (n *Notification) HeaderVisible() bool { return n.header != "" }

// BodyVisible is always true.
func (n *Notification) BodyVisible() bool { return true }

// FontFamily returns the configured font followed by the fallback list.
func (n *Notification) FontFamily() string {
	if font := n.general().NotificationFont; font != "" {
		return font + ", " + config.DefaultFontFamily
	}
	return config.DefaultFontFamily
}

// HeaderAlignment is always left.
func (n *Notification) HeaderAlignment() Alignment { return AlignLeft }

// BodyAlignment is centered in simple mode.
func (n *Notification) BodyAlignment() Alignment {
	if n.general().SimpleNotification {
		return AlignCenter
	}
	return AlignLeft
}

// MinWidth returns the minimum window width.
func (n *Notification) MinWidth() int {
	if n.general().SimpleNotification {
		return SimpleMinWidth
	}
	return DetailedMinWidth
}

// MinHeight returns the minimum window height.
func (n *Notification) MinHeight() int { return MinHeight }
