package daemon

import (
	"fmt"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/desktop"
)

const (
	switchedHeader = "Virtual Desktop Switched"
	switchedPrefix = "Current Desktop: "
	movedPrefix    = "Reordered Current Desktop: "
	pinnedHeader   = "Virtual Desktop"
)

// desktopBody renders the body line for 1-based desktop number n.
func desktopBody(g config.GeneralConfig, prefix string, n int) string {
	if g.SimpleNotification {
		prefix = ""
	}
	if g.UseDesktopName {
		if name, ok := g.DesktopName(n); ok {
			if g.SimpleNotification {
				return fmt.Sprintf("%d. %s", n, name)
			}
			return fmt.Sprintf("%s%d: %s", prefix, n, name)
		}
	}
	return fmt.Sprintf("%sDesktop %d", prefix, n)
}

func switchedText(g config.GeneralConfig, ev desktop.SwitchedEvent) (header, body string) {
	if !g.SimpleNotification {
		header = switchedHeader
	}
	return header, desktopBody(g, switchedPrefix, ev.NewIndex+1)
}

func movedText(g config.GeneralConfig, ev desktop.MovedEvent) (header, body string) {
	from, to := ev.OldIndex+1, ev.NewIndex+1
	if g.SimpleNotification {
		header = fmt.Sprintf("Desktop %d => Desktop %d", from, to)
	} else {
		header = fmt.Sprintf("Desktop %d Moved to Desktop %d", from, to)
	}
	return header, desktopBody(g, movedPrefix, ev.CurrentIndex+1)
}

func pinnedText(g config.GeneralConfig, ev desktop.PinnedEvent) (header, body string) {
	pinned := ev.Operation.Has(desktop.OpPin)
	window := ev.Operation.Has(desktop.OpWindow)

	if g.SimpleNotification {
		subject, verb := "Application", "Unpinned"
		if window {
			subject = "Window"
		}
		if pinned {
			verb = "Pinned"
		}
		return "", subject + " " + verb
	}

	verb, subject := "Unpinned", "application"
	if pinned {
		verb = "Pinned"
	}
	if window {
		subject = "window"
	}
	return pinnedHeader, verb + " this " + subject
}
