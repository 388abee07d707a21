package display

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

//go:embed style.css
var baseCSS string

// Style owns the CSS providers applied to the default display.
type Style struct {
	mu     sync.Mutex
	logger *slog.Logger
	base   *gtk.CSSProvider
	font   *gtk.CSSProvider
	user   *gtk.CSSProvider
	family string
}

// UserStylePath returns the path of the optional user stylesheet.
func UserStylePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "desknotify", "style.css"), nil
}

// NewStyle creates the providers. Call Apply once GTK is initialized.
func NewStyle(logger *slog.Logger) *Style {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Style{
		logger: logger,
		base:   gtk.NewCSSProvider(),
		font:   gtk.NewCSSProvider(),
		user:   gtk.NewCSSProvider(),
	}
	s.base.LoadFromString(baseCSS)
	return s
}

// Apply attaches the providers to display, or the default display when nil.
func (s *Style) Apply(display *gdk.Display) error {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		return &DisplayError{Message: "no display available, cannot apply style"}
	}

	gtk.StyleContextAddProviderForDisplay(display, s.base, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	gtk.StyleContextAddProviderForDisplay(display, s.font, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+1)
	gtk.StyleContextAddProviderForDisplay(display, s.user, gtk.STYLE_PROVIDER_PRIORITY_USER)
	s.logger.Debug("applied notification style")
	return nil
}

// SetFont updates the notification font family. Reloads only on change.
func (s *Style) SetFont(family string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if family == s.family {
		return
	}
	s.family = family
	s.font.LoadFromString(fontCSS(family))
	s.logger.Debug("notification font changed", "family", family)
}

// LoadUserCSS replaces the user stylesheet with the contents of path.
// A missing file clears it. Must be called on the GTK main thread.
func (s *Style) LoadUserCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.user.LoadFromString("")
			return nil
		}
		return &DisplayError{Message: "failed to read user stylesheet", Cause: err}
	}

	s.user.LoadFromString(string(data))
	s.logger.Info("loaded user stylesheet", "path", path)
	return nil
}

// fontCSS renders a font-family rule. Families with spaces are quoted.
func fontCSS(family string) string {
	var names []string
	for _, name := range strings.Split(family, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, " ") {
			name = `"` + strings.ReplaceAll(name, `"`, "") + `"`
		}
		names = append(names, name)
	}
	return fmt.Sprintf(".desknotify-notification label { font-family: %s; }\n", strings.Join(names, ", "))
}

// colorSchemeClass returns "dark" or "light" from the libadwaita style manager.
func colorSchemeClass() string {
	if adw.StyleManagerGetDefault().Dark() {
		return "dark"
	}
	return "light"
}
