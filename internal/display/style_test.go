package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontCSS(t *testing.T) {
	tests := []struct {
		name     string
		family   string
		expected string
	}{
		{
			name:     "fallback list",
			family:   "Segoe UI Light, Meiryo UI, Noto Sans, sans-serif",
			expected: `.desknotify-notification label { font-family: "Segoe UI Light", "Meiryo UI", "Noto Sans", sans-serif; }` + "\n",
		},
		{
			name:     "single family",
			family:   "Inter",
			expected: ".desknotify-notification label { font-family: Inter; }\n",
		},
		{
			name:     "empty entries dropped",
			family:   "Inter,, sans-serif ,",
			expected: ".desknotify-notification label { font-family: Inter, sans-serif; }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fontCSS(tt.family))
		})
	}
}

func TestDisplayError(t *testing.T) {
	cause := errors.New("wl_display lost")
	err := &DisplayError{Message: "failed to present", Cause: cause}

	assert.Equal(t, "failed to present: wl_display lost", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no display", (&DisplayError{Message: "no display"}).Error())
}
