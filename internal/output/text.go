package output

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// TextFormatter renders a value with a text/template.
type TextFormatter struct {
	template *template.Template
}

// NewTextFormatter parses tmpl. An empty template prints the value with %v.
func NewTextFormatter(tmpl string) (*TextFormatter, error) {
	if tmpl == "" {
		return &TextFormatter{}, nil
	}
	t, err := template.New("text").Funcs(templateFuncs()).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &TextFormatter{template: t}, nil
}

// Format writes v using the template.
func (f *TextFormatter) Format(w io.Writer, v any) error {
	if f.template == nil {
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	}
	return f.template.Execute(w, v)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"reltime": relativeTime,
		"yesno": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
	}
}

// relativeTime returns a human-readable relative time for a Unix timestamp.
func relativeTime(timestamp int64) string {
	if timestamp == 0 {
		return "never"
	}
	return humanize.Time(time.Unix(timestamp, 0))
}
