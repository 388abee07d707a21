// Package output renders CLI results as text, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Formatter writes a value to w.
type Formatter interface {
	Format(w io.Writer, v any) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// NewFormatter creates a formatter. textTemplate is only used by FormatText.
func NewFormatter(format FormatType, textTemplate string) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	default:
		return NewTextFormatter(textTemplate)
	}
}
