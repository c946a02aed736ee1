package output

import (
	"io"
	"strings"

	"github.com/yndnr/linearcli/internal/core/domain"
)

// Format represents the output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a format name. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", domain.ErrInvalidArgument.WithDetailsf("unknown output format %q (want json, yaml or table)", s)
	}
}

// NewFormatter creates a formatter for the given format. Unknown formats
// fall back to JSON, the launcher format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &JSONFormatter{Indent: DefaultIndent}
	}
}
