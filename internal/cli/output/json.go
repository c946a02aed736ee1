package output

import (
	"encoding/json"
	"io"
)

// DefaultIndent is the indent of launcher JSON.
const DefaultIndent = "    "

// JSONFormatter formats data as JSON.
type JSONFormatter struct {
	Indent string
}

// Format writes data as indented JSON followed by a newline. HTML
// characters are not escaped.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", f.Indent)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}
