package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes one JSON document per Format call
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter creates a JSON formatter. Pretty output is indented by
// two spaces; compact output fits on one line.
func NewJSONFormatter(w io.Writer, pretty bool) *JSONFormatter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &JSONFormatter{enc: enc}
}

// Format encodes data followed by a newline
func (f *JSONFormatter) Format(data interface{}) error {
	if err := f.enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
