package format

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes one YAML document per Format call
type YAMLFormatter struct {
	w io.Writer
}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{w: w}
}

// Format encodes data with two-space indentation. Records carry their extra
// server fields through MarshalYAML.
func (f *YAMLFormatter) Format(data interface{}) error {
	enc := yaml.NewEncoder(f.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
