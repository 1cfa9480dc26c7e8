package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data interface{}) error
}

// GetFormatter returns a formatter based on the specified format
func GetFormatter(format string, w io.Writer, useColors bool) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(w, useColors), nil
	case "json":
		return NewJSONFormatter(w, true), nil
	case "json-compact":
		return NewJSONFormatter(w, false), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	case "text":
		return NewTextFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Printer writes command output and status messages
type Printer struct {
	Out    io.Writer
	Format string
	Colors bool
	Debug  bool
}

// NewPrinter creates a Printer
func NewPrinter(out io.Writer, format string, colors, debug bool) *Printer {
	return &Printer{Out: out, Format: format, Colors: colors, Debug: debug}
}

// Print formats and prints data using the configured output format
func (p *Printer) Print(data interface{}) error {
	formatter, err := GetFormatter(p.Format, p.Out, p.Colors)
	if err != nil {
		return err
	}
	return formatter.Format(data)
}

// Success prints a success message
func (p *Printer) Success(message string, args ...interface{}) {
	p.status(color.FgGreen, "", message, args...)
}

// Error prints an error message
func (p *Printer) Error(message string, args ...interface{}) {
	p.status(color.FgRed, "Error: ", message, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(message string, args ...interface{}) {
	p.status(color.FgYellow, "Warning: ", message, args...)
}

// Info prints an info message
func (p *Printer) Info(message string, args ...interface{}) {
	p.status(color.FgBlue, "", message, args...)
}

// Debugf prints a debug message if debug mode is enabled
func (p *Printer) Debugf(message string, args ...interface{}) {
	if p.Debug {
		p.status(color.FgCyan, "[DEBUG] ", message, args...)
	}
}

func (p *Printer) status(attr color.Attribute, plainPrefix, message string, args ...interface{}) {
	if p.Colors {
		color.New(attr).Fprintf(p.Out, message+"\n", args...)
		return
	}
	fmt.Fprintf(p.Out, plainPrefix+message+"\n", args...)
}
