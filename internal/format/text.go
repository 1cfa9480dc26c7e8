package format

import (
	"fmt"
	"io"
	"reflect"
)

// TextFormatter handles simple text output formatting
type TextFormatter struct {
	w io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{w: w}
}

// Format formats data as simple text
func (f *TextFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Fprintln(f.w, "No data")
		return nil
	}

	switch v := data.(type) {
	case []map[string]interface{}:
		return f.formatMapSlice(v)
	case map[string]interface{}:
		f.formatMap(v, "")
		return nil
	case []interface{}:
		return f.formatInterfaceSlice(v)
	case string:
		fmt.Fprintln(f.w, v)
		return nil
	default:
		return f.formatReflection(data)
	}
}

// formatMapSlice formats a slice of maps as text
func (f *TextFormatter) formatMapSlice(data []map[string]interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(f.w, "No data")
		return nil
	}

	for i, item := range data {
		f.item(i)
		f.formatMap(item, "  ")
	}
	return nil
}

func (f *TextFormatter) formatMap(data map[string]interface{}, indent string) {
	for _, key := range sortedKeys(data) {
		fmt.Fprintf(f.w, "%s%s: %v\n", indent, formatHeader(key), f.formatValue(data[key]))
	}
}

// formatInterfaceSlice formats a slice of interfaces as text
func (f *TextFormatter) formatInterfaceSlice(data []interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(f.w, "No data")
		return nil
	}

	for i, item := range data {
		v := deref(reflect.ValueOf(item))
		switch {
		case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
			if m, ok := item.(map[string]interface{}); ok {
				f.item(i)
				f.formatMap(m, "  ")
				continue
			}
			fmt.Fprintf(f.w, "%v\n", f.formatValue(item))
		case v.Kind() == reflect.Struct:
			f.item(i)
			f.formatStruct(v, "  ")
		default:
			fmt.Fprintf(f.w, "%v\n", f.formatValue(item))
		}
	}
	return nil
}

// formatReflection uses reflection to format unknown types
func (f *TextFormatter) formatReflection(data interface{}) error {
	v := deref(reflect.ValueOf(data))

	switch v.Kind() {
	case reflect.Struct:
		f.formatStruct(v, "")
		return nil
	case reflect.Slice, reflect.Array:
		return f.formatSlice(v)
	default:
		fmt.Fprintf(f.w, "%v\n", data)
		return nil
	}
}

// formatStruct formats a struct as text
func (f *TextFormatter) formatStruct(v reflect.Value, indent string) {
	for _, col := range structColumns(v.Type()) {
		fmt.Fprintf(f.w, "%s%s: %v\n", indent, formatHeader(col.key), f.formatValue(v.Field(col.index).Interface()))
	}
}

// formatSlice formats a slice using reflection
func (f *TextFormatter) formatSlice(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Fprintln(f.w, "No data")
		return nil
	}

	data := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		data[i] = v.Index(i).Interface()
	}
	return f.formatInterfaceSlice(data)
}

func (f *TextFormatter) item(i int) {
	if i > 0 {
		fmt.Fprintln(f.w)
	}
	fmt.Fprintf(f.w, "Item %d:\n", i+1)
}

// formatValue formats a value for display
func (f *TextFormatter) formatValue(value interface{}) interface{} {
	if value == nil {
		return "N/A"
	}
	if s, ok := value.(string); ok && s == "" {
		return "N/A"
	}
	return value
}
