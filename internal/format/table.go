package format

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter handles table output formatting
type TableFormatter struct {
	w         io.Writer
	useColors bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer, useColors bool) *TableFormatter {
	return &TableFormatter{w: w, useColors: useColors}
}

// Format formats data as a table
func (f *TableFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Fprintln(f.w, "No data to display")
		return nil
	}

	switch v := data.(type) {
	case []map[string]interface{}:
		return f.formatMapSlice(v)
	case map[string]interface{}:
		return f.formatSingleMap(v)
	case map[string]string:
		m := make(map[string]interface{}, len(v))
		for k, s := range v {
			m[k] = s
		}
		return f.formatSingleMap(m)
	case []interface{}:
		return f.formatInterfaceSlice(v)
	default:
		return f.formatReflection(data)
	}
}

// formatMapSlice formats a slice of maps as a table
func (f *TableFormatter) formatMapSlice(data []map[string]interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(f.w, "No data to display")
		return nil
	}

	keys := unionKeys(data)
	headers := make([]string, len(keys))
	for i, key := range keys {
		headers[i] = formatHeader(key)
	}

	table := f.newTable(headers)
	for _, row := range data {
		values := make([]string, len(keys))
		for i, key := range keys {
			values[i] = f.formatValue(row[key])
		}
		table.Append(values)
	}

	table.Render()
	return nil
}

// formatSingleMap formats a single map as a vertical table
func (f *TableFormatter) formatSingleMap(data map[string]interface{}) error {
	table := f.newTable([]string{"Property", "Value"})
	for _, key := range sortedKeys(data) {
		table.Append([]string{formatHeader(key), f.formatValue(data[key])})
	}
	table.Render()
	return nil
}

// formatInterfaceSlice formats a slice of interfaces
func (f *TableFormatter) formatInterfaceSlice(data []interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(f.w, "No data to display")
		return nil
	}

	mapData := make([]map[string]interface{}, 0, len(data))
	for _, item := range data {
		m, ok := item.(map[string]interface{})
		if !ok {
			return f.formatSimpleList(data)
		}
		mapData = append(mapData, m)
	}

	return f.formatMapSlice(mapData)
}

// formatSimpleList formats a simple list of values
func (f *TableFormatter) formatSimpleList(data []interface{}) error {
	table := f.newTable([]string{"Value"})
	for _, item := range data {
		table.Append([]string{f.formatValue(item)})
	}
	table.Render()
	return nil
}

// formatReflection uses reflection to format unknown types
func (f *TableFormatter) formatReflection(data interface{}) error {
	v := deref(reflect.ValueOf(data))

	switch v.Kind() {
	case reflect.Struct:
		return f.formatStruct(v)
	case reflect.Slice, reflect.Array:
		return f.formatSlice(v)
	default:
		fmt.Fprintf(f.w, "%v\n", data)
		return nil
	}
}

// formatStruct formats a struct as a vertical table
func (f *TableFormatter) formatStruct(v reflect.Value) error {
	table := f.newTable([]string{"Field", "Value"})
	for _, col := range structColumns(v.Type()) {
		table.Append([]string{
			formatHeader(col.key),
			f.formatValue(v.Field(col.index).Interface()),
		})
	}
	table.Render()
	return nil
}

// formatSlice formats a slice using reflection; slices of structs get one
// column per field
func (f *TableFormatter) formatSlice(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Fprintln(f.w, "No data to display")
		return nil
	}

	elemType := v.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() == reflect.Struct {
		return f.formatStructSlice(v, elemType)
	}

	data := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		data[i] = v.Index(i).Interface()
	}
	return f.formatInterfaceSlice(data)
}

func (f *TableFormatter) formatStructSlice(v reflect.Value, t reflect.Type) error {
	cols := structColumns(t)
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = formatHeader(col.key)
	}

	table := f.newTable(headers)
	for i := 0; i < v.Len(); i++ {
		elem := deref(v.Index(i))
		values := make([]string, len(cols))
		if elem.Kind() == reflect.Struct {
			for j, col := range cols {
				values[j] = f.formatValue(elem.Field(col.index).Interface())
			}
		}
		table.Append(values)
	}
	table.Render()
	return nil
}

func (f *TableFormatter) newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(f.w)
	table.SetHeader(headers)
	f.configureTable(table, len(headers))
	return table
}

// configureTable sets up table appearance
func (f *TableFormatter) configureTable(table *tablewriter.Table, columns int) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if f.useColors {
		colors := make([]tablewriter.Colors, columns)
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor}
		}
		table.SetHeaderColor(colors...)
	}
}

// formatValue formats a value for display
func (f *TableFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if f.useColors {
			if v {
				return color.GreenString("true")
			}
			return color.RedString("false")
		}
		return strconv.FormatBool(v)
	default:
		return stringify(v)
	}
}
