package format

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// column is one exported struct field shown in table and text output
type column struct {
	index int
	key   string
}

// structColumns lists displayable fields, keyed by their json name.
// Fields tagged json:"-" stay hidden.
func structColumns(t reflect.Type) []column {
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			name := strings.Split(tag, ",")[0]
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}
		cols = append(cols, column{index: i, key: key})
	}
	return cols
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unionKeys collects every key that appears in any row, sorted
func unionKeys(rows []map[string]interface{}) []string {
	seen := map[string]interface{}{}
	for _, row := range rows {
		for k := range row {
			seen[k] = nil
		}
	}
	return sortedKeys(seen)
}

// formatHeader turns snake_case and camelCase keys into Title Case
func formatHeader(key string) string {
	var words []string
	var current strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-' || r == ' ':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			continue
		case i > 0 && r >= 'A' && r <= 'Z' && current.Len() > 0:
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	for i, word := range words {
		if strings.EqualFold(word, "id") {
			words[i] = "ID"
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
