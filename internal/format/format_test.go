package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/collegedir/cli/internal/models"
)

type person struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Secret map[string]any `json:"-" yaml:"-"`
}

func TestGetFormatter(t *testing.T) {
	for _, name := range []string{"table", "json", "json-compact", "yaml", "text"} {
		f, err := GetFormatter(name, &bytes.Buffer{}, false)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := GetFormatter("xml", &bytes.Buffer{}, false)
	assert.EqualError(t, err, "unsupported format: xml")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf bytes.Buffer
	rows := []person{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Ravi", Secret: map[string]any{"x": 1}}}

	require.NoError(t, NewTableFormatter(&buf, false).Format(rows))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ravi")
	assert.NotContains(t, out, "Secret")
}

func TestTableFormatterMapIsSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, true).Format(map[string]interface{}{
		"phone": "9876543210",
		"email": "a@b.com",
	}))

	out := buf.String()
	assert.Less(t, strings.Index(out, "Email"), strings.Index(out, "Phone"))
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).Format([]person{}))
	assert.Equal(t, "No data to display\n", buf.String())
}

func TestTableFormatterMapSliceUnionsColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).Format([]map[string]interface{}{
		{"code": "CS101"},
		{"code": "MA201", "credits": json.Number("4")},
	}))

	out := buf.String()
	assert.Contains(t, out, "Credits")
	assert.Contains(t, out, "MA201")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).Format(person{ID: "1", Name: "Ann"}))
	assert.Equal(t, `{"id":"1","name":"Ann"}`+"\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(person{ID: "1", Name: "Ann"}))

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, map[string]string{"id": "1", "name": "Ann"}, back)
}

func TestJSONFormatterKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).Format(map[string]string{"title": "R&D <lab>"}))
	assert.Equal(t, `{"title":"R&D <lab>"}`+"\n", buf.String())
}

func TestYAMLFormatterIncludesRecordExtras(t *testing.T) {
	var buf bytes.Buffer
	records := []models.Record{{ID: "7", Name: "Ann", Extra: map[string]any{"gpa": json.Number("3.9")}}}
	require.NoError(t, NewYAMLFormatter(&buf).Format(records))

	var back []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 1)
	assert.Equal(t, "Ann", back[0]["name"])
	assert.Equal(t, 3.9, back[0]["gpa"])
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format([]person{{ID: "1", Name: ""}}))
	assert.Equal(t, "Item 1:\n  ID: 1\n  Name: N/A\n", buf.String())
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "Profile Pic", formatHeader("profilePic"))
	assert.Equal(t, "Last Login At", formatHeader("last_login_at"))
	assert.Equal(t, "ID", formatHeader("id"))
}

func TestPrinterStatusWithoutColors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "table", false, false)

	p.Success("Logged out successfully")
	p.Error("Invalid %s", "Credentials")
	p.Debugf("hidden")

	assert.Equal(t, "Logged out successfully\nError: Invalid Credentials\n", buf.String())
}
