package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
)

// The directory API is not consistent about key casing or the shape of
// department, so payloads are normalized here and nowhere else.

var idKeys = []string{"id", "Id", "ID", "userId", "studentId", "facultyId"}

var knownKeys = map[string]bool{
	"role": true, "name": true, "email": true, "phone": true, "contact": true,
	"department": true, "dept": true, "year": true, "profilePic": true,
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return raw, nil
}

func decodeList(body []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// identityFrom builds a session from a login or register response. The role
// that selected the endpoint fills in when the server omits one.
func identityFrom(raw map[string]any, endpointRole models.Role) (session.Session, error) {
	id := idFrom(raw)
	if id == "" {
		return session.Session{}, fmt.Errorf("response has no identity field")
	}

	role := endpointRole
	if s := stringField(raw, "role"); s != "" {
		parsed, err := models.ParseRole(s)
		if err != nil {
			role = models.Role(s)
		} else {
			role = parsed
		}
	}

	return session.Session{
		ID:         id,
		Role:       role,
		Name:       stringField(raw, "name"),
		Email:      stringField(raw, "email"),
		Phone:      firstString(raw, "phone", "contact"),
		Department: department(raw),
		Year:       stringField(raw, "year"),
		ProfilePic: stringField(raw, "profilePic"),
		Extra:      extra(raw),
	}, nil
}

func recordFrom(raw map[string]any) models.Record {
	return models.Record{
		ID:         idFrom(raw),
		Name:       stringField(raw, "name"),
		Email:      stringField(raw, "email"),
		Phone:      firstString(raw, "phone", "contact"),
		Department: department(raw),
		Year:       stringField(raw, "year"),
		Extra:      extra(raw),
	}
}

func recordsFrom(raw []map[string]any) []models.Record {
	out := make([]models.Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, recordFrom(r))
	}
	return out
}

func idFrom(raw map[string]any) string {
	for _, k := range idKeys {
		if s := stringField(raw, k); s != "" {
			return s
		}
	}
	return ""
}

// department is either a plain string or an object such as {"dept": "Civil"}
func department(raw map[string]any) string {
	for _, k := range []string{"department", "dept"} {
		switch v := raw[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if s := firstString(v, "dept", "name", "deptName"); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(raw, k); s != "" {
			return s
		}
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func extra(raw map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range raw {
		if knownKeys[k] || isIDKey(k) || k == "password" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isIDKey(k string) bool {
	for _, id := range idKeys {
		if k == id {
			return true
		}
	}
	return false
}
