package models

import "encoding/json"

// Record is a normalized student or faculty entry returned by the directory API
type Record struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Email      string         `json:"email" yaml:"email"`
	Phone      string         `json:"phone" yaml:"phone"`
	Department string         `json:"department" yaml:"department"`
	Year       string         `json:"year" yaml:"year"`
	Extra      map[string]any `json:"-" yaml:"-"`
}

// Fields merges unknown server fields with the normalized ones
func (r Record) Fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+6)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["id"] = r.ID
	out["name"] = r.Name
	out["email"] = r.Email
	out["phone"] = r.Phone
	out["department"] = r.Department
	out["year"] = r.Year
	return out
}

// MarshalJSON keeps unknown server fields next to the normalized ones
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// MarshalYAML mirrors MarshalJSON
func (r Record) MarshalYAML() (any, error) {
	return r.Fields(), nil
}

// Stats summarizes the directory for the administrator dashboard
type Stats struct {
	Students int `json:"students" yaml:"students"`
	Faculty  int `json:"faculty" yaml:"faculty"`
}
