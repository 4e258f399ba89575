package phonebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Person is a name/number record.
type Person struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required,max=128"`
	Number string `json:"number" validate:"max=64"`
}

var validate = validator.New()

// CanonicalName is the form of a name that duplicate checks compare.
func CanonicalName(name string) string { return strings.TrimSpace(name) }

// normalize trims the name and validates the record.
func normalize(p Person) (Person, error) {
	p.Name = CanonicalName(p.Name)
	p.Number = strings.TrimSpace(p.Number)
	if err := validate.Struct(p); err != nil {
		return Person{}, fmt.Errorf("%w: %v", ErrInvalidPerson, err)
	}
	return p, nil
}

// UnmarshalJSON accepts the id as a JSON string or number, since json-server
// keeps whatever id type the backing file uses.
func (p *Person) UnmarshalJSON(data []byte) error {
	type plain Person
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("person id: %w", err)
	}
	return n.String(), nil
}
