package formstash

import (
	"fmt"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

// json matches encoding/json output, including sorted object keys.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is the stored form of a form's values: each field name maps to the
// values submitted under it, in document order.
type Record map[string][]string

// SyntaxError is returned when a stored record is not a valid JSON object of
// string arrays.
type SyntaxError struct {
	Key string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formstash: invalid record under %q: %v", e.Key, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// NewRecord copies values into a new [Record].
func NewRecord(values url.Values) Record {
	r := make(Record, len(values))
	for name, vals := range values {
		r[name] = append([]string(nil), vals...)
	}
	return r
}

// Get returns the first value stored for name, or the empty string.
func (r Record) Get(name string) string {
	if vals := r[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Values returns r as [url.Values].
func (r Record) Values() url.Values {
	return url.Values(r)
}

// Encode returns r in application/x-www-form-urlencoded form, sorted by name.
func (r Record) Encode() string {
	return url.Values(r).Encode()
}

// marshalRecord returns the JSON text of r. Object keys are sorted, so equal
// records always produce equal text.
func marshalRecord(r Record) (string, error) {
	if r == nil {
		r = Record{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalRecord(key, data string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, &SyntaxError{Key: key, Err: err}
	}
	if r == nil {
		// "null" decodes without error but is not an object.
		return nil, &SyntaxError{Key: key, Err: fmt.Errorf("expected object, got null")}
	}
	return r, nil
}
