package formstash

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Marshaler is the interface implemented by types that can render themselves
// as a single form value.
type Marshaler interface {
	MarshalForm() (string, error)
}

// SaveValue encodes v with [Encode] and stores the result under form's key, as
// if form had been submitted holding those values.
func SaveValue(form Form, s Storage, v interface{}) error {
	rec, err := Encode(v)
	if err != nil {
		return err
	}
	key := StorageKey(form)
	data, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("formstash: encoding %q: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("formstash: saving %q: %w", key, err)
	}
	return nil
}

// Encode returns the [Record] a form holding v would submit.
//
// Struct fields are named by their "form" tag, falling back to the field name.
// Nested structs and maps produce names such as "address[city]"; slices
// produce one value per element under the same name.
func Encode(v interface{}) (Record, error) {
	rec := Record{}
	if v == nil {
		return rec, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rec, nil
		}
		rv = rv.Elem()
	}

	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() != reflect.String:
		return nil, fmt.Errorf("formstash: map keys must be strings")
	case rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map:
		return nil, fmt.Errorf("formstash: cannot encode %v, need struct or map", rv.Type())
	}

	if err := encodeValue(rec, nil, rv, false); err != nil {
		return nil, err
	}
	return rec, nil
}

// encodeValue adds v to rec under path. inSlice is set for slice elements,
// which must be leaves.
func encodeValue(rec Record, path []string, v reflect.Value, inSlice bool) error {
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		if m, ok := asMarshaler(v); ok {
			return encodeMarshaler(rec, path, m)
		}
		v = v.Elem()
	}

	if m, ok := asMarshaler(v); ok {
		return encodeMarshaler(rec, path, m)
	}

	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		if inSlice {
			return fmt.Errorf("formstash: %s: slices of %v are not supported", fieldName(path), v.Type())
		}
		if v.Kind() == reflect.Struct {
			return encodeStruct(rec, path, v)
		}
		return encodeMap(rec, path, v)
	case reflect.Slice, reflect.Array:
		if inSlice {
			return fmt.Errorf("formstash: %s: nested slices are not supported", fieldName(path))
		}
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(rec, path, v.Index(i), true); err != nil {
				return err
			}
		}
		return nil
	default:
		if v.Kind() == reflect.Bool && !v.Bool() {
			// An unchecked box submits nothing.
			return nil
		}
		s, err := formatScalar(v)
		if err != nil {
			return fmt.Errorf("formstash: %s: %w", fieldName(path), err)
		}
		name := fieldName(path)
		rec[name] = append(rec[name], s)
		return nil
	}
}

func encodeMarshaler(rec Record, path []string, m Marshaler) error {
	s, err := m.MarshalForm()
	if err != nil {
		return fmt.Errorf("formstash: %s: %w", fieldName(path), err)
	}
	name := fieldName(path)
	rec[name] = append(rec[name], s)
	return nil
}

func encodeStruct(rec Record, path []string, v reflect.Value) error {
	for i, tag := range tags(v) {
		if tag.Ignore {
			continue
		}
		fv := v.Field(i)
		if tag.Omit && fv.IsZero() {
			continue
		}
		if err := encodeValue(rec, appendPath(path, tag.Name), fv, false); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(rec Record, path []string, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("formstash: %s: map keys must be strings", fieldName(path))
	}
	iter := v.MapRange()
	for iter.Next() {
		if err := encodeValue(rec, appendPath(path, iter.Key().String()), iter.Value(), false); err != nil {
			return err
		}
	}
	return nil
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	if v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

// appendPath copies path so sibling fields never share a backing array.
func appendPath(path []string, name string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, name)
}

// fieldName renders a path as a control name: a, a[b], a[b][c].
func fieldName(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(path[0])
	for _, p := range path[1:] {
		b.WriteByte('[')
		b.WriteString(p)
		b.WriteByte(']')
	}
	return b.String()
}

func formatScalar(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	case reflect.Bool:
		// A checked box with no value attribute submits "on".
		return "on", nil
	default:
		return "", fmt.Errorf("unsupported type %v", v.Type())
	}
}
