package formstash

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// InvalidDecodeError describes an invalid argument passed to [Decode]. (The
// argument must be a non-nil pointer.)
type InvalidDecodeError struct {
	Type reflect.Type
}

func (e *InvalidDecodeError) Error() string {
	if e.Type == nil {
		return "formstash: Decode(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "formstash: Decode(non-pointer " + e.Type.String() + ")"
	}
	return "formstash: Decode(nil " + e.Type.String() + ")"
}

// Unmarshaler is the interface implemented by types that can parse themselves
// from a single form value.
type Unmarshaler interface {
	UnmarshalForm(string) error
}

// LoadInto decodes the values stored for form in s into v. It leaves v
// untouched if no values have been stored.
func LoadInto(form Form, s Storage, v interface{}) error {
	rec, ok, err := readRecord(form, s)
	if err != nil || !ok {
		return err
	}
	return Decode(rec, v)
}

// Decode stores the values of r in the struct or string-keyed map pointed to by
// v, following the naming rules of [Encode]. Names with no matching struct
// field are ignored, as a form may hold controls the struct does not model.
func Decode(r Record, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidDecodeError{reflect.TypeOf(v)}
	}

	rv = rv.Elem()
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() != reflect.String:
		return fmt.Errorf("formstash: map keys must be strings")
	case rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map:
		return fmt.Errorf("formstash: cannot decode into %v, need struct or map", rv.Type())
	}

	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		keys, err := splitName(name)
		if err != nil {
			return fmt.Errorf("formstash: %w", err)
		}
		if err := decodeField(rv, keys, r[name]); err != nil {
			return fmt.Errorf("formstash: %s: %w", name, err)
		}
	}
	return nil
}

func decodeField(v reflect.Value, keys []string, vals []string) error {
	v = deref(v)
	if len(keys) == 0 {
		return decodeLeaf(v, vals)
	}
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		field := findStructField(v, keys[0])
		if !field.IsValid() {
			return nil
		}
		return decodeField(field, keys[1:], vals)
	case reflect.Map:
		return decodeMapEntry(v, keys, vals)
	default:
		return fmt.Errorf("cannot descend into %v", v.Type())
	}
}

func decodeMapEntry(v reflect.Value, keys []string, vals []string) error {
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	key := reflect.ValueOf(keys[0]).Convert(v.Type().Key())
	elemType := v.Type().Elem()

	// Map elements are not addressable, so work on a copy and store it back.
	elem := reflect.New(elemType).Elem()
	if old := v.MapIndex(key); old.IsValid() {
		elem.Set(old)
	}

	if elemType.Kind() == reflect.Interface && elem.IsNil() {
		if len(keys) > 1 {
			elem.Set(reflect.ValueOf(map[string]interface{}{}))
			if err := decodeField(elem.Elem(), keys[1:], vals); err != nil {
				return err
			}
			v.SetMapIndex(key, elem)
			return nil
		}
		// No type to go by: a single value is a string, several a []string.
		if len(vals) == 1 {
			elem.Set(reflect.ValueOf(vals[0]))
		} else {
			elem.Set(reflect.ValueOf(append([]string(nil), vals...)))
		}
		v.SetMapIndex(key, elem)
		return nil
	}

	if err := decodeField(elem, keys[1:], vals); err != nil {
		return err
	}
	v.SetMapIndex(key, elem)
	return nil
}

// decodeLeaf assigns vals to v. Slices receive every value; anything else
// receives the first, as [Record.Get] does.
func decodeLeaf(v reflect.Value, vals []string) error {
	if u, ok := asUnmarshaler(v); ok {
		if len(vals) == 0 {
			return nil
		}
		return u.UnmarshalForm(vals[0])
	}

	if v.Kind() == reflect.Slice {
		out := reflect.MakeSlice(v.Type(), len(vals), len(vals))
		for i, s := range vals {
			elem := deref(out.Index(i))
			if u, ok := asUnmarshaler(elem); ok {
				if err := u.UnmarshalForm(s); err != nil {
					return err
				}
				continue
			}
			if err := setScalar(elem, s); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	}

	if len(vals) == 0 {
		return nil
	}
	return setScalar(v, vals[0])
}

// deref dereferences a pointer value, allocating a new value if needed.
func deref(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return v.Elem()
	}
	return v
}

func asUnmarshaler(v reflect.Value) (Unmarshaler, bool) {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	return nil, false
}

func findStructField(v reflect.Value, name string) reflect.Value {
	for i, t := range tags(v) {
		if !t.Ignore && t.Name == name {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			v.SetInt(0)
			return nil
		}
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			v.SetUint(0)
			return nil
		}
		u, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			v.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Bool:
		v.SetBool(isChecked(s))
	case reflect.Interface:
		if v.NumMethod() != 0 {
			return fmt.Errorf("unsupported type %v", v.Type())
		}
		v.Set(reflect.ValueOf(s))
	default:
		return fmt.Errorf("unsupported type %v", v.Type())
	}
	return nil
}

// isChecked reports whether s marks a checkbox as checked: anything but the
// empty string and the false spellings accepted by [strconv.ParseBool].
func isChecked(s string) bool {
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return true
}
