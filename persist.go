package formstash

import (
	"fmt"
	"sort"
)

const keyPrefix = "form#"

// ValueFunc restores a single stored value of a field in place of the default
// restoration, typically for widgets that are not plain form controls.
type ValueFunc func(form Form, value string)

// ValueFuncs maps field names to the [ValueFunc] that restores them.
type ValueFuncs map[string]ValueFunc

// StorageKey returns the key under which form's values are stored. Forms
// without an identifier all share the key "form#".
func StorageKey(form Form) string {
	return keyPrefix + form.ID()
}

// Persist saves form to s every time it is submitted.
func Persist(form Form, s Storage) {
	form.OnSubmit(func() error {
		return Save(form, s)
	})
}

// Save stores the current values of form in s, replacing any values stored
// before.
func Save(form Form, s Storage) error {
	key := StorageKey(form)
	data, err := marshalRecord(NewRecord(form.Data()))
	if err != nil {
		return fmt.Errorf("formstash: encoding %q: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("formstash: saving %q: %w", key, err)
	}
	return nil
}

// Load restores the values stored for form in s. It does nothing if no values
// have been stored. Fields named in fns are handed to their [ValueFunc], once
// per stored value, instead of being written to the form's controls.
//
// Controls sharing a name are matched to stored values by position, so values
// land on the wrong controls if the controls have been reordered since the
// values were saved.
func Load(form Form, s Storage, fns ValueFuncs) error {
	rec, ok, err := readRecord(form, s)
	if err != nil || !ok {
		return err
	}

	names := make([]string, 0, len(rec))
	for name := range rec {
		names = append(names, name)
	}
	sort.Strings(names)

	handled := make(map[string]bool, len(fns))
	for _, name := range names {
		fn, ok := fns[name]
		if !ok || fn == nil {
			continue
		}
		for _, v := range rec[name] {
			fn(form, v)
		}
		handled[name] = true
	}

	for _, name := range names {
		if handled[name] {
			continue
		}
		restoreField(form.Controls(name), rec[name])
	}
	return nil
}

func readRecord(form Form, s Storage) (Record, bool, error) {
	key := StorageKey(form)
	data, ok := s.Get(key)
	if !ok {
		return nil, false, nil
	}
	rec, err := unmarshalRecord(key, data)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func restoreField(controls []Control, values []string) {
	for i, c := range controls {
		switch c.Kind() {
		case KindRadio:
			if len(values) > 0 && c.Value() == values[0] && !c.Checked() {
				c.Click()
			}
		case KindCheckbox:
			want := i < len(values) && c.Value() == values[i]
			if want != c.Checked() {
				c.Click()
			}
		case KindSelectMultiple:
			for _, o := range c.Options() {
				o.SetSelected(contains(values, o.Value()))
			}
		default:
			// Inputs, textareas and single selects. A control past the end of
			// the stored values keeps its current value.
			if i < len(values) {
				c.SetValue(values[i])
			}
		}
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
