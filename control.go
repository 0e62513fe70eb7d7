package formstash

import (
	"net/url"
	"strconv"
)

// ControlKind identifies how a control's value is restored.
type ControlKind int

const (
	// KindInput is any input element that is not a radio or a checkbox.
	KindInput ControlKind = iota
	KindRadio
	KindCheckbox
	KindTextarea
	KindSelect
	KindSelectMultiple
)

var kindNames = [...]string{
	KindInput:          "input",
	KindRadio:          "radio",
	KindCheckbox:       "checkbox",
	KindTextarea:       "textarea",
	KindSelect:         "select",
	KindSelectMultiple: "select-multiple",
}

func (k ControlKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ControlKind(" + strconv.Itoa(int(k)) + ")"
}

// Form is the view of an HTML form that saving and restoring need.
type Form interface {
	// ID returns the form's identifier attribute, or "" if it has none.
	ID() string

	// Data returns the values the form would submit, keyed by control name,
	// with repeated names in document order.
	Data() url.Values

	// Controls returns the input, textarea and select elements named name that
	// belong to the form, whether nested inside it or associated through a
	// form attribute, in document order.
	Controls(name string) []Control

	// OnSubmit registers fn to run each time the form is submitted.
	OnSubmit(fn func() error)
}

// Control is a single form control.
type Control interface {
	Kind() ControlKind
	Value() string
	SetValue(value string)
	Checked() bool

	// Click simulates a user activation so that listeners attached to the
	// control observe the change.
	Click()

	// Options returns the options of a select control, nil for other kinds.
	Options() []Option
}

// Option is an option of a select control.
type Option interface {
	Value() string
	SetSelected(selected bool)
}
