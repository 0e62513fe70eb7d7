package formstash_test

import (
	"net/url"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/formstash"
)

// fakeForm is an in-memory formstash.Form. Controls keep document order.
type fakeForm struct {
	id       string
	controls []*fakeControl
	handlers []func() error
}

func newForm(id string, controls ...*fakeControl) *fakeForm {
	f := &fakeForm{id: id}
	for _, c := range controls {
		f.add(c)
	}
	return f
}

func (f *fakeForm) add(c *fakeControl) {
	c.form = f
	f.controls = append(f.controls, c)
}

func (f *fakeForm) ID() string { return f.id }

func (f *fakeForm) Data() url.Values {
	values := url.Values{}
	for _, c := range f.controls {
		if c.name == "" {
			continue
		}
		switch c.kind {
		case formstash.KindRadio, formstash.KindCheckbox:
			if c.checked {
				values.Add(c.name, c.value)
			}
		case formstash.KindSelectMultiple:
			for _, o := range c.options {
				if o.selected {
					values.Add(c.name, o.value)
				}
			}
		default:
			values.Add(c.name, c.value)
		}
	}
	return values
}

func (f *fakeForm) Controls(name string) []formstash.Control {
	var out []formstash.Control
	for _, c := range f.controls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeForm) OnSubmit(fn func() error) {
	f.handlers = append(f.handlers, fn)
}

// submit runs the registered submit handlers and returns the first error.
func (f *fakeForm) submit() error {
	for _, h := range f.handlers {
		if err := h(); err != nil {
			return err
		}
	}
	return nil
}

// clear resets every control as a fresh page load would.
func (f *fakeForm) clear() {
	for _, c := range f.controls {
		c.checked = false
		c.clicks = 0
		c.sets = 0
		if c.kind != formstash.KindRadio && c.kind != formstash.KindCheckbox {
			c.value = ""
		}
		for _, o := range c.options {
			o.selected = false
		}
	}
}

type fakeControl struct {
	form    *fakeForm
	name    string
	kind    formstash.ControlKind
	value   string
	checked bool
	options []*fakeOption

	clicks int
	sets   int
}

func text(name, value string) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindInput, value: value}
}

func textarea(name, value string) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindTextarea, value: value}
}

func checkbox(name, value string, checked bool) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindCheckbox, value: value, checked: checked}
}

func radio(name, value string, checked bool) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindRadio, value: value, checked: checked}
}

func selectOne(name, value string) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindSelect, value: value}
}

func selectMany(name string, opts ...*fakeOption) *fakeControl {
	return &fakeControl{name: name, kind: formstash.KindSelectMultiple, options: opts}
}

func (c *fakeControl) Kind() formstash.ControlKind { return c.kind }
func (c *fakeControl) Value() string               { return c.value }
func (c *fakeControl) Checked() bool               { return c.checked }

func (c *fakeControl) SetValue(value string) {
	c.sets++
	c.value = value
}

// Click behaves like a user activation: a checkbox toggles and a radio
// unchecks the rest of its group.
func (c *fakeControl) Click() {
	c.clicks++
	switch c.kind {
	case formstash.KindCheckbox:
		c.checked = !c.checked
	case formstash.KindRadio:
		for _, other := range c.form.controls {
			if other.kind == formstash.KindRadio && other.name == c.name {
				other.checked = false
			}
		}
		c.checked = true
	}
}

func (c *fakeControl) Options() []formstash.Option {
	if c.options == nil {
		return nil
	}
	out := make([]formstash.Option, len(c.options))
	for i, o := range c.options {
		out[i] = o
	}
	return out
}

type fakeOption struct {
	value    string
	selected bool
}

func option(value string, selected bool) *fakeOption {
	return &fakeOption{value: value, selected: selected}
}

func (o *fakeOption) Value() string             { return o.value }
func (o *fakeOption) SetSelected(selected bool) { o.selected = selected }

// checkedValues returns the values of the checked controls named name.
func (f *fakeForm) checkedValues(name string) []string {
	var out []string
	for _, c := range f.controls {
		if c.name == name && c.checked {
			out = append(out, c.value)
		}
	}
	return out
}

func (f *fakeForm) totalClicks() int {
	n := 0
	for _, c := range f.controls {
		n += c.clicks
	}
	return n
}

// Comparer for MyDate type.
var MyDateComparer = cmp.Comparer(func(x, y MyDate) bool {
	return time.Time(x).Equal(time.Time(y))
})

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type Profile struct {
	ID         int      `form:"id"`
	Name       string   `form:"name"`
	Newsletter bool     `form:"newsletter"`
	Topics     []string `form:"topics,omitempty"`
	Joined     MyDate   `form:"joined"`
	Address    Address  `form:"address"`
	Nickname   *string  `form:"nickname,omitempty"`
	Private    string   `form:"-"`
	Skipped    string   `form:",ignore"`
	NoTag      string
	internal   string
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
}

type MyDate time.Time

func (d MyDate) MarshalForm() (string, error) {
	return time.Time(d).Format("2006-01-02"), nil
}

func (d *MyDate) UnmarshalForm(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = MyDate(t)
	return nil
}
