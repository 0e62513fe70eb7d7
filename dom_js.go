//go:build js && wasm

package formstash

import (
	"fmt"
	"net/url"
	"strings"
	"syscall/js"
)

// LocalStorage is the browser's window.localStorage.
type LocalStorage struct{}

// Get implements [Storage].
func (LocalStorage) Get(key string) (string, bool) {
	res := js.Global().Get("localStorage").Call("getItem", key)
	if res.IsNull() || res.IsUndefined() {
		return "", false
	}
	return res.String(), true
}

// Set implements [Storage]. A QuotaExceededError thrown by the browser is
// returned as [ErrQuotaExceeded].
func (LocalStorage) Set(key, value string) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		jsErr, ok := r.(js.Error)
		if !ok {
			panic(r)
		}
		if jsErr.Get("name").String() == "QuotaExceededError" {
			err = ErrQuotaExceeded
			return
		}
		err = fmt.Errorf("localStorage.setItem: %w", jsErr)
	}()

	js.Global().Get("localStorage").Call("setItem", key, value)
	return nil
}

// HTMLForm is a [Form] backed by an HTMLFormElement.
type HTMLForm struct {
	el js.Value

	// Listeners registered through OnSubmit, kept so they are not collected.
	funcs []js.Func
}

// NewHTMLForm wraps the HTMLFormElement el.
func NewHTMLForm(el js.Value) *HTMLForm {
	return &HTMLForm{el: el}
}

// FormByID looks up the form element with the given id.
func FormByID(id string) (*HTMLForm, bool) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.Get("tagName").String() != "FORM" {
		return nil, false
	}
	return NewHTMLForm(el), true
}

// ID implements [Form].
func (f *HTMLForm) ID() string {
	return f.el.Get("id").String()
}

// Data implements [Form]. File inputs are skipped; only string entries are
// returned.
func (f *HTMLForm) Data() url.Values {
	values := url.Values{}
	entries := js.Global().Get("FormData").New(f.el).Call("entries")
	for {
		next := entries.Call("next")
		if next.Get("done").Bool() {
			break
		}
		entry := next.Get("value")
		name, value := entry.Index(0), entry.Index(1)
		if value.Type() != js.TypeString {
			continue
		}
		values.Add(name.String(), value.String())
	}
	return values
}

// Controls implements [Form].
func (f *HTMLForm) Controls(name string) []Control {
	css := js.Global().Get("CSS")
	attr := css.Call("escape", name).String()

	// Without an id no control can point at the form, so only nested controls
	// are searched.
	root := f.el
	var selectors []string
	if f.ID() == "" {
		for _, tag := range []string{"input", "textarea", "select"} {
			selectors = append(selectors, fmt.Sprintf(`%s[name="%s"]`, tag, attr))
		}
	} else {
		root = js.Global().Get("document")
		id := css.Call("escape", f.ID()).String()
		for _, tag := range []string{"input", "textarea", "select"} {
			selectors = append(selectors,
				fmt.Sprintf(`#%s %s[name="%s"]`, id, tag, attr),
				fmt.Sprintf(`%s[form="%s"][name="%s"]`, tag, id, attr),
			)
		}
	}

	nodes := root.Call("querySelectorAll", strings.Join(selectors, ", "))
	controls := make([]Control, nodes.Length())
	for i := range controls {
		controls[i] = htmlControl{nodes.Index(i)}
	}
	return controls
}

// OnSubmit implements [Form]. An error returned by fn is written to the
// browser console; the submission itself goes ahead.
func (f *HTMLForm) OnSubmit(fn func() error) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if err := fn(); err != nil {
			js.Global().Get("console").Call("error", err.Error())
		}
		return nil
	})
	f.funcs = append(f.funcs, cb)
	f.el.Call("addEventListener", "submit", cb)
}

type htmlControl struct {
	el js.Value
}

func (c htmlControl) Kind() ControlKind {
	switch c.el.Get("tagName").String() {
	case "TEXTAREA":
		return KindTextarea
	case "SELECT":
		if c.el.Get("multiple").Bool() {
			return KindSelectMultiple
		}
		return KindSelect
	}
	switch c.el.Get("type").String() {
	case "radio":
		return KindRadio
	case "checkbox":
		return KindCheckbox
	}
	return KindInput
}

func (c htmlControl) Value() string         { return c.el.Get("value").String() }
func (c htmlControl) SetValue(value string) { c.el.Set("value", value) }
func (c htmlControl) Checked() bool         { return c.el.Get("checked").Bool() }
func (c htmlControl) Click()                { c.el.Call("click") }

func (c htmlControl) Options() []Option {
	if c.el.Get("tagName").String() != "SELECT" {
		return nil
	}
	opts := c.el.Get("options")
	out := make([]Option, opts.Length())
	for i := range out {
		out[i] = htmlOption{opts.Index(i)}
	}
	return out
}

type htmlOption struct {
	el js.Value
}

func (o htmlOption) Value() string             { return o.el.Get("value").String() }
func (o htmlOption) SetSelected(selected bool) { o.el.Set("selected", selected) }
