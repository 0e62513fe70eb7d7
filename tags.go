package formstash

import (
	"reflect"
	"strings"
	"sync"
)

// structTagCache holds the parsed "form" tags of each struct type seen by
// [Encode] and [Decode], keyed by [reflect.Type].
var structTagCache sync.Map

type tag struct {
	Name   string
	Omit   bool
	Ignore bool
}

// tags returns one *tag per field of the struct held in v.
func tags(v reflect.Value) []*tag {
	tt := reflect.Indirect(v).Type()
	if tt.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := structTagCache.Load(tt); ok {
		return cached.([]*tag)
	}

	tags := make([]*tag, tt.NumField())
	for i := range tags {
		f := tt.Field(i)
		t := parseTag(f.Tag.Get("form"))
		if !f.IsExported() {
			t.Ignore = true
		}
		if !t.Ignore && t.Name == "" {
			t.Name = f.Name
		}
		tags[i] = t
	}

	actual, _ := structTagCache.LoadOrStore(tt, tags)
	return actual.([]*tag)
}

// parseTag parses a tag of the form "name,omitempty". A tag of "-" or one
// carrying the "ignore" flag excludes the field.
func parseTag(str string) *tag {
	str = strings.TrimSpace(str)
	if str == "-" {
		return &tag{Ignore: true}
	}

	name, flags, _ := strings.Cut(str, ",")
	t := &tag{Name: strings.TrimSpace(name)}
	for _, f := range strings.Split(flags, ",") {
		switch strings.TrimSpace(f) {
		case "omitempty":
			t.Omit = true
		case "ignore":
			t.Ignore = true
		}
	}
	return t
}
