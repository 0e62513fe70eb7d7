package formstash

import (
	"fmt"
	"strings"
)

// splitName splits a control name such as "address[city]" or "tags[]" into its
// keys. A trailing "[]" only marks the field as repeated and is dropped, so
// "tags[]" and "tags" address the same field.
func splitName(name string) ([]string, error) {
	var keys []string
	head, rest, nested := strings.Cut(name, "[")
	if head == "" {
		return nil, fmt.Errorf("invalid field name %q", name)
	}
	keys = append(keys, head)

	for nested {
		key, after, ok := strings.Cut(rest, "]")
		if !ok {
			return nil, fmt.Errorf("invalid field name %q: unclosed bracket", name)
		}
		if key == "" {
			if after != "" {
				return nil, fmt.Errorf("invalid field name %q: [] must come last", name)
			}
			break
		}
		keys = append(keys, key)

		if after == "" {
			break
		}
		if after[0] != '[' {
			return nil, fmt.Errorf("invalid field name %q", name)
		}
		rest = after[1:]
	}
	return keys, nil
}
