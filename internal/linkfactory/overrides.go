package linkfactory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Overrides maps variable names to replacement value lists and remembers
// the order in which names were supplied.
type Overrides struct {
	keys   []string
	values map[string][]string
}

// NewOverrides returns an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{values: make(map[string][]string)}
}

// OverridesFromMap builds an override set from a plain map. Map iteration
// order is undefined, so names are taken in sorted order.
func OverridesFromMap(m map[string][]string) *Overrides {
	o := NewOverrides()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Set replaces the values for name. A new name is appended to the order.
func (o *Overrides) Set(name string, values []string) {
	if o.values == nil {
		o.values = make(map[string][]string)
	}
	if _, ok := o.values[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.values[name] = append([]string{}, values...)
}

// Get returns the values for name and whether it was supplied.
func (o *Overrides) Get(name string) ([]string, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[name]
	return v, ok
}

// Keys returns the supplied names in order.
func (o *Overrides) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of supplied names.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// UnmarshalJSON decodes a JSON object of string arrays, keeping key order.
// A bare string value is treated as a one-element list.
func (o *Overrides) UnmarshalJSON(data []byte) error {
	*o = Overrides{values: make(map[string][]string)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("overrides must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected override key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("override %q: %w", name, err)
		}
		var values []string
		if err := json.Unmarshal(raw, &values); err != nil {
			var single string
			if err2 := json.Unmarshal(raw, &single); err2 != nil {
				return fmt.Errorf("override %q must be a list of strings", name)
			}
			values = []string{single}
		}
		o.Set(name, values)
	}

	_, err = dec.Token()
	return err
}
