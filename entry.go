package choices

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ParamPair is one named extra attribute of an entry.
type ParamPair struct {
	Name  string
	Value any
}

// Entry is one immutable constant: a stored value, a display label and a
// fixed set of extra params. Two entries are equal iff their values are
// equal; key, display and params never take part in identity.
type Entry struct {
	key     string
	value   any
	display Display
	params  []ParamPair
	byName  map[string]int
}

// newEntry builds a frozen entry. Params keep declaration order; the last
// write wins for a repeated name.
func newEntry(key string, value any, display Display, params []ParamPair) *Entry {
	e := &Entry{
		key:     key,
		value:   value,
		display: display,
		byName:  make(map[string]int, len(params)),
	}
	for _, p := range params {
		if i, ok := e.byName[p.Name]; ok {
			e.params[i].Value = p.Value
			continue
		}
		e.byName[p.Name] = len(e.params)
		e.params = append(e.params, p)
	}
	return e
}

// Key returns the declaration key of the entry.
func (e *Entry) Key() string { return e.key }

// Value returns the stored value, the entry's canonical identity.
func (e *Entry) Value() any { return e.value }

// Display returns the display label.
func (e *Entry) Display() Display { return e.display }

// DisplayText resolves the display label to text.
func (e *Entry) DisplayText() string { return e.display.DisplayText() }

// Param returns the named extra attribute, or ErrUnknownParam when the
// entry does not define it.
func (e *Entry) Param(name string) (any, error) {
	i, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("entry %q: param %q: %w", e.key, name, ErrUnknownParam)
	}
	return e.params[i].Value, nil
}

// ParamOr returns the named extra attribute, or fallback when absent.
func (e *Entry) ParamOr(name string, fallback any) any {
	if i, ok := e.byName[name]; ok {
		return e.params[i].Value
	}
	return fallback
}

// HasParam reports whether the entry defines the named extra attribute.
func (e *Entry) HasParam(name string) bool {
	_, ok := e.byName[name]
	return ok
}

// Params returns a copy of the extra attributes in declaration order.
func (e *Entry) Params() []ParamPair {
	out := make([]ParamPair, len(e.params))
	copy(out, e.params)
	return out
}

// Equal reports value equality with another entry.
func (e *Entry) Equal(other *Entry) bool {
	return other != nil && valueEqual(e.value, other.value)
}

// Is reports whether the entry's value equals v. An *Entry argument is
// unwrapped to its value first, so entries and raw values are
// interchangeable in comparisons.
func (e *Entry) Is(v any) bool {
	return valueEqual(e.value, rawValue(v))
}

// String renders the stored value, so an entry prints interchangeably with
// its raw value.
func (e *Entry) String() string { return fmt.Sprint(e.value) }

// MarshalJSON emits the bare stored value.
func (e *Entry) MarshalJSON() ([]byte, error) { return json.Marshal(e.value) }

// attr resolves the built-in names "value" and "display" alongside declared
// params. Used by filtered accessors and Pluck.
func (e *Entry) attr(name string) (any, bool) {
	switch name {
	case "value":
		return e.value, true
	case "display":
		return e.display, true
	}
	i, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.params[i].Value, true
}

// rawValue unwraps an *Entry to its stored value; any other input passes
// through unchanged.
func rawValue(v any) any {
	if e, ok := v.(*Entry); ok && e != nil {
		return e.value
	}
	return v
}

// valueEqual compares two stored values. Values are required to be hashable
// at compile time, so == is safe for everything a registry can hold; the
// reflect fallback only guards direct Entry comparisons against foreign
// values.
func valueEqual(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != nil && !ta.Comparable() {
		return false
	}
	if tb != nil && !tb.Comparable() {
		return false
	}
	return a == b
}

// hashable reports whether v can serve as a map key.
func hashable(v any) bool {
	t := reflect.TypeOf(v)
	return t == nil || t.Comparable()
}
