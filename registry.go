package choices

import (
	"fmt"
	"strings"
)

// Pair is one (stored value, display label) element of the field-choices
// contract sequence.
type Pair struct {
	Value   any
	Display Display
}

// Item is one (key, entry) element in declaration order.
type Item struct {
	Key   string
	Entry *Entry
}

// Filter restricts the filtered accessors to entries whose attribute Name
// equals Value. The built-in names "value" and "display" are matched
// alongside declared params. Construct with Where.
type Filter struct {
	Name  string
	Value any
}

// Where builds an attribute filter for Items, Keys, Entries and Displays.
func Where(name string, value any) Filter {
	return Filter{Name: name, Value: value}
}

// Registry is an immutable, ordered, named collection of entries and child
// registries, compiled once from a declaration. All methods are safe for
// concurrent use.
type Registry struct {
	name       string
	entries    []*Entry
	byKey      map[string]*Entry
	byValue    map[any]*Entry
	children   map[string]*Registry
	childOrder []string
	subsetKeys map[string][]string // declared subset name -> raw member keys (for Extend)
	origin     *Registry           // root declaration; self for roots
	factory    ValueFactory
}

// Name returns the registry's display name.
func (r *Registry) Name() string { return r.name }

// Len returns the number of entries, excluding child registries.
func (r *Registry) Len() int { return len(r.entries) }

// Origin returns the root declaration this registry derives from. For a
// registry compiled directly from a Builder, Origin returns the registry
// itself; for subsets, Extract/Exclude results and set-algebra results it
// returns the original declaration, giving callers holding only a derived
// registry an explicit path back to the full set and any helper state
// attached to it.
func (r *Registry) Origin() *Registry { return r.origin }

// Get returns the entry declared under key, or ErrUnknownKey.
func (r *Registry) Get(key string) (*Entry, error) {
	e, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("registry %q: key %q: %w", r.name, key, ErrUnknownKey)
	}
	return e, nil
}

// MustGet is Get for package-level entry bindings; it panics on an unknown
// key.
func (r *Registry) MustGet(key string) *Entry {
	e, err := r.Get(key)
	if err != nil {
		panic(err)
	}
	return e
}

// HasKey reports whether an entry is declared under key.
func (r *Registry) HasKey(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Child returns the named child registry (a declared subset or a nested
// registry), or ErrUnknownKey.
func (r *Registry) Child(name string) (*Registry, error) {
	c, ok := r.children[name]
	if !ok {
		return nil, fmt.Errorf("registry %q: child %q: %w", r.name, name, ErrUnknownKey)
	}
	return c, nil
}

// MustChild is Child for package-level subset bindings; it panics on an
// unknown name.
func (r *Registry) MustChild(name string) *Registry {
	c, err := r.Child(name)
	if err != nil {
		panic(err)
	}
	return c
}

// ChildNames returns the names of declared subsets and nested registries in
// declaration order.
func (r *Registry) ChildNames() []string {
	out := make([]string, len(r.childOrder))
	copy(out, r.childOrder)
	return out
}

// ByValue returns the entry whose stored value equals v, or
// ErrValueNotFound. An *Entry argument is unwrapped to its value first.
func (r *Registry) ByValue(v any) (*Entry, error) {
	e, ok := r.Lookup(v)
	if !ok {
		return nil, fmt.Errorf("registry %q: value %v: %w", r.name, v, ErrValueNotFound)
	}
	return e, nil
}

// Lookup returns the entry whose stored value equals v, if any.
func (r *Registry) Lookup(v any) (*Entry, bool) {
	raw := rawValue(v)
	if !hashable(raw) {
		return nil, false
	}
	e, ok := r.byValue[raw]
	return e, ok
}

// Key returns the declaration key of the entry whose stored value equals v.
func (r *Registry) Key(v any) (string, bool) {
	e, ok := r.Lookup(v)
	if !ok {
		return "", false
	}
	return e.key, true
}

// Find returns (key, entry) for the entry whose stored value equals v.
func (r *Registry) Find(v any) (string, *Entry, bool) {
	e, ok := r.Lookup(v)
	if !ok {
		return "", nil, false
	}
	return e.key, e, true
}

// Contains reports whether some entry's stored value equals v. Both raw
// values and *Entry arguments are accepted.
func (r *Registry) Contains(v any) bool {
	_, ok := r.Lookup(v)
	return ok
}

// Choices returns the (value, display) pairs in declaration order, the
// exact shape consumed by field-choices contracts.
func (r *Registry) Choices() []Pair {
	out := make([]Pair, len(r.entries))
	for i, e := range r.entries {
		out[i] = Pair{Value: e.value, Display: e.display}
	}
	return out
}

// Items returns (key, entry) pairs in declaration order, restricted to
// entries matching all given filters.
func (r *Registry) Items(filters ...Filter) []Item {
	out := make([]Item, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filters) {
			out = append(out, Item{Key: e.key, Entry: e})
		}
	}
	return out
}

// Keys returns declaration keys in order, restricted by filters.
func (r *Registry) Keys(filters ...Filter) []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filters) {
			out = append(out, e.key)
		}
	}
	return out
}

// Entries returns the entries in declaration order, restricted by filters.
func (r *Registry) Entries(filters ...Filter) []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

// Values returns the stored values in declaration order, restricted by
// filters.
func (r *Registry) Values(filters ...Filter) []any {
	out := make([]any, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filters) {
			out = append(out, e.value)
		}
	}
	return out
}

// Displays returns the resolved label text of each entry in declaration
// order, restricted by filters.
func (r *Registry) Displays(filters ...Filter) []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filters) {
			out = append(out, e.display.DisplayText())
		}
	}
	return out
}

// String renders the registry as Name(KEY1, KEY2, ...).
func (r *Registry) String() string {
	return r.name + "(" + strings.Join(r.Keys(), ", ") + ")"
}

func matches(e *Entry, filters []Filter) bool {
	for _, f := range filters {
		v, ok := e.attr(f.Name)
		if !ok {
			return false
		}
		want := rawValue(f.Value)
		// A string filter against a Display attribute matches the resolved
		// label text, so Where("display", "Created") works without wrapping.
		if d, isDisplay := v.(Display); isDisplay {
			if s, isString := want.(string); isString {
				if d.DisplayText() == s {
					continue
				}
				return false
			}
		}
		if !valueEqual(v, want) {
			return false
		}
	}
	return true
}

// order reorders selected entries into this registry's declaration order.
// Entries not belonging to the registry keep their relative position at the
// end; derivation call sites reject those beforehand.
func (r *Registry) order(selected []*Entry) []*Entry {
	want := make(map[string]struct{}, len(selected))
	for _, e := range selected {
		want[e.key] = struct{}{}
	}
	out := make([]*Entry, 0, len(selected))
	for _, e := range r.entries {
		if _, ok := want[e.key]; ok {
			out = append(out, e)
			delete(want, e.key)
		}
	}
	for _, e := range selected {
		if _, ok := want[e.key]; ok {
			out = append(out, e)
			delete(want, e.key)
		}
	}
	return out
}

// derive compiles a registry sharing this registry's entries. The entries
// are referenced, never copied; both collections stay immutable.
func (r *Registry) derive(name string, entries []*Entry) (*Registry, error) {
	d := &Registry{
		name:       name,
		entries:    entries,
		byKey:      make(map[string]*Entry, len(entries)),
		byValue:    make(map[any]*Entry, len(entries)),
		children:   make(map[string]*Registry),
		subsetKeys: make(map[string][]string),
		origin:     r.origin,
		factory:    r.factory,
	}
	for _, e := range entries {
		if prev, dup := d.byKey[e.key]; dup && !valueEqual(prev.value, e.value) {
			return nil, fmt.Errorf("key %q: %w", e.key, ErrDuplicateKey)
		}
		d.byKey[e.key] = e
		d.byValue[e.value] = e
	}
	return d, nil
}
