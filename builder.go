package choices

import (
	"fmt"
	"strings"
)

// ValueFactory computes an entry's stored value when the declaration leaves
// it to the registry. It receives the declaration key, the display label and
// the declared params.
type ValueFactory func(key string, display Display, params []ParamPair) any

// DefaultValueFactory lowercases the declaration key, the library-wide AUTO
// value rule.
func DefaultValueFactory(key string, _ Display, _ []ParamPair) any {
	return strings.ToLower(key)
}

type memberKind int

const (
	memberEntry memberKind = iota
	memberSubset
	memberNested
)

// member is one collected declaration item. Subset member keys stay
// unresolved until Compile, so forward references to entries declared later
// in the same declaration are valid.
type member struct {
	kind      memberKind
	key       string
	display   any // string or Display; validated at Compile
	value     any
	hasValue  bool
	params    []ParamPair
	subsetOf  []string
	nested    *Registry
	inherited bool // seeded by Extend; a later Add with the same key overrides in place
}

// EntryOption configures a single entry declaration.
type EntryOption func(*member)

// Value sets an explicit stored value, overriding the registry's value
// factory for this entry.
func Value(v any) EntryOption {
	return func(m *member) {
		m.value = v
		m.hasValue = true
	}
}

// Param attaches one extra named attribute to the entry.
func Param(name string, value any) EntryOption {
	return func(m *member) {
		m.params = append(m.params, ParamPair{Name: name, Value: value})
	}
}

// Builder collects a declaration in order and compiles it into an immutable
// Registry. The zero Builder is not usable; start with New.
type Builder struct {
	name    string
	members []member
	index   map[string]int
	factory ValueFactory
	errs    []error
}

// New starts a declaration with the given registry name.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]int),
	}
}

// ValueFactory overrides the AUTO value computation for entries declared
// without an explicit value.
func (b *Builder) ValueFactory(f ValueFactory) *Builder {
	b.factory = f
	return b
}

// Add declares one entry. display is a plain string or a Display handle.
// Adding a key inherited via Extend replaces the inherited entry in its
// original position; re-declaring a key from this same declaration is a
// definition error reported by Compile.
func (b *Builder) Add(key string, display any, opts ...EntryOption) *Builder {
	m := member{kind: memberEntry, key: key, display: display}
	for _, opt := range opts {
		opt(&m)
	}
	b.put(m)
	return b
}

// Subset declares a named child registry referencing entries of this
// declaration by key. References are resolved after the whole declaration
// is collected, so member keys may be declared later than the subset.
func (b *Builder) Subset(name string, keys ...string) *Builder {
	b.put(member{kind: memberSubset, key: name, subsetOf: keys})
	return b
}

// Nested binds an independently compiled registry as a named child. Nested
// registries are not entries and do not take part in value uniqueness.
func (b *Builder) Nested(name string, r *Registry) *Builder {
	b.put(member{kind: memberNested, key: name, nested: r})
	return b
}

// Extend seeds the declaration with every member of base, in base's order.
// Entries re-declared afterwards override in place, keeping the base
// position; new members append. Base subsets are re-resolved against the
// final entry set, so an override participates in inherited subsets.
func (b *Builder) Extend(base *Registry) *Builder {
	if base == nil {
		b.errs = append(b.errs, fmt.Errorf("extend: %w", ErrNilRegistry))
		return b
	}
	for _, e := range base.entries {
		b.put(member{
			kind:      memberEntry,
			key:       e.key,
			display:   e.display,
			value:     e.value,
			hasValue:  true,
			params:    e.Params(),
			inherited: true,
		})
	}
	for _, name := range base.childOrder {
		if keys, ok := base.subsetKeys[name]; ok {
			b.put(member{kind: memberSubset, key: name, subsetOf: keys, inherited: true})
		} else {
			b.put(member{kind: memberNested, key: name, nested: base.children[name], inherited: true})
		}
	}
	if b.factory == nil {
		b.factory = base.factory
	}
	return b
}

func (b *Builder) put(m member) {
	if i, ok := b.index[m.key]; ok {
		if b.members[i].inherited {
			b.members[i] = m
			return
		}
		b.errs = append(b.errs, fmt.Errorf("member %q: %w", m.key, ErrDuplicateKey))
		return
	}
	b.index[m.key] = len(b.members)
	b.members = append(b.members, m)
}

// Compile validates the declaration and freezes it into a Registry.
func (b *Builder) Compile() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("declaration %q: %w", b.name, b.errs[0])
	}

	factory := b.factory
	if factory == nil {
		factory = DefaultValueFactory
	}

	r := &Registry{
		name:       b.name,
		byKey:      make(map[string]*Entry),
		byValue:    make(map[any]*Entry),
		children:   make(map[string]*Registry),
		subsetKeys: make(map[string][]string),
		factory:    factory,
	}
	r.origin = r

	// First pass: entries. Subset resolution is deferred until every entry
	// is known.
	for _, m := range b.members {
		if m.kind != memberEntry {
			continue
		}
		if m.key == "" {
			return nil, fmt.Errorf("declaration %q: %w", b.name, ErrEmptyKey)
		}
		display, ok := asDisplay(m.display)
		if !ok {
			return nil, fmt.Errorf("declaration %q: member %q: %w (got %T)",
				b.name, m.key, ErrBadDisplay, m.display)
		}
		value := m.value
		if !m.hasValue {
			value = factory(m.key, display, m.params)
		}
		if !hashable(value) {
			return nil, fmt.Errorf("declaration %q: member %q: %w (type %T)",
				b.name, m.key, ErrBadValue, value)
		}
		if prev, dup := r.byValue[value]; dup {
			return nil, fmt.Errorf("declaration %q: members %q and %q: value %v: %w",
				b.name, prev.key, m.key, value, ErrDuplicateValue)
		}
		e := newEntry(m.key, value, display, m.params)
		r.entries = append(r.entries, e)
		r.byKey[m.key] = e
		r.byValue[value] = e
	}

	// Second pass: subsets and nested children.
	for _, m := range b.members {
		switch m.kind {
		case memberSubset:
			selected := make([]*Entry, 0, len(m.subsetOf))
			seen := make(map[string]struct{}, len(m.subsetOf))
			for _, key := range m.subsetOf {
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				e, ok := r.byKey[key]
				if !ok {
					return nil, fmt.Errorf("declaration %q: subset %q: member %q: %w",
						b.name, m.key, key, ErrUnknownKey)
				}
				selected = append(selected, e)
			}
			child, err := r.derive(b.name+"."+m.key, r.order(selected))
			if err != nil {
				return nil, fmt.Errorf("declaration %q: subset %q: %w", b.name, m.key, err)
			}
			r.children[m.key] = child
			r.subsetKeys[m.key] = m.subsetOf
			r.childOrder = append(r.childOrder, m.key)
		case memberNested:
			if m.nested == nil {
				return nil, fmt.Errorf("declaration %q: nested %q: %w", b.name, m.key, ErrNilRegistry)
			}
			r.children[m.key] = m.nested
			r.childOrder = append(r.childOrder, m.key)
		}
	}

	return r, nil
}

// MustCompile is Compile for package-level declarations; it panics on any
// definition error.
func (b *Builder) MustCompile() *Registry {
	r, err := b.Compile()
	if err != nil {
		panic(err)
	}
	return r
}
