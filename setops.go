package choices

import "fmt"

// Set algebra over two registries, by stored-value identity. Inputs are
// never mutated; every result is a freshly compiled anonymous registry
// whose origin is the receiver's origin. Entries sharing a key but not a
// value cannot coexist and surface as ErrDuplicateKey.

// Union returns the entries present in either registry: the receiver's
// entries first, then other's remainder, deduplicated by value.
func (r *Registry) Union(other *Registry) (*Registry, error) {
	if other == nil {
		return nil, fmt.Errorf("union with %q: %w", r.name, ErrNilRegistry)
	}
	merged := make([]*Entry, 0, len(r.entries)+len(other.entries))
	merged = append(merged, r.entries...)
	for _, e := range other.entries {
		if !r.Contains(e.value) {
			merged = append(merged, e)
		}
	}
	return r.derive(r.name+"|"+other.name, merged)
}

// Intersect returns the entries present in both registries, in the
// receiver's order.
func (r *Registry) Intersect(other *Registry) (*Registry, error) {
	if other == nil {
		return nil, fmt.Errorf("intersection with %q: %w", r.name, ErrNilRegistry)
	}
	kept := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if other.Contains(e.value) {
			kept = append(kept, e)
		}
	}
	return r.derive(r.name+"&"+other.name, kept)
}

// Difference returns the receiver's entries whose values are absent from
// other, in the receiver's order.
func (r *Registry) Difference(other *Registry) (*Registry, error) {
	if other == nil {
		return nil, fmt.Errorf("difference with %q: %w", r.name, ErrNilRegistry)
	}
	kept := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !other.Contains(e.value) {
			kept = append(kept, e)
		}
	}
	return r.derive(r.name+"-"+other.name, kept)
}

// SymmetricDifference returns the entries present in exactly one of the two
// registries: the receiver's remainder first, then other's, each in its own
// order.
func (r *Registry) SymmetricDifference(other *Registry) (*Registry, error) {
	if other == nil {
		return nil, fmt.Errorf("symmetric difference with %q: %w", r.name, ErrNilRegistry)
	}
	kept := make([]*Entry, 0, len(r.entries)+len(other.entries))
	for _, e := range r.entries {
		if !other.Contains(e.value) {
			kept = append(kept, e)
		}
	}
	for _, e := range other.entries {
		if !r.Contains(e.value) {
			kept = append(kept, e)
		}
	}
	return r.derive(r.name+"^"+other.name, kept)
}
