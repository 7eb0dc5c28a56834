package choices

import "fmt"

// KeyRef names entries for Extract and Exclude: a declaration key (string),
// an *Entry, or a *Registry whose whole key list is spliced in. Anything
// else is a lookup error at call time.
type KeyRef = any

// Extract returns a new anonymous registry containing exactly the
// referenced entries, in this registry's declaration order regardless of
// the order given. The entries are shared, not copied. Unknown references
// fail with ErrUnknownKey.
func (r *Registry) Extract(refs ...KeyRef) (*Registry, error) {
	return r.ExtractAs(r.name+".Subset", refs...)
}

// ExtractAs is Extract with an explicit name for the derived registry.
func (r *Registry) ExtractAs(name string, refs ...KeyRef) (*Registry, error) {
	keys, err := r.resolveRefs(refs)
	if err != nil {
		return nil, fmt.Errorf("extract from %q: %w", r.name, err)
	}
	selected := make([]*Entry, 0, len(keys))
	for _, key := range keys {
		selected = append(selected, r.byKey[key])
	}
	return r.derive(name, r.order(selected))
}

// Exclude returns a new anonymous registry containing every entry except
// the referenced ones, in declaration order. Unknown references fail with
// ErrUnknownKey.
func (r *Registry) Exclude(refs ...KeyRef) (*Registry, error) {
	return r.ExcludeAs(r.name+".Subset", refs...)
}

// ExcludeAs is Exclude with an explicit name for the derived registry.
func (r *Registry) ExcludeAs(name string, refs ...KeyRef) (*Registry, error) {
	keys, err := r.resolveRefs(refs)
	if err != nil {
		return nil, fmt.Errorf("exclude from %q: %w", r.name, err)
	}
	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		drop[key] = struct{}{}
	}
	kept := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if _, ok := drop[e.key]; !ok {
			kept = append(kept, e)
		}
	}
	return r.derive(name, kept)
}

// resolveRefs flattens refs to a deduplicated key list, validating every
// key against this registry.
func (r *Registry) resolveRefs(refs []KeyRef) ([]string, error) {
	keys := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	add := func(key string) error {
		if !r.HasKey(key) {
			return fmt.Errorf("key %q: %w", key, ErrUnknownKey)
		}
		if _, ok := seen[key]; ok {
			return nil
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
		return nil
	}
	for _, ref := range refs {
		switch v := ref.(type) {
		case string:
			if err := add(v); err != nil {
				return nil, err
			}
		case *Entry:
			if v == nil {
				return nil, fmt.Errorf("nil entry reference: %w", ErrUnknownKey)
			}
			if err := add(v.key); err != nil {
				return nil, err
			}
		case *Registry:
			if v == nil {
				return nil, fmt.Errorf("nil registry reference: %w", ErrNilRegistry)
			}
			for _, e := range v.entries {
				if err := add(e.key); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("reference %v (%T): %w", ref, ref, ErrUnknownKey)
		}
	}
	return keys, nil
}
