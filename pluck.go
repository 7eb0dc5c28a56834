package choices

// Absent is the sentinel substituted by Pluck for entries lacking a
// requested attribute.
var Absent = absent{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// PluckRow pairs one entry's key with its extracted attribute values, in
// the order the attribute names were requested.
type PluckRow struct {
	Key    string
	Values []any
}

// Pluck projects the named attributes across every entry in declaration
// order. The built-in names "value" and "display" resolve alongside
// declared params; entries lacking an attribute contribute Absent in its
// position. One row per entry, one element per requested name.
func (r *Registry) Pluck(names ...string) [][]any {
	out := make([][]any, len(r.entries))
	for i, e := range r.entries {
		out[i] = pluckOne(e, names)
	}
	return out
}

// PluckKeyed is Pluck with each row paired to its entry's declaration key.
func (r *Registry) PluckKeyed(names ...string) []PluckRow {
	out := make([]PluckRow, len(r.entries))
	for i, e := range r.entries {
		out[i] = PluckRow{Key: e.key, Values: pluckOne(e, names)}
	}
	return out
}

func pluckOne(e *Entry, names []string) []any {
	row := make([]any, len(names))
	for i, name := range names {
		if v, ok := e.attr(name); ok {
			row[i] = v
		} else {
			row[i] = Absent
		}
	}
	return row
}
