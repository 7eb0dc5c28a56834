package choices

// Display is a renderable label. Plain strings are wrapped as Text; labels
// backed by a translation catalog can be supplied as a Lazy handle that is
// only forced when text is actually requested.
type Display interface {
	DisplayText() string
}

// Text is a plain, already-resolved display label.
type Text string

// DisplayText returns the label text.
func (t Text) DisplayText() string { return string(t) }

// Lazy is a display label resolved on demand. The function is invoked every
// time text is requested; providers that want memoization should wrap their
// own cache (see internal/catalog).
type Lazy func() string

// DisplayText resolves and returns the label text.
func (l Lazy) DisplayText() string { return l() }

// asDisplay normalizes a declaration-time label: a Display handle passes
// through, a plain string wraps as Text, anything else is rejected at
// compile time with ErrBadDisplay.
func asDisplay(v any) (Display, bool) {
	switch d := v.(type) {
	case Display:
		return d, true
	case string:
		return Text(d), true
	default:
		return nil, false
	}
}
