package choices

import "errors"

// Definition errors, returned by Compile and by derivation operations that
// compile fresh registries.
var (
	ErrDuplicateKey   = errors.New("duplicate key in declaration")
	ErrDuplicateValue = errors.New("duplicate value in declaration")
	ErrBadValue       = errors.New("value is not hashable")
	ErrBadDisplay     = errors.New("display must be a string or choices.Display")
	ErrEmptyKey       = errors.New("entry key cannot be empty")
	ErrNilRegistry    = errors.New("registry cannot be nil")
)

// Lookup errors, returned by accessors at call time.
var (
	ErrUnknownKey    = errors.New("key not found in registry")
	ErrUnknownParam  = errors.New("entry has no such param")
	ErrValueNotFound = errors.New("value not found in registry")
)
