// Package choices implements a declarative registry of named constant
// entries. Each entry carries a stored value, a human-readable display
// label, and arbitrary extra parameters.
//
// A declaration is assembled with a fluent Builder and compiled once into
// an immutable Registry:
//
//	var OrderStatus = choices.New("OrderStatus").
//		Add("CREATED", "Created").
//		Add("PENDING", "Pending", choices.Param("help_text", "awaiting review")).
//		Add("ON_HOLD", "On Hold", choices.Value("custom_on_hold")).
//		Subset("VALID", "CREATED", "ON_HOLD").
//		MustCompile()
//
// Entries answer for their stored value wherever the raw value is expected:
//
//	OrderStatus.Contains("created")            // true
//	OrderStatus.Contains("custom_on_hold")     // true
//	OrderStatus.Contains("on_hold")            // false
//	e, _ := OrderStatus.ByValue("created")     // *Entry for CREATED
//
// Registries are immutable after compilation, so the whole object graph is
// safe to share across goroutines without locking. Derived registries
// (declared subsets, Extract/Exclude results, set-algebra results) share
// Entry pointers with their origin and never copy or mutate it.
//
// # Core Types
//
// Entry is one immutable constant: key, value, display, params. Identity,
// equality and hashing follow the value alone.
//
// Registry is an ordered, named collection of entries plus nested child
// registries. It exposes the (value, display) pair sequence expected by
// form/model field-choices contracts via Choices.
//
// Builder collects declaration members in order and resolves subset
// references only after the full declaration is known, so a subset may name
// entries declared later in the same declaration.
//
// # Errors
//
// Definition errors (duplicate key, duplicate value, unknown subset member,
// non-hashable value) surface from Compile. Lookup errors (unknown key,
// unknown param, value not found) surface from accessors. All are wrapped
// sentinel errors discriminated with errors.Is.
package choices
