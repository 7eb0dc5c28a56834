package testutil

// OrderStatus returns the standard fixture: three entries, one with an
// explicit value and a weight param, plus a VALID subset.
func OrderStatus() *Decl {
	return Registry("ORDER_STATUS").
		WithChoice("CREATED", Display("Created")).
		WithChoice("PENDING", Display("Pending"), Value("custom_pending"), Param("weight", 10)).
		WithChoice("ON_HOLD", Display("On Hold")).
		WithSubset("VALID", "CREATED", "PENDING")
}

// OrderStatusNested extends the standard fixture with a nested INTERNAL
// registry.
func OrderStatusNested() *Decl {
	return OrderStatus().
		WithNested(Registry("INTERNAL").
			WithChoice("REVIEW", Display("On Review")))
}
