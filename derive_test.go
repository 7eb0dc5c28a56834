package choices

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// === Extract ===

func TestExtract_SelectedKeys(t *testing.T) {
	r := testRegistry(t)

	ex, err := r.Extract("VAL1", "VAL2", "VAL6")
	require.NoError(t, err)
	require.Equal(t, "TestChoices.Subset", ex.Name())
	require.Equal(t, []string{"VAL1", "VAL2", "VAL6"}, ex.Keys())

	// Entries are shared, not copied.
	require.Same(t, r.MustGet("VAL6"), ex.MustGet("VAL6"))
	require.Equal(t, "Param 6.1", ex.MustGet("VAL6").ParamOr("param1", nil))
}

func TestExtract_ParentOrderWins(t *testing.T) {
	r := testRegistry(t)

	ex, err := r.Extract("VAL5", "VAL1", "VAL3")
	require.NoError(t, err)
	require.Equal(t, []string{"VAL1", "VAL3", "VAL5"}, ex.Keys())
}

func TestExtract_EntryAndRegistryRefs(t *testing.T) {
	r := testRegistry(t)

	// An *Entry names its own key; a *Registry splices in all of its keys.
	ex, err := r.Extract(r.MustGet("VAL4"), r.MustChild("SUBSET2"), "VAL6")
	require.NoError(t, err)
	require.Equal(t, []string{"VAL3", "VAL4", "VAL5", "VAL6"}, ex.Keys())
}

func TestExtract_UnknownKeyFails(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Extract("VAL1", "VAL0")
	require.ErrorIs(t, err, ErrUnknownKey)
	require.Contains(t, err.Error(), "VAL0")
}

func TestExtract_BadRefTypeFails(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Extract(42)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestExtractAs_Name(t *testing.T) {
	r := testRegistry(t)

	ex, err := r.ExtractAs("ExtractedSubset", "VAL1", "VAL2")
	require.NoError(t, err)
	require.Equal(t, "ExtractedSubset", ex.Name())
}

func TestExtract_MatchesDeclaredSubset(t *testing.T) {
	r := testRegistry(t)

	ex, err := r.Extract("VAL3", "VAL5")
	require.NoError(t, err)
	require.Equal(t, r.MustChild("SUBSET2").Values(), ex.Values())
}

// === Exclude ===

func TestExclude_RemainingKeys(t *testing.T) {
	r := testRegistry(t)

	exd, err := r.Exclude("VAL3", "VAL4", "VAL5", "VAL7")
	require.NoError(t, err)
	require.Equal(t, []string{"VAL1", "VAL2", "VAL6"}, exd.Keys())
}

func TestExclude_UnknownKeyFails(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Exclude("VAL0")
	require.ErrorIs(t, err, ErrUnknownKey)
}

// === Chaining ===

func TestDerive_SubsetOfSubset(t *testing.T) {
	r := testRegistry(t)

	s2 := r.MustChild("SUBSET2")
	ex, err := s2.Extract("VAL5")
	require.NoError(t, err)
	require.Equal(t, []any{"val5"}, ex.Values())

	exd, err := s2.Exclude("VAL3")
	require.NoError(t, err)
	require.Equal(t, ex.Values(), exd.Values())
	require.Equal(t, "TestChoices.SUBSET2.Subset", exd.Name())
}

func TestDerive_SubsetMembershipSharesValues(t *testing.T) {
	r := testRegistry(t)

	s1 := r.MustChild("SUBSET1")
	require.True(t, s1.Contains("val2"))
	require.True(t, s1.Contains(r.MustGet("VAL1")))
	require.False(t, s1.Contains("val4"))
}

// === Partition property ===

func TestExtractExcludePartition(t *testing.T) {
	r := testRegistry(t)

	rapid.Check(t, func(rt *rapid.T) {
		all := r.Keys()
		picked := rapid.SliceOfDistinct(
			rapid.SampledFrom(all),
			func(k string) string { return k },
		).Draw(rt, "picked")

		refs := make([]KeyRef, len(picked))
		for i, k := range picked {
			refs[i] = k
		}

		ex, err := r.Extract(refs...)
		if err != nil {
			rt.Fatalf("extract: %v", err)
		}
		exd, err := r.Exclude(refs...)
		if err != nil {
			rt.Fatalf("exclude: %v", err)
		}

		// The two halves reconstruct the parent exactly once.
		union, err := ex.Union(exd)
		if err != nil {
			rt.Fatalf("union: %v", err)
		}
		if union.Len() != r.Len() {
			rt.Fatalf("partition lost entries: %d != %d", union.Len(), r.Len())
		}
		for _, v := range r.Values() {
			if !union.Contains(v) {
				rt.Fatalf("value %v missing from partition union", v)
			}
		}

		// And they are disjoint.
		both, err := ex.Intersect(exd)
		if err != nil {
			rt.Fatalf("intersect: %v", err)
		}
		if both.Len() != 0 {
			rt.Fatalf("partition halves overlap: %v", both.Values())
		}
	})
}
