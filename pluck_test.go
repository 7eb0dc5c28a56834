package choices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pluckFixture(t *testing.T) *Registry {
	t.Helper()
	r, err := New("Const").
		Add("VAL1", "Value 1", Param("par1", "Param 1.1")).
		Add("VAL2", "Value 2", Param("par2", "Param 2.2")).
		Add("VAL3", "Value 3", Param("par1", "Param 3.1"), Param("par2", "Param 3.2")).
		Compile()
	require.NoError(t, err)
	return r
}

func TestPluck_SingleAttribute(t *testing.T) {
	r := pluckFixture(t)

	rows := r.Pluck("par1")
	require.Equal(t, [][]any{
		{"Param 1.1"},
		{Absent},
		{"Param 3.1"},
	}, rows)
}

func TestPluck_MultipleAttributesWithSentinel(t *testing.T) {
	r := pluckFixture(t)

	rows := r.Pluck("value", "par1")
	require.Equal(t, [][]any{
		{"val1", "Param 1.1"},
		{"val2", Absent},
		{"val3", "Param 3.1"},
	}, rows)
}

func TestPluckKeyed(t *testing.T) {
	r := pluckFixture(t)

	rows := r.PluckKeyed("value", "par1")
	require.Equal(t, []PluckRow{
		{Key: "VAL1", Values: []any{"val1", "Param 1.1"}},
		{Key: "VAL2", Values: []any{"val2", Absent}},
		{Key: "VAL3", Values: []any{"val3", "Param 3.1"}},
	}, rows)
}

func TestPluck_DisplayAttribute(t *testing.T) {
	r := pluckFixture(t)

	rows := r.Pluck("display")
	require.Equal(t, [][]any{
		{Text("Value 1")},
		{Text("Value 2")},
		{Text("Value 3")},
	}, rows)
}

func TestPluck_OnDerivedRegistry(t *testing.T) {
	r := pluckFixture(t)

	sub, err := r.Extract("VAL2", "VAL3")
	require.NoError(t, err)

	rows := sub.Pluck("par2")
	require.Equal(t, [][]any{
		{"Param 2.2"},
		{"Param 3.2"},
	}, rows)
}

func TestAbsent_String(t *testing.T) {
	require.Equal(t, "<absent>", Absent.String())
}
