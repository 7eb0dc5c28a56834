package declfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/choices"
	"github.com/zjrosen/choices/internal/declfile"
)

const orderStatusYAML = `
registries:
  - name: ORDER_STATUS
    choices:
      - key: CREATED
        display: Created
      - key: PENDING
        display: Pending
        params:
          help_text: Awaiting review
          weight: 10
      - key: ON_HOLD
        display: On Hold
        value: custom_on_hold
    subsets:
      - name: VALID
        keys: [CREATED, ON_HOLD]
    nested:
      - name: INTERNAL
        choices:
          - key: REVIEW
            display: On Review
`

func writeDecl(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_CompilesRegistries(t *testing.T) {
	path := writeDecl(t, orderStatusYAML)

	loaded, err := declfile.Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, path, loaded.Path)
	require.NotEmpty(t, loaded.LoadID)
	require.Len(t, loaded.Registries, 1)

	r := loaded.Registries[0]
	require.Equal(t, "ORDER_STATUS", r.Name())
	require.Equal(t, []any{"created", "pending", "custom_on_hold"}, r.Values())
	require.True(t, r.Contains("custom_on_hold"))
	require.False(t, r.Contains("on_hold"))
}

func TestLoad_ParamsKeepOrder(t *testing.T) {
	path := writeDecl(t, orderStatusYAML)

	loaded, err := declfile.Load(path, nil)
	require.NoError(t, err)

	pending := loaded.Registries[0].MustGet("PENDING")
	require.Equal(t, []choices.ParamPair{
		{Name: "help_text", Value: "Awaiting review"},
		{Name: "weight", Value: 10},
	}, pending.Params())
}

func TestLoad_SubsetsAndNested(t *testing.T) {
	path := writeDecl(t, orderStatusYAML)

	loaded, err := declfile.Load(path, nil)
	require.NoError(t, err)
	r := loaded.Registries[0]

	valid := r.MustChild("VALID")
	require.Equal(t, []any{"created", "custom_on_hold"}, valid.Values())

	internal := r.MustChild("INTERNAL")
	require.Equal(t, []any{"review"}, internal.Values())
}

func TestLoad_DuplicateValueSurfacesWithFileContext(t *testing.T) {
	path := writeDecl(t, `
registries:
  - name: BAD
    choices:
      - key: A
        display: One
      - key: B
        display: Two
        value: a
`)

	_, err := declfile.Load(path, nil)
	require.ErrorIs(t, err, choices.ErrDuplicateValue)
	require.Contains(t, err.Error(), path)
}

func TestLoad_UnknownSubsetKeyFails(t *testing.T) {
	path := writeDecl(t, `
registries:
  - name: BAD
    choices:
      - key: A
        display: One
    subsets:
      - name: S
        keys: [A, MISSING]
`)

	_, err := declfile.Load(path, nil)
	require.ErrorIs(t, err, choices.ErrUnknownKey)
}

func TestLoad_MissingDisplayFails(t *testing.T) {
	path := writeDecl(t, `
registries:
  - name: BAD
    choices:
      - key: A
`)

	_, err := declfile.Load(path, nil)
	require.ErrorContains(t, err, "missing display")
}

func TestLoad_DisplayKeyWithoutCatalogFails(t *testing.T) {
	path := writeDecl(t, `
registries:
  - name: BAD
    choices:
      - key: A
        display_key: order.a
`)

	_, err := declfile.Load(path, nil)
	require.ErrorContains(t, err, "locale catalog")
}

type staticLabels map[string]string

func (s staticLabels) Display(key string) choices.Display {
	return choices.Lazy(func() string { return s[key] })
}

func TestLoad_DisplayKeyResolvesLazily(t *testing.T) {
	path := writeDecl(t, `
registries:
  - name: ORDER
    choices:
      - key: CREATED
        display_key: order.created
`)

	labels := staticLabels{"order.created": "Created"}
	loaded, err := declfile.Load(path, labels)
	require.NoError(t, err)
	require.Equal(t, []string{"Created"}, loaded.Registries[0].Displays())
}

func TestLoad_EmptyFileFails(t *testing.T) {
	path := writeDecl(t, "registries: []\n")

	_, err := declfile.Load(path, nil)
	require.ErrorContains(t, err, "no registries")
}

func TestLoadAll_DistinctLoadIDs(t *testing.T) {
	a := writeDecl(t, orderStatusYAML)
	b := writeDecl(t, orderStatusYAML)

	loaded, err := declfile.LoadAll([]string{a, b}, nil)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.NotEqual(t, loaded[0].LoadID, loaded[1].LoadID)
}
