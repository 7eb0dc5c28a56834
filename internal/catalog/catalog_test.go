package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/choices"
	"github.com/zjrosen/choices/internal/catalog"
)

func writeLocale(t *testing.T, dir, locale, content string) string {
	t.Helper()
	path := filepath.Join(dir, locale+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCatalog_ResolveFromTable(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", "order.created: Created\norder.pending: Pending\n")

	c := catalog.New("en")
	require.NoError(t, c.LoadDir(dir))

	require.Equal(t, "Created", c.Resolve("order.created"))
	require.Equal(t, "Pending", c.Resolve("order.pending"))
}

func TestCatalog_MissingKeyFallsBackToKey(t *testing.T) {
	c := catalog.New("en")
	require.Equal(t, "order.unknown", c.Resolve("order.unknown"))
}

func TestCatalog_LocaleSwitch(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", "order.created: Created\n")
	writeLocale(t, dir, "de", "order.created: Erstellt\n")

	c := catalog.New("en")
	require.NoError(t, c.LoadDir(dir))

	d := c.Display("order.created")
	require.Equal(t, "Created", d.DisplayText())

	// The same lazy handle resolves against the new locale.
	c.SetLocale("de")
	require.Equal(t, "de", c.Locale())
	require.Equal(t, "Erstellt", d.DisplayText())
}

func TestCatalog_DisplayIsLazy(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", "order.created: Created\n")

	c := catalog.New("en")
	d := c.Display("order.created")

	// The handle was created before the table was loaded; resolution
	// happens at request time.
	require.NoError(t, c.LoadDir(dir))
	require.Equal(t, "Created", d.DisplayText())
}

func TestCatalog_DisplayWiresIntoRegistry(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", "order.created: Created\norder.on_hold: On Hold\n")

	c := catalog.New("en")
	require.NoError(t, c.LoadDir(dir))

	r, err := choices.New("OrderStatus").
		Add("CREATED", c.Display("order.created")).
		Add("ON_HOLD", c.Display("order.on_hold"), choices.Value("custom_on_hold")).
		Compile()
	require.NoError(t, err)

	require.Equal(t, []string{"Created", "On Hold"}, r.Displays())
}

func TestCatalog_ReloadFlushesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeLocale(t, dir, "en", "order.created: Created\n")

	c := catalog.New("en")
	require.NoError(t, c.LoadDir(dir))
	require.Equal(t, "Created", c.Resolve("order.created"))

	require.NoError(t, os.WriteFile(path, []byte("order.created: Opened\n"), 0644))
	require.NoError(t, c.LoadLocaleFile("en", path))
	require.Equal(t, "Opened", c.Resolve("order.created"))
}

func TestCatalog_BadYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", "order.created: [unclosed\n")

	c := catalog.New("en")
	require.Error(t, c.LoadDir(dir))
}
