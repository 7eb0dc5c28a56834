// Package testutil builds declaration fixtures for tests: in-memory YAML
// declaration documents written with a fluent builder, rendered to text or
// to a temp file.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type choiceData struct {
	key        string
	display    string
	displayKey string
	value      any
	params     []paramData
}

type paramData struct {
	name  string
	value any
}

type subsetData struct {
	name string
	keys []string
}

// Decl accumulates one registry declaration.
type Decl struct {
	name    string
	choices []choiceData
	subsets []subsetData
	nested  []*Decl
}

// Registry starts a registry declaration.
func Registry(name string) *Decl {
	return &Decl{name: name}
}

// WithChoice adds a choice with optional configuration.
func (d *Decl) WithChoice(key string, opts ...ChoiceOption) *Decl {
	c := choiceData{key: key}
	for _, opt := range opts {
		opt(&c)
	}
	d.choices = append(d.choices, c)
	return d
}

// WithSubset adds a named subset over sibling keys.
func (d *Decl) WithSubset(name string, keys ...string) *Decl {
	d.subsets = append(d.subsets, subsetData{name: name, keys: keys})
	return d
}

// WithNested adds a nested registry declaration.
func (d *Decl) WithNested(child *Decl) *Decl {
	d.nested = append(d.nested, child)
	return d
}

// ChoiceOption configures a choice during builder setup.
type ChoiceOption func(*choiceData)

// Display sets a literal display label.
func Display(text string) ChoiceOption {
	return func(c *choiceData) { c.display = text }
}

// DisplayKey sets a locale catalog reference instead of a literal label.
func DisplayKey(key string) ChoiceOption {
	return func(c *choiceData) { c.displayKey = key }
}

// Value sets an explicit stored value.
func Value(v any) ChoiceOption {
	return func(c *choiceData) { c.value = v }
}

// Param adds an extra attribute. Params render in the order given.
func Param(name string, value any) ChoiceOption {
	return func(c *choiceData) { c.params = append(c.params, paramData{name, value}) }
}

// yaml document mirror types

type fileDoc struct {
	Registries []regDoc `yaml:"registries"`
}

type regDoc struct {
	Name    string      `yaml:"name"`
	Choices []choiceDoc `yaml:"choices"`
	Subsets []subsetDoc `yaml:"subsets,omitempty"`
	Nested  []regDoc    `yaml:"nested,omitempty"`
}

type choiceDoc struct {
	Key        string    `yaml:"key"`
	Display    string    `yaml:"display,omitempty"`
	DisplayKey string    `yaml:"display_key,omitempty"`
	Value      any       `yaml:"value,omitempty"`
	Params     yaml.Node `yaml:"params,omitempty"`
}

type subsetDoc struct {
	Name string   `yaml:"name"`
	Keys []string `yaml:"keys"`
}

// File renders registries as a declaration document.
func File(t *testing.T, regs ...*Decl) string {
	t.Helper()
	doc := fileDoc{}
	for _, d := range regs {
		doc.Registries = append(doc.Registries, d.doc(t))
	}
	content, err := yaml.Marshal(doc)
	require.NoError(t, err)
	return string(content)
}

// WriteFile renders registries to decl.yaml in a fresh temp directory and
// returns the path.
func WriteFile(t *testing.T, regs ...*Decl) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decl.yaml")
	WriteFileAt(t, path, regs...)
	return path
}

// WriteFileAt renders registries to path, overwriting it. Used by watch
// tests that rewrite the same file.
func WriteFileAt(t *testing.T, path string, regs ...*Decl) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(File(t, regs...)), 0644))
}

func (d *Decl) doc(t *testing.T) regDoc {
	t.Helper()
	rd := regDoc{Name: d.name}
	for _, c := range d.choices {
		cd := choiceDoc{
			Key:        c.key,
			Display:    c.display,
			DisplayKey: c.displayKey,
			Value:      c.value,
		}
		if len(c.params) > 0 {
			cd.Params = paramsNode(t, c.params)
		}
		rd.Choices = append(rd.Choices, cd)
	}
	for _, s := range d.subsets {
		rd.Subsets = append(rd.Subsets, subsetDoc{Name: s.name, Keys: s.keys})
	}
	for _, n := range d.nested {
		rd.Nested = append(rd.Nested, n.doc(t))
	}
	return rd
}

// paramsNode builds a mapping node directly so params keep builder order.
func paramsNode(t *testing.T, params []paramData) yaml.Node {
	t.Helper()
	node := yaml.Node{Kind: yaml.MappingNode}
	for _, p := range params {
		var key, value yaml.Node
		require.NoError(t, key.Encode(p.name))
		require.NoError(t, value.Encode(p.value))
		node.Content = append(node.Content, &key, &value)
	}
	return node
}
