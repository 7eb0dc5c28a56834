// Package declfile loads YAML declaration files and compiles them into
// registries. A file holds one or more registry declarations:
//
//	registries:
//	  - name: ORDER_STATUS
//	    choices:
//	      - key: CREATED
//	        display: Created
//	      - key: ON_HOLD
//	        display_key: order.on_hold
//	        value: custom_on_hold
//	        params:
//	          help_text: Kept back for manual review
//	    subsets:
//	      - name: VALID
//	        keys: [CREATED, ON_HOLD]
//	    nested:
//	      - name: INTERNAL
//	        choices:
//	          - key: REVIEW
//	            display: On Review
//
// display is literal text; display_key resolves through the locale catalog
// at render time. Params keep their YAML order.
package declfile

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/choices"
	"github.com/zjrosen/choices/internal/log"
)

// LabelProvider resolves display_key references to lazy display handles.
type LabelProvider interface {
	Display(key string) choices.Display
}

// File is the root structure of a declaration file.
type File struct {
	Registries []RegistryDef `yaml:"registries"`
}

// RegistryDef declares a single registry.
type RegistryDef struct {
	Name    string        `yaml:"name"`
	Choices []ChoiceDef   `yaml:"choices"`
	Subsets []SubsetDef   `yaml:"subsets"`
	Nested  []RegistryDef `yaml:"nested"`
}

// ChoiceDef declares one entry. Exactly one of Display and DisplayKey must
// be set; Value is optional and defaults to the lowercased key.
type ChoiceDef struct {
	Key        string    `yaml:"key"`
	Display    string    `yaml:"display"`
	DisplayKey string    `yaml:"display_key"`
	Value      yaml.Node `yaml:"value"`
	Params     yaml.Node `yaml:"params"`
}

// SubsetDef declares a named subset of sibling entries.
type SubsetDef struct {
	Name string   `yaml:"name"`
	Keys []string `yaml:"keys"`
}

// Loaded is the result of compiling one declaration file. LoadID is unique
// per load, correlating log lines across watch-mode reloads of the same
// path.
type Loaded struct {
	Path       string
	LoadID     string
	Registries []*choices.Registry
}

// Load parses and compiles one declaration file. labels may be nil when no
// declaration uses display_key.
func Load(path string, labels LabelProvider) (*Loaded, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI args
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Registries) == 0 {
		return nil, fmt.Errorf("%s: no registries declared", path)
	}

	loaded := &Loaded{
		Path:   path,
		LoadID: uuid.NewString(),
	}
	for _, def := range file.Registries {
		r, err := compileDef(def, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		loaded.Registries = append(loaded.Registries, r)
		log.Debug(log.CatDecl, "Registry compiled",
			"file", path, "registry", r.Name(), "entries", r.Len(), "load_id", loaded.LoadID)
	}
	return loaded, nil
}

// LoadAll loads every path, stopping at the first failure.
func LoadAll(paths []string, labels LabelProvider) ([]*Loaded, error) {
	out := make([]*Loaded, 0, len(paths))
	for _, path := range paths {
		loaded, err := Load(path, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}

func compileDef(def RegistryDef, labels LabelProvider) (*choices.Registry, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("registry declaration missing a name")
	}

	b := choices.New(def.Name)
	for _, c := range def.Choices {
		opts, err := choiceOptions(c)
		if err != nil {
			return nil, fmt.Errorf("registry %s: choice %s: %w", def.Name, c.Key, err)
		}
		display, err := choiceDisplay(c, labels)
		if err != nil {
			return nil, fmt.Errorf("registry %s: choice %s: %w", def.Name, c.Key, err)
		}
		b.Add(c.Key, display, opts...)
	}
	for _, s := range def.Subsets {
		b.Subset(s.Name, s.Keys...)
	}
	for _, n := range def.Nested {
		nested, err := compileDef(n, labels)
		if err != nil {
			return nil, err
		}
		b.Nested(n.Name, nested)
	}

	r, err := b.Compile()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func choiceDisplay(c ChoiceDef, labels LabelProvider) (any, error) {
	switch {
	case c.Display != "" && c.DisplayKey != "":
		return nil, fmt.Errorf("display and display_key are mutually exclusive")
	case c.DisplayKey != "":
		if labels == nil {
			return nil, fmt.Errorf("display_key %q requires a locale catalog", c.DisplayKey)
		}
		return labels.Display(c.DisplayKey), nil
	case c.Display != "":
		return c.Display, nil
	default:
		return nil, fmt.Errorf("missing display")
	}
}

func choiceOptions(c ChoiceDef) ([]choices.EntryOption, error) {
	var opts []choices.EntryOption

	if !c.Value.IsZero() {
		var value any
		if err := c.Value.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode value: %w", err)
		}
		opts = append(opts, choices.Value(value))
	}

	if !c.Params.IsZero() {
		if c.Params.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("params must be a mapping")
		}
		// Walk the raw mapping nodes to keep the declared param order,
		// which a map[string]any would lose.
		for i := 0; i+1 < len(c.Params.Content); i += 2 {
			name := c.Params.Content[i].Value
			var value any
			if err := c.Params.Content[i+1].Decode(&value); err != nil {
				return nil, fmt.Errorf("decode param %q: %w", name, err)
			}
			opts = append(opts, choices.Param(name, value))
		}
	}

	return opts, nil
}
