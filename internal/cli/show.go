package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/choices"
	"github.com/zjrosen/choices/internal/declfile"
)

type showEntry struct {
	Key     string         `json:"key"`
	Value   any            `json:"value"`
	Display string         `json:"display"`
	Params  map[string]any `json:"params,omitempty"`
}

type showRegistry struct {
	Name    string      `json:"name"`
	Entries []showEntry `json:"entries"`
	Subsets []string    `json:"subsets,omitempty"`
}

func newShowCmd() *cobra.Command {
	var (
		asJSON  bool
		subset  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "show [files...]",
		Short: "Print compiled registries",
		Long: `Compiles declaration files and prints each registry's entries with
their keys, values, display labels and params. --subset restricts output
to a named subset; --param name=value keeps only matching entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			paths, err := declPaths(cfg, args)
			if err != nil {
				return err
			}
			labels, err := labelProvider(cfg)
			if err != nil {
				return err
			}

			where, err := parseFilters(filters)
			if err != nil {
				return err
			}

			loaded, err := declfile.LoadAll(paths, labels)
			if err != nil {
				return err
			}

			var out []showRegistry
			for _, l := range loaded {
				for _, r := range l.Registries {
					if subset != "" {
						child, err := r.Child(subset)
						if err != nil {
							continue
						}
						r = child
					}
					out = append(out, buildShowRegistry(r, where))
				}
			}
			if subset != "" && len(out) == 0 {
				return fmt.Errorf("no registry declares a subset named %q", subset)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			renderText(cmd, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().StringVar(&subset, "subset", "", "show only the named subset of each registry")
	cmd.Flags().StringArrayVar(&filters, "param", nil,
		"filter entries by attribute, name=value (repeatable)")

	return cmd
}

// parseFilters turns name=value pairs into attribute filters. Values go
// through YAML scalar decoding so --param weight=10 matches an int param.
func parseFilters(raw []string) ([]choices.Filter, error) {
	out := make([]choices.Filter, 0, len(raw))
	for _, f := range raw {
		name, rawVal, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad --param %q: want name=value", f)
		}
		var val any
		if err := yaml.Unmarshal([]byte(rawVal), &val); err != nil {
			val = rawVal
		}
		out = append(out, choices.Where(name, val))
	}
	return out, nil
}

func buildShowRegistry(r *choices.Registry, where []choices.Filter) showRegistry {
	sr := showRegistry{Name: r.Name(), Subsets: r.ChildNames()}
	for _, item := range r.Items(where...) {
		se := showEntry{
			Key:     item.Key,
			Value:   item.Entry.Value(),
			Display: item.Entry.DisplayText(),
		}
		if params := item.Entry.Params(); len(params) > 0 {
			se.Params = make(map[string]any, len(params))
			for _, p := range params {
				se.Params[p.Name] = p.Value
			}
		}
		sr.Entries = append(sr.Entries, se)
	}
	return sr
}

func renderText(cmd *cobra.Command, registries []showRegistry) {
	w := cmd.OutOrStdout()
	for i, r := range registries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", r.Name)
		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  KEY\tVALUE\tDISPLAY\tPARAMS")
		for _, e := range r.Entries {
			fmt.Fprintf(tw, "  %s\t%v\t%s\t%s\n", e.Key, e.Value, e.Display, formatParams(e.Params))
		}
		tw.Flush()
		if len(r.Subsets) > 0 {
			fmt.Fprintf(w, "  subsets: %s\n", strings.Join(r.Subsets, ", "))
		}
	}
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for name, value := range params {
		parts = append(parts, fmt.Sprintf("%s=%v", name, value))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
