package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/choices/internal/declfile"
	"github.com/zjrosen/choices/internal/log"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Compile declaration files and report errors",
		Long: `Parses and compiles each declaration file, reporting the first
compilation error. File paths default to the 'paths' list in the config.`,
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

			loaded, err := declfile.LoadAll(paths, labels)
			if err != nil {
				return err
			}

			registries := 0
			entries := 0
			for _, l := range loaded {
				for _, r := range l.Registries {
					registries++
					entries += r.Len()
				}
			}
			log.Info(log.CatCLI, "Validation passed",
				"files", len(loaded), "registries", registries)
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d file(s), %d registries, %d entries\n",
				len(loaded), registries, entries)
			return nil
		},
	}
}
