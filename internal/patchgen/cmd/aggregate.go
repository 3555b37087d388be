package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"patchgen/internal/patch"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [out_toml] [records]...",
	Short: "Aggregate normalized record files into a patch config",
	Long: `Aggregate reads one or more normalized record files, skipping blank and
comment lines, and writes a single patch configuration. Descriptor order
follows file argument order, then line order within each file.`,
	Example: `
# Merge two record files into one patch config
patchgen aggregate patches.toml music_id.txt difficulty.txt
  `,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAggregate(args[0], args[1:])
	},
}

func runAggregate(outPath string, recordPaths []string) error {
	descriptors, err := patch.ReadFiles(recordPaths...)
	if err != nil {
		return err
	}
	if err := patch.WriteFile(outPath, descriptors); err != nil {
		return err
	}

	slog.Info("wrote patch config",
		"path", outPath,
		"patches", len(descriptors),
		"inputs", len(recordPaths))
	return nil
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}
