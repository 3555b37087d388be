package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"patchgen/internal/resolve"
	"patchgen/internal/search"
	"patchgen/internal/ui/colorize"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [occurrence_export] [decompiled_source]",
	Short: "Resolve an occurrence export into normalized records",
	Long: `Resolve filters an instruction occurrence export down to comparison and
move instructions on the code section, rebases their addresses, and resolves
anonymous function symbols against the decompiled source listing. Normalized
records are printed to standard output, one per instruction:

  0x<offset><TAB><Class::Method><TAB><instruction>`,
	Example: `
# Resolve an IDA occurrence export against dump.cs
patchgen resolve occurrences.txt dump.cs > music_id.txt

# With a custom pipeline config
patchgen resolve --config pipeline.json occurrences.txt dump.cs
  `,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig(cmd)
		if err != nil {
			return err
		}
		color := term.IsTerminal(os.Stdout.Fd())
		return runResolve(cfg, args[0], args[1], os.Stdout, color)
	},
}

func runResolve(cfg resolve.Config, exportPath, listingPath string, w io.Writer, color bool) error {
	f, err := os.Open(exportPath)
	if err != nil {
		return fmt.Errorf("occurrence export: %w", err)
	}
	defer f.Close()

	searcher, err := search.Open(listingPath)
	if err != nil {
		return err
	}

	infos, err := resolve.NewResolver(cfg, searcher).Run(f)
	if err != nil {
		return err
	}

	for _, ri := range infos {
		line := ri.Record()
		if color {
			line = colorize.Record(ri.Addr, ri.Label, ri.Instruction)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	slog.Debug("resolved occurrence export",
		"export", exportPath,
		"records", len(infos))
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
