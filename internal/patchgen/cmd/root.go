package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"patchgen/internal/patchgen/log"
	"patchgen/internal/resolve"
)

var rootCmd = &cobra.Command{
	Use:   "patchgen",
	Short: "Build instruction patch configs from disassembler exports",
	Long: `Patchgen converts immediate-value instruction occurrences exported from a
disassembler into a machine-applicable patch configuration.

The resolve stage turns export lines into normalized records, recovering
Class::Method names for anonymous symbols by searching a decompiled source
listing. The aggregate stage merges normalized record files into a single
patch configuration.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON pipeline config (defaults built in)")
}

// pipelineConfig returns the defaults unless a config file was given.
func pipelineConfig(cmd *cobra.Command) (resolve.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return resolve.Default(), nil
	}
	return resolve.LoadConfig(path)
}

func Execute() {
	// Bypass fang's markdown rendering when output is being piped, so
	// normalized records stay byte-exact for downstream tools.
	if !term.IsTerminal(os.Stdout.Fd()) {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
