package cmd

import (
	"context"

	"github.com/beasleyjonm/ORION/internal/iocord19"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCord19Cmd returns the cord19 command.
func getCord19Cmd() *cobra.Command {
	var fetch bool

	cord19Cmd := &cobra.Command{
		Use:   "cord19",
		Short: "Extract graphs from CORD-19 annotation files",
		Long: `Extract node and edge tables from the CORD-19 annotation, phenotype
and clinical trial files.

The command reads six files from the data directory (Scibite and
Scigraph node/edge dumps, a COVID phenotype list, and a drug trial
list), normalizes every node identifier, and writes
Cord19_node_file.tsv and Cord19_edge_file.tsv.

With --fetch the source files are first downloaded from the URLs in
~/.config/orion/sources.yaml.

Examples:
  # Parse files already present in the data directory
  orion cord19

  # Download the sources first
  orion cord19 --fetch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCord19(cmd, fetch)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cord19Cmd.Flags().BoolVarP(
		&fetch, "fetch", "f", false,
		"download source files before parsing",
	)

	return cord19Cmd
}

func runCord19(cmd *cobra.Command, fetch bool) error {
	ctx := context.Background()

	if cmd.Flags().Changed("fetch") {
		cfg.Update([]config.Option{config.OptCord19Fetch(fetch)})
	}

	return iocord19.New(cfg).Load(ctx)
}
