package cmd

import (
	"context"

	"github.com/beasleyjonm/ORION/internal/ioproteome"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getProteomeCmd returns the proteome command.
func getProteomeCmd() *cobra.Command {
	var outName string

	proteomeCmd := &cobra.Command{
		Use:   "proteome [flags] annotation-file ...",
		Short: "Extract gene/taxon/term graphs from GOA annotations",
		Long: `Extract node and edge tables from viral proteome GOA annotation
files.

Each annotation row yields a gene, its taxon, and a GO term. The GO
term's normalized category decides the edge between gene and term:
  molecular activity    term enables the gene product
  biological process    gene is actively involved in the process
  cellular component    term has the gene product as a part

Every gene also gets an in_taxon edge. Outputs are written to the data
directory as <out-name>_node_file.tsv and <out-name>_edge_file.tsv.

Example:
  orion proteome 9606.goa 10239.goa`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runProteome(cmd, args, outName)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	proteomeCmd.Flags().StringVarP(
		&outName, "out-name", "o", "",
		"prefix for the output node/edge tables",
	)

	return proteomeCmd
}

func runProteome(
	cmd *cobra.Command,
	args []string,
	outName string,
) error {
	ctx := context.Background()

	opts := []config.Option{config.OptProteomeFiles(args)}
	if cmd.Flags().Changed("out-name") {
		opts = append(opts, config.OptProteomeOutName(outName))
	}
	cfg.Update(opts)

	return ioproteome.New(cfg).Load(ctx)
}
