package cmd

import (
	"context"
	"path/filepath"

	"github.com/beasleyjonm/ORION/internal/iotaxon"
	"github.com/beasleyjonm/ORION/internal/iouniref"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getUnirefCmd returns the uniref command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getUnirefCmd() *cobra.Command {
	var (
		taxonomyFile string
		indexSuffix  string
	)

	unirefCmd := &cobra.Command{
		Use:   "uniref [flags] dataset ...",
		Short: "Extract similarity graphs from UniRef clusters",
		Long: `Extract node and edge tables from UniRef similarity clusters.

For each dataset base name (uniref50, uniref90, uniref100) the command
expects two files in the data directory:
  <name>.xml                       the UniRef XML dump
  <name>_taxon_file_indexes.txt    byte offsets of records whose taxa
                                   are in the target set

Records are recovered from the approximate offsets, decomposed into
cluster nodes (family, common taxon, representative and member
proteins), normalized against the Node Normalization service, then
written as:
  <name>_Virus_node_file.tsv
  <name>_Virus_edge_file.tsv

The taxonomy file is the NCBI nodes.dmp dump; only taxa flagged as
viral are accepted into the graph.

Examples:
  # Process a single dataset
  orion uniref uniref100 --taxonomy nodes.dmp

  # Process all three, reusing one normalization cache
  orion uniref uniref50 uniref90 uniref100 --taxonomy nodes.dmp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUniref(cmd, args, taxonomyFile, indexSuffix)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	unirefCmd.Flags().StringVarP(
		&taxonomyFile, "taxonomy", "t", "nodes.dmp",
		"NCBI taxonomy nodes file, relative to the data directory",
	)
	unirefCmd.Flags().StringVarP(
		&indexSuffix, "index-suffix", "i", "",
		"offset index file name suffix",
	)

	return unirefCmd
}

func runUniref(
	cmd *cobra.Command,
	args []string,
	taxonomyFile string,
	indexSuffix string,
) error {
	ctx := context.Background()

	opts := []config.Option{config.OptUniRefFiles(args)}
	if cmd.Flags().Changed("index-suffix") {
		opts = append(opts, config.OptUniRefIndexSuffix(indexSuffix))
	}
	cfg.Update(opts)

	taxonomyPath := filepath.Join(cfg.DataDir, taxonomyFile)
	taxa, err := iotaxon.Load(taxonomyPath, config.TypeVirus)
	if err != nil {
		return err
	}

	gn.Info(
		"Loaded <em>%d</em> viral taxa from <em>%s</em>",
		len(taxa), taxonomyFile,
	)

	return iouniref.New(cfg, taxa).Load(ctx)
}
