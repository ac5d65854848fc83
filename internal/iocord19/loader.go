// Package iocord19 converts the CORD-19 literature-association tables
// (SciBite and SciGraph term co-occurrence, COVID phenotypes, DrugBank
// trials) into KGX node and edge tables.
package iocord19

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beasleyjonm/ORION/internal/ioextract"
	"github.com/beasleyjonm/ORION/internal/iofetch"
	"github.com/beasleyjonm/ORION/internal/ionorm"
	"github.com/beasleyjonm/ORION/internal/iosources"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/beasleyjonm/ORION/pkg/graph"
	"github.com/beasleyjonm/ORION/pkg/orion"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
)

// source file names inside the data directory
const (
	scibiteNodesFile  = "CV19_nodes.txt"
	scibiteEdgesFile  = "CV19_edges.txt"
	scigraphNodesFile = "normalized.txt"
	scigraphEdgesFile = "pairs.txt"
	phenotypesFile    = "covid_phenotypes.csv"
	trialsFile        = "trials.txt"
)

const (
	associatedWithPredicate = "SEMMEDDB:ASSOCIATED_WITH"
	hasPhenotypePredicate   = "RO:0002200"
	covidNodeID             = "MONDO:0100096"
)

const normChunkSize = 1000

type loader struct {
	cfg  *config.Config
	norm *ionorm.Normalizer
}

// New creates the CORD-19 loader.
func New(cfg *config.Config) orion.Loader {
	return &loader{
		cfg:  cfg,
		norm: ionorm.New(cfg.Normalizer.URL, normChunkSize),
	}
}

// Load optionally fetches the source files, extracts nodes and edges
// from all six tables, normalizes node identities and writes the
// output tables.
func (l *loader) Load(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting CORD-19 processing")

	if l.cfg.Cord19.Fetch {
		if err := l.fetch(ctx); err != nil {
			return FetchError(err)
		}
	}

	ext := &ioextract.Extractor{}
	if err := l.extractAll(ext); err != nil {
		return err
	}

	cache := ionorm.NewCache()
	l.norm.Normalize(ext.Nodes, cache, anyNode)

	nodePath := filepath.Join(l.cfg.DataDir, "Cord19_node_file.tsv")
	edgePath := filepath.Join(l.cfg.DataDir, "Cord19_edge_file.tsv")
	w, err := graph.NewWriter(nodePath, edgePath, graph.EdgeHeaderWithSource)
	if err != nil {
		return OutputError(nodePath, err)
	}
	defer w.Close()

	seen := make(map[string]struct{}, len(ext.Edges))
	for _, e := range ext.Edges {
		line := e.Line()
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		if err = w.WriteEdgeLine(line); err != nil {
			return OutputError(edgePath, err)
		}
	}

	if err = w.WriteUniqueNodes(ext.Nodes); err != nil {
		return OutputError(nodePath, err)
	}
	if err = w.Close(); err != nil {
		return OutputError(edgePath, err)
	}

	slog.Info("CORD-19 processing complete",
		"nodes", humanize.Comma(int64(len(ext.Nodes))),
		"edges", len(seen),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// fetch downloads the source files listed in sources.yaml.
func (l *loader) fetch(ctx context.Context) error {
	sources, err := iosources.Load(l.cfg.HomeDir)
	if err != nil {
		return err
	}
	urls := iosources.URLs(sources.Cord19)
	return iofetch.Files(ctx, urls, l.cfg.DataDir, l.cfg.JobsNumber)
}

// extractAll runs one extraction pass per source table.
func (l *loader) extractAll(ext *ioextract.Extractor) error {
	// Both node files share the id/category/name layout.
	for _, name := range []string{scibiteNodesFile, scigraphNodesFile} {
		err := l.extractFile(ext, name, ioextract.Options{
			Delim:       '\t',
			HasHeader:   true,
			MinFields:   3,
			SubjectID:   func(f []string) string { return f[0] },
			SubjectName: func(f []string) string { return f[2] },
		})
		if err != nil {
			return err
		}
	}

	// SciBite term pairs; identifiers carry stray underscores.
	err := l.extractFile(ext, scibiteEdgesFile, ioextract.Options{
		Delim:     '\t',
		HasHeader: true,
		MinFields: 2,
		Source:    "infores:cord19-scibite",
		SubjectID: func(f []string) string {
			return strings.ReplaceAll(f[0], "_", "")
		},
		ObjectID: func(f []string) string {
			return strings.ReplaceAll(f[1], "_", "")
		},
		Predicate: func(f []string) string {
			return associatedWithPredicate
		},
	})
	if err != nil {
		return err
	}

	// SciGraph term pairs.
	err = l.extractFile(ext, scigraphEdgesFile, ioextract.Options{
		Delim:     '\t',
		HasHeader: true,
		MinFields: 2,
		Source:    "infores:cord19",
		SubjectID: func(f []string) string { return f[0] },
		ObjectID:  func(f []string) string { return f[1] },
		Predicate: func(f []string) string {
			return associatedWithPredicate
		},
	})
	if err != nil {
		return err
	}

	// COVID phenotypes hang off the fixed disease node.
	err = l.extractFile(ext, phenotypesFile, ioextract.Options{
		Delim:     ',',
		HasHeader: true,
		MinFields: 2,
		Source:    "infores:cord19",
		SubjectID: func(f []string) string { return covidNodeID },
		ObjectID:  func(f []string) string { return f[1] },
		Predicate: func(f []string) string {
			return hasPhenotypePredicate
		},
	})
	if err != nil {
		return err
	}

	// DrugBank trials.
	return l.extractFile(ext, trialsFile, ioextract.Options{
		Delim:     '\t',
		HasHeader: true,
		MinFields: 3,
		Source:    "infores:drugbank",
		SubjectID: func(f []string) string { return f[0] },
		ObjectID:  func(f []string) string { return f[2] },
		Predicate: func(f []string) string {
			return "ROBOKOVID:" + f[1]
		},
	})
}

func (l *loader) extractFile(
	ext *ioextract.Extractor, name string, opt ioextract.Options,
) error {
	path := filepath.Join(l.cfg.DataDir, name)
	f, err := os.Open(path)
	if err != nil {
		return InputFileError(path, err)
	}
	defer f.Close()

	if err = ext.Extract(f, opt); err != nil {
		return InputFileError(path, err)
	}
	return nil
}

// anyNode sends every extracted node through normalization.
func anyNode(graph.NodeRow) bool { return true }
