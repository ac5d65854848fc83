package ioproteome

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/beasleyjonm/ORION/internal/ionorm"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/beasleyjonm/ORION/pkg/graph"
	"github.com/beasleyjonm/ORION/pkg/orion"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
)

// normChunkSize stays small: taxon and ontology-term identifiers
// resolve through a slower service path than bulk taxa.
const normChunkSize = 10

type loader struct {
	cfg  *config.Config
	norm *ionorm.Normalizer
}

// New creates the viral proteome GOA loader.
func New(cfg *config.Config) orion.Loader {
	return &loader{
		cfg:  cfg,
		norm: ionorm.New(cfg.Normalizer.URL, normChunkSize),
	}
}

// Load parses all configured GOA files into one node/edge table pair.
// Unlike the UniRef loader the row set is collected whole before
// normalization: the combined files are small enough to hold in
// memory.
func (l *loader) Load(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting viral proteome processing",
		"files", len(l.cfg.Proteome.Files))

	nodePath := filepath.Join(
		l.cfg.DataDir, l.cfg.Proteome.OutName+"_node_file.tsv",
	)
	edgePath := filepath.Join(
		l.cfg.DataDir, l.cfg.Proteome.OutName+"_edge_file.tsv",
	)

	var total []graph.NodeRow

	bar := pb.Full.Start(len(l.cfg.Proteome.Files))
	bar.Set(pb.CleanOnFinish, true)
	for _, name := range l.cfg.Proteome.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := l.parseFile(name)
		if err != nil {
			return err
		}
		total = append(total, rows...)
		bar.Increment()
	}
	bar.Finish()

	total = dedupeRows(total)
	slog.Debug("Node list loaded",
		"rows", humanize.Comma(int64(len(total))))

	// The cache lives for this run only.
	cache := ionorm.NewCache()
	l.norm.Normalize(total, cache, normalizable)

	// Edge synthesis needs rows grouped by join key and ordered by
	// position within each group.
	sort.SliceStable(total, func(i, j int) bool {
		if total[i].Group != total[j].Group {
			return total[i].Group < total[j].Group
		}
		return total[i].NodeNum < total[j].NodeNum
	})

	w, err := graph.NewWriter(nodePath, edgePath, graph.EdgeHeaderWithSource)
	if err != nil {
		return OutputError(nodePath, err)
	}
	defer w.Close()

	edges := synthesizeEdges(total)
	slog.Debug("Unique edges found", "edges", len(edges))
	for _, line := range edges {
		if err = w.WriteEdgeLine(line); err != nil {
			return OutputError(edgePath, err)
		}
	}

	if err = w.WriteUniqueNodes(total); err != nil {
		return OutputError(nodePath, err)
	}
	if err = w.Close(); err != nil {
		return OutputError(edgePath, err)
	}

	slog.Info("Viral proteome processing complete",
		"rows", humanize.Comma(int64(len(total))),
		"edges", len(edges),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func (l *loader) parseFile(name string) ([]graph.NodeRow, error) {
	path := filepath.Join(l.cfg.DataDir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, InputFileError(path, err)
	}
	defer f.Close()

	rows, err := parseAnnotations(f)
	if err != nil {
		return nil, InputFileError(path, err)
	}
	return rows, nil
}

// normalizable selects the taxon and ontology-term rows; gene rows
// are constructed by hand and unknown to the service.
func normalizable(row graph.NodeRow) bool {
	return row.NodeNum == graph.TripletTaxon ||
		row.NodeNum == graph.TripletTerm
}
