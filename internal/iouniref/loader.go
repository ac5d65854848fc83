package iouniref

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beasleyjonm/ORION/internal/ionorm"
	"github.com/beasleyjonm/ORION/internal/iorecord"
	"github.com/beasleyjonm/ORION/internal/iotaxon"
	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/beasleyjonm/ORION/pkg/graph"
	"github.com/beasleyjonm/ORION/pkg/orion"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
)

const (
	// offsetBias compensates for the coarse index pointing into the
	// record body: the backward scan starts this many bytes before the
	// indexed position.
	offsetBias = 150

	// normChunkSize is the identifier count per normalization request.
	normChunkSize = 1000
)

type loader struct {
	cfg  *config.Config
	taxa iotaxon.TaxonSet
	norm *ionorm.Normalizer

	// cache is scoped to the loader instance, so normalization
	// results carry over between input files.
	cache *ionorm.Cache
}

// New creates the UniRef similarities loader. taxa is the set of
// target taxon identifiers built from the taxonomy dump.
func New(cfg *config.Config, taxa iotaxon.TaxonSet) orion.Loader {
	return &loader{
		cfg:   cfg,
		taxa:  taxa,
		norm:  ionorm.New(cfg.Normalizer.URL, normChunkSize),
		cache: ionorm.NewCache(),
	}
}

// Load processes every configured UniRef file into its own node/edge
// table pair.
func (l *loader) Load(ctx context.Context) error {
	for _, name := range l.cfg.UniRef.Files {
		if err := l.processFile(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) processFile(ctx context.Context, name string) error {
	start := time.Now()
	slog.Info("Starting UniRef file", "name", name)

	dataPath := filepath.Join(l.cfg.DataDir, name+".xml")
	indexPath := filepath.Join(
		l.cfg.DataDir,
		fmt.Sprintf("%s_%s", name, l.cfg.UniRef.IndexSuffix),
	)
	nodePath := filepath.Join(l.cfg.DataDir, name+"_Virus_node_file.tsv")
	edgePath := filepath.Join(l.cfg.DataDir, name+"_Virus_edge_file.tsv")

	store, err := os.Open(dataPath)
	if err != nil {
		return InputFileError(dataPath, err)
	}
	defer store.Close()

	entries, err := countLines(indexPath)
	if err != nil {
		return IndexFileError(indexPath, err)
	}

	index, err := os.Open(indexPath)
	if err != nil {
		return IndexFileError(indexPath, err)
	}
	defer index.Close()

	w, err := graph.NewWriter(nodePath, edgePath, graph.EdgeHeader)
	if err != nil {
		return OutputError(nodePath, err)
	}
	defer w.Close()

	locator := iorecord.New(store, l.cfg.Locator.Lookback)

	bar := newProgressBar(entries, name)
	defer bar.Finish()

	var batch []graph.NodeRow
	var processed, misses int

	sc := bufio.NewScanner(index)
	for sc.Scan() {
		if err = ctx.Err(); err != nil {
			return err
		}
		bar.Increment()
		processed++

		line := sc.Text()
		offStr, _, ok := strings.Cut(line, ":")
		if !ok {
			slog.Error("Malformed index entry", "line", line)
			misses++
			continue
		}
		off, err := strconv.ParseInt(offStr, 10, 64)
		if err != nil {
			slog.Error("Malformed index offset", "line", line)
			misses++
			continue
		}

		// Start looking a bit before the position the index found.
		record, err := locator.Locate(off - offsetBias)
		if err != nil {
			slog.Error("Entry not found for index position",
				"offset", off, "entry", processed)
			misses++
			continue
		}

		rows, err := Decompose(record, l.taxa)
		if err != nil {
			slog.Error("Cannot decompose entry",
				"offset", off, "error", err)
			misses++
			continue
		}
		batch = append(batch, rows...)

		if len(batch) > l.cfg.BlockSize {
			if err = l.flush(batch, w); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err = sc.Err(); err != nil {
		return IndexFileError(indexPath, err)
	}

	// Save any remainder.
	if len(batch) > 0 {
		if err = l.flush(batch, w); err != nil {
			return err
		}
	}

	if err = w.Close(); err != nil {
		return OutputError(edgePath, err)
	}

	slog.Info("UniRef file complete",
		"name", name,
		"entries", humanize.Comma(int64(processed)),
		"misses", misses,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// flush normalizes the accumulated rows, writes their edges, and
// writes the deduplicated nodes.
func (l *loader) flush(batch []graph.NodeRow, w *graph.Writer) error {
	slog.Debug("Flushing batch", "rows", len(batch))

	l.norm.Normalize(batch, l.cache, isTaxonRow)

	if err := synthesizeEdges(batch, w); err != nil {
		return err
	}
	return w.WriteUniqueNodes(batch)
}

// isTaxonRow selects the NCBITaxon rows; only those benefit from
// normalization in this motif.
func isTaxonRow(row graph.NodeRow) bool {
	return strings.HasPrefix(row.ID, "N")
}

// countLines counts index entries so the progress bar has a total.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var res int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		res++
	}
	return res, sc.Err()
}

// newProgressBar creates a progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix+" ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
