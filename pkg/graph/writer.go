package graph

import (
	"bufio"
	"fmt"
	"os"
)

// Table headers. Nodes always use NodeHeader; edge tables carry the
// source_database column only for loaders that record provenance.
const (
	NodeHeader           = "id\tname\tcategory\tequivalent_identifiers\n"
	EdgeHeader           = "id\tsubject\trelation_label\tedge_label\tobject\n"
	EdgeHeaderWithSource = "id\tsubject\trelation\tedge_label\tobject\tsource_database\n"
)

// Writer serializes node rows and edge records to a pair of
// append-only TSV files. A run wholly regenerates its outputs; there
// are no update or delete semantics.
type Writer struct {
	nodeFile *os.File
	edgeFile *os.File
	nodes    *bufio.Writer
	edges    *bufio.Writer
	closed   bool
}

// NewWriter creates (truncating) the node and edge tables and writes
// their header rows. edgeHeader selects between EdgeHeader and
// EdgeHeaderWithSource.
func NewWriter(nodePath, edgePath, edgeHeader string) (*Writer, error) {
	nf, err := os.Create(nodePath)
	if err != nil {
		return nil, fmt.Errorf("cannot create node table %s: %w", nodePath, err)
	}
	ef, err := os.Create(edgePath)
	if err != nil {
		nf.Close()
		return nil, fmt.Errorf("cannot create edge table %s: %w", edgePath, err)
	}

	w := &Writer{
		nodeFile: nf,
		edgeFile: ef,
		nodes:    bufio.NewWriter(nf),
		edges:    bufio.NewWriter(ef),
	}
	if _, err = w.nodes.WriteString(NodeHeader); err != nil {
		w.Close()
		return nil, fmt.Errorf("cannot write node header: %w", err)
	}
	if _, err = w.edges.WriteString(edgeHeader); err != nil {
		w.Close()
		return nil, fmt.Errorf("cannot write edge header: %w", err)
	}
	return w, nil
}

// WriteEdge appends one edge line, prefixed with its content id.
func (w *Writer) WriteEdge(e EdgeRecord) error {
	_, err := w.edges.WriteString(e.ID() + e.Line())
	if err != nil {
		return fmt.Errorf("cannot write edge: %w", err)
	}
	return nil
}

// WriteEdgeLine appends one pre-serialized edge line, prefixed with a
// content id derived from the line itself. Used by loaders that
// deduplicate serialized lines before writing.
func (w *Writer) WriteEdgeLine(line string) error {
	_, err := w.edges.WriteString(edgeLineID(line) + line)
	if err != nil {
		return fmt.Errorf("cannot write edge: %w", err)
	}
	return nil
}

// WriteUniqueNodes drops the group/position fields of the given rows,
// removes exact duplicate (id, name, category,
// equivalent_identifiers) tuples preserving first occurrence, and
// writes one line per surviving node.
func (w *Writer) WriteUniqueNodes(rows []NodeRow) error {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		tuple := row.Tuple()
		if _, ok := seen[tuple]; ok {
			continue
		}
		seen[tuple] = struct{}{}
		if _, err := w.nodes.WriteString(tuple + "\n"); err != nil {
			return fmt.Errorf("cannot write node: %w", err)
		}
	}
	return nil
}

// Close flushes and closes both tables. Subsequent calls are no-ops.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var firstErr error
	for _, flush := range []func() error{w.nodes.Flush, w.edges.Flush} {
		if err := flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range []*os.File{w.nodeFile, w.edgeFile} {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
