// Package ioextract walks well-formed delimited files and collects
// graph nodes and edges through per-column extraction callbacks. It
// backs the loaders whose sources are already tabular and need no
// record recovery.
package ioextract

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/beasleyjonm/ORION/pkg/graph"
)

// FieldFunc extracts one value from a parsed line. Returning "" means
// the line contributes nothing for that role.
type FieldFunc func(fields []string) string

// Options configures one extraction pass.
type Options struct {
	// Delim is the field delimiter (',' or '\t').
	Delim rune

	// Comment marks comment lines when non-zero.
	Comment rune

	// HasHeader skips the first row.
	HasHeader bool

	// MinFields drops rows with fewer fields, protecting the
	// extraction callbacks from short rows.
	MinFields int

	// Source fills the source_database column of emitted edges.
	Source string

	// SubjectID extracts the subject node identifier. Required.
	SubjectID FieldFunc

	// SubjectName optionally extracts the subject node name.
	SubjectName FieldFunc

	// ObjectID optionally extracts the object node identifier. Lines
	// without an object produce a node but no edge.
	ObjectID FieldFunc

	// Predicate optionally extracts the edge predicate. An edge is
	// emitted only when subject, object and predicate are all
	// non-empty.
	Predicate FieldFunc
}

// Extractor accumulates nodes and edges over one or more extraction
// passes.
type Extractor struct {
	Nodes []graph.NodeRow
	Edges []graph.EdgeRecord
}

// Extract parses the delimited input and appends the extracted nodes
// and edges.
func (e *Extractor) Extract(r io.Reader, opt Options) error {
	cr := csv.NewReader(r)
	cr.Comma = opt.Delim
	cr.Comment = opt.Comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	first := true
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot parse delimited input: %w", err)
		}
		if first && opt.HasHeader {
			first = false
			continue
		}
		first = false
		if len(fields) < opt.MinFields {
			continue
		}

		subject := opt.SubjectID(fields)
		if subject == "" {
			continue
		}

		name := ""
		if opt.SubjectName != nil {
			name = opt.SubjectName(fields)
		}
		e.Nodes = append(e.Nodes, graph.NodeRow{
			ID:            subject,
			Name:          name,
			EquivalentIDs: subject,
		})

		if opt.ObjectID == nil {
			continue
		}
		object := opt.ObjectID(fields)
		if object == "" {
			continue
		}
		e.Nodes = append(e.Nodes, graph.NodeRow{
			ID:            object,
			EquivalentIDs: object,
		})

		if opt.Predicate == nil {
			continue
		}
		predicate := opt.Predicate(fields)
		if predicate == "" {
			continue
		}
		e.Edges = append(e.Edges, graph.EdgeRecord{
			Subject:  subject,
			Relation: predicate,
			Label:    predicate,
			Object:   object,
			Source:   opt.Source,
		})
	}
}
