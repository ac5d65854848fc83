// Package graph defines the node/edge data model shared by all ORION
// loaders and the writer that serializes it to KGX-style TSV tables.
//
// A loader decomposes each logical source record into a small "motif"
// of node rows tied together by a group id. The position of a row
// inside its motif is recorded in NodeNum; edge synthesis depends on
// that positional meaning, so the valid positions for each motif shape
// are named constants rather than bare integers.
package graph

import (
	"strings"

	"github.com/gnames/gnuuid"
)

// Cluster motif positions (group id = cluster accession). One base
// pair is followed by one pair per qualifying member; the two rows of
// a member pair share the same NodeNum.
const (
	// ClusterFamily is the cluster-family node.
	ClusterFamily = 0
	// ClusterTaxon is the cluster's common taxon node.
	ClusterTaxon = 1
	// ClusterRepMember is the representative member node. Further
	// member pairs use ClusterRepMember+1, +2, ...
	ClusterRepMember = 2
)

// Triplet motif positions (group id = object/annotation/taxon join
// key). Exactly three rows are expected per group.
const (
	// TripletGene is the gene node.
	TripletGene = 1
	// TripletTaxon is the organism-taxon node.
	TripletTaxon = 2
	// TripletTerm is the ontology-term node; its category drives the
	// direction of the second motif edge.
	TripletTerm = 3
)

// NodeRow is the mutable unit flowing through a loader pipeline. It is
// created by a record decomposer, rewritten in place by the batch
// normalizer, and consumed by edge synthesis and the table writer.
type NodeRow struct {
	// Group ties the row to the logical record it came from.
	Group string

	// NodeNum is the row's position within its motif.
	NodeNum int

	// ID is a prefixed identifier, e.g. "NCBITaxon:10493". The
	// normalizer may replace it with a canonical identifier.
	ID string

	// Name may be empty pending normalization.
	Name string

	// Category holds pipe-delimited type tags, possibly empty.
	Category string

	// EquivalentIDs holds pipe-delimited alternate identifiers.
	EquivalentIDs string

	// SimilarityBin names the similarity-clustering threshold that
	// produced this group (cluster motif only).
	SimilarityBin string
}

// Tuple returns the output-visible fields of the row as a tab-joined
// string. Rows with equal tuples collapse to one node table line.
func (n NodeRow) Tuple() string {
	return n.ID + "\t" + n.Name + "\t" + n.Category + "\t" +
		n.EquivalentIDs
}

// EdgeRecord is a derived, not stored, edge tuple. Its canonical
// serialization doubles as the deduplication key and as the input to
// its content-addressed identifier.
type EdgeRecord struct {
	Subject  string
	Relation string
	Label    string
	Object   string

	// Source is the optional source_database provenance column. When
	// empty, the column is omitted from the serialized line.
	Source string
}

// Line renders the edge as its canonical tab-delimited serialization,
// starting with the tab that separates the id column and ending with a
// newline.
func (e EdgeRecord) Line() string {
	var b strings.Builder
	b.WriteByte('\t')
	b.WriteString(e.Subject)
	b.WriteByte('\t')
	b.WriteString(e.Relation)
	b.WriteByte('\t')
	b.WriteString(e.Label)
	b.WriteByte('\t')
	b.WriteString(e.Object)
	if e.Source != "" {
		b.WriteByte('\t')
		b.WriteString(e.Source)
	}
	b.WriteByte('\n')
	return b.String()
}

// ID returns the stable content-addressed identifier of the edge: a
// UUID v5 derived from the canonical serialization. The same field
// values always produce the same id, making reprocessing idempotent.
func (e EdgeRecord) ID() string {
	return edgeLineID(e.Line())
}

// edgeLineID derives the content id for a serialized edge line.
func edgeLineID(line string) string {
	return gnuuid.New(line).String()
}
