package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, edgeHeader string) (*Writer, string, string) {
	t.Helper()
	dir := t.TempDir()
	nodePath := filepath.Join(dir, "nodes.tsv")
	edgePath := filepath.Join(dir, "edges.tsv")
	w, err := NewWriter(nodePath, edgePath, edgeHeader)
	require.NoError(t, err)
	return w, nodePath, edgePath
}

func TestWriterHeaders(t *testing.T) {
	w, nodePath, edgePath := newTestWriter(t, EdgeHeaderWithSource)
	require.NoError(t, w.Close())

	nodes, err := os.ReadFile(nodePath)
	require.NoError(t, err)
	assert.Equal(t, NodeHeader, string(nodes))

	edges, err := os.ReadFile(edgePath)
	require.NoError(t, err)
	assert.Equal(t, EdgeHeaderWithSource, string(edges))
}

func TestWriterUniqueNodes(t *testing.T) {
	w, nodePath, _ := newTestWriter(t, EdgeHeader)

	rows := []NodeRow{
		{Group: "g1", NodeNum: 0, ID: "A:1", Name: "one"},
		{Group: "g2", NodeNum: 3, ID: "A:1", Name: "one"},
		{Group: "g1", NodeNum: 1, ID: "A:1", Name: "uno"},
		{Group: "g1", NodeNum: 2, ID: "B:2", Name: "two"},
	}
	require.NoError(t, w.WriteUniqueNodes(rows))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(nodePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	// header + 3 unique tuples; identical tuple from g2 collapsed
	require.Len(t, lines, 4)
	assert.Equal(t, "A:1\tone\t\t", lines[1])
	assert.Equal(t, "A:1\tuno\t\t", lines[2])
	assert.Equal(t, "B:2\ttwo\t\t", lines[3])
}

func TestWriterEdges(t *testing.T) {
	w, _, edgePath := newTestWriter(t, EdgeHeader)

	e := EdgeRecord{
		Subject:  "A:1",
		Relation: "RO:0002162",
		Label:    "in_taxon",
		Object:   "NCBITaxon:10239",
	}
	require.NoError(t, w.WriteEdge(e))
	require.NoError(t, w.WriteEdgeLine(e.Line()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(edgePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	// both write paths produce the identical id-prefixed line
	assert.Equal(t, lines[1], lines[2])
	assert.True(t, strings.HasPrefix(lines[1], e.ID()+"\t"))
	assert.True(t, strings.HasSuffix(lines[1], "\tin_taxon\tNCBITaxon:10239"))
}

func TestWriterCloseIdempotent(t *testing.T) {
	w, _, _ := newTestWriter(t, EdgeHeader)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
