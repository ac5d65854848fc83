package iouniref

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beasleyjonm/ORION/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// an entry with a common taxon but no members beyond the
// representative; it is indexed but contributes nothing
const emptyClusterRecord = `<entry id="UniRef100_A0A000" updated="2020-04-22">
  <name>Cluster: Uncharacterized protein</name>
  <property type="member count" value="1"/>
  <property type="common taxon" value="Frog virus 3"/>
  <property type="common taxon ID" value="654924"/>
  <representativeMember>
    <dbReference type="UniProtKB ID" id="A0A000_FRG3V">
      <property type="UniProtKB accession" value="A0A000"/>
      <property type="protein name" value="Uncharacterized protein"/>
      <property type="source organism" value="Frog virus 3"/>
      <property type="NCBI taxonomy" value="654924"/>
    </dbReference>
  </representativeMember>
</entry>
`

func normServer(t *testing.T) *httptest.Server {
	t.Helper()
	known := map[string]string{
		"NCBITaxon:694009": `{
  "id": {"identifier": "NCBITaxon:694009",
         "label": "Severe acute respiratory syndrome-related coronavirus"},
  "type": ["biolink:OrganismTaxon"],
  "equivalent_identifiers": [{"identifier": "NCBITaxon:694009"}]
}`,
		"NCBITaxon:2697049": `{
  "id": {"identifier": "NCBITaxon:2697049", "label": "SARS-CoV-2"},
  "type": ["biolink:OrganismTaxon"],
  "equivalent_identifiers": [{"identifier": "NCBITaxon:2697049"}]
}`,
	}
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			curies := r.URL.Query()["curie"]
			parts := make([]string, 0, len(curies))
			for _, c := range curies {
				body, ok := known[c]
				if !ok {
					body = "null"
				}
				parts = append(parts, fmt.Sprintf("%q: %s", c, body))
			}
			fmt.Fprintf(w, "{%s}", strings.Join(parts, ", "))
		}))
}

func TestLoaderLoad(t *testing.T) {
	srv := normServer(t)
	defer srv.Close()

	dir := t.TempDir()
	store := emptyClusterRecord + clusterRecord
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "uniref100.xml"), []byte(store), 0644))

	// the index points into each record's body the way a text search
	// for taxon identifiers would
	startB := len(emptyClusterRecord)
	index := fmt.Sprintf("%d:654924\n%d:694009\n", 200, startB+200)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "uniref100_taxon_file_indexes.txt"),
		[]byte(index), 0644))

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataDir(dir),
		config.OptNormalizerURL(srv.URL),
		config.OptUniRefFiles([]string{"uniref100"}),
	})

	err := New(cfg, viralTaxa()).Load(context.Background())
	require.NoError(t, err)

	nodeData, err := os.ReadFile(
		filepath.Join(dir, "uniref100_Virus_node_file.tsv"))
	require.NoError(t, err)
	nodeLines := strings.Split(
		strings.TrimSuffix(string(nodeData), "\n"), "\n")

	// the empty cluster yields nothing; the full cluster yields the
	// family, one merged taxon tuple, two genes and the member taxon
	require.Len(t, nodeLines, 6)
	assert.Equal(t,
		"id\tname\tcategory\tequivalent_identifiers", nodeLines[0])

	nodes := strings.Join(nodeLines[1:], "\n")
	assert.Contains(t, nodes, "UniRef100:P0C6X7")
	assert.Contains(t, nodes,
		"Severe acute respiratory syndrome-related coronavirus")
	assert.Contains(t, nodes, "SARS-CoV-2")
	assert.Contains(t, nodes, "UniProtKB:P0DTD1")
	assert.NotContains(t, nodes, "A0A000")

	edgeData, err := os.ReadFile(
		filepath.Join(dir, "uniref100_Virus_edge_file.tsv"))
	require.NoError(t, err)
	edgeLines := strings.Split(
		strings.TrimSuffix(string(edgeData), "\n"), "\n")

	require.Len(t, edgeLines, 7, "header + six motif edges")
	edges := strings.Join(edgeLines[1:], "\n")
	assert.Contains(t, edges,
		"UniProtKB:P0C6X7\tUniRef100\tsimilar_to\tUniProtKB:P0DTD1")
	assert.Contains(t, edges,
		"UniRef100:P0C6X7\tin_taxon\tin_taxon\tNCBITaxon:694009")
}

func TestLoaderMissingInput(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataDir(t.TempDir()),
		config.OptUniRefFiles([]string{"uniref100"}),
	})

	err := New(cfg, viralTaxa()).Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderSkipsBadIndexEntries(t *testing.T) {
	srv := normServer(t)
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "uniref100.xml"),
		[]byte(clusterRecord), 0644))

	// malformed line, unparsable offset, offset past the file, and a
	// good entry; only the good one lands in the outputs
	index := "no-colon-here\nNaN:1\n999999:1\n200:694009\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "uniref100_taxon_file_indexes.txt"),
		[]byte(index), 0644))

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataDir(dir),
		config.OptNormalizerURL(srv.URL),
		config.OptUniRefFiles([]string{"uniref100"}),
	})

	err := New(cfg, viralTaxa()).Load(context.Background())
	require.NoError(t, err)

	edgeData, err := os.ReadFile(
		filepath.Join(dir, "uniref100_Virus_edge_file.tsv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(edgeData), "\n"), "\n")
	assert.Len(t, lines, 7)
}
